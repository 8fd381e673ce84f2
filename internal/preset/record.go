// Package preset models the factory preset records loaded by the Choir V2
// synthesis engine and builds them from catalog definitions.
package preset

import "time"

// FileExtension is appended to every artifact identifier.
const FileExtension = ".choirv2"

// SynthesisMethod selects the engine's synthesis algorithm.
type SynthesisMethod string

const (
	// SynthesisFormant drives parallel formant resonators from a glottal source.
	SynthesisFormant SynthesisMethod = "formant"
	// SynthesisDiphone concatenates phoneme transitions.
	SynthesisDiphone SynthesisMethod = "diphone"
	// SynthesisSubharmonic adds generated subharmonics under the sung pitch.
	SynthesisSubharmonic SynthesisMethod = "subharmonic"
)

// Valid reports whether m is one of the methods the engine implements.
func (m SynthesisMethod) Valid() bool {
	switch m {
	case SynthesisFormant, SynthesisDiphone, SynthesisSubharmonic:
		return true
	default:
		return false
	}
}

// Metadata identifies a preset and records who produced it and when.
type Metadata struct {
	Name          string    `json:"name"`
	Author        string    `json:"author"`
	Description   string    `json:"description"`
	Version       string    `json:"version"`
	Category      string    `json:"category"`
	Tags          []string  `json:"tags"`
	CreatedDate   time.Time `json:"created_date"`
	ModifiedDate  time.Time `json:"modified_date"`
	PluginVersion string    `json:"plugin_version"`
}

// Parameters is the fixed schema of engine tunables. Field order is the
// artifact key order.
type Parameters struct {
	NumVoices                 int             `json:"num_voices"`
	MasterGain                float64         `json:"master_gain"`
	Language                  string          `json:"language"`
	Lyrics                    string          `json:"lyrics"`
	SynthesisMethod           SynthesisMethod `json:"synthesis_method"`
	FormantMix                Percent         `json:"formant_mix"`
	SubharmonicMix            Percent         `json:"subharmonic_mix"`
	StereoWidth               Percent         `json:"stereo_width"`
	VibratoRate               Hertz           `json:"vibrato_rate"`
	VibratoDepth              Percent         `json:"vibrato_depth"`
	ReverbMix                 Percent         `json:"reverb_mix"`
	ReverbSize                Percent         `json:"reverb_size"`
	AttackTime                Millis          `json:"attack_time"`
	ReleaseTime               Millis          `json:"release_time"`
	EnableAntiAliasing        bool            `json:"enable_anti_aliasing"`
	EnableSpectralEnhancement bool            `json:"enable_spectral_enhancement"`
	OversamplingFactor        float64         `json:"oversampling_factor"`
	PitchVariation            Percent         `json:"pitch_variation"`
	TimingVariation           Percent         `json:"timing_variation"`
	FormantVariation          Percent         `json:"formant_variation"`
	Breathiness               Percent         `json:"breathiness"`
	Warmth                    Percent         `json:"warmth"`
	Brightness                Percent         `json:"brightness"`

	// GenderBalance and VoiceTypes are only present on ensemble presets.
	GenderBalance *GenderBalance `json:"gender_balance,omitempty"`
	VoiceTypes    VoiceMix       `json:"voice_types,omitempty"`
}

// Record is a complete preset as written to disk.
type Record struct {
	Metadata   Metadata   `json:"metadata"`
	Parameters Parameters `json:"parameters"`
	IsFactory  bool       `json:"is_factory"`
	IsReadOnly bool       `json:"is_read_only"`
}

// ArtifactName returns the identifier the record is stored under.
func (r Record) ArtifactName() string {
	return ArtifactName(r.Metadata.Name)
}

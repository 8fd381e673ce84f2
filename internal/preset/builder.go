package preset

import (
	"errors"
	"time"

	"github.com/bretbouchard/choral-v2/internal/core"
)

// Factory defaults applied when a definition leaves a tunable unset.
const (
	DefaultNumVoices          = 8
	DefaultMasterGain         = -3.0
	DefaultFormantMix         = 80.0
	DefaultSubharmonicMix     = 20.0
	DefaultStereoWidth        = 75.0
	DefaultVibratoRate        = 6.0
	DefaultVibratoDepth       = 30.0
	DefaultReverbMix          = 25.0
	DefaultReverbSize         = 50.0
	DefaultAttackTime         = 50.0
	DefaultReleaseTime        = 200.0
	DefaultPitchVariation     = 10.0
	DefaultTimingVariation    = 5.0
	DefaultFormantVariation   = 15.0
	DefaultBreathiness        = 10.0
	DefaultWarmth             = 20.0
	DefaultBrightness         = 50.0
	DefaultOversamplingFactor = 1.0
)

// Default authoring values stamped into generated metadata.
const (
	DefaultAuthor        = "Bret Bouchard"
	DefaultVersion       = "2.0.0"
	DefaultPluginVersion = "2.0.0"
	DefaultCategory      = "Factory"
)

// Authoring holds the metadata shared by every record of a run.
type Authoring struct {
	Author        string
	Version       string
	PluginVersion string
}

// DefaultAuthoring returns the authoring used for the shipped factory set.
func DefaultAuthoring() Authoring {
	return Authoring{
		Author:        DefaultAuthor,
		Version:       DefaultVersion,
		PluginVersion: DefaultPluginVersion,
	}
}

// Builder turns catalog definitions into records.
type Builder struct {
	clock     core.Clock
	authoring Authoring
}

// NewBuilder creates a Builder that stamps records with clock and authoring.
// Empty authoring fields fall back to the defaults.
func NewBuilder(clock core.Clock, authoring Authoring) *Builder {
	if clock == nil {
		clock = core.SystemClock{}
	}

	if authoring.Author == "" {
		authoring.Author = DefaultAuthor
	}

	if authoring.Version == "" {
		authoring.Version = DefaultVersion
	}

	if authoring.PluginVersion == "" {
		authoring.PluginVersion = DefaultPluginVersion
	}

	return &Builder{clock: clock, authoring: authoring}
}

// fieldCollector gathers every violation of one definition.
type fieldCollector struct {
	errs []error
}

func (c *fieldCollector) add(err error) {
	if err != nil {
		c.errs = append(c.errs, err)
	}
}

func (c *fieldCollector) required(field, value string) {
	if value == "" {
		c.add(&FieldError{Field: field, Value: value, Err: ErrMissingField})
	}
}

func (c *fieldCollector) percent(field string, override *float64, fallback float64) Percent {
	v := fallback
	if override != nil {
		v = *override
	}

	p, err := NewPercent(field, v)
	c.add(err)

	return p
}

func (c *fieldCollector) millis(field string, override *float64, fallback, limit float64) Millis {
	v := fallback
	if override != nil {
		v = *override
	}

	ms, err := NewMillis(field, v, limit)
	c.add(err)

	return ms
}

// Build assembles a factory record from def. The record is stamped with the
// builder clock; created and modified dates are identical. Every invalid
// field is reported in the returned error.
func (b *Builder) Build(def Definition) (Record, error) {
	var c fieldCollector

	c.required("name", def.Name)
	c.required("description", def.Description)
	c.required("language", def.Language)
	c.required("synthesis_method", def.SynthesisMethod)
	c.required("lyrics", def.Lyrics)

	method := SynthesisMethod(def.SynthesisMethod)
	if def.SynthesisMethod != "" {
		c.add(checkSynthesisMethod(method))
	}

	numVoices := DefaultNumVoices
	if def.NumVoices != nil {
		numVoices = *def.NumVoices
	}

	c.add(checkVoices(numVoices))

	vibratoRate := DefaultVibratoRate
	if def.VibratoRate != nil {
		vibratoRate = *def.VibratoRate
	}

	rate, err := NewHertz("vibrato_rate", vibratoRate, MinVibratoRate, MaxVibratoRate)
	c.add(err)

	params := Parameters{
		NumVoices:                 numVoices,
		MasterGain:                DefaultMasterGain,
		Language:                  def.Language,
		Lyrics:                    def.Lyrics,
		SynthesisMethod:           method,
		FormantMix:                c.percent("formant_mix", def.FormantMix, DefaultFormantMix),
		SubharmonicMix:            c.percent("subharmonic_mix", def.SubharmonicMix, DefaultSubharmonicMix),
		StereoWidth:               c.percent("stereo_width", def.StereoWidth, DefaultStereoWidth),
		VibratoRate:               rate,
		VibratoDepth:              c.percent("vibrato_depth", def.VibratoDepth, DefaultVibratoDepth),
		ReverbMix:                 c.percent("reverb_mix", def.ReverbMix, DefaultReverbMix),
		ReverbSize:                c.percent("reverb_size", def.ReverbSize, DefaultReverbSize),
		AttackTime:                c.millis("attack_time", def.AttackTime, DefaultAttackTime, MaxAttackTime),
		ReleaseTime:               c.millis("release_time", def.ReleaseTime, DefaultReleaseTime, MaxReleaseTime),
		EnableAntiAliasing:        true,
		EnableSpectralEnhancement: true,
		OversamplingFactor:        DefaultOversamplingFactor,
		PitchVariation:            c.percent("pitch_variation", def.PitchVariation, DefaultPitchVariation),
		TimingVariation:           c.percent("timing_variation", def.TimingVariation, DefaultTimingVariation),
		FormantVariation:          c.percent("formant_variation", def.FormantVariation, DefaultFormantVariation),
		Breathiness:               c.percent("breathiness", def.Breathiness, DefaultBreathiness),
		Warmth:                    c.percent("warmth", def.Warmth, DefaultWarmth),
		Brightness:                c.percent("brightness", def.Brightness, DefaultBrightness),
		GenderBalance:             nil,
		VoiceTypes:                nil,
	}

	if def.GenderBalance != nil {
		balance := *def.GenderBalance
		c.add(balance.Validate())
		params.GenderBalance = &balance
	}

	mix, err := NewVoiceMix(def.VoiceTypes)
	c.add(err)

	params.VoiceTypes = mix

	if len(c.errs) > 0 {
		return Record{}, errors.Join(c.errs...)
	}

	category := def.Category
	if category == "" {
		category = DefaultCategory
	}

	tags := make([]string, len(def.Tags))
	copy(tags, def.Tags)

	stamp := b.now()

	return Record{
		Metadata: Metadata{
			Name:          def.Name,
			Author:        b.authoring.Author,
			Description:   def.Description,
			Version:       b.authoring.Version,
			Category:      category,
			Tags:          tags,
			CreatedDate:   stamp,
			ModifiedDate:  stamp,
			PluginVersion: b.authoring.PluginVersion,
		},
		Parameters: params,
		IsFactory:  true,
		IsReadOnly: true,
	}, nil
}

// now reads the clock once, normalized to what the artifact format can hold.
func (b *Builder) now() time.Time {
	return b.clock.Now().UTC().Truncate(time.Second)
}

package preset

// Definition is one literal catalog entry. Tunables left nil take the
// builder defaults; explicit zero values are kept.
type Definition struct {
	Name            string `toml:"name"             yaml:"name"`
	Description     string `toml:"description"      yaml:"description"`
	Language        string `toml:"language"         yaml:"language"`
	SynthesisMethod string `toml:"synthesis_method" yaml:"synthesis_method"`
	Lyrics          string `toml:"lyrics"           yaml:"lyrics"`

	// Category overrides the category of the theme the entry belongs to.
	Category string `toml:"category,omitempty" yaml:"category,omitempty"`

	NumVoices        *int     `toml:"num_voices,omitempty"        yaml:"num_voices,omitempty"`
	FormantMix       *float64 `toml:"formant_mix,omitempty"       yaml:"formant_mix,omitempty"`
	SubharmonicMix   *float64 `toml:"subharmonic_mix,omitempty"   yaml:"subharmonic_mix,omitempty"`
	StereoWidth      *float64 `toml:"stereo_width,omitempty"      yaml:"stereo_width,omitempty"`
	VibratoRate      *float64 `toml:"vibrato_rate,omitempty"      yaml:"vibrato_rate,omitempty"`
	VibratoDepth     *float64 `toml:"vibrato_depth,omitempty"     yaml:"vibrato_depth,omitempty"`
	ReverbMix        *float64 `toml:"reverb_mix,omitempty"        yaml:"reverb_mix,omitempty"`
	ReverbSize       *float64 `toml:"reverb_size,omitempty"       yaml:"reverb_size,omitempty"`
	AttackTime       *float64 `toml:"attack_time,omitempty"       yaml:"attack_time,omitempty"`
	ReleaseTime      *float64 `toml:"release_time,omitempty"      yaml:"release_time,omitempty"`
	PitchVariation   *float64 `toml:"pitch_variation,omitempty"   yaml:"pitch_variation,omitempty"`
	TimingVariation  *float64 `toml:"timing_variation,omitempty"  yaml:"timing_variation,omitempty"`
	FormantVariation *float64 `toml:"formant_variation,omitempty" yaml:"formant_variation,omitempty"`
	Breathiness      *float64 `toml:"breathiness,omitempty"       yaml:"breathiness,omitempty"`
	Warmth           *float64 `toml:"warmth,omitempty"            yaml:"warmth,omitempty"`
	Brightness       *float64 `toml:"brightness,omitempty"        yaml:"brightness,omitempty"`

	VoiceTypes    map[string]float64 `toml:"voice_types,omitempty"    yaml:"voice_types,omitempty"`
	GenderBalance *GenderBalance     `toml:"gender_balance,omitempty" yaml:"gender_balance,omitempty"`
	Tags          []string           `toml:"tags,omitempty"           yaml:"tags,omitempty"`
}

// Int returns a pointer to v, for filling optional Definition fields.
func Int(v int) *int {
	return &v
}

// Float returns a pointer to v, for filling optional Definition fields.
func Float(v float64) *float64 {
	return &v
}

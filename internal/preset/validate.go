package preset

import (
	"errors"
	"fmt"
)

// ErrNotFactory indicates a record that lacks the factory provenance flags.
var ErrNotFactory = errors.New("record is not a read-only factory preset")

// Validate checks a complete record against the limits the engine enforces
// when it loads a preset. All violations are joined into one error.
func Validate(r Record) error {
	var c fieldCollector

	c.required("metadata.name", r.Metadata.Name)
	c.required("metadata.version", r.Metadata.Version)
	c.required("parameters.language", r.Parameters.Language)

	p := r.Parameters
	c.add(checkVoices(p.NumVoices))
	c.add(checkMasterGain(p.MasterGain))
	c.add(checkSynthesisMethod(p.SynthesisMethod))
	c.add(checkOversampling(p.OversamplingFactor))

	_, err := NewHertz("vibrato_rate", float64(p.VibratoRate), MinVibratoRate, MaxVibratoRate)
	c.add(err)

	_, err = NewMillis("attack_time", float64(p.AttackTime), MaxAttackTime)
	c.add(err)

	_, err = NewMillis("release_time", float64(p.ReleaseTime), MaxReleaseTime)
	c.add(err)

	percents := []struct {
		field string
		value Percent
	}{
		{"formant_mix", p.FormantMix},
		{"subharmonic_mix", p.SubharmonicMix},
		{"stereo_width", p.StereoWidth},
		{"vibrato_depth", p.VibratoDepth},
		{"reverb_mix", p.ReverbMix},
		{"reverb_size", p.ReverbSize},
		{"pitch_variation", p.PitchVariation},
		{"timing_variation", p.TimingVariation},
		{"formant_variation", p.FormantVariation},
		{"breathiness", p.Breathiness},
		{"warmth", p.Warmth},
		{"brightness", p.Brightness},
	}

	for _, pct := range percents {
		_, err = NewPercent(pct.field, float64(pct.value))
		c.add(err)
	}

	if p.GenderBalance != nil {
		c.add(p.GenderBalance.Validate())
	}

	if p.VoiceTypes != nil {
		c.add(p.VoiceTypes.Validate())
	}

	if !r.IsFactory || !r.IsReadOnly {
		c.add(fmt.Errorf("%w: is_factory=%t is_read_only=%t", ErrNotFactory, r.IsFactory, r.IsReadOnly))
	}

	return errors.Join(c.errs...)
}

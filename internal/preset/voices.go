package preset

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// DistributionTotal is the sum every weight distribution must reach.
const DistributionTotal = 100.0

const distributionTolerance = 0.01

var (
	// ErrUnknownVoiceType indicates a voice-type label the engine does not recognize.
	ErrUnknownVoiceType = errors.New("unknown voice type")
	// ErrDistributionSum indicates that distribution weights do not add up to 100.
	ErrDistributionSum = errors.New("distribution weights must sum to 100")
	// ErrNegativeWeight indicates a negative or non-finite distribution weight.
	ErrNegativeWeight = errors.New("distribution weight must be finite and non-negative")
)

// VoiceType is a labeled vocal range or character within an ensemble.
type VoiceType string

// Recognized voice types.
const (
	VoiceSoprano      VoiceType = "soprano"
	VoiceMezzoSoprano VoiceType = "mezzo_soprano"
	VoiceAlto         VoiceType = "alto"
	VoiceColoratura   VoiceType = "coloratura"
	VoiceCountertenor VoiceType = "countertenor"
	VoiceTenor        VoiceType = "tenor"
	VoiceBaritone     VoiceType = "baritone"
	VoiceBass         VoiceType = "bass"
	// VoiceLead is the melody line of a barbershop arrangement.
	VoiceLead        VoiceType = "lead"
	VoiceBoySoprano  VoiceType = "boy_soprano"
	VoiceGirlSoprano VoiceType = "girl_soprano"
	VoiceNeutral     VoiceType = "neutral"
	VoiceAndrogynous VoiceType = "androgynous"
	VoiceGenderFluid VoiceType = "gender_fluid"
	VoiceThirdGender VoiceType = "third_gender"
)

var knownVoiceTypes = map[VoiceType]struct{}{
	VoiceSoprano:      {},
	VoiceMezzoSoprano: {},
	VoiceAlto:         {},
	VoiceColoratura:   {},
	VoiceCountertenor: {},
	VoiceTenor:        {},
	VoiceBaritone:     {},
	VoiceBass:         {},
	VoiceLead:         {},
	VoiceBoySoprano:   {},
	VoiceGirlSoprano:  {},
	VoiceNeutral:      {},
	VoiceAndrogynous:  {},
	VoiceGenderFluid:  {},
	VoiceThirdGender:  {},
}

// ParseVoiceType returns the voice type named by label.
func ParseVoiceType(label string) (VoiceType, error) {
	voiceType := VoiceType(label)
	if _, ok := knownVoiceTypes[voiceType]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownVoiceType, label)
	}

	return voiceType, nil
}

// UnmarshalText rejects labels outside the recognized set.
func (v *VoiceType) UnmarshalText(text []byte) error {
	parsed, err := ParseVoiceType(string(text))
	if err != nil {
		return err
	}

	*v = parsed

	return nil
}

// VoiceMix maps voice types to their share of the ensemble.
type VoiceMix map[VoiceType]float64

// NewVoiceMix converts raw catalog weights into a validated VoiceMix.
// A nil or empty input yields a nil mix.
func NewVoiceMix(weights map[string]float64) (VoiceMix, error) {
	if len(weights) == 0 {
		return nil, nil
	}

	mix := make(VoiceMix, len(weights))

	for label, weight := range weights {
		voiceType, err := ParseVoiceType(label)
		if err != nil {
			return nil, &FieldError{Field: "voice_types", Value: label, Err: err}
		}

		mix[voiceType] = weight
	}

	err := mix.Validate()
	if err != nil {
		return nil, err
	}

	return mix, nil
}

// Total returns the sum of all weights.
func (m VoiceMix) Total() float64 {
	var total float64
	for _, weight := range m {
		total += weight
	}

	return total
}

// Types returns the voice types present in the mix in lexical order.
func (m VoiceMix) Types() []VoiceType {
	types := make([]VoiceType, 0, len(m))
	for voiceType := range m {
		types = append(types, voiceType)
	}

	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	return types
}

// Validate checks labels, weight signs and the total.
func (m VoiceMix) Validate() error {
	for _, voiceType := range m.Types() {
		if _, ok := knownVoiceTypes[voiceType]; !ok {
			return &FieldError{Field: "voice_types", Value: string(voiceType), Err: ErrUnknownVoiceType}
		}

		if !validWeight(m[voiceType]) {
			return &FieldError{Field: "voice_types." + string(voiceType), Value: m[voiceType], Err: ErrNegativeWeight}
		}
	}

	return checkTotal("voice_types", m.Total())
}

func (m VoiceMix) clone() VoiceMix {
	if m == nil {
		return nil
	}

	out := make(VoiceMix, len(m))
	for voiceType, weight := range m {
		out[voiceType] = weight
	}

	return out
}

// GenderBalance splits an ensemble between male and female voices.
type GenderBalance struct {
	Male   float64 `json:"male"   toml:"male"   yaml:"male"`
	Female float64 `json:"female" toml:"female" yaml:"female"`
}

// Validate checks weight signs and the total.
func (g GenderBalance) Validate() error {
	if !validWeight(g.Male) {
		return &FieldError{Field: "gender_balance.male", Value: g.Male, Err: ErrNegativeWeight}
	}

	if !validWeight(g.Female) {
		return &FieldError{Field: "gender_balance.female", Value: g.Female, Err: ErrNegativeWeight}
	}

	return checkTotal("gender_balance", g.Male+g.Female)
}

// validWeight reports whether w is a finite, non-negative weight.
func validWeight(w float64) bool {
	return !math.IsNaN(w) && !math.IsInf(w, 0) && w >= 0
}

func checkTotal(field string, total float64) error {
	if math.IsNaN(total) || math.Abs(total-DistributionTotal) > distributionTolerance {
		return &FieldError{Field: field, Value: total, Err: ErrDistributionSum}
	}

	return nil
}

package preset

import (
	"errors"
	"fmt"
	"math"
)

// Engine load-time limits.
const (
	MinVoices = 1
	MaxVoices = 60

	MinMasterGain = -60.0
	MaxMasterGain = 0.0

	MinVibratoRate = 0.1
	MaxVibratoRate = 15.0

	MaxAttackTime  = 5000.0
	MaxReleaseTime = 10000.0

	maxPercent = 100.0
)

var (
	// ErrOutOfRange indicates that a parameter lies outside its bounds.
	ErrOutOfRange = errors.New("value out of range")
	// ErrInvalid indicates that a parameter is not one of its allowed values.
	ErrInvalid = errors.New("invalid value")
	// ErrMissingField indicates that a required field is empty.
	ErrMissingField = errors.New("required field is empty")
)

// Percent is a percentage in [0, 100].
type Percent float64

// Millis is a non-negative duration in milliseconds.
type Millis float64

// Hertz is a strictly positive rate.
type Hertz float64

// FieldError reports a rejected value for one named field.
type FieldError struct {
	Field string
	Value any
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v: got %v", e.Field, e.Err, e.Value)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func outOfRange(field string, value any, lo, hi float64) error {
	return &FieldError{
		Field: field,
		Value: value,
		Err:   fmt.Errorf("%w: want [%g, %g]", ErrOutOfRange, lo, hi),
	}
}

// inRange reports whether v is a finite number in [lo, hi].
func inRange(v, lo, hi float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= lo && v <= hi
}

// NewPercent returns v as a Percent, or an error naming field if v is not a finite value in [0, 100].
func NewPercent(field string, v float64) (Percent, error) {
	if !inRange(v, 0, maxPercent) {
		return 0, outOfRange(field, v, 0, maxPercent)
	}

	return Percent(v), nil
}

// NewMillis returns v as Millis, or an error naming field if v is negative or above limit.
func NewMillis(field string, v, limit float64) (Millis, error) {
	if !inRange(v, 0, limit) {
		return 0, outOfRange(field, v, 0, limit)
	}

	return Millis(v), nil
}

// NewHertz returns v as Hertz, or an error naming field if v is outside [lo, hi].
// lo must be positive.
func NewHertz(field string, v, lo, hi float64) (Hertz, error) {
	if !inRange(v, lo, hi) {
		return 0, outOfRange(field, v, lo, hi)
	}

	return Hertz(v), nil
}

func checkVoices(n int) error {
	if n < MinVoices || n > MaxVoices {
		return outOfRange("num_voices", n, MinVoices, MaxVoices)
	}

	return nil
}

func checkMasterGain(db float64) error {
	if !inRange(db, MinMasterGain, MaxMasterGain) {
		return outOfRange("master_gain", db, MinMasterGain, MaxMasterGain)
	}

	return nil
}

func checkOversampling(factor float64) error {
	switch factor {
	case 1, 2, 4:
		return nil
	default:
		return &FieldError{
			Field: "oversampling_factor",
			Value: factor,
			Err:   fmt.Errorf("%w: want 1, 2 or 4", ErrInvalid),
		}
	}
}

func checkSynthesisMethod(m SynthesisMethod) error {
	if !m.Valid() {
		return &FieldError{
			Field: "synthesis_method",
			Value: string(m),
			Err:   fmt.Errorf("%w: want formant, diphone or subharmonic", ErrInvalid),
		}
	}

	return nil
}

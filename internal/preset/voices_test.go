package preset_test

import (
	"math"
	"testing"

	"github.com/bretbouchard/choral-v2/internal/preset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVoiceMix(t *testing.T) {
	t.Parallel()

	mix, err := preset.NewVoiceMix(map[string]float64{"soprano": 25, "alto": 25, "tenor": 25, "bass": 25})
	require.NoError(t, err)

	assert.InDelta(t, 100.0, mix.Total(), 1e-9)
	assert.Equal(t,
		[]preset.VoiceType{preset.VoiceAlto, preset.VoiceBass, preset.VoiceSoprano, preset.VoiceTenor},
		mix.Types(),
	)
}

func TestNewVoiceMix_Empty(t *testing.T) {
	t.Parallel()

	mix, err := preset.NewVoiceMix(nil)
	require.NoError(t, err)
	assert.Nil(t, mix)
}

func TestNewVoiceMix_Tolerance(t *testing.T) {
	t.Parallel()

	_, err := preset.NewVoiceMix(map[string]float64{"soprano": 33.333, "alto": 33.333, "tenor": 33.334})
	require.NoError(t, err)

	_, err = preset.NewVoiceMix(map[string]float64{"soprano": 33, "alto": 33, "tenor": 33})
	require.ErrorIs(t, err, preset.ErrDistributionSum)
}

func TestNewVoiceMix_NegativeWeight(t *testing.T) {
	t.Parallel()

	_, err := preset.NewVoiceMix(map[string]float64{"soprano": 120, "bass": -20})
	require.ErrorIs(t, err, preset.ErrNegativeWeight)
}

func TestNewVoiceMix_NonFiniteWeight(t *testing.T) {
	t.Parallel()

	for _, weight := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		mix, err := preset.NewVoiceMix(map[string]float64{"bass": weight})
		require.ErrorIs(t, err, preset.ErrNegativeWeight, "weight %v", weight)
		assert.Nil(t, mix)
	}

	mix := preset.VoiceMix{preset.VoiceBass: 100, preset.VoiceTenor: math.NaN()}
	require.ErrorIs(t, mix.Validate(), preset.ErrNegativeWeight)
}

func TestParseVoiceType(t *testing.T) {
	t.Parallel()

	voiceType, err := preset.ParseVoiceType("third_gender")
	require.NoError(t, err)
	assert.Equal(t, preset.VoiceThirdGender, voiceType)

	_, err = preset.ParseVoiceType("Soprano")
	require.ErrorIs(t, err, preset.ErrUnknownVoiceType)
}

func TestGenderBalance_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, preset.GenderBalance{Male: 35, Female: 65}.Validate())
	require.ErrorIs(t, preset.GenderBalance{Male: 50, Female: 49}.Validate(), preset.ErrDistributionSum)
	require.ErrorIs(t, preset.GenderBalance{Male: 110, Female: -10}.Validate(), preset.ErrNegativeWeight)
	require.ErrorIs(t, preset.GenderBalance{Male: math.NaN(), Female: 100}.Validate(), preset.ErrNegativeWeight)
	require.ErrorIs(t, preset.GenderBalance{Male: 50, Female: math.Inf(1)}.Validate(), preset.ErrNegativeWeight)
}

package preset_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/bretbouchard/choral-v2/internal/preset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scalarParameterKeys = []string{
	"num_voices", "master_gain", "language", "lyrics", "synthesis_method",
	"formant_mix", "subharmonic_mix", "stereo_width", "vibrato_rate", "vibrato_depth",
	"reverb_mix", "reverb_size", "attack_time", "release_time",
	"enable_anti_aliasing", "enable_spectral_enhancement", "oversampling_factor",
	"pitch_variation", "timing_variation", "formant_variation",
	"breathiness", "warmth", "brightness",
}

func decodeGeneric(t *testing.T, data []byte) map[string]any {
	t.Helper()

	var doc map[string]any

	err := json.Unmarshal(data, &doc)
	require.NoError(t, err)

	return doc
}

func parameterKeys(t *testing.T, data []byte) []string {
	t.Helper()

	params, ok := decodeGeneric(t, data)["parameters"].(map[string]any)
	require.True(t, ok)

	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}

	return keys
}

func TestEncode_ParameterKeySet(t *testing.T) {
	t.Parallel()

	builder := newTestBuilder()

	def := bassDefinition()
	def.VoiceTypes = nil

	plain, err := builder.Build(def)
	require.NoError(t, err)

	data, err := preset.Encode(plain)
	require.NoError(t, err)
	require.Len(t, scalarParameterKeys, 23)
	assert.ElementsMatch(t, scalarParameterKeys, parameterKeys(t, data))

	def.VoiceTypes = map[string]float64{"soprano": 50, "alto": 50}
	def.GenderBalance = &preset.GenderBalance{Male: 0, Female: 100}

	ensemble, err := builder.Build(def)
	require.NoError(t, err)

	data, err = preset.Encode(ensemble)
	require.NoError(t, err)

	want := append(append([]string{}, scalarParameterKeys...), "voice_types", "gender_balance")
	assert.ElementsMatch(t, want, parameterKeys(t, data))
}

func TestEncode_Layout(t *testing.T) {
	t.Parallel()

	record, err := newTestBuilder().Build(bassDefinition())
	require.NoError(t, err)

	data, err := preset.Encode(record)
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "{\n  \"metadata\": {\n    \"name\": \"Male 1: Bass\","))
	assert.True(t, strings.HasSuffix(text, "}\n"))
	assert.Contains(t, text, `"created_date": "2026-01-12T09:30:15Z"`)
	assert.Contains(t, text, `"is_factory": true`)
	assert.Contains(t, text, `"is_read_only": true`)

	doc := decodeGeneric(t, data)
	metadata, ok := doc["metadata"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Male 1: Bass", metadata["name"])
	assert.Equal(t, preset.DefaultCategory, metadata["category"])
	assert.Equal(t, []any{"male", "bass", "low", "deep", "choir"}, metadata["tags"])
}

func TestEncodeDecode_Lossless(t *testing.T) {
	t.Parallel()

	def := bassDefinition()
	def.Category = "Gender"
	def.Description = "Tenor <solo> & \"friends\""
	def.VibratoRate = preset.Float(4.5)
	def.VoiceTypes = map[string]float64{"soprano": 35, "alto": 25, "mezzo_soprano": 10, "tenor": 20, "bass": 10}
	def.GenderBalance = &preset.GenderBalance{Male: 40, Female: 60}

	original, err := newTestBuilder().Build(def)
	require.NoError(t, err)

	data, err := preset.Encode(original)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<solo> &", "HTML characters are written verbatim")

	decoded, err := preset.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)

	again, err := preset.Encode(decoded)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestDecode_RejectsInvalidArtifacts(t *testing.T) {
	t.Parallel()

	record, err := newTestBuilder().Build(bassDefinition())
	require.NoError(t, err)

	data, err := preset.Encode(record)
	require.NoError(t, err)

	tests := []struct {
		name    string
		old     string
		new     string
		wantErr error
	}{
		{"unknown voice type", `"bass": 100`, `"castrato": 100`, preset.ErrUnknownVoiceType},
		{"out of range", `"warmth": 70`, `"warmth": 170`, preset.ErrOutOfRange},
		{"user preset", `"is_read_only": true`, `"is_read_only": false`, preset.ErrNotFactory},
		{"bad oversampling", `"oversampling_factor": 1`, `"oversampling_factor": 3`, preset.ErrInvalid},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			mutated := strings.Replace(string(data), testCase.old, testCase.new, 1)
			require.NotEqual(t, string(data), mutated, "fixture must contain %q", testCase.old)

			_, err := preset.Decode([]byte(mutated))
			require.ErrorIs(t, err, testCase.wantErr)
		})
	}
}

func TestEncode_NullTagsBecomeEmptyList(t *testing.T) {
	t.Parallel()

	record, err := newTestBuilder().Build(bassDefinition())
	require.NoError(t, err)

	data, err := preset.Encode(record)
	require.NoError(t, err)

	doc := decodeGeneric(t, data)
	metadata, ok := doc["metadata"].(map[string]any)
	require.True(t, ok)

	metadata["tags"] = nil

	withNull, err := json.Marshal(doc)
	require.NoError(t, err)

	decoded, err := preset.Decode(withNull)
	require.NoError(t, err)
	assert.Nil(t, decoded.Metadata.Tags)

	encoded, err := preset.Encode(decoded)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"tags": []`)
	assert.NotContains(t, string(encoded), `"tags": null`)
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	_, err := preset.Decode([]byte("{not json"))
	require.Error(t, err)
}

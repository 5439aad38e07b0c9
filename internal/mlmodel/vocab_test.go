package mlmodel

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVocabulary_EncodeDecodeRoundTrip(t *testing.T) {
	vocab, err := NewVocabulary("gender", []string{"female", "male"})
	require.NoError(t, err)

	for _, label := range vocab.Labels() {
		code, err := vocab.Encode(label)
		require.NoError(t, err)
		decoded, err := vocab.Decode(code)
		require.NoError(t, err)
		assert.Equal(t, label, decoded)
	}
}

func TestVocabulary_EncodeUnknownLabel(t *testing.T) {
	vocab, err := NewVocabulary("intensity_level", []string{"high", "low", "medium"})
	require.NoError(t, err)

	_, err = vocab.Encode("extreme")
	require.Error(t, err)

	var encErr *EncodingError
	require.True(t, errors.As(err, &encErr))
	assert.Equal(t, "intensity_level", encErr.Vocabulary)
	assert.Equal(t, "extreme", encErr.Value)
	assert.Equal(t, []string{"high", "low", "medium"}, encErr.Accepted)
	assert.Contains(t, err.Error(), "must be one of: [high, low, medium]")
}

func TestVocabulary_DecodeUnknownCode(t *testing.T) {
	vocab, err := NewVocabulary("exercise_type", []string{"cardio", "strength", "yoga"})
	require.NoError(t, err)

	_, err = vocab.Decode(3)
	require.Error(t, err)

	var stateErr *ModelStateError
	require.True(t, errors.As(err, &stateErr))
	assert.Equal(t, "exercise_type", stateErr.Vocabulary)
	assert.Equal(t, 3, stateErr.Code)

	_, err = vocab.Decode(-1)
	require.Error(t, err)
}

func TestNewVocabulary_Invalid(t *testing.T) {
	_, err := NewVocabulary("empty", nil)
	require.Error(t, err)

	_, err = NewVocabulary("dup", []string{"male", "male"})
	require.Error(t, err)
}

func TestLoadVocabularies(t *testing.T) {
	vocabsPath := filepath.Join(t.TempDir(), "encoders.json")
	content := `{
		"gender": ["female", "male"],
		"exercise_type": ["cardio", "strength", "swimming", "walking", "yoga"],
		"intensity_level": ["high", "low", "medium"]
	}`
	require.NoError(t, os.WriteFile(vocabsPath, []byte(content), 0o600))

	vocabs, err := LoadVocabularies(vocabsPath, "gender", "exercise_type", "intensity_level")
	require.NoError(t, err)
	require.Len(t, vocabs, 3)

	code, err := vocabs["gender"].Encode("male")
	require.NoError(t, err)
	assert.Equal(t, 1, code)

	// required vocabulary missing -> fail fast
	_, err = LoadVocabularies(vocabsPath, "gender", "activity_level")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "activity_level")
}

func TestLoadVocabularies_FileErrors(t *testing.T) {
	_, err := LoadVocabularies(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)

	badPath := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(badPath, []byte("not json"), 0o600))
	_, err = LoadVocabularies(badPath)
	require.Error(t, err)
}

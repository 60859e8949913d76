package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVerbosity(t *testing.T) {
	cases := map[string]Verbosity{
		"extensive": VerbosityExtensive,
		"Extenso":   VerbosityExtensive,
		"moderate":  VerbosityModerate,
		" moderado": VerbosityModerate,
		"CONCISO":   VerbosityConcise,
		"concise":   VerbosityConcise,
	}
	for in, want := range cases {
		got, err := ParseVerbosity(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseVerbosity("brief")
	assert.ErrorIs(t, err, ErrUnknownVerbosity)
}

func TestParseCreativeKind(t *testing.T) {
	k, err := ParseCreativeKind("visual")
	require.NoError(t, err)
	assert.Equal(t, CreativeVisualGuide, k)

	k, err = ParseCreativeKind("copywriting")
	require.NoError(t, err)
	assert.Equal(t, CreativeCopywriting, k)

	_, err = ParseCreativeKind("video")
	assert.ErrorIs(t, err, ErrUnknownCreativeKind)
}

func TestDefaultSummaryOptions(t *testing.T) {
	opts := DefaultSummaryOptions()
	assert.Equal(t, VerbosityModerate, opts.Verbosity)
	assert.True(t, opts.BulletPoints)
	assert.True(t, opts.PreserveTerminology)
}

func TestErrorsUnwrap(t *testing.T) {
	cause := errors.New("quota exceeded")
	var err error = &GenerationError{Mode: ModeChat, Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "chat generation failed: quota exceeded", err.Error())

	var cfgErr error = &ConfigError{Op: "load guidelines", Err: cause}
	assert.ErrorIs(t, cfgErr, cause)

	v := &ValidationError{Field: "text", Message: "empty"}
	assert.Equal(t, "invalid text: empty", v.Error())
}

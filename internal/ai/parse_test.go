package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/dentassist/dentsync/pkg/errors"
)

type payload struct {
	Summary string `json:"summary"`
}

func TestDecodeStructured(t *testing.T) {
	var out payload
	require.NoError(t, DecodeStructured(`{"summary":"likely pulpitis"}`, &out))
	assert.Equal(t, "likely pulpitis", out.Summary)
}

func TestDecodeStructuredStripsFences(t *testing.T) {
	raw := "```json\n{\"summary\":\"fenced\"}\n```"

	var out payload
	require.NoError(t, DecodeStructured(raw, &out))
	assert.Equal(t, "fenced", out.Summary)

	raw = "```\n{\"summary\":\"bare fence\"}\n```"
	require.NoError(t, DecodeStructured(raw, &out))
	assert.Equal(t, "bare fence", out.Summary)
}

func TestDecodeStructuredMalformed(t *testing.T) {
	var out payload
	err := DecodeStructured("The patient probably has caries.", &out)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrMalformedResponse))
}

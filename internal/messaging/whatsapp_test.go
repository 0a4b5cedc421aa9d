package messaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/dentassist/dentsync/pkg/errors"
)

func TestNormalizePhone(t *testing.T) {
	got, err := NormalizePhone("+1 (415) 555-2671")
	require.NoError(t, err)
	assert.Equal(t, "14155552671", got)

	// Digits that don't form a valid international number pass through.
	got, err = NormalizePhone("99-99")
	require.NoError(t, err)
	assert.Equal(t, "9999", got)
}

func TestNormalizePhoneRejectsEmpty(t *testing.T) {
	_, err := NormalizePhone("no digits here")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))

	_, err = NormalizePhone("")
	assert.Error(t, err)
}

func TestBuildWhatsAppLink(t *testing.T) {
	link, err := BuildWhatsAppLink("+1 415 555 2671", "Patient report for Asha Rao\nOutstanding: 125.00")
	require.NoError(t, err)

	assert.Contains(t, link, "https://wa.me/14155552671?text=")
	assert.Contains(t, link, "Asha+Rao")
	assert.NotContains(t, link, "\n")
}

func TestBuildWhatsAppLinkBadPhone(t *testing.T) {
	_, err := BuildWhatsAppLink("---", "hi")
	assert.Error(t, err)
}

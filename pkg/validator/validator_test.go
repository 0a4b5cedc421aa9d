package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTooth(t *testing.T) {
	for _, id := range []string{"1", "8", "14", "29", "32", "A", "T"} {
		assert.True(t, ValidTooth(id), id)
	}
	for _, id := range []string{"", "0", "33", "99", "U", "a", "1A", "014"} {
		assert.False(t, ValidTooth(id), id)
	}
}

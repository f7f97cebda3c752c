package hookinput

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyName(t *testing.T) {
	assert.Equal(t, "f6", keyName("F6"))
	assert.Equal(t, "f6", keyName(" KEY_F6 "))
	assert.Equal(t, "pause", keyName("Pause"))
}

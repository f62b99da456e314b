package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmail(t *testing.T) {
	tests := map[string]bool{
		"ana@example.com":   true,
		"a.b+c@sub.host.io": true,
		"ana@example":       false,
		"ana example@x.com": false,
		"@example.com":      false,
		"":                  false,
	}

	for in, want := range tests {
		assert.Equal(t, want, IsEmail(in), in)
	}
}

func TestOptional(t *testing.T) {
	assert.Nil(t, Optional("   "))

	v := Optional("  window seat ")
	require.NotNil(t, v)
	assert.Equal(t, "window seat", *v)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Nil(t, NormalizeEmail(""))

	v := NormalizeEmail(" Ana@Example.COM ")
	require.NotNil(t, v)
	assert.Equal(t, "ana@example.com", *v)
}

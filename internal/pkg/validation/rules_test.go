package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidISSN(t *testing.T) {
	cases := map[string]bool{
		"1234-5678": true,
		"0317-847X": true,
		"0317-847x": true,
		"12345678":  false,
		"1234-567":  false,
		"":          false,
	}
	for in, want := range cases {
		assert.Equal(t, want, IsValidISSN(in), in)
	}
}

func TestIsValidClock(t *testing.T) {
	assert.True(t, IsValidClock("09:00"))
	assert.True(t, IsValidClock("23:59"))
	assert.False(t, IsValidClock("24:00"))
	assert.False(t, IsValidClock("9:00"))
}

func TestIsStrongPassword(t *testing.T) {
	assert.True(t, IsStrongPassword("sempozyum1"))
	assert.False(t, IsStrongPassword("short1"))
	assert.False(t, IsStrongPassword("onlyletters"))
	assert.False(t, IsStrongPassword("12345678"))
}

func TestStringValidationRunes(t *testing.T) {
	// "Işık" is four runes but more bytes
	assert.True(t, NewStringValidation("Işık").WithMaxLength(4).Validate())
	assert.True(t, NewStringValidation("").WithRequired(false).WithMinLength(3).Validate())
	assert.False(t, NewStringValidation("").Validate())
}

package lead

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPhone(t *testing.T) {
	testCases := []struct {
		name  string
		phone string
		valid bool
	}{
		{"mobile nine digits", "333123456", true},
		{"mobile ten digits", "3331234567", true},
		{"mobile with country code", "+393331234567", true},
		{"country code nine digits", "+39333123456", true},
		{"surrounding whitespace is trimmed", "  3331234567  ", true},
		{"empty", "", false},
		{"too short", "33312345", false},
		{"too long", "33312345678", false},
		{"landline prefix", "0212345678", false},
		{"does not start with 3", "4331234567", false},
		{"country code without plus", "393331234567", false},
		{"wrong country code", "+443331234567", false},
		{"letters", "333abc4567", false},
		{"internal spaces", "333 123 4567", false},
		{"plus only", "+3331234567", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, IsValidPhone(tc.phone), "phone: %q", tc.phone)
		})
	}
}

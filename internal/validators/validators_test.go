package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPhoneNumber(t *testing.T) {
	valid := []string{
		"9876543210",
		"+919876543210",
		"  9876543210  ",
		"123456789012345",
	}
	for _, p := range valid {
		assert.True(t, IsPhoneNumber(p), p)
	}

	invalid := []string{
		"",
		"12345",
		"98765-43210",
		"+",
		"abcdefghij",
		"1234567890123456",
	}
	for _, p := range invalid {
		assert.False(t, IsPhoneNumber(p), p)
	}
}

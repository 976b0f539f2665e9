package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func neverExists(string) (bool, error) { return false, nil }

func TestGenerateCodeFormat(t *testing.T) {
	code, err := GenerateCode(6, neverExists)
	require.NoError(t, err)
	assert.Len(t, code, 6)

	for _, c := range code {
		assert.Contains(t, codeAlphabet, string(c))
	}
}

func TestGenerateCodeExcludesAmbiguous(t *testing.T) {
	for _, forbidden := range []string{"O", "0", "I", "1"} {
		assert.NotContains(t, codeAlphabet, forbidden)
	}
	assert.Len(t, codeAlphabet, 32)

	// Statistical check over many draws.
	for i := 0; i < 50; i++ {
		code, err := GenerateCode(6, neverExists)
		require.NoError(t, err)
		for _, forbidden := range []string{"O", "0", "I", "1"} {
			assert.NotContains(t, code, forbidden)
		}
	}
}

func TestGenerateCodeMinimumLength(t *testing.T) {
	code, err := GenerateCode(3, neverExists)
	require.NoError(t, err)
	assert.Len(t, code, DefaultCodeLength)

	code, err = GenerateCode(8, neverExists)
	require.NoError(t, err)
	assert.Len(t, code, 8)
}

func TestGenerateCodeRetriesOnCollision(t *testing.T) {
	calls := 0
	exists := func(string) (bool, error) {
		calls++
		return calls <= 3, nil
	}

	code, err := GenerateCode(6, exists)
	require.NoError(t, err)
	assert.Len(t, code, 6)
	assert.Equal(t, 4, calls)
}

func TestGenerateCodeLengthensAfterExhaustion(t *testing.T) {
	calls := 0
	exists := func(code string) (bool, error) {
		calls++
		// Every 6-character candidate collides; longer codes are free.
		return len(code) == 6, nil
	}

	code, err := GenerateCode(6, exists)
	require.NoError(t, err)
	assert.Len(t, code, 7)
	assert.Greater(t, calls, maxCodeAttempts)
}

func TestGenerateCodeUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		code, err := GenerateCode(6, neverExists)
		require.NoError(t, err)
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}

func TestCanonicalizeCode(t *testing.T) {
	assert.Equal(t, "ABC234", CanonicalizeCode("abc234"))
	assert.Equal(t, "ABC234", CanonicalizeCode("  Abc234 \n"))
	assert.Equal(t, strings.ToUpper("xyz789"), CanonicalizeCode("xyz789"))
}

func TestIsWellFormedCode(t *testing.T) {
	assert.True(t, IsWellFormedCode("ABCD23"))
	assert.True(t, IsWellFormedCode("ABCD234"))

	assert.False(t, IsWellFormedCode("ABC23"), "too short")
	assert.False(t, IsWellFormedCode("ABCD2O"), "ambiguous letter O")
	assert.False(t, IsWellFormedCode("ABCD20"), "ambiguous digit 0")
	assert.False(t, IsWellFormedCode("abcd23"), "not canonicalized")
	assert.False(t, IsWellFormedCode(""))
}

package session

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// codeAlphabet is the 32-character access code alphabet: uppercase letters
// and digits minus the ambiguous O, 0, I, 1.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// DefaultCodeLength is the initial access code length.
const DefaultCodeLength = 6

// maxCodeAttempts bounds the uniqueness retry loop before the code is
// lengthened by one character.
const maxCodeAttempts = 100

// CodeExists reports whether a candidate code is already assigned. Only
// codes on non-terminal sessions count as taken.
type CodeExists func(code string) (bool, error)

// GenerateCode produces a unique human-typeable access code of at least the
// requested length. Uniqueness is checked read-then-write against the live
// store; a narrow duplicate race is tolerated because redemption re-validates
// the session against the authenticated workstation.
func GenerateCode(length int, exists CodeExists) (string, error) {
	if length < DefaultCodeLength {
		length = DefaultCodeLength
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := randomCode(length)
		if err != nil {
			return "", err
		}
		taken, err := exists(code)
		if err != nil {
			return "", fmt.Errorf("failed to check code uniqueness: %w", err)
		}
		if !taken {
			return code, nil
		}
	}

	// The code space at this length is too contended; widen it.
	return GenerateCode(length+1, exists)
}

func randomCode(length int) (string, error) {
	var b strings.Builder
	b.Grow(length)
	alphabetLen := big.NewInt(int64(len(codeAlphabet)))

	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to draw random character: %w", err)
		}
		b.WriteByte(codeAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// CanonicalizeCode normalizes operator or client input: codes are
// case-insensitive on input and stored uppercase.
func CanonicalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsWellFormedCode reports whether a canonicalized code could have been
// generated: long enough and drawn entirely from the code alphabet.
func IsWellFormedCode(code string) bool {
	if len(code) < DefaultCodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if !strings.Contains(codeAlphabet, string(code[i])) {
			return false
		}
	}
	return true
}

package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// workstationTokenBytes is the entropy of a freshly enrolled token.
const workstationTokenBytes = 24

// WorkstationTokenService enrolls and verifies workstation identity tokens.
// The plain token is shown once at enrollment; only the bcrypt hash is
// stored.
type WorkstationTokenService struct {
	cost int
}

func NewWorkstationTokenService(cost int) *WorkstationTokenService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &WorkstationTokenService{cost: cost}
}

// Generate draws a fresh token and returns it alongside its storage hash.
func (s *WorkstationTokenService) Generate() (plainToken string, tokenHash string, err error) {
	raw := make([]byte, workstationTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("failed to draw token entropy: %w", err)
	}
	plainToken = "wst_" + base64.RawURLEncoding.EncodeToString(raw)

	hash, err := bcrypt.GenerateFromPassword([]byte(plainToken), s.cost)
	if err != nil {
		return "", "", fmt.Errorf("failed to hash token: %w", err)
	}
	return plainToken, string(hash), nil
}

// Verify compares a presented token with the stored hash. The error is
// generic regardless of the cause.
func (s *WorkstationTokenService) Verify(token, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)); err != nil {
		return fmt.Errorf("token verification failed")
	}
	return nil
}

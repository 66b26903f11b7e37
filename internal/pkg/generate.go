package pkg

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const gameIDLength = 12

// GenerateGameID - generates a new url-safe game ID.
func GenerateGameID() (string, error) {
	b := make([]byte, gameIDLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

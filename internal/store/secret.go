package store

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// ServerSecret returns the bearer secret message clients must present,
// generating and storing a random one on first use.
func ServerSecret(st Store) (string, error) {
	secret, ok, err := st.Get(KeyServerSecret)
	if err != nil {
		return "", err
	}

	if ok && secret != "" {
		return secret, nil
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate server secret: %w", err)
	}

	secret = hex.EncodeToString(buf)

	if err := st.Set(KeyServerSecret, secret); err != nil {
		return "", fmt.Errorf("failed to save server secret: %w", err)
	}

	return secret, nil
}

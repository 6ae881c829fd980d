package security

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// RandomBytes reads n bytes from the system CSPRNG.
func RandomBytes(n uint32) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("read %d random bytes: %w", n, err)
	}
	return b, nil
}

// RandomToken returns n random bytes as unpadded base64url, safe for cookies and URLs.
func RandomToken(n uint32) (string, error) {
	b, err := RandomBytes(n)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

package jwt

import (
	"fmt"
	"slices"
	"time"
)

// Claims represents the JWT claims that are processed for authentication.
type Claims struct {
	UserID   string
	Audience []string
}

// Signer defines methods for signing and verifying JWT tokens.
type Signer interface {
	Sign(subject string, audience []string, duration time.Duration) (token string, err error)
	Verify(tokenString string) (*Claims, error)
}

// HasAudience reports whether aud is one of the token audiences.
func (c *Claims) HasAudience(aud string) bool {
	return slices.Contains(c.Audience, aud)
}

var _ Signer = (*StubSigner)(nil)

// StubSigner delegates to its Func fields and fails when the needed one is unset.
type StubSigner struct {
	SignFunc   func(subject string, audience []string, duration time.Duration) (string, error)
	VerifyFunc func(tokenString string) (*Claims, error)
}

func (s *StubSigner) Sign(subject string, audience []string, duration time.Duration) (string, error) {
	if s.SignFunc == nil {
		return "", errStubUnset("Sign")
	}
	return s.SignFunc(subject, audience, duration)
}

func (s *StubSigner) Verify(tokenString string) (*Claims, error) {
	if s.VerifyFunc == nil {
		return nil, errStubUnset("Verify")
	}
	return s.VerifyFunc(tokenString)
}

func errStubUnset(method string) error {
	return fmt.Errorf("jwt: StubSigner.%s is not set", method)
}

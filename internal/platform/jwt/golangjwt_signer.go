package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/ferdiebergado/finderid/internal/config"
	"github.com/ferdiebergado/finderid/internal/pkg/security"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken wraps every parse or validation failure from Verify.
var ErrInvalidToken = errors.New("invalid token")

// clockSkew tolerates small clock drift between app instances.
const clockSkew = 5 * time.Second

// GolangJWTSigner signs HS256 tokens carrying a subject, audiences and a random jti.
type GolangJWTSigner struct {
	key    []byte
	issuer string
	jtiLen uint32
	parser *jwt.Parser
	now    func() time.Time
}

var _ Signer = (*GolangJWTSigner)(nil)

func NewGolangJWTSigner(cfg *config.JWT, key string) *GolangJWTSigner {
	return &GolangJWTSigner{
		key:    []byte(key),
		issuer: cfg.Issuer,
		jtiLen: cfg.JTILength,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(cfg.Issuer),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(clockSkew),
		),
		now: time.Now,
	}
}

func (s *GolangJWTSigner) Sign(subject string, audience []string, ttl time.Duration) (string, error) {
	jti, err := security.RandomToken(s.jtiLen)
	if err != nil {
		return "", fmt.Errorf("jti: %w", err)
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		ID:        jti,
		Issuer:    s.issuer,
		Subject:   subject,
		Audience:  audience,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token for %s: %w", subject, err)
	}
	return token, nil
}

// Verify checks signature, issuer and time claims. Audience checks are left to the
// caller through Claims.HasAudience since one signer serves several audiences.
func (s *GolangJWTSigner) Verify(tokenString string) (*Claims, error) {
	var rc jwt.RegisteredClaims
	if _, err := s.parser.ParseWithClaims(tokenString, &rc, s.keyFunc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if rc.Subject == "" {
		return nil, fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}

	return &Claims{UserID: rc.Subject, Audience: rc.Audience}, nil
}

func (s *GolangJWTSigner) keyFunc(*jwt.Token) (any, error) {
	return s.key, nil
}

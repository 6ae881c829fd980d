package hash

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/ferdiebergado/finderid/internal/config"
	"github.com/ferdiebergado/finderid/internal/pkg/security"
	"golang.org/x/crypto/argon2"
)

var ErrInvalidHash = errors.New("invalid hash format")

// Hasher turns passwords into stored hashes and checks them back.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hashed string) (bool, error)
	// NeedsRehash reports whether hashed was produced with other cost parameters.
	NeedsRehash(hashed string) bool
}

const argon2Prefix = "argon2id"

type argon2Params struct {
	memory     uint32
	iterations uint32
	threads    uint8
}

// encoded is a parsed PHC string: $argon2id$v=19$m=..,t=..,p=..$salt$key
type encoded struct {
	version int
	params  argon2Params
	salt    []byte
	key     []byte
}

func (e encoded) String() string {
	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2Prefix, e.version, e.params.memory, e.params.iterations, e.params.threads,
		base64.RawStdEncoding.EncodeToString(e.salt),
		base64.RawStdEncoding.EncodeToString(e.key))
}

func decode(hashed string) (encoded, error) {
	var e encoded

	parts := strings.Split(hashed, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != argon2Prefix {
		return e, ErrInvalidHash
	}

	if _, err := fmt.Sscanf(parts[2], "v=%d", &e.version); err != nil {
		return e, fmt.Errorf("%w: version: %w", ErrInvalidHash, err)
	}

	p := &e.params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.iterations, &p.threads); err != nil {
		return e, fmt.Errorf("%w: params: %w", ErrInvalidHash, err)
	}

	var err error
	if e.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return e, fmt.Errorf("%w: salt: %w", ErrInvalidHash, err)
	}
	if e.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return e, fmt.Errorf("%w: key: %w", ErrInvalidHash, err)
	}
	if len(e.key) == 0 || uint64(len(e.key)) > uint64(^uint32(0)) {
		return e, fmt.Errorf("%w: key length %d", ErrInvalidHash, len(e.key))
	}

	return e, nil
}

// Argon2Hasher hashes passwords with argon2id and a server-side pepper.
type Argon2Hasher struct {
	params  argon2Params
	saltLen uint32
	keyLen  uint32
	pepper  string
}

var _ Hasher = (*Argon2Hasher)(nil)

func NewArgon2Hasher(cfg *config.Argon2, pepper string) *Argon2Hasher {
	return &Argon2Hasher{
		params: argon2Params{
			memory:     cfg.Memory,
			iterations: cfg.Iterations,
			threads:    cfg.Threads,
		},
		saltLen: cfg.SaltLength,
		keyLen:  cfg.KeyLength,
		pepper:  pepper,
	}
}

func (h *Argon2Hasher) derive(plain string, salt []byte, p argon2Params, keyLen uint32) []byte {
	return argon2.IDKey([]byte(plain+h.pepper), salt, p.iterations, p.memory, p.threads, keyLen)
}

func (h *Argon2Hasher) Hash(plain string) (string, error) {
	salt, err := security.RandomBytes(h.saltLen)
	if err != nil {
		return "", fmt.Errorf("generate %d byte salt: %w", h.saltLen, err)
	}

	return encoded{
		version: argon2.Version,
		params:  h.params,
		salt:    salt,
		key:     h.derive(plain, salt, h.params, h.keyLen),
	}.String(), nil
}

// Verify recomputes the key with the parameters stored in hashed, so hashes made
// under older settings still verify.
func (h *Argon2Hasher) Verify(plain, hashed string) (bool, error) {
	e, err := decode(hashed)
	if err != nil {
		return false, err
	}

	//nolint:gosec // key length bounded in decode
	key := h.derive(plain, e.salt, e.params, uint32(len(e.key)))
	return subtle.ConstantTimeCompare(key, e.key) == 1, nil
}

func (h *Argon2Hasher) NeedsRehash(hashed string) bool {
	e, err := decode(hashed)
	if err != nil {
		return true
	}
	return e.version != argon2.Version || e.params != h.params || len(e.key) != int(h.keyLen)
}

package hash_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/ferdiebergado/finderid/internal/config"
	"github.com/ferdiebergado/finderid/internal/platform/hash"
)

func newHasher() *hash.Argon2Hasher {
	cfg := &config.Argon2{
		Memory:     16 * 1024,
		Iterations: 1,
		Threads:    1,
		SaltLength: 16,
		KeyLength:  32,
	}
	return hash.NewArgon2Hasher(cfg, "paminta")
}

func TestArgon2Hasher_Hash(t *testing.T) {
	t.Parallel()

	hashed, err := newHasher().Hash("rice")
	if err != nil {
		t.Fatal(err)
	}

	parts := strings.Split(hashed, "$")
	if gotLen, wantLen := len(parts), 6; gotLen != wantLen {
		t.Fatalf("len(parts) = %d, want: %d", gotLen, wantLen)
	}

	if gotHasher, wantHasher := parts[1], "argon2id"; gotHasher != wantHasher {
		t.Errorf("parts[1] = %s, want: %s", gotHasher, wantHasher)
	}
}

func TestArgon2Hasher_Verify(t *testing.T) {
	t.Parallel()

	hasher := newHasher()
	hashed, err := hasher.Hash("rice")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name, plain, hashed string
		want                bool
		wantErr             error
	}{
		{"matching password", "rice", hashed, true, nil},
		{"wrong password", "garlic", hashed, false, nil},
		{"malformed hash", "rice", "plain-text", false, hash.ErrInvalidHash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := hasher.Verify(tt.plain, tt.hashed)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("hasher.Verify() error = %v, want: %v", err, tt.wantErr)
			}

			if got != tt.want {
				t.Errorf("hasher.Verify() = %v, want: %v", got, tt.want)
			}
		})
	}
}

func TestArgon2Hasher_NeedsRehash(t *testing.T) {
	t.Parallel()

	current := newHasher()
	hashed, err := current.Hash("rice")
	if err != nil {
		t.Fatal(err)
	}

	stronger := hash.NewArgon2Hasher(&config.Argon2{
		Memory:     32 * 1024,
		Iterations: 2,
		Threads:    1,
		SaltLength: 16,
		KeyLength:  32,
	}, "paminta")

	if current.NeedsRehash(hashed) {
		t.Error("current.NeedsRehash(hashed) = true, want: false")
	}
	if !stronger.NeedsRehash(hashed) {
		t.Error("stronger.NeedsRehash(hashed) = false, want: true")
	}
	if !current.NeedsRehash("plain-text") {
		t.Error("current.NeedsRehash(plain-text) = false, want: true")
	}

	ok, err := stronger.Verify("rice", hashed)
	if err != nil || !ok {
		t.Errorf("stronger.Verify(old hash) = %v, %v, want: true, nil", ok, err)
	}
}

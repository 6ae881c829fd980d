package hash

import "errors"

var errStubUnset = errors.New("hash: stub func not set")

// StubHasher delegates to its Func fields. An unset NeedsRehashFunc reports false.
type StubHasher struct {
	HashFunc        func(plain string) (string, error)
	VerifyFunc      func(plain, hashed string) (bool, error)
	NeedsRehashFunc func(hashed string) bool
}

var _ Hasher = (*StubHasher)(nil)

func (h *StubHasher) Hash(plain string) (string, error) {
	if h.HashFunc == nil {
		return "", errStubUnset
	}
	return h.HashFunc(plain)
}

func (h *StubHasher) Verify(plain, hashed string) (bool, error) {
	if h.VerifyFunc == nil {
		return false, errStubUnset
	}
	return h.VerifyFunc(plain, hashed)
}

func (h *StubHasher) NeedsRehash(hashed string) bool {
	if h.NeedsRehashFunc == nil {
		return false
	}
	return h.NeedsRehashFunc(hashed)
}

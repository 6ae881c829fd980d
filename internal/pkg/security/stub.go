package security

import (
	"errors"
	"net/http"
)

var _ Baker = (*StubBaker)(nil)

type StubBaker struct {
	BakeFunc  func() (*http.Cookie, error)
	CheckFunc func(c *http.Cookie) error
}

func (b *StubBaker) Bake() (*http.Cookie, error) {
	if b.BakeFunc == nil {
		return nil, errors.New("Bake() not implemented by stub")
	}
	return b.BakeFunc()
}

func (b *StubBaker) Check(c *http.Cookie) error {
	if b.CheckFunc == nil {
		return errors.New("Check() not implemented by stub")
	}
	return b.CheckFunc(c)
}

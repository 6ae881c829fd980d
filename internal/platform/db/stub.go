package db

import (
	"context"
)

// StubTxManager runs fn directly, or delegates to RunInTxFunc when set.
type StubTxManager struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

var _ TxManager = (*StubTxManager)(nil)

func (s *StubTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.RunInTxFunc == nil {
		return fn(ctx)
	}

	return s.RunInTxFunc(ctx, fn)
}

package web

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoParams is returned when the request context carries no decoded payload of the asked type.
var ErrNoParams = errors.New("no request params")

type paramsKey struct{}

// NewContextWithParams stores a decoded request payload for the handlers down the chain.
//
//nolint:ireturn // wraps the parent context
func NewContextWithParams(parent context.Context, params any) context.Context {
	return context.WithValue(parent, paramsKey{}, params)
}

// ParamsFromContext returns the payload stored by NewContextWithParams as a T.
//
//nolint:ireturn // generic
func ParamsFromContext[T any](ctx context.Context) (T, error) {
	params, ok := ctx.Value(paramsKey{}).(T)
	if !ok {
		return params, fmt.Errorf("%w: want %T", ErrNoParams, params)
	}
	return params, nil
}

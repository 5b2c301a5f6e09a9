// Package transactor runs repository calls inside a single unit of work.
package transactor

import (
	"context"
	"errors"
)

// Transactor represents behavior for transactors
type Transactor interface {
	WithinTransaction(context.Context, func(context.Context) error) error
}

type nopTransactor struct{}

// NewNopTransactor returns Transactor for stores without transactions support, txFunc is run as is
func NewNopTransactor() Transactor {
	return nopTransactor{}
}

func (nopTransactor) WithinTransaction(ctx context.Context, txFunc func(context.Context) error) error {
	return txFunc(ctx)
}

type afterCommitKey struct{}

type afterCommitHooks struct {
	fns []func(context.Context) error
}

func withAfterCommit(ctx context.Context) (context.Context, *afterCommitHooks) {
	hooks := &afterCommitHooks{}
	return context.WithValue(ctx, afterCommitKey{}, hooks), hooks
}

func (h *afterCommitHooks) run(ctx context.Context) error {
	var errs []error
	for _, fn := range h.fns {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// AfterCommit defers fn until transaction carried by ctx is committed.
// fn is run right away if ctx carries no transaction and dropped on rollback.
func AfterCommit(ctx context.Context, fn func(context.Context) error) error {
	if hooks, ok := ctx.Value(afterCommitKey{}).(*afterCommitHooks); ok {
		hooks.fns = append(hooks.fns, fn)
		return nil
	}
	return fn(ctx)
}

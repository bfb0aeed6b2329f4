// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package operation

import (
	"context"
	"errors"

	"github.com/mia-platform/flowdebug/internal/tuple"
)

var (
	// ErrInvalidCall is returned when a filter receives a call without arguments.
	ErrInvalidCall = errors.New("invalid filter call")
)

// FilterCall carries the arguments of a single filter invocation.
type FilterCall struct {
	Arguments *tuple.Entry
}

// Filter decides whether the current record must be removed from the stream.
// A returned error is fatal for the pipeline running the filter.
type Filter interface {
	IsRemove(ctx context.Context, call *FilterCall) (bool, error)
}

// FilterFunc adapts a plain function to the Filter interface.
type FilterFunc func(ctx context.Context, call *FilterCall) (bool, error)

// IsRemove calls f.
func (f FilterFunc) IsRemove(ctx context.Context, call *FilterCall) (bool, error) {
	return f(ctx, call)
}

func validateCall(call *FilterCall) error {
	switch {
	case call == nil:
		return ErrInvalidCall
	case call.Arguments == nil:
		return errors.Join(ErrInvalidCall, errors.New("missing arguments"))
	case len(call.Arguments.Fields) != len(call.Arguments.Tuple):
		return errors.Join(ErrInvalidCall, tuple.ErrInconsistentEntry)
	}

	return nil
}

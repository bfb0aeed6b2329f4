// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package source

import (
	"context"
	"time"

	"github.com/mia-platform/flowdebug/internal/tuple"
)

// Source produces the records flowing into a pipeline.
type Source interface {
	// StartStream sends every record on results and returns when the records are exhausted,
	// the context is cancelled or an error occurs. The source never closes results.
	StartStream(ctx context.Context, results chan<- *tuple.Entry) error
}

// ClosableSource is a Source holding resources that must be released. Close can be
// called both after a completed stream and to interrupt a running one.
type ClosableSource interface {
	Close(ctx context.Context, timeout time.Duration) error
}

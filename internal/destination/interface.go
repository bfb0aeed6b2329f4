// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package destination

import (
	"context"

	"github.com/mia-platform/flowdebug/internal/tuple"
)

// Sink receives the records that were not removed by any filter of the pipeline.
type Sink interface {
	Send(ctx context.Context, entry *tuple.Entry) error
}

// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package fake provides an in-memory source for tests.
package fake

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mia-platform/flowdebug/internal/source"
	"github.com/mia-platform/flowdebug/internal/tuple"
)

var (
	_ source.Source         = &Source{}
	_ source.ClosableSource = &Source{}
)

// Source replays a fixed list of entries. A blocking source keeps the stream open
// after the last entry until Close is called or the context ends.
type Source struct {
	tb testing.TB

	entries []*tuple.Entry
	err     error
	block   bool

	stopChannel chan struct{}
	closeOnce   sync.Once
	closed      bool
	lock        sync.Mutex
}

// NewSource returns a Source sending entries and then returning nil.
func NewSource(tb testing.TB, entries []*tuple.Entry) *Source {
	tb.Helper()
	return &Source{tb: tb, entries: entries, stopChannel: make(chan struct{})}
}

// NewBlockingSource returns a Source sending entries and then waiting to be closed.
func NewBlockingSource(tb testing.TB, entries []*tuple.Entry) *Source {
	tb.Helper()
	return &Source{tb: tb, entries: entries, block: true, stopChannel: make(chan struct{})}
}

// NewSourceWithError returns a Source sending entries and then returning err.
func NewSourceWithError(tb testing.TB, entries []*tuple.Entry, err error) *Source {
	tb.Helper()
	return &Source{tb: tb, entries: entries, err: err, stopChannel: make(chan struct{})}
}

// StartStream sends the configured entries.
func (s *Source) StartStream(ctx context.Context, results chan<- *tuple.Entry) error {
	s.tb.Helper()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	for _, entry := range s.entries {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stopChannel:
			return nil
		case results <- entry:
		}
	}

	if s.err != nil || !s.block {
		return s.err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.stopChannel:
		return nil
	}
}

// Close stops a running stream.
func (s *Source) Close(_ context.Context, _ time.Duration) error {
	s.tb.Helper()
	s.closeOnce.Do(func() {
		s.lock.Lock()
		defer s.lock.Unlock()
		s.closed = true
		close(s.stopChannel)
	})
	return nil
}

// Closed reports whether Close has been called.
func (s *Source) Closed() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.closed
}

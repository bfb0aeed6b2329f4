// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package fake provides an in-memory sink for tests.
package fake

import (
	"context"
	"sync"
	"testing"

	"github.com/mia-platform/flowdebug/internal/destination"
	"github.com/mia-platform/flowdebug/internal/tuple"
)

var _ destination.Sink = &FakeSink{}

// FakeSink records every entry it receives. When Err is set Send returns it
// without recording.
type FakeSink struct {
	tb testing.TB

	Err error

	lock     sync.Mutex
	received []*tuple.Entry
}

func NewFakeSink(tb testing.TB) *FakeSink {
	tb.Helper()
	return &FakeSink{tb: tb}
}

func (f *FakeSink) Send(_ context.Context, entry *tuple.Entry) error {
	f.tb.Helper()
	if f.Err != nil {
		return f.Err
	}

	f.lock.Lock()
	defer f.lock.Unlock()
	f.received = append(f.received, entry)
	return nil
}

// Received returns a copy of the received entries.
func (f *FakeSink) Received() []*tuple.Entry {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]*tuple.Entry{}, f.received...)
}

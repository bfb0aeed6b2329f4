// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package writer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/mia-platform/flowdebug/internal/destination"
	"github.com/mia-platform/flowdebug/internal/tuple"
)

var (
	// ErrWriterSink wraps errors emitted by the writer sink.
	ErrWriterSink = errors.New("writer sink")
)

var _ destination.Sink = &writerSink{}

type writerSink struct {
	writer io.Writer

	lock sync.Mutex
}

// NewSink returns a Sink writing JSON lines to w.
func NewSink(w io.Writer) destination.Sink {
	return &writerSink{writer: w}
}

func (d *writerSink) Send(_ context.Context, entry *tuple.Entry) error {
	line, err := encodeEntry(entry)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriterSink, err)
	}

	d.lock.Lock()
	defer d.lock.Unlock()
	if _, err := io.WriteString(d.writer, line); err != nil {
		return fmt.Errorf("%w: %w", ErrWriterSink, err)
	}
	return nil
}

// encodeEntry builds the object by hand because a map would lose the field order.
func encodeEntry(entry *tuple.Entry) (string, error) {
	if entry == nil || len(entry.Fields) != len(entry.Tuple) {
		return "", tuple.ErrInconsistentEntry
	}

	builder := new(strings.Builder)
	builder.WriteString("{")
	for idx, name := range entry.Fields {
		if idx > 0 {
			builder.WriteString(",")
		}

		key, err := json.Marshal(name)
		if err != nil {
			return "", err
		}
		value, err := json.Marshal(entry.Tuple[idx])
		if err != nil {
			return "", fmt.Errorf("field %q: %w", name, err)
		}

		builder.Write(key)
		builder.WriteString(":")
		builder.Write(value)
	}
	builder.WriteString("}\n")
	return builder.String(), nil
}

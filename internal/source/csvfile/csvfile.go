// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package csvfile implements a source reading records from comma separated files.
// The first row names the fields, every following row is a record.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mia-platform/flowdebug/internal/logger"
	"github.com/mia-platform/flowdebug/internal/source"
	"github.com/mia-platform/flowdebug/internal/tuple"
)

const (
	loggerName = "flowdebug:source:csv"
)

var (
	// ErrCSVSource wraps errors emitted by the csv source.
	ErrCSVSource = errors.New("csv source")
	// ErrMissingHeader is returned when the input has no header row.
	ErrMissingHeader = errors.New("missing header row")
)

var (
	_ source.Source         = &Source{}
	_ source.ClosableSource = &Source{}
)

// Options tweak how the input is parsed.
type Options struct {
	// Comma is the field delimiter, ',' when zero.
	Comma rune
	// EmptyAsNull turns empty cells into nil values.
	EmptyAsNull bool
}

// Source streams the rows of a csv input.
type Source struct {
	reader  io.Reader
	closer  io.Closer
	options Options

	closeOnce sync.Once
}

// NewSource returns a Source reading from reader.
func NewSource(reader io.Reader, options Options) *Source {
	return &Source{reader: reader, options: options}
}

// NewSourceFromPath opens the file at path and returns a Source reading it.
func NewSourceFromPath(path string, options Options) (*Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCSVSource, err)
	}

	return &Source{reader: file, closer: file, options: options}, nil
}

// StartStream reads the header and sends one entry per following row.
func (s *Source) StartStream(ctx context.Context, results chan<- *tuple.Entry) error {
	log := logger.Named(ctx, loggerName)

	reader := csv.NewReader(s.reader)
	if s.options.Comma != 0 {
		reader.Comma = s.options.Comma
	}
	reader.ReuseRecord = false

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: %w", ErrCSVSource, ErrMissingHeader)
		}
		return fmt.Errorf("%w: %w", ErrCSVSource, err)
	}
	fields := tuple.Fields(header)
	log.Debug("csv header read", "fields", fields.Print())

	rows := 0
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			log.Debug("csv input exhausted", "rows", rows)
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCSVSource, err)
		}

		entry, err := tuple.NewEntry(fields, s.values(row))
		if err != nil {
			return fmt.Errorf("%w: row %d: %w", ErrCSVSource, rows+1, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case results <- entry:
			rows++
		}
	}
}

func (s *Source) values(row []string) tuple.Tuple {
	values := make(tuple.Tuple, len(row))
	for idx, cell := range row {
		if s.options.EmptyAsNull && cell == "" {
			continue
		}
		values[idx] = cell
	}
	return values
}

// Close releases the underlying file, if the source opened one.
func (s *Source) Close(_ context.Context, _ time.Duration) error {
	var err error
	s.closeOnce.Do(func() {
		if s.closer != nil {
			err = s.closer.Close()
		}
	})
	return err
}

// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mia-platform/flowdebug/internal/destination"
	"github.com/mia-platform/flowdebug/internal/logger"
	"github.com/mia-platform/flowdebug/internal/operation"
	"github.com/mia-platform/flowdebug/internal/source"
	"github.com/mia-platform/flowdebug/internal/tuple"
)

const (
	loggerName = "flowdebug:pipeline"
)

// Stats counts the records handled by a single run.
type Stats struct {
	Read    int
	Removed int
	Sent    int
}

// Pipeline moves the entries of a source through the filters and into a sink.
type Pipeline struct {
	source  source.Source
	filters []operation.Filter
	sink    destination.Sink
}

// New returns a Pipeline reading from src, applying filters in order and sending
// the remaining records to sink.
func New(src source.Source, filters []operation.Filter, sink destination.Sink) (*Pipeline, error) {
	switch {
	case src == nil:
		return nil, fmt.Errorf("%w: missing source", ErrInvalidPipeline)
	case sink == nil:
		return nil, fmt.Errorf("%w: missing sink", ErrInvalidPipeline)
	}

	for idx, filter := range filters {
		if filter == nil {
			return nil, fmt.Errorf("%w: stage %d is nil", ErrInvalidPipeline, idx)
		}
	}

	return &Pipeline{
		source:  src,
		filters: filters,
		sink:    sink,
	}, nil
}

// Start runs the pipeline until the source is exhausted. A filter or sink error stops
// the source and is returned; otherwise the source error, if any, is returned.
func (p *Pipeline) Start(ctx context.Context) error {
	_, err := p.run(ctx)
	return err
}

// Run is like Start but also reports the run counters.
func (p *Pipeline) Run(ctx context.Context) (Stats, error) {
	return p.run(ctx)
}

func (p *Pipeline) run(ctx context.Context) (Stats, error) {
	log := logger.Named(ctx, loggerName).With("run", uuid.NewString())
	runCtx, cancel := context.WithCancelCause(logger.WithContext(ctx, log))
	defer cancel(nil)

	log.Trace("starting data pipeline", "stages", len(p.filters))
	channel := make(chan *tuple.Entry)

	var stats Stats
	var processingErr error
	processingDone := make(chan struct{})
	go func() {
		defer close(processingDone)
		log.Trace("starting processing goroutine")
		if processingErr = p.processing(runCtx, channel, &stats); processingErr != nil {
			cancel(processingErr)
		}
	}()

	err := p.source.StartStream(runCtx, channel)
	log.Trace("source stream finished, closing data channel")
	close(channel)

	<-processingDone
	log.Info("pipeline finished", "read", stats.Read, "removed", stats.Removed, "sent", stats.Sent)
	if processingErr != nil {
		log.Error("pipeline stopped", "error", processingErr)
		return stats, processingErr
	}

	return stats, err
}

func (p *Pipeline) processing(ctx context.Context, channel <-chan *tuple.Entry, stats *Stats) error {
	log := logger.FromContext(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Debug("pipeline cancelled from context", "error", ctx.Err())
			return nil
		case entry, ok := <-channel:
			if !ok {
				return nil
			}
			stats.Read++

			removed, err := p.apply(ctx, entry)
			if err != nil {
				return err
			}
			if removed {
				stats.Removed++
				continue
			}

			if err := p.sink.Send(ctx, entry); err != nil {
				return fmt.Errorf("%w: %w", ErrSinkFailed, err)
			}
			stats.Sent++
		}
	}
}

// apply runs the filters in order and stops at the first one removing the entry.
func (p *Pipeline) apply(ctx context.Context, entry *tuple.Entry) (bool, error) {
	call := &operation.FilterCall{Arguments: entry}
	for idx, filter := range p.filters {
		remove, err := filter.IsRemove(ctx, call)
		if err != nil {
			return false, fmt.Errorf("%w: stage %d: %w", ErrStageFailed, idx, err)
		}

		if remove {
			logger.FromContext(ctx).Trace("record removed", "stage", idx)
			return true, nil
		}
	}

	return false, nil
}

// Stop closes the source when it supports it.
func (p *Pipeline) Stop(ctx context.Context, timeout time.Duration) error {
	log := logger.Named(ctx, loggerName)
	closableSource, ok := p.source.(source.ClosableSource)
	if !ok {
		log.Debug("source does not implement ClosableSource, skipping close")
		return nil
	}

	log.Debug("stop source")
	return closableSource.Close(ctx, timeout)
}

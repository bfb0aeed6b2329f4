// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mia-platform/flowdebug/internal/config"
	"github.com/mia-platform/flowdebug/internal/destination/writer"
	"github.com/mia-platform/flowdebug/internal/logger"
	"github.com/mia-platform/flowdebug/internal/operation"
	"github.com/mia-platform/flowdebug/internal/pipeline"
	"github.com/mia-platform/flowdebug/internal/source"
	"github.com/mia-platform/flowdebug/internal/source/csvfile"
)

const (
	runLoggerName = "flowdebug:run"
	stopTimeout   = 5 * time.Second
)

// options configures a single pipeline run.
type options struct {
	sourceName   string
	pipelineFile string
	input        string
	csvOptions   csvfile.Options
	stdin        io.Reader

	recordsFile  string
	stdout       io.Writer
	channels     operation.Channels
	sourceGetter func(*options) (source.Source, error)

	lock sync.Mutex
}

// validate checks the configured values and reports invalid setups.
func (o *options) validate() error {
	if o.sourceName == "" {
		return errNoArguments
	}

	if _, ok := availableSources[o.sourceName]; !ok {
		return fmt.Errorf("%w: %s", errInvalidSource, o.sourceName)
	}

	if o.pipelineFile == "" {
		return fmt.Errorf("%w: --%s", errMissingFlag, pipelineFileFlagName)
	}

	if o.sourceName == csvSourceName && o.input == "" {
		return fmt.Errorf("%w: --%s", errMissingFlag, inputFlagName)
	}

	return nil
}

// execute builds the pipeline and runs it until the source is exhausted.
func (o *options) execute(ctx context.Context) error {
	if !o.lock.TryLock() {
		return nil
	}
	defer o.lock.Unlock()

	log := logger.Named(ctx, runLoggerName)
	pipelineConfig, err := config.LoadPipelineConfig(o.pipelineFile)
	if err != nil {
		return err
	}

	filters, err := pipelineConfig.Filters(o.channels)
	if err != nil {
		return err
	}

	src, err := o.sourceGetter(o)
	if err != nil {
		return err
	}

	out, closeOut, err := o.recordsWriter()
	if err != nil {
		return err
	}
	defer closeOut()

	p, err := pipeline.New(src, filters, writer.NewSink(out))
	if err != nil {
		return err
	}
	defer func() {
		if err := p.Stop(context.WithoutCancel(ctx), stopTimeout); err != nil {
			log.Warn("error closing source", "error", err)
		}
	}()

	log.Debug("starting pipeline", "source", o.sourceName, "stages", len(filters))
	return p.Start(ctx)
}

// recordsWriter returns the writer receiving the surviving records and a function releasing it.
func (o *options) recordsWriter() (io.Writer, func(), error) {
	if o.recordsFile == "" {
		return o.stdout, func() {}, nil
	}

	file, err := os.Create(o.recordsFile)
	if err != nil {
		return nil, nil, err
	}
	return file, func() { file.Close() }, nil
}

// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package operation

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mia-platform/flowdebug/internal/logger"
)

const (
	debugLoggerName = "flowdebug:debug"
	prefixSeparator = ": "
)

var (
	// ErrOutputWrite wraps failures of the channel a Debug writes to.
	ErrOutputWrite = errors.New("debug output write failed")
)

var _ Filter = &Debug{}

// DebugConfig holds the Debug settings. The zero value prints only the tuple on STDERR.
type DebugConfig struct {
	// Output selects the channel receiving the lines.
	Output Output
	// Prefix, when not empty, is printed followed by ": " before every line.
	// An empty Prefix prints no separator either.
	Prefix string
	// PrintFields prints the fields line before every tuple line.
	PrintFields bool
}

// Debug is a Filter that never removes a record but prints it, and optionally its
// fields, on the configured channel.
type Debug struct {
	config DebugConfig
	writer io.Writer
}

// NewDebug returns a Debug writing on the channel selected by cfg.Output.
func NewDebug(cfg DebugConfig, channels Channels) *Debug {
	return &Debug{
		config: cfg,
		writer: channels.Writer(cfg.Output),
	}
}

// Config returns the configuration the Debug was built with.
func (d *Debug) Config() DebugConfig {
	return d.config
}

// IsRemove prints the call arguments and always returns false.
func (d *Debug) IsRemove(ctx context.Context, call *FilterCall) (bool, error) {
	if err := validateCall(call); err != nil {
		return false, err
	}

	if d.config.PrintFields {
		if err := d.print(call.Arguments.Fields.Print()); err != nil {
			return false, err
		}
	}

	if err := d.print(call.Arguments.Tuple.Print()); err != nil {
		return false, err
	}

	logger.Named(ctx, debugLoggerName).Trace("tuple printed", "output", d.config.Output.String(), "prefix", d.config.Prefix)
	return false, nil
}

// print writes message as a single line with one Write call.
func (d *Debug) print(message string) error {
	line := message + "\n"
	if d.config.Prefix != "" {
		line = d.config.Prefix + prefixSeparator + line
	}

	if _, err := io.WriteString(d.writer, line); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOutputWrite, d.config.Output, err)
	}
	return nil
}

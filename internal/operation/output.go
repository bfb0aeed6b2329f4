// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package operation

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	// ErrUnknownOutput is returned when parsing an unsupported output name.
	ErrUnknownOutput = errors.New("unknown output")
)

// Output selects one of the two standard channels.
type Output int

const (
	// OutputStderr selects the error channel. It is the zero value and the default.
	OutputStderr Output = iota
	// OutputStdout selects the standard output channel.
	OutputStdout
)

func (o Output) String() string {
	switch o {
	case OutputStderr:
		return "STDERR"
	case OutputStdout:
		return "STDOUT"
	default:
		return fmt.Sprintf("Output(%d)", int(o))
	}
}

// OutputFromString parses STDOUT or STDERR ignoring case. An empty string is the default output.
func OutputFromString(value string) (Output, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "", "STDERR":
		return OutputStderr, nil
	case "STDOUT":
		return OutputStdout, nil
	default:
		return OutputStderr, fmt.Errorf("%w: %q", ErrUnknownOutput, value)
	}
}

// Channels maps every Output to the writer receiving its text.
type Channels struct {
	Stdout io.Writer
	Stderr io.Writer
}

// StdChannels returns the process standard output and standard error.
func StdChannels() Channels {
	return Channels{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Writer returns the writer for output, never nil.
func (c Channels) Writer(output Output) io.Writer {
	var w io.Writer
	switch output {
	case OutputStdout:
		w = c.Stdout
	default:
		w = c.Stderr
	}

	if w == nil {
		return io.Discard
	}
	return w
}

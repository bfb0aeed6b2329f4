// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package operation

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputFromString(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		input         string
		expected      Output
		expectedError error
	}{
		"empty is the default":   {input: "", expected: OutputStderr},
		"stderr":                 {input: "STDERR", expected: OutputStderr},
		"stdout lowercase":       {input: "stdout", expected: OutputStdout},
		"unknown returns error":  {input: "file", expectedError: ErrUnknownOutput},
		"padded value is parsed": {input: " Stdout ", expected: OutputStdout},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			output, err := OutputFromString(tc.input)
			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.expected, output)
		})
	}
}

func TestOutputString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "STDERR", OutputStderr.String())
	assert.Equal(t, "STDOUT", OutputStdout.String())
	assert.Equal(t, "Output(7)", Output(7).String())
}

func TestChannelsWriter(t *testing.T) {
	t.Parallel()

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	channels := Channels{Stdout: stdout, Stderr: stderr}

	assert.Same(t, stdout, channels.Writer(OutputStdout))
	assert.Same(t, stderr, channels.Writer(OutputStderr))
	assert.Same(t, stderr, channels.Writer(Output(42)))
	assert.Equal(t, io.Discard, Channels{}.Writer(OutputStdout))

	std := StdChannels()
	assert.Equal(t, os.Stdout, std.Stdout)
	assert.Equal(t, os.Stderr, std.Stderr)
}

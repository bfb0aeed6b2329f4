// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package writer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mia-platform/flowdebug/internal/tuple"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, assert.AnError
}

func TestWriterSink(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	sink := NewSink(buffer)

	require.NoError(t, sink.Send(t.Context(), &tuple.Entry{
		Fields: tuple.Fields{"zeta", "alpha", "missing"},
		Tuple:  tuple.Tuple{"last", 1, nil},
	}))
	require.NoError(t, sink.Send(t.Context(), &tuple.Entry{
		Fields: tuple.Fields{"list"},
		Tuple:  tuple.Tuple{[]string{"a", "b"}},
	}))

	expectedOutput := `{"zeta":"last","alpha":1,"missing":null}
{"list":["a","b"]}
`
	assert.Equal(t, expectedOutput, buffer.String())
}

func TestWriterSinkErrors(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		entry         *tuple.Entry
		expectedError error
	}{
		"nil entry": {
			entry:         nil,
			expectedError: tuple.ErrInconsistentEntry,
		},
		"inconsistent entry": {
			entry:         &tuple.Entry{Fields: tuple.Fields{"a"}},
			expectedError: tuple.ErrInconsistentEntry,
		},
		"value that cannot be encoded": {
			entry:         &tuple.Entry{Fields: tuple.Fields{"a"}, Tuple: tuple.Tuple{make(chan int)}},
			expectedError: ErrWriterSink,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			buffer := new(bytes.Buffer)
			err := NewSink(buffer).Send(t.Context(), tc.entry)
			assert.ErrorIs(t, err, tc.expectedError)
			assert.Empty(t, buffer.String())
		})
	}

	err := NewSink(failingWriter{}).Send(t.Context(), &tuple.Entry{Fields: tuple.Fields{"a"}, Tuple: tuple.Tuple{1}})
	assert.ErrorIs(t, err, assert.AnError)
}

// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package tuple

import (
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nilStringer struct {
	value string
}

func (s *nilStringer) String() string {
	return s.value
}

func TestFieldsPrint(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		fields   Fields
		expected string
	}{
		"empty":       {fields: Fields{}, expected: "[]"},
		"nil":         {fields: nil, expected: "[]"},
		"one field":   {fields: Fields{"a"}, expected: "['a']"},
		"two fields":  {fields: Fields{"a", "b"}, expected: "['a', 'b']"},
		"line breaks": {fields: Fields{"a\nb"}, expected: `['a\nb']`},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, tc.fields.Print())
		})
	}
}

func TestTuplePrint(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		tuple    Tuple
		expected string
	}{
		"empty":    {tuple: Tuple{}, expected: "[]"},
		"strings":  {tuple: Tuple{"hello", "world"}, expected: "['hello', 'world']"},
		"numbers":  {tuple: Tuple{1, 2.5, int64(3)}, expected: "[1, 2.5, 3]"},
		"mixed":    {tuple: Tuple{"a", nil, true}, expected: "['a', null, true]"},
		"bytes":    {tuple: Tuple{[]byte("raw")}, expected: "['raw']"},
		"stringer": {tuple: Tuple{netip.MustParseAddr("10.0.0.1")}, expected: "[10.0.0.1]"},
		"typed nil stringer": {
			tuple:    Tuple{(*nilStringer)(nil), time.Time{}},
			expected: "[<nil>, 0001-01-01 00:00:00 +0000 UTC]",
		},
		"line breaks are escaped": {
			tuple:    Tuple{"line1\nline2", []byte("a\r\nb")},
			expected: `['line1\nline2', 'a\r\nb']`,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, tc.tuple.Print())
			assert.Equal(t, tc.tuple.Print(), tc.tuple.Print(), "rendering must be stable")
		})
	}
}

func TestNewEntry(t *testing.T) {
	t.Parallel()

	entry, err := NewEntry(Fields{"a", "b"}, Tuple{1, "x"})
	require.NoError(t, err)
	assert.Equal(t, "['a', 'b'] [1, 'x']", entry.Print())

	value, ok := entry.Value("b")
	assert.True(t, ok)
	assert.Equal(t, "x", value)

	_, ok = entry.Value("missing")
	assert.False(t, ok)

	_, err = NewEntry(Fields{"a"}, Tuple{1, 2})
	assert.ErrorIs(t, err, ErrInconsistentEntry)
}

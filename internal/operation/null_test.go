// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package operation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mia-platform/flowdebug/internal/tuple"
)

func TestFilterNull(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		values   tuple.Tuple
		expected bool
	}{
		"no nil values are kept":   {values: tuple.Tuple{"a", 1}, expected: false},
		"nil value is removed":     {values: tuple.Tuple{"a", nil}, expected: true},
		"empty string is not null": {values: tuple.Tuple{"", 0}, expected: false},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			remove, err := FilterNull{}.IsRemove(t.Context(), testCall(t, tuple.Fields{"x", "y"}, tc.values))
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, remove)
		})
	}

	_, err := FilterNull{}.IsRemove(t.Context(), nil)
	assert.ErrorIs(t, err, ErrInvalidCall)
}

func TestFilterFunc(t *testing.T) {
	t.Parallel()

	var called int
	filter := FilterFunc(func(_ context.Context, call *FilterCall) (bool, error) {
		called++
		return len(call.Arguments.Tuple) > 1, nil
	})

	remove, err := filter.IsRemove(t.Context(), testCall(t, tuple.Fields{"a", "b"}, tuple.Tuple{1, 2}))
	assert.NoError(t, err)
	assert.True(t, remove)
	assert.Equal(t, 1, called)
}

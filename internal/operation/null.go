// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package operation

import "context"

var _ Filter = FilterNull{}

// FilterNull removes every record holding at least one nil value.
type FilterNull struct{}

// IsRemove reports whether the call arguments hold a nil value.
func (FilterNull) IsRemove(_ context.Context, call *FilterCall) (bool, error) {
	if err := validateCall(call); err != nil {
		return false, err
	}

	for _, value := range call.Arguments.Tuple {
		if value == nil {
			return true, nil
		}
	}
	return false, nil
}

// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package pipeline

import "errors"

var (
	// ErrInvalidPipeline is returned by New when a mandatory component is missing.
	ErrInvalidPipeline = errors.New("invalid pipeline")
	// ErrStageFailed wraps the error returned by a filter. It stops the pipeline.
	ErrStageFailed = errors.New("pipeline stage failed")
	// ErrSinkFailed wraps the error returned by the sink. It stops the pipeline.
	ErrSinkFailed = errors.New("pipeline sink failed")
)

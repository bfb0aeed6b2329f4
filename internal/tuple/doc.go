// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package tuple defines the records flowing through a pipeline.
// A Tuple is an ordered list of values, Fields names its positions and an Entry
// pairs the two. All of them render to a stable text form through Print.
package tuple

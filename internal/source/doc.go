// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package source defines the contracts implemented by the record producers of a pipeline.
// A source streams tuple entries on a channel and can optionally be closed.
package source

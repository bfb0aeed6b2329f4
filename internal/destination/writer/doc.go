// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package writer implements a sink writing every received record to an io.Writer
// as a single JSON object per line, keyed by field name in field order.
package writer

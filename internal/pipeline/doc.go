// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package pipeline runs records from a source through an ordered list of filters
// and delivers the survivors to a sink.
// Every filter is invoked synchronously once per record; the first filter asking
// for removal drops the record and the following filters never see it.
package pipeline

// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package operation contains the per record operators a pipeline can run.
// Every operator implements Filter: the pipeline engine calls IsRemove once for
// each record and drops the record when it returns true. Debug is a filter that
// never removes anything and prints what it sees, FilterNull drops records
// holding null values.
package operation

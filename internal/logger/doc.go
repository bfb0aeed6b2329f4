// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package logger wraps hclog behind the small interface used across flowdebug.
// Loggers travel inside a context.Context so that pipeline stages and operators
// can log without holding a reference of their own.
package logger

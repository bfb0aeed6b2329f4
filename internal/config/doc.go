// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package config loads the pipeline definition files and the environment
// configuration of flowdebug.
package config

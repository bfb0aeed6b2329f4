// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mia-platform/flowdebug/internal/logger"
)

func TestVersionCommand(t *testing.T) {
	Version = "test"
	BuildDate = "2024-06-01"

	cmd := rootCmd()
	buffer := new(bytes.Buffer)
	cmd.SetOut(buffer)

	log := logger.NewLogger(buffer)
	ctx := logger.WithContext(t.Context(), log)

	cmd.SetArgs([]string{"--log-level", "WARN", "version"})
	require.NoError(t, cmd.ExecuteContext(ctx))

	log.Info("ignored line for set log level")
	assert.Equal(t, versionString(Version, BuildDate, runtime.Version())+"\n", buffer.String())

	buffer.Reset()
	BuildDate = ""
	cmd.SetArgs([]string{"--log-level", "WARN", "version"})
	require.NoError(t, cmd.ExecuteContext(ctx))
	assert.Equal(t, "test, Go Version: "+runtime.Version()+"\n", buffer.String())
}

func TestLogLevelFromEnvironment(t *testing.T) {
	t.Setenv("FLOWDEBUG_LOG_LEVEL", "error")

	cmd := rootCmd()
	buffer := new(bytes.Buffer)
	cmd.SetOut(new(bytes.Buffer))

	log := logger.NewLogger(buffer)
	ctx := logger.WithContext(t.Context(), log)

	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.ExecuteContext(ctx))

	log.Warn("silenced by the environment level")
	assert.Empty(t, buffer.String())

	cmd.SetArgs([]string{"--log-level", "info", "version"})
	require.NoError(t, cmd.ExecuteContext(ctx))
	log.Info("visible line")
	assert.Len(t, strings.Split(strings.TrimSpace(buffer.String()), "\n"), 1)
}

func TestRunSubcommand(t *testing.T) {
	dir := t.TempDir()
	pipelineFile := filepath.Join(dir, "pipeline.yaml")
	inputFile := filepath.Join(dir, "input.csv")
	require.NoError(t, os.WriteFile(pipelineFile, []byte("stages:\n  - type: debug\n    prefix: stage1\n"), 0o600))
	require.NoError(t, os.WriteFile(inputFile, []byte("a,b,c\n1,2,3\n"), 0o600))

	cmd := rootCmd()
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs([]string{"run", "csv", "-f", pipelineFile, "-i", inputFile})

	require.NoError(t, cmd.ExecuteContext(t.Context()))
	assert.Equal(t, "stage1: ['1', '2', '3']\n", stderr.String())
	assert.Equal(t, `{"a":"1","b":"2","c":"3"}`+"\n", stdout.String())
}

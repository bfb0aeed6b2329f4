// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerLevels(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	log := NewLogger(buffer)

	log.SetLevel(TRACE)
	named := log.WithName("stage")
	named.Info("info line")
	log.Trace("trace line")

	log.SetLevel(ERROR)
	named.Warn("silenced warn line")
	log.Error("error line")

	log.SetLevel(Level(999)) // falls back to INFO
	log.Info("info line after invalid level")
	named.Debug("silenced debug line")

	lines := strings.Split(strings.TrimSpace(buffer.String()), "\n")
	assert.Len(t, lines, 4)
}

func TestLoggerWithFields(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	log := NewLogger(buffer).With("run", "abc")
	log.Info("started")

	entry := map[string]any{}
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &entry))
	assert.Equal(t, "abc", entry["run"])
	assert.Equal(t, "started", entry["@message"])
}

func TestLevelStrings(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		input    string
		expected Level
	}{
		"trace":           {input: "TRACE", expected: TRACE},
		"debug lowercase": {input: "debug", expected: DEBUG},
		"info":            {input: "INFO", expected: INFO},
		"warn padded":     {input: " warn ", expected: WARN},
		"error":           {input: "ERROR", expected: ERROR},
		"invalid":         {input: "INVALID", expected: INFO},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, LevelFromString(tc.input))
		})
	}

	assert.Equal(t, "TRACE", TRACE.String())
	assert.Equal(t, "ERROR", ERROR.String())
	assert.Equal(t, "Level(999)", Level(999).String())
}

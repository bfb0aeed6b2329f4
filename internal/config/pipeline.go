// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mia-platform/flowdebug/internal/operation"
)

const (
	// StageTypeDebug prints every record and never removes it.
	StageTypeDebug = "debug"
	// StageTypeFilterNull removes records holding null values.
	StageTypeFilterNull = "filter-null"
)

var (
	// ErrParsing reports failures that occur while decoding pipeline files.
	ErrParsing = errors.New("error parsing")
	// ErrInvalidStage reports a stage that cannot be turned into an operator.
	ErrInvalidStage = errors.New("invalid stage")
)

// PipelineConfig is the list of stages, in execution order.
type PipelineConfig struct {
	Stages []StageConfig `json:"stages" yaml:"stages"`
}

// StageConfig describes a single operator of the pipeline.
type StageConfig struct {
	Type string `json:"type" yaml:"type"`

	// Output, Prefix and PrintFields only apply to debug stages.
	Output      string `json:"output,omitempty" yaml:"output,omitempty"`
	Prefix      string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	PrintFields bool   `json:"printFields,omitempty" yaml:"printFields,omitempty"`
}

func (s StageConfig) validate() error {
	switch strings.ToLower(s.Type) {
	case StageTypeDebug:
		_, err := operation.OutputFromString(s.Output)
		return err
	case StageTypeFilterNull:
		if s.Output != "" || s.Prefix != "" || s.PrintFields {
			return fmt.Errorf("%w: %s stage accepts no options", ErrInvalidStage, StageTypeFilterNull)
		}
		return nil
	case "":
		return fmt.Errorf("%w: missing type", ErrInvalidStage)
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidStage, s.Type)
	}
}

// Filter builds the operator described by the stage.
func (s StageConfig) Filter(channels operation.Channels) (operation.Filter, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	if strings.ToLower(s.Type) == StageTypeFilterNull {
		return operation.FilterNull{}, nil
	}

	output, _ := operation.OutputFromString(s.Output)
	return operation.NewDebug(operation.DebugConfig{
		Output:      output,
		Prefix:      s.Prefix,
		PrintFields: s.PrintFields,
	}, channels), nil
}

// Filters builds the operators of every stage, in order.
func (c *PipelineConfig) Filters(channels operation.Channels) ([]operation.Filter, error) {
	filters := make([]operation.Filter, 0, len(c.Stages))
	for idx, stage := range c.Stages {
		filter, err := stage.Filter(channels)
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", idx, err)
		}
		filters = append(filters, filter)
	}

	return filters, nil
}

// LoadPipelineConfig parses the file at path. The file can contain multiple YAML
// documents, their stages are concatenated in order.
func LoadPipelineConfig(path string) (*PipelineConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return parsePipelineConfig(path, file)
}

func parsePipelineConfig(path string, reader io.Reader) (*PipelineConfig, error) {
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	pipelineConfig := &PipelineConfig{Stages: make([]StageConfig, 0)}
	for {
		document := new(PipelineConfig)
		err := decoder.Decode(&document)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			return nil, fmt.Errorf("%w %q: %w", ErrParsing, path, err)
		}

		if document == nil {
			continue
		}

		for _, stage := range document.Stages {
			if err := stage.validate(); err != nil {
				return nil, fmt.Errorf("%w %q: %w", ErrParsing, path, err)
			}
		}
		pipelineConfig.Stages = append(pipelineConfig.Stages, document.Stages...)
	}

	return pipelineConfig, nil
}

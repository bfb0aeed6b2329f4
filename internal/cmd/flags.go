// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/mia-platform/flowdebug/internal/config"
	"github.com/mia-platform/flowdebug/internal/operation"
	"github.com/mia-platform/flowdebug/internal/source/csvfile"
)

const (
	pipelineFileFlagName  = "pipeline-file"
	pipelineFileFlagShort = "f"
	pipelineFileFlagUsage = "Path to the YAML file declaring the pipeline stages. Defaults to FLOWDEBUG_PIPELINE_FILE."

	inputFlagName  = "input"
	inputFlagShort = "i"
	inputFlagUsage = "Path of the csv input file, use - to read from stdin."

	commaFlagName    = "comma"
	commaFlagUsage   = "Field delimiter of the csv input."
	defaultCommaFlag = ","

	emptyAsNullFlagName  = "empty-as-null"
	emptyAsNullFlagUsage = "Treat empty csv cells as null values."
	defaultEmptyAsNull   = false

	recordsFileFlagName  = "records-file"
	recordsFileFlagShort = "o"
	recordsFileFlagUsage = "Path of the file receiving the surviving records as JSON lines. Defaults to stdout."
)

// flags collects the CLI options of the run command.
type flags struct {
	pipelineFile string
	input        string
	comma        string
	emptyAsNull  bool
	recordsFile  string
}

// addFlags registers the CLI flags on cmd.
func (f *flags) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.pipelineFile, pipelineFileFlagName, pipelineFileFlagShort, "", pipelineFileFlagUsage)
	cmd.Flags().StringVarP(&f.input, inputFlagName, inputFlagShort, "", inputFlagUsage)
	cmd.Flags().StringVar(&f.comma, commaFlagName, defaultCommaFlag, commaFlagUsage)
	cmd.Flags().BoolVar(&f.emptyAsNull, emptyAsNullFlagName, defaultEmptyAsNull, emptyAsNullFlagUsage)
	cmd.Flags().StringVarP(&f.recordsFile, recordsFileFlagName, recordsFileFlagShort, "", recordsFileFlagUsage)
}

// toOptions builds an options instance from the parsed flags, the environment and the CLI arguments.
// Debug STDOUT and STDERR are bound to the command streams; surviving records go to the
// records file when set, to the command stdout otherwise.
func (f *flags) toOptions(cmd *cobra.Command, args []string) (*options, error) {
	sourceName := ""
	if len(args) > 0 {
		sourceName = args[0]
	}

	envVars, err := config.LoadEnvironment()
	if err != nil {
		return nil, err
	}

	pipelineFile := f.pipelineFile
	if pipelineFile == "" {
		pipelineFile = envVars.PipelineFile
	}

	comma, size := utf8.DecodeRuneInString(f.comma)
	if size == 0 || size != len(f.comma) {
		return nil, fmt.Errorf("%w: --%s must be a single character", errInvalidFlag, commaFlagName)
	}

	return &options{
		sourceName:   strings.ToLower(sourceName),
		pipelineFile: pipelineFile,
		input:        f.input,
		csvOptions: csvfile.Options{
			Comma:       comma,
			EmptyAsNull: f.emptyAsNull,
		},
		stdin: cmd.InOrStdin(),
		channels: operation.Channels{
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
		},
		recordsFile:  f.recordsFile,
		stdout:       cmd.OutOrStdout(),
		sourceGetter: sourceFromName,
	}, nil
}

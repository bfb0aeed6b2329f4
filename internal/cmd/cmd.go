// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

const (
	runCmdUsageTemplate = "run [%s]"
	runCmdShort         = "run records from a source through a debug pipeline"
	runCmdLong          = `Run the records produced by a source through the stages declared
	in a pipeline file.

	Debug stages print every record, and optionally its fields, on stdout or
	stderr without removing it; the records surviving all the stages are
	written as JSON lines on stdout, or on the file set with --records-file.
	Debug stages printing on stdout share it with the records, so set
	--records-file when the JSON lines must be consumed by another tool.

	The available sources are:
	- csv: a comma separated file with a header row, read from --input
	- database: the rows of a SQL query, configured with the FLOWDEBUG_SQL_DRIVER,
	  FLOWDEBUG_SQL_DSN and FLOWDEBUG_SQL_QUERY environment variables`

	runCmdExample = `# Print every row of a csv file on stderr before filtering null values
	flowdebug run csv --input people.csv --pipeline-file pipeline.yaml

	# Read the csv from stdin
	cat people.csv | flowdebug run csv -i - -f pipeline.yaml

	# Keep the surviving records apart from the debug lines
	flowdebug run csv -i people.csv -f pipeline.yaml -o records.jsonl`
)

// RunCmd returns the Cobra command that runs a debug pipeline.
func RunCmd() *cobra.Command {
	flags := &flags{}
	allSources := slices.Sorted(maps.Keys(availableSources))
	cmd := &cobra.Command{
		Use:     fmt.Sprintf(runCmdUsageTemplate, strings.Join(allSources, "|")),
		Short:   heredoc.Doc(runCmdShort),
		Long:    heredoc.Doc(runCmdLong),
		Example: heredoc.Doc(runCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: validArgsFunc(availableSources),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.toOptions(cmd, args)
			if err != nil {
				return handleError(cmd, err)
			}

			if err := opts.validate(); err != nil {
				return handleError(cmd, err)
			}

			if err := opts.execute(cmd.Context()); err != nil {
				return handleError(cmd, err)
			}

			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}

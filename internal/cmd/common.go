// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mia-platform/flowdebug/internal/source"
	"github.com/mia-platform/flowdebug/internal/source/csvfile"
	"github.com/mia-platform/flowdebug/internal/source/database"
)

const (
	csvSourceName      = "csv"
	databaseSourceName = "database"
	stdinInput         = "-"
)

var (
	errNoArguments   = errors.New("no source name provided")
	errInvalidSource = errors.New("invalid source name provided")
	errMissingFlag   = errors.New("missing required flag")
	errInvalidFlag   = errors.New("invalid flag value")

	// availableSources holds the list of available sources and their description
	// for command completion and help messages.
	availableSources = map[string]string{
		csvSourceName:      "comma separated file with a header row",
		databaseSourceName: "rows of a SQL query (" + strings.Join(database.SupportedDrivers(), ", ") + ")",
	}
)

// handleError will do custom print error handling based on the type of error received.
// it will return nil if the command must return 0 exit code, otherwise it will return
// the original error.
func handleError(cmd *cobra.Command, err error) error {
	switch {
	case errors.Is(err, errNoArguments):
		_ = cmd.Usage() // do not check error as we cannot do much about it
		return nil
	case errors.Is(err, errInvalidSource), errors.Is(err, errMissingFlag), errors.Is(err, errInvalidFlag):
		cmd.PrintErrln(err)
		_ = cmd.Usage() // do not check error as we cannot do much about it
		return err
	default:
		cmd.PrintErrln(err)
		return err
	}
}

func validArgsFunc(sources map[string]string) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var comps []string
		if len(args) == 0 {
			for name, description := range sources {
				if strings.HasPrefix(name, toComplete) {
					comps = append(comps, cobra.CompletionWithDesc(name, description))
				}
			}
		}

		return comps, cobra.ShellCompDirectiveNoFileComp
	}
}

// sourceFromName returns the pipeline source selected by the options.
func sourceFromName(o *options) (source.Source, error) {
	switch o.sourceName {
	case csvSourceName:
		if o.input == stdinInput {
			return csvfile.NewSource(o.stdin, o.csvOptions), nil
		}
		return csvfile.NewSourceFromPath(o.input, o.csvOptions)
	case databaseSourceName:
		return database.NewSource()
	}

	return nil, errInvalidSource
}

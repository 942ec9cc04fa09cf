// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"io"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/recipecopy/cmd/recipecopy/commands"
	"github.com/walteh/recipecopy/cmd/recipecopy/opts"
)

// logFileName is relative to the XDG state directory
const logFileName = "recipecopy/recipecopy.log"

func newRootCmd(out io.Writer) (*cobra.Command, func()) {
	o := opts.New(out)
	closer := func() {}

	rootCmd := &cobra.Command{
		Use:   "recipecopy",
		Short: "Install and uninstall recipe files in a project",
		Long: `recipecopy copies the files a recipe declares into a project, expanding
placeholders like %CONFIG_DIR% on the way, and removes them again on uninstall.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, c := setupLogging(o.Debug, os.Stderr)
			closer = c
			o.Logger = logger
			cmd.SetContext(logger.WithContext(cmd.Context()))
			logger.Debug().Str("command", cmd.Name()).Strs("args", args).Msg("starting")
			return nil
		},
	}

	addRootFlags(rootCmd, o)

	rootCmd.AddCommand(
		commands.NewInstallCmd(o),
		commands.NewUninstallCmd(o),
	)

	return rootCmd, func() { closer() }
}

func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.Root, "root", "r", "", "project root directory (defaults to the working directory)")
	cmd.PersistentFlags().StringArrayVarP(&o.Set, "set", "s", nil, "set a placeholder, e.g. --set bundle-dir=src/AcmeBundle or --set %BUNDLE_DIR%=src/AcmeBundle")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
}

// setupLogging always logs to the state file and, with debug, to the console as well
func setupLogging(debug bool, console io.Writer) (zerolog.Logger, func()) {
	var writers []io.Writer
	if debug {
		writers = append(writers, zerolog.ConsoleWriter{Out: console, TimeFormat: time.Kitchen})
	}

	closer := func() {}
	file, fileErr := openLogFile()
	if fileErr == nil {
		writers = append(writers, file)
		closer = func() { _ = file.Close() }
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	var w io.Writer = io.Discard
	if len(writers) > 0 {
		w = zerolog.MultiLevelWriter(writers...)
	}
	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()

	if fileErr != nil {
		logger.Debug().Err(fileErr).Msg("logging to console only")
	}

	return logger, closer
}

func openLogFile() (*os.File, error) {
	path, err := xdg.StateFile(logFileName)
	if err != nil {
		return nil, errors.Errorf("resolving log file: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Errorf("opening log file %s: %w", path, err)
	}
	return file, nil
}

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
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/retoken/pkg/config"
	"github.com/walteh/retoken/pkg/fsys"
	"github.com/walteh/retoken/pkg/log"
	"github.com/walteh/retoken/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// rootOpts holds the flag values of one root command
type rootOpts struct {
	configFile string
	envFile    string
	root       string
	extension  string
	search     string
	replace    string
	ignore     []string
	jobs       int
	strict     bool
	debug      bool
}

// newRootCmd creates the retoken command writing notices to stdout and
// structured logs to stderr
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOpts{}

	cmd := &cobra.Command{
		Use:   "retoken",
		Short: "Replace a literal token in every matching file under a directory",
		Long: `retoken walks a directory tree and, in every file whose name ends with the
configured extension, replaces each occurrence of a literal search token with
a replacement value. Files are rewritten in place.

Values come from (lowest precedence first) built-in defaults, an optional
config file (.yaml, .yml, .hcl or .json), RETOKEN_* environment variables
(optionally loaded from a .env file) and command line flags.`,
		Example: `  retoken --replace physionet-data
  retoken -r sql/concepts -s mymimiciv -w my-gcp-project --ignore '**/legacy/**'
  retoken -c retoken.hcl --strict`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, stdout, stderr)
		},
	}

	addRootFlags(cmd, opts)

	cmd.AddCommand(newVersionCmd(stdout))

	return cmd
}

// addRootFlags adds the root command flags
func addRootFlags(cmd *cobra.Command, opts *rootOpts) {
	flags := cmd.Flags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "config file path (.yaml, .yml, .hcl, .json)")
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load RETOKEN_* variables from, if present")
	flags.StringVarP(&opts.root, "root", "r", config.DefaultRoot, "directory to walk")
	flags.StringVarP(&opts.extension, "ext", "e", config.DefaultExtension, "filename suffix of files to rewrite")
	flags.StringVarP(&opts.search, "search", "s", config.DefaultSearch, "literal token to replace")
	flags.StringVarP(&opts.replace, "replace", "w", "", "replacement value (required)")
	flags.StringSliceVarP(&opts.ignore, "ignore", "i", nil, "glob of paths to skip, relative to root (repeatable)")
	flags.IntVarP(&opts.jobs, "jobs", "j", config.DefaultJobs, "files to rewrite in parallel")
	flags.BoolVar(&opts.strict, "strict", false, "exit non-zero when any file fails")
	flags.BoolVarP(&opts.debug, "debug", "d", false, "enable debug logging")
}

// setupLogging builds the structured logger. Only warnings and errors are
// shown unless debug is set; the console notices already cover normal runs.
func setupLogging(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
}

// resolveConfig layers defaults, config file, environment and changed flags
func (opts *rootOpts) resolveConfig(ctx context.Context, cmd *cobra.Command) (*config.Config, error) {
	if err := config.LoadEnvFile(ctx, opts.envFile); err != nil {
		return nil, errors.Errorf("loading env file: %w", err)
	}

	cfg := config.Default()
	if opts.configFile != "" {
		loaded, err := config.Load(ctx, opts.configFile, cfg)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	if err := config.ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, errors.Errorf("reading environment: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("root") {
		cfg.Root = opts.root
	}
	if flags.Changed("ext") {
		cfg.Extension = opts.extension
	}
	if flags.Changed("search") {
		cfg.Search = opts.search
	}
	if flags.Changed("replace") {
		cfg.Replace = opts.replace
	}
	if flags.Changed("ignore") {
		cfg.Ignore = opts.ignore
	}
	if flags.Changed("jobs") {
		cfg.Jobs = opts.jobs
	}

	return cfg, nil
}

func (opts *rootOpts) run(cmd *cobra.Command, stdout, stderr io.Writer) error {
	zlog := setupLogging(stderr, opts.debug)
	ctx := zlog.WithContext(cmd.Context())

	cfg, err := opts.resolveConfig(ctx, cmd)
	if err != nil {
		return err
	}

	logger := log.New(stdout, zlog)

	runner, err := operation.New(operation.Options{
		Config: cfg,
		FS:     fsys.OS{},
		Logger: logger,
	})
	if err != nil {
		return err
	}

	zlog.Debug().Str("run", runner.Config().String()).Msg("resolved configuration")

	report, err := runner.Run(ctx)
	if err != nil {
		return errors.Errorf("running replacement: %w", err)
	}

	if opts.strict && report.Failed() > 0 {
		return errors.Errorf("%d of %d files failed", report.Failed(), len(report.Results))
	}

	return nil
}

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
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/stripdef/cmd/stripdef/commands"
	"github.com/walteh/stripdef/cmd/stripdef/opts"
	"github.com/walteh/stripdef/pkg/config"
	"github.com/walteh/stripdef/pkg/log"
	"github.com/walteh/stripdef/pkg/operation"
	"github.com/walteh/stripdef/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// Handler holds the root command's flags
type Handler struct {
	inputs       []string
	ignore       []string
	output       string
	rules        string
	dryRun       bool
	diff         bool
	async        bool
	requireMatch bool
	debug        bool

	opts *opts.RootOpts
}

func newRootCmd() *cobra.Command {
	h := &Handler{opts: &opts.RootOpts{}}

	cmd := &cobra.Command{
		Use:   "stripdef",
		Short: "Remove named block definitions from source files",
		Long: `stripdef removes named blocks (component definitions, functions, config
sections) from text files and leaves a placeholder comment in their place.

Each rule names a block by its opening signature. The block ends at the first
terminator line after it, or, in depth mode, at the brace that closes it.
Results go to <name>_cleaned<ext> next to each input unless --output is set.`,
		Example: `  stripdef --input src/pages/AnalyticsPage.tsx
  stripdef --input 'src/**/*.tsx' --rules rules.yaml --dry-run --diff
  stripdef rules builtin:analytics-page`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			h.setupLogging(cmd)
			return nil
		},
		RunE: h.run,
	}

	addRootFlags(cmd, h)

	cmd.AddCommand(commands.NewRulesCmd(h.opts))
	cmd.AddCommand(commands.NewVersionCmd())

	return cmd
}

func addRootFlags(cmd *cobra.Command, h *Handler) {
	cmd.PersistentFlags().BoolVarP(&h.debug, "debug", "d", false, "enable debug logging")

	cmd.Flags().StringArrayVarP(&h.inputs, "input", "i", nil, "input file or glob (repeatable)")
	cmd.Flags().StringArrayVar(&h.ignore, "ignore", nil, "glob of inputs to skip (repeatable)")
	cmd.Flags().StringVarP(&h.output, "output", "o", "", "output path (single input only)")
	cmd.Flags().StringVarP(&h.rules, "rules", "r", config.BuiltinPrefix+config.DefaultBuiltin, "rules file (.yaml, .json, .hcl) or builtin:<name>")
	cmd.Flags().BoolVar(&h.dryRun, "dry-run", false, "report what would change without writing")
	cmd.Flags().BoolVar(&h.diff, "diff", false, "print a unified diff for each modified file")
	cmd.Flags().BoolVar(&h.async, "async", false, "read and transform inputs concurrently")
	cmd.Flags().BoolVar(&h.requireMatch, "require-match", false, "exit with status 2 when a rule removes nothing")

	if err := cmd.MarkFlagRequired("input"); err != nil {
		panic(err) // only fails when the flag is not defined
	}
}

// setupLogging puts a zerolog logger on the command context. Debug output
// goes to stderr so it never mixes with the report.
func (h *Handler) setupLogging(cmd *cobra.Command) {
	level := zerolog.WarnLevel
	if h.debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true}).
		Level(level).
		With().Timestamp().Logger()

	h.opts.Logger = logger
	h.opts.UserLogger = log.NewUserLogger(logger.WithContext(cmd.Context()), cmd.OutOrStdout())
	cmd.SetContext(logger.WithContext(cmd.Context()))
}

func (h *Handler) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	zlog := zerolog.Ctx(ctx)

	rs, err := config.ResolveRules(ctx, h.rules)
	if err != nil {
		return errors.Errorf("loading rules: %w", err)
	}

	rules, err := rs.Compile()
	if err != nil {
		return errors.Errorf("loading rules: %w", err)
	}

	h.opts.UserLogger.LogStateChange(fmt.Sprintf("loaded %d rules from %s", len(rules), rs.Location()))

	logger := log.New(cmd.OutOrStdout(), *zlog)
	ctx = log.NewContext(ctx, logger)

	op := operation.NewCleanOperation(operation.Options{
		Inputs:       h.inputs,
		Ignore:       h.ignore,
		Output:       h.output,
		Rules:        rules,
		RuleSet:      rs.String(),
		DryRun:       h.dryRun,
		Diff:         h.diff,
		Async:        h.async,
		RequireMatch: h.requireMatch,
		Files:        status.NewManager(""),
		Logger:       logger,
	})

	return operation.NewRunner(zlog).Run(ctx, op)
}

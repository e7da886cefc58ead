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

package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/walteh/stripdef/cmd/stripdef/opts"
	"github.com/walteh/stripdef/pkg/block"
	"github.com/walteh/stripdef/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// NewRulesCmd lists built-in rule sets, or validates and prints one set.
func NewRulesCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules [file|builtin:name]",
		Short: "List built-in rule sets or print the rules of one set",
		Long: `Without arguments, rules lists the built-in rule sets.

With a rules file or builtin:<name>, it loads and compiles the set exactly as
a run would, then prints each rule in application order.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				return listBuiltins(out)
			}

			rs, err := config.ResolveRules(cmd.Context(), args[0])
			if err != nil {
				return errors.Errorf("loading rules: %w", err)
			}
			rules, err := rs.Compile()
			if err != nil {
				opts.UserLogger.LogValidation(false, fmt.Sprintf("rule set %s is invalid", rs), err)
				return errors.Errorf("loading rules: %w", err)
			}

			printRules(out, rules)
			opts.UserLogger.LogValidation(true, fmt.Sprintf("rule set %s is valid (%d rules)", rs, len(rules)), nil)
			return nil
		},
	}

	return cmd
}

func listBuiltins(out io.Writer) error {
	for _, name := range config.BuiltinNames() {
		rs, _ := config.Builtin(name)
		fmt.Fprintf(out, "%s%s\t%d rules\n", config.BuiltinPrefix, name, len(rs.Rules))
	}
	return nil
}

func printRules(out io.Writer, rules []*block.Rule) {
	for i, rule := range rules {
		spec := rule.Spec()
		fmt.Fprintf(out, "%d. %s (%s)\n", i+1, rule.Name(), rule.Mode())
		fmt.Fprintf(out, "   signature:   %s\n", spec.Signature)
		if rule.Mode() == block.ModeTerminator {
			fmt.Fprintf(out, "   terminator:  %s\n", spec.Terminator)
		}
		fmt.Fprintf(out, "   replacement: %s\n", rule.Replacement())
		if len(spec.Files) > 0 {
			fmt.Fprintf(out, "   files:       %s\n", strings.Join(spec.Files, ", "))
		}
	}
}

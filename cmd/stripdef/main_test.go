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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/stripdef/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

const fooBar = `const Foo = (x) => {
  return 1;
};
const Bar = (y) => {
  return 2;
};
export default Foo;
`

const fooBarRules = `name: foo-bar
rules:
  - name: Foo
    signature: "const Foo = (x) => {"
    replacement: "// Foo removed"
  - name: Bar
    signature: "const Bar = (y) => {"
    replacement: "// Bar removed"
  - name: Baz
    signature: "const Baz = () => {"
`

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	pterm.DisableStyling()
	t.Cleanup(func() {
		color.NoColor = false
		pterm.EnableStyling()
	})

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(context.Background())
	t.Log(stderr.String())
	return stdout.String(), err
}

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name         string
		args         func(dir string) []string
		expectedCode int
		errContains  string
		outContains  []string
		validate     func(t *testing.T, dir string)
	}{
		{
			name: "rules_file",
			args: func(dir string) []string {
				return []string{"--input", filepath.Join(dir, "foo.js"), "--rules", filepath.Join(dir, "rules.yaml")}
			},
			outContains: []string{"foo-bar", "loaded 3 rules from", "rule Baz matched nothing", "applied 3 rules to 1 file, removed 2 blocks"},
			validate: func(t *testing.T, dir string) {
				content, err := os.ReadFile(filepath.Join(dir, "foo_cleaned.js"))
				require.NoError(t, err)
				assert.Equal(t, "// Foo removed\n// Bar removed\nexport default Foo;\n", string(content))
			},
		},
		{
			name: "explicit_output_dry_run",
			args: func(dir string) []string {
				return []string{"-i", filepath.Join(dir, "foo.js"), "-o", filepath.Join(dir, "out.js"), "-r", filepath.Join(dir, "rules.yaml"), "--dry-run", "--diff"}
			},
			outContains: []string{"dry run", "+// Foo removed"},
			validate: func(t *testing.T, dir string) {
				_, err := os.Stat(filepath.Join(dir, "out.js"))
				assert.True(t, os.IsNotExist(err))
			},
		},
		{
			name: "require_match",
			args: func(dir string) []string {
				return []string{"--input", filepath.Join(dir, "foo.js"), "--rules", filepath.Join(dir, "rules.yaml"), "--require-match"}
			},
			expectedCode: 2,
			errContains:  "Baz",
		},
		{
			name: "default_builtin_no_match",
			args: func(dir string) []string {
				return []string{"--input", filepath.Join(dir, "foo.js")}
			},
			outContains: []string{"loaded 5 rules from builtin:analytics-page", "removed 0 blocks"},
			validate: func(t *testing.T, dir string) {
				content, err := os.ReadFile(filepath.Join(dir, "foo_cleaned.js"))
				require.NoError(t, err)
				assert.Equal(t, fooBar, string(content))
			},
		},
		{
			name: "missing_input",
			args: func(dir string) []string {
				return []string{"--input", filepath.Join(dir, "nope.js")}
			},
			expectedCode: 1,
			errContains:  filepath.Join("nope.js"),
		},
		{
			name: "unknown_builtin",
			args: func(dir string) []string {
				return []string{"--input", filepath.Join(dir, "foo.js"), "--rules", "builtin:nope"}
			},
			expectedCode: 1,
			errContains:  "unknown built-in rule set",
		},
		{
			name:         "input_required",
			args:         func(dir string) []string { return nil },
			expectedCode: 1,
			errContains:  "input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "foo.js"), []byte(fooBar), 0644))
			require.NoError(t, os.WriteFile(filepath.Join(dir, "rules.yaml"), []byte(fooBarRules), 0644))

			out, err := runCommand(t, tt.args(dir)...)
			assert.Equal(t, tt.expectedCode, exitCode(err), "exit code (err: %v)", err)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
			}
			for _, want := range tt.outContains {
				assert.Contains(t, out, want)
			}
			if tt.validate != nil {
				tt.validate(t, dir)
			}
		})
	}
}

func TestRulesCommand(t *testing.T) {
	t.Run("list_builtins", func(t *testing.T) {
		out, err := runCommand(t, "rules")
		require.NoError(t, err)
		assert.Contains(t, out, "builtin:analytics-page\t5 rules")
	})

	t.Run("print_builtin", func(t *testing.T) {
		out, err := runCommand(t, "rules", "builtin:analytics-page")
		require.NoError(t, err)
		assert.Contains(t, out, "1. SentimentDashboard (terminator)")
		assert.Contains(t, out, "replacement: // CoachingInsights component removed - now imported")
		assert.Contains(t, out, "is valid (5 rules)")
	})

	t.Run("invalid_file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("rules:\n  - name: x\n    signature: a\n    mode: sideways\n"), 0644))

		_, err := runCommand(t, "rules", path)
		require.Error(t, err)
		assert.Equal(t, 1, exitCode(err))
	})
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "stripdef version info")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, 1, exitCode(errors.New("boom")))
	assert.Equal(t, 2, exitCode(errors.Errorf("executing: %w", operation.ErrUnmatched)))
}

func TestNewCommand(t *testing.T) {
	cmd := newRootCmd()
	require.NotNil(t, cmd, "command should not be nil")
	assert.Equal(t, "stripdef", cmd.Use, "command name should match")
	assert.NotEmpty(t, cmd.Short, "should have short description")
}

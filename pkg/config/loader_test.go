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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/stripdef/pkg/block"
)

func TestLoadRules(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		content     string
		wantErr     bool
		errContains string
		check       func(t *testing.T, rs *RuleSet)
	}{
		{
			name:     "yaml_rules",
			filename: "rules.yaml",
			content: `
name: dashboard
rules:
  - name: SentimentDashboard
    signature: "const SentimentDashboard = ({ data }: { data: any }) => {"
    replacement: "// SentimentDashboard component removed - now imported"
  - name: KeywordsCloud
    signature: "const KeywordsCloud = ({ data }: { data: any }) => {"
    mode: depth
    files:
      - "**/*.tsx"
`,
			check: func(t *testing.T, rs *RuleSet) {
				assert.Equal(t, "dashboard", rs.Name, "name should match")
				require.Len(t, rs.Rules, 2, "should have 2 rules")
				assert.Equal(t, "SentimentDashboard", rs.Rules[0].Name)
				assert.Equal(t, "// SentimentDashboard component removed - now imported", rs.Rules[0].Replacement)
				assert.Equal(t, "depth", rs.Rules[1].Mode)
				assert.Equal(t, []string{"**/*.tsx"}, rs.Rules[1].Files)
			},
		},
		{
			name:     "yml_extension",
			filename: "rules.yml",
			content: `
rules:
  - name: Foo
    signature: "const Foo = () => {"
`,
			check: func(t *testing.T, rs *RuleSet) {
				assert.Equal(t, "", rs.Name)
				assert.Len(t, rs.Rules, 1)
			},
		},
		{
			name:     "json_rules",
			filename: "rules.json",
			content: `{
  "name": "json-set",
  "rules": [
    {"name": "Foo", "signature": "^const Foo = .*\\{$", "regexp": true, "terminator": "\\};?"}
  ]
}`,
			check: func(t *testing.T, rs *RuleSet) {
				assert.Equal(t, "json-set", rs.Name)
				require.Len(t, rs.Rules, 1)
				assert.True(t, rs.Rules[0].Regexp)
				assert.Equal(t, `\};?`, rs.Rules[0].Terminator)
			},
		},
		{
			name:     "hcl_rules",
			filename: "rules.hcl",
			content: `
name = "hcl-set"

rule "SentimentDashboard" {
  signature   = "const SentimentDashboard = ({ data }: { data: any }) => {"
  replacement = imported("SentimentDashboard")
}

rule "ActivityFeed" {
  signature   = "const ActivityFeed = ({ activities }: { activities: any }) => {"
  replacement = removed("ActivityFeed")
  mode        = "depth"
  files       = ["src/**/*.tsx"]
}
`,
			check: func(t *testing.T, rs *RuleSet) {
				assert.Equal(t, "hcl-set", rs.Name)
				require.Len(t, rs.Rules, 2)
				assert.Equal(t, "SentimentDashboard", rs.Rules[0].Name)
				assert.Equal(t, "// SentimentDashboard component removed - now imported", rs.Rules[0].Replacement)
				assert.Equal(t, "// ActivityFeed removed", rs.Rules[1].Replacement)
				assert.Equal(t, "depth", rs.Rules[1].Mode)
				assert.Equal(t, []string{"src/**/*.tsx"}, rs.Rules[1].Files)
			},
		},
		{
			name:        "yaml_unknown_field",
			filename:    "rules.yaml",
			content:     "rules:\n  - name: Foo\n    signature: x\n    pattern: y\n",
			wantErr:     true,
			errContains: "parsing YAML",
		},
		{
			name:        "json_unknown_field",
			filename:    "rules.json",
			content:     `{"rules": [{"name": "Foo", "signature": "x"}], "extra": 1}`,
			wantErr:     true,
			errContains: "parsing JSON",
		},
		{
			name:        "hcl_syntax_error",
			filename:    "rules.hcl",
			content:     `rule "Foo" {`,
			wantErr:     true,
			errContains: "parsing HCL",
		},
		{
			name:        "hcl_missing_signature",
			filename:    "rules.hcl",
			content:     `rule "Foo" {}`,
			wantErr:     true,
			errContains: "decoding HCL",
		},
		{
			name:        "no_rules",
			filename:    "rules.yaml",
			content:     "name: empty\nrules: []\n",
			wantErr:     true,
			errContains: "rule set empty has no rules",
		},
		{
			name:        "bad_mode",
			filename:    "rules.yaml",
			content:     "rules:\n  - name: Foo\n    signature: x\n    mode: ast\n",
			wantErr:     true,
			errContains: `unknown mode "ast"`,
		},
		{
			name:        "unsupported_extension",
			filename:    "rules.toml",
			content:     "",
			wantErr:     true,
			errContains: `unsupported file extension ".toml"`,
		},
	}

	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.filename)
			err := os.WriteFile(path, []byte(tt.content), 0644)
			require.NoError(t, err, "writing rules file should succeed")

			rs, err := LoadRules(ctx, path)
			if tt.wantErr {
				require.Error(t, err, "LoadRules should return error")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				return
			}

			require.NoError(t, err, "LoadRules should succeed")
			assert.Equal(t, path, rs.Location())
			if tt.check != nil {
				tt.check(t, rs)
			}
		})
	}
}

func TestLoadRules_MissingFile(t *testing.T) {
	_, err := LoadRules(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading rules file")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRuleSet_Specs(t *testing.T) {
	rs := &RuleSet{Rules: []Rule{
		{Name: "Foo", Signature: "x", Mode: "depth", Regexp: true, Files: []string{"*.tsx"}},
	}}

	specs := rs.Specs()
	require.Len(t, specs, 1)
	assert.Equal(t, block.RuleSpec{
		Name:      "Foo",
		Signature: "x",
		Mode:      block.ModeDepth,
		Regexp:    true,
		Files:     []string{"*.tsx"},
	}, specs[0])
}

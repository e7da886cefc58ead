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
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/stripdef/pkg/block"
	"gitlab.com/tozd/go/errors"
)

// BuiltinPrefix marks a rules reference as a built-in set name.
const BuiltinPrefix = "builtin:"

// 🔄 Rule is one block removal rule as written in a rules file
type Rule struct {
	Name        string   `json:"name" yaml:"name" hcl:"name,label"`
	Signature   string   `json:"signature" yaml:"signature" hcl:"signature"`
	Terminator  string   `json:"terminator,omitempty" yaml:"terminator,omitempty" hcl:"terminator,optional"`
	Replacement string   `json:"replacement,omitempty" yaml:"replacement,omitempty" hcl:"replacement,optional"`
	Regexp      bool     `json:"regexp,omitempty" yaml:"regexp,omitempty" hcl:"regexp,optional"`
	Mode        string   `json:"mode,omitempty" yaml:"mode,omitempty" hcl:"mode,optional"`
	Files       []string `json:"files,omitempty" yaml:"files,omitempty" hcl:"files,optional"`
}

// 📚 RuleSet is an ordered list of rules
type RuleSet struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty" hcl:"name,optional"`
	Rules []Rule `json:"rules" yaml:"rules" hcl:"rule,block"`

	location string
}

// Location is the file the set was loaded from, or the builtin reference.
func (rs *RuleSet) Location() string {
	return rs.location
}

// Specs converts the rules to block specs, in order.
func (rs *RuleSet) Specs() []block.RuleSpec {
	specs := make([]block.RuleSpec, 0, len(rs.Rules))
	for _, r := range rs.Rules {
		specs = append(specs, block.RuleSpec{
			Name:        r.Name,
			Signature:   r.Signature,
			Terminator:  r.Terminator,
			Replacement: r.Replacement,
			Regexp:      r.Regexp,
			Mode:        block.Mode(r.Mode),
			Files:       r.Files,
		})
	}
	return specs
}

// 🏭 Compile compiles the set into block rules
func (rs *RuleSet) Compile() ([]*block.Rule, error) {
	rules, err := block.CompileAll(rs.Specs())
	if err != nil {
		return nil, errors.Errorf("compiling rule set %s: %w", rs.String(), err)
	}
	return rules, nil
}

// 🔍 Validate checks the set compiles and is not empty
func (rs *RuleSet) Validate(ctx context.Context) error {
	if len(rs.Rules) == 0 {
		return errors.Errorf("rule set %s has no rules", rs.String())
	}
	if _, err := rs.Compile(); err != nil {
		return err
	}
	zerolog.Ctx(ctx).Debug().Str("rule_set", rs.String()).Int("rules", len(rs.Rules)).Msg("rule set valid")
	return nil
}

// 📝 String returns the set name, falling back to its location
func (rs *RuleSet) String() string {
	switch {
	case rs.Name != "":
		return rs.Name
	case rs.location != "":
		return rs.location
	default:
		return "<unnamed>"
	}
}

// 🎯 ResolveRules turns a --rules value into a rule set. A value with the
// builtin: prefix names a built-in set; anything else is a file path, and a
// bare built-in name is accepted when no such file exists.
func ResolveRules(ctx context.Context, ref string) (*RuleSet, error) {
	if name, ok := strings.CutPrefix(ref, BuiltinPrefix); ok {
		rs, found := Builtin(name)
		if !found {
			return nil, errors.Errorf("unknown built-in rule set %q (available: %s)", name, strings.Join(BuiltinNames(), ", "))
		}
		return rs, nil
	}

	if _, err := os.Stat(ref); err == nil {
		return LoadRules(ctx, ref)
	} else if !os.IsNotExist(err) {
		return nil, errors.Errorf("reading rules file %s: %w", ref, err)
	}

	if rs, found := Builtin(ref); found {
		return rs, nil
	}
	return nil, errors.Errorf("rules %q is neither a file nor a built-in rule set", ref)
}

// 📁 DefaultOutputPath inserts "_cleaned" before the input's extension
func DefaultOutputPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "_cleaned" + ext
}

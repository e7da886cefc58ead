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

package block

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// 🧭 Mode selects how the end of a block is found
type Mode string

const (
	ModeTerminator Mode = "terminator" // first following terminator line
	ModeDepth      Mode = "depth"      // balanced "{" / "}"
)

// DefaultTerminator closes a top-level `const X = (...) => { ... };` definition.
const DefaultTerminator = "};"

// 📋 RuleSpec is the uncompiled form of a rule
type RuleSpec struct {
	Name        string   // Identifier used in reports and the default placeholder
	Signature   string   // How the block begins
	Terminator  string   // Line that ends the block (terminator mode)
	Replacement string   // Placeholder text for a removed block
	Regexp      bool     // Treat Signature and Terminator as regular expressions
	Mode        Mode     // How the end of the block is found
	Files       []string // Doublestar globs limiting the inputs the rule applies to
}

// DefaultReplacement is the placeholder used when a rule has none.
func DefaultReplacement(name string) string {
	return "// " + name + " removed"
}

// 🔧 Rule is a compiled, immutable RuleSpec
type Rule struct {
	spec       RuleSpec
	signature  *regexp.Regexp
	terminator *regexp.Regexp
}

// 🏭 Compile validates a spec and compiles its patterns
func Compile(spec RuleSpec) (*Rule, error) {
	if strings.TrimSpace(spec.Name) == "" {
		return nil, errors.Errorf("rule name is required")
	}
	if spec.Signature == "" {
		return nil, errors.Errorf("rule %s: signature is required", spec.Name)
	}

	switch spec.Mode {
	case "":
		spec.Mode = ModeTerminator
	case ModeTerminator, ModeDepth:
	default:
		return nil, errors.Errorf("rule %s: unknown mode %q", spec.Name, spec.Mode)
	}

	if spec.Terminator == "" {
		spec.Terminator = DefaultTerminator
	}
	if spec.Replacement == "" {
		spec.Replacement = DefaultReplacement(spec.Name)
	}

	for _, pattern := range spec.Files {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("rule %s: invalid file glob %q", spec.Name, pattern)
		}
	}
	spec.Files = append([]string(nil), spec.Files...)

	sigSrc := regexp.QuoteMeta(spec.Signature)
	termSrc := regexp.QuoteMeta(strings.TrimRight(spec.Terminator, " \t"))
	if spec.Regexp {
		sigSrc = "(?m)" + spec.Signature
		termSrc = spec.Terminator
	}

	signature, err := regexp.Compile(sigSrc)
	if err != nil {
		return nil, errors.Errorf("rule %s: compiling signature: %w", spec.Name, err)
	}
	if signature.MatchString("") {
		return nil, errors.Errorf("rule %s: signature matches empty text", spec.Name)
	}

	terminator, err := regexp.Compile("^(?:" + termSrc + ")$")
	if err != nil {
		return nil, errors.Errorf("rule %s: compiling terminator: %w", spec.Name, err)
	}

	return &Rule{
		spec:       spec,
		signature:  signature,
		terminator: terminator,
	}, nil
}

// 📚 CompileAll compiles specs in order and rejects duplicate names
func CompileAll(specs []RuleSpec) ([]*Rule, error) {
	seen := make(map[string]struct{}, len(specs))
	rules := make([]*Rule, 0, len(specs))
	for i, spec := range specs {
		rule, err := Compile(spec)
		if err != nil {
			return nil, errors.Errorf("rule %d: %w", i, err)
		}
		if _, dup := seen[rule.Name()]; dup {
			return nil, errors.Errorf("rule %d: duplicate rule name %q", i, rule.Name())
		}
		seen[rule.Name()] = struct{}{}
		rules = append(rules, rule)
	}
	return rules, nil
}

func (r *Rule) Name() string        { return r.spec.Name }
func (r *Rule) Replacement() string { return r.spec.Replacement }
func (r *Rule) Mode() Mode          { return r.spec.Mode }

// Spec returns the normalized spec the rule was compiled from.
func (r *Rule) Spec() RuleSpec {
	spec := r.spec
	spec.Files = append([]string(nil), r.spec.Files...)
	return spec
}

// 🔍 AppliesTo reports whether the rule's file globs allow path
func (r *Rule) AppliesTo(path string) bool {
	if len(r.spec.Files) == 0 {
		return true
	}
	slashed := filepath.ToSlash(path)
	for _, pattern := range r.spec.Files {
		if ok, err := doublestar.Match(pattern, slashed); err == nil && ok {
			return true
		}
	}
	return false
}

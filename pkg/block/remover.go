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
	"context"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 RuleReport is what one rule did to the document
type RuleReport struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Spans []Span `json:"spans,omitempty"`
}

// 📦 Result holds the transformed document and per-rule reports
type Result struct {
	Original string       `json:"-"`
	Output   string       `json:"-"`
	Rules    []RuleReport `json:"rules"`
}

// Modified reports whether any block was replaced.
func (r *Result) Modified() bool {
	return r.Total() > 0
}

// Total is the number of blocks removed across all rules.
func (r *Result) Total() int {
	total := 0
	for _, rule := range r.Rules {
		total += rule.Count
	}
	return total
}

// Unmatched lists the rules that removed nothing, in rule order.
func (r *Result) Unmatched() []string {
	var names []string
	for _, rule := range r.Rules {
		if rule.Count == 0 {
			names = append(names, rule.Name)
		}
	}
	return names
}

// Report returns the report for a named rule.
func (r *Result) Report(name string) (RuleReport, bool) {
	for _, rule := range r.Rules {
		if rule.Name == name {
			return rule, true
		}
	}
	return RuleReport{}, false
}

// ✂️ Remover applies an ordered list of rules
type Remover struct {
	rules []*Rule
}

// 🏭 NewRemover creates a remover; rules run in the order given
func NewRemover(rules ...*Rule) *Remover {
	return &Remover{rules: append([]*Rule(nil), rules...)}
}

// Rules returns the rules in application order.
func (r *Remover) Rules() []*Rule {
	return append([]*Rule(nil), r.rules...)
}

// 🎯 ForPath returns a remover holding only the rules that apply to path
func (r *Remover) ForPath(path string) *Remover {
	filtered := make([]*Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		if rule.AppliesTo(path) {
			filtered = append(filtered, rule)
		}
	}
	return &Remover{rules: filtered}
}

// ✂️ Remove runs every rule against the output of the rules before it
func (r *Remover) Remove(ctx context.Context, doc string) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	result := &Result{
		Original: doc,
		Rules:    make([]RuleReport, 0, len(r.rules)),
	}

	current := doc
	for _, rule := range r.rules {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("removing blocks: %w", err)
		}

		var spans []Span
		current, spans = Apply(rule, current)

		logger.Debug().
			Str("rule", rule.Name()).
			Str("mode", string(rule.Mode())).
			Int("matches", len(spans)).
			Msg("applied rule")

		result.Rules = append(result.Rules, RuleReport{
			Name:  rule.Name(),
			Count: len(spans),
			Spans: spans,
		})
	}

	result.Output = current
	return result, nil
}

// Apply replaces every block rule matches in doc with its placeholder.
func Apply(rule *Rule, doc string) (string, []Span) {
	spans := rule.Find(doc)
	if len(spans) == 0 {
		return doc, nil
	}

	var b strings.Builder
	b.Grow(len(doc))
	pos := 0
	for _, span := range spans {
		b.WriteString(doc[pos:span.Start])
		b.WriteString(rule.Replacement())
		pos = span.End
	}
	b.WriteString(doc[pos:])
	return b.String(), spans
}

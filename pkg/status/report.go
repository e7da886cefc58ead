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

package status

import (
	"fmt"
)

// 📈 RuleTotal sums one rule over every file it ran on
type RuleTotal struct {
	Name  string
	Count int // Blocks removed
	Files int // Files the rule ran on
}

// 📋 Report summarizes a run
type Report struct {
	Files []FileResult
}

// NewReport creates a report over files.
func NewReport(files []FileResult) *Report {
	return &Report{Files: files}
}

// RuleTotals returns per-rule totals ordered by first appearance.
func (r *Report) RuleTotals() []RuleTotal {
	var totals []RuleTotal
	index := map[string]int{}
	for _, f := range r.Files {
		if f.Result == nil {
			continue
		}
		for _, rule := range f.Result.Rules {
			i, ok := index[rule.Name]
			if !ok {
				i = len(totals)
				index[rule.Name] = i
				totals = append(totals, RuleTotal{Name: rule.Name})
			}
			totals[i].Count += rule.Count
			totals[i].Files++
		}
	}
	return totals
}

// Total is the number of blocks removed across all files.
func (r *Report) Total() int {
	total := 0
	for _, f := range r.Files {
		if f.Result != nil {
			total += f.Result.Total()
		}
	}
	return total
}

// Unmatched lists rules that removed nothing in any file.
func (r *Report) Unmatched() []string {
	var names []string
	for _, t := range r.RuleTotals() {
		if t.Count == 0 {
			names = append(names, t.Name)
		}
	}
	return names
}

// 📝 Summary is the one-line human summary of the run
func (r *Report) Summary() string {
	return fmt.Sprintf("applied %s to %s, removed %s",
		plural(len(r.RuleTotals()), "rule"),
		plural(len(r.Files), "file"),
		plural(r.Total(), "block"))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

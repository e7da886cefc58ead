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
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
	"gitlab.com/tozd/go/errors"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	ruleIndent  = 8  // spaces to indent rule entries
	nameWidth   = 35 // Base width for file and rule names
	statusWidth = 10 // Width for status text
)

// 🎯 FormatFileResult formats one cleaned file for display
func FormatFileResult(res FileResult) string {
	var prefix string
	switch res.Status {
	case StatusNew:
		prefix = color.GreenString("✓")
	case StatusModified:
		prefix = color.YellowString("⟳")
	case StatusSkipped:
		prefix = color.CyanString("~")
	default:
		prefix = color.HiBlackString("-")
	}

	blocks := 0
	if res.Result != nil {
		blocks = res.Result.Total()
	}

	return fmt.Sprintf("%s%s %s %s %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		fmt.Sprintf("%-*s", nameWidth, res.Input+" -> "+res.Output),
		fmt.Sprintf("%-*s", statusWidth, res.Status.String()),
		plural(blocks, "block"),
	)
}

// 🎯 FormatRuleResult formats one rule's count under its file
func FormatRuleResult(name string, count int) string {
	prefix := color.GreenString("•")
	if count == 0 {
		prefix = color.YellowString("!")
	}
	return fmt.Sprintf("%s%s %s %d",
		strings.Repeat(" ", ruleIndent),
		prefix,
		fmt.Sprintf("%-*s", nameWidth, name),
		count,
	)
}

// 🔀 UnifiedDiff renders the change between two texts
func UnifiedDiff(fromName, toName, from, to string) (string, error) {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(from),
		B:        difflib.SplitLines(to),
		FromFile: fromName,
		ToFile:   toName,
		Context:  3,
	})
	if err != nil {
		return "", errors.Errorf("rendering diff: %w", err)
	}
	return diff, nil
}

// ColorizeDiff colors added and removed lines of a unified diff.
func ColorizeDiff(diff string) string {
	lines := strings.SplitAfter(diff, "\n")
	var b strings.Builder
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			b.WriteString(color.New(color.Bold).Sprint(line))
		case strings.HasPrefix(line, "@@"):
			b.WriteString(color.CyanString("%s", line))
		case strings.HasPrefix(line, "+"):
			b.WriteString(color.GreenString("%s", line))
		case strings.HasPrefix(line, "-"):
			b.WriteString(color.RedString("%s", line))
		default:
			b.WriteString(line)
		}
	}
	return b.String()
}

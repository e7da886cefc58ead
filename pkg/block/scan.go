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
	"strings"
)

// 📏 Span is one block a rule matched. Start and End are byte offsets into
// the document the rule ran against, End exclusive. Lines are 1-based.
type Span struct {
	Start     int `json:"start"`
	End       int `json:"end"`
	StartLine int `json:"start_line"`
	EndLine   int `json:"end_line"`
}

// 🔍 Find returns the non-overlapping spans the rule would replace in doc
func (r *Rule) Find(doc string) []Span {
	var spans []Span
	cursor := 0
	for _, loc := range r.signature.FindAllStringIndex(doc, -1) {
		if loc[0] < cursor {
			continue
		}

		var end int
		var ok bool
		switch r.spec.Mode {
		case ModeDepth:
			end, ok = depthEnd(doc, bodyStart(doc, loc))
		default:
			end, ok = r.terminatorEnd(doc, loc[1])
		}
		if !ok {
			continue
		}

		spans = append(spans, Span{Start: loc[0], End: end})
		cursor = end
	}

	numberLines(doc, spans)
	return spans
}

// terminatorEnd returns the end of the first terminator line at or after
// from. Candidate lines start at a line boundary.
func (r *Rule) terminatorEnd(doc string, from int) (int, bool) {
	lineStart := from
	if from > 0 && doc[from-1] != '\n' {
		nl := strings.IndexByte(doc[from:], '\n')
		if nl < 0 {
			return 0, false
		}
		lineStart = from + nl + 1
	}

	for lineStart < len(doc) {
		lineEnd := len(doc)
		if nl := strings.IndexByte(doc[lineStart:], '\n'); nl >= 0 {
			lineEnd = lineStart + nl
		}
		line := strings.TrimSuffix(doc[lineStart:lineEnd], "\r")
		if r.terminator.MatchString(strings.TrimRight(line, " \t")) {
			return lineStart + len(line), true
		}
		lineStart = lineEnd + 1
	}
	return 0, false
}

// bodyStart is where depth counting begins for a signature match: its last
// "{", so braces in a parameter list never close the block, or the end of the
// match when the signature has no "{".
func bodyStart(doc string, loc []int) int {
	if open := strings.LastIndexByte(doc[loc[0]:loc[1]], '{'); open >= 0 {
		return loc[0] + open
	}
	return loc[1]
}

// depthEnd scans from start until "{" / "}" depth returns to zero after the
// first "{". A ";" right after the closing brace belongs to the block.
func depthEnd(doc string, start int) (int, bool) {
	depth := 0
	opened := false
	for i := start; i < len(doc); i++ {
		switch c := doc[i]; c {
		case '{':
			depth++
			opened = true
		case '}':
			depth--
			if depth < 0 {
				return 0, false
			}
			if opened && depth == 0 {
				end := i + 1
				if end < len(doc) && doc[end] == ';' {
					end++
				}
				return end, true
			}
		case '"', '\'':
			// only a quote closed on the same line is a string; JSX text
			// like "don't" is left alone
			if j, ok := closeQuote(doc, i, c, true); ok {
				i = j
			}
		case '`':
			if j, ok := closeQuote(doc, i, c, false); ok {
				i = j
			}
		case '/':
			if i+1 >= len(doc) {
				continue
			}
			switch doc[i+1] {
			case '/':
				nl := strings.IndexByte(doc[i:], '\n')
				if nl < 0 {
					return 0, false
				}
				i += nl
			case '*':
				closeAt := strings.Index(doc[i+2:], "*/")
				if closeAt < 0 {
					return 0, false
				}
				i += 2 + closeAt + 1
			}
		}
	}
	return 0, false
}

// closeQuote finds the quote that closes the one at open, honoring
// backslash escapes.
func closeQuote(doc string, open int, quote byte, sameLine bool) (int, bool) {
	for j := open + 1; j < len(doc); j++ {
		switch doc[j] {
		case '\\':
			j++
		case '\n':
			if sameLine {
				return 0, false
			}
		case quote:
			return j, true
		}
	}
	return 0, false
}

// numberLines fills in the line numbers of spans, which must be sorted.
func numberLines(doc string, spans []Span) {
	line := 1
	pos := 0
	for i := range spans {
		line += strings.Count(doc[pos:spans[i].Start], "\n")
		spans[i].StartLine = line
		line += strings.Count(doc[spans[i].Start:spans[i].End], "\n")
		spans[i].EndLine = line
		pos = spans[i].End
	}
}

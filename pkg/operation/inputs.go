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

package operation

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// 🔍 hasMeta reports whether p should be expanded as a glob
func hasMeta(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}

// 📂 ExpandInputs turns paths and globs into a list of files. Literal paths
// are kept as given, even if missing, so reading them reports the path.
// Glob matches are sorted; ignore globs drop entries; duplicates keep their
// first position.
func ExpandInputs(patterns, ignore []string) ([]string, error) {
	for _, pattern := range ignore {
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return nil, errors.Errorf("invalid ignore pattern %q", pattern)
		}
	}

	seen := make(map[string]struct{})
	var out []string
	for _, pattern := range patterns {
		matches := []string{pattern}
		if hasMeta(pattern) {
			found, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
			if err != nil {
				return nil, errors.Errorf("expanding %q: %w", pattern, err)
			}
			if len(found) == 0 {
				return nil, errors.Errorf("pattern %q matched no files", pattern)
			}
			sort.Strings(found)
			matches = found
		}

		for _, match := range matches {
			if isIgnored(match, ignore) {
				continue
			}
			key := filepath.Clean(match)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, match)
		}
	}
	return out, nil
}

func isIgnored(path string, ignore []string) bool {
	slashed := filepath.ToSlash(path)
	for _, pattern := range ignore {
		if ok, err := doublestar.Match(filepath.ToSlash(pattern), slashed); err == nil && ok {
			return true
		}
	}
	return false
}

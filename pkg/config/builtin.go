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
	"sort"
)

// DefaultBuiltin is the rule set used when no --rules value is given.
const DefaultBuiltin = "analytics-page"

// 🗺️ builtins maps a set name to a constructor, so callers never share slices
var builtins = map[string]func() *RuleSet{
	DefaultBuiltin: analyticsPage,
}

// 📦 Builtin returns a fresh copy of a built-in rule set
func Builtin(name string) (*RuleSet, bool) {
	ctor, ok := builtins[name]
	if !ok {
		return nil, false
	}
	rs := ctor()
	rs.location = BuiltinPrefix + name
	return rs, true
}

// BuiltinNames lists the built-in rule sets, sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func importedComponent(name, props string) Rule {
	return Rule{
		Name:        name,
		Signature:   "const " + name + " = (" + props + ") => {",
		Terminator:  "};",
		Replacement: ImportedReplacement(name),
	}
}

// analyticsPage strips the dashboard widgets that moved out of
// src/components/analytics/AnalyticsPage.tsx into their own files.
func analyticsPage() *RuleSet {
	return &RuleSet{
		Name: DefaultBuiltin,
		Rules: []Rule{
			importedComponent("SentimentDashboard", "{ data }: { data: any }"),
			importedComponent("KeywordsCloud", "{ data }: { data: any }"),
			importedComponent("TeamPerformanceMatrix", "{ data, loading }: { data: any; loading?: boolean }"),
			importedComponent("ActivityFeed", "{ activities }: { activities: any }"),
			importedComponent("CoachingInsights", "{ insights }: { insights: any }"),
		},
	}
}

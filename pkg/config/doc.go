/*
Package config loads rule sets for stripdef.

	            +-------------+
	            |   RuleSet   |
	            |   (Rules)   |
	            +------+------+
	                   |
	   +---------------+---------------+
	   |               |               |
	+--+---+       +---+---+       +---+---+
	| YAML |       | JSON  |       |  HCL  |
	+------+       +-------+       +-------+

🎯 Purpose:
- Reads rule sets from YAML, JSON or HCL files, chosen by extension
- Ships built-in rule sets that need no file
- Validates rules before they reach the remover

🔍 Example (YAML):

	name: analytics-page
	rules:
	  - name: SentimentDashboard
	    signature: "const SentimentDashboard = ({ data }: { data: any }) => {"
	    replacement: "// SentimentDashboard component removed - now imported"
	  - name: KeywordsCloud
	    signature: "const KeywordsCloud = ({ data }: { data: any }) => {"
	    mode: depth
	    files: ["src/components/analytics/AnalyticsPage.tsx"]

🔍 Example (HCL):

	name = "analytics-page"

	rule "SentimentDashboard" {
	  signature   = "const SentimentDashboard = ({ data }: { data: any }) => {"
	  replacement = imported("SentimentDashboard")
	}

HCL files may call removed(name) and imported(name) to build the usual
placeholder comments.
*/
package config

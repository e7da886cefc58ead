package status

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/stripdef/pkg/block"
)

// 🧪 TestFormatFileResult tests the file line layout
func TestFormatFileResult(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name string
		res  FileResult
		want string
	}{
		{
			name: "new_file",
			res: FileResult{
				Input:  "a.tsx",
				Output: "a_cleaned.tsx",
				Status: StatusNew,
				Result: &block.Result{Rules: []block.RuleReport{{Name: "Foo", Count: 2}}},
			},
			want: "    ✓ a.tsx -> a_cleaned.tsx              new        2 blocks",
		},
		{
			name: "dry_run",
			res: FileResult{
				Input:  "a.tsx",
				Output: "a_cleaned.tsx",
				Status: StatusSkipped,
				Result: &block.Result{Rules: []block.RuleReport{{Name: "Foo", Count: 1}}},
			},
			want: "    ~ a.tsx -> a_cleaned.tsx              skipped    1 block",
		},
		{
			name: "unchanged_without_result",
			res:  FileResult{Input: "a.tsx", Output: "b.tsx", Status: StatusUnchanged},
			want: "    - a.tsx -> b.tsx                      unchanged  0 blocks",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFileResult(tt.res))
		})
	}
}

func TestFormatRuleResult(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	assert.Equal(t, "        • Foo                                 1", FormatRuleResult("Foo", 1))
	assert.Equal(t, "        ! Bar                                 0", FormatRuleResult("Bar", 0))
}

func TestUnifiedDiff(t *testing.T) {
	diff, err := UnifiedDiff("a.tsx", "a_cleaned.tsx", "keep\nconst Foo = () => {\n};\n", "keep\n// Foo removed\n")
	require.NoError(t, err)

	assert.Contains(t, diff, "--- a.tsx")
	assert.Contains(t, diff, "+++ a_cleaned.tsx")
	assert.Contains(t, diff, "-const Foo = () => {\n")
	assert.Contains(t, diff, "+// Foo removed\n")
	assert.Contains(t, diff, " keep\n")

	color.NoColor = true
	defer func() { color.NoColor = false }()
	assert.Equal(t, diff, ColorizeDiff(diff))
}

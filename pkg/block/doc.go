/*
Package block removes named block-structured definitions from text.

	+-------------+      +-------------+      +-------------+
	|  RuleSpec   | ---> |    Rule     | ---> |   Remover   |
	| (from file) |      | (compiled)  |      | (in order)  |
	+-------------+      +------+------+      +------+------+
	                            |                    |
	                       Find(doc)           Remove(ctx, doc)
	                            |                    |
	                        []Span               *Result

🎯 Purpose:
- Locate a block by its opening signature
- Find where the block ends, either at a terminator line or by counting delimiters
- Replace each block with a placeholder comment
- Report how many blocks every rule removed

🔄 Flow:
1. Rules are compiled once from their specs
2. Each rule scans the output of the rules before it
3. Matched spans are swapped for the rule's placeholder
4. The per-rule counts and spans are returned with the new text

⚡ Modes:
  - terminator: the block ends at the first following line equal to the
    terminator (default "};"). A body line that happens to equal the
    terminator ends the block early.
  - depth: the block ends where "{" / "}" depth returns to zero. Quoted
    strings, template literals and comments are skipped. A ";" directly
    after the closing brace is part of the block.

A signature with no end is left untouched. A rule that matches nothing is
not an error; it shows up with a zero count in the Result.
*/
package block

/*
Package status manages output files and run reporting for stripdef.

	            +-------------+
	            |   Status    |
	            |  (Storage)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   Files   |           | Report  |
	| (Storage) |           | (UI/UX) |
	+-----------+           +---------+

🎯 Purpose:
- Reads inputs and writes outputs atomically
- Decides whether an output is new, modified or unchanged
- Keeps per-file results in the order they were produced
- Formats files, rules, summaries and diffs for the console

⚡ Notes:
- Inputs are only ever read.
- Writes go through a temp file in the target directory and a rename.
*/
package status

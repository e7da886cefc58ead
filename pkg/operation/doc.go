/*
Package operation runs block removal over input files.

	+-------------+
	|   Inputs    |
	| (globs)     |
	+------+------+
	       |
	+------+------+
	|    Plan     |
	| (read+cut)  |
	+------+------+
	       |
	+------+------+
	|    Write    |
	|  (status)   |
	+-------------+

🎯 Purpose:
- Expands input paths and globs
- Reads every input and applies the rules that apply to it
- Writes each cleaned output through the status package
- Reports per-file and per-rule results

🔄 Flow:
1. Every input is read and transformed before anything is written, so an
   unreadable input aborts the run with no output on disk
2. Outputs are written one by one; an input is never overwritten
3. Rules that matched nothing are warnings, or ErrUnmatched when asked for

🔍 Example:

	op := operation.NewCleanOperation(operation.Options{
		Inputs:  []string{"src/components/analytics/AnalyticsPage.tsx"},
		Rules:   rules,
		Files:   status.NewManager(""),
		Logger:  log.New(os.Stdout, logger),
	})
	err := operation.NewRunner(&logger).Run(ctx, op)
*/
package operation

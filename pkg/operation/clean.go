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
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/walteh/stripdef/pkg/block"
	"github.com/walteh/stripdef/pkg/config"
	"github.com/walteh/stripdef/pkg/log"
	"github.com/walteh/stripdef/pkg/status"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🧹 CleanOperation removes blocks from every input and writes the outputs
type CleanOperation struct {
	BaseOperation
	report *status.Report
}

// 🧹 NewCleanOperation creates a new clean operation
func NewCleanOperation(opts Options) *CleanOperation {
	return &CleanOperation{
		BaseOperation: NewBaseOperation(opts),
	}
}

// plan is one input read and transformed but not yet written
type plan struct {
	input  string
	output string
	result *block.Result
}

// Report returns the report of the last Execute, or nil.
func (op *CleanOperation) Report() *status.Report {
	return op.report
}

// 🏃 Execute runs the clean operation
func (op *CleanOperation) Execute(ctx context.Context) error {
	logger := op.Logger
	if logger == nil {
		logger = log.FromContext(ctx)
	}

	inputs, err := ExpandInputs(op.Inputs, op.Ignore)
	if err != nil {
		return errors.Errorf("expanding inputs: %w", err)
	}
	if len(inputs) == 0 {
		return errors.Errorf("no input files")
	}
	if op.Output != "" && len(inputs) > 1 {
		return errors.Errorf("output path %s given for %d inputs; drop it to use the default per-file outputs", op.Output, len(inputs))
	}

	logger.Header(fmt.Sprintf("removing blocks from %d %s", len(inputs), plural(len(inputs), "file")))
	logger.StartRun(ctx, log.RunOperation{
		RuleSet: op.RuleSet,
		Rules:   len(op.Rules),
		Inputs:  len(inputs),
		DryRun:  op.DryRun,
	})

	// Nothing is written until every input has been read
	plans, err := op.planAll(ctx, inputs)
	if err != nil {
		logger.Errorf("aborted before writing any output: %s", err)
		return err
	}

	results, err := op.writeAll(ctx, plans)
	if err != nil {
		logger.Errorf("aborted while writing outputs: %s", err)
		return err
	}

	for i, p := range plans {
		op.Files.TrackFile(ctx, results[i])
		logger.LogFileResult(ctx, results[i])

		if op.Diff && p.result.Modified() {
			diff, err := status.UnifiedDiff(p.input, p.output, p.result.Original, p.result.Output)
			if err != nil {
				return errors.Errorf("diffing %s: %w", p.input, err)
			}
			logger.LogDiff(diff)
		}
	}

	logger.LogNewline()
	if op.DryRun {
		logger.Infof("dry run: %d %s not written", len(results), plural(len(results), "output"))
	}

	op.report = op.Files.Report(ctx)
	logger.EndRun(ctx, op.report)

	if unmatched := op.report.Unmatched(); op.RequireMatch && len(unmatched) > 0 {
		return errors.Errorf("%w: %s", ErrUnmatched, strings.Join(unmatched, ", "))
	}
	return nil
}

// planAll reads and transforms every input, concurrently when Async is set.
// Plans come back in input order.
func (op *CleanOperation) planAll(ctx context.Context, inputs []string) ([]*plan, error) {
	plans := make([]*plan, len(inputs))

	if !op.Async {
		for i, input := range inputs {
			p, err := op.planOne(ctx, input)
			if err != nil {
				return nil, err
			}
			plans[i] = p
		}
		return plans, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			p, err := op.planOne(gctx, input)
			if err != nil {
				return err
			}
			plans[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return plans, nil
}

// 📄 planOne reads one input and applies the rules that apply to it
func (op *CleanOperation) planOne(ctx context.Context, input string) (*plan, error) {
	output := op.Output
	if output == "" {
		output = config.DefaultOutputPath(input)
	}
	if samePath(input, output) {
		return nil, errors.Errorf("output %s would overwrite its input", output)
	}

	data, err := op.Files.ReadFile(ctx, input)
	if err != nil {
		return nil, errors.WithStack(&IOError{Op: "read", Path: input, Err: err})
	}

	result, err := block.NewRemover(op.Rules...).ForPath(input).Remove(ctx, string(data))
	if err != nil {
		return nil, errors.Errorf("cleaning %s: %w", input, err)
	}

	return &plan{input: input, output: output, result: result}, nil
}

// 💾 writeAll stages every changed output next to its destination, then
// renames them into place. A failure while staging discards everything staged
// so far and leaves every output untouched.
func (op *CleanOperation) writeAll(ctx context.Context, plans []*plan) ([]status.FileResult, error) {
	results := make([]status.FileResult, len(plans))
	staged := make([]*status.StagedFile, 0, len(plans))
	discard := func(files []*status.StagedFile) {
		for _, f := range files {
			f.Discard()
		}
	}

	for i, p := range plans {
		content := []byte(p.result.Output)
		results[i] = status.FileResult{
			Input:    p.input,
			Output:   p.output,
			Checksum: status.Checksum(content),
			Result:   p.result,
		}

		if op.DryRun {
			results[i].Status = status.StatusSkipped
			continue
		}

		st, err := op.Files.StatusFor(ctx, p.output, content)
		if err != nil {
			discard(staged)
			return nil, errors.WithStack(&IOError{Op: "write", Path: p.output, Err: err})
		}
		results[i].Status = st
		if st == status.StatusUnchanged {
			continue
		}

		f, err := op.Files.StageFile(ctx, p.output, content)
		if err != nil {
			discard(staged)
			return nil, errors.WithStack(&IOError{Op: "write", Path: p.output, Err: err})
		}
		staged = append(staged, f)
	}

	if err := ctx.Err(); err != nil {
		discard(staged)
		return nil, errors.Errorf("writing outputs: %w", err)
	}

	for i, f := range staged {
		if err := f.Commit(ctx); err != nil {
			discard(staged[i+1:])
			return nil, errors.WithStack(&IOError{Op: "write", Path: f.Path(), Err: err})
		}
	}
	return results, nil
}

func plural(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

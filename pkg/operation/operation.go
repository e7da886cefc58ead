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

	"github.com/walteh/stripdef/pkg/block"
	"github.com/walteh/stripdef/pkg/log"
	"github.com/walteh/stripdef/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// ErrUnmatched is returned when RequireMatch is set and a rule removed nothing.
var ErrUnmatched = errors.Base("rules matched nothing")

// 🎯 Operation is one unit of work run by a Runner
type Operation interface {
	Execute(ctx context.Context) error
}

// 🔧 Options contains configuration for operations
type Options struct {
	Inputs       []string        // Paths or doublestar globs
	Ignore       []string        // Globs removed from the expanded inputs
	Output       string          // Output path; only valid with a single input
	Rules        []*block.Rule   // Rules in application order
	RuleSet      string          // Rule set name, for logging
	DryRun       bool            // Report without writing
	Diff         bool            // Print a unified diff per file
	Async        bool            // Plan inputs concurrently
	RequireMatch bool            // Fail with ErrUnmatched when a rule removed nothing
	Files        *status.Manager // File access and result tracking
	Logger       *log.Logger     // Console and structured output
}

// 🏗️ BaseOperation holds what every operation shares
type BaseOperation struct {
	Options
}

// NewBaseOperation fills in defaults for unset options.
func NewBaseOperation(opts Options) BaseOperation {
	if opts.Files == nil {
		opts.Files = status.NewManager("")
	}
	return BaseOperation{Options: opts}
}

// 💥 IOError is a read or write failure on a specific path
type IOError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

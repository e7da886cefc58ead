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

package main

import (
	"context"
	"os"

	"github.com/walteh/stripdef/pkg/log"
	"github.com/walteh/stripdef/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

func main() {
	ctx := context.Background()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.NewUserLogger(ctx, os.Stderr).LogValidation(false, "stripdef failed", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps a run error to the process exit status: 2 when rules were
// required to match and did not, 1 for everything else.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, operation.ErrUnmatched):
		return 2
	default:
		return 1
	}
}

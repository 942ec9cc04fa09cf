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

	"github.com/rs/zerolog"
	"github.com/walteh/recipecopy/pkg/recipe"
	"gitlab.com/tozd/go/errors"
)

// 🏃 Operation is a unit of work for the runner
type Operation interface {
	Name() string
	Execute(ctx context.Context) error
}

// 📦 NewInstallOperation configures recipes in the given order
func NewInstallOperation(op Operator, force bool, recipes ...recipe.Recipe) Operation {
	return &installOperation{operator: op, force: force, recipes: recipes}
}

type installOperation struct {
	operator Operator
	force    bool
	recipes  []recipe.Recipe
}

func (op *installOperation) Name() string { return "install" }

// 🏃 Execute runs the install operation
func (op *installOperation) Execute(ctx context.Context) error {
	ctx = WithWriteScope(ctx)
	for _, r := range op.recipes {
		if err := op.operator.Configure(ctx, r, op.force); err != nil {
			return errors.Errorf("installing recipe %s: %w", r.Name(), err)
		}
	}
	return nil
}

// 🧹 NewUninstallOperation unconfigures recipes in reverse order, so a recipe
// installed last is removed first
func NewUninstallOperation(op Operator, recipes ...recipe.Recipe) Operation {
	return &uninstallOperation{operator: op, recipes: recipes}
}

type uninstallOperation struct {
	operator Operator
	recipes  []recipe.Recipe
}

func (op *uninstallOperation) Name() string { return "uninstall" }

// 🏃 Execute runs the uninstall operation
func (op *uninstallOperation) Execute(ctx context.Context) error {
	for i := len(op.recipes) - 1; i >= 0; i-- {
		r := op.recipes[i]
		if err := op.operator.Unconfigure(ctx, r); err != nil {
			return errors.Errorf("uninstalling recipe %s: %w", r.Name(), err)
		}
	}
	return nil
}

// 🏃 OperationRunner executes operations one after another
type OperationRunner struct {
	logger *zerolog.Logger
}

// 🏗️ NewRunner creates a new runner
func NewRunner(logger *zerolog.Logger) *OperationRunner {
	return &OperationRunner{logger: logger}
}

// 🏃 Run executes ops in order and stops at the first failure
func (r *OperationRunner) Run(ctx context.Context, ops ...Operation) error {
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("operation cancelled: %w", err)
		}

		r.logger.Debug().Str("operation", op.Name()).Msg("running operation")
		if err := op.Execute(ctx); err != nil {
			return errors.Errorf("executing %s: %w", op.Name(), err)
		}
	}
	return nil
}

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


package commands

import (
	"github.com/spf13/cobra"

	"github.com/walteh/recipecopy/cmd/recipecopy/opts"
	"github.com/walteh/recipecopy/pkg/operation"
)

// NewUninstallCmd creates the uninstall command
func NewUninstallCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uninstall <recipe-dir>...",
		Short: "Remove recipe files from the project",
		Long: `Uninstall removes every file the recipes would install, last recipe first.
Parent directories left empty are pruned one level up. A target of .git is never removed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			session, err := o.NewSession(ctx, args)
			if err != nil {
				return err
			}

			op := operation.NewUninstallOperation(session.Operator, session.Recipes...)
			if err := session.Runner.Run(ctx, op); err != nil {
				return err
			}

			session.Events.Success(summary("uninstalled", len(session.Recipes), session.Events.Events()))
			return nil
		},
	}

	return cmd
}

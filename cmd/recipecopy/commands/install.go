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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/walteh/recipecopy/cmd/recipecopy/opts"
	"github.com/walteh/recipecopy/pkg/operation"
)

// NewInstallCmd creates the install command
func NewInstallCmd(o *opts.RootOpts) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "install <recipe-dir>...",
		Short: "Copy recipe files into the project",
		Long: `Install copies every file a recipe's manifest lists into the project root.
Placeholders such as %CONFIG_DIR% are expanded in target paths and file contents.
Existing files are kept unless --force is given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			session, err := o.NewSession(ctx, args)
			if err != nil {
				return err
			}

			op := operation.NewInstallOperation(session.Operator, force, session.Recipes...)
			if err := session.Runner.Run(ctx, op); err != nil {
				return err
			}

			session.Events.Success(summary("installed", len(session.Recipes), session.Events.Events()))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing files")

	return cmd
}

func summary(verb string, recipes, files int) string {
	return fmt.Sprintf("%s %s, %s", verb, plural(recipes, "recipe"), plural(files, "file"))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

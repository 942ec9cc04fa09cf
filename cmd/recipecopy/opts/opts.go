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


package opts

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/recipecopy/pkg/config"
	"github.com/walteh/recipecopy/pkg/files"
	"github.com/walteh/recipecopy/pkg/log"
	"github.com/walteh/recipecopy/pkg/operation"
	"github.com/walteh/recipecopy/pkg/project"
	"github.com/walteh/recipecopy/pkg/recipe"
)

// RootOpts holds the persistent flags and the collaborators shared by every command
type RootOpts struct {
	Root  string   // project root, defaults to the working directory
	Set   []string // KEY=VALUE placeholder overrides
	Debug bool

	Fs     afero.Fs
	Out    io.Writer
	Logger zerolog.Logger
}

// 🏭 New creates root options backed by the OS filesystem
func New(out io.Writer) *RootOpts {
	return &RootOpts{
		Fs:     afero.NewOsFs(),
		Out:    out,
		Logger: zerolog.Nop(),
	}
}

// Session is everything one install or uninstall run needs
type Session struct {
	Recipes  []recipe.Recipe
	Project  *project.Context
	Operator operation.Operator
	Events   *log.Logger
	Runner   *operation.OperationRunner
}

// OptionKey turns a placeholder such as %BUNDLE_DIR% into its option key
func OptionKey(s string) string {
	if len(s) > 2 && strings.HasPrefix(s, "%") && strings.HasSuffix(s, "%") {
		s = strings.ToLower(strings.Trim(s, "%"))
		return strings.ReplaceAll(s, "_", "-")
	}
	return s
}

// 🔧 Overrides parses the --set flags
func (o *RootOpts) Overrides() (map[string]string, error) {
	values := make(map[string]string, len(o.Set))
	for _, kv := range o.Set {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, errors.Errorf("invalid --set value %q, expected KEY=VALUE", kv)
		}
		values[OptionKey(key)] = value
	}
	return values, nil
}

// 🏗️ NewSession loads the recipes in dirs and wires the operator around them
func (o *RootOpts) NewSession(ctx context.Context, dirs []string) (*Session, error) {
	if len(dirs) == 0 {
		return nil, errors.New("at least one recipe directory is required")
	}

	values := map[string]string{}
	recipes := make([]recipe.Recipe, 0, len(dirs))
	for _, dir := range dirs {
		r, def, err := config.LoadRecipe(ctx, o.Fs, dir)
		if err != nil {
			return nil, err
		}
		for _, key := range def.PlaceholderKeys() {
			if prev, ok := values[key]; ok && prev != def.Placeholders[key] {
				o.Logger.Debug().Str("key", key).Str("recipe", r.Name()).Msg("placeholder redefined")
			}
			values[key] = def.Placeholders[key]
		}
		recipes = append(recipes, r)
	}

	overrides, err := o.Overrides()
	if err != nil {
		return nil, err
	}
	for k, v := range overrides {
		values[k] = v
	}

	root := o.Root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Errorf("getting working directory: %w", err)
		}
		root = wd
	}

	proj, err := project.New(root, project.WithFs(o.Fs), project.WithValues(values))
	if err != nil {
		return nil, errors.Errorf("creating project: %w", err)
	}

	events := log.New(o.Out, o.Logger)
	op, err := operation.New(operation.Options{
		Project: proj,
		Files:   files.New(o.Fs),
		Sink:    events,
	})
	if err != nil {
		return nil, errors.Errorf("creating operator: %w", err)
	}

	return &Session{
		Recipes:  recipes,
		Project:  proj,
		Operator: op,
		Events:   events,
		Runner:   operation.NewRunner(&o.Logger),
	}, nil
}

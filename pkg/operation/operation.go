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
	"path/filepath"

	"github.com/walteh/recipecopy/pkg/files"
	"github.com/walteh/recipecopy/pkg/log"
	"github.com/walteh/recipecopy/pkg/project"
	"github.com/walteh/recipecopy/pkg/recipe"
	"gitlab.com/tozd/go/errors"
)

// GitDir is the target that uninstall never removes
const GitDir = ".git"

const (
	configureHeader   = "Setting configuration and copying files"
	unconfigureHeader = "Removing configuration and files"
)

// 🎯 Operator installs and uninstalls recipe manifests
type Operator interface {
	// Install copies every manifest entry from files into rootDir
	Install(ctx context.Context, manifest recipe.Manifest, files recipe.SourceBundle, rootDir string, force bool) error
	// Uninstall removes every file the manifest would install into rootDir
	Uninstall(ctx context.Context, manifest recipe.Manifest, files recipe.SourceBundle, rootDir string) error
	// Configure installs a recipe into the project root
	Configure(ctx context.Context, r recipe.Recipe, force bool) error
	// Unconfigure uninstalls a recipe from the project root
	Unconfigure(ctx context.Context, r recipe.Recipe) error
}

// 🔧 Project is the view of the project an operator needs
type Project interface {
	// Get returns an option value such as the root directory
	Get(key string) string
	// ExpandTargetDir substitutes placeholders in a target path
	ExpandTargetDir(s string) string
	// ExpandContents substitutes placeholders in file contents
	ExpandContents(b []byte) []byte
	// ShouldWriteFile decides whether path may be written
	ShouldWriteFile(path string, force bool) bool
	// Concatenate joins path segments
	Concatenate(segments ...string) string
	// Relativize renders a path for display
	Relativize(path string) string
}

var _ Project = (*project.Context)(nil)

// 🔧 Options contains the collaborators of an operator
type Options struct {
	// Project resolves targets and decides on overwrites
	Project Project
	// Files performs the filesystem effects
	Files files.FileManager
	// Sink receives one event per created or removed file
	Sink log.Sink
}

// 🏭 New creates a new operator with the given options
func New(opts Options) (Operator, error) {
	if opts.Project == nil {
		return nil, errors.Errorf("project is required")
	}
	if opts.Files == nil {
		return nil, errors.Errorf("file manager is required")
	}
	if opts.Sink == nil {
		return nil, errors.Errorf("event sink is required")
	}
	return &operator{
		project: opts.Project,
		files:   opts.Files,
		sink:    opts.Sink,
	}, nil
}

// 🎮 operator implements the Operator interface
type operator struct {
	project Project
	files   files.FileManager
	sink    log.Sink
}

// Configure implements Operator.Configure
func (o *operator) Configure(ctx context.Context, r recipe.Recipe, force bool) error {
	log.WriteHeader(ctx, o.sink, configureHeader)
	if err := o.Install(ctx, r.Manifest(), r.Files(), o.project.Get(project.RootDirKey), force); err != nil {
		return errors.Errorf("configuring %s: %w", r.Name(), err)
	}
	return nil
}

// Unconfigure implements Operator.Unconfigure
func (o *operator) Unconfigure(ctx context.Context, r recipe.Recipe) error {
	log.WriteHeader(ctx, o.sink, unconfigureHeader)
	if err := o.Uninstall(ctx, r.Manifest(), r.Files(), o.project.Get(project.RootDirKey)); err != nil {
		return errors.Errorf("unconfiguring %s: %w", r.Name(), err)
	}
	return nil
}

// 📍 resolve joins rootDir, the expanded target and an optional suffix
func (o *operator) resolve(rootDir, target, suffix string) string {
	if suffix == "" {
		return o.project.Concatenate(rootDir, target)
	}
	return o.project.Concatenate(rootDir, target, filepath.FromSlash(suffix))
}

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


package config

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/recipecopy/pkg/recipe"
)

// FilesDir holds the recipe's payload when present.
const FilesDir = "files"

// DefinitionFiles are looked up in order; the first one found wins.
var DefinitionFiles = []string{
	"recipe.yaml",
	"recipe.yml",
	"recipe.json",
	"recipe.hcl",
	"recipe.toml",
}

// 🔌 Parser is the interface for definition parsers
type Parser interface {
	// 📝 Parse parses a definition from bytes
	Parse(ctx context.Context, data []byte) (*Definition, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📦 Definition is the parsed form of a recipe definition file
type Definition struct {
	Name         string            // Recipe name, defaults to the directory name
	Copy         recipe.Manifest   // Ordered source -> target entries
	Placeholders map[string]string // Extra option values keyed like "bundle-dir"
	Ignore       []string          // Doublestar patterns excluded from the bundle
}

// ✅ Validate checks the definition's shape
func (d *Definition) Validate() error {
	for _, e := range d.Copy.Entries() {
		if e.Source == "" || e.Source == recipe.Separator {
			return errors.Errorf("copy entry with target %q has an empty source", e.Target)
		}
		if e.Target == "" {
			return errors.Errorf("copy entry %q has an empty target", e.Source)
		}
	}
	for key := range d.Placeholders {
		if key == "" {
			return errors.New("placeholder key is empty")
		}
	}
	return nil
}

// PlaceholderKeys returns the placeholder keys sorted.
func (d *Definition) PlaceholderKeys() []string {
	keys := make([]string, 0, len(d.Placeholders))
	for k := range d.Placeholders {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// 📥 Load reads and parses a single definition file
func Load(ctx context.Context, fsys afero.Fs, path string) (*Definition, error) {
	parser := GetParser(path)
	if parser == nil {
		return nil, errors.Errorf("unsupported definition format: %s", filepath.Ext(path))
	}

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Errorf("reading definition %s: %w", path, err)
	}

	def, err := parser.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing definition %s: %w", path, err)
	}

	if err := def.Validate(); err != nil {
		return nil, errors.Errorf("validating definition %s: %w", path, err)
	}

	return def, nil
}

// 🔍 FindDefinition returns the path of the definition file inside dir
func FindDefinition(fsys afero.Fs, dir string) (string, error) {
	for _, name := range DefinitionFiles {
		path := filepath.Join(dir, name)
		info, err := fsys.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", errors.Errorf("checking %s: %w", path, err)
		}
		if !info.IsDir() {
			return path, nil
		}
	}
	return "", errors.Errorf("no recipe definition found in %s", dir)
}

// 🏭 LoadRecipe loads the recipe stored in dir along with its definition
func LoadRecipe(ctx context.Context, fsys afero.Fs, dir string) (recipe.Recipe, *Definition, error) {
	logger := zerolog.Ctx(ctx)

	defPath, err := FindDefinition(fsys, dir)
	if err != nil {
		return nil, nil, err
	}

	def, err := Load(ctx, fsys, defPath)
	if err != nil {
		return nil, nil, err
	}

	if def.Name == "" {
		def.Name = filepath.Base(filepath.Clean(dir))
	}

	root := filepath.Join(dir, FilesDir)
	ignore := def.Ignore
	if ok, err := afero.DirExists(fsys, root); err != nil {
		return nil, nil, errors.Errorf("checking %s: %w", root, err)
	} else if !ok {
		root = dir
		ignore = append(append([]string{}, def.Ignore...), filepath.Base(defPath))
	}

	logger.Debug().
		Str("recipe", def.Name).
		Str("definition", defPath).
		Str("files", root).
		Int("entries", def.Copy.Len()).
		Msg("loading recipe")

	bundle, err := recipe.LoadBundle(ctx, fsys, root, ignore)
	if err != nil {
		return nil, nil, errors.Errorf("loading recipe %s: %w", def.Name, err)
	}

	return recipe.New(def.Name, def.Copy, bundle), def, nil
}

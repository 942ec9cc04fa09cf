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

package recipe

import (
	"sort"
	"strings"
)

// 📄 FileBlob is a single file shipped by a recipe
type FileBlob struct {
	Contents   []byte
	Executable bool
}

// 📦 SourceBundle maps a recipe-relative path to its contents.
// Keys always use "/" as separator.
type SourceBundle map[string]FileBlob

// Keys returns the bundle keys in lexical order
func (b SourceBundle) Keys() []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WithPrefix returns the keys starting with prefix, in lexical order
func (b SourceBundle) WithPrefix(prefix string) []string {
	var keys []string
	for _, k := range b.Keys() {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys
}

// 🍳 Recipe is the unit of installation: a manifest and the files it refers to
type Recipe interface {
	Name() string
	Files() SourceBundle
	Manifest() Manifest
}

// New creates a Recipe from its parts
func New(name string, manifest Manifest, files SourceBundle) Recipe {
	return &recipe{name: name, manifest: manifest, files: files}
}

type recipe struct {
	name     string
	manifest Manifest
	files    SourceBundle
}

func (r *recipe) Name() string { return r.name }
func (r *recipe) Files() SourceBundle { return r.files }
func (r *recipe) Manifest() Manifest { return r.manifest }

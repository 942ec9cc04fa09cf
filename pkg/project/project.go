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

package project

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"github.com/walteh/recipecopy/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// RootDirKey is the option holding the absolute project root
const RootDirKey = "root-dir"

// 🗂️ defaultOptions are the directory options every project starts with
var defaultOptions = map[string]string{
	"bin-dir":    "bin",
	"config-dir": "config",
	"src-dir":    "src",
	"var-dir":    "var",
	"public-dir": "public",
}

// 🎯 Context is the per-invocation view of the project being configured: its root,
// its option values (which double as placeholders) and its write policy.
type Context struct {
	root         string
	fs           afero.Fs
	options      map[string]string
	policy       WritePolicy
	placeholders *text.Placeholders
}

// 🔧 Option configures a Context
type Option func(*Context)

// WithValue sets one option. The value is also available as the %KEY% placeholder.
func WithValue(key, value string) Option {
	return func(c *Context) {
		c.options[key] = value
	}
}

// WithValues sets several options at once
func WithValues(values map[string]string) Option {
	return func(c *Context) {
		for k, v := range values {
			c.options[k] = v
		}
	}
}

// WithFs sets the filesystem the default write policy inspects
func WithFs(fs afero.Fs) Option {
	return func(c *Context) {
		c.fs = fs
	}
}

// WithWritePolicy replaces the default write policy
func WithWritePolicy(p WritePolicy) Option {
	return func(c *Context) {
		c.policy = p
	}
}

// 🏭 New creates a Context rooted at root, which is made absolute
func New(root string, opts ...Option) (*Context, error) {
	if root == "" {
		return nil, errors.New("root directory is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Errorf("resolving root directory %s: %w", root, err)
	}

	c := &Context{
		root:    abs,
		options: make(map[string]string, len(defaultOptions)+1),
	}
	for k, v := range defaultOptions {
		c.options[k] = v
	}
	for _, opt := range opts {
		opt(c)
	}
	c.options[RootDirKey] = abs

	if c.fs == nil {
		c.fs = afero.NewOsFs()
	}
	if c.policy == nil {
		c.policy = NewOverwritePolicy(c.fs)
	}
	c.placeholders = c.buildPlaceholders()

	return c, nil
}

// Root returns the absolute project root
func (c *Context) Root() string {
	return c.root
}

// Get returns the option value for key, or "" when unset
func (c *Context) Get(key string) string {
	return c.options[key]
}

// Keys returns every option key in lexical order
func (c *Context) Keys() []string {
	keys := make([]string, 0, len(c.options))
	for k := range c.options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Placeholders returns the substitution table: option "config-dir" becomes
// %CONFIG_DIR%, with any trailing separator trimmed from the value.
// Options are fixed at New, so the table is built once.
func (c *Context) Placeholders() *text.Placeholders {
	return c.placeholders
}

func (c *Context) buildPlaceholders() *text.Placeholders {
	p := text.NewPlaceholders()
	// longer tokens first, so overlapping tokens resolve to the longest match
	keys := c.Keys()
	sort.SliceStable(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })
	for _, k := range keys {
		p.Set(text.TokenFor(k), strings.TrimRight(c.options[k], "/"))
	}
	return p
}

// ExpandTargetDir substitutes placeholders in a target path
func (c *Context) ExpandTargetDir(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	return c.placeholders.Expand(s)
}

// ExpandContents substitutes placeholders in file contents. Contents without
// any token are returned as is.
func (c *Context) ExpandContents(b []byte) []byte {
	return c.placeholders.ExpandBytes(b)
}

// ShouldWriteFile asks the write policy whether path may be written
func (c *Context) ShouldWriteFile(path string, force bool) bool {
	return c.policy.ShouldWriteFile(path, force)
}

// Concatenate joins segments into one clean path. Empty segments are ignored.
func (c *Context) Concatenate(segments ...string) string {
	return filepath.Join(segments...)
}

// Relativize renders path relative to the project root for display. Paths outside
// the root are returned unchanged.
func (c *Context) Relativize(path string) string {
	rel, err := filepath.Rel(c.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

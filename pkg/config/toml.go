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
	"bytes"
	"context"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/recipecopy/pkg/recipe"
)

func init() {
	Register(&TOMLParser{})
}

// 🔧 TOMLParser implements the Parser interface for TOML files
type TOMLParser struct{}

type tomlDefinition struct {
	Name         string            `toml:"name"`
	Placeholders map[string]string `toml:"placeholders"`
	Ignore       []string          `toml:"ignore"`
	Copy         []tomlCopy        `toml:"copy"`
}

type tomlCopy struct {
	From string `toml:"from"`
	To   string `toml:"to"`
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *TOMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".toml")
}

// 📝 Parse parses the definition from TOML
func (p *TOMLParser) Parse(ctx context.Context, data []byte) (*Definition, error) {
	var raw tomlDefinition
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Errorf("decoding TOML: %w", err)
	}

	var manifest recipe.Manifest
	for i, c := range raw.Copy {
		if c.From == "" || c.To == "" {
			return nil, errors.Errorf("copy table %d needs both from and to", i+1)
		}
		manifest.Add(c.From, c.To)
	}

	return &Definition{
		Name:         raw.Name,
		Copy:         manifest,
		Placeholders: raw.Placeholders,
		Ignore:       raw.Ignore,
	}, nil
}

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
	"io"
	"strings"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/walteh/recipecopy/pkg/recipe"
)

func init() {
	Register(&YAMLParser{})
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

type yamlDefinition struct {
	Name         string            `yaml:"name"`
	Copy         yaml.Node         `yaml:"copy-from-recipe"`
	Placeholders map[string]string `yaml:"placeholders"`
	Ignore       []string          `yaml:"ignore"`
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

// 📝 Parse parses the definition from YAML
func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Definition, error) {
	var raw yamlDefinition
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Errorf("decoding YAML: %w", err)
	}

	manifest, err := yamlManifest(&raw.Copy)
	if err != nil {
		return nil, err
	}

	return &Definition{
		Name:         raw.Name,
		Copy:         manifest,
		Placeholders: raw.Placeholders,
		Ignore:       raw.Ignore,
	}, nil
}

// mapping nodes keep document order, a plain map would not
func yamlManifest(node *yaml.Node) (recipe.Manifest, error) {
	var manifest recipe.Manifest

	switch node.Kind {
	case 0:
		return manifest, nil
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return manifest, nil
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			if value.Kind != yaml.ScalarNode {
				return manifest, errors.Errorf("line %d: target of %q must be a string", value.Line, key.Value)
			}
			manifest.Add(key.Value, value.Value)
		}
		return manifest, nil
	}

	return manifest, errors.Errorf("line %d: copy-from-recipe must be a mapping", node.Line)
}

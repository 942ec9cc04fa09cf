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
	"encoding/json"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/recipecopy/pkg/recipe"
)

func init() {
	Register(&JSONParser{})
}

// 🔧 JSONParser implements the Parser interface for JSON files
type JSONParser struct{}

// unknown top-level keys are tolerated so manifest.json files carrying
// other configurators can be read as is
type jsonDefinition struct {
	Name         string            `json:"name"`
	Copy         json.RawMessage   `json:"copy-from-recipe"`
	Placeholders map[string]string `json:"placeholders"`
	Ignore       []string          `json:"ignore"`
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *JSONParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".json")
}

// 📝 Parse parses the definition from JSON
func (p *JSONParser) Parse(ctx context.Context, data []byte) (*Definition, error) {
	var raw jsonDefinition
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Errorf("decoding JSON: %w", err)
	}

	manifest, err := jsonManifest(raw.Copy)
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

// walks the object token by token to keep key order
func jsonManifest(data json.RawMessage) (recipe.Manifest, error) {
	var manifest recipe.Manifest
	if len(bytes.TrimSpace(data)) == 0 || string(bytes.TrimSpace(data)) == "null" {
		return manifest, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return manifest, errors.Errorf("reading copy-from-recipe: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return manifest, errors.New("copy-from-recipe must be an object")
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return manifest, errors.Errorf("reading copy-from-recipe: %w", err)
		}
		source, ok := tok.(string)
		if !ok {
			return manifest, errors.Errorf("unexpected token %v in copy-from-recipe", tok)
		}

		var target string
		if err := dec.Decode(&target); err != nil {
			return manifest, errors.Errorf("target of %q must be a string: %w", source, err)
		}
		manifest.Add(source, target)
	}

	return manifest, nil
}

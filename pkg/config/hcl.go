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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/recipecopy/pkg/recipe"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct {
	// Environ feeds the env variable; defaults to os.Environ
	Environ func() []string
}

type hclDefinition struct {
	Name         string            `hcl:"name,optional"`
	Placeholders map[string]string `hcl:"placeholders,optional"`
	Ignore       []string          `hcl:"ignore,optional"`
	Copies       []hclCopy         `hcl:"copy,block"`
}

type hclCopy struct {
	From string `hcl:"from,label"`
	To   string `hcl:"to"`
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the definition from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Definition, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "recipe.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": p.envObject(),
		},
	}

	var raw hclDefinition
	if diags := gohcl.DecodeBody(hclFile.Body, evalCtx, &raw); diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	var manifest recipe.Manifest
	for _, c := range raw.Copies {
		manifest.Add(c.From, c.To)
	}

	return &Definition{
		Name:         raw.Name,
		Copy:         manifest,
		Placeholders: raw.Placeholders,
		Ignore:       raw.Ignore,
	}, nil
}

func (p *HCLParser) envObject() cty.Value {
	environ := os.Environ
	if p.Environ != nil {
		environ = p.Environ
	}

	vars := map[string]cty.Value{}
	for _, kv := range environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		vars[key] = cty.StringVal(value)
	}
	return cty.ObjectVal(vars)
}

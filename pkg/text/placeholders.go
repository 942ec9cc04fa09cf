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

package text

import (
	"strings"
)

// 🏷️ Placeholders is an ordered table of %TOKEN% substitutions.
// The same table expands target paths and file contents. Set must not race with Expand.
type Placeholders struct {
	replacer *SimpleTextReplacer
	tokens   []string
	values   map[string]string
	rules    []ReplacementRule // built on first use, dropped by Set
}

// NewPlaceholders creates an empty placeholder table
func NewPlaceholders() *Placeholders {
	return &Placeholders{
		replacer: NewSimpleTextReplacer(),
		values:   make(map[string]string),
	}
}

// TokenFor returns the placeholder token for an option key: "config-dir" becomes "%CONFIG_DIR%".
func TokenFor(key string) string {
	return "%" + strings.ToUpper(strings.ReplaceAll(key, "-", "_")) + "%"
}

// Set registers or overrides the value for token. Order of first registration is kept.
func (p *Placeholders) Set(token, value string) {
	if _, ok := p.values[token]; !ok {
		p.tokens = append(p.tokens, token)
	}
	p.values[token] = value
	p.rules = nil
}

// Lookup returns the value registered for token
func (p *Placeholders) Lookup(token string) (string, bool) {
	v, ok := p.values[token]
	return v, ok
}

// Len returns the number of registered tokens
func (p *Placeholders) Len() int {
	return len(p.tokens)
}

// Rules converts the table into replacement rules, in registration order
func (p *Placeholders) Rules() []ReplacementRule {
	return append([]ReplacementRule{}, p.table()...)
}

// Expand substitutes every known token in s. Unknown tokens are left untouched.
func (p *Placeholders) Expand(s string) string {
	out, _ := p.replacer.Replace(s, p.table())
	return out
}

// ExpandBytes is Expand for file contents
func (p *Placeholders) ExpandBytes(b []byte) []byte {
	out, n := p.replacer.Replace(string(b), p.table())
	if n == 0 {
		return b
	}
	return []byte(out)
}

func (p *Placeholders) table() []ReplacementRule {
	if p.rules == nil {
		p.rules = make([]ReplacementRule, 0, len(p.tokens))
		for _, token := range p.tokens {
			p.rules = append(p.rules, ReplacementRule{FromText: token, ToText: p.values[token]})
		}
	}
	return p.rules
}

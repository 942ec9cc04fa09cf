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

// SimpleTextReplacer applies replacement rules using literal string matching
type SimpleTextReplacer struct{}

// NewSimpleTextReplacer creates a new SimpleTextReplacer
func NewSimpleTextReplacer() *SimpleTextReplacer {
	return &SimpleTextReplacer{}
}

// Replace substitutes every rule occurrence in content, scanning left to right.
// Replaced text is never rescanned, so a value that looks like another token stays as is.
// When two rules match at the same position the earlier rule wins.
func (r *SimpleTextReplacer) Replace(content string, rules []ReplacementRule) (string, int) {
	if !containsAny(content, rules) {
		return content, 0
	}

	var b strings.Builder
	b.Grow(len(content))

	count := 0
	for i := 0; i < len(content); {
		matched := false
		for _, rule := range rules {
			if rule.FromText == "" || !strings.HasPrefix(content[i:], rule.FromText) {
				continue
			}
			b.WriteString(rule.ToText)
			i += len(rule.FromText)
			count++
			matched = true
			break
		}
		if !matched {
			b.WriteByte(content[i])
			i++
		}
	}

	return b.String(), count
}

func containsAny(content string, rules []ReplacementRule) bool {
	for _, rule := range rules {
		if rule.FromText != "" && strings.Contains(content, rule.FromText) {
			return true
		}
	}
	return false
}

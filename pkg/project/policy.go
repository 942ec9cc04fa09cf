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
	"github.com/spf13/afero"
)

// ⚖️ WritePolicy decides whether a file write may proceed
type WritePolicy interface {
	ShouldWriteFile(path string, force bool) bool
}

// WritePolicyFunc adapts a function to WritePolicy
type WritePolicyFunc func(path string, force bool) bool

// ShouldWriteFile implements WritePolicy
func (f WritePolicyFunc) ShouldWriteFile(path string, force bool) bool {
	return f(path, force)
}

// OverwritePolicy writes missing files always and existing files only when forced
type OverwritePolicy struct {
	fs afero.Fs
}

var _ WritePolicy = (*OverwritePolicy)(nil)

// NewOverwritePolicy creates a policy that inspects fs
func NewOverwritePolicy(fs afero.Fs) *OverwritePolicy {
	return &OverwritePolicy{fs: fs}
}

// ShouldWriteFile implements WritePolicy
func (p *OverwritePolicy) ShouldWriteFile(path string, force bool) bool {
	exists, err := afero.Exists(p.fs, path)
	if err != nil {
		// unknown state is treated as existing
		return force
	}
	return !exists || force
}

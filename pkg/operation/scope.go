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


package operation

import (
	"context"
	"sync"
)

// 🧮 writeScope remembers the paths written during one run
type writeScope struct {
	mu      sync.Mutex
	written map[string]struct{}
}

type writeScopeKey struct{}

// WithWriteScope starts a run: every Install sharing the returned context writes a
// given path at most once. A context that already carries a run is returned as is.
func WithWriteScope(ctx context.Context) context.Context {
	if _, ok := ctx.Value(writeScopeKey{}).(*writeScope); ok {
		return ctx
	}
	return context.WithValue(ctx, writeScopeKey{}, &writeScope{written: map[string]struct{}{}})
}

func scopeFrom(ctx context.Context) *writeScope {
	s, _ := ctx.Value(writeScopeKey{}).(*writeScope)
	return s
}

// seen reports whether path was already written in this run
func (s *writeScope) seen(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.written[path]
	return ok
}

func (s *writeScope) mark(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.written[path] = struct{}{}
}

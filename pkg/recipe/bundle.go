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
	"context"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentReads bounds how many recipe files are read at once
const maxConcurrentReads = 8

// 📥 LoadBundle builds a SourceBundle from every regular file below dir.
// Paths matching one of the ignore patterns (doublestar syntax, relative to dir)
// are skipped; a matching directory skips its whole subtree. A file is marked
// executable when any execute bit is set on it.
func LoadBundle(ctx context.Context, fsys afero.Fs, dir string, ignore []string) (SourceBundle, error) {
	logger := zerolog.Ctx(ctx)

	for _, pattern := range ignore {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid ignore pattern %q", pattern)
		}
	}

	type pending struct {
		key        string
		path       string
		executable bool
	}

	var files []pending
	err := afero.Walk(fsys, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return errors.Errorf("relativizing %s: %w", path, err)
		}
		if rel == "." {
			return nil
		}
		key := filepath.ToSlash(rel)

		if shouldIgnore(logger, ignore, key) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		files = append(files, pending{
			key:        key,
			path:       path,
			executable: info.Mode().Perm()&0o111 != 0,
		})
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking recipe directory %s: %w", dir, err)
	}

	blobs := make([]FileBlob, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := afero.ReadFile(fsys, f.path)
			if err != nil {
				return errors.Errorf("reading %s: %w", f.key, err)
			}
			blobs[i] = FileBlob{Contents: data, Executable: f.executable}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	bundle := make(SourceBundle, len(files))
	for i, f := range files {
		bundle[f.key] = blobs[i]
	}

	logger.Debug().Str("dir", dir).Int("files", len(bundle)).Msg("loaded recipe files")

	return bundle, nil
}

// 🔍 shouldIgnore checks if a bundle key matches an ignore pattern
func shouldIgnore(logger *zerolog.Logger, patterns []string, key string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, key)
		if err != nil {
			logger.Debug().Str("pattern", pattern).Str("path", key).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			logger.Debug().Str("file", key).Str("pattern", pattern).Msg("file ignored by pattern")
			return true
		}
	}
	return false
}

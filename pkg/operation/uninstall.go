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
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/recipecopy/pkg/log"
	"github.com/walteh/recipecopy/pkg/recipe"
	"gitlab.com/tozd/go/errors"
)

// Uninstall implements Operator.Uninstall
func (o *operator) Uninstall(ctx context.Context, manifest recipe.Manifest, files recipe.SourceBundle, rootDir string) error {
	logger := zerolog.Ctx(ctx)

	for _, entry := range manifest.Entries() {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("uninstalling %s: %w", entry.Source, err)
		}

		target := o.project.ExpandTargetDir(entry.Target)

		// never remove the main git directory, even if a recipe created it
		if target == GitDir {
			logger.Debug().Str("source", entry.Source).Msg("skipping git directory")
			continue
		}

		if !entry.IsDir() {
			o.removeFile(ctx, o.resolve(rootDir, target, ""))
			continue
		}

		// directory entries never fail to match
		matches, _ := entry.Matches(files)

		logger.Debug().
			Str("source", entry.Source).
			Str("target", target).
			Int("matches", len(matches)).
			Msg("uninstalling directory entry")

		for _, m := range matches {
			o.removeFile(ctx, o.resolve(rootDir, target, m.Suffix))
		}
	}

	return nil
}

// 🗑️ removeFile deletes path and prunes its parent when left empty.
// Every failure here is deliberately ignored.
func (o *operator) removeFile(ctx context.Context, path string) {
	if !o.files.Exists(path) {
		return
	}

	_ = o.files.Remove(path)
	o.sink.Write(ctx, log.Removed(o.project.Relativize(path)))

	_ = o.files.RemoveDirIfEmpty(filepath.Dir(path))
}

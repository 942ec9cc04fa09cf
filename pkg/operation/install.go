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

// Install implements Operator.Install
func (o *operator) Install(ctx context.Context, manifest recipe.Manifest, files recipe.SourceBundle, rootDir string, force bool) error {
	logger := zerolog.Ctx(ctx)
	ctx = WithWriteScope(ctx)

	for _, entry := range manifest.Entries() {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("installing %s: %w", entry.Source, err)
		}

		target := o.project.ExpandTargetDir(entry.Target)

		matches, err := entry.Matches(files)
		if err != nil {
			return errors.Errorf("resolving %s: %w", entry.Source, err)
		}

		logger.Debug().
			Str("source", entry.Source).
			Str("target", target).
			Stringer("kind", entry.Kind).
			Int("matches", len(matches)).
			Msg("installing entry")

		for _, m := range matches {
			path := o.resolve(rootDir, target, m.Suffix)
			if err := o.copyFile(ctx, path, m.Blob, force); err != nil {
				return errors.Errorf("copying %s: %w", m.Key, err)
			}
		}
	}

	return nil
}

// 📄 copyFile writes one blob to path, at most once per run
func (o *operator) copyFile(ctx context.Context, path string, blob recipe.FileBlob, force bool) error {
	scope := scopeFrom(ctx)
	if scope.seen(path) {
		zerolog.Ctx(ctx).Debug().Str("path", path).Msg("already written in this run")
		return nil
	}

	if !o.project.ShouldWriteFile(path, force) {
		zerolog.Ctx(ctx).Debug().Str("path", path).Bool("force", force).Msg("write declined by policy")
		return nil
	}
	scope.mark(path)

	if err := o.files.MkdirAll(filepath.Dir(path)); err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}

	contents := o.project.ExpandContents(blob.Contents)
	if err := o.files.WriteFile(path, contents); err != nil {
		return err
	}

	if blob.Executable {
		// filesystems without permission bits are fine
		_ = o.files.AddExecutable(path)
	}

	o.sink.Write(ctx, log.Created(o.project.Relativize(path)))

	return nil
}

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

package operation_test

import (
	"context"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/walteh/recipecopy/pkg/files"
	"github.com/walteh/recipecopy/pkg/log"
	"github.com/walteh/recipecopy/pkg/operation"
	"github.com/walteh/recipecopy/pkg/project"
	"github.com/walteh/recipecopy/pkg/recipe"
)

func TestNew(t *testing.T) {
	proj, err := project.New("/project")
	require.NoError(t, err)

	tests := []struct {
		name          string
		opts          operation.Options
		expectedError string
	}{
		{
			name:          "missing_project",
			opts:          operation.Options{Files: files.NewOS(), Sink: log.NewRecorder()},
			expectedError: "project is required",
		},
		{
			name:          "missing_files",
			opts:          operation.Options{Project: proj, Sink: log.NewRecorder()},
			expectedError: "file manager is required",
		},
		{
			name:          "missing_sink",
			opts:          operation.Options{Project: proj, Files: files.NewOS()},
			expectedError: "event sink is required",
		},
		{
			name: "complete",
			opts: operation.Options{Project: proj, Files: files.NewOS(), Sink: log.NewRecorder()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := operation.New(tt.opts)
			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, op)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, op)
		})
	}
}

// 🧪 TestInstall_SingleFile covers the config/packages example end to end
func TestInstall_SingleFile(t *testing.T) {
	env := createTestEnv(t, map[string]string{"name": "foo"})

	bundle := recipe.SourceBundle{
		"config/packages/foo.yaml": {Contents: []byte("foo: bar")},
	}
	manifest := recipe.NewManifest(recipe.FileEntry("config/packages/foo.yaml", "config/packages/%NAME%.yaml"))

	require.NoError(t, env.op.Install(env.ctx, manifest, bundle, env.root, false))
	assert.Equal(t, "foo: bar", env.read(t, "config/packages/foo.yaml"))
	assert.Equal(t, []string{`Created "config/packages/foo.yaml"`}, env.recorder.Messages())

	env.recorder.Reset()
	require.NoError(t, env.op.Uninstall(env.ctx, manifest, bundle, env.root))
	assert.NoFileExists(t, env.path("config/packages/foo.yaml"))
	assert.NoDirExists(t, env.path("config/packages"))
	assert.DirExists(t, env.path("config"), "cleanup is one level deep")
	assert.Equal(t, []string{`Removed "config/packages/foo.yaml"`}, env.recorder.Messages())
}

func TestInstall_DirectoryMapping(t *testing.T) {
	env := createTestEnv(t, map[string]string{"bundle": "AcmeBundle"})

	bundle := recipe.SourceBundle{
		"templates/base.html.twig":     {Contents: []byte("base")},
		"templates/email/welcome.twig": {Contents: []byte("welcome")},
		"templates-old/legacy.twig":    {Contents: []byte("legacy")},
		"other/file.txt":               {Contents: []byte("other")},
	}
	manifest := recipe.NewManifest(recipe.NewEntry("templates/", "app/Resources/%BUNDLE%/"))

	require.NoError(t, env.op.Install(env.ctx, manifest, bundle, env.root, false))

	assert.Equal(t, map[string]string{
		".":                                           "/",
		"app":                                         "/",
		"app/Resources":                               "/",
		"app/Resources/AcmeBundle":                    "/",
		"app/Resources/AcmeBundle/base.html.twig":     "base",
		"app/Resources/AcmeBundle/email":              "/",
		"app/Resources/AcmeBundle/email/welcome.twig": "welcome",
	}, env.snapshot(t))

	assert.Equal(t, []string{
		`Created "app/Resources/AcmeBundle/base.html.twig"`,
		`Created "app/Resources/AcmeBundle/email/welcome.twig"`,
	}, env.recorder.Messages())
}

func TestInstall_DirectoryWithoutMatches(t *testing.T) {
	env := createTestEnv(t, nil)

	manifest := recipe.NewManifest(recipe.DirectoryEntry("nothing/", "somewhere/"))
	require.NoError(t, env.op.Install(env.ctx, manifest, recipe.SourceBundle{"a.txt": {}}, env.root, false))

	assert.NoDirExists(t, env.path("somewhere"))
	assert.Empty(t, env.recorder.Messages())
}

func TestInstall_Twice(t *testing.T) {
	manifest := recipe.NewManifest(recipe.FileEntry("a.txt", "a.txt"))
	first := recipe.SourceBundle{"a.txt": {Contents: []byte("first")}}
	second := recipe.SourceBundle{"a.txt": {Contents: []byte("second")}}

	t.Run("without_force_keeps_first_content", func(t *testing.T) {
		env := createTestEnv(t, nil)
		require.NoError(t, env.op.Install(env.ctx, manifest, first, env.root, false))
		require.NoError(t, env.op.Install(env.ctx, manifest, second, env.root, false))

		assert.Equal(t, "first", env.read(t, "a.txt"))
		assert.Len(t, env.recorder.Messages(), 1, "declined writes emit no event")
	})

	t.Run("with_force_overwrites", func(t *testing.T) {
		env := createTestEnv(t, nil)
		require.NoError(t, env.op.Install(env.ctx, manifest, first, env.root, true))
		require.NoError(t, env.op.Install(env.ctx, manifest, second, env.root, true))

		assert.Equal(t, "second", env.read(t, "a.txt"))
		assert.Len(t, env.recorder.Messages(), 2)
	})

	t.Run("existing_user_file_is_kept", func(t *testing.T) {
		env := createTestEnv(t, nil)
		env.write(t, "a.txt", "mine")
		require.NoError(t, env.op.Install(env.ctx, manifest, first, env.root, false))

		assert.Equal(t, "mine", env.read(t, "a.txt"))
		assert.Empty(t, env.recorder.Messages())
	})
}

func TestInstall_ExpandsContents(t *testing.T) {
	env := createTestEnv(t, map[string]string{"name": "foo"})

	bundle := recipe.SourceBundle{
		"config.yaml": {Contents: []byte("name: %NAME%\ndir: %CONFIG_DIR%\nkeep: %UNKNOWN%\n")},
	}
	manifest := recipe.NewManifest(recipe.FileEntry("config.yaml", "%CONFIG_DIR%/%NAME%.yaml"))

	require.NoError(t, env.op.Install(env.ctx, manifest, bundle, env.root, false))
	assert.Equal(t, "name: foo\ndir: config\nkeep: %UNKNOWN%\n", env.read(t, "config/foo.yaml"))
}

func TestInstall_Executable(t *testing.T) {
	env := createTestEnv(t, nil)

	bundle := recipe.SourceBundle{
		"bin/console": {Contents: []byte("#!/bin/sh\n"), Executable: true},
		"bin/readme":  {Contents: []byte("docs")},
	}
	manifest := recipe.NewManifest(recipe.DirectoryEntry("bin/", "%BIN_DIR%/"))

	require.NoError(t, env.op.Install(env.ctx, manifest, bundle, env.root, false))

	info, err := os.Stat(env.path("bin/console"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o111), info.Mode().Perm()&0o111, "all execute bits should be set")

	info, err = os.Stat(env.path("bin/readme"))
	require.NoError(t, err)
	assert.Zero(t, info.Mode().Perm()&0o111)
}

func TestInstall_ChmodFailureIsSwallowed(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	fs := noChmodFs{afero.NewMemMapFs()}

	proj, err := project.New("/project", project.WithFs(fs))
	require.NoError(t, err)
	recorder := log.NewRecorder()
	op, err := operation.New(operation.Options{Project: proj, Files: files.New(fs), Sink: recorder})
	require.NoError(t, err)

	bundle := recipe.SourceBundle{"run.sh": {Contents: []byte("echo"), Executable: true}}
	manifest := recipe.NewManifest(recipe.FileEntry("run.sh", "bin/run.sh"))

	require.NoError(t, op.Install(ctx, manifest, bundle, "/project", false))

	data, err := afero.ReadFile(fs, "/project/bin/run.sh")
	require.NoError(t, err)
	assert.Equal(t, "echo", string(data))
	assert.Equal(t, []string{`Created "bin/run.sh"`}, recorder.Messages())
}

func TestInstall_Errors(t *testing.T) {
	t.Run("missing_source_in_bundle", func(t *testing.T) {
		env := createTestEnv(t, nil)
		manifest := recipe.NewManifest(recipe.FileEntry("missing.txt", "missing.txt"))

		err := env.op.Install(env.ctx, manifest, recipe.SourceBundle{}, env.root, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `resolving missing.txt: source "missing.txt" not found`)
	})

	t.Run("parent_directory_creation_aborts", func(t *testing.T) {
		env := createTestEnv(t, nil)
		env.write(t, "config", "i am a file")

		manifest := recipe.NewManifest(
			recipe.FileEntry("a.yaml", "config/packages/a.yaml"),
			recipe.FileEntry("b.txt", "b.txt"),
		)
		bundle := recipe.SourceBundle{"a.yaml": {Contents: []byte("a")}, "b.txt": {Contents: []byte("b")}}

		err := env.op.Install(env.ctx, manifest, bundle, env.root, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "copying a.yaml: creating parent directories")
		assert.NoFileExists(t, env.path("b.txt"), "later entries must not run")
		assert.Empty(t, env.recorder.Messages())
	})

	t.Run("cancelled_context", func(t *testing.T) {
		env := createTestEnv(t, nil)
		ctx, cancel := context.WithCancel(env.ctx)
		cancel()

		manifest := recipe.NewManifest(recipe.FileEntry("a.txt", "a.txt"))
		err := env.op.Install(ctx, manifest, recipe.SourceBundle{"a.txt": {}}, env.root, false)
		require.ErrorIs(t, err, context.Canceled)
		assert.NoFileExists(t, env.path("a.txt"))
	})
}

func TestInstall_PolicyDeclines(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())

	proj, err := project.New("/project", project.WithWritePolicy(project.WritePolicyFunc(func(path string, force bool) bool {
		return false
	})))
	require.NoError(t, err)

	fm := &mockFileManager{}
	recorder := log.NewRecorder()
	op, err := operation.New(operation.Options{Project: proj, Files: fm, Sink: recorder})
	require.NoError(t, err)

	manifest := recipe.NewManifest(recipe.FileEntry("a.txt", "a.txt"))
	require.NoError(t, op.Install(ctx, manifest, recipe.SourceBundle{"a.txt": {}}, "/project", true))

	fm.AssertNotCalled(t, "MkdirAll", mock.Anything)
	fm.AssertNotCalled(t, "WriteFile", mock.Anything, mock.Anything)
	assert.Empty(t, recorder.Messages())
}

func TestInstall_OrderFollowsManifest(t *testing.T) {
	env := createTestEnv(t, nil)

	bundle := recipe.SourceBundle{
		"z.txt":     {Contents: []byte("z")},
		"a.txt":     {Contents: []byte("a")},
		"dir/m.txt": {Contents: []byte("m")},
	}
	manifest := recipe.NewManifest(
		recipe.FileEntry("z.txt", "z.txt"),
		recipe.DirectoryEntry("dir/", "dir/"),
		recipe.FileEntry("a.txt", "a.txt"),
	)

	require.NoError(t, env.op.Install(env.ctx, manifest, bundle, env.root, false))
	assert.Equal(t, []string{
		`Created "z.txt"`,
		`Created "dir/m.txt"`,
		`Created "a.txt"`,
	}, env.recorder.Messages())
}

func TestInstall_WritesEachTargetOncePerRun(t *testing.T) {
	bundle := recipe.SourceBundle{
		"first.txt":  {Contents: []byte("first")},
		"second.txt": {Contents: []byte("second")},
	}

	t.Run("two_entries_same_target", func(t *testing.T) {
		env := createTestEnv(t, nil)
		manifest := recipe.NewManifest(
			recipe.FileEntry("first.txt", "out.txt"),
			recipe.FileEntry("second.txt", "out.txt"),
		)

		require.NoError(t, env.op.Install(env.ctx, manifest, bundle, env.root, true))

		assert.Equal(t, "first", env.read(t, "out.txt"))
		assert.Equal(t, []string{`Created "out.txt"`}, env.recorder.Messages())
	})

	t.Run("shared_scope_spans_installs", func(t *testing.T) {
		env := createTestEnv(t, nil)
		ctx := operation.WithWriteScope(env.ctx)

		require.NoError(t, env.op.Install(ctx, recipe.NewManifest(recipe.FileEntry("first.txt", "out.txt")), bundle, env.root, true))
		require.NoError(t, env.op.Install(ctx, recipe.NewManifest(recipe.FileEntry("second.txt", "out.txt")), bundle, env.root, true))

		assert.Equal(t, "first", env.read(t, "out.txt"))
		assert.Len(t, env.recorder.Messages(), 1)
	})

	t.Run("declined_write_does_not_claim_the_path", func(t *testing.T) {
		env := createTestEnv(t, nil)
		env.write(t, "out.txt", "mine")
		ctx := operation.WithWriteScope(env.ctx)

		require.NoError(t, env.op.Install(ctx, recipe.NewManifest(recipe.FileEntry("first.txt", "out.txt")), bundle, env.root, false))
		require.NoError(t, env.op.Install(ctx, recipe.NewManifest(recipe.FileEntry("second.txt", "out.txt")), bundle, env.root, true))

		assert.Equal(t, "second", env.read(t, "out.txt"))
	})
}

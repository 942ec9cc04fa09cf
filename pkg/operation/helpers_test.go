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
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/walteh/recipecopy/pkg/files"
	"github.com/walteh/recipecopy/pkg/log"
	"github.com/walteh/recipecopy/pkg/operation"
	"github.com/walteh/recipecopy/pkg/project"
)

// 🧪 testEnv bundles an operator over a real temporary project root
type testEnv struct {
	ctx      context.Context
	root     string
	project  *project.Context
	recorder *log.Recorder
	op       operation.Operator
}

// 🧪 createTestEnv creates a test environment rooted in a temp dir
func createTestEnv(t *testing.T, values map[string]string) *testEnv {
	t.Helper()

	root := t.TempDir()
	proj, err := project.New(root, project.WithValues(values))
	require.NoError(t, err)

	recorder := log.NewRecorder()
	op, err := operation.New(operation.Options{
		Project: proj,
		Files:   files.NewOS(),
		Sink:    recorder,
	})
	require.NoError(t, err)

	return &testEnv{
		ctx:      zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background()),
		root:     proj.Root(),
		project:  proj,
		recorder: recorder,
		op:       op,
	}
}

func (e *testEnv) path(rel string) string {
	return filepath.Join(e.root, filepath.FromSlash(rel))
}

func (e *testEnv) write(t *testing.T, rel, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(e.path(rel)), 0o755))
	require.NoError(t, os.WriteFile(e.path(rel), []byte(contents), 0o644))
}

func (e *testEnv) read(t *testing.T, rel string) string {
	t.Helper()
	data, err := os.ReadFile(e.path(rel))
	require.NoError(t, err)
	return string(data)
}

// 📸 snapshot maps every path below root to its contents ("/" for directories)
func (e *testEnv) snapshot(t *testing.T) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := filepath.WalkDir(e.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(e.root, path)
		if err != nil {
			return err
		}
		if d.IsDir() {
			out[filepath.ToSlash(rel)] = "/"
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	require.NoError(t, err)
	return out
}

// 🎭 mockFileManager is a testify mock of files.FileManager
type mockFileManager struct {
	mock.Mock
}

var _ files.FileManager = (*mockFileManager)(nil)

func (m *mockFileManager) MkdirAll(path string) error {
	return m.Called(path).Error(0)
}

func (m *mockFileManager) WriteFile(path string, content []byte) error {
	return m.Called(path, content).Error(0)
}

func (m *mockFileManager) Exists(path string) bool {
	return m.Called(path).Bool(0)
}

func (m *mockFileManager) IsEmptyDir(path string) bool {
	return m.Called(path).Bool(0)
}

func (m *mockFileManager) AddExecutable(path string) error {
	return m.Called(path).Error(0)
}

func (m *mockFileManager) Remove(path string) error {
	return m.Called(path).Error(0)
}

func (m *mockFileManager) RemoveDirIfEmpty(path string) error {
	return m.Called(path).Error(0)
}

// 🚫 noChmodFs is a filesystem without permission bits
type noChmodFs struct {
	afero.Fs
}

func (noChmodFs) Chmod(name string, mode os.FileMode) error {
	return &os.PathError{Op: "chmod", Path: name, Err: os.ErrPermission}
}

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

// Package files performs the filesystem effects of installing and removing recipe files.
//
// Operations come in two flavours. MkdirAll and WriteFile report failures that must
// abort an install. AddExecutable, Remove and RemoveDirIfEmpty are best-effort: their
// error is informational only and callers are expected to discard it.
package files

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

const (
	// DirMode is requested for created directories; the process umask still applies
	DirMode os.FileMode = 0o777
	// FileMode is requested for created files; existing files keep their mode
	FileMode os.FileMode = 0o666
	// ExecutableBits are the owner, group and other execute bits
	ExecutableBits os.FileMode = 0o111
)

// 💾 FileManager handles all file system operations of an install or uninstall
type FileManager interface {
	// Fatal operations
	MkdirAll(path string) error
	WriteFile(path string, content []byte) error

	// Queries
	Exists(path string) bool
	IsEmptyDir(path string) bool

	// Best-effort operations
	AddExecutable(path string) error
	Remove(path string) error
	RemoveDirIfEmpty(path string) error
}

var _ FileManager = (*Manager)(nil)

// 🔧 Manager implements FileManager on top of an afero filesystem
type Manager struct {
	fs afero.Fs
}

// 🏭 New creates a manager over fs
func New(fs afero.Fs) *Manager {
	return &Manager{fs: fs}
}

// NewOS creates a manager over the host filesystem
func NewOS() *Manager {
	return New(afero.NewOsFs())
}

// Fs returns the underlying filesystem
func (m *Manager) Fs() afero.Fs {
	return m.fs
}

// MkdirAll creates path and every missing parent
func (m *Manager) MkdirAll(path string) error {
	if err := m.fs.MkdirAll(path, DirMode); err != nil {
		return errors.Errorf("creating directory %s: %w", path, err)
	}
	return nil
}

// WriteFile replaces the contents of path, creating it when missing
func (m *Manager) WriteFile(path string, content []byte) error {
	if err := afero.WriteFile(m.fs, path, content, FileMode); err != nil {
		return errors.Errorf("writing file %s: %w", path, err)
	}
	return nil
}

// Exists reports whether anything exists at path
func (m *Manager) Exists(path string) bool {
	_, err := m.fs.Stat(path)
	return err == nil
}

// IsEmptyDir reports whether path is a directory without entries
func (m *Manager) IsEmptyDir(path string) bool {
	empty, err := afero.IsEmpty(m.fs, path)
	if err != nil {
		return false
	}
	isDir, err := afero.IsDir(m.fs, path)
	return err == nil && isDir && empty
}

// AddExecutable ORs the execute bits into the current mode of path
func (m *Manager) AddExecutable(path string) error {
	info, err := m.fs.Stat(path)
	if err != nil {
		return errors.Errorf("reading mode of %s: %w", path, err)
	}
	if err := m.fs.Chmod(path, info.Mode()|ExecutableBits); err != nil {
		return errors.Errorf("changing mode of %s: %w", path, err)
	}
	return nil
}

// Remove deletes the file at path
func (m *Manager) Remove(path string) error {
	if err := m.fs.Remove(path); err != nil {
		return errors.Errorf("removing %s: %w", path, err)
	}
	return nil
}

// RemoveDirIfEmpty deletes path when it is a directory with no entries
func (m *Manager) RemoveDirIfEmpty(path string) error {
	if !m.IsEmptyDir(path) {
		return errors.Errorf("directory %s is not empty", filepath.Clean(path))
	}
	if err := m.fs.Remove(path); err != nil {
		return errors.Errorf("removing directory %s: %w", path, err)
	}
	return nil
}

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
	"fmt"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Separator marks a directory mapping when it ends a source pattern
const Separator = "/"

// 🏷️ EntryKind tells how a manifest entry selects bundle files
type EntryKind int

const (
	// FileKind maps exactly one bundle key to one target path
	FileKind EntryKind = iota
	// DirectoryKind maps every bundle key under a prefix to a target directory
	DirectoryKind
)

// String returns a string representation of EntryKind
func (k EntryKind) String() string {
	switch k {
	case FileKind:
		return "file"
	case DirectoryKind:
		return "directory"
	default:
		return "unknown"
	}
}

// 🔗 Entry is one source-to-target mapping of a manifest
type Entry struct {
	Kind   EntryKind
	Source string // bundle key, or key prefix for directories
	Target string // target template, may contain placeholders
}

// NewEntry classifies source by its trailing separator
func NewEntry(source, target string) Entry {
	if strings.HasSuffix(source, Separator) {
		return DirectoryEntry(source, target)
	}
	return FileEntry(source, target)
}

// FileEntry creates a single-file mapping
func FileEntry(source, target string) Entry {
	return Entry{Kind: FileKind, Source: source, Target: target}
}

// DirectoryEntry creates a directory mapping. A missing trailing separator is added
// so that "templates" never matches "templates-old/x".
func DirectoryEntry(source, target string) Entry {
	if !strings.HasSuffix(source, Separator) {
		source += Separator
	}
	return Entry{Kind: DirectoryKind, Source: source, Target: target}
}

// IsDir reports whether the entry is a directory mapping
func (e Entry) IsDir() bool {
	return e.Kind == DirectoryKind
}

func (e Entry) String() string {
	return fmt.Sprintf("%s %s -> %s", e.Kind, e.Source, e.Target)
}

// 🎯 Match is a bundle file selected by an entry
type Match struct {
	Key    string // full bundle key
	Suffix string // key relative to the entry source; empty for file entries
	Blob   FileBlob
}

// Matches returns the bundle files selected by the entry. A directory entry with no
// matches yields an empty slice. A file entry whose source is missing is an error.
func (e Entry) Matches(files SourceBundle) ([]Match, error) {
	if e.IsDir() {
		keys := files.WithPrefix(e.Source)
		matches := make([]Match, 0, len(keys))
		for _, k := range keys {
			matches = append(matches, Match{
				Key:    k,
				Suffix: strings.TrimPrefix(k, e.Source),
				Blob:   files[k],
			})
		}
		return matches, nil
	}

	blob, ok := files[e.Source]
	if !ok {
		return nil, errors.Errorf("source %q not found in recipe files", e.Source)
	}
	return []Match{{Key: e.Source, Blob: blob}}, nil
}

// 📋 Manifest is an ordered list of entries. Order is observable: it drives log
// output and directory creation order.
type Manifest struct {
	entries []Entry
}

// NewManifest creates a manifest from entries, keeping their order
func NewManifest(entries ...Entry) Manifest {
	return Manifest{entries: append([]Entry(nil), entries...)}
}

// Add appends a classified entry
func (m *Manifest) Add(source, target string) {
	m.entries = append(m.entries, NewEntry(source, target))
}

// Entries returns a copy of the entries in order
func (m Manifest) Entries() []Entry {
	return append([]Entry(nil), m.entries...)
}

// Len returns the number of entries
func (m Manifest) Len() int {
	return len(m.entries)
}

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

package fsys

import (
	"io/fs"
	"path"
	"sync"
	"testing/fstest"
)

var _ FS = (*Memory)(nil)

// 🧠 Memory is an in-memory FS. Paths are slash separated and relative, as in
// io/fs. Directories are implied by the files below them.
type Memory struct {
	mu         sync.RWMutex
	files      fstest.MapFS
	readFails  map[string]error
	writeFails map[string]error
	writes     map[string]int
}

// NewMemory creates a Memory holding the given path -> content pairs
func NewMemory(files map[string]string) *Memory {
	m := &Memory{
		files:      fstest.MapFS{},
		readFails:  map[string]error{},
		writeFails: map[string]error{},
		writes:     map[string]int{},
	}
	for p, content := range files {
		m.files[path.Clean(p)] = &fstest.MapFile{Data: []byte(content), Mode: 0o644}
	}
	return m
}

// FailRead makes every ReadFile of p return err
func (m *Memory) FailRead(p string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readFails[path.Clean(p)] = err
}

// FailWrite makes every WriteFile of p return err
func (m *Memory) FailWrite(p string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeFails[path.Clean(p)] = err
}

// Content returns the current content of p
func (m *Memory) Content(p string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[path.Clean(p)]
	if !ok {
		return "", false
	}
	return string(f.Data), true
}

// Writes returns how many times p was written
func (m *Memory) Writes(p string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes[path.Clean(p)]
}

func (m *Memory) WalkDir(root string, fn fs.WalkDirFunc) error {
	// walk a snapshot so fn may call back into m
	m.mu.RLock()
	snapshot := make(fstest.MapFS, len(m.files))
	for p, f := range m.files {
		snapshot[p] = &fstest.MapFile{Data: f.Data, Mode: f.Mode}
	}
	m.mu.RUnlock()

	return fs.WalkDir(snapshot, path.Clean(root), fn)
}

func (m *Memory) ReadFile(p string) ([]byte, error) {
	p = path.Clean(p)
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err, ok := m.readFails[p]; ok {
		return nil, &fs.PathError{Op: "read", Path: p, Err: err}
	}
	f, ok := m.files[p]
	if !ok || f.Mode.IsDir() {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), f.Data...), nil
}

func (m *Memory) WriteFile(p string, data []byte) error {
	p = path.Clean(p)
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.writeFails[p]; ok {
		return &fs.PathError{Op: "write", Path: p, Err: err}
	}
	f, ok := m.files[p]
	if !ok || f.Mode.IsDir() {
		return &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}
	m.files[p] = &fstest.MapFile{Data: append([]byte(nil), data...), Mode: f.Mode}
	m.writes[p]++
	return nil
}

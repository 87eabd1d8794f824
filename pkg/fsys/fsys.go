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

// Package fsys is the file access used by a replacement run. OS talks to the
// real disk, Memory keeps everything in a map for tests.
package fsys

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 💾 FS is everything the walker and rewriter need from a file system
type FS interface {
	// WalkDir walks the tree rooted at root like filepath.WalkDir
	WalkDir(root string, fn fs.WalkDirFunc) error
	// ReadFile returns the full content of an existing file
	ReadFile(path string) ([]byte, error)
	// WriteFile truncates an existing file and writes data, keeping its mode
	WriteFile(path string, data []byte) error
}

var _ FS = OS{}

// 🖥️ OS implements FS on the host file system
type OS struct{}

// WalkDir follows root when it is a symlink to a directory. Links below the
// root are reported as they are, never followed.
func (OS) WalkDir(root string, fn fs.WalkDirFunc) error {
	if info, err := os.Stat(root); err == nil && info.IsDir() && !strings.HasSuffix(root, string(filepath.Separator)) {
		// a trailing separator makes the walk's Lstat resolve the link
		root += string(filepath.Separator)
	}
	return filepath.WalkDir(root, fn)
}

func (OS) ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Errorf("opening for read: %w", err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Errorf("reading: %w", err)
	}
	return content, nil
}

func (OS) WriteFile(path string, data []byte) (err error) {
	// no O_CREATE: a file that vanished since the read is reported, not recreated
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return errors.Errorf("opening for write: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Errorf("closing: %w", cerr)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return errors.Errorf("writing: %w", err)
	}
	return nil
}

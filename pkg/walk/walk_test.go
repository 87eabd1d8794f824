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

package walk

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/retoken/pkg/fsys"
	"gitlab.com/tozd/go/errors"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func collect(t *testing.T, ctx context.Context, fileSystem fsys.FS, root string) ([]string, []error) {
	t.Helper()
	var paths []string
	var errs []error
	for p, err := range Files(ctx, fileSystem, root) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		paths = append(paths, p)
	}
	return paths, errs
}

func TestFiles(t *testing.T) {
	tests := []struct {
		name      string
		files     map[string]string
		root      string
		wantPaths []string
	}{
		{
			name: "nested_tree",
			files: map[string]string{
				"concepts/a/x.sql":      "",
				"concepts/a/y.txt":      "",
				"concepts/b/c/deep.sql": "",
				"concepts/top.sql":      "",
				"elsewhere/z.sql":       "",
			},
			root:      "concepts",
			wantPaths: []string{"concepts/a/x.sql", "concepts/a/y.txt", "concepts/b/c/deep.sql", "concepts/top.sql"},
		},
		{
			name:      "missing_root",
			files:     map[string]string{"other/x.sql": ""},
			root:      "concepts",
			wantPaths: nil,
		},
		{
			name:      "empty_file_system",
			files:     nil,
			root:      ".",
			wantPaths: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths, errs := collect(t, testContext(t), fsys.NewMemory(tt.files), tt.root)
			assert.Empty(t, errs)
			assert.ElementsMatch(t, tt.wantPaths, paths)
		})
	}
}

func TestFilesRootIsFile(t *testing.T) {
	m := fsys.NewMemory(map[string]string{"concepts.sql": "x"})
	paths, errs := collect(t, testContext(t), m, "concepts.sql")
	assert.Empty(t, paths)
	require.Len(t, errs, 1)

	var rootErr *RootError
	require.True(t, errors.As(errs[0], &rootErr))
	assert.True(t, errors.Is(errs[0], ErrNotDir))
}

func TestFilesOnDisk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "a"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a", "x.sql"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "y.sql"), nil, 0o644))

	paths, errs := collect(t, testContext(t), fsys.OS{}, dir)
	assert.Empty(t, errs)
	assert.ElementsMatch(t, []string{filepath.Join(dir, "a", "x.sql"), filepath.Join(dir, "y.sql")}, paths)

	paths, errs = collect(t, testContext(t), fsys.OS{}, filepath.Join(dir, "missing"))
	assert.Empty(t, errs, "missing root is not an error")
	assert.Empty(t, paths)
}

func TestFilesSymlinkedRoot(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "a"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "a", "x.sql"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file.sql"), nil, 0o644))

	link := filepath.Join(dir, "concepts")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	fileLink := filepath.Join(dir, "file-link")
	require.NoError(t, os.Symlink(filepath.Join(dir, "file.sql"), fileLink))

	paths, errs := collect(t, testContext(t), fsys.OS{}, link)
	assert.Empty(t, errs)
	assert.Equal(t, []string{filepath.Join(link, "a", "x.sql")}, paths)

	paths, errs = collect(t, testContext(t), fsys.OS{}, fileLink)
	assert.Empty(t, paths)
	require.Len(t, errs, 1)
	assert.True(t, errors.Is(errs[0], ErrNotDir), "a link to a file is still not a directory")
}

func TestFilesStopsEarly(t *testing.T) {
	m := fsys.NewMemory(map[string]string{"r/a.sql": "", "r/b.sql": "", "r/c.sql": ""})
	n := 0
	for _, err := range Files(testContext(t), m, "r") {
		require.NoError(t, err)
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

// brokenDirFS reports a read error for one sub-directory
type brokenDirFS struct {
	*fsys.Memory
	broken string
}

func (b brokenDirFS) WalkDir(root string, fn fs.WalkDirFunc) error {
	return b.Memory.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err == nil && p == b.broken {
			if err := fn(p, d, errors.New("permission denied")); err != nil {
				return err
			}
			return fs.SkipDir
		}
		return fn(p, d, err)
	})
}

func TestFilesSubdirError(t *testing.T) {
	m := fsys.NewMemory(map[string]string{
		"r/ok/a.sql":     "",
		"r/locked/b.sql": "",
		"r/z.sql":        "",
	})
	paths, errs := collect(t, testContext(t), brokenDirFS{Memory: m, broken: "r/locked"}, "r")

	assert.ElementsMatch(t, []string{"r/ok/a.sql", "r/z.sql"}, paths, "siblings are still walked")
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "walking r/locked")
	var rootErr *RootError
	assert.False(t, errors.As(errs[0], &rootErr), "sub-directory errors are not root errors")
}

func TestFilesRootUnreadable(t *testing.T) {
	m := fsys.NewMemory(map[string]string{"r/a.sql": ""})
	paths, errs := collect(t, testContext(t), brokenDirFS{Memory: m, broken: "r"}, "r")

	assert.Empty(t, paths)
	require.Len(t, errs, 1)
	var rootErr *RootError
	require.True(t, errors.As(errs[0], &rootErr))
	assert.Equal(t, "r", rootErr.Path)
}

func TestHasExtension(t *testing.T) {
	tests := []struct {
		path string
		ext  string
		want bool
	}{
		{"a/x.sql", ".sql", true},
		{"a/x.SQL", ".sql", false},
		{"a/x.sql.bak", ".sql", false},
		{"a/y.txt", ".sql", false},
		{"a.sql/y.txt", ".sql", false},
		{"a/.sql", ".sql", true},
		{"a/mysql", "sql", true},
		{"a/x.sql", "", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HasExtension(tt.path, tt.ext), "HasExtension(%q, %q)", tt.path, tt.ext)
	}
}

func TestSelector(t *testing.T) {
	ctx := testContext(t)
	s := Selector{
		Root:      "concepts",
		Extension: ".sql",
		Ignore:    []string{"legacy/**", "**/*_draft.sql"},
	}

	tests := []struct {
		path string
		want bool
	}{
		{"concepts/a/x.sql", true},
		{"concepts/a/y.txt", false},
		{"concepts/legacy/old.sql", false},
		{"concepts/legacy/deep/old.sql", false},
		{"concepts/a/new_draft.sql", false},
		{"concepts/top_draft.sql", false},
		{"concepts/notlegacy/x.sql", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.Selected(ctx, tt.path), "Selected(%q)", tt.path)
	}

	assert.False(t, Selector{Root: "concepts"}.Ignored(ctx, "concepts/a.sql"), "no patterns ignores nothing")
}

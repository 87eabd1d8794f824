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

// Package walk finds the files a replacement run should touch.
package walk

import (
	"context"
	"fmt"
	"io/fs"
	"iter"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/retoken/pkg/fsys"
	"gitlab.com/tozd/go/errors"
)

// 🚫 RootError means the root itself could not be walked
type RootError struct {
	Path string
	Err  error
}

func (e *RootError) Error() string {
	return fmt.Sprintf("walking root %s: %v", e.Path, e.Err)
}

func (e *RootError) Unwrap() error {
	return e.Err
}

// ErrNotDir is wrapped in a RootError when the root is a file
var ErrNotDir = errors.Base("not a directory")

// 🚶 Files lazily yields every non-directory path under root.
//
// A root that does not exist yields nothing. A root that cannot be read yields
// a single *RootError and ends the sequence. An unreadable sub-directory yields
// (dir, err) and the walk moves on to its siblings. Symlinked directories are
// not followed.
func Files(ctx context.Context, fileSystem fsys.FS, root string) iter.Seq2[string, error] {
	logger := zerolog.Ctx(ctx)
	cleanRoot := filepath.Clean(root)

	return func(yield func(string, error) bool) {
		done := false
		emit := func(p string, err error) bool {
			if done {
				return false
			}
			done = !yield(p, err)
			return !done
		}

		err := fileSystem.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			isRoot := filepath.Clean(p) == cleanRoot

			if err != nil {
				switch {
				case isRoot && d == nil && errors.Is(err, fs.ErrNotExist):
					logger.Debug().Str("root", root).Msg("root does not exist, nothing to walk")
					return fs.SkipAll
				case isRoot:
					emit(p, &RootError{Path: root, Err: err})
					done = true
					return fs.SkipAll
				}
				if !emit(p, errors.Errorf("walking %s: %w", p, err)) {
					return fs.SkipAll
				}
				return nil
			}

			if d.IsDir() {
				return nil
			}
			if isRoot {
				emit(p, &RootError{Path: root, Err: ErrNotDir})
				done = true
				return fs.SkipAll
			}
			if !emit(p, nil) {
				return fs.SkipAll
			}
			return nil
		})
		if err != nil {
			emit(root, &RootError{Path: root, Err: err})
		}
	}
}

// 🔍 HasExtension reports whether the final element of p ends with ext.
// The match is exact and case sensitive; an empty ext never matches.
func HasExtension(p, ext string) bool {
	if ext == "" {
		return false
	}
	return strings.HasSuffix(filepath.Base(p), ext)
}

// 🎯 Selector decides which walked files are rewritten
type Selector struct {
	Root      string   // Walk root; ignore patterns are relative to it
	Extension string   // Required filename suffix
	Ignore    []string // Doublestar patterns
}

// Ignored reports whether p matches one of the ignore patterns
func (s Selector) Ignored(ctx context.Context, p string) bool {
	if len(s.Ignore) == 0 {
		return false
	}

	rel, err := filepath.Rel(s.Root, p)
	if err != nil {
		rel = p
	}
	rel = filepath.ToSlash(rel)

	logger := zerolog.Ctx(ctx)
	for _, pattern := range s.Ignore {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			logger.Debug().Str("pattern", pattern).Str("path", rel).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			logger.Debug().Str("file", rel).Str("pattern", pattern).Msg("file ignored by pattern")
			return true
		}
	}
	return false
}

// Selected reports whether p should be rewritten
func (s Selector) Selected(ctx context.Context, p string) bool {
	return HasExtension(p, s.Extension) && !s.Ignored(ctx, p)
}

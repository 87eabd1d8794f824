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
	"bytes"
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/retoken/pkg/fsys"
	"github.com/walteh/retoken/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// ✏️ Rewriter reads a file, applies a rule and writes the result back
type Rewriter struct {
	fs       fsys.FS
	replacer text.Replacer
}

// NewRewriter creates a Rewriter. A nil replacer means text.NewSimpleReplacer().
func NewRewriter(fs fsys.FS, replacer text.Replacer) *Rewriter {
	if replacer == nil {
		replacer = text.NewSimpleReplacer()
	}
	return &Rewriter{fs: fs, replacer: replacer}
}

// 📄 Rewrite processes a single file. The file is always written back, even
// when nothing matched. Failures are returned in the result, never panicked.
func (w *Rewriter) Rewrite(ctx context.Context, path string, rule text.Rule) FileResult {
	logger := zerolog.Ctx(ctx)

	content, err := w.fs.ReadFile(path)
	if err != nil {
		return FileResult{Path: path, Err: errors.Errorf("reading file: %w", err)}
	}

	result, err := w.replacer.Replace(ctx, bytes.NewReader(content), rule)
	if err != nil {
		return FileResult{Path: path, Err: errors.Errorf("replacing text: %w", err)}
	}

	if err := w.fs.WriteFile(path, result.Modified); err != nil {
		return FileResult{Path: path, Err: errors.Errorf("writing file: %w", err)}
	}

	logger.Debug().
		Str("file", path).
		Int("replacements", result.Count).
		Bool("modified", result.WasModified).
		Msg("rewrote file")

	return FileResult{
		Path:         path,
		Replacements: result.Count,
		Modified:     result.WasModified,
	}
}

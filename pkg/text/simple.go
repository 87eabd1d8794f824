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

package text

import (
	"bytes"
	"context"
	"io"

	"gitlab.com/tozd/go/errors"
)

var _ Replacer = (*SimpleReplacer)(nil)

// SimpleReplacer implements Replacer with plain substring replacement.
// Matches are found left to right and never overlap; inserted text is not
// scanned again.
type SimpleReplacer struct{}

// NewSimpleReplacer creates a new SimpleReplacer
func NewSimpleReplacer() *SimpleReplacer {
	return &SimpleReplacer{}
}

// Replace implements Replacer.Replace
func (r *SimpleReplacer) Replace(ctx context.Context, content io.Reader, rule Rule) (*Result, error) {
	original, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}
	return r.Apply(original, rule), nil
}

// Apply runs the rule over content already in memory. An empty From leaves
// content unchanged.
func (r *SimpleReplacer) Apply(content []byte, rule Rule) *Result {
	result := &Result{
		Original: content,
		Modified: content,
	}
	if rule.From == "" {
		return result
	}

	from := []byte(rule.From)
	count := bytes.Count(content, from)
	if count == 0 {
		return result
	}

	result.Count = count
	result.Modified = bytes.ReplaceAll(content, from, []byte(rule.To))
	result.WasModified = !bytes.Equal(result.Modified, content)
	return result
}

// Validate implements Replacer.Validate
func (r *SimpleReplacer) Validate(rule Rule) error {
	if rule.From == "" {
		return errors.Errorf("from is required")
	}
	return nil
}

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
	"context"
	"io"
)

// Rule defines a single literal replacement
type Rule struct {
	// From is the literal text to find
	From string

	// To is the replacement text
	To string
}

// Result contains the outcome of applying a Rule
type Result struct {
	// WasModified indicates if any replacements were made
	WasModified bool

	// Count is the number of occurrences replaced
	Count int

	// Original is the content before replacement
	Original []byte

	// Modified is the content after replacement
	Modified []byte
}

// Replacer defines the interface for text replacement
type Replacer interface {
	// Replace reads all of content and applies the rule to it
	Replace(ctx context.Context, content io.Reader, rule Rule) (*Result, error)

	// Validate checks that a rule can be applied
	Validate(rule Rule) error
}

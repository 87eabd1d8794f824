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
	"sort"

	"github.com/walteh/retoken/pkg/log"
)

// 📄 FileResult is the outcome of processing one file
type FileResult struct {
	Path         string // File path as produced by the walk
	Replacements int    // Occurrences replaced
	Modified     bool   // Content differs from what was read
	Err          error  // Non-nil when the file could not be processed
}

// OK reports whether the file was read and written back
func (r FileResult) OK() bool {
	return r.Err == nil
}

// 📊 Report collects every FileResult of a run
type Report struct {
	Results []FileResult
}

func (r *Report) add(res FileResult) {
	r.Results = append(r.Results, res)
}

func (r *Report) sort() {
	sort.SliceStable(r.Results, func(i, j int) bool {
		return r.Results[i].Path < r.Results[j].Path
	})
}

// Succeeded returns the number of files rewritten without error
func (r *Report) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() {
			n++
		}
	}
	return n
}

// Failed returns the number of files that could not be processed
func (r *Report) Failed() int {
	return len(r.Results) - r.Succeeded()
}

// Unchanged returns the number of files rewritten with identical content
func (r *Report) Unchanged() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() && !res.Modified {
			n++
		}
	}
	return n
}

// Replacements returns the total number of occurrences replaced
func (r *Report) Replacements() int {
	n := 0
	for _, res := range r.Results {
		n += res.Replacements
	}
	return n
}

// Failures returns the failed results in path order
func (r *Report) Failures() []FileResult {
	var out []FileResult
	for _, res := range r.Results {
		if !res.OK() {
			out = append(out, res)
		}
	}
	return out
}

// Summary converts the report for display
func (r *Report) Summary() log.Summary {
	s := log.Summary{
		Succeeded:    r.Succeeded(),
		Failed:       r.Failed(),
		Unchanged:    r.Unchanged(),
		Replacements: r.Replacements(),
	}
	for _, f := range r.Failures() {
		s.Failures = append(s.Failures, log.FileOperation{Path: f.Path, Err: f.Err})
	}
	return s
}

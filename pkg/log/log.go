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

package log

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent = 4  // spaces to indent file entries
	nameWidth  = 35 // Base width for filename
)

// CompletedMessage is printed once at the end of every run
const CompletedMessage = "Search and replace operation completed."

// 🎯 FileOperation is one rewritten (or failed) file
type FileOperation struct {
	Path         string // File path
	From         string // Search token
	To           string // Replacement token
	Replacements int    // Number of occurrences replaced
	Err          error  // Set when the file could not be processed
}

// 📊 Summary is the tally printed after all files were processed
type Summary struct {
	Succeeded    int
	Failed       int
	Unchanged    int // Succeeded files that had no occurrence
	Replacements int
	Failures     []FileOperation
}

// 🎯 Logger writes operator notices to a console and mirrors them to zerolog
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}

// 📝 formatFileOperation formats a file operation for display
func (l *Logger) formatFileOperation(op FileOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	var status string
	switch {
	case op.Err != nil:
		symbol = '✗'
		symbolColor = color.FgRed
		status = color.New(color.FgRed).Sprintf("error: %v", op.Err)
	case op.Replacements > 0:
		symbol = '✓'
		symbolColor = color.FgGreen
		status = fmt.Sprintf("replaced '%s' with '%s' (%s)", op.From, op.To, plural(op.Replacements, "occurrence"))
	default:
		symbol = '•'
		symbolColor = color.FgCyan
		status = color.New(color.Faint).Sprintf("no occurrences of '%s' to replace with '%s'", op.From, op.To)
	}

	return fmt.Sprintf("%s%s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Path),
		status)
}

// 📝 LogFileOperation prints one line for a processed file
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.formatFileOperation(op))

	if op.Err != nil {
		l.zlog.Error().
			Err(op.Err).
			Str("file", op.Path).
			Msg("error processing file")
		return
	}

	l.zlog.Info().
		Str("file", op.Path).
		Str("from", op.From).
		Str("to", op.To).
		Int("replacements", op.Replacements).
		Msg("file rewritten")
}

// 📝 LogSummary prints the tally table and every failure. Nothing is printed
// when no file was processed.
func (l *Logger) LogSummary(ctx context.Context, s Summary) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.zlog.Info().
		Int("succeeded", s.Succeeded).
		Int("failed", s.Failed).
		Int("unchanged", s.Unchanged).
		Int("replacements", s.Replacements).
		Msg("run summary")

	if s.Succeeded+s.Failed == 0 {
		return
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"files", "rewritten", "unchanged", "failed", "replacements"},
		{
			strconv.Itoa(s.Succeeded + s.Failed),
			strconv.Itoa(s.Succeeded - s.Unchanged),
			strconv.Itoa(s.Unchanged),
			strconv.Itoa(s.Failed),
			strconv.Itoa(s.Replacements),
		},
	}).Srender()
	if err != nil {
		l.zlog.Debug().Err(err).Msg("rendering summary table")
	} else {
		fmt.Fprintf(l.console, "\n%s\n", table)
	}

	if len(s.Failures) == 0 {
		return
	}
	fmt.Fprintf(l.console, "\n%s\n", color.New(color.FgRed, color.Bold).Sprintf("%s failed:", plural(len(s.Failures), "file")))
	for _, f := range s.Failures {
		fmt.Fprintf(l.console, "%*s%s: %v\n", fileIndent, "", f.Path, f.Err)
	}
}

// 📝 Completed prints the single completion notice
func (l *Logger) Completed() {
	l.Success(CompletedMessage)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

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
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"
	"github.com/walteh/retoken/pkg/config"
	"github.com/walteh/retoken/pkg/fsys"
	"github.com/walteh/retoken/pkg/log"
	"github.com/walteh/retoken/pkg/text"
	"github.com/walteh/retoken/pkg/walk"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🔧 Options contains everything a Runner needs
type Options struct {
	// Config is validated by New; it is copied, not retained
	Config *config.Config
	// FS is the file system to walk and rewrite
	FS fsys.FS
	// Logger receives operator notices; nil discards them
	Logger *log.Logger
	// Replacer defaults to text.NewSimpleReplacer()
	Replacer text.Replacer
}

// 🏃 Runner walks a tree and rewrites every selected file
type Runner struct {
	config   *config.Config
	fs       fsys.FS
	logger   *log.Logger
	rewriter *Rewriter
}

// 🏭 New validates the options and creates a Runner. Nothing on disk is
// touched when it returns an error.
func New(opts Options) (*Runner, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.FS == nil {
		return nil, errors.Errorf("file system is required")
	}

	cfg := opts.Config.Clone()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	rewriter := NewRewriter(opts.FS, opts.Replacer)
	if err := rewriter.replacer.Validate(text.Rule{From: cfg.Search, To: cfg.Replace}); err != nil {
		return nil, errors.Errorf("validating rule: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, zerolog.Nop())
	}

	return &Runner{
		config:   cfg,
		fs:       opts.FS,
		logger:   logger,
		rewriter: rewriter,
	}, nil
}

// Config returns the validated config the runner uses
func (r *Runner) Config() *config.Config {
	return r.config.Clone()
}

// 🏃 Run walks the root, rewrites each selected file and reports every
// outcome. Per-file failures end up in the Report and do not stop the run.
// An error is returned only when the root cannot be walked or ctx is done; the
// partial Report is returned alongside it.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	logger := zerolog.Ctx(ctx)
	cfg := r.config

	logger.Debug().
		Str("root", cfg.Root).
		Str("extension", cfg.Extension).
		Str("search", cfg.Search).
		Str("replace", cfg.Replace).
		Int("jobs", cfg.Jobs).
		Msg("starting replacement run")

	selector := walk.Selector{Root: cfg.Root, Extension: cfg.Extension, Ignore: cfg.Ignore}
	rule := text.Rule{From: cfg.Search, To: cfg.Replace}

	report := &Report{}
	var mu sync.Mutex
	record := func(res FileResult) {
		mu.Lock()
		report.add(res)
		mu.Unlock()

		r.logger.LogFileOperation(ctx, log.FileOperation{
			Path:         res.Path,
			From:         rule.From,
			To:           rule.To,
			Replacements: res.Replacements,
			Err:          res.Err,
		})
	}

	var g errgroup.Group
	g.SetLimit(cfg.Jobs)

	var fatal error
	for path, err := range walk.Files(ctx, r.fs, cfg.Root) {
		if err != nil {
			var rootErr *walk.RootError
			if errors.As(err, &rootErr) {
				fatal = err
				break
			}
			record(FileResult{Path: path, Err: err})
			continue
		}

		if !selector.Selected(ctx, path) {
			continue
		}

		if err := ctx.Err(); err != nil {
			fatal = errors.Errorf("run cancelled: %w", err)
			break
		}

		g.Go(func() error {
			record(r.rewriter.Rewrite(ctx, path, rule))
			return nil
		})
	}

	// goroutines never return errors; failures live in the report
	_ = g.Wait()
	report.sort()

	if fatal != nil {
		return report, fatal
	}

	r.logger.LogSummary(ctx, report.Summary())
	r.logger.Completed()

	logger.Debug().
		Int("succeeded", report.Succeeded()).
		Int("failed", report.Failed()).
		Msg("replacement run complete")

	return report, nil
}

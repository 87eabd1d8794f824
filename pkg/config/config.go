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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📋 Defaults for a run with no config file, env or flags
const (
	DefaultRoot      = "concepts"
	DefaultExtension = ".sql"
	DefaultSearch    = "mymimiciv"
	DefaultJobs      = 1
)

var (
	// ErrEmptyToken is returned when the search or replacement token is empty
	ErrEmptyToken = errors.Base("token is empty")

	// ErrPlaceholderToken is returned when the replacement token still looks like an unfilled placeholder
	ErrPlaceholderToken = errors.Base("token looks like an unfilled placeholder")
)

// placeholderPatterns match values that were meant to be edited before running
var placeholderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\{.*\}$`),
	regexp.MustCompile(`^\$\{.*\}$`),
	regexp.MustCompile(`^<.*>$`),
	regexp.MustCompile(`(?i)^your[_-]`),
	regexp.MustCompile(`(?i)^(todo|fixme|changeme|change[_-]me|xxx+)$`),
}

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse decodes data on top of the values already in cfg
	Parse(ctx context.Context, data []byte, cfg *Config) error

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config is everything a replacement run needs
type Config struct {
	Root      string   `json:"root,omitempty" yaml:"root,omitempty" hcl:"root,optional"`                // Directory to walk
	Extension string   `json:"extension,omitempty" yaml:"extension,omitempty" hcl:"extension,optional"` // Filename suffix of eligible files
	Search    string   `json:"search,omitempty" yaml:"search,omitempty" hcl:"search,optional"`          // Literal token to find
	Replace   string   `json:"replace,omitempty" yaml:"replace,omitempty" hcl:"replace,optional"`       // Literal value to substitute
	Ignore    []string `json:"ignore,omitempty" yaml:"ignore,omitempty" hcl:"ignore,optional"`          // Doublestar globs relative to Root
	Jobs      int      `json:"jobs,omitempty" yaml:"jobs,omitempty" hcl:"jobs,optional"`                // Files rewritten in parallel
}

// 🏭 Default returns a config carrying the built-in defaults. Replace is left
// empty on purpose: it has to be supplied by the operator.
func Default() *Config {
	return &Config{
		Root:      DefaultRoot,
		Extension: DefaultExtension,
		Search:    DefaultSearch,
		Jobs:      DefaultJobs,
	}
}

// 🎯 Load reads the config file at path and decodes it on top of base.
// base is not modified. A nil base means Default().
func Load(ctx context.Context, path string, base *Config) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	if base == nil {
		base = Default()
	}
	cfg := base.Clone()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	if err := p.Parse(ctx, data, cfg); err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Clone returns a deep copy
func (cfg *Config) Clone() *Config {
	out := *cfg
	if cfg.Ignore != nil {
		out.Ignore = append([]string(nil), cfg.Ignore...)
	}
	return &out
}

// 🔍 Validate checks the config and normalizes it in place. It must pass
// before any file is touched.
func (cfg *Config) Validate() error {
	if strings.TrimSpace(cfg.Root) == "" {
		return errors.Errorf("root is required")
	}
	if cfg.Extension == "" {
		return errors.Errorf("extension is required")
	}
	if cfg.Search == "" {
		return errors.Errorf("search: %w", ErrEmptyToken)
	}
	if cfg.Replace == "" {
		return errors.Errorf("replace: %w", ErrEmptyToken)
	}
	if IsPlaceholder(cfg.Replace) {
		return errors.Errorf("replace %q: %w", cfg.Replace, ErrPlaceholderToken)
	}
	if cfg.Search == cfg.Replace {
		return errors.Errorf("search and replace are identical: %q", cfg.Search)
	}
	if cfg.Jobs < 0 {
		return errors.Errorf("jobs must not be negative, got %d", cfg.Jobs)
	}
	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("ignore[%d]: invalid pattern %q", i, pattern)
		}
	}

	cfg.Root = filepath.Clean(cfg.Root)
	if cfg.Jobs == 0 {
		cfg.Jobs = DefaultJobs
	}

	return nil
}

// IsPlaceholder reports whether a value looks like a template slot that was
// never filled in, e.g. {your_project_name} or <PROJECT>.
func IsPlaceholder(value string) bool {
	v := strings.TrimSpace(value)
	for _, re := range placeholderPatterns {
		if re.MatchString(v) {
			return true
		}
	}
	return false
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s/**/*%s: %q -> %q", cfg.Root, cfg.Extension, cfg.Search, cfg.Replace)
}

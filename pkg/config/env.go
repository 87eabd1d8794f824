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
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🌱 Environment variables that override config file values
const (
	EnvRoot      = "RETOKEN_ROOT"
	EnvExtension = "RETOKEN_EXTENSION"
	EnvSearch    = "RETOKEN_SEARCH"
	EnvReplace   = "RETOKEN_REPLACE"
	EnvIgnore    = "RETOKEN_IGNORE" // comma separated
	EnvJobs      = "RETOKEN_JOBS"
)

// LookupFunc matches os.LookupEnv
type LookupFunc func(key string) (string, bool)

// 📂 LoadEnvFile loads a dotenv file into the process environment. A missing
// file is not an error. Variables already set are not overwritten.
func LoadEnvFile(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no env file")
			return nil
		}
		return errors.Errorf("checking env file: %w", err)
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Errorf("loading env file %s: %w", path, err)
	}
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("loaded env file")
	return nil
}

// 🔄 ApplyEnv overlays RETOKEN_* variables on cfg
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(EnvRoot); ok && v != "" {
		cfg.Root = v
	}
	if v, ok := lookup(EnvExtension); ok && v != "" {
		cfg.Extension = v
	}
	if v, ok := lookup(EnvSearch); ok && v != "" {
		cfg.Search = v
	}
	if v, ok := lookup(EnvReplace); ok && v != "" {
		cfg.Replace = v
	}
	if v, ok := lookup(EnvIgnore); ok && v != "" {
		cfg.Ignore = nil
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.Ignore = append(cfg.Ignore, p)
			}
		}
	}
	if v, ok := lookup(EnvJobs); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Errorf("%s: %w", EnvJobs, err)
		}
		cfg.Jobs = n
	}
	return nil
}

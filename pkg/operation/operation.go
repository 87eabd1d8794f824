package operation

import (
	"context"

	"gitlab.com/tozd/go/errors"
)

// 🎯 Execute builds a Runner from opts and runs it once
func Execute(ctx context.Context, opts Options) (*Report, error) {
	runner, err := New(opts)
	if err != nil {
		return nil, errors.Errorf("creating runner: %w", err)
	}
	return runner.Run(ctx)
}

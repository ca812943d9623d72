package registry

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/arloliu/lut/errs"
	"github.com/arloliu/lut/internal/options"
)

// Option configures a Registry.
type Option = options.Option[*Registry]

// WithMaxDims sets the largest dimension count the registry accepts.
//
// The default is DefaultMaxDims. Values below 1 are rejected with
// ErrDimensionUnsupported.
func WithMaxDims(n int) Option {
	return options.New(func(r *Registry) error {
		if n < 1 {
			return fmt.Errorf("%w: max dims must be at least 1, got %d", errs.ErrDimensionUnsupported, n)
		}
		r.maxDims = n

		return nil
	})
}

// WithLogger sets the logger used for debug events such as table replacement.
// A nil logger keeps the default no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return options.NoError(func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	})
}

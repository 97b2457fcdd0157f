package recdex

import "go.uber.org/zap"

// Option configures a Catalog.
type Option func(*catalogConfig)

type catalogConfig struct {
	logger *zap.Logger
}

// WithLogger sets the logger used by the catalog and its users. Default: no-op.
func WithLogger(l *zap.Logger) Option {
	return func(c *catalogConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

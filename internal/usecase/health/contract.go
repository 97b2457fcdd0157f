package health

import (
	"context"

	"github.com/kailas-cloud/recdex/internal/usecase/users"
)

// StatsReader reports the size of the shared catalog and user registry.
type StatsReader interface {
	Stats(ctx context.Context) users.Stats
}

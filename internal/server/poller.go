package server

import (
	"context"

	"github.com/preston-bernstein/mlb-props-service/internal/poller"
)

// Poller is the refresh loop as seen by the server.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
}

package server

import (
	"context"

	"github.com/preston-bernstein/pyramid-service/internal/poller"
)

// Poller defines the library poller behavior the server needs.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
}

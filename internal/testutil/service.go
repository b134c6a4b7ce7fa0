package testutil

import (
	"fmt"
	"sync/atomic"

	"github.com/preston-bernstein/pyramid-service/internal/app/pyramids"
	"github.com/preston-bernstein/pyramid-service/internal/generator"
	"github.com/preston-bernstein/pyramid-service/internal/store"
)

// NewPyramidService builds a service backed by a memory store with a fixed clock,
// a constant seed and sequential ids (p-1, p-2, ...).
func NewPyramidService(opts ...pyramids.Option) (*pyramids.Service, *store.MemoryStore) {
	ms := store.NewMemoryStore()
	var next atomic.Int64
	base := []pyramids.Option{
		pyramids.WithStore(ms),
		pyramids.WithSeedSource(func() int64 { return 4242 }),
		pyramids.WithIDSource(func() string { return fmt.Sprintf("p-%d", next.Add(1)) }),
	}
	gen := generator.New(nil, generator.WithNow(NowAt(FixedTime)))
	return pyramids.NewService(gen, append(base, opts...)...), ms
}

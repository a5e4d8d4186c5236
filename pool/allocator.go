// Package pool provides arena style allocators standing in for the host
// memory pool (ngx_pool_t). Memory handed out by a pool is never freed one
// piece at a time, it lives until the pool is reset or destroyed.
package pool

import (
	"github.com/pkg/errors"
)

var (
	// ErrPoolDestroyed is returned by Alloc once the pool has been destroyed or closed
	ErrPoolDestroyed = errors.New("pool: destroyed")
	// ErrPoolFull is returned when an allocation would exceed the configured maximum size
	ErrPoolFull = errors.New("pool: maximum size limit reached")
	// ErrInvalidSize is returned for negative allocation sizes
	ErrInvalidSize = errors.New("pool: invalid allocation size")
)

// Allocator is the single capability a foreign string needs from a pool:
// hand out size bytes that stay valid until the pool goes away.
type Allocator interface {
	Alloc(size int) ([]byte, error)
}

// AllocatorFunc adapts an ordinary function to the Allocator interface.
type AllocatorFunc func(size int) ([]byte, error)

// Alloc calls f(size).
func (f AllocatorFunc) Alloc(size int) ([]byte, error) {
	return f(size)
}

// Heap is an Allocator backed by the Go heap. Every call returns fresh memory
// owned by the garbage collector.
var Heap Allocator = AllocatorFunc(func(size int) ([]byte, error) {
	if size < 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "heap alloc %d", size)
	}
	return make([]byte, size), nil
})

// Package framechannel provides the single-slot frame hand-off between the
// capture context and the display context.
//
// The channel is latest-wins, not a queue: a burst of publishes between two
// consumer polls overwrites the unconsumed frame. Memory stays bounded at
// one slot and the consumer never drains a backlog; intermediate frames are
// dropped.
package framechannel

import (
	"sync"

	"github.com/user/camview/pkg/pipeline"
)

// Channel is a mutex-guarded single-slot hand-off carrying the latest
// semi-planar frame. One producer and one consumer may use it concurrently;
// the lock is held only for the duration of a buffer copy, never across
// processing or GPU work.
type Channel struct {
	mu           sync.Mutex
	slot         []byte
	size         int
	hasFresh     bool
	everReceived bool

	published   uint64
	overwritten uint64
	dropped     uint64
}

// New creates a channel with a fixed capacity for width x height semi-planar
// frames. Capacity never changes after construction.
func New(width, height int) (*Channel, error) {
	if err := pipeline.ValidateDimensions(width, height); err != nil {
		return nil, err
	}
	n := pipeline.SemiPlanarSize(width, height)
	return &Channel{
		slot: make([]byte, n),
		size: n,
	}, nil
}

// Capacity returns the fixed slot size in bytes.
func (c *Channel) Capacity() int {
	return c.size
}

// Publish copies data into the slot and marks it fresh. Frames larger than
// the slot are dropped silently; capacity is fixed at initialization and a
// mismatch is a producer bug, not a resize trigger. Publish never blocks
// waiting for the consumer.
func (c *Channel) Publish(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(data) > c.size {
		c.dropped++
		return
	}
	if c.hasFresh {
		c.overwritten++
	}
	copy(c.slot, data)
	c.hasFresh = true
	c.everReceived = true
	c.published++
}

// ConsumeLatest copies the slot into dst and clears the freshness flag,
// returning true if a fresh frame was available. dst must be at least
// Capacity bytes. The poll returns immediately either way so the caller
// keeps a steady draw cadence.
func (c *Channel) ConsumeLatest(dst []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.hasFresh || len(dst) < c.size {
		return false
	}
	copy(dst, c.slot[:c.size])
	c.hasFresh = false
	return true
}

// EverReceived reports whether any frame has ever been published. The flag
// is monotonic: once true it never resets.
func (c *Channel) EverReceived() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.everReceived
}

// Counters returns the number of frames published, overwritten before
// consumption, and dropped for exceeding capacity.
func (c *Channel) Counters() (published, overwritten, dropped uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.published, c.overwritten, c.dropped
}

package core

import "sync/atomic"

// CancelToken is an atomic cancellation flag: the worker pool owns
// it, the sampler only reads it between batches.
type CancelToken struct {
	flag atomic.Bool
}

// NewCancelToken returns a fresh, unset token.
func NewCancelToken() *CancelToken { return &CancelToken{} }

// Cancel flips the token. Idempotent.
func (c *CancelToken) Cancel() { c.flag.Store(true) }

// Cancelled reports whether Cancel has been called.
func (c *CancelToken) Cancelled() bool { return c.flag.Load() }

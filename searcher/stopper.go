package searcher

import (
	"context"
	"sync/atomic"
)

// Stopper is the cancellation handle shared between a running search and whoever
// may want to interrupt it. All methods are safe for concurrent use.
type Stopper struct {
	stop atomic.Bool
	ctx  atomic.Pointer[context.Context]
}

func NewStopper() *Stopper {
	return &Stopper{}
}

// SetContext makes the stopper also report stopped once ctx is done.
// A nil ctx detaches the previous one.
func (s *Stopper) SetContext(ctx context.Context) {
	if ctx == nil {
		s.ctx.Store(nil)
		return
	}
	s.ctx.Store(&ctx)
}

func (s *Stopper) Stop() {
	s.stop.Store(true)
}

// Reset clears the flag. It does not detach the context.
func (s *Stopper) Reset() {
	s.stop.Store(false)
}

func (s *Stopper) Stopped() bool {
	if s.stop.Load() {
		return true
	}
	ctx := s.ctx.Load()
	if ctx == nil {
		return false
	}
	select {
	case <-(*ctx).Done():
		s.stop.Store(true)
		return true
	default:
		return false
	}
}

package skydrift

import "time"

// FrameFunc renders one frame. now is the host's monotonic frame timestamp.
type FrameFunc func(now time.Duration)

// FrameHandle identifies a pending frame request. The zero handle means no
// request.
type FrameHandle uint64

// Scheduler delivers frame callbacks in step with the display refresh, in the
// manner of a browser's requestAnimationFrame. Each request fires at most
// once; callers that want a continuous loop request again from inside the
// callback.
type Scheduler interface {
	RequestFrame(fn FrameFunc) FrameHandle
	CancelFrame(h FrameHandle)
}

// RefreshScheduler is a Scheduler pumped by the host once per display
// refresh. It holds at most one pending callback; a new request replaces the
// previous one.
type RefreshScheduler struct {
	pending FrameFunc
	handle  FrameHandle
	last    FrameHandle
}

// NewRefreshScheduler creates an idle scheduler.
func NewRefreshScheduler() *RefreshScheduler {
	return &RefreshScheduler{}
}

// RequestFrame implements Scheduler.
func (s *RefreshScheduler) RequestFrame(fn FrameFunc) FrameHandle {
	s.last++
	s.pending = fn
	s.handle = s.last
	return s.handle
}

// CancelFrame implements Scheduler. Cancelling a stale handle is a no-op.
func (s *RefreshScheduler) CancelFrame(h FrameHandle) {
	if h == 0 || h != s.handle {
		return
	}
	s.pending = nil
	s.handle = 0
}

// Pending reports whether a callback is waiting for the next refresh.
func (s *RefreshScheduler) Pending() bool {
	return s.pending != nil
}

// Refresh runs the pending callback, if any, and reports whether one ran.
// The callback is cleared before it runs so it can request the next frame.
func (s *RefreshScheduler) Refresh(now time.Duration) bool {
	fn := s.pending
	if fn == nil {
		return false
	}
	s.pending = nil
	s.handle = 0
	fn(now)
	return true
}

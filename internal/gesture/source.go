package gesture

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNoFrame is returned by PushSource.Frame when no recent frame is buffered.
var ErrNoFrame = errors.New("no recent camera frame")

// DefaultFrameTTL is how long a pushed frame stays classifiable.
const DefaultFrameTTL = time.Second

// FrameBuffer accepts pushed frames and serves them as a FrameSource.
type FrameBuffer interface {
	FrameSource
	Push(Frame)
}

// PushSource is a FrameSource fed over the wire: the extension captures
// webcam frames in the browser and pushes them here, and the polling loop
// pulls the most recent one. Stale frames are discarded, not classified.
type PushSource struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	frame    Frame
	pushedAt time.Time
}

// PushSourceOption configures a PushSource.
type PushSourceOption func(*PushSource)

// WithFrameTTL overrides how long a pushed frame stays classifiable.
func WithFrameTTL(ttl time.Duration) PushSourceOption {
	return func(s *PushSource) { s.ttl = ttl }
}

// NewPushSource creates an empty push-fed frame source.
func NewPushSource(opts ...PushSourceOption) *PushSource {
	s := &PushSource{
		ttl: DefaultFrameTTL,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ FrameBuffer = (*PushSource)(nil)

// Push replaces the buffered frame. Empty pushes are ignored.
func (s *PushSource) Push(frame Frame) {
	if len(frame) == 0 {
		return
	}
	s.mu.Lock()
	s.frame = frame
	s.pushedAt = s.now()
	s.mu.Unlock()
}

// Frame returns the most recently pushed frame, or ErrNoFrame when nothing
// fresh is buffered.
func (s *PushSource) Frame(ctx context.Context) (Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frame == nil || s.now().Sub(s.pushedAt) > s.ttl {
		return nil, ErrNoFrame
	}
	return s.frame, nil
}

// Close drops the buffered frame. The source itself survives teardown and is
// reused once the extension streams frames for the next session.
func (s *PushSource) Close() error {
	s.mu.Lock()
	s.frame = nil
	s.mu.Unlock()
	return nil
}

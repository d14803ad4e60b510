package capture

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// LoopbackDevice is an in-process Device implementation. It records whatever
// chunks are fed to it, which makes it the device of choice wherever the
// actual hardware lives on the far side of a transport (the HTTP layer feeds
// client-uploaded chunks into it) and in tests, where it doubles as a
// controllable fake.
type LoopbackDevice struct {
	mu      sync.Mutex
	openErr error
	now     func() time.Time
}

// NewLoopbackDevice creates a LoopbackDevice that acquires successfully.
func NewLoopbackDevice() *LoopbackDevice {
	return &LoopbackDevice{now: time.Now}
}

// SetOpenError makes subsequent Open calls fail with the given error,
// simulating permission denial or missing hardware. Passing nil restores
// normal acquisition.
func (d *LoopbackDevice) SetOpenError(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.openErr = err
}

// SetClock overrides the time source used for elapsed-time tracking.
// Intended for tests.
func (d *LoopbackDevice) SetClock(now func() time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.now = now
}

// Open implements Device. It honors context cancellation and maps any
// configured failure to ErrUnavailable.
func (d *LoopbackDevice) Open(ctx context.Context) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	d.mu.Lock()
	openErr := d.openErr
	now := d.now
	d.mu.Unlock()

	if openErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, openErr)
	}

	return &loopbackStream{active: true, now: now}, nil
}

// loopbackStream is the Stream produced by LoopbackDevice.
type loopbackStream struct {
	mu     sync.Mutex
	active bool
	rec    *loopbackRecorder
	now    func() time.Time
}

var _ Stream = (*loopbackStream)(nil)

func (s *loopbackStream) StartRecording() (Recorder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return nil, fmt.Errorf("%w: stream released", ErrUnavailable)
	}
	if s.rec != nil && !s.rec.stopped() {
		return nil, ErrRecordingActive
	}

	s.rec = &loopbackRecorder{startedAt: s.now(), now: s.now}
	return s.rec, nil
}

func (s *loopbackStream) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Idempotent: releasing a released stream is a no-op.
	if !s.active {
		return
	}

	s.active = false
	if s.rec != nil {
		s.rec.discard()
		s.rec = nil
	}
}

func (s *loopbackStream) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// loopbackRecorder accumulates chunks in append order.
type loopbackRecorder struct {
	mu        sync.Mutex
	chunks    [][]byte
	done      bool
	startedAt time.Time
	stoppedAt time.Time
	now       func() time.Time
}

var _ Recorder = (*loopbackRecorder)(nil)

func (r *loopbackRecorder) Append(chunk []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.done {
		return ErrRecordingStopped
	}
	if len(chunk) == 0 {
		return nil
	}

	// Copy so callers may reuse their buffer.
	c := make([]byte, len(chunk))
	copy(c, chunk)
	r.chunks = append(r.chunks, c)
	return nil
}

func (r *loopbackRecorder) Stop() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.done {
		r.done = true
		r.stoppedAt = r.now()
	}

	if len(r.chunks) == 0 {
		return nil, ErrEmptyCapture
	}

	var size int
	for _, c := range r.chunks {
		size += len(c)
	}
	out := make([]byte, 0, size)
	for _, c := range r.chunks {
		out = append(out, c...)
	}
	return out, nil
}

func (r *loopbackRecorder) Elapsed() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.done {
		return r.stoppedAt.Sub(r.startedAt)
	}
	return r.now().Sub(r.startedAt)
}

// discard finalizes the recording without producing output. Called on
// stream release so a torn-down recording cannot keep accepting chunks.
func (r *loopbackRecorder) discard() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.done {
		r.done = true
		r.stoppedAt = r.now()
	}
	r.chunks = nil
}

func (r *loopbackRecorder) stopped() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

// Package capture models the audio-video recording subsystem and its
// hardware lifecycle: acquire a stream, record an ordered sequence of media
// chunks, finalize, and release. The engine depends only on this
// three-operation contract, never on a device-specific API, so real hardware
// drivers and test fakes are interchangeable behind the Device interface.
//
// Invariants the contract guarantees:
//   - at most one recording is in flight per stream
//   - Release is idempotent and stops all underlying tracks on every path
//   - the hardware-in-use indicator (Active) is true only between a
//     successful Open and Release
package capture

import (
	"context"
	"errors"
	"time"
)

// Capture errors. All hardware failure modes (permission denied, device
// unavailable, device disconnected mid-recording) collapse into
// ErrUnavailable: the controller treats every one of them as "fall back to
// text", never as fatal.
var (
	// ErrUnavailable is returned when the capture hardware cannot be
	// acquired or has gone away.
	ErrUnavailable = errors.New("capture device unavailable")

	// ErrEmptyCapture is returned by Stop when zero chunks were recorded.
	// An artifact with empty media is never produced; the caller treats the
	// response as text-only instead.
	ErrEmptyCapture = errors.New("no media captured")

	// ErrRecordingActive is returned when a recording is started while one
	// is already in flight on the same stream.
	ErrRecordingActive = errors.New("recording already active")

	// ErrRecordingStopped is returned when chunks are appended to a
	// recording that has already been finalized or released.
	ErrRecordingStopped = errors.New("recording already stopped")
)

// Device acquires audio-video hardware resources.
type Device interface {
	// Open requests an audio+video stream from the hardware. Acquisition is
	// a suspension point: it honors ctx cancellation. Every failure mode
	// maps to an error wrapping ErrUnavailable.
	Open(ctx context.Context) (Stream, error)
}

// Stream is an open media stream holding live hardware tracks.
type Stream interface {
	// StartRecording begins recording on the stream and returns the
	// recorder accumulating its chunks. Returns ErrUnavailable if the
	// stream has been released and ErrRecordingActive if a recording is
	// already in flight.
	StartRecording() (Recorder, error)

	// Release stops all underlying hardware tracks and clears the handle.
	// It is idempotent and safe to call on every exit path, including after
	// errors; any in-flight recording is discarded.
	Release()

	// Active reports the hardware-in-use indicator: true only between a
	// successful Open and Release.
	Active() bool
}

// Recorder accumulates an ordered, append-only sequence of media chunks.
type Recorder interface {
	// Append adds a chunk to the sequence. Zero-length chunks are dropped.
	// Returns ErrRecordingStopped after Stop or Release.
	Append(chunk []byte) error

	// Stop finalizes the recording and returns the concatenation of all
	// chunks in append order. Returns ErrEmptyCapture if no chunks were
	// recorded.
	Stop() ([]byte, error)

	// Elapsed reports how long the recording has been running. It reads
	// zero before the first chunk of wall-clock time passes and stops
	// growing once the recording is finalized.
	Elapsed() time.Duration
}

package domain

import (
	"context"
	"time"
)

// EngineStatus is a status report emitted by a media engine
type EngineStatus struct {
	Loaded   bool
	Playing  bool
	Position time.Duration
	Duration time.Duration
}

// MediaEngine decodes and renders media. Commands are fire-and-forget:
// their effect becomes visible only through a later status report.
type MediaEngine interface {
	Load(ctx context.Context, uri string) error
	Play(ctx context.Context) error
	Pause(ctx context.Context) error
	SeekTo(ctx context.Context, position time.Duration) error

	// Statuses emits reports on an engine-defined cadence.
	// The channel is closed by Close.
	Statuses() <-chan EngineStatus

	Close() error
}

// Package engine provides media engines for the playback overlay.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
)

// DurationResolver reports the runtime of a stream, or false if the stream
// cannot be opened
type DurationResolver func(uri string) (time.Duration, bool)

// SimulatedOptions tunes the simulated engine
type SimulatedOptions struct {
	Interval    time.Duration // status report cadence
	LoadLatency time.Duration // delay between load and the first loaded report
	Logger      *slog.Logger
}

type commandKind int

const (
	cmdLoad commandKind = iota
	cmdPlay
	cmdPause
	cmdSeek
)

type command struct {
	kind     commandKind
	uri      string
	position time.Duration
}

// Simulated is a clock-driven media engine. It decodes nothing: a single
// goroutine advances the position while "playing" and emits a status report
// every interval. Streams the resolver does not know never finish loading.
type Simulated struct {
	resolve  DurationResolver
	interval time.Duration
	latency  time.Duration
	logger   *slog.Logger

	cmds     chan command
	statuses chan domain.EngineStatus
	done     chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

var _ domain.MediaEngine = (*Simulated)(nil)

// NewSimulated starts a simulated engine. Close must be called to stop it.
func NewSimulated(resolve DurationResolver, opts SimulatedOptions) *Simulated {
	if opts.Interval <= 0 {
		opts.Interval = 250 * time.Millisecond
	}
	if opts.LoadLatency < 0 {
		opts.LoadLatency = 0
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	e := &Simulated{
		resolve:  resolve,
		interval: opts.Interval,
		latency:  opts.LoadLatency,
		logger:   opts.Logger,
		cmds:     make(chan command),
		statuses: make(chan domain.EngineStatus, 1),
		done:     make(chan struct{}),
	}

	e.wg.Add(1)
	go e.run()
	return e
}

// Load opens a stream
func (e *Simulated) Load(ctx context.Context, uri string) error {
	return e.send(ctx, command{kind: cmdLoad, uri: uri})
}

// Play resumes playback
func (e *Simulated) Play(ctx context.Context) error {
	return e.send(ctx, command{kind: cmdPlay})
}

// Pause halts playback
func (e *Simulated) Pause(ctx context.Context) error {
	return e.send(ctx, command{kind: cmdPause})
}

// SeekTo moves the playhead
func (e *Simulated) SeekTo(ctx context.Context, position time.Duration) error {
	return e.send(ctx, command{kind: cmdSeek, position: position})
}

// Statuses returns the report channel. It is closed by Close.
func (e *Simulated) Statuses() <-chan domain.EngineStatus {
	return e.statuses
}

// Close stops the engine goroutine and closes the status channel
func (e *Simulated) Close() error {
	e.once.Do(func() {
		close(e.done)
		e.wg.Wait()
		close(e.statuses)
	})
	return nil
}

func (e *Simulated) send(ctx context.Context, c command) error {
	select {
	case <-e.done:
		return domain.ErrEngineClosed
	default:
	}

	select {
	case e.cmds <- c:
		return nil
	case <-e.done:
		return domain.ErrEngineClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// playhead is the engine state, owned by the run goroutine
type playhead struct {
	uri      string
	loaded   bool
	loadAt   time.Time // when a pending load completes
	pending  bool
	playing  bool
	position time.Duration
	duration time.Duration
	lastTick time.Time
}

func (e *Simulated) run() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	var ph playhead
	for {
		select {
		case <-e.done:
			return

		case c := <-e.cmds:
			e.apply(&ph, c, time.Now())

		case now := <-ticker.C:
			e.advance(&ph, now)
			e.emit(ph.status())
		}
	}
}

func (e *Simulated) apply(ph *playhead, c command, now time.Time) {
	switch c.kind {
	case cmdLoad:
		*ph = playhead{uri: c.uri}
		if d, ok := e.resolve(c.uri); ok {
			ph.pending = true
			ph.loadAt = now.Add(e.latency)
			ph.duration = d
		} else {
			e.logger.Warn("simulated engine cannot open stream", "uri", c.uri)
		}
	case cmdPlay:
		if ph.loaded && ph.position < ph.duration {
			ph.playing = true
			ph.lastTick = now
		}
	case cmdPause:
		ph.playing = false
	case cmdSeek:
		if ph.loaded {
			ph.position = clamp(c.position, 0, ph.duration)
			ph.lastTick = now
		}
	}
	e.logger.Debug("engine command", "kind", c.kind, "position", ph.position, "playing", ph.playing)
}

func (e *Simulated) advance(ph *playhead, now time.Time) {
	if ph.pending && !now.Before(ph.loadAt) {
		ph.pending = false
		ph.loaded = true
		ph.lastTick = now
	}
	if !ph.playing {
		return
	}
	ph.position += now.Sub(ph.lastTick)
	ph.lastTick = now
	if ph.position >= ph.duration {
		ph.position = ph.duration
		ph.playing = false
	}
}

// emit delivers a report, replacing an unread one so readers always see the latest
func (e *Simulated) emit(st domain.EngineStatus) {
	select {
	case e.statuses <- st:
		return
	default:
	}
	select {
	case <-e.statuses:
	default:
	}
	select {
	case e.statuses <- st:
	default:
	}
}

func (ph playhead) status() domain.EngineStatus {
	if !ph.loaded {
		return domain.EngineStatus{}
	}
	return domain.EngineStatus{
		Loaded:   true,
		Playing:  ph.playing,
		Position: ph.position,
		Duration: ph.duration,
	}
}

func clamp(v, lo, hi time.Duration) time.Duration {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

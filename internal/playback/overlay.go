// Package playback implements the full-screen playback overlay: a state
// machine that turns user gestures into media engine commands and folds
// engine status reports back into what the controls display.
//
// The overlay never touches the engine itself. Every gesture returns the
// Command to issue; the caller sends it fire-and-forget and the overlay only
// learns the outcome from the next status report. Time is always passed in,
// which keeps every transition deterministic under test.
package playback

import (
	"fmt"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
)

// Phase is the transport state of the overlay
type Phase int

const (
	PhaseLoading Phase = iota
	PhasePaused
	PhasePlaying
	PhaseFailed // no loaded report within the load timeout
	PhaseClosed
)

// String returns a human-readable representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "Loading"
	case PhasePaused:
		return "Paused"
	case PhasePlaying:
		return "Playing"
	case PhaseFailed:
		return "Failed"
	case PhaseClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// CommandKind enumerates media engine commands
type CommandKind int

const (
	CommandLoad CommandKind = iota
	CommandPlay
	CommandPause
	CommandSeek
)

// Command is one fire-and-forget instruction for the media engine
type Command struct {
	Kind     CommandKind
	URI      string        // CommandLoad only
	Position time.Duration // CommandSeek only
}

// String renders the command for logs
func (c Command) String() string {
	switch c.Kind {
	case CommandLoad:
		return "load(" + c.URI + ")"
	case CommandPlay:
		return "play"
	case CommandPause:
		return "pause"
	case CommandSeek:
		return fmt.Sprintf("seek(%s)", c.Position)
	default:
		return "unknown"
	}
}

// State is the playback state the controls render
type State struct {
	Playing    bool
	Position   time.Duration // 0 <= Position <= Duration once Duration is known
	Duration   time.Duration // 0 until the engine reports it
	Loading    bool          // true until the first loaded report
	Quality    string
	Subtitles  bool
	Volume     float64 // 0.0-1.0
	Fullscreen bool    // always true; there is no windowed mode
}

// Options tunes overlay behaviour
type Options struct {
	SkipInterval    time.Duration // skip forward/back step
	ControlsTimeout time.Duration // inactivity before controls hide
	LoadTimeout     time.Duration // wait for the first loaded report before failing
	VolumeStep      float64
}

// DefaultOptions returns the stock overlay timings
func DefaultOptions() Options {
	return Options{
		SkipInterval:    10 * time.Second,
		ControlsTimeout: 3 * time.Second,
		LoadTimeout:     15 * time.Second,
		VolumeStep:      0.1,
	}
}

// Overlay is the playback overlay state machine for one title.
// It is created when the player opens and discarded when it closes.
type Overlay struct {
	title     string
	uri       string
	qualities []string
	subtitles []string
	opts      Options

	phase           Phase
	state           State
	controlsVisible bool
	controls        *Debouncer
	load            *Debouncer
	err             error
}

// NewOverlay prepares an overlay for item. Nothing happens until Mount.
func NewOverlay(item domain.ContentItem, opts Options) *Overlay {
	def := DefaultOptions()
	if opts.SkipInterval <= 0 {
		opts.SkipInterval = def.SkipInterval
	}
	if opts.ControlsTimeout <= 0 {
		opts.ControlsTimeout = def.ControlsTimeout
	}
	if opts.LoadTimeout <= 0 {
		opts.LoadTimeout = def.LoadTimeout
	}
	if opts.VolumeStep <= 0 {
		opts.VolumeStep = def.VolumeStep
	}

	return &Overlay{
		title:     item.Title,
		uri:       item.VideoURL,
		qualities: append([]string(nil), item.Qualities...),
		subtitles: append([]string(nil), item.Subtitles...),
		opts:      opts,
		phase:     PhaseLoading,
		state: State{
			Loading:    true,
			Quality:    item.DefaultQuality(),
			Volume:     1.0,
			Fullscreen: true,
		},
		controls: NewDebouncer(opts.ControlsTimeout),
		load:     NewDebouncer(opts.LoadTimeout),
	}
}

// Mount starts the overlay: controls visible, hide timer and load timeout
// armed. It returns the load command for the engine.
func (o *Overlay) Mount(now time.Time) Command {
	o.phase = PhaseLoading
	o.state.Loading = true
	o.controlsVisible = true
	o.controls.Trigger(now)
	o.load.Trigger(now)
	return Command{Kind: CommandLoad, URI: o.uri}
}

// ApplyStatus folds an engine status report into the state. Reports before
// the stream is loaded are ignored. Controls visibility is never affected.
func (o *Overlay) ApplyStatus(st domain.EngineStatus) bool {
	if o.phase == PhaseClosed || !st.Loaded {
		return false
	}

	if o.state.Loading || o.phase == PhaseFailed {
		o.state.Loading = false
		o.load.Cancel()
		o.err = nil
	}
	if st.Duration > 0 {
		o.state.Duration = st.Duration
	}
	o.state.Position = clamp(st.Position, 0, o.state.Duration)
	o.state.Playing = st.Playing

	if st.Playing {
		o.phase = PhasePlaying
	} else {
		o.phase = PhasePaused
	}
	return true
}

// Tap inverts controls visibility. Becoming visible re-arms the hide timer.
func (o *Overlay) Tap(now time.Time) (Timer, bool) {
	if o.phase == PhaseClosed {
		return Timer{}, false
	}
	if o.controlsVisible {
		o.controlsVisible = false
		o.controls.Cancel()
		return Timer{}, false
	}
	return o.Show(now), true
}

// Show makes the controls visible and re-arms the hide timer
func (o *Overlay) Show(now time.Time) Timer {
	if o.phase == PhaseClosed {
		return Timer{}
	}
	o.controlsVisible = true
	return o.controls.Trigger(now)
}

// HideControls handles a hide timer firing. Stale timers are ignored; the
// current one hides the controls unconditionally.
func (o *Overlay) HideControls(seq uint64) bool {
	if o.phase == PhaseClosed || !o.controls.Fire(seq) {
		return false
	}
	o.controlsVisible = false
	return true
}

// LoadExpired handles the load timeout firing. If the engine still has not
// reported the stream as loaded the overlay fails with ErrLoadTimeout.
func (o *Overlay) LoadExpired(seq uint64) bool {
	if !o.load.Fire(seq) || o.phase != PhaseLoading {
		return false
	}
	o.phase = PhaseFailed
	o.state.Loading = false
	o.err = fmt.Errorf("%s: %w", o.title, domain.ErrLoadTimeout)
	o.controlsVisible = true
	o.controls.Cancel()
	return true
}

// Retry reloads after a failure
func (o *Overlay) Retry(now time.Time) (Command, bool) {
	if o.phase != PhaseFailed {
		return Command{}, false
	}
	o.err = nil
	return o.Mount(now), true
}

// TogglePlay returns resume when paused and pause otherwise. The playing
// flag changes only when the engine confirms through a status report.
func (o *Overlay) TogglePlay() (Command, bool) {
	if !o.acceptsTransport() {
		return Command{}, false
	}
	if o.state.Playing {
		return Command{Kind: CommandPause}, true
	}
	return Command{Kind: CommandPlay}, true
}

// SkipForward seeks one skip interval ahead, clamped to the duration
func (o *Overlay) SkipForward() (Command, bool) {
	return o.skip(o.opts.SkipInterval)
}

// SkipBackward seeks one skip interval back, clamped to zero
func (o *Overlay) SkipBackward() (Command, bool) {
	return o.skip(-o.opts.SkipInterval)
}

func (o *Overlay) skip(delta time.Duration) (Command, bool) {
	if !o.acceptsTransport() {
		return Command{}, false
	}
	return Command{
		Kind:     CommandSeek,
		Position: SkipTarget(o.state.Position, o.state.Duration, delta),
	}, true
}

func (o *Overlay) acceptsTransport() bool {
	return o.phase != PhaseClosed && o.phase != PhaseFailed
}

// SkipTarget computes clamp(position+delta, 0, duration)
func SkipTarget(position, duration, delta time.Duration) time.Duration {
	return clamp(position+delta, 0, duration)
}

// CycleQuality selects the next available quality tier and returns it
func (o *Overlay) CycleQuality() string {
	if len(o.qualities) == 0 {
		return o.state.Quality
	}
	next := 0
	for i, q := range o.qualities {
		if q == o.state.Quality {
			next = (i + 1) % len(o.qualities)
			break
		}
	}
	o.state.Quality = o.qualities[next]
	return o.state.Quality
}

// ToggleSubtitles flips subtitles when the title has any tracks
func (o *Overlay) ToggleSubtitles() bool {
	if len(o.subtitles) == 0 {
		o.state.Subtitles = false
		return false
	}
	o.state.Subtitles = !o.state.Subtitles
	return o.state.Subtitles
}

// AdjustVolume changes the volume by steps of the configured increment
func (o *Overlay) AdjustVolume(steps int) float64 {
	v := o.state.Volume + float64(steps)*o.opts.VolumeStep
	switch {
	case v < 0:
		v = 0
	case v > 1:
		v = 1
	}
	o.state.Volume = v
	return v
}

// Close tears the overlay down. Pending timers are cancelled and every
// later event is ignored.
func (o *Overlay) Close() {
	o.phase = PhaseClosed
	o.controlsVisible = false
	o.controls.Cancel()
	o.load.Cancel()
}

// ProgressFraction returns position/duration in [0, 1], or 0 while the
// duration is unknown
func (o *Overlay) ProgressFraction() float64 {
	return ProgressFraction(o.state.Position, o.state.Duration)
}

// ProgressFraction returns position/duration in [0, 1]; 0 when duration is 0
func ProgressFraction(position, duration time.Duration) float64 {
	if duration <= 0 {
		return 0
	}
	f := float64(position) / float64(duration)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// Accessors

func (o *Overlay) Phase() Phase          { return o.phase }
func (o *Overlay) State() State          { return o.state }
func (o *Overlay) ControlsVisible() bool { return o.controlsVisible }
func (o *Overlay) Err() error            { return o.err }
func (o *Overlay) Title() string         { return o.title }
func (o *Overlay) Closed() bool          { return o.phase == PhaseClosed }
func (o *Overlay) Options() Options      { return o.opts }
func (o *Overlay) SubtitleTracks() []string {
	return append([]string(nil), o.subtitles...)
}

// ControlsTimer returns the pending hide timer
func (o *Overlay) ControlsTimer() (Timer, bool) { return o.controls.Pending() }

// LoadTimer returns the pending load timeout
func (o *Overlay) LoadTimer() (Timer, bool) { return o.load.Pending() }

func clamp(v, lo, hi time.Duration) time.Duration {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

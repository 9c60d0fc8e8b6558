package playback

import (
	"sort"
	"time"
)

// Timer identifies one armed deadline. Seq distinguishes it from earlier,
// superseded timers so a late firing can be recognised and dropped.
type Timer struct {
	Seq      uint64
	Deadline time.Time
}

// Debouncer owns a single timer handle with cancel-then-reschedule
// semantics: arming always supersedes whatever was pending, so only the
// latest timer can fire.
type Debouncer struct {
	delay   time.Duration
	seq     uint64
	pending *Timer
}

// NewDebouncer creates a debouncer that fires delay after the last Trigger
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Delay returns the configured delay
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Trigger cancels any pending timer and arms a new one at now+delay
func (d *Debouncer) Trigger(now time.Time) Timer {
	d.seq++
	t := Timer{Seq: d.seq, Deadline: now.Add(d.delay)}
	d.pending = &t
	return t
}

// Cancel drops the pending timer, if any
func (d *Debouncer) Cancel() {
	if d.pending != nil {
		d.seq++
		d.pending = nil
	}
}

// Pending returns the armed timer
func (d *Debouncer) Pending() (Timer, bool) {
	if d.pending == nil {
		return Timer{}, false
	}
	return *d.pending, true
}

// Fire consumes the timer identified by seq. It returns false for stale or
// cancelled timers, which callers must ignore.
func (d *Debouncer) Fire(seq uint64) bool {
	if d.pending == nil || d.pending.Seq != seq {
		return false
	}
	d.pending = nil
	return true
}

// HideEvents computes when the controls would auto-hide for a sequence of
// show events. Each show re-arms a single timer, so a burst of shows closer
// together than delay yields one hide, delay after the last show of the burst.
func HideEvents(shows []time.Time, delay time.Duration) []time.Time {
	if len(shows) == 0 {
		return nil
	}

	sorted := make([]time.Time, len(shows))
	copy(sorted, shows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	d := NewDebouncer(delay)
	var hides []time.Time
	for _, at := range sorted {
		// A pending deadline at or before this show has already fired
		if t, ok := d.Pending(); ok && !t.Deadline.After(at) {
			d.Fire(t.Seq)
			hides = append(hides, t.Deadline)
		}
		d.Trigger(at)
	}
	if t, ok := d.Pending(); ok {
		hides = append(hides, t.Deadline)
	}
	return hides
}

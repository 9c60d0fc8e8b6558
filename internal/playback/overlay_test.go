package playback

import (
	"errors"
	"testing"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItem() domain.ContentItem {
	return domain.ContentItem{
		ID:        "1",
		Title:     "Big Buck Bunny",
		VideoURL:  "https://example.com/bbb.mp4",
		Qualities: []string{"4K", "HD", "SD"},
		Subtitles: []string{"English"},
		Duration:  10 * time.Minute,
	}
}

func mounted(t *testing.T) *Overlay {
	t.Helper()
	o := NewOverlay(testItem(), DefaultOptions())
	cmd := o.Mount(t0)
	require.Equal(t, CommandLoad, cmd.Kind)
	require.Equal(t, "https://example.com/bbb.mp4", cmd.URI)
	return o
}

func loaded(t *testing.T, pos, dur time.Duration, playing bool) *Overlay {
	t.Helper()
	o := mounted(t)
	require.True(t, o.ApplyStatus(domain.EngineStatus{Loaded: true, Playing: playing, Position: pos, Duration: dur}))
	return o
}

func TestMount_InitialState(t *testing.T) {
	o := mounted(t)

	assert.Equal(t, PhaseLoading, o.Phase())
	assert.True(t, o.ControlsVisible())

	st := o.State()
	assert.True(t, st.Loading)
	assert.False(t, st.Playing)
	assert.Equal(t, "4K", st.Quality)
	assert.Equal(t, 1.0, st.Volume)
	assert.True(t, st.Fullscreen)

	tm, ok := o.ControlsTimer()
	require.True(t, ok)
	assert.Equal(t, t0.Add(3*time.Second), tm.Deadline)

	lt, ok := o.LoadTimer()
	require.True(t, ok)
	assert.Equal(t, t0.Add(15*time.Second), lt.Deadline)
}

func TestNewOverlay_QualityFallback(t *testing.T) {
	item := testItem()
	item.Qualities = nil
	o := NewOverlay(item, Options{})
	assert.Equal(t, domain.FallbackQuality, o.State().Quality)
	assert.Equal(t, DefaultOptions(), o.Options())
}

func TestApplyStatus_IgnoredUntilLoaded(t *testing.T) {
	o := mounted(t)
	assert.False(t, o.ApplyStatus(domain.EngineStatus{Loaded: false, Position: time.Minute}))
	assert.Equal(t, PhaseLoading, o.Phase())
	assert.True(t, o.State().Loading)
}

func TestApplyStatus_FirstReportLeavesLoading(t *testing.T) {
	paused := loaded(t, 0, 10*time.Minute, false)
	assert.Equal(t, PhasePaused, paused.Phase())
	assert.False(t, paused.State().Loading)
	assert.Equal(t, 10*time.Minute, paused.State().Duration)
	_, armed := paused.LoadTimer()
	assert.False(t, armed, "load timeout is cancelled once loaded")

	playing := loaded(t, 5*time.Second, 10*time.Minute, true)
	assert.Equal(t, PhasePlaying, playing.Phase())
	assert.Equal(t, 5*time.Second, playing.State().Position)
}

func TestApplyStatus_UpdatesPositionNotControls(t *testing.T) {
	o := loaded(t, 0, time.Minute, true)
	tm, _ := o.ControlsTimer()
	require.True(t, o.HideControls(tm.Seq))

	o.ApplyStatus(domain.EngineStatus{Loaded: true, Playing: false, Position: 30 * time.Second})
	assert.False(t, o.ControlsVisible())
	assert.Equal(t, 30*time.Second, o.State().Position)
	assert.Equal(t, time.Minute, o.State().Duration, "duration survives reports that omit it")
	assert.Equal(t, PhasePaused, o.Phase())
}

func TestApplyStatus_ClampsPosition(t *testing.T) {
	o := loaded(t, 2*time.Minute, time.Minute, true)
	assert.Equal(t, time.Minute, o.State().Position)

	o.ApplyStatus(domain.EngineStatus{Loaded: true, Position: -time.Second, Duration: time.Minute})
	assert.Equal(t, time.Duration(0), o.State().Position)
}

func TestTap_TogglesControls(t *testing.T) {
	o := mounted(t)

	_, armed := o.Tap(t0.Add(time.Second))
	assert.False(t, armed)
	assert.False(t, o.ControlsVisible())
	_, pending := o.ControlsTimer()
	assert.False(t, pending)

	tm, armed := o.Tap(t0.Add(2 * time.Second))
	assert.True(t, armed)
	assert.True(t, o.ControlsVisible())
	assert.Equal(t, t0.Add(5*time.Second), tm.Deadline)
}

func TestControlsTimer_Debounces(t *testing.T) {
	o := mounted(t)
	first, _ := o.ControlsTimer()

	second := o.Show(t0.Add(2 * time.Second))

	assert.False(t, o.HideControls(first.Seq), "timer from the first show is superseded")
	assert.True(t, o.ControlsVisible())

	assert.True(t, o.HideControls(second.Seq))
	assert.False(t, o.ControlsVisible())
	assert.Equal(t, t0.Add(5*time.Second), second.Deadline)
}

func TestControlsTimer_HidesUnconditionally(t *testing.T) {
	o := loaded(t, 0, time.Minute, true)
	tm, _ := o.ControlsTimer()
	// Transport commands do not re-arm on their own; only Show/Tap do
	_, _ = o.TogglePlay()
	assert.True(t, o.HideControls(tm.Seq))
	assert.False(t, o.ControlsVisible())
}

func TestTogglePlay_NoOptimisticUpdate(t *testing.T) {
	o := loaded(t, 0, time.Minute, false)

	cmd, ok := o.TogglePlay()
	require.True(t, ok)
	assert.Equal(t, CommandPlay, cmd.Kind)
	assert.False(t, o.State().Playing, "state waits for the engine")

	// Rapid second tap still sees "paused" and issues play again
	cmd, _ = o.TogglePlay()
	assert.Equal(t, CommandPlay, cmd.Kind)

	o.ApplyStatus(domain.EngineStatus{Loaded: true, Playing: true, Position: time.Second})
	cmd, _ = o.TogglePlay()
	assert.Equal(t, CommandPause, cmd.Kind)
}

func TestSkip_Clamps(t *testing.T) {
	nearEnd := loaded(t, 55*time.Second, time.Minute, true)
	cmd, ok := nearEnd.SkipForward()
	require.True(t, ok)
	assert.Equal(t, CommandSeek, cmd.Kind)
	assert.Equal(t, time.Minute, cmd.Position)
	assert.Equal(t, 55*time.Second, nearEnd.State().Position, "position waits for the next report")

	nearStart := loaded(t, 4*time.Second, time.Minute, true)
	cmd, _ = nearStart.SkipBackward()
	assert.Equal(t, time.Duration(0), cmd.Position)

	middle := loaded(t, 30*time.Second, time.Minute, true)
	cmd, _ = middle.SkipForward()
	assert.Equal(t, 40*time.Second, cmd.Position)
	cmd, _ = middle.SkipBackward()
	assert.Equal(t, 20*time.Second, cmd.Position)
}

func TestSkipTarget_Property(t *testing.T) {
	dur := 90 * time.Second
	for pos := time.Duration(0); pos <= dur; pos += 500 * time.Millisecond {
		fwd := SkipTarget(pos, dur, 10*time.Second)
		back := SkipTarget(pos, dur, -10*time.Second)
		assert.LessOrEqual(t, fwd, dur)
		assert.GreaterOrEqual(t, back, time.Duration(0))
	}
}

func TestProgressFraction(t *testing.T) {
	assert.Equal(t, 0.0, ProgressFraction(42*time.Second, 0))
	assert.Equal(t, 0.5, ProgressFraction(30*time.Second, time.Minute))
	assert.Equal(t, 1.0, ProgressFraction(2*time.Minute, time.Minute))

	o := mounted(t)
	assert.Equal(t, 0.0, o.ProgressFraction())
}

func TestLoadTimeout_FailsAndRetries(t *testing.T) {
	o := mounted(t)
	lt, _ := o.LoadTimer()

	require.True(t, o.LoadExpired(lt.Seq))
	assert.Equal(t, PhaseFailed, o.Phase())
	assert.True(t, errors.Is(o.Err(), domain.ErrLoadTimeout))
	assert.False(t, o.State().Loading)
	assert.True(t, o.ControlsVisible())

	_, ok := o.TogglePlay()
	assert.False(t, ok, "transport is disabled while failed")

	cmd, ok := o.Retry(t0.Add(20 * time.Second))
	require.True(t, ok)
	assert.Equal(t, CommandLoad, cmd.Kind)
	assert.Equal(t, PhaseLoading, o.Phase())
	assert.NoError(t, o.Err())

	assert.False(t, o.LoadExpired(lt.Seq), "old timeout is stale after retry")
}

func TestLoadTimeout_IgnoredOnceLoaded(t *testing.T) {
	o := mounted(t)
	lt, _ := o.LoadTimer()
	o.ApplyStatus(domain.EngineStatus{Loaded: true, Duration: time.Minute})
	assert.False(t, o.LoadExpired(lt.Seq))
	assert.Equal(t, PhasePaused, o.Phase())

	_, ok := o.Retry(t0)
	assert.False(t, ok)
}

func TestFailed_RecoversOnLateReport(t *testing.T) {
	o := mounted(t)
	lt, _ := o.LoadTimer()
	o.LoadExpired(lt.Seq)

	o.ApplyStatus(domain.EngineStatus{Loaded: true, Playing: true, Duration: time.Minute})
	assert.Equal(t, PhasePlaying, o.Phase())
	assert.NoError(t, o.Err())
}

func TestClose_TearsDown(t *testing.T) {
	o := mounted(t)
	tm, _ := o.ControlsTimer()
	lt, _ := o.LoadTimer()

	o.Close()
	assert.True(t, o.Closed())
	assert.False(t, o.ControlsVisible())
	assert.False(t, o.HideControls(tm.Seq))
	assert.False(t, o.LoadExpired(lt.Seq))
	assert.False(t, o.ApplyStatus(domain.EngineStatus{Loaded: true}))

	_, ok := o.SkipForward()
	assert.False(t, ok)
	_, armed := o.Tap(t0)
	assert.False(t, armed)
}

func TestSettings(t *testing.T) {
	o := mounted(t)

	assert.Equal(t, "HD", o.CycleQuality())
	assert.Equal(t, "SD", o.CycleQuality())
	assert.Equal(t, "4K", o.CycleQuality())

	assert.True(t, o.ToggleSubtitles())
	assert.False(t, o.ToggleSubtitles())

	assert.InDelta(t, 1.0, o.AdjustVolume(1), 1e-9)
	assert.InDelta(t, 0.8, o.AdjustVolume(-2), 1e-9)
	assert.InDelta(t, 0.0, o.AdjustVolume(-20), 1e-9)

	item := testItem()
	item.Subtitles = nil
	bare := NewOverlay(item, DefaultOptions())
	assert.False(t, bare.ToggleSubtitles())
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "play", Command{Kind: CommandPlay}.String())
	assert.Equal(t, "seek(10s)", Command{Kind: CommandSeek, Position: 10 * time.Second}.String())
	assert.Equal(t, "load(x)", Command{Kind: CommandLoad, URI: "x"}.String())
}

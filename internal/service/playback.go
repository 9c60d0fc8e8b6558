package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/playback"
)

// launcher abstracts external player launching (consumer-defined interface)
type launcher interface {
	Launch(ctx context.Context, url string, startOffset time.Duration) error
}

// Session is one opening of the playback overlay
type Session struct {
	ID      string
	Item    domain.ContentItem
	Trailer bool
	Overlay *playback.Overlay
}

// PlaybackService creates player sessions and hands titles to external players
type PlaybackService struct {
	launcher launcher
	opts     playback.Options
	logger   *slog.Logger
}

// NewPlaybackService creates a new playback service
func NewPlaybackService(launcher launcher, opts playback.Options, logger *slog.Logger) *PlaybackService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlaybackService{
		launcher: launcher,
		opts:     opts,
		logger:   logger,
	}
}

// NewSession prepares the overlay for item's main video
func (s *PlaybackService) NewSession(item domain.ContentItem) *Session {
	return s.newSession(item, false)
}

// NewTrailerSession prepares the overlay for item's trailer
func (s *PlaybackService) NewTrailerSession(item domain.ContentItem) (*Session, error) {
	if !item.HasTrailer() {
		return nil, fmt.Errorf("%s has no trailer: %w", item.Title, domain.ErrItemNotFound)
	}
	trailer := item
	trailer.Title = item.Title + " (Trailer)"
	trailer.VideoURL = item.Trailer.URL
	trailer.Qualities = nil
	return s.newSession(trailer, true), nil
}

func (s *PlaybackService) newSession(item domain.ContentItem, trailer bool) *Session {
	sess := &Session{
		ID:      uuid.NewString(),
		Item:    item,
		Trailer: trailer,
		Overlay: playback.NewOverlay(item, s.opts),
	}
	s.logger.Info("playback session created", "session", sess.ID, "itemID", item.ID, "title", item.Title, "trailer", trailer)
	return sess
}

// OpenExternal launches item in an external player, resuming from the
// continue-watching marker when there is one
func (s *PlaybackService) OpenExternal(ctx context.Context, item domain.ContentItem) error {
	offset := item.ResumeOffset()
	s.logger.Info("launching external playback", "title", item.Title, "itemID", item.ID, "offset", offset)

	if err := s.launcher.Launch(ctx, item.VideoURL, offset); err != nil {
		s.logger.Error("external playback failed", "error", err, "itemID", item.ID)
		return fmt.Errorf("open %s: %w", item.Title, err)
	}
	return nil
}

// Options returns the overlay options sessions are created with
func (s *PlaybackService) Options() playback.Options {
	return s.opts
}

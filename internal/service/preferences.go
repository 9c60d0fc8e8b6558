package service

import (
	"fmt"
	"log/slog"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/domain"
)

// EmulateClear is the flag value that removes a stored emulation preference
const EmulateClear = "none"

// PreferenceService manages the persisted device-emulation preference
type PreferenceService struct {
	store  domain.PreferenceStore
	logger *slog.Logger
}

// NewPreferenceService creates a new PreferenceService
func NewPreferenceService(store domain.PreferenceStore, logger *slog.Logger) *PreferenceService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PreferenceService{store: store, logger: logger}
}

// ResolveEmulation decides the device to emulate at startup. An explicit
// value is stored and used ("none" clears the preference); otherwise the
// stored value wins, then fallback.
func (s *PreferenceService) ResolveEmulation(explicit, fallback string) (string, error) {
	if explicit != "" {
		if explicit == EmulateClear {
			explicit = adapter.EmulateNone
		}
		if err := s.SetEmulation(explicit); err != nil {
			return "", err
		}
		return explicit, nil
	}

	if device, ok := s.store.EmulatedDevice(); ok && adapter.ValidEmulation(device) {
		return device, nil
	}
	if !adapter.ValidEmulation(fallback) {
		return adapter.EmulateNone, nil
	}
	return fallback, nil
}

// Emulation returns the stored preference, or none
func (s *PreferenceService) Emulation() string {
	device, ok := s.store.EmulatedDevice()
	if !ok || !adapter.ValidEmulation(device) {
		return adapter.EmulateNone
	}
	return device
}

// SetEmulation validates and stores the preference
func (s *PreferenceService) SetEmulation(device string) error {
	if !adapter.ValidEmulation(device) {
		return fmt.Errorf("%w: emulate %q", adapter.ErrInvalidConfig, device)
	}
	if err := s.store.SetEmulatedDevice(device); err != nil {
		return fmt.Errorf("failed to save emulation preference: %w", err)
	}
	s.logger.Info("device emulation updated", "device", device)
	return nil
}

package domain

// PreferenceStore persists the single durable preference: which device
// layout to emulate. Everything else is session-local.
type PreferenceStore interface {
	EmulatedDevice() (string, bool)
	SetEmulatedDevice(device string) error
	Close() error
}

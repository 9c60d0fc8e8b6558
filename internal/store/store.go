package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	bolt "go.etcd.io/bbolt"
)

var bucketPreferences = []byte("preferences")

const keyEmulatedDevice = "emulated_device"

// PreferenceStore implements domain.PreferenceStore using BoltDB.
type PreferenceStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache, filled on first read
	cache map[string]string
}

var _ domain.PreferenceStore = (*PreferenceStore)(nil)

// NewPreferenceStore opens the database at path. An empty path gives a
// memory-only store that forgets everything on exit.
func NewPreferenceStore(path string) (*PreferenceStore, error) {
	if path == "" {
		return &PreferenceStore{cache: make(map[string]string)}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPreferences)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &PreferenceStore{db: db, cache: make(map[string]string)}, nil
}

func (s *PreferenceStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Persistent reports whether values survive a restart
func (s *PreferenceStore) Persistent() bool {
	return s.db != nil
}

// EmulatedDevice returns the stored device-emulation preference
func (s *PreferenceStore) EmulatedDevice() (string, bool) {
	return s.get(keyEmulatedDevice)
}

// SetEmulatedDevice stores the device-emulation preference. An empty value
// clears it.
func (s *PreferenceStore) SetEmulatedDevice(device string) error {
	if device == "" {
		return s.delete(keyEmulatedDevice)
	}
	return s.set(keyEmulatedDevice, device)
}

func (s *PreferenceStore) get(key string) (string, bool) {
	s.mu.RLock()
	if v, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return v, true
	}
	s.mu.RUnlock()

	if s.db == nil {
		return "", false
	}

	var value []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPreferences)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			value = make([]byte, len(v))
			copy(value, v)
		}
		return nil
	})
	if value == nil {
		return "", false
	}

	s.mu.Lock()
	s.cache[key] = string(value)
	s.mu.Unlock()

	return string(value), true
}

func (s *PreferenceStore) set(key, value string) error {
	s.mu.Lock()
	s.cache[key] = value
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPreferences).Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

func (s *PreferenceStore) delete(key string) error {
	s.mu.Lock()
	delete(s.cache, key)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPreferences).Delete([]byte(key))
	})
}

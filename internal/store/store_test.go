package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceStore_MemoryOnly(t *testing.T) {
	s, err := NewPreferenceStore("")
	require.NoError(t, err)
	defer s.Close()

	assert.False(t, s.Persistent())

	_, ok := s.EmulatedDevice()
	assert.False(t, ok)

	require.NoError(t, s.SetEmulatedDevice("ios"))
	got, ok := s.EmulatedDevice()
	require.True(t, ok)
	assert.Equal(t, "ios", got)

	require.NoError(t, s.SetEmulatedDevice(""))
	_, ok = s.EmulatedDevice()
	assert.False(t, ok)
}

func TestPreferenceStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "marquee.db")

	s, err := NewPreferenceStore(path)
	require.NoError(t, err)
	assert.True(t, s.Persistent())
	require.NoError(t, s.SetEmulatedDevice("android"))
	require.NoError(t, s.Close())

	reopened, err := NewPreferenceStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, ok := reopened.EmulatedDevice()
	require.True(t, ok)
	assert.Equal(t, "android", got)
}

func TestPreferenceStore_ClearPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marquee.db")

	s, err := NewPreferenceStore(path)
	require.NoError(t, err)
	require.NoError(t, s.SetEmulatedDevice("ios"))
	require.NoError(t, s.SetEmulatedDevice(""))
	require.NoError(t, s.Close())

	reopened, err := NewPreferenceStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	_, ok := reopened.EmulatedDevice()
	assert.False(t, ok)
}

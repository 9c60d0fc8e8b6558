package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoute(t *testing.T) {
	tests := []struct {
		path string
		want Route
	}{
		{"", Route{Screen: ScreenHome}},
		{"/", Route{Screen: ScreenHome}},
		{"/search", Route{Screen: ScreenSearch}},
		{"search/", Route{Screen: ScreenSearch}},
		{"/watchlist", Route{Screen: ScreenWatchlist}},
		{"/profile", Route{Screen: ScreenProfile}},
		{"/movie/7", Route{Screen: ScreenDetail, ID: "7"}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := ParseRoute(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRoute_Invalid(t *testing.T) {
	for _, p := range []string{"/movie/", "/movie/1/extra", "/settings"} {
		_, err := ParseRoute(p)
		assert.Error(t, err, p)
	}
}

func TestRoutePath_RoundTrip(t *testing.T) {
	for _, p := range []string{"/", "/search", "/watchlist", "/profile", "/movie/42"} {
		r, err := ParseRoute(p)
		require.NoError(t, err)
		assert.Equal(t, p, r.Path())
	}
}

func TestTabFor(t *testing.T) {
	tab, ok := TabFor(Route{Screen: ScreenWatchlist})
	require.True(t, ok)
	assert.Equal(t, TabWatchlist, tab)
	assert.Equal(t, "My List", tab.String())

	_, ok = TabFor(Route{Screen: ScreenDetail, ID: "1"})
	assert.False(t, ok)

	assert.True(t, ShowsTabBar(Route{Screen: ScreenProfile}))
	assert.False(t, ShowsTabBar(Route{Screen: ScreenDetail, ID: "1"}))

	for _, tab := range Tabs {
		back, ok := TabFor(tab.Route())
		require.True(t, ok)
		assert.Equal(t, tab, back)
	}
}

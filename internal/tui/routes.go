package tui

import (
	"fmt"
	"strings"
)

// Screen identifies a routable screen
type Screen int

const (
	ScreenHome Screen = iota
	ScreenSearch
	ScreenWatchlist
	ScreenProfile
	ScreenDetail
)

// Route is a parsed navigation target. ID is set for detail routes only.
type Route struct {
	Screen Screen
	ID     string
}

// Tab is a bottom navigation tab
type Tab int

const (
	TabHome Tab = iota
	TabSearch
	TabWatchlist
	TabProfile
)

// Tabs lists the tab bar in display order
var Tabs = []Tab{TabHome, TabSearch, TabWatchlist, TabProfile}

// String returns the tab label
func (t Tab) String() string {
	switch t {
	case TabHome:
		return "Home"
	case TabSearch:
		return "Search"
	case TabWatchlist:
		return "My List"
	case TabProfile:
		return "Profile"
	default:
		return "Unknown"
	}
}

// Route returns the route a tab opens
func (t Tab) Route() Route {
	switch t {
	case TabSearch:
		return Route{Screen: ScreenSearch}
	case TabWatchlist:
		return Route{Screen: ScreenWatchlist}
	case TabProfile:
		return Route{Screen: ScreenProfile}
	default:
		return Route{Screen: ScreenHome}
	}
}

// ParseRoute parses a path such as "/", "/search" or "/movie/3"
func ParseRoute(path string) (Route, error) {
	p := strings.TrimSpace(path)
	if p == "" {
		return Route{Screen: ScreenHome}, nil
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}

	switch p {
	case "/":
		return Route{Screen: ScreenHome}, nil
	case "/search":
		return Route{Screen: ScreenSearch}, nil
	case "/watchlist":
		return Route{Screen: ScreenWatchlist}, nil
	case "/profile":
		return Route{Screen: ScreenProfile}, nil
	}

	if id, ok := strings.CutPrefix(p, "/movie/"); ok && id != "" && !strings.Contains(id, "/") {
		return Route{Screen: ScreenDetail, ID: id}, nil
	}
	return Route{}, fmt.Errorf("unknown route %q", path)
}

// Path renders the route back to its path form
func (r Route) Path() string {
	switch r.Screen {
	case ScreenSearch:
		return "/search"
	case ScreenWatchlist:
		return "/watchlist"
	case ScreenProfile:
		return "/profile"
	case ScreenDetail:
		return "/movie/" + r.ID
	default:
		return "/"
	}
}

// TabFor returns the tab a route belongs to. Detail routes have no tab.
func TabFor(r Route) (Tab, bool) {
	switch r.Screen {
	case ScreenHome:
		return TabHome, true
	case ScreenSearch:
		return TabSearch, true
	case ScreenWatchlist:
		return TabWatchlist, true
	case ScreenProfile:
		return TabProfile, true
	default:
		return 0, false
	}
}

// ShowsTabBar reports whether the bottom navigation is visible on r
func ShowsTabBar(r Route) bool {
	_, ok := TabFor(r)
	return ok
}

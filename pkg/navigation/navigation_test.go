package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsActiveExactMatch(t *testing.T) {
	for _, path := range []string{"/", "/thesis", "/portfolio", "/pitch", "/garage", "/apply", "/a/b"} {
		assert.True(t, IsActive(path, path), "path %q should match itself", path)
	}

	cases := []struct {
		name    string
		current string
		link    string
	}{
		{name: "different routes", current: "/thesis", link: "/portfolio"},
		{name: "case sensitive", current: "/thesis", link: "/Thesis"},
		{name: "no trailing slash cleanup", current: "/thesis/", link: "/thesis"},
		{name: "no prefix matching", current: "/garage/apply", link: "/garage"},
		{name: "root is not a prefix", current: "/thesis", link: "/"},
		{name: "query is not stripped", current: "/pitch?menu=open", link: "/pitch"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.False(t, IsActive(tc.current, tc.link))
		})
	}
}

func TestActiveFlagsHomeScenario(t *testing.T) {
	flags := ActiveFlags("/", []string{"/", "/thesis", "/portfolio", "/pitch"})
	assert.Equal(t, []bool{true, false, false, false}, flags)
}

func TestActiveFlagsGarage(t *testing.T) {
	assert.True(t, IsActive("/garage", "/garage"))
	assert.False(t, IsActive("/garage/apply", "/garage"))
}

func TestMenuStartsClosed(t *testing.T) {
	var menu Menu
	assert.Equal(t, MenuClosed, menu.State())
	assert.False(t, menu.IsOpen())
}

func TestMenuToggleIsInvolution(t *testing.T) {
	for _, start := range []MenuState{MenuClosed, MenuOpen} {
		menu := Menu{state: start}
		menu.Toggle()
		assert.NotEqual(t, start, menu.State())
		menu.Toggle()
		assert.Equal(t, start, menu.State())
	}
}

func TestMenuLinkActivatedIsAbsorbing(t *testing.T) {
	for _, start := range []MenuState{MenuClosed, MenuOpen} {
		menu := Menu{state: start}
		menu.LinkActivated()
		assert.Equal(t, MenuClosed, menu.State())
		menu.LinkActivated()
		assert.Equal(t, MenuClosed, menu.State())
	}
}

func TestMenuStateString(t *testing.T) {
	assert.Equal(t, "open", MenuOpen.String())
	assert.Equal(t, "closed", MenuClosed.String())
}

func defaultItems() []Item {
	return []Item{
		{Label: "Home", Path: "/"},
		{Label: "Thesis", Path: "/thesis"},
		{Label: "Portfolio", Path: "/portfolio"},
		{Label: "Pitch Us", Path: "/pitch", Emphasis: true},
		{Label: "The Garage", Path: "/garage"},
	}
}

func TestBarToggleThenActivateCollapses(t *testing.T) {
	currentPath := "/"
	bar := NewBar(defaultItems())
	require.Equal(t, MenuClosed, bar.Menu())

	bar.Toggle()
	require.Equal(t, MenuOpen, bar.Menu())
	assert.True(t, bar.View(currentPath).MenuOpen)

	item, ok := bar.Activate("/thesis")
	require.True(t, ok)
	currentPath = item.Path

	assert.Equal(t, MenuClosed, bar.Menu())
	assert.Equal(t, "/thesis", currentPath)
	assert.Equal(t, "Thesis", item.Label)
}

func TestBarActivateUnknownPathKeepsMenu(t *testing.T) {
	bar := NewBar(defaultItems())
	bar.Toggle()

	_, ok := bar.Activate("/nowhere")
	assert.False(t, ok)
	assert.Equal(t, MenuOpen, bar.Menu())

	bar.Close()
	assert.Equal(t, MenuClosed, bar.Menu())
}

func TestBarsDoNotShareMenuState(t *testing.T) {
	first := NewBar(defaultItems())
	second := NewBar(defaultItems())

	first.Toggle()
	assert.Equal(t, MenuOpen, first.Menu())
	assert.Equal(t, MenuClosed, second.Menu())
}

func TestBarCopiesItems(t *testing.T) {
	items := defaultItems()
	bar := NewBar(items)
	items[0].Path = "/changed"

	assert.Equal(t, "/", bar.Items()[0].Path)
}

func TestBarView(t *testing.T) {
	bar := NewBar(defaultItems())
	view := bar.View("/pitch")

	require.Len(t, view.Links, 5)
	active := make([]bool, len(view.Links))
	for i, link := range view.Links {
		active[i] = link.Active
	}
	assert.Equal(t, []bool{false, false, false, true, false}, active)
	assert.True(t, view.Links[3].Emphasis)
	assert.False(t, view.MenuOpen)
	assert.Equal(t, "/pitch?menu=open", view.ToggleHref)

	bar.Toggle()
	assert.Equal(t, "/pitch", bar.View("/pitch").ToggleHref)
}

func TestBarViewUnknownPathHasNoActiveLink(t *testing.T) {
	view := NewBar(defaultItems()).View("/missing")
	for _, link := range view.Links {
		assert.False(t, link.Active, "link %s", link.Path)
	}
}

func TestToggleHrefStaysOnSite(t *testing.T) {
	cases := []struct {
		path   string
		closed string
		open   string
	}{
		{path: "/", closed: "/?menu=open", open: "/"},
		{path: "//evil.example", closed: "/evil.example?menu=open", open: "/evil.example"},
		{path: "///evil.example/x", closed: "/evil.example/x?menu=open", open: "/evil.example/x"},
		{path: "/a?b", closed: "/a%3Fb?menu=open", open: "/a%3Fb"},
		{path: "/a#b", closed: "/a%23b?menu=open", open: "/a%23b"},
		{path: `/\evil.example`, closed: "/%5Cevil.example?menu=open", open: "/%5Cevil.example"},
		{path: "", closed: "/?menu=open", open: "/"},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, tc.closed, ToggleHref(tc.path, MenuClosed))
			assert.Equal(t, tc.open, ToggleHref(tc.path, MenuOpen))
		})
	}
}

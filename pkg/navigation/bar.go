package navigation

import (
	"net/url"
	"strings"
)

const (
	// MenuQueryParam carries the toggle event for clients without scripting.
	MenuQueryParam = "menu"
	// MenuOpenValue is the only MenuQueryParam value that opens the panel.
	MenuOpenValue = "open"
)

// Bar is one navigation bar instance: an ordered link list and the menu it
// owns. A Bar is mounted per rendered view and is not safe for concurrent
// use; the menu state never leaks between bars.
type Bar struct {
	items []Item
	menu  Menu
}

// NewBar mounts a bar with a closed menu. The item slice is copied.
func NewBar(items []Item) *Bar {
	copied := make([]Item, len(items))
	copy(copied, items)
	return &Bar{items: copied}
}

func (b *Bar) Items() []Item {
	items := make([]Item, len(b.items))
	copy(items, b.items)
	return items
}

func (b *Bar) Menu() MenuState {
	return b.menu.State()
}

// Toggle handles a click on the menu button.
func (b *Bar) Toggle() {
	b.menu.Toggle()
}

// Activate handles a click on the link pointing at path. The menu collapses
// and the matching item is returned so the router can swap the view. Paths
// that are not part of the bar leave the menu untouched.
func (b *Bar) Activate(path string) (Item, bool) {
	for _, item := range b.items {
		if item.Path == path {
			b.menu.LinkActivated()
			return item, true
		}
	}
	return Item{}, false
}

// Close collapses the menu when the owning view is torn down.
func (b *Bar) Close() {
	b.menu.LinkActivated()
}

// LinkView is an Item resolved against the current path.
type LinkView struct {
	Item
	Active bool `json:"active"`
}

// View is the render model of a bar for one path.
type View struct {
	CurrentPath string     `json:"current_path"`
	Links       []LinkView `json:"links"`
	MenuOpen    bool       `json:"menu_open"`
	ToggleHref  string     `json:"toggle_href"`
}

// View resolves every link against currentPath. It does not mutate the bar.
func (b *Bar) View(currentPath string) View {
	links := make([]LinkView, len(b.items))
	for i, item := range b.items {
		links[i] = LinkView{Item: item, Active: IsActive(currentPath, item.Path)}
	}

	return View{
		CurrentPath: currentPath,
		Links:       links,
		MenuOpen:    b.menu.IsOpen(),
		ToggleHref:  ToggleHref(currentPath, b.menu.State()),
	}
}

// ToggleHref returns the URL the menu button points at. Following it from a
// closed bar opens the panel on the same path; from an open bar it reloads
// the bare path, which mounts a closed bar. The result is always a
// same-origin path with the current path percent-escaped, so a request path
// such as //host or /a?b cannot redirect the button elsewhere.
func ToggleHref(currentPath string, state MenuState) string {
	target := url.URL{Path: sameOriginPath(currentPath)}
	if state != MenuOpen {
		target.RawQuery = url.Values{MenuQueryParam: []string{MenuOpenValue}}.Encode()
	}
	return target.String()
}

// sameOriginPath collapses leading slashes so the path cannot be read as a
// network-path reference.
func sameOriginPath(path string) string {
	return "/" + strings.TrimLeft(path, "/")
}

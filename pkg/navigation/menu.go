package navigation

// MenuState is the visibility of the collapsible navigation panel.
type MenuState int

const (
	MenuClosed MenuState = iota
	MenuOpen
)

func (s MenuState) String() string {
	if s == MenuOpen {
		return "open"
	}
	return "closed"
}

// Menu tracks whether the collapsible panel of one navigation bar is shown.
// The zero value is a closed menu.
type Menu struct {
	state MenuState
}

func (m *Menu) State() MenuState {
	return m.state
}

func (m *Menu) IsOpen() bool {
	return m.state == MenuOpen
}

// Toggle flips the panel between open and closed.
func (m *Menu) Toggle() {
	if m.state == MenuOpen {
		m.state = MenuClosed
		return
	}
	m.state = MenuOpen
}

// LinkActivated collapses the panel. Selecting a destination always closes
// the menu regardless of its previous state.
func (m *Menu) LinkActivated() {
	m.state = MenuClosed
}

package shell

// Tray menu item identifiers
const (
	MenuShow = "show"
	MenuQuit = "quit"
)

// MenuItem is a tray menu entry
type MenuItem struct {
	ID    string
	Label string
}

// DefaultMenu returns the tray menu: Show and Quit
func DefaultMenu() []MenuItem {
	return []MenuItem{
		{ID: MenuShow, Label: "Göster"},
		{ID: MenuQuit, Label: "Çıkış"},
	}
}

// MouseButton identifies the button in a tray icon click
type MouseButton int

const (
	ButtonLeft MouseButton = iota
	ButtonRight
	ButtonMiddle
)

// ButtonState is the phase of a click
type ButtonState int

const (
	ButtonUp ButtonState = iota
	ButtonDown
)

// TrayIconEvent is a click on the tray icon itself
type TrayIconEvent struct {
	Button MouseButton
	State  ButtonState
}

// TraySpec describes the tray icon
type TraySpec struct {
	ID      string
	Title   string
	Tooltip string
	Icon    []byte
	Menu    []MenuItem
	// ShowMenuOnLeftClick false reserves left click for TrayHandlers.OnIcon
	ShowMenuOnLeftClick bool
}

// TrayHandlers receive tray events. They may be called off the UI thread.
type TrayHandlers struct {
	OnMenu func(id string)
	OnIcon func(ev TrayIconEvent)
}

// Tray creates the tray icon
type Tray interface {
	Build(spec TraySpec, handlers TrayHandlers) error
}

package shell

// Label identifies a logical window
type Label string

const (
	MainLabel  Label = "main"
	PopupLabel Label = "popup"
)

// Window is a top-level window owned by the host framework.
// Methods must be called on the host's UI thread.
type Window interface {
	Label() Label
	Show() error
	Hide() error
	Unminimize() error
	SetFocus() error
	SetAlwaysOnTop(on bool) error
	// RequestAttention asks the OS to flag the window urgently (taskbar flash)
	RequestAttention() error
	Close() error
	// OnCloseRequested registers the handler for user close actions.
	// Unless the handler calls PreventClose the window closes.
	OnCloseRequested(fn func(*CloseRequest))
	// OnClosed registers fn to run after the window is destroyed
	OnClosed(fn func())
}

// CloseRequest is passed to close handlers
type CloseRequest struct {
	prevented bool
}

// PreventClose keeps the window open
func (r *CloseRequest) PreventClose() {
	r.prevented = true
}

// Prevented reports whether a handler called PreventClose
func (r *CloseRequest) Prevented() bool {
	return r.prevented
}

// WindowSpec describes a window the shell asks the host to create
type WindowSpec struct {
	Label       Label
	Title       string
	Route       string // which view the host renders
	Width       float32
	Height      float32
	Resizable   bool
	Decorations bool
	AlwaysOnTop bool
	Center      bool
	Focused     bool
	// SkipTaskbar is a hint; hosts that cannot control the taskbar ignore it
	SkipTaskbar bool
}

// PopupSpec returns the break reminder popup window spec
func PopupSpec() WindowSpec {
	return WindowSpec{
		Label:       PopupLabel,
		Title:       "Mola Zamanı!",
		Route:       "popup",
		Width:       380,
		Height:      420,
		Resizable:   false,
		Decorations: false,
		AlwaysOnTop: true,
		Center:      true,
		Focused:     true,
		SkipTaskbar: false,
	}
}

// Host is the windowing framework the shell drives
type Host interface {
	// MainWindow returns the window the host created at startup
	MainWindow() (Window, bool)
	CreateWindow(spec WindowSpec) (Window, error)
	// Do runs fn on the UI thread
	Do(fn func())
	// Run blocks in the event loop and returns the process exit code
	Run() int
	// Exit stops the event loop; Run returns code
	Exit(code int)
}

// Autostarter registers the application as a login item
type Autostarter interface {
	Enable() error
	Disable() error
	IsEnabled() (bool, error)
}

// Sounder plays the notification sound as a detached task.
// Play never reports whether the sound was actually heard.
type Sounder interface {
	Supported() bool
	Play()
}

package desktop

import (
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/username/reminder/internal/settings"
	"github.com/username/reminder/internal/timer"
	"github.com/username/reminder/pkg/timefmt"
	"go.uber.org/zap"
)

// PopupRoute is the route the break popup window renders
const PopupRoute = "popup"

// Commands is the part of the command surface the views call
type Commands interface {
	ClosePopupWindow() error
	IsAutostartEnabled() (bool, error)
}

// ViewOptions configures the views
type ViewOptions struct {
	AppName string
	// AutoClose is how long the popup counts down in auto mode
	AutoClose time.Duration
}

// Views builds the window contents and shares state between them
type Views struct {
	app      fyne.App
	timer    *timer.Timer
	store    *settings.Store
	commands Commands
	opts     ViewOptions
	logger   *zap.Logger
}

// NewViews creates the view factory and keeps the app theme in sync with settings
func NewViews(a fyne.App, t *timer.Timer, store *settings.Store, commands Commands, opts ViewOptions, logger *zap.Logger) *Views {
	if opts.AppName == "" {
		opts.AppName = "Reminder"
	}
	if opts.AutoClose <= 0 {
		opts.AutoClose = 10 * time.Second
	}

	v := &Views{
		app:      a,
		timer:    t,
		store:    store,
		commands: commands,
		opts:     opts,
		logger:   logger,
	}

	ApplyTheme(a, store.Get().Theme)
	store.OnChange(func(prev, next settings.Settings) {
		if prev.Theme != next.Theme {
			ApplyTheme(a, next.Theme)
			logger.Info("Theme changed", zap.String("theme", string(next.Theme)))
		}
	})
	return v
}

// Popup is the ViewBuilder for PopupRoute
func (v *Views) Popup(w *Window) fyne.CanvasObject {
	return v.NewPopupView(w).Content()
}

// StatusLabel returns the display name of a timer status
func StatusLabel(s timer.Status) string {
	switch s {
	case timer.StatusRunning:
		return "Çalışıyor"
	case timer.StatusPaused:
		return "Duraklatıldı"
	case timer.StatusExpired:
		return "Süre Doldu"
	default:
		return "Hazır"
	}
}

// ModeLabel returns the display name of a notification mode
func ModeLabel(m settings.Mode) string {
	if m == settings.ModeAuto {
		return "Otomatik"
	}
	return "Manuel Onay"
}

// Summary returns the one-line settings summary shown under the timer
func Summary(s settings.Settings) string {
	parts := []string{timefmt.Minutes(s.IntervalMinutes), ModeLabel(s.Mode)}
	if s.DND {
		parts = append(parts, "DND Aktif")
	}
	return strings.Join(parts, "  |  ")
}

func onOff(b bool) string {
	if b {
		return "Aktif"
	}
	return "Pasif"
}

func heading(text string) *canvas.Text {
	t := canvas.NewText(text, theme.Color(theme.ColorNameForeground))
	t.TextSize = theme.Size(theme.SizeNameHeadingText)
	t.TextStyle = fyne.TextStyle{Bold: true}
	t.Alignment = fyne.TextAlignCenter
	return t
}

func row(label, value string) (fyne.CanvasObject, *widget.Label) {
	v := widget.NewLabelWithStyle(value, fyne.TextAlignTrailing, fyne.TextStyle{Bold: true})
	return container.NewBorder(nil, nil, widget.NewLabel(label), v), v
}

func sectionTitle(text string) *widget.Label {
	return widget.NewLabelWithStyle(text, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
}

func minutesText(m int) string {
	return fmt.Sprintf("%d dakika tamamlandı", m)
}

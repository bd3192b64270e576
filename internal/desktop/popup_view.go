package desktop

import (
	"strconv"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/username/reminder/internal/settings"
	"github.com/username/reminder/pkg/timefmt"
	"go.uber.org/zap"
)

// PopupView is the break popup. In confirm mode it waits for the user;
// in auto mode it restarts the timer when its countdown runs out.
type PopupView struct {
	views   *Views
	mode    settings.Mode
	content fyne.CanvasObject

	countdown *widget.Label
	restart   *widget.Button
	ok        *widget.Button
	dismiss   *widget.Button

	remaining int
	done      bool
	stop      chan struct{}
	stopOnce  sync.Once
}

// NewPopupView builds the popup for w and starts its countdown in auto mode
func (v *Views) NewPopupView(w *Window) *PopupView {
	s := v.store.Get()
	p := &PopupView{
		views:     v,
		mode:      s.Mode,
		remaining: timefmt.Seconds(v.opts.AutoClose),
		stop:      make(chan struct{}),
	}
	p.content = p.build(s)

	if w != nil {
		w.OnClosed(p.stopCountdown)
	}
	if p.mode == settings.ModeAuto {
		go p.runCountdown()
	}
	return p
}

// Content returns the popup content
func (p *PopupView) Content() fyne.CanvasObject {
	return p.content
}

// Remaining returns the seconds left before an auto-mode restart
func (p *PopupView) Remaining() int {
	return p.remaining
}

func (p *PopupView) build(s settings.Settings) fyne.CanvasObject {
	banner := canvas.NewRectangle(theme.Color(theme.ColorNamePrimary))
	title := canvas.NewText("Mola Zamanı!", theme.Color(theme.ColorNameForegroundOnPrimary))
	title.TextSize = theme.Size(theme.SizeNameHeadingText)
	title.TextStyle = fyne.TextStyle{Bold: true}
	subtitle := canvas.NewText(minutesText(s.IntervalMinutes), theme.Color(theme.ColorNameForegroundOnPrimary))

	header := container.NewStack(banner, container.NewPadded(container.NewHBox(
		widget.NewIcon(theme.HistoryIcon()),
		container.NewVBox(title, subtitle),
	)))

	message := container.NewVBox(
		widget.NewLabelWithStyle("Ekrandan uzaklaşın, gözlerinizi dinlendirin", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Kısa bir mola verin ve hareket edin", fyne.TextAlignCenter, fyne.TextStyle{}),
	)

	var actions *fyne.Container
	if p.mode == settings.ModeAuto {
		p.countdown = widget.NewLabelWithStyle(strconv.Itoa(p.remaining), fyne.TextAlignCenter, fyne.TextStyle{Bold: true, Monospace: true})
		p.dismiss = widget.NewButton("Kapat", p.Dismiss)
		actions = container.NewVBox(
			p.countdown,
			widget.NewLabelWithStyle("saniye içinde otomatik devam edilecek", fyne.TextAlignCenter, fyne.TextStyle{}),
			p.dismiss,
		)
	} else {
		p.restart = widget.NewButtonWithIcon("Tamam + Yeniden Başlat", theme.MediaReplayIcon(), p.OkRestart)
		p.restart.Importance = widget.HighImportance
		p.ok = widget.NewButtonWithIcon("Tamam (Duraklat)", theme.ConfirmIcon(), p.Ok)
		actions = container.NewVBox(p.restart, p.ok)
	}

	soundIcon, soundText := theme.VolumeUpIcon(), "Ses Açık"
	if !s.SoundEnabled {
		soundIcon, soundText = theme.VolumeMuteIcon(), "Ses Kapalı"
	}
	footer := container.NewCenter(container.NewHBox(widget.NewIcon(soundIcon), widget.NewLabel(soundText)))

	return container.NewBorder(header, container.NewVBox(widget.NewSeparator(), footer), nil, nil,
		container.NewPadded(container.NewVBox(layout.NewSpacer(), message, actions, layout.NewSpacer())))
}

// OkRestart starts a new interval and closes the popup
func (p *PopupView) OkRestart() {
	if p.done {
		return
	}
	p.views.timer.ResetAndStart()
	p.close("restart")
}

// Ok pauses the timer and closes the popup
func (p *PopupView) Ok() {
	if p.done {
		return
	}
	p.views.timer.Pause()
	p.close("pause")
}

// Dismiss closes the popup without touching the timer
func (p *PopupView) Dismiss() {
	if p.done {
		return
	}
	p.close("dismiss")
}

// Tick advances the auto-mode countdown by one second. Must run on the UI thread.
func (p *PopupView) Tick() {
	if p.done || p.mode != settings.ModeAuto {
		return
	}
	p.remaining--
	if p.remaining <= 0 {
		p.remaining = 0
		p.OkRestart()
		return
	}
	p.countdown.SetText(strconv.Itoa(p.remaining))
}

func (p *PopupView) runCountdown() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			fyne.Do(p.Tick)
		case <-p.stop:
			return
		}
	}
}

func (p *PopupView) stopCountdown() {
	p.stopOnce.Do(func() { close(p.stop) })
}

func (p *PopupView) close(action string) {
	p.done = true
	p.stopCountdown()

	p.views.logger.Info("Popup action", zap.String("action", action))
	if err := p.views.commands.ClosePopupWindow(); err != nil {
		p.views.logger.Warn("Failed to close popup window", zap.Error(err))
	}
}

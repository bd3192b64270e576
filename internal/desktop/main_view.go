package desktop

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/username/reminder/internal/settings"
	"github.com/username/reminder/internal/timer"
	"github.com/username/reminder/pkg/timefmt"
	"go.uber.org/zap"
)

// MainView is the main window: onboarding on first run, then the timer,
// with the settings page one click away
type MainView struct {
	views *Views
	root  *fyne.Container

	onboarding fyne.CanvasObject
	timerPage  fyne.CanvasObject
	settings   *SettingsView

	countdown *canvas.Text
	status    *widget.Label
	start     *widget.Button
	pause     *widget.Button
	reset     *widget.Button
	summary   *widget.Label

	introInterval  *widget.Label
	introMode      *widget.Label
	introAutostart *widget.Label
	introStart     *widget.Button
}

// NewMainView builds the main window content
func (v *Views) NewMainView() *MainView {
	m := &MainView{views: v}

	m.timerPage = m.buildTimerPage()
	m.onboarding = m.buildOnboarding()
	m.settings = v.NewSettingsView(m.closeSettings)
	m.root = container.NewStack()

	if v.store.Onboarded() {
		m.ShowTimer()
	} else {
		m.show(m.onboarding)
	}

	m.refreshSettings(v.store.Get())
	v.store.OnChange(func(_, next settings.Settings) { m.refreshSettings(next) })
	m.Refresh(v.timer.Snapshot())
	return m
}

// Content returns the root object for the main window
func (m *MainView) Content() fyne.CanvasObject {
	return m.root
}

// Refresh redraws the countdown for snap. Must run on the UI thread.
func (m *MainView) Refresh(snap timer.Snapshot) {
	m.countdown.Text = timefmt.Countdown(snap.Remaining)
	if snap.Status == timer.StatusRunning {
		m.countdown.Color = theme.Color(theme.ColorNamePrimary)
	} else {
		m.countdown.Color = theme.Color(theme.ColorNameForeground)
	}
	m.countdown.Refresh()

	m.status.SetText(StatusLabel(snap.Status))

	if snap.Status == timer.StatusRunning {
		m.start.Hide()
		m.pause.Show()
	} else {
		m.pause.Hide()
		m.start.Show()
	}
}

// ShowTimer switches to the timer page
func (m *MainView) ShowTimer() {
	m.show(m.timerPage)
}

// ShowSettings switches to the settings page
func (m *MainView) ShowSettings() {
	m.settings.Sync()
	m.show(m.settings.Content())
}

func (m *MainView) closeSettings() {
	if m.views.store.Onboarded() {
		m.ShowTimer()
		return
	}
	m.show(m.onboarding)
}

func (m *MainView) show(page fyne.CanvasObject) {
	m.root.Objects = []fyne.CanvasObject{page}
	m.root.Refresh()
}

func (m *MainView) buildTimerPage() fyne.CanvasObject {
	m.countdown = canvas.NewText("00:00", theme.Color(theme.ColorNameForeground))
	m.countdown.TextSize = 56
	m.countdown.TextStyle = fyne.TextStyle{Monospace: true, Bold: true}
	m.countdown.Alignment = fyne.TextAlignCenter

	m.status = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	m.start = widget.NewButtonWithIcon("Başlat", theme.MediaPlayIcon(), m.onStart)
	m.start.Importance = widget.HighImportance
	m.pause = widget.NewButtonWithIcon("Duraklat", theme.MediaPauseIcon(), m.onPause)
	m.pause.Importance = widget.WarningImportance
	m.reset = widget.NewButtonWithIcon("Sıfırla", theme.MediaReplayIcon(), m.onReset)

	m.summary = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})

	header := container.NewBorder(nil, nil,
		widget.NewLabelWithStyle(m.views.opts.AppName, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewButtonWithIcon("", theme.SettingsIcon(), m.ShowSettings),
	)

	body := container.NewVBox(
		layout.NewSpacer(),
		widget.NewIcon(theme.HistoryIcon()),
		m.countdown,
		m.status,
		container.NewCenter(container.NewHBox(m.start, m.pause, m.reset)),
		m.summary,
		layout.NewSpacer(),
	)

	return container.NewBorder(container.NewVBox(header, widget.NewSeparator()), nil, nil, nil, body)
}

func (m *MainView) buildOnboarding() fyne.CanvasObject {
	var intervalRow, modeRow, autostartRow fyne.CanvasObject
	intervalRow, m.introInterval = row("Hatırlatma Süresi", "")
	modeRow, m.introMode = row("Bildirim Modu", "")
	autostartRow, m.introAutostart = row("Otomatik Başlat", "")

	m.introStart = widget.NewButtonWithIcon("Başlat", theme.MediaPlayIcon(), m.onOnboarded)
	m.introStart.Importance = widget.HighImportance
	edit := widget.NewButtonWithIcon("Ayarları Düzenle", theme.SettingsIcon(), m.ShowSettings)

	card := widget.NewCard("", "", container.NewVBox(intervalRow, modeRow, autostartRow))

	return container.NewPadded(container.NewVBox(
		layout.NewSpacer(),
		container.NewCenter(widget.NewIcon(Icon())),
		heading(m.views.opts.AppName),
		widget.NewLabelWithStyle("Mola hatırlatıcınız hazır", fyne.TextAlignCenter, fyne.TextStyle{}),
		card,
		m.introStart,
		edit,
		layout.NewSpacer(),
	))
}

func (m *MainView) refreshSettings(s settings.Settings) {
	m.summary.SetText(Summary(s))
	m.introInterval.SetText(timefmt.Minutes(s.IntervalMinutes))
	if s.Mode == settings.ModeAuto {
		m.introMode.SetText("Otomatik")
	} else {
		m.introMode.SetText("Manuel")
	}
	m.introAutostart.SetText(onOff(s.Autostart))
}

func (m *MainView) onOnboarded() {
	if err := m.views.store.MarkOnboarded(); err != nil {
		m.views.logger.Warn("Failed to save onboarding state", zap.Error(err))
	}
	m.views.timer.Start()
	m.ShowTimer()
	m.Refresh(m.views.timer.Snapshot())
}

func (m *MainView) onStart() {
	if m.views.timer.Snapshot().Status == timer.StatusExpired {
		m.views.timer.ResetAndStart()
	} else {
		m.views.timer.Start()
	}
	m.Refresh(m.views.timer.Snapshot())
}

func (m *MainView) onPause() {
	m.views.timer.Pause()
	m.Refresh(m.views.timer.Snapshot())
}

func (m *MainView) onReset() {
	m.views.timer.Reset()
	m.Refresh(m.views.timer.Snapshot())
}

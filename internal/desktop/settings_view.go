package desktop

import (
	"errors"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/username/reminder/internal/settings"
	"github.com/username/reminder/pkg/timefmt"
	"go.uber.org/zap"
)

const (
	minCustomInterval = 1
	maxCustomInterval = 999
)

var themeOptions = []struct {
	theme settings.Theme
	label string
}{
	{settings.ThemeLight, "Açık"},
	{settings.ThemeDark, "Koyu"},
	{settings.ThemeSystem, "Sistem"},
}

// SettingsView edits the user settings. Every change is saved immediately.
type SettingsView struct {
	views   *Views
	content fyne.CanvasObject
	onBack  func()

	interval  *widget.RadioGroup
	custom    *widget.Entry
	mode      *widget.RadioGroup
	theme     *widget.RadioGroup
	dnd       *widget.Check
	sound     *widget.Check
	onTop     *widget.Check
	autostart *widget.Check
	save      *widget.Button

	// syncing suppresses change handlers while widgets are loaded from the store
	syncing bool
}

// NewSettingsView builds the settings page; onBack leaves it
func (v *Views) NewSettingsView(onBack func()) *SettingsView {
	sv := &SettingsView{views: v, onBack: onBack}

	intervals := make([]string, len(settings.Intervals))
	for i, m := range settings.Intervals {
		intervals[i] = timefmt.Minutes(m)
	}
	sv.interval = widget.NewRadioGroup(intervals, sv.onInterval)
	sv.interval.Horizontal = true
	sv.interval.Required = true

	sv.custom = widget.NewEntry()
	sv.custom.SetPlaceHolder("dk")
	sv.custom.Validator = validateInterval
	sv.custom.OnSubmitted = sv.onCustomInterval

	sv.mode = widget.NewRadioGroup([]string{ModeLabel(settings.ModeConfirm), ModeLabel(settings.ModeAuto)}, sv.onMode)
	sv.mode.Required = true

	themes := make([]string, len(themeOptions))
	for i, o := range themeOptions {
		themes[i] = o.label
	}
	sv.theme = widget.NewRadioGroup(themes, sv.onTheme)
	sv.theme.Horizontal = true
	sv.theme.Required = true

	sv.dnd = widget.NewCheck("Rahatsız Etmeyin (DND)", func(on bool) { sv.update(settings.Patch{DND: &on}) })
	sv.sound = widget.NewCheck("Bildirim Sesi", func(on bool) { sv.update(settings.Patch{SoundEnabled: &on}) })
	sv.onTop = widget.NewCheck("Her Zaman Üstte", func(on bool) { sv.update(settings.Patch{AlwaysOnTop: &on}) })
	sv.autostart = widget.NewCheck("Bilgisayar açılınca başlat", func(on bool) { sv.update(settings.Patch{Autostart: &on}) })

	sv.save = widget.NewButtonWithIcon("Kaydet", theme.DocumentSaveIcon(), sv.onSave)
	sv.save.Importance = widget.HighImportance

	header := container.NewBorder(nil, nil,
		widget.NewButtonWithIcon("", theme.NavigateBackIcon(), sv.back),
		nil,
		widget.NewLabelWithStyle("Ayarlar", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)

	form := container.NewVBox(
		sectionTitle("Hatırlatma Süresi"),
		sv.interval,
		container.NewBorder(nil, nil, widget.NewLabel("Özel Süre"), nil, sv.custom),
		widget.NewSeparator(),
		sectionTitle("Bildirim Modu"),
		sv.mode,
		widget.NewLabelWithStyle("Manuel: süre dolunca bekler. Otomatik: kendiliğinden yeniden başlar.",
			fyne.TextAlignLeading, fyne.TextStyle{Italic: true}),
		widget.NewSeparator(),
		sectionTitle("Tema"),
		sv.theme,
		widget.NewSeparator(),
		sv.dnd,
		sv.sound,
		sv.onTop,
		sv.autostart,
	)

	sv.content = container.NewBorder(
		container.NewVBox(header, widget.NewSeparator()),
		container.NewPadded(sv.save),
		nil, nil,
		container.NewVScroll(container.NewPadded(form)),
	)
	sv.load(v.store.Get())
	return sv
}

// Content returns the page
func (sv *SettingsView) Content() fyne.CanvasObject {
	return sv.content
}

// Sync reloads the widgets from the store and reconciles the autostart
// setting with the login item actually registered
func (sv *SettingsView) Sync() {
	s := sv.views.store.Get()

	enabled, err := sv.views.commands.IsAutostartEnabled()
	if err != nil {
		sv.views.logger.Debug("Failed to read autostart state", zap.Error(err))
	} else if enabled != s.Autostart {
		sv.views.logger.Info("Autostart setting out of sync with system, updating",
			zap.Bool("setting", s.Autostart),
			zap.Bool("system", enabled))
		if s, err = sv.views.store.Update(settings.Patch{Autostart: &enabled}); err != nil {
			sv.views.logger.Warn("Failed to save autostart setting", zap.Error(err))
		}
	}

	sv.load(s)
}

func (sv *SettingsView) load(s settings.Settings) {
	sv.syncing = true
	defer func() { sv.syncing = false }()

	sv.interval.SetSelected("")
	for _, m := range settings.Intervals {
		if m == s.IntervalMinutes {
			sv.interval.SetSelected(timefmt.Minutes(m))
		}
	}
	sv.custom.SetText(strconv.Itoa(s.IntervalMinutes))
	sv.mode.SetSelected(ModeLabel(s.Mode))
	for _, o := range themeOptions {
		if o.theme == s.Theme {
			sv.theme.SetSelected(o.label)
		}
	}
	sv.dnd.SetChecked(s.DND)
	sv.sound.SetChecked(s.SoundEnabled)
	sv.onTop.SetChecked(s.AlwaysOnTop)
	sv.autostart.SetChecked(s.Autostart)
}

func (sv *SettingsView) update(p settings.Patch) {
	if sv.syncing {
		return
	}
	s, err := sv.views.store.Update(p)
	if err != nil {
		sv.views.logger.Warn("Failed to save settings", zap.Error(err))
	}
	sv.load(s)
}

func (sv *SettingsView) onInterval(selected string) {
	for _, m := range settings.Intervals {
		if timefmt.Minutes(m) == selected {
			m := m
			sv.update(settings.Patch{IntervalMinutes: &m})
			return
		}
	}
}

func (sv *SettingsView) onCustomInterval(text string) {
	if validateInterval(text) != nil {
		return
	}
	m, _ := strconv.Atoi(text)
	sv.update(settings.Patch{IntervalMinutes: &m})
}

func (sv *SettingsView) onMode(selected string) {
	mode := settings.ModeConfirm
	if selected == ModeLabel(settings.ModeAuto) {
		mode = settings.ModeAuto
	}
	sv.update(settings.Patch{Mode: &mode})
}

func (sv *SettingsView) onTheme(selected string) {
	for _, o := range themeOptions {
		if o.label == selected {
			t := o.theme
			sv.update(settings.Patch{Theme: &t})
			return
		}
	}
}

func (sv *SettingsView) onSave() {
	sv.save.SetText("Kaydedildi")
	sv.save.SetIcon(theme.ConfirmIcon())
	time.AfterFunc(2*time.Second, func() {
		fyne.Do(func() {
			sv.save.SetText("Kaydet")
			sv.save.SetIcon(theme.DocumentSaveIcon())
		})
	})
}

func (sv *SettingsView) back() {
	if sv.onBack != nil {
		sv.onBack()
	}
}

func validateInterval(text string) error {
	m, err := strconv.Atoi(text)
	if err != nil {
		return errors.New("geçerli bir sayı girin")
	}
	if m < minCustomInterval || m > maxCustomInterval {
		return errors.New("1 ile 999 dakika arasında olmalı")
	}
	return nil
}

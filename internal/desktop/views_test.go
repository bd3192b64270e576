package desktop

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/username/reminder/internal/settings"
	"github.com/username/reminder/internal/timer"
	"go.uber.org/zap"
)

type fakeCommands struct {
	closed    int
	autostart bool
	err       error
}

func (c *fakeCommands) ClosePopupWindow() error {
	c.closed++
	return nil
}

func (c *fakeCommands) IsAutostartEnabled() (bool, error) {
	return c.autostart, c.err
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testViews struct {
	*Views
	commands *fakeCommands
	clock    *testClock
}

func newTestViews(t *testing.T) *testViews {
	t.Helper()

	a := test.NewTempApp(t)
	store := settings.NewStore(filepath.Join(t.TempDir(), "settings.json"), zap.NewNop())
	if _, err := store.Load(); err != nil {
		t.Fatal(err)
	}

	clock := &testClock{now: time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)}
	tm := timer.NewWithClock(time.Hour, clock.Now)
	cmds := &fakeCommands{autostart: true}

	v := NewViews(a, tm, store, cmds, ViewOptions{AutoClose: 3 * time.Second}, zap.NewNop())
	return &testViews{Views: v, commands: cmds, clock: clock}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		status timer.Status
		want   string
	}{
		{timer.StatusIdle, "Hazır"},
		{timer.StatusRunning, "Çalışıyor"},
		{timer.StatusPaused, "Duraklatıldı"},
		{timer.StatusExpired, "Süre Doldu"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := StatusLabel(tt.status); got != tt.want {
				t.Errorf("StatusLabel(%s) = %q, want %q", tt.status, got, tt.want)
			}
		})
	}
}

func TestSummary(t *testing.T) {
	s := settings.Defaults()
	if got := Summary(s); got != "60 dk  |  Manuel Onay" {
		t.Errorf("Summary() = %q", got)
	}

	s.IntervalMinutes = 90
	s.Mode = settings.ModeAuto
	s.DND = true
	if got := Summary(s); got != "90 dk  |  Otomatik  |  DND Aktif" {
		t.Errorf("Summary() = %q", got)
	}
}

func TestPopupView_ConfirmOkPauses(t *testing.T) {
	v := newTestViews(t)
	v.timer.Start()

	p := v.NewPopupView(nil)
	if p.ok == nil || p.restart == nil || p.dismiss != nil {
		t.Fatal("confirm mode popup has the wrong buttons")
	}

	test.Tap(p.ok)
	if got := v.timer.Snapshot().Status; got != timer.StatusPaused {
		t.Errorf("timer status = %v, want paused", got)
	}
	if v.commands.closed != 1 {
		t.Errorf("close requests = %d, want 1", v.commands.closed)
	}

	test.Tap(p.restart)
	if v.commands.closed != 1 {
		t.Errorf("closed popup handled a second action")
	}
}

func TestPopupView_ConfirmRestart(t *testing.T) {
	v := newTestViews(t)
	v.timer.Start()
	v.clock.Advance(time.Hour)
	v.timer.Tick()

	p := v.NewPopupView(nil)
	test.Tap(p.restart)

	snap := v.timer.Snapshot()
	if snap.Status != timer.StatusRunning || snap.Remaining != time.Hour {
		t.Errorf("timer = %+v, want a fresh running interval", snap)
	}
	if v.commands.closed != 1 {
		t.Errorf("close requests = %d, want 1", v.commands.closed)
	}
}

func TestPopupView_AutoCountdownRestarts(t *testing.T) {
	v := newTestViews(t)
	auto := settings.ModeAuto
	if _, err := v.store.Update(settings.Patch{Mode: &auto}); err != nil {
		t.Fatal(err)
	}

	p := v.NewPopupView(nil)
	p.stopCountdown()

	if p.Remaining() != 3 {
		t.Fatalf("Remaining() = %d, want 3", p.Remaining())
	}
	p.Tick()
	p.Tick()
	if p.countdown.Text != "1" {
		t.Errorf("countdown = %q, want 1", p.countdown.Text)
	}
	if v.commands.closed != 0 {
		t.Fatal("popup closed before countdown finished")
	}

	p.Tick()
	if v.commands.closed != 1 {
		t.Fatalf("close requests = %d, want 1", v.commands.closed)
	}
	if got := v.timer.Snapshot().Status; got != timer.StatusRunning {
		t.Errorf("timer status = %v, want running", got)
	}

	p.Tick()
	if v.commands.closed != 1 {
		t.Error("countdown continued after the popup closed")
	}
}

func TestPopupView_AutoDismissLeavesTimer(t *testing.T) {
	v := newTestViews(t)
	auto := settings.ModeAuto
	if _, err := v.store.Update(settings.Patch{Mode: &auto}); err != nil {
		t.Fatal(err)
	}

	p := v.NewPopupView(nil)
	test.Tap(p.dismiss)

	if got := v.timer.Snapshot().Status; got != timer.StatusIdle {
		t.Errorf("timer status = %v, want idle", got)
	}
	if v.commands.closed != 1 {
		t.Errorf("close requests = %d, want 1", v.commands.closed)
	}
}

func TestMainView_Onboarding(t *testing.T) {
	v := newTestViews(t)
	m := v.NewMainView()

	if m.root.Objects[0] != m.onboarding {
		t.Fatal("first run does not show onboarding")
	}
	if m.introAutostart.Text != "Aktif" || m.introInterval.Text != "60 dk" {
		t.Errorf("onboarding summary = %q, %q", m.introInterval.Text, m.introAutostart.Text)
	}

	test.Tap(m.introStart)

	if !v.store.Onboarded() {
		t.Error("onboarding not recorded")
	}
	if m.root.Objects[0] != m.timerPage {
		t.Error("timer page not shown after onboarding")
	}
	if got := v.timer.Snapshot().Status; got != timer.StatusRunning {
		t.Errorf("timer status = %v, want running", got)
	}
	if m.pause.Hidden || !m.start.Hidden {
		t.Error("running timer should show only the pause button")
	}
}

func TestMainView_Controls(t *testing.T) {
	v := newTestViews(t)
	if err := v.store.MarkOnboarded(); err != nil {
		t.Fatal(err)
	}
	m := v.NewMainView()
	if m.root.Objects[0] != m.timerPage {
		t.Fatal("onboarded user does not land on the timer page")
	}
	if m.countdown.Text != "60:00" || m.status.Text != "Hazır" {
		t.Errorf("idle view = %q %q", m.countdown.Text, m.status.Text)
	}

	test.Tap(m.start)
	v.clock.Advance(90 * time.Second)
	m.Refresh(v.timer.Snapshot())
	if m.countdown.Text != "58:30" || m.status.Text != "Çalışıyor" {
		t.Errorf("running view = %q %q", m.countdown.Text, m.status.Text)
	}

	test.Tap(m.pause)
	if m.status.Text != "Duraklatıldı" || m.start.Hidden {
		t.Errorf("paused view = %q, start hidden = %v", m.status.Text, m.start.Hidden)
	}

	test.Tap(m.reset)
	if m.countdown.Text != "60:00" || m.status.Text != "Hazır" {
		t.Errorf("reset view = %q %q", m.countdown.Text, m.status.Text)
	}
}

func TestMainView_StartAfterExpiryRestarts(t *testing.T) {
	v := newTestViews(t)
	m := v.NewMainView()

	v.timer.Start()
	v.clock.Advance(time.Hour)
	v.timer.Tick()
	m.Refresh(v.timer.Snapshot())
	if m.status.Text != "Süre Doldu" {
		t.Fatalf("status = %q, want Süre Doldu", m.status.Text)
	}

	test.Tap(m.start)
	snap := v.timer.Snapshot()
	if snap.Status != timer.StatusRunning || snap.Remaining != time.Hour {
		t.Errorf("timer = %+v, want a fresh running interval", snap)
	}
}

func TestMainView_SummaryFollowsSettings(t *testing.T) {
	v := newTestViews(t)
	m := v.NewMainView()

	dnd := true
	if _, err := v.store.Update(settings.Patch{DND: &dnd}); err != nil {
		t.Fatal(err)
	}
	if m.summary.Text != "60 dk  |  Manuel Onay  |  DND Aktif" {
		t.Errorf("summary = %q", m.summary.Text)
	}
}

func TestMainView_SettingsBackReturnsToOnboarding(t *testing.T) {
	v := newTestViews(t)
	m := v.NewMainView()

	m.ShowSettings()
	if m.root.Objects[0] != m.settings.Content() {
		t.Fatal("settings page not shown")
	}
	m.settings.back()
	if m.root.Objects[0] != m.onboarding {
		t.Error("leaving settings before onboarding did not return to onboarding")
	}
}

func TestSettingsView_SyncsAutostartFromSystem(t *testing.T) {
	v := newTestViews(t)
	v.commands.autostart = false

	sv := v.NewSettingsView(nil)
	if !sv.autostart.Checked {
		t.Fatal("autostart check should start from the stored setting")
	}

	sv.Sync()
	if v.store.Get().Autostart {
		t.Error("stored autostart not updated from the system state")
	}
	if sv.autostart.Checked {
		t.Error("autostart check not updated from the system state")
	}
}

func TestSettingsView_Updates(t *testing.T) {
	v := newTestViews(t)
	sv := v.NewSettingsView(nil)

	sv.interval.SetSelected("90 dk")
	if got := v.store.Get().IntervalMinutes; got != 90 {
		t.Errorf("interval = %d, want 90", got)
	}

	sv.onCustomInterval("45")
	if got := v.store.Get().IntervalMinutes; got != 45 {
		t.Errorf("interval = %d, want 45", got)
	}
	if sv.interval.Selected != "" {
		t.Errorf("preset %q still selected for a custom interval", sv.interval.Selected)
	}

	sv.onCustomInterval("0")
	sv.onCustomInterval("abc")
	if got := v.store.Get().IntervalMinutes; got != 45 {
		t.Errorf("invalid custom interval applied: %d", got)
	}

	sv.mode.SetSelected("Otomatik")
	if got := v.store.Get().Mode; got != settings.ModeAuto {
		t.Errorf("mode = %v, want auto", got)
	}

	sv.theme.SetSelected("Koyu")
	if got := v.store.Get().Theme; got != settings.ThemeDark {
		t.Errorf("theme = %v, want dark", got)
	}

	test.Tap(sv.dnd)
	if !v.store.Get().DND {
		t.Error("DND not enabled")
	}
}

func TestSettingsView_RejectedAlwaysOnTopUnchecks(t *testing.T) {
	v := newTestViews(t)
	sv := v.NewSettingsView(nil)

	// stands in for the reminder loop rolling back a setting the OS refused
	v.store.OnChange(func(prev, next settings.Settings) {
		if next.AlwaysOnTop && !prev.AlwaysOnTop {
			off := false
			if _, err := v.store.Update(settings.Patch{AlwaysOnTop: &off}); err != nil {
				t.Errorf("revert error = %v", err)
			}
		}
	})

	test.Tap(sv.onTop)

	if sv.onTop.Checked {
		t.Error("always-on-top box checked after the change was rejected")
	}
	if v.store.Get().AlwaysOnTop {
		t.Error("rejected always-on-top value kept in settings")
	}
}

func TestValidateInterval(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"1", false},
		{"60", false},
		{"999", false},
		{"0", true},
		{"1000", true},
		{"", true},
		{"ten", true},
	}

	for _, tt := range tests {
		if err := validateInterval(tt.in); (err != nil) != tt.wantErr {
			t.Errorf("validateInterval(%q) = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

package shell

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *fakeHost, *fakeAutostart) {
	t.Helper()
	host := newFakeHost()
	reg := NewRegistry()
	reg.Put(host.main)
	auto := &fakeAutostart{}
	c := NewCommands(host, reg, auto, &fakeSound{}, zap.NewNop())
	return NewDispatcher(c, zap.NewNop()), host, auto
}

func TestDispatcher_Names(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	want := []string{
		CmdClosePopupWindow,
		CmdGreet,
		CmdIsAutostartEnabled,
		CmdPlayNotificationSound,
		CmdRequestAttention,
		CmdSetAlwaysOnTop,
		CmdSetAutostart,
		CmdShowPopupWindow,
	}
	got := d.Names()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestDispatcher_Invoke(t *testing.T) {
	tests := []struct {
		name      string
		command   string
		args      string
		wantValue string
		wantError string
	}{
		{
			name:      "greet",
			command:   CmdGreet,
			args:      `{"name":"Deniz"}`,
			wantValue: `"Hello, Deniz! You've been greeted from Go!"`,
		},
		{
			name:      "greet without name",
			command:   CmdGreet,
			wantError: "missing required key name",
		},
		{
			name:    "set always on top",
			command: CmdSetAlwaysOnTop,
			args:    `{"alwaysOnTop":true}`,
		},
		{
			name:      "set always on top wrong type",
			command:   CmdSetAlwaysOnTop,
			args:      `{"alwaysOnTop":"yes"}`,
			wantError: "invalid arguments",
		},
		{
			name:    "close popup when absent",
			command: CmdClosePopupWindow,
		},
		{
			name:    "play sound on unsupported platform",
			command: CmdPlayNotificationSound,
		},
		{
			name:      "is autostart enabled",
			command:   CmdIsAutostartEnabled,
			wantValue: `false`,
		},
		{
			name:      "unknown command",
			command:   "format_disk",
			wantError: "unknown command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _, _ := newTestDispatcher(t)

			var args json.RawMessage
			if tt.args != "" {
				args = json.RawMessage(tt.args)
			}
			resp := d.Invoke(tt.command, args)

			if tt.wantError != "" {
				if resp.OK() || !strings.Contains(resp.Error, tt.wantError) {
					t.Fatalf("Invoke() error = %q, want %q", resp.Error, tt.wantError)
				}
				return
			}
			if !resp.OK() {
				t.Fatalf("Invoke() error = %q", resp.Error)
			}
			if string(resp.Value) != tt.wantValue {
				t.Errorf("Invoke() value = %s, want %s", resp.Value, tt.wantValue)
			}
		})
	}
}

func TestDispatcher_ErrorsBecomeStrings(t *testing.T) {
	d, host, auto := newTestDispatcher(t)
	host.main.failWith = errors.New("window backend gone")
	auto.err = errors.New("registry locked")

	resp := d.Invoke(CmdSetAlwaysOnTop, json.RawMessage(`{"alwaysOnTop":false}`))
	if resp.Error != "window backend gone" {
		t.Errorf("set_always_on_top error = %q", resp.Error)
	}

	resp = d.Invoke(CmdSetAutostart, json.RawMessage(`{"enabled":true}`))
	if resp.Error != "registry locked" {
		t.Errorf("set_autostart error = %q", resp.Error)
	}
}

func TestDispatcher_RecoversPanics(t *testing.T) {
	host := newFakeHost()
	host.createFn = func(WindowSpec) (Window, error) { panic("driver exploded") }
	c := NewCommands(host, NewRegistry(), nil, nil, zap.NewNop())
	d := NewDispatcher(c, zap.NewNop())

	resp := d.Invoke(CmdShowPopupWindow, nil)
	if resp.OK() || !strings.Contains(resp.Error, "driver exploded") {
		t.Fatalf("Invoke() = %+v, want recovered panic message", resp)
	}
}

func TestClient_AutostartRoundTrip(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	client := NewClient(d, zap.NewNop())

	if err := client.SetAutostart(true); err != nil {
		t.Fatalf("SetAutostart() error = %v", err)
	}
	enabled, err := client.IsAutostartEnabled()
	if err != nil {
		t.Fatalf("IsAutostartEnabled() error = %v", err)
	}
	if !enabled {
		t.Error("IsAutostartEnabled() = false after enabling")
	}
}

func TestClient_ReportsCommandError(t *testing.T) {
	d, host, _ := newTestDispatcher(t)
	host.main.failWith = errBoom
	client := NewClient(d, zap.NewNop())

	err := client.RequestAttention()
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("RequestAttention() error = %v, want *CommandError", err)
	}
	if cmdErr.Command != CmdRequestAttention || cmdErr.Message != "boom" {
		t.Errorf("CommandError = %+v", cmdErr)
	}
}

func TestClient_Greet(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	client := NewClient(d, zap.NewNop())

	got, err := client.Greet("Ece")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Hello, Ece! You've been greeted from Go!" {
		t.Errorf("Greet() = %q", got)
	}
}

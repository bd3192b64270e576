package shell

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// Operation names exposed to the UI layer
const (
	CmdGreet                 = "greet"
	CmdSetAlwaysOnTop        = "set_always_on_top"
	CmdShowPopupWindow       = "show_popup_window"
	CmdClosePopupWindow      = "close_popup_window"
	CmdRequestAttention      = "request_attention"
	CmdPlayNotificationSound = "play_notification_sound"
	CmdSetAutostart          = "set_autostart"
	CmdIsAutostartEnabled    = "is_autostart_enabled"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArguments   = errors.New("invalid arguments")
)

// Response is the result of an invocation: a JSON value or an error message
type Response struct {
	Value json.RawMessage `json:"value,omitempty"`
	Error string          `json:"error,omitempty"`
}

// OK reports whether the invocation succeeded
func (r Response) OK() bool {
	return r.Error == ""
}

// Decode unmarshals the value into v
func (r Response) Decode(v any) error {
	if !r.OK() {
		return errors.New(r.Error)
	}
	if len(r.Value) == 0 {
		return nil
	}
	return json.Unmarshal(r.Value, v)
}

// Invoker runs named operations
type Invoker interface {
	Invoke(name string, args json.RawMessage) Response
}

type handlerFunc func(args json.RawMessage) (any, error)

// Dispatcher routes named operations to Commands and turns every failure,
// panics included, into an error string.
type Dispatcher struct {
	handlers map[string]handlerFunc
	logger   *zap.Logger
}

// NewDispatcher registers the fixed operation set backed by c
func NewDispatcher(c *Commands, logger *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[string]handlerFunc),
		logger:   logger,
	}

	d.handlers[CmdGreet] = func(args json.RawMessage) (any, error) {
		var in struct {
			Name *string `json:"name"`
		}
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		if in.Name == nil {
			return nil, missingArg("name")
		}
		return c.Greet(*in.Name), nil
	}

	d.handlers[CmdSetAlwaysOnTop] = func(args json.RawMessage) (any, error) {
		var in struct {
			AlwaysOnTop *bool `json:"alwaysOnTop"`
		}
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		if in.AlwaysOnTop == nil {
			return nil, missingArg("alwaysOnTop")
		}
		return nil, c.SetAlwaysOnTop(*in.AlwaysOnTop)
	}

	d.handlers[CmdShowPopupWindow] = func(json.RawMessage) (any, error) {
		return nil, c.ShowPopupWindow()
	}

	d.handlers[CmdClosePopupWindow] = func(json.RawMessage) (any, error) {
		return nil, c.ClosePopupWindow()
	}

	d.handlers[CmdRequestAttention] = func(json.RawMessage) (any, error) {
		return nil, c.RequestAttention()
	}

	d.handlers[CmdPlayNotificationSound] = func(json.RawMessage) (any, error) {
		c.PlayNotificationSound()
		return nil, nil
	}

	d.handlers[CmdSetAutostart] = func(args json.RawMessage) (any, error) {
		var in struct {
			Enabled *bool `json:"enabled"`
		}
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		if in.Enabled == nil {
			return nil, missingArg("enabled")
		}
		return nil, c.SetAutostart(*in.Enabled)
	}

	d.handlers[CmdIsAutostartEnabled] = func(json.RawMessage) (any, error) {
		return c.IsAutostartEnabled()
	}

	return d
}

// Invoke runs the named operation. It never panics.
func (d *Dispatcher) Invoke(name string, args json.RawMessage) (resp Response) {
	h, ok := d.handlers[name]
	if !ok {
		return Response{Error: fmt.Sprintf("%v: %s", ErrUnknownCommand, name)}
	}

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Command panicked",
				zap.String("command", name),
				zap.Any("panic", r))
			resp = Response{Error: fmt.Sprintf("%s: internal error: %v", name, r)}
		}
	}()

	value, err := h(args)
	if err != nil {
		d.logger.Warn("Command failed",
			zap.String("command", name),
			zap.Error(err))
		return Response{Error: err.Error()}
	}

	if value == nil {
		return Response{}
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return Response{Error: fmt.Sprintf("%s: failed to encode result: %v", name, err)}
	}
	return Response{Value: raw}
}

// Names returns the registered operation names, sorted
func (d *Dispatcher) Names() []string {
	names := make([]string, 0, len(d.handlers))
	for n := range d.handlers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func decodeArgs(args json.RawMessage, v any) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadArguments, err)
	}
	return nil
}

func missingArg(name string) error {
	return fmt.Errorf("%w: missing required key %s", ErrBadArguments, name)
}

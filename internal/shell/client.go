package shell

import (
	"encoding/json"

	"go.uber.org/zap"
)

// CommandError is a failed invocation as the UI layer sees it: a name and a message
type CommandError struct {
	Command string
	Message string
}

func (e *CommandError) Error() string {
	return e.Command + ": " + e.Message
}

// Client is the UI-side binding to the named operations. Every call goes
// through an Invoker so the UI never touches Commands directly.
type Client struct {
	invoker Invoker
	logger  *zap.Logger
}

// NewClient creates a client over invoker
func NewClient(invoker Invoker, logger *zap.Logger) *Client {
	return &Client{invoker: invoker, logger: logger}
}

// Greet returns the greeting for name
func (c *Client) Greet(name string) (string, error) {
	var out string
	err := c.call(CmdGreet, map[string]any{"name": name}, &out)
	return out, err
}

// SetAlwaysOnTop sets the main window always-on-top flag
func (c *Client) SetAlwaysOnTop(alwaysOnTop bool) error {
	return c.call(CmdSetAlwaysOnTop, map[string]any{"alwaysOnTop": alwaysOnTop}, nil)
}

// ShowPopupWindow opens or refocuses the break popup
func (c *Client) ShowPopupWindow() error {
	return c.call(CmdShowPopupWindow, nil, nil)
}

// ClosePopupWindow closes the break popup
func (c *Client) ClosePopupWindow() error {
	return c.call(CmdClosePopupWindow, nil, nil)
}

// RequestAttention flashes the main window
func (c *Client) RequestAttention() error {
	return c.call(CmdRequestAttention, nil, nil)
}

// PlayNotificationSound fires the platform notification sound
func (c *Client) PlayNotificationSound() error {
	return c.call(CmdPlayNotificationSound, nil, nil)
}

// SetAutostart registers or unregisters the login item
func (c *Client) SetAutostart(enabled bool) error {
	return c.call(CmdSetAutostart, map[string]any{"enabled": enabled}, nil)
}

// IsAutostartEnabled reports the login item state
func (c *Client) IsAutostartEnabled() (bool, error) {
	var out bool
	err := c.call(CmdIsAutostartEnabled, nil, &out)
	return out, err
}

func (c *Client) call(name string, args map[string]any, out any) error {
	var raw json.RawMessage
	if args != nil {
		data, err := json.Marshal(args)
		if err != nil {
			return &CommandError{Command: name, Message: err.Error()}
		}
		raw = data
	}

	resp := c.invoker.Invoke(name, raw)
	if !resp.OK() {
		c.logger.Error("Command failed",
			zap.String("command", name),
			zap.String("error", resp.Error))
		return &CommandError{Command: name, Message: resp.Error}
	}
	if out == nil {
		return nil
	}
	if err := resp.Decode(out); err != nil {
		return &CommandError{Command: name, Message: err.Error()}
	}
	return nil
}

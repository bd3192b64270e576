//go:build linux

package platform

import (
	"fmt"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// _NET_WM_STATE actions
const (
	netWMStateRemove = 0
	netWMStateAdd    = 1
)

// sourceApplication marks EWMH requests as coming from a normal application
const sourceApplication = 1

// display is a shared connection to the X server. The window manager acts
// on client messages sent to the root window, so it need not be the
// connection that created the window.
var display struct {
	once sync.Once
	conn *xgb.Conn
	root xproto.Window
	err  error

	mu    sync.Mutex
	atoms map[string]xproto.Atom
}

// NativeWindowOps reports whether SetTopmost, FlashWindow and Restore are implemented
func NativeWindowOps() bool { return true }

// SetTopmost adds or removes _NET_WM_STATE_ABOVE on the X11 window xid
func SetTopmost(xid uintptr, on bool) error {
	if xid == 0 {
		return ErrNoWindow
	}
	action := uint32(netWMStateRemove)
	if on {
		action = netWMStateAdd
	}
	if err := setWMState(xid, action, "_NET_WM_STATE_ABOVE"); err != nil {
		return fmt.Errorf("_NET_WM_STATE_ABOVE: %w", err)
	}
	return nil
}

// FlashWindow sets _NET_WM_STATE_DEMANDS_ATTENTION. The window manager
// clears it once the window is focused.
func FlashWindow(xid uintptr) error {
	if xid == 0 {
		return ErrNoWindow
	}
	if err := setWMState(xid, netWMStateAdd, "_NET_WM_STATE_DEMANDS_ATTENTION"); err != nil {
		return fmt.Errorf("_NET_WM_STATE_DEMANDS_ATTENTION: %w", err)
	}
	return nil
}

// Restore asks the window manager to activate xid, which de-iconifies it
func Restore(xid uintptr) error {
	if xid == 0 {
		return ErrNoWindow
	}
	if err := clientMessage(xid, "_NET_ACTIVE_WINDOW", sourceApplication); err != nil {
		return fmt.Errorf("_NET_ACTIVE_WINDOW: %w", err)
	}
	return nil
}

func setWMState(xid uintptr, action uint32, state string) error {
	conn, _, err := connect()
	if err != nil {
		return err
	}
	atom, err := internAtom(conn, state)
	if err != nil {
		return err
	}
	return clientMessage(xid, "_NET_WM_STATE", action, uint32(atom), 0, sourceApplication)
}

// clientMessage sends an EWMH request about xid to the root window
func clientMessage(xid uintptr, msgType string, data ...uint32) error {
	conn, root, err := connect()
	if err != nil {
		return err
	}
	typ, err := internAtom(conn, msgType)
	if err != nil {
		return err
	}

	payload := make([]uint32, 5)
	copy(payload, data)
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: xproto.Window(xid),
		Type:   typ,
		Data:   xproto.ClientMessageDataUnionData32New(payload),
	}
	mask := uint32(xproto.EventMaskSubstructureNotify | xproto.EventMaskSubstructureRedirect)
	return xproto.SendEventChecked(conn, false, root, mask, string(ev.Bytes())).Check()
}

func connect() (*xgb.Conn, xproto.Window, error) {
	display.once.Do(func() {
		conn, err := xgb.NewConn()
		if err != nil {
			display.err = fmt.Errorf("failed to connect to X server: %w", err)
			return
		}
		display.conn = conn
		display.root = xproto.Setup(conn).DefaultScreen(conn).Root
		display.atoms = make(map[string]xproto.Atom)
	})
	return display.conn, display.root, display.err
}

func internAtom(conn *xgb.Conn, name string) (xproto.Atom, error) {
	display.mu.Lock()
	defer display.mu.Unlock()

	if atom, ok := display.atoms[name]; ok {
		return atom, nil
	}
	reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("failed to intern atom %s: %w", name, err)
	}
	display.atoms[name] = reply.Atom
	return reply.Atom, nil
}

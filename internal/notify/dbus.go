//go:build linux

package notify

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	dbusNotifyDest      = "org.freedesktop.Notifications"
	dbusNotifyPath      = "/org/freedesktop/Notifications"
	dbusNotifyInterface = "org.freedesktop.Notifications"
)

const (
	appName        = "fmcli"
	appDisplayName = "fmcli"
)

type dbusNotifier struct {
	obj dbus.BusObject
}

// New connects to the session bus. Without a session bus it returns Nop,
// since a missing notification daemon must not stop playback.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return Nop(), nil //nolint:nilerr // headless sessions have no bus
	}
	return &dbusNotifier{obj: conn.Object(dbusNotifyDest, dbusNotifyPath)}, nil
}

func hints(n Notification) map[string]dbus.Variant {
	h := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(n.Urgency)),
		"desktop-entry": dbus.MakeVariant(appName),
	}
	if n.Category != "" {
		h["category"] = dbus.MakeVariant(n.Category)
	}
	if n.Transient {
		h["transient"] = dbus.MakeVariant(true)
	}
	return h
}

// Notify calls
// Notify(app_name, replaces_id, app_icon, summary, body, actions, hints, expire_timeout).
func (n *dbusNotifier) Notify(notif Notification) (uint32, error) {
	call := n.obj.Call(
		dbusNotifyInterface+".Notify",
		0,
		appDisplayName,
		notif.ReplacesID,
		notif.Icon,
		notif.Title,
		notif.Body,
		[]string{},
		hints(notif),
		notif.Timeout,
	)
	if call.Err != nil {
		return 0, fmt.Errorf("notify: %w", call.Err)
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("notify: read id: %w", err)
	}
	return id, nil
}

func (n *dbusNotifier) Close(id uint32) error {
	if err := n.obj.Call(dbusNotifyInterface+".CloseNotification", 0, id).Err; err != nil {
		return fmt.Errorf("close notification %d: %w", id, err)
	}
	return nil
}

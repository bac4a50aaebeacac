// Package session discovers the active graphical desktop session via
// systemd-logind over D-Bus, resolving the UID/GID/$DISPLAY/
// $XAUTHORITY/$HOME/$XDG_RUNTIME_DIR the daemon needs to read the right
// user's config file and to run the clipboard/sound collaborators as
// that user rather than as whatever account the daemon itself runs
// under (typically root, reading a root-owned input device).
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/godbus/dbus/v5"
)

// Active describes the desktop session the daemon should act on behalf
// of.
type Active struct {
	UID            int
	GID            int
	User           string
	Display        string
	XAuthority     string
	Home           string
	XDGRuntimeDir  string
}

const (
	logindDest = "org.freedesktop.login1"
	logindPath = "/org/freedesktop/login1"
)

// Discover asks systemd-logind for its sessions and resolves the
// environment of the first one that reports an X display; the
// session's active state is not checked. Returns an error if logind is
// unreachable (headless box, container without a session bus) — callers
// should treat that as "disable clipboard and sound, keep rewriting
// events" per the degradation rule in §7.
func Discover() (*Active, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, fmt.Errorf("session: connect system bus: %w", err)
	}
	defer conn.Close()

	manager := conn.Object(logindDest, dbus.ObjectPath(logindPath))

	var sessions [][]interface{}
	if err := manager.Call(logindDest+".Manager.ListSessions", 0).Store(&sessions); err != nil {
		return nil, fmt.Errorf("session: ListSessions: %w", err)
	}

	for _, s := range sessions {
		if len(s) < 5 {
			continue
		}
		sessionPath, ok := s[4].(dbus.ObjectPath)
		if !ok {
			continue
		}
		active, err := describeSession(conn, sessionPath)
		if err != nil {
			continue
		}
		if active.Display != "" {
			return active, nil
		}
	}
	return nil, fmt.Errorf("session: no active graphical session found")
}

func describeSession(conn *dbus.Conn, path dbus.ObjectPath) (*Active, error) {
	obj := conn.Object(logindDest, path)

	uidVal, err := obj.GetProperty(logindDest + ".Session.User")
	if err != nil {
		return nil, err
	}
	uid, _, err := unpackUser(uidVal)
	if err != nil {
		return nil, err
	}

	displayVal, err := obj.GetProperty(logindDest + ".Session.Display")
	display := ""
	if err == nil {
		display, _ = displayVal.Value().(string)
	}

	u, err := lookupUser(uid)
	if err != nil {
		return nil, err
	}

	runtimeDir := filepath.Join("/run/user", strconv.Itoa(uid))
	return &Active{
		UID:           uid,
		GID:           u.gid,
		User:          u.name,
		Display:       display,
		XAuthority:    filepath.Join(u.home, ".Xauthority"),
		Home:          u.home,
		XDGRuntimeDir: runtimeDir,
	}, nil
}

// unpackUser extracts the numeric UID from logind's (uint32, ObjectPath)
// User property.
func unpackUser(v *dbus.Variant) (int, dbus.ObjectPath, error) {
	tuple, ok := v.Value().([]interface{})
	if !ok || len(tuple) != 2 {
		return 0, "", fmt.Errorf("session: unexpected User property shape")
	}
	uid, ok := tuple[0].(uint32)
	if !ok {
		return 0, "", fmt.Errorf("session: unexpected uid type")
	}
	path, _ := tuple[1].(dbus.ObjectPath)
	return int(uid), path, nil
}

type passwdEntry struct {
	name string
	gid  int
	home string
}

// lookupUser reads /etc/passwd directly rather than cgo-based os/user,
// matching a statically-linked daemon that should not need libc's NSS
// machinery to resolve a local account.
func lookupUser(uid int) (*passwdEntry, error) {
	data, err := os.ReadFile("/etc/passwd")
	if err != nil {
		return nil, err
	}
	for _, line := range splitLines(data) {
		fields := splitColon(line)
		if len(fields) < 7 {
			continue
		}
		if fields[2] != strconv.Itoa(uid) {
			continue
		}
		gid, _ := strconv.Atoi(fields[3])
		return &passwdEntry{name: fields[0], gid: gid, home: fields[5]}, nil
	}
	return nil, fmt.Errorf("session: uid %d not found in /etc/passwd", uid)
}

func splitLines(data []byte) []string {
	var lines []string
	start := 0
	for i, b := range data {
		if b == '\n' {
			if i > start {
				lines = append(lines, string(data[start:i]))
			}
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, string(data[start:]))
	}
	return lines
}

func splitColon(line string) []string {
	var fields []string
	start := 0
	for i := 0; i < len(line); i++ {
		if line[i] == ':' {
			fields = append(fields, line[start:i])
			start = i + 1
		}
	}
	fields = append(fields, line[start:])
	return fields
}

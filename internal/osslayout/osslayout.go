// Package osslayout is the OS keyboard-layout query/set collaborator:
// the router resynchronises its local mirror of the active layout from
// the desktop on every delimiter (§4.1 step 8), and drives a layout
// change exclusively through the configured hotkey chord rather than a
// programmatic set call, because a set call does not reach every
// application's own input-method state (§6).
package osslayout

import (
	"bytes"
	"os/exec"
	"strconv"
	"strings"

	"layoutswitchd/internal/decision"
)

// Collaborator is the narrow surface the router needs: query the
// desktop's current layout index, and nothing else — set happens via
// the macro planner's hotkey chord, not through this interface.
type Collaborator interface {
	Query() (decision.Layout, error)
}

// X11 queries the active XKB layout group via setxkbmap, run as the
// resolved desktop user's session (DISPLAY/XAUTHORITY supplied by the
// caller). This is the only query path: setting a layout
// programmatically via XkbLockGroup doesn't reach GTK/Qt applications
// that maintain their own per-window input-method state, so set always
// goes through the hotkey chord instead (§6).
type X11 struct {
	Display    string
	XAuthority string
}

// New builds an X11 collaborator for the given session environment.
func New(display, xauthority string) *X11 {
	return &X11{Display: display, XAuthority: xauthority}
}

// Query runs `setxkbmap -query` and maps a "group:" line in its output
// to decision.Layout: group 0 is LayoutEN, any other group is
// LayoutRU, matching the glossary's {0 = primary, 1 = secondary}. When
// the output has no "group:" line, Query reports LayoutEN. setxkbmap
// does not itself report a live "current" group separately from the
// configured list, and no other tool is consulted, so in that case
// Query reports the primary layout whichever group is active.
func (x *X11) Query() (decision.Layout, error) {
	cmd := exec.Command("setxkbmap", "-query")
	cmd.Env = append(cmd.Env, "DISPLAY="+x.Display, "XAUTHORITY="+x.XAuthority)

	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return decision.LayoutEN, err
	}

	group := 0
	for _, line := range strings.Split(out.String(), "\n") {
		if strings.HasPrefix(line, "group:") {
			raw := strings.TrimSpace(strings.TrimPrefix(line, "group:"))
			if n, err := strconv.Atoi(raw); err == nil {
				group = n
			}
		}
	}
	if group == 0 {
		return decision.LayoutEN, nil
	}
	return decision.LayoutRU, nil
}

// Static ensures Collaborator can be satisfied by a fixed-layout stub
// for tests and for headless sessions where X11 is unavailable.
type Static struct {
	Layout decision.Layout
}

// Query always reports the fixed layout.
func (s Static) Query() (decision.Layout, error) { return s.Layout, nil }

// Package sound plays the layout-switch notification sound via
// paplay or aplay, double-forked so the daemon's router thread never
// waits on the player beyond the intermediate process, and running as
// the resolved GUI user (the daemon itself typically runs as root,
// reading a root-owned input device) with a sanitised environment.
package sound

import (
	"fmt"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// User describes the account the sound player should run as, resolved
// by internal/session.
type User struct {
	UID           uint32
	GID           uint32
	Home          string
	XDGRuntimeDir string
}

// Player plays notification sounds for layout switches, best-effort:
// a missing player binary or an unreachable PulseAudio socket degrades
// to silence, never to an error the router has to handle.
type Player struct {
	user    User
	players []string
	enabled bool
}

// New builds a Player. enabled mirrors the config's sound.enabled;
// when false every Play call is a no-op.
func New(user User, enabled bool) *Player {
	return &Player{user: user, players: []string{"paplay", "aplay"}, enabled: enabled}
}

// SetEnabled updates whether Play actually plays, for a RELOAD that
// flips sound.enabled.
func (p *Player) SetEnabled(enabled bool) { p.enabled = enabled }

// Play spawns the first available player on soundPath, double-forked:
// an intermediate /bin/sh, started in its own session (Setsid) as the
// resolved user, launches the player in the background and exits at
// once, so the player is reparented away from the daemon and the
// daemon only waits on the short-lived shell.
func (p *Player) Play(soundPath string) error {
	if !p.enabled {
		return nil
	}

	bin, err := p.resolvePlayer()
	if err != nil {
		return err
	}
	if err := unix.Access(soundPath, unix.R_OK); err != nil {
		return fmt.Errorf("sound: %s not readable: %w", soundPath, err)
	}

	cmd := exec.Command("/bin/sh", "-c", `"$0" "$1" &`, bin, soundPath)
	cmd.Env = p.sanitisedEnv()
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
		Credential: &syscall.Credential{
			Uid: p.user.UID,
			Gid: p.user.GID,
		},
	}

	// Run waits only for the intermediate shell, which exits as soon as
	// the player is backgrounded; the player itself is reaped by init.
	return cmd.Run()
}

func (p *Player) resolvePlayer() (string, error) {
	var lastErr error
	for _, name := range p.players {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		} else {
			lastErr = err
		}
	}
	return "", lastErr
}

func (p *Player) sanitisedEnv() []string {
	return []string{
		"HOME=" + p.user.Home,
		"XDG_RUNTIME_DIR=" + p.user.XDGRuntimeDir,
		"PULSE_SERVER=unix:" + p.user.XDGRuntimeDir + "/pulse/native",
	}
}

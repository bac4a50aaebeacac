// Package control implements the IPC control plane (§4.7): a
// Unix-domain socket server exposing GET_STATUS/SET_STATUS/RELOAD/
// SHUTDOWN, and the atomically-published shared state the router
// thread reads once per event without ever taking a lock.
package control

import (
	"sync/atomic"

	"layoutswitchd/internal/config"
	"layoutswitchd/internal/decision"
	"layoutswitchd/internal/macro"
)

// SharedState is the only state touched by both the router thread and
// the control thread. Every field is a single atomic reference slot:
// the control thread publishes a new value, the router thread loads
// the current one once per event and treats it as immutable for that
// event's duration.
type SharedState struct {
	enabled  atomic.Bool
	cfg      atomic.Pointer[config.ConfigSnapshot]
	analyser atomic.Pointer[decision.Config]
	delays   atomic.Pointer[macro.Delays]
}

// NewSharedState seeds every slot from an initial snapshot.
func NewSharedState(initial *config.ConfigSnapshot) *SharedState {
	s := &SharedState{}
	s.Publish(initial)
	return s
}

// Enabled reports the fast-path master switch, checked on every word
// boundary.
func (s *SharedState) Enabled() bool { return s.enabled.Load() }

// SetEnabled flips the fast-path master switch, for SET_STATUS.
func (s *SharedState) SetEnabled(v bool) { s.enabled.Store(v) }

// Config returns the currently published ConfigSnapshot.
func (s *SharedState) Config() *config.ConfigSnapshot { return s.cfg.Load() }

// Analyser returns the currently published decision engine tunables.
func (s *SharedState) Analyser() *decision.Config { return s.analyser.Load() }

// Delays returns the currently published injector timing profile.
func (s *SharedState) Delays() *macro.Delays { return s.delays.Load() }

// Publish atomically installs snap as the current ConfigSnapshot and
// derives and publishes fresh analyser and injector snapshots from it,
// then synchronises the fast-path enabled flag — "the config is the
// source of truth on reload" (§4.7).
func (s *SharedState) Publish(snap *config.ConfigSnapshot) {
	s.cfg.Store(snap)

	analyserCfg := decision.Config{
		Enabled:    snap.AutoSwitch.Enabled,
		MinWordLen: snap.AutoSwitch.MinWordLen,
		MinScore:   snap.AutoSwitch.MinScore,
		Threshold:  snap.AutoSwitch.Threshold,
	}
	s.analyser.Store(&analyserCfg)

	keyPress, layoutSwitch, retype, turboKeyPress, turboRetype := snap.Delays.Delays()
	delays := macro.Delays{
		KeyPress:      keyPress,
		LayoutSwitch:  layoutSwitch,
		Retype:        retype,
		TurboKeyPress: turboKeyPress,
		TurboRetype:   turboRetype,
	}
	s.delays.Store(&delays)

	s.enabled.Store(snap.AutoSwitch.Enabled)
}

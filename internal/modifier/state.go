// Package modifier tracks the eight modifier keys the router needs to
// know about while deciding how to treat a key event.
package modifier

import "layoutswitchd/internal/wire"

// State holds the pressed/released status of the left and right variant
// of shift, ctrl, alt and meta. It is updated in place as EV_KEY events
// for modifier scancodes arrive; non-modifier keys never touch it.
type State struct {
	LeftShift, RightShift bool
	LeftCtrl, RightCtrl   bool
	LeftAlt, RightAlt     bool
	LeftMeta, RightMeta   bool
}

// Update applies a press/release transition for code, if code is one of
// the eight tracked modifier keys. It is a no-op for any other scancode.
func (s *State) Update(code wire.Scancode, pressed bool) {
	switch code {
	case wire.KeyLeftShift:
		s.LeftShift = pressed
	case wire.KeyRightShift:
		s.RightShift = pressed
	case wire.KeyLeftCtrl:
		s.LeftCtrl = pressed
	case wire.KeyRightCtrl:
		s.RightCtrl = pressed
	case wire.KeyLeftAlt:
		s.LeftAlt = pressed
	case wire.KeyRightAlt:
		s.RightAlt = pressed
	case wire.KeyLeftMeta:
		s.LeftMeta = pressed
	case wire.KeyRightMeta:
		s.RightMeta = pressed
	}
}

// AnyShift reports whether either shift key is currently held.
func (s State) AnyShift() bool { return s.LeftShift || s.RightShift }

// AnyCtrl reports whether either ctrl key is currently held.
func (s State) AnyCtrl() bool { return s.LeftCtrl || s.RightCtrl }

// AnyAlt reports whether either alt key is currently held.
func (s State) AnyAlt() bool { return s.LeftAlt || s.RightAlt }

// AnyMeta reports whether either meta (super) key is currently held.
func (s State) AnyMeta() bool { return s.LeftMeta || s.RightMeta }

// Pressed reports the held state of one of the eight tracked modifier
// scancodes. It is used when resolving which side of a chord fired, e.g.
// distinguishing left-ctrl+left-alt from a cross-side chord. Returns
// false for any scancode that is not a tracked modifier.
func (s State) Pressed(code wire.Scancode) bool {
	switch code {
	case wire.KeyLeftShift:
		return s.LeftShift
	case wire.KeyRightShift:
		return s.RightShift
	case wire.KeyLeftCtrl:
		return s.LeftCtrl
	case wire.KeyRightCtrl:
		return s.RightCtrl
	case wire.KeyLeftAlt:
		return s.LeftAlt
	case wire.KeyRightAlt:
		return s.RightAlt
	case wire.KeyLeftMeta:
		return s.LeftMeta
	case wire.KeyRightMeta:
		return s.RightMeta
	}
	return false
}

// Any reports whether any modifier at all, shift included, is
// currently held.
func (s State) Any() bool {
	return s.AnyShift() || s.AnyCtrl() || s.AnyAlt() || s.AnyMeta()
}

// Reset clears every tracked modifier.
func (s *State) Reset() {
	*s = State{}
}

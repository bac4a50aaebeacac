// Package clipboarddrv implements the selection-transform collaborator:
// copy the current selection, apply a pure text transform, write the
// result back to the clipboard and paste it — the common
// process_selection routine every selection hotkey (invert-layout,
// invert-case, transliterate) is built on.
package clipboarddrv

import (
	"context"
	"errors"
	"time"

	"golang.design/x/clipboard"

	"layoutswitchd/internal/wire"
)

// Timeout bounds every clipboard round trip; a selection transform
// degrades to a no-op rather than blocking the router past it.
const Timeout = 500 * time.Millisecond

// Paster is the narrow surface the driver needs to trigger a copy or a
// paste in the focused application — a Ctrl+C / Ctrl+V keystroke sent
// through the macro injector.
type Paster interface {
	SendCopy() error
	SendPaste() error
}

// Driver owns the clipboard.Init() call golang.design/x/clipboard
// requires before Read/Write are usable, and sequences one selection
// transform at a time.
type Driver struct {
	paster Paster
	ready  bool
}

// New builds a Driver. Init must be called once, from the same thread
// golang.design/x/clipboard was initialised on, before any transform
// is attempted; a Driver built without a prior successful Init simply
// no-ops every transform, per §7's "X/session not initialised"
// degradation rule.
func New(paster Paster) *Driver {
	return &Driver{paster: paster}
}

// Init performs the one-time clipboard.Init() golang.design/x/clipboard
// requires. Safe to skip entirely in a headless session: every
// Driver method checks Ready and no-ops if it was never called or
// failed.
func (d *Driver) Init() error {
	if err := clipboard.Init(); err != nil {
		return err
	}
	d.ready = true
	return nil
}

// Ready reports whether Init succeeded.
func (d *Driver) Ready() bool { return d.ready }

var errNotReady = errors.New("clipboarddrv: not initialised")

// Transform copies the current selection, applies fn to the resulting
// text, writes the transformed text to the clipboard, and pastes it
// back — the shared body behind invert-layout/invert-case/transliterate
// on a selection, expressed as a closure parameter per the design
// notes on dynamic dispatch rather than as a small class hierarchy.
// Bounded by Timeout; any failure or empty selection makes it a no-op.
func (d *Driver) Transform(fn func(string) string) error {
	if !d.ready {
		return errNotReady
	}

	ctx, cancel := context.WithTimeout(context.Background(), Timeout)
	defer cancel()

	if err := d.paster.SendCopy(); err != nil {
		return err
	}

	text, err := d.readWithTimeout(ctx)
	if err != nil || text == "" {
		return err
	}

	transformed := fn(text)
	clipboard.Write(clipboard.FmtText, []byte(transformed))

	return d.paster.SendPaste()
}

func (d *Driver) readWithTimeout(ctx context.Context) (string, error) {
	type result struct {
		text string
	}
	ch := make(chan result, 1)
	go func() {
		ch <- result{text: string(clipboard.Read(clipboard.FmtText))}
	}()
	select {
	case r := <-ch:
		return r.text, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// chordSender is the macro injector's SendLayoutHotkey primitive
// (press modifier, press key, release key, release modifier, settle):
// mechanically identical to a Ctrl+C/Ctrl+Shift+V chord, just aimed at
// a different destination application.
type chordSender func(modifier, key wire.Scancode) error

// keyPaster adapts a chordSender to Paster. Copy is LeftCtrl+C and
// paste is LeftCtrl+V. In terminal mode SendCopy first sends a
// LeftCtrl+LeftShift chord and then LeftCtrl+C as a separate chord;
// no three-key Ctrl+Shift+C or Ctrl+Shift+V chord is sent, and paste
// is the same in both modes.
type keyPaster struct {
	send      chordSender
	copyKey   wire.Scancode
	pasteKey  wire.Scancode
	shiftHeld bool
}

// NewKeyPaster builds a Paster that drives copy/paste through the
// macro injector's own hotkey-chord primitive, so selection transforms
// share exactly the same synthetic-event path as the layout-switch
// hotkey.
func NewKeyPaster(send chordSender, terminal bool) Paster {
	return &keyPaster{send: send, copyKey: wire.KeyC, pasteKey: wire.KeyV, shiftHeld: terminal}
}

func (k *keyPaster) SendCopy() error {
	if k.shiftHeld {
		if err := k.send(wire.KeyLeftCtrl, wire.KeyLeftShift); err != nil {
			return err
		}
	}
	return k.send(wire.KeyLeftCtrl, k.copyKey)
}

func (k *keyPaster) SendPaste() error {
	return k.send(wire.KeyLeftCtrl, k.pasteKey)
}

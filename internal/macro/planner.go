package macro

import (
	"time"

	"github.com/google/uuid"

	"layoutswitchd/internal/wire"
)

// HotkeyChord is the modifier+key pair the desktop environment listens
// for to switch its active keyboard layout.
type HotkeyChord struct {
	Modifier wire.Scancode
	Key      wire.Scancode
}

// Flag is the macro-in-progress latch shared with the guard package: a
// macro raises it before its first synthetic event and clears it after
// its last, so the router knows to buffer rather than process incoming
// events for that span.
type Flag interface {
	Raise()
	Clear()
}

// LayoutToggle flips the tracked OS layout; the planner
// calls it once per layout-invert macro, outside of actually asking the
// desktop which layout is active (that round trip happens once per
// delimiter in the router, not once per macro step).
type LayoutToggle interface {
	Toggle()
}

// Planner sequences the three composite macros (InvertLayoutWord,
// AutoInvertOnDelimiter, InvertCaseWord) on top of an Injector,
// a Flag, and the hotkey chord the desktop listens for.
type Planner struct {
	inj   *Injector
	flag  Flag
	chord HotkeyChord
}

// NewPlanner builds a Planner.
func NewPlanner(inj *Injector, flag Flag, chord HotkeyChord) *Planner {
	return &Planner{inj: inj, flag: flag, chord: chord}
}

// SetChord updates the hotkey chord the planner sends, used when a
// RELOAD changes hotkey.modifier/hotkey.key.
func (p *Planner) SetChord(chord HotkeyChord) { p.chord = chord }

// InvertLayoutWord retypes word (and its trailing whitespace) after
// toggling the OS layout, for the manual layout-invert hotkey. commit
// is called once the word has been fully retyped so the caller's word
// buffer can be committed and the guard queue drained. It returns a
// correlation id a caller can fold into its log line for this macro
// run.
func (p *Planner) InvertLayoutWord(word []wire.KeyEntry, trailing []wire.Scancode, toggle LayoutToggle, commit func()) (string, error) {
	id := uuid.NewString()

	p.flag.Raise()
	defer p.flag.Clear()

	if err := p.inj.ReleaseAllModifiers(); err != nil {
		return id, err
	}
	p.inj.wait.WaitOrBuffer(p.inj.delays.TurboKeyPress)

	if err := p.inj.SendBackspace(len(word)+len(trailing), true); err != nil {
		return id, err
	}

	toggle.Toggle()
	if err := p.inj.SendLayoutHotkey(p.chord.Modifier, p.chord.Key); err != nil {
		return id, err
	}
	p.inj.wait.WaitOrBuffer(60 * time.Millisecond)

	if err := p.inj.RetypeBuffer(word, true); err != nil {
		return id, err
	}
	if err := p.inj.RetypeTrailing(trailing, true); err != nil {
		return id, err
	}

	if commit != nil {
		commit()
	}
	return id, nil
}

// AutoInvertOnDelimiter retypes word in the other layout and then taps
// delimiter, for the automatic switch-on-space/tab path.
func (p *Planner) AutoInvertOnDelimiter(word []wire.KeyEntry, delimiter wire.Scancode, toggle LayoutToggle) (string, error) {
	id := uuid.NewString()

	p.flag.Raise()
	defer p.flag.Clear()

	if err := p.inj.ReleaseAllModifiers(); err != nil {
		return id, err
	}
	p.inj.wait.WaitOrBuffer(5 * time.Millisecond)

	if err := p.inj.SendBackspace(len(word), true); err != nil {
		return id, err
	}
	p.inj.wait.WaitOrBuffer(5 * time.Millisecond)

	toggle.Toggle()
	if err := p.inj.SendLayoutHotkey(p.chord.Modifier, p.chord.Key); err != nil {
		return id, err
	}
	p.inj.wait.WaitOrBuffer(110 * time.Millisecond)

	if err := p.inj.RetypeBuffer(word, true); err != nil {
		return id, err
	}
	p.inj.wait.WaitOrBuffer(25 * time.Millisecond)

	return id, p.inj.TapKey(delimiter, false, false)
}

// InvertCaseWord retypes word with every entry's shift flag flipped,
// for the manual case-invert hotkey.
func (p *Planner) InvertCaseWord(word []wire.KeyEntry, trailing []wire.Scancode) (string, error) {
	id := uuid.NewString()

	p.flag.Raise()
	defer p.flag.Clear()

	if err := p.inj.ReleaseAllModifiers(); err != nil {
		return id, err
	}

	if err := p.inj.SendBackspace(len(word)+len(trailing), false); err != nil {
		return id, err
	}

	inverted := make([]wire.KeyEntry, len(word))
	for i, e := range word {
		inverted[i] = wire.KeyEntry{Code: e.Code, Shifted: !e.Shifted}
	}
	if err := p.inj.RetypeBuffer(inverted, false); err != nil {
		return id, err
	}
	return id, p.inj.RetypeTrailing(trailing, false)
}

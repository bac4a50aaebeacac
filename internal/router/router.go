// Package router implements the event router (C1): the single
// state machine that consumes one InputEvent per frame and decides
// whether to pass it through unchanged, fold it into the word buffer,
// dispatch a hotkey, or hand off to the macro planner.
package router

import (
	"layoutswitchd/internal/clipboarddrv"
	"layoutswitchd/internal/control"
	"layoutswitchd/internal/decision"
	"layoutswitchd/internal/dictionary"
	"layoutswitchd/internal/guard"
	"layoutswitchd/internal/logging"
	"layoutswitchd/internal/macro"
	"layoutswitchd/internal/modifier"
	"layoutswitchd/internal/osslayout"
	"layoutswitchd/internal/sound"
	"layoutswitchd/internal/textproc"
	"layoutswitchd/internal/wire"
	"layoutswitchd/internal/wordbuf"
)

// layoutMirror is the router's local, possibly-stale copy of the
// desktop's active layout (§9 "Global state"): authoritative for macro
// planning only, resynchronised from the real thing on every
// delimiter.
type layoutMirror struct {
	layout decision.Layout
}

func (m *layoutMirror) Toggle()                   { m.layout = m.layout.Other() }
func (m *layoutMirror) Layout() decision.Layout    { return m.layout }
func (m *layoutMirror) Set(l decision.Layout)      { m.layout = l }

// hotkeyAction is the decoded meaning of a Pause keypress, per the
// modifier-set table in §4.1.
type hotkeyAction int

const (
	actionInvertLayoutWord hotkeyAction = iota
	actionInvertCaseWord
	actionInvertCaseSelection
	actionInvertLayoutSelection
	actionTranslitSelection
)

func classifyHotkey(m modifier.State) hotkeyAction {
	switch {
	case m.LeftCtrl && m.LeftAlt:
		return actionTranslitSelection
	case m.AnyShift():
		return actionInvertLayoutSelection
	case m.AnyAlt():
		return actionInvertCaseSelection
	case m.AnyCtrl():
		return actionInvertCaseWord
	default:
		return actionInvertLayoutWord
	}
}

// stripTrailingPunctuation returns word with any trailing run of
// punctuation scancodes removed, giving the analysis window the
// decision engine scores — the word stays intact in the buffer, only
// the copy handed to the engine is trimmed (§9 canonical policy).
func stripTrailingPunctuation(word []wire.KeyEntry) []wire.KeyEntry {
	end := len(word)
	for end > 0 && wire.IsTrailingPunctuation(word[end-1].Code) {
		end--
	}
	return word[:end]
}

// Router ties C2-C6 together into the single-threaded dispatch loop
// described in spec §4.1. It is the sole mutator of the word buffer,
// the modifier tracker, the trailing buffer, the local layout mirror,
// and the macro-in-progress flag — nothing else touches them.
type Router struct {
	inj     *macro.Injector
	planner *macro.Planner
	guard   *guard.Guard
	buf     *wordbuf.Buffer
	mods    modifier.State
	dict    *dictionary.Dictionary
	shared  *control.SharedState
	mirror  *layoutMirror

	layoutCollab osslayout.Collaborator // may be nil: no X session
	clipboard    *clipboarddrv.Driver   // may be nil or not Ready
	player       *sound.Player          // may be nil
	log          *logging.Logger
}

// Config gathers the collaborators New needs; any of LayoutCollab,
// Clipboard, Player may be nil, degrading their features to no-ops
// per §7's "X/session not initialised" rule.
type Config struct {
	Injector     *macro.Injector
	Planner      *macro.Planner
	Guard        *guard.Guard
	Dict         *dictionary.Dictionary
	Shared       *control.SharedState
	LayoutCollab osslayout.Collaborator
	Clipboard    *clipboarddrv.Driver
	Player       *sound.Player
	Logger       *logging.Logger
}

// New builds a Router starting in the primary (EN) layout.
func New(cfg Config) *Router {
	return &Router{
		inj:          cfg.Injector,
		planner:      cfg.Planner,
		guard:        cfg.Guard,
		buf:          wordbuf.New(),
		dict:         cfg.Dict,
		shared:       cfg.Shared,
		mirror:       &layoutMirror{layout: decision.LayoutEN},
		layoutCollab: cfg.LayoutCollab,
		clipboard:    cfg.Clipboard,
		player:       cfg.Player,
		log:          cfg.Logger,
	}
}

// Run consumes events until the channel is closed (EOF on stdin),
// processing exactly one frame per received event.
func (r *Router) Run(events <-chan wire.Event) {
	for ev := range events {
		r.handle(ev)
	}
}

func (r *Router) emit(ev wire.Event) {
	if err := r.inj.Emit(ev); err != nil && r.log != nil {
		r.log.Error("router", "emit failed: %v", err)
	}
}

// applySnapshot pulls the currently published config/delays/hotkey
// chord into the injector and planner before handling a frame, so a
// RELOAD that landed between two events takes effect on the very next
// one (§4.7: "readers acquire a snapshot pointer at the start of
// handling an event and hold it for the duration of that event").
func (r *Router) applySnapshot() *decision.Config {
	if delays := r.shared.Delays(); delays != nil {
		r.inj.SetDelays(*delays)
	}
	if cfg := r.shared.Config(); cfg != nil {
		modCode, okMod := wire.KeyNameToCode(cfg.Hotkey.Modifier)
		keyCode, okKey := wire.KeyNameToCode(cfg.Hotkey.Key)
		if okMod && okKey {
			r.planner.SetChord(macro.HotkeyChord{Modifier: modCode, Key: keyCode})
		}
		if r.player != nil {
			r.player.SetEnabled(cfg.Sound.Enabled)
		}
	}

	analyser := decision.Config{}
	if a := r.shared.Analyser(); a != nil {
		analyser = *a
	}
	analyser.Enabled = r.shared.Enabled()
	return &analyser
}

func (r *Router) handle(ev wire.Event) {
	// Step 1: macro-in-progress — buffer and return. In this
	// single-goroutine implementation the flag is already clear by the
	// time handle is re-entered (macros run to completion
	// synchronously before control returns here), but the check stays
	// for fidelity and for any future re-entrant caller.
	if r.guard.Active() {
		r.guard.Push(ev)
		return
	}

	analyserCfg := r.applySnapshot()

	// Step 2: non-key events pass through untouched.
	if ev.Type != wire.EvKey {
		r.emit(ev)
		return
	}

	// Step 3: modifier tracking.
	if wire.IsModifier(ev.Code) {
		r.mods.Update(ev.Code, ev.Value == int32(wire.Press))
		r.emit(ev)
		return
	}

	// Step 4: only presses are interesting from here on.
	if ev.Value != int32(wire.Press) {
		r.emit(ev)
		return
	}

	switch {
	case ev.Code == wire.KeyBackspace:
		// Step 5.
		r.buf.PopChar()
		r.emit(ev)

	case ev.Code == wire.KeyPause:
		// Step 6: consumed, never passed through.
		r.dispatchHotkey()

	case r.mods.AnyCtrl() || r.mods.AnyAlt() || r.mods.AnyMeta():
		// Step 7.
		r.handleSystemChord(ev)

	case wire.IsDelimiter(ev.Code):
		// Step 8.
		r.handleDelimiter(ev, analyserCfg)

	case wire.IsTrailingPunctuation(ev.Code):
		// Step 9.
		r.buf.PushChar(ev.Code, r.mods.AnyShift())
		r.emit(ev)

	case wire.IsEnter(ev.Code):
		// Step 10.
		r.buf.ResetAll()
		r.emit(ev)

	case wire.IsLetter(ev.Code):
		// Step 11.
		r.buf.PushChar(ev.Code, r.mods.AnyShift())
		r.emit(ev)

	case wire.IsNavigation(ev.Code):
		// Step 12.
		r.buf.ResetAll()
		r.emit(ev)

	case wire.IsFunctionKey(ev.Code):
		// Step 13: passthrough only, no state change.
		r.emit(ev)

	default:
		// Step 14.
		r.buf.ResetCurrent()
		r.emit(ev)
	}

	r.replayGuard()
}

// replayGuard re-enters handle for every event a just-finished macro
// buffered, in arrival order. If no macro ran during this frame the
// queue is empty and Drain is a cheap no-op.
func (r *Router) replayGuard() {
	for _, ev := range r.guard.Drain() {
		r.handle(ev)
	}
}

func (r *Router) handleSystemChord(ev wire.Event) {
	cfg := r.shared.Config()
	if cfg != nil {
		modCode, okMod := wire.KeyNameToCode(cfg.Hotkey.Modifier)
		keyCode, okKey := wire.KeyNameToCode(cfg.Hotkey.Key)
		if okMod && okKey && ev.Code == keyCode && r.mods.Pressed(modCode) {
			r.mirror.Toggle()
		}
	}
	r.buf.ResetCurrent()
	r.emit(ev)
}

func (r *Router) handleDelimiter(ev wire.Event, analyserCfg *decision.Config) {
	if r.layoutCollab != nil {
		if l, err := r.layoutCollab.Query(); err == nil {
			r.mirror.Set(l)
		}
	}

	window := stripTrailingPunctuation(r.buf.CurrentWord())
	engine := decision.New(r.dict, *analyserCfg)
	outcome := engine.Evaluate(window, r.mirror.Layout())

	if outcome.Switch {
		word := append([]wire.KeyEntry(nil), r.buf.CurrentWord()...)
		if _, err := r.planner.AutoInvertOnDelimiter(word, ev.Code, r.mirror); err != nil && r.log != nil {
			r.log.Error("router", "auto-invert failed: %v", err)
		} else if r.player != nil {
			r.player.Play(soundPathFor(r.mirror.Layout()))
		}
		r.buf.CommitWord()
		r.buf.PushTrailing(ev.Code)
		return
	}

	r.buf.CommitWord()
	r.buf.PushTrailing(ev.Code)
	r.emit(ev)
}

func (r *Router) dispatchHotkey() {
	switch classifyHotkey(r.mods) {
	case actionTranslitSelection:
		r.transformSelection(textproc.Transliterate)

	case actionInvertLayoutSelection:
		if r.clipboard == nil || !r.clipboard.Ready() {
			return
		}
		if err := r.clipboard.Transform(textproc.InvertLayout); err != nil {
			if r.log != nil {
				r.log.Error("router", "invert-layout selection failed: %v", err)
			}
			return
		}
		r.mirror.Toggle()

	case actionInvertCaseSelection:
		r.transformSelection(textproc.InvertCase)

	case actionInvertCaseWord:
		word := r.buf.ActiveWord()
		trailing := r.buf.Trailing()
		if _, err := r.planner.InvertCaseWord(word, trailing); err != nil && r.log != nil {
			r.log.Error("router", "invert-case word failed: %v", err)
		}

	case actionInvertLayoutWord:
		word := r.buf.ActiveWord()
		trailing := r.buf.Trailing()
		commit := func() {}
		if len(r.buf.CurrentWord()) > 0 {
			commit = r.buf.CommitWord
		}
		if _, err := r.planner.InvertLayoutWord(word, trailing, r.mirror, commit); err != nil && r.log != nil {
			r.log.Error("router", "invert-layout word failed: %v", err)
		}
	}
}

func (r *Router) transformSelection(fn func(string) string) {
	if r.clipboard == nil || !r.clipboard.Ready() {
		return
	}
	if err := r.clipboard.Transform(fn); err != nil && r.log != nil {
		r.log.Error("router", "selection transform failed: %v", err)
	}
}

// soundPathFor names the notification sound played on an automatic
// layout switch; a fixed pair of well-known paths, not configurable
// beyond sound.enabled per SPEC_FULL's domain stack.
func soundPathFor(l decision.Layout) string {
	if l == decision.LayoutRU {
		return "/usr/share/sounds/punto/ru.wav"
	}
	return "/usr/share/sounds/punto/en.wav"
}

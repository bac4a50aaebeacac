// Package macro synthesizes and emits sequences of input_event records
// that retype a word, toggle the OS keyboard layout, or send a desktop
// hotkey chord, with the inter-step spacing real desktop environments
// need to register every synthetic keystroke.
package macro

import (
	"time"

	"layoutswitchd/internal/wire"
)

// Delays holds every timing knob the injector's primitives consult,
// all expressed as durations rather than raw microsecond counts so
// callers never need to re-derive units.
type Delays struct {
	KeyPress       time.Duration
	LayoutSwitch   time.Duration
	Retype         time.Duration
	TurboKeyPress  time.Duration
	TurboRetype    time.Duration
}

// DefaultDelays returns the timing profile the original implementation
// shipped with, tuned so GTK/Qt/terminal apps reliably register every
// synthetic event.
func DefaultDelays() Delays {
	return Delays{
		KeyPress:      30 * time.Millisecond,
		LayoutSwitch:  40 * time.Millisecond,
		Retype:        8 * time.Millisecond,
		TurboKeyPress: 15 * time.Millisecond,
		TurboRetype:   3 * time.Millisecond,
	}
}

// Waiter is the cooperative sleep primitive the guard package
// implements: instead of blocking in time.Sleep, it polls the input
// stream for the duration and buffers anything that arrives, so
// upstream events never queue up uninspected in the kernel pipe.
type Waiter interface {
	WaitOrBuffer(d time.Duration)
}

// sleeperFunc adapts a plain function to Waiter, for tests and for any
// caller that has no guard queue to buffer into (e.g. unit tests
// exercising the injector alone).
type sleeperFunc func(time.Duration)

func (f sleeperFunc) WaitOrBuffer(d time.Duration) { f(d) }

// NewSleepWaiter returns a Waiter that simply sleeps, used where no
// cooperative buffering is needed.
func NewSleepWaiter() Waiter {
	return sleeperFunc(time.Sleep)
}

// Injector emits input_event records to an underlying wire.Writer,
// spacing them per Delays and routing its waits through a Waiter so a
// caller holding a guard queue can keep draining the kernel pipe
// between injected events.
type Injector struct {
	w      *wire.Writer
	delays Delays
	wait   Waiter
}

// NewInjector builds an Injector writing to w.
func NewInjector(w *wire.Writer, delays Delays, wait Waiter) *Injector {
	if wait == nil {
		wait = NewSleepWaiter()
	}
	return &Injector{w: w, delays: delays, wait: wait}
}

// SetDelays atomically (from the caller's perspective — there is no
// concurrent access to a single Injector) swaps in a fresh timing
// profile, used when a RELOAD changes the delays section.
func (inj *Injector) SetDelays(d Delays) { inj.delays = d }

func (inj *Injector) sendKey(code wire.Scancode, state wire.KeyState) error {
	if err := inj.w.Write(wire.NewKeyEvent(code, state)); err != nil {
		return err
	}
	return inj.w.Write(wire.NewSyncEvent())
}

// Emit passes an event through unchanged, preserving its original
// timestamp, for the router's non-macro passthrough path.
func (inj *Injector) Emit(ev wire.Event) error {
	return inj.w.Write(ev)
}

func (inj *Injector) retypeDelay(turbo bool) time.Duration {
	if turbo {
		return inj.delays.TurboRetype
	}
	return inj.delays.Retype
}

// TapKey presses and releases code, holding shift first if withShift.
// Inter-step spacing is TurboRetype when turbo, else Retype.
func (inj *Injector) TapKey(code wire.Scancode, withShift, turbo bool) error {
	if withShift {
		if err := inj.sendKey(wire.KeyLeftShift, wire.Press); err != nil {
			return err
		}
		inj.wait.WaitOrBuffer(10 * time.Millisecond)
	}

	if err := inj.sendKey(code, wire.Press); err != nil {
		return err
	}
	inj.wait.WaitOrBuffer(15 * time.Millisecond)
	if err := inj.sendKey(code, wire.Release); err != nil {
		return err
	}

	if withShift {
		inj.wait.WaitOrBuffer(5 * time.Millisecond)
		if err := inj.sendKey(wire.KeyLeftShift, wire.Release); err != nil {
			return err
		}
		inj.wait.WaitOrBuffer(5 * time.Millisecond)
	}

	inj.wait.WaitOrBuffer(inj.retypeDelay(turbo))
	return nil
}

// SendBackspace presses and releases Backspace count times, holding
// each press ~12ms and spacing repetitions by half the retype delay.
func (inj *Injector) SendBackspace(count int, turbo bool) error {
	half := inj.retypeDelay(turbo) / 2
	for i := 0; i < count; i++ {
		if err := inj.sendKey(wire.KeyBackspace, wire.Press); err != nil {
			return err
		}
		inj.wait.WaitOrBuffer(12 * time.Millisecond)
		if err := inj.sendKey(wire.KeyBackspace, wire.Release); err != nil {
			return err
		}
		if i < count-1 {
			inj.wait.WaitOrBuffer(half)
		}
	}
	return nil
}

// RetypeBuffer taps every entry in order, preserving each one's
// recorded shift state.
func (inj *Injector) RetypeBuffer(entries []wire.KeyEntry, turbo bool) error {
	for _, e := range entries {
		if err := inj.TapKey(e.Code, e.Shifted, turbo); err != nil {
			return err
		}
	}
	return nil
}

// RetypeTrailing taps every trailing whitespace scancode without
// shift.
func (inj *Injector) RetypeTrailing(codes []wire.Scancode, turbo bool) error {
	delay := inj.retypeDelay(turbo)
	for _, code := range codes {
		if err := inj.sendKey(code, wire.Press); err != nil {
			return err
		}
		if err := inj.sendKey(code, wire.Release); err != nil {
			return err
		}
		inj.wait.WaitOrBuffer(delay)
	}
	return nil
}

// SendLayoutHotkey presses modifier then key (holding key for
// KeyPress+50ms), releases both, then waits LayoutSwitch for the
// desktop environment to finish switching.
func (inj *Injector) SendLayoutHotkey(modifier, key wire.Scancode) error {
	inj.wait.WaitOrBuffer(inj.delays.KeyPress)

	if err := inj.sendKey(modifier, wire.Press); err != nil {
		return err
	}
	inj.wait.WaitOrBuffer(inj.delays.KeyPress)

	if err := inj.sendKey(key, wire.Press); err != nil {
		return err
	}
	inj.wait.WaitOrBuffer(inj.delays.KeyPress + 50*time.Millisecond)

	if err := inj.sendKey(key, wire.Release); err != nil {
		return err
	}
	inj.wait.WaitOrBuffer(inj.delays.KeyPress)

	if err := inj.sendKey(modifier, wire.Release); err != nil {
		return err
	}
	inj.wait.WaitOrBuffer(inj.delays.LayoutSwitch)
	return nil
}

// ReleaseAllModifiers releases all eight tracked modifier keys, used at
// the start of every macro so a held Ctrl/Alt/Shift/Meta can't corrupt
// the retyped keystrokes that follow.
func (inj *Injector) ReleaseAllModifiers() error {
	for _, code := range []wire.Scancode{
		wire.KeyLeftShift, wire.KeyRightShift,
		wire.KeyLeftCtrl, wire.KeyRightCtrl,
		wire.KeyLeftAlt, wire.KeyRightAlt,
		wire.KeyLeftMeta, wire.KeyRightMeta,
	} {
		if err := inj.sendKey(code, wire.Release); err != nil {
			return err
		}
	}
	inj.wait.WaitOrBuffer(inj.delays.KeyPress)
	return nil
}

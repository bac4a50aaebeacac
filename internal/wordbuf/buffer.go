// Package wordbuf tracks the key sequence of the word currently being
// typed and the word typed immediately before it, so a hotkey can
// retype either one after transforming it.
package wordbuf

import "layoutswitchd/internal/wire"

// MaxWordLen bounds the word and trailing buffers: PushChar stops
// accepting further characters once a word holds MaxWordLen-1 entries
// (PushTrailing likewise); what is already held is never truncated or
// evicted.
const MaxWordLen = 256

// Buffer holds the current word, the last committed word, and the
// whitespace typed after the last word (so the Pause-key macros can
// erase and retype that whitespace along with the word). Trailing
// punctuation stays in the word itself.
type Buffer struct {
	current  []wire.KeyEntry
	last     []wire.KeyEntry
	trailing []wire.Scancode
}

// New returns an empty Buffer.
func New() *Buffer {
	return &Buffer{
		current:  make([]wire.KeyEntry, 0, MaxWordLen),
		last:     make([]wire.KeyEntry, 0, MaxWordLen),
		trailing: make([]wire.Scancode, 0, MaxWordLen),
	}
}

// PushChar appends a key entry to the current word. It reports false
// (and drops the character) once the word has reached MaxWordLen-1.
// Starting a new word (current was empty) discards any pending
// trailing whitespace, since that whitespace belonged to the previous
// word's boundary, not this one.
func (b *Buffer) PushChar(code wire.Scancode, shifted bool) bool {
	if len(b.current) >= MaxWordLen-1 {
		return false
	}
	if len(b.current) == 0 {
		b.trailing = b.trailing[:0]
	}
	b.current = append(b.current, wire.KeyEntry{Code: code, Shifted: shifted})
	return true
}

// PopChar removes the last key entry from the current word (Backspace).
// It reports false if the current word is already empty.
func (b *Buffer) PopChar() bool {
	if len(b.current) == 0 {
		return false
	}
	b.current = b.current[:len(b.current)-1]
	return true
}

// CommitWord moves the current word into Last and clears current and
// trailing. It is a no-op if current is empty.
func (b *Buffer) CommitWord() {
	if len(b.current) == 0 {
		return
	}
	b.last = append(b.last[:0], b.current...)
	b.current = b.current[:0]
	b.trailing = b.trailing[:0]
}

// ResetAll clears current, last and trailing.
func (b *Buffer) ResetAll() {
	b.current = b.current[:0]
	b.last = b.last[:0]
	b.trailing = b.trailing[:0]
}

// ResetCurrent clears only the current word, leaving last and trailing
// untouched.
func (b *Buffer) ResetCurrent() {
	b.current = b.current[:0]
}

// ResetTrailing clears the trailing whitespace buffer.
func (b *Buffer) ResetTrailing() {
	b.trailing = b.trailing[:0]
}

// PushTrailing records a whitespace scancode typed after a word. It
// reports false once the trailing buffer has reached MaxWordLen-1.
func (b *Buffer) PushTrailing(code wire.Scancode) bool {
	if len(b.trailing) >= MaxWordLen-1 {
		return false
	}
	b.trailing = append(b.trailing, code)
	return true
}

// ActiveWord returns the current word if it is non-empty, otherwise the
// last committed word. This is the word a Pause-key macro acts on: if
// the user is mid-word, the macro acts on what they are typing now;
// otherwise it falls back to what they just finished.
func (b *Buffer) ActiveWord() []wire.KeyEntry {
	if len(b.current) > 0 {
		return b.current
	}
	return b.last
}

// CurrentWord returns the in-progress word.
func (b *Buffer) CurrentWord() []wire.KeyEntry { return b.current }

// LastWord returns the most recently committed word.
func (b *Buffer) LastWord() []wire.KeyEntry { return b.last }

// Trailing returns the whitespace scancodes typed since the last word
// was committed.
func (b *Buffer) Trailing() []wire.Scancode { return b.trailing }

// HasData reports whether there is any word data to act on.
func (b *Buffer) HasData() bool {
	return len(b.current) > 0 || len(b.last) > 0
}

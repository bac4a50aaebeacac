package ngram

import (
	"testing"

	"layoutswitchd/internal/wire"
)

var asciiToCode = map[byte]wire.Scancode{
	'a': wire.KeyA, 'b': wire.KeyB, 'c': wire.KeyC, 'd': wire.KeyD,
	'e': wire.KeyE, 'f': wire.KeyF, 'g': wire.KeyG, 'h': wire.KeyH,
	'i': wire.KeyI, 'j': wire.KeyJ, 'k': wire.KeyK, 'l': wire.KeyL,
	'm': wire.KeyM, 'n': wire.KeyN, 'o': wire.KeyO, 'p': wire.KeyP,
	'q': wire.KeyQ, 'r': wire.KeyR, 's': wire.KeyS, 't': wire.KeyT,
	'u': wire.KeyU, 'v': wire.KeyV, 'w': wire.KeyW, 'x': wire.KeyX,
	'y': wire.KeyY, 'z': wire.KeyZ,
}

func toWord(s string) []wire.KeyEntry {
	out := make([]wire.KeyEntry, 0, len(s))
	for i := 0; i < len(s); i++ {
		out = append(out, wire.KeyEntry{Code: asciiToCode[s[i]]})
	}
	return out
}

func TestCalculateScoreEnglishWordScoresHigherInEnglish(t *testing.T) {
	word := toWord("the")
	en := CalculateScore(word, English)
	ru := CalculateScore(word, Russian)
	if en <= ru {
		t.Errorf("CalculateScore(\"the\", English)=%v should exceed CalculateScore(\"the\", Russian)=%v", en, ru)
	}
}

func TestCalculateScoreTooShortWordIsZero(t *testing.T) {
	if got := CalculateScore(toWord("a"), English); got != 0 {
		t.Errorf("CalculateScore of a 1-letter word = %v, want 0", got)
	}
}

func TestCalculateScoreNeverNegative(t *testing.T) {
	// "qx" hits the invalid-English-bigram penalty table directly.
	if got := CalculateScore(toWord("qx"), English); got < 0 {
		t.Errorf("CalculateScore = %v, want floored at 0", got)
	}
}

func TestHasInvalidChars(t *testing.T) {
	if HasInvalidChars(toWord("hello")) {
		t.Error("a plain lowercase word should not have invalid chars")
	}
	digits := []wire.KeyEntry{{Code: wire.Key1}, {Code: wire.Key2}}
	if !HasInvalidChars(digits) {
		t.Error("digits should be flagged as invalid for n-gram analysis")
	}
}

func TestShouldSwitchDisabledIsAlwaysFalse(t *testing.T) {
	cfg := Config{Enabled: false, MinWordLen: 2, MinScore: 0, Threshold: 1}
	if ShouldSwitch(toWord("cnj"), cfg) {
		t.Error("ShouldSwitch must be false when the engine is disabled")
	}
}

func TestShouldSwitchRussianLookingWordWhenTypedAsEnglish(t *testing.T) {
	// "cnj" is the QWERTY scancode sequence for Cyrillic "сто" and
	// scores strongly in the Russian trigram table.
	cfg := Config{Enabled: true, MinWordLen: 2, MinScore: 1, Threshold: 1.2}
	if !ShouldSwitch(toWord("cnj"), cfg) {
		t.Error("a word that scores much higher in Russian than English should trigger a switch")
	}
}

func TestShouldSwitchFlagsADecisivelyOneSidedWordEitherDirection(t *testing.T) {
	// ShouldSwitch has no notion of which layout is currently active — it
	// only reports that a word's n-gram profile decisively favours one
	// language over the other. Resolving that into "keep" vs "switch" for
	// the layout actually in use is internal/decision's job, which checks
	// the favoured language against the current layout before acting on
	// this signal.
	cfg := Config{Enabled: true, MinWordLen: 2, MinScore: 1, Threshold: 1.5}
	if !ShouldSwitch(toWord("the"), cfg) {
		t.Error("\"the\" scores decisively in English and near zero in Russian, so the raw signal should fire")
	}
}

func TestShouldSwitchBelowMinScoreDoesNotFire(t *testing.T) {
	cfg := Config{Enabled: true, MinWordLen: 2, MinScore: 50, Threshold: 1.5}
	if ShouldSwitch(toWord("the"), cfg) {
		t.Error("a MinScore floor higher than any attainable score should suppress the signal")
	}
}

// Package decision combines the bypass rules, the dictionary and the
// n-gram scorer into a single verdict for whether a just-finished word
// was typed in the wrong keyboard layout.
package decision

import (
	"layoutswitchd/internal/bypass"
	"layoutswitchd/internal/dictionary"
	"layoutswitchd/internal/ngram"
	"layoutswitchd/internal/wire"
)

// Layout names one of the two tracked keyboard layouts.
type Layout int

const (
	LayoutEN Layout = iota
	LayoutRU
)

func (l Layout) Other() Layout {
	if l == LayoutEN {
		return LayoutRU
	}
	return LayoutEN
}

func (l Layout) String() string {
	if l == LayoutRU {
		return "ru"
	}
	return "en"
}

// Outcome is the engine's verdict: either Keep the word as typed, or
// Switch to NewLayout.
type Outcome struct {
	Switch    bool
	NewLayout Layout
	Reason    string
}

func keep(reason string) Outcome {
	return Outcome{Switch: false, Reason: reason}
}

func switchTo(layout Layout, reason string) Outcome {
	return Outcome{Switch: true, NewLayout: layout, Reason: reason}
}

// Config gathers the tunables the engine needs from the active
// ConfigSnapshot.
type Config struct {
	Enabled    bool
	MinWordLen int
	MinScore   float64
	Threshold  float64
}

// Engine evaluates a just-completed word against bypass rules, the
// dictionary, and the n-gram scorer, in that priority order.
type Engine struct {
	dict *dictionary.Dictionary
	cfg  Config
}

// New builds an Engine. dict may be nil (or not ready); the engine then
// falls straight through to n-gram scoring for every word.
func New(dict *dictionary.Dictionary, cfg Config) *Engine {
	return &Engine{dict: dict, cfg: cfg}
}

// Evaluate returns the decision for word, typed while currentLayout was
// active.
func (e *Engine) Evaluate(word []wire.KeyEntry, currentLayout Layout) Outcome {
	if !e.cfg.Enabled {
		return keep("disabled")
	}
	if len(word) < e.cfg.MinWordLen {
		return keep("too_short")
	}
	if reason := bypass.ShouldBypass(word, e.cfg.MinWordLen); reason != bypass.None {
		return keep(reason.String())
	}

	if e.dict != nil && e.dict.IsReady() {
		switch e.dict.Lookup(word) {
		case dictionary.English:
			if currentLayout == LayoutRU {
				return switchTo(LayoutEN, "dictionary_en")
			}
			return keep("dictionary_en")
		case dictionary.Russian:
			if currentLayout == LayoutEN {
				return switchTo(LayoutRU, "dictionary_ru")
			}
			return keep("dictionary_ru")
		case dictionary.Both, dictionary.Unknown:
			// Ambiguous or unrecognised: fall through to n-grams.
		}
	}

	ngCfg := ngram.Config{
		Enabled:    true,
		MinWordLen: e.cfg.MinWordLen,
		MinScore:   e.cfg.MinScore,
		Threshold:  e.cfg.Threshold,
	}
	if ngram.HasInvalidChars(word) {
		return keep("invalid_chars")
	}
	result := ngram.Analyze(word, ngCfg)
	if !result.ShouldSwitch {
		return keep("ngram_keep")
	}

	// The score gate only says the word leans decisively toward one
	// language; it says nothing about which one. Only switch if that
	// language is the *other* layout's — a word that scores confidently
	// as the language already active needs no correction.
	wantLang := ngram.English
	if currentLayout == LayoutRU {
		wantLang = ngram.Russian
	}
	if result.LikelyLang == wantLang {
		return keep("ngram_keep")
	}
	return switchTo(currentLayout.Other(), "ngram_switch")
}

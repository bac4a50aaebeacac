// Package ngram scores a word's letter sequence against English and
// Russian (QWERTY-transliterated) bigram/trigram frequency tables to
// guess which layout it was typed in.
package ngram

import "layoutswitchd/internal/wire"

// Language names one of the two layouts a word is scored against.
type Language int

const (
	English Language = iota
	Russian
)

// Result is the outcome of analysing one word.
type Result struct {
	EnScore        float64
	RuScore        float64
	LikelyLang     Language
	EnInvalidCount int
	RuInvalidCount int
	ShouldSwitch   bool
}

// Config holds the thresholds that decide whether an analysed word is
// different enough between the two layouts to warrant a switch.
type Config struct {
	Enabled    bool
	MinWordLen int
	MinScore   float64
	Threshold  float64
}

// wordToASCII renders word to its lowercase ASCII characters, dropping
// any scancode with no known character.
func wordToASCII(word []wire.KeyEntry) string {
	buf := make([]byte, 0, len(word))
	for _, e := range word {
		if c := e.ToASCII(); c != 0 {
			buf = append(buf, c)
		}
	}
	return string(buf)
}

// HasInvalidChars reports whether word contains a digit or a symbol
// outside the small punctuation set that can legitimately appear inside
// a Russian QWERTY transliteration (',', '.', ';', '\'', '[', ']', '`',
// '-'). Analysis is skipped for such words since the scorer was only
// ever tuned on plain letter sequences.
func HasInvalidChars(word []wire.KeyEntry) bool {
	for _, e := range word {
		c := e.ToASCII()
		if c >= '0' && c <= '9' {
			return true
		}
		if c == 0 {
			continue
		}
		switch {
		case c >= 'a' && c <= 'z':
		case c == ',', c == '.', c == ';', c == '\'', c == '[', c == ']', c == '`', c == '-':
		default:
			return true
		}
	}
	return false
}

// CalculateScore computes the frequency-weighted score of word against
// lang's bigram and trigram tables. Trigram weight counts 1.5x a
// bigram's, and each bigram on lang's own "impossible" list costs -15
// to push clearly wrong-layout words toward a confident score gap.
// The raw sum is normalized by the number of n-grams a word of this
// length is expected to contain, and floored at zero.
func CalculateScore(word []wire.KeyEntry, lang Language) float64 {
	if len(word) < 2 {
		return 0
	}
	ascii := wordToASCII(word)
	if len(ascii) < 2 {
		return 0
	}

	var score float64
	var validNgrams int

	bigrams, invalidBigrams := enBigrams, invalidEnBigrams
	trigrams := enTrigrams
	if lang == Russian {
		bigrams, invalidBigrams = ruBigrams, invalidRuBigrams
		trigrams = ruTrigrams
	}

	for i := 0; i+1 < len(ascii); i++ {
		key := ascii[i : i+2]
		weight := lookup(bigrams, key)
		if weight == 0 && invalidBigrams[key] {
			score -= 15
		}
		if weight > 0 {
			score += float64(weight)
			validNgrams++
		}
	}

	if len(ascii) >= 3 {
		for i := 0; i+2 < len(ascii); i++ {
			key := ascii[i : i+3]
			weight := lookup(trigrams, key)
			if weight > 0 {
				score += float64(weight) * 1.5
				validNgrams++
			}
		}
	}

	if validNgrams > 0 {
		expected := float64(len(ascii) - 1)
		if len(ascii) >= 3 {
			expected += float64(len(ascii) - 2)
		}
		score /= expected
	}

	if score < 0 {
		return 0
	}
	return score
}

// CountInvalidBigrams reports how many of word's bigrams are on the
// "impossible for this layout" list, for each layout.
func CountInvalidBigrams(word []wire.KeyEntry) (enInvalid, ruInvalid int) {
	if len(word) < 2 {
		return 0, 0
	}
	ascii := wordToASCII(word)
	if len(ascii) < 2 {
		return 0, 0
	}
	for i := 0; i+1 < len(ascii); i++ {
		key := ascii[i : i+2]
		if invalidEnBigrams[key] {
			enInvalid++
		}
		if invalidRuBigrams[key] {
			ruInvalid++
		}
	}
	return enInvalid, ruInvalid
}

// Analyze runs the full scoring pass and decides whether the word looks
// like it was typed in the wrong layout.
func Analyze(word []wire.KeyEntry, cfg Config) Result {
	var result Result
	if len(word) < 2 {
		return result
	}

	result.EnScore = CalculateScore(word, English)
	result.RuScore = CalculateScore(word, Russian)
	result.EnInvalidCount, result.RuInvalidCount = CountInvalidBigrams(word)

	if result.RuScore > result.EnScore {
		result.LikelyLang = Russian
	} else {
		result.LikelyLang = English
	}

	maxScore := result.EnScore
	minScore := result.RuScore
	if result.RuScore > result.EnScore {
		maxScore, minScore = result.RuScore, result.EnScore
	}

	if maxScore < cfg.MinScore {
		result.ShouldSwitch = false
		return result
	}

	if minScore > 0 {
		ratio := maxScore / minScore
		result.ShouldSwitch = ratio >= cfg.Threshold
	} else {
		result.ShouldSwitch = maxScore >= cfg.MinScore
	}

	return result
}

// ShouldSwitch reports whether word should trigger an automatic layout
// switch, per cfg's enablement, length floor, character validity and
// score-ratio gates.
func ShouldSwitch(word []wire.KeyEntry, cfg Config) bool {
	if !cfg.Enabled {
		return false
	}
	if len(word) < cfg.MinWordLen {
		return false
	}
	if HasInvalidChars(word) {
		return false
	}
	return Analyze(word, cfg).ShouldSwitch
}

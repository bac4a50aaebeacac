// Package dictionary loads hunspell word lists and answers whether a
// key sequence spells a known English or Russian (QWERTY-transliterated)
// word.
package dictionary

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"

	"layoutswitchd/internal/wire"
)

// Result names which dictionary (if any) a word was found in.
type Result int

const (
	Unknown Result = iota
	English
	Russian
	Both
)

func (r Result) String() string {
	switch r {
	case English:
		return "english"
	case Russian:
		return "russian"
	case Both:
		return "both"
	default:
		return "unknown"
	}
}

const (
	defaultMinWordLen = 2
	defaultMaxWordLen = 20
)

// Paths holds the filesystem locations of the two hunspell word lists.
type Paths struct {
	English string
	Russian string
}

// DefaultPaths returns the standard hunspell install locations.
func DefaultPaths() Paths {
	return Paths{
		English: "/usr/share/hunspell/en_US.dic",
		Russian: "/usr/share/hunspell/ru_RU.dic",
	}
}

// Dictionary is a pair of word sets: one of English words, one of
// Russian words transliterated to the QWERTY key sequence that types
// them. Both sets are immutable after Load.
type Dictionary struct {
	en    map[string]struct{}
	ru    map[string]struct{}
	ready bool
}

// Load reads both dictionaries from paths, skipping whichever side is
// missing (a host with only one language pack installed still gets a
// usable dictionary for the side it has). At least one side must load
// successfully or Load returns an error.
func Load(paths Paths) (*Dictionary, error) {
	en, enCount, enErr := loadEnglish(paths.English)
	ru, ruCount, ruErr := loadRussian(paths.Russian)

	if enCount == 0 && ruCount == 0 {
		return nil, fmt.Errorf("dictionary: no words loaded (en: %v, ru: %v)", enErr, ruErr)
	}

	return &Dictionary{en: en, ru: ru, ready: true}, nil
}

// IsReady reports whether the dictionary has at least one usable word
// list loaded.
func (d *Dictionary) IsReady() bool {
	return d != nil && d.ready
}

// EnglishSize returns the number of loaded English words.
func (d *Dictionary) EnglishSize() int { return len(d.en) }

// RussianSize returns the number of loaded Russian (QWERTY) words.
func (d *Dictionary) RussianSize() int { return len(d.ru) }

// Lookup converts entries to a lowercase ASCII key and reports which
// dictionary (if any) contains it.
func (d *Dictionary) Lookup(entries []wire.KeyEntry) Result {
	if !d.IsReady() || len(entries) == 0 {
		return Unknown
	}
	key := entriesToKey(entries)
	if key == "" {
		return Unknown
	}

	_, inEn := d.en[key]
	_, inRu := d.ru[key]

	switch {
	case inEn && inRu:
		return Both
	case inEn:
		return English
	case inRu:
		return Russian
	default:
		return Unknown
	}
}

// entriesToKey renders a KeyEntry sequence to the lowercase ASCII
// string it would type, skipping any scancode with no known character.
func entriesToKey(entries []wire.KeyEntry) string {
	var b strings.Builder
	b.Grow(len(entries))
	for _, e := range entries {
		if c := e.ToASCII(); c != 0 {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func extractWord(line string) string {
	if i := strings.IndexByte(line, '/'); i >= 0 {
		return line[:i]
	}
	return line
}

func isASCIIAlphaOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')) {
			return false
		}
	}
	return true
}

func loadEnglish(path string) (map[string]struct{}, int, error) {
	lines, err := readDictLines(path)
	if err != nil {
		return map[string]struct{}{}, 0, err
	}

	words := lo.FilterMap(lines, func(line string, _ int) (string, bool) {
		word := extractWord(line)
		if len(word) < defaultMinWordLen || len(word) > defaultMaxWordLen {
			return "", false
		}
		if !isASCIIAlphaOnly(word) {
			return "", false
		}
		return strings.ToLower(word), true
	})

	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set, len(set), nil
}

func loadRussian(path string) (map[string]struct{}, int, error) {
	lines, err := readDictLines(path)
	if err != nil {
		return map[string]struct{}{}, 0, err
	}

	set := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		word := extractWord(line)
		// hunspell word lengths are measured in bytes; a Cyrillic
		// letter is two UTF-8 bytes, so the byte-length window is
		// double the ASCII one.
		if len(word) < defaultMinWordLen*2 || len(word) > defaultMaxWordLen*2 {
			continue
		}
		qwerty := CyrillicToQWERTY(word)
		if len(qwerty) < defaultMinWordLen || len(qwerty) > defaultMaxWordLen {
			continue
		}
		set[qwerty] = struct{}{}
	}
	return set, len(set), nil
}

func readDictLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		// First line is hunspell's word-count header; an empty file
		// has no header and no words.
		return nil, scanner.Err()
	}

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

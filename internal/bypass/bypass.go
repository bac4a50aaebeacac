// Package bypass detects words that should never be handed to the
// dictionary/n-gram decision engine: URLs, paths, snake_case,
// camelCase, PascalCase identifiers and all-caps acronyms all look like
// noise to a layout-language model and would otherwise trigger
// false-positive switches.
package bypass

import "layoutswitchd/internal/wire"

// Reason names why should_bypass skipped analysis, or None if the word
// should proceed to the dictionary/n-gram stage.
type Reason int

const (
	None Reason = iota
	TooShort
	URLOrPath
	SnakeCase
	AllCapsAcronym
	CamelOrPascalCase
)

func (r Reason) String() string {
	switch r {
	case TooShort:
		return "too_short"
	case URLOrPath:
		return "url_or_path"
	case SnakeCase:
		return "snake_case"
	case AllCapsAcronym:
		return "all_caps_acronym"
	case CamelOrPascalCase:
		return "camel_or_pascal_case"
	default:
		return "none"
	}
}

func toASCIILower(e wire.KeyEntry) byte { return e.ToASCII() }

func isUppercase(e wire.KeyEntry) bool {
	return wire.IsLetter(e.Code) && e.Shifted
}

func isLowercase(e wire.KeyEntry) bool {
	return wire.IsLetter(e.Code) && !e.Shifted
}

func isSlash(e wire.KeyEntry) bool {
	c := toASCIILower(e)
	return c == '/' || c == '\\'
}

func isDot(e wire.KeyEntry) bool {
	return e.Code == wire.KeyDot && !e.Shifted
}

func isUnderscore(e wire.KeyEntry) bool {
	return e.Code == wire.KeyMinus && e.Shifted
}

func isAtSymbol(e wire.KeyEntry) bool {
	return e.Code == wire.Key2 && e.Shifted
}

func isColon(e wire.KeyEntry) bool {
	return e.Code == wire.KeySemicolon && e.Shifted
}

// ShouldBypass returns the first applicable bypass reason for word, or
// None if the decision engine should analyse it. minWordLen is the
// shortest word the engine considers worth analysing at all.
func ShouldBypass(word []wire.KeyEntry, minWordLen int) Reason {
	if len(word) < minWordLen {
		return TooShort
	}
	if ContainsURLOrPathChars(word) {
		return URLOrPath
	}
	if IsSnakeCase(word) {
		return SnakeCase
	}
	// All-caps acronyms are checked before camelCase so that a short
	// all-uppercase word (API, URL) is never misread as a one-letter
	// camelCase transition.
	if IsAllCapsAcronym(word) {
		return AllCapsAcronym
	}
	if IsCamelCase(word) || IsPascalCase(word) {
		return CamelOrPascalCase
	}
	return None
}

// IsCamelCase reports whether word starts with a lowercase letter and
// contains a lower→upper transition, e.g. myVariable, getElementById.
func IsCamelCase(word []wire.KeyEntry) bool {
	if len(word) < 3 {
		return false
	}
	if !isLowercase(word[0]) {
		return false
	}
	return hasLowerToUpperTransition(word)
}

// IsPascalCase reports whether word starts with an uppercase letter and
// contains a lower→upper transition later on, e.g. HttpRequest.
func IsPascalCase(word []wire.KeyEntry) bool {
	if len(word) < 3 {
		return false
	}
	if !isUppercase(word[0]) {
		return false
	}
	return hasLowerToUpperTransition(word)
}

func hasLowerToUpperTransition(word []wire.KeyEntry) bool {
	for i := 0; i+1 < len(word); i++ {
		if isLowercase(word[i]) && isUppercase(word[i+1]) {
			return true
		}
	}
	return false
}

// ContainsURLOrPathChars reports whether word looks like a URL, a
// filesystem path, an email address or a dotfile name.
func ContainsURLOrPathChars(word []wire.KeyEntry) bool {
	if len(word) == 0 {
		return false
	}
	if isDot(word[0]) {
		return true
	}

	var slashCount int
	var hasAt, hasColon bool
	for _, e := range word {
		if isSlash(e) {
			slashCount++
		}
		if isAtSymbol(e) {
			hasAt = true
		}
		if isColon(e) {
			hasColon = true
		}
	}
	if slashCount > 0 {
		return true
	}
	if hasAt {
		return true
	}
	if hasColon && len(word) >= 2 {
		return true
	}

	if len(word) >= 3 {
		prefixLen := len(word)
		if prefixLen > 5 {
			prefixLen = 5
		}
		var prefix [5]byte
		for i := 0; i < prefixLen; i++ {
			prefix[i] = toASCIILower(word[i])
		}
		if prefix[0] == 'w' && prefix[1] == 'w' && prefix[2] == 'w' {
			return true
		}
		if len(word) >= 4 && prefix[0] == 'h' && prefix[1] == 't' && prefix[2] == 't' && prefix[3] == 'p' {
			return true
		}
		if prefix[0] == 'f' && prefix[1] == 't' && prefix[2] == 'p' {
			return true
		}
	}

	return false
}

// IsSnakeCase reports whether word contains an underscore, e.g.
// my_variable.
func IsSnakeCase(word []wire.KeyEntry) bool {
	if len(word) < 3 {
		return false
	}
	for _, e := range word {
		if isUnderscore(e) {
			return true
		}
	}
	return false
}

// IsAllCapsAcronym reports whether word is 2-5 characters of nothing
// but uppercase letters, e.g. API, URL, HTTP, DNS.
func IsAllCapsAcronym(word []wire.KeyEntry) bool {
	if len(word) < 2 || len(word) > 5 {
		return false
	}
	letters := 0
	for _, e := range word {
		if !wire.IsLetter(e.Code) {
			return false
		}
		if !isUppercase(e) {
			return false
		}
		letters++
	}
	return letters >= 2
}

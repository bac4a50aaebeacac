package wire

// KeyEntry is a (scancode, shift-flag) pair recorded at press time: the
// shift flag captures whether the shift modifier was held when the key
// went down, so a word can be retyped with its original case preserved.
type KeyEntry struct {
	Code    Scancode
	Shifted bool
}

// Linux kernel scancodes (include/uapi/linux/input-event-codes.h) for the
// keys this package cares about. Values are bit-exact with the host
// kernel so the wire codec round-trips correctly.
const (
	KeyEsc        Scancode = 1
	Key1          Scancode = 2
	Key2          Scancode = 3
	Key3          Scancode = 4
	Key4          Scancode = 5
	Key5          Scancode = 6
	Key6          Scancode = 7
	Key7          Scancode = 8
	Key8          Scancode = 9
	Key9          Scancode = 10
	Key0          Scancode = 11
	KeyMinus      Scancode = 12
	KeyEqual      Scancode = 13
	KeyBackspace  Scancode = 14
	KeyTab        Scancode = 15
	KeyQ          Scancode = 16
	KeyW          Scancode = 17
	KeyE          Scancode = 18
	KeyR          Scancode = 19
	KeyT          Scancode = 20
	KeyY          Scancode = 21
	KeyU          Scancode = 22
	KeyI          Scancode = 23
	KeyO          Scancode = 24
	KeyP          Scancode = 25
	KeyLeftBrace  Scancode = 26
	KeyRightBrace Scancode = 27
	KeyEnter      Scancode = 28
	KeyLeftCtrl   Scancode = 29
	KeyA          Scancode = 30
	KeyS          Scancode = 31
	KeyD          Scancode = 32
	KeyF          Scancode = 33
	KeyG          Scancode = 34
	KeyH          Scancode = 35
	KeyJ          Scancode = 36
	KeyK          Scancode = 37
	KeyL          Scancode = 38
	KeySemicolon  Scancode = 39
	KeyApostrophe Scancode = 40
	KeyGrave      Scancode = 41
	KeyLeftShift  Scancode = 42
	KeyBackslash  Scancode = 43
	KeyZ          Scancode = 44
	KeyX          Scancode = 45
	KeyC          Scancode = 46
	KeyV          Scancode = 47
	KeyB          Scancode = 48
	KeyN          Scancode = 49
	KeyM          Scancode = 50
	KeyComma      Scancode = 51
	KeyDot        Scancode = 52
	KeySlash      Scancode = 53
	KeyRightShift Scancode = 54
	KeyKPAsterisk Scancode = 55
	KeyLeftAlt    Scancode = 56
	KeySpace      Scancode = 57
	KeyCapsLock   Scancode = 58
	KeyF1         Scancode = 59
	KeyF2         Scancode = 60
	KeyF3         Scancode = 61
	KeyF4         Scancode = 62
	KeyF5         Scancode = 63
	KeyF6         Scancode = 64
	KeyF7         Scancode = 65
	KeyF8         Scancode = 66
	KeyF9         Scancode = 67
	KeyF10        Scancode = 68
	KeyNumLock    Scancode = 69
	KeyScrollLock Scancode = 70

	KeyKPEnter  Scancode = 96
	KeyRightCtrl Scancode = 97
	KeyRightAlt Scancode = 100
	KeyHome     Scancode = 102
	KeyUp       Scancode = 103
	KeyPageUp   Scancode = 104
	KeyLeft     Scancode = 105
	KeyRight    Scancode = 106
	KeyEnd      Scancode = 107
	KeyDown     Scancode = 108
	KeyPageDown Scancode = 109
	KeyInsert   Scancode = 110
	KeyDelete   Scancode = 111

	KeyPause     Scancode = 119
	KeyLeftMeta  Scancode = 125
	KeyRightMeta Scancode = 126

	KeyF11 Scancode = 87
	KeyF12 Scancode = 88
)

// scancodeToLower maps the scancodes this daemon can type to the lowercase
// ASCII character that key produces in a US QWERTY layout. Zero means
// "not a recognised textual key". Built from the kernel's own layout of
// the top two letter rows plus the home/bottom row and common
// punctuation — the same physical-key set the original C++
// scancode_map.hpp table covers.
var scancodeToLower = map[Scancode]byte{
	Key1: '1', Key2: '2', Key3: '3', Key4: '4', Key5: '5',
	Key6: '6', Key7: '7', Key8: '8', Key9: '9', Key0: '0',
	KeyMinus: '-', KeyEqual: '=',
	KeyQ: 'q', KeyW: 'w', KeyE: 'e', KeyR: 'r', KeyT: 't',
	KeyY: 'y', KeyU: 'u', KeyI: 'i', KeyO: 'o', KeyP: 'p',
	KeyLeftBrace: '[', KeyRightBrace: ']',
	KeyA: 'a', KeyS: 's', KeyD: 'd', KeyF: 'f', KeyG: 'g',
	KeyH: 'h', KeyJ: 'j', KeyK: 'k', KeyL: 'l',
	KeySemicolon: ';', KeyApostrophe: '\'', KeyGrave: '`', KeyBackslash: '\\',
	KeyZ: 'z', KeyX: 'x', KeyC: 'c', KeyV: 'v', KeyB: 'b',
	KeyN: 'n', KeyM: 'm', KeyComma: ',', KeyDot: '.', KeySlash: '/',
	KeySpace: ' ', KeyTab: '\t',
}

// shiftedSymbol maps a base scancode to the character produced when shift
// is held, for the punctuation keys whose shifted form is not simply the
// uppercase letter (e.g. '_', '@', ':').
var shiftedSymbol = map[Scancode]byte{
	KeyMinus:      '_',
	Key2:          '@',
	KeySemicolon:  ':',
	KeySlash:      '?',
	KeyDot:        '>',
	KeyComma:      '<',
	KeyApostrophe: '"',
}

// ToASCII returns the lowercase ASCII character a KeyEntry represents, or
// 0 if the scancode is not a recognised textual key. Letters are folded
// to lowercase regardless of the shift flag: callers that need the
// shifted form use ShiftedSymbol or apply case themselves.
func (k KeyEntry) ToASCII() byte {
	return scancodeToLower[k.Code]
}

// ShiftedSymbol returns the character produced by this scancode with
// shift held, if that character differs from the unshifted letter case
// (e.g. '-' + shift = '_'). Returns 0 for keys with no special shifted
// punctuation form.
func (k KeyEntry) ShiftedSymbol() byte {
	return shiftedSymbol[k.Code]
}

// IsLetter reports whether code is one of the 26 letter keys.
func IsLetter(code Scancode) bool {
	switch code {
	case KeyQ, KeyW, KeyE, KeyR, KeyT, KeyY, KeyU, KeyI, KeyO, KeyP,
		KeyA, KeyS, KeyD, KeyF, KeyG, KeyH, KeyJ, KeyK, KeyL,
		KeyZ, KeyX, KeyC, KeyV, KeyB, KeyN, KeyM:
		return true
	}
	return false
}

// IsModifier reports whether code is one of the eight tracked modifier
// keys.
func IsModifier(code Scancode) bool {
	switch code {
	case KeyLeftShift, KeyRightShift, KeyLeftCtrl, KeyRightCtrl,
		KeyLeftAlt, KeyRightAlt, KeyLeftMeta, KeyRightMeta:
		return true
	}
	return false
}

// IsDelimiter reports whether code ends a word (space or tab).
func IsDelimiter(code Scancode) bool {
	return code == KeySpace || code == KeyTab
}

// IsTrailingPunctuation reports whether code is one of the punctuation
// marks kept in the word buffer for transit but stripped for analysis.
func IsTrailingPunctuation(code Scancode) bool {
	switch code {
	case KeyDot, KeyComma, KeySemicolon, KeyApostrophe, KeySlash, KeyMinus:
		return true
	}
	return false
}

// IsEnter reports whether code is Enter or keypad Enter.
func IsEnter(code Scancode) bool {
	return code == KeyEnter || code == KeyKPEnter
}

// IsNavigation reports whether code is an arrow, home/end, page, insert
// or delete key.
func IsNavigation(code Scancode) bool {
	switch code {
	case KeyUp, KeyDown, KeyLeft, KeyRight, KeyHome, KeyEnd,
		KeyPageUp, KeyPageDown, KeyInsert, KeyDelete:
		return true
	}
	return false
}

// IsFunctionKey reports whether code is F1-F12.
func IsFunctionKey(code Scancode) bool {
	switch code {
	case KeyF1, KeyF2, KeyF3, KeyF4, KeyF5, KeyF6,
		KeyF7, KeyF8, KeyF9, KeyF10, KeyF11, KeyF12:
		return true
	}
	return false
}

// keyNames maps the config file's lowercase key names to scancodes, for
// the `hotkey.modifier`/`hotkey.key` and delay-table option keys.
var keyNames = map[string]Scancode{
	"leftctrl": KeyLeftCtrl, "rightctrl": KeyRightCtrl,
	"leftalt": KeyLeftAlt, "rightalt": KeyRightAlt,
	"leftshift": KeyLeftShift, "rightshift": KeyRightShift,
	"leftmeta": KeyLeftMeta, "rightmeta": KeyRightMeta,
	"grave": KeyGrave, "space": KeySpace, "tab": KeyTab,
	"backslash": KeyBackslash, "capslock": KeyCapsLock,
	"pause": KeyPause,
}

// KeyNameToCode resolves a config key name (as listed in §6) to its
// scancode. The lookup is case-sensitive: only the lowercase names in
// keyNames match, and config loading passes names through unchanged.
func KeyNameToCode(name string) (Scancode, bool) {
	code, ok := keyNames[name]
	return code, ok
}

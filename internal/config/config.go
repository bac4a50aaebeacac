// Package config loads, validates and hot-watches the daemon's
// YAML-like configuration file into a typed, immutable ConfigSnapshot,
// the unit the router and control plane publish and read atomically.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// AutoSwitchConfig holds the decision engine's tunables.
type AutoSwitchConfig struct {
	Enabled    bool    `mapstructure:"enabled"`
	MinWordLen int     `mapstructure:"min_word_len"`
	MinScore   float64 `mapstructure:"min_score"`
	Threshold  float64 `mapstructure:"threshold"`
}

// DelaysConfig holds the macro injector's timing profile, in
// milliseconds as read from file; converted to time.Duration by
// Delays().
type DelaysConfig struct {
	KeyPressMs      int `mapstructure:"key_press"`
	LayoutSwitchMs  int `mapstructure:"layout_switch"`
	RetypeMs        int `mapstructure:"retype"`
	TurboKeyPressMs int `mapstructure:"turbo_key_press"`
	TurboRetypeMs   int `mapstructure:"turbo_retype"`
}

// HotkeyConfig names the modifier+key chord the desktop listens for to
// switch its active keyboard layout, by the key names in §6 (grave,
// space, tab, leftctrl, ...).
type HotkeyConfig struct {
	Modifier string `mapstructure:"modifier"`
	Key      string `mapstructure:"key"`
}

// SoundConfig toggles the notification sound played on layout switch.
type SoundConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// ConfigSnapshot is the immutable, atomically-published unit the
// router and control plane share. A fresh one is built on every
// successful load or RELOAD; nothing in it is ever mutated in place.
type ConfigSnapshot struct {
	AutoSwitch AutoSwitchConfig `mapstructure:"auto_switch"`
	Delays     DelaysConfig     `mapstructure:"delays"`
	Hotkey     HotkeyConfig     `mapstructure:"hotkey"`
	Sound      SoundConfig      `mapstructure:"sound"`

	// Path is the file this snapshot was loaded from, empty if it is
	// the built-in default with no file found.
	Path string
}

// Delays converts the millisecond fields read from file into
// durations the macro package consumes directly.
func (d DelaysConfig) Delays() (keyPress, layoutSwitch, retype, turboKeyPress, turboRetype time.Duration) {
	return time.Duration(d.KeyPressMs) * time.Millisecond,
		time.Duration(d.LayoutSwitchMs) * time.Millisecond,
		time.Duration(d.RetypeMs) * time.Millisecond,
		time.Duration(d.TurboKeyPressMs) * time.Millisecond,
		time.Duration(d.TurboRetypeMs) * time.Millisecond
}

// ReloadResult is the structured {success, message} pair the original
// implementation's reload callback returned, preferred over a bare
// bool per spec.md's Open Questions resolution.
type ReloadResult struct {
	Success bool
	Message string
}

func ok(msg string) ReloadResult   { return ReloadResult{Success: true, Message: msg} }
func fail(msg string) ReloadResult { return ReloadResult{Success: false, Message: msg} }

// SearchPaths returns the user-then-system lookup order: homeDir's
// UserConfigRelPath first, SystemConfigPath as the fallback. homeDir
// is the resolved desktop user's $HOME (from internal/session), not
// necessarily the daemon process's own.
func SearchPaths(homeDir string) []string {
	var paths []string
	if homeDir != "" {
		paths = append(paths, filepath.Join(homeDir, UserConfigRelPath))
	}
	paths = append(paths, SystemConfigPath)
	return paths
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	d := NewDefault()
	v.SetDefault("auto_switch.enabled", d.AutoSwitch.Enabled)
	v.SetDefault("auto_switch.min_word_len", d.AutoSwitch.MinWordLen)
	v.SetDefault("auto_switch.min_score", d.AutoSwitch.MinScore)
	v.SetDefault("auto_switch.threshold", d.AutoSwitch.Threshold)

	v.SetDefault("delays.key_press", d.Delays.KeyPressMs)
	v.SetDefault("delays.layout_switch", d.Delays.LayoutSwitchMs)
	v.SetDefault("delays.retype", d.Delays.RetypeMs)
	v.SetDefault("delays.turbo_key_press", d.Delays.TurboKeyPressMs)
	v.SetDefault("delays.turbo_retype", d.Delays.TurboRetypeMs)

	v.SetDefault("hotkey.modifier", d.Hotkey.Modifier)
	v.SetDefault("hotkey.key", d.Hotkey.Key)

	v.SetDefault("sound.enabled", d.Sound.Enabled)
	return v
}

// Load reads the first existing path out of paths (falling back to
// built-in defaults if none exist or path is empty), and unmarshals it
// into a ConfigSnapshot. If explicitPath is non-empty it is tried
// first and any read error is fatal; otherwise paths is searched in
// order and a missing file is not an error.
func Load(explicitPath string, paths []string) (*ConfigSnapshot, error) {
	v := newViper()

	candidates := paths
	if explicitPath != "" {
		candidates = []string{explicitPath}
	}

	found := ""
	for _, p := range candidates {
		if p == "" {
			continue
		}
		v.SetConfigFile(p)
		if err := v.ReadInConfig(); err != nil {
			if explicitPath != "" {
				return nil, fmt.Errorf("config: read %s: %w", p, err)
			}
			continue
		}
		found = p
		break
	}

	snap := &ConfigSnapshot{}
	if err := v.Unmarshal(snap); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	snap.Path = found
	return snap, nil
}

// Reload attempts to load path (or the search order if path is empty)
// and reports a structured ReloadResult rather than a bare bool; on
// failure the caller's existing snapshot must be left untouched.
func Reload(path string, searchPaths []string) (*ConfigSnapshot, ReloadResult) {
	snap, err := Load(path, searchPaths)
	if err != nil {
		return nil, fail(err.Error())
	}
	where := snap.Path
	if where == "" {
		where = "<defaults>"
	}
	return snap, ok(fmt.Sprintf("reloaded from %s", where))
}

// ExistingPaths filters paths down to the ones worth handing to
// fsnotify, using samber/lo the way the teacher's loaders favour it
// over a hand-rolled filter loop for non-hot-path slice work.
func ExistingPaths(paths []string, exists func(string) bool) []string {
	return lo.Filter(paths, func(p string, _ int) bool { return exists(p) })
}

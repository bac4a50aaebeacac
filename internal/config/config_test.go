package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewDefaultMatchesConstants(t *testing.T) {
	d := NewDefault()
	if d.AutoSwitch.Enabled != DefaultEnabled || d.AutoSwitch.MinWordLen != DefaultMinWordLen {
		t.Errorf("NewDefault().AutoSwitch = %+v, want the Default* constants", d.AutoSwitch)
	}
	if d.Hotkey.Modifier != DefaultHotkeyModifier || d.Hotkey.Key != DefaultHotkeyKey {
		t.Errorf("NewDefault().Hotkey = %+v", d.Hotkey)
	}
	if d.Path != "" {
		t.Errorf("a fresh default snapshot should have no Path, got %q", d.Path)
	}
}

func TestDelaysConvertsMillisecondsToDurations(t *testing.T) {
	dc := DelaysConfig{KeyPressMs: 30, LayoutSwitchMs: 40, RetypeMs: 8, TurboKeyPressMs: 15, TurboRetypeMs: 3}
	keyPress, layoutSwitch, retype, turboKeyPress, turboRetype := dc.Delays()
	if keyPress != 30*time.Millisecond {
		t.Errorf("keyPress = %v, want 30ms", keyPress)
	}
	if layoutSwitch != 40*time.Millisecond {
		t.Errorf("layoutSwitch = %v, want 40ms", layoutSwitch)
	}
	if retype != 8*time.Millisecond || turboKeyPress != 15*time.Millisecond || turboRetype != 3*time.Millisecond {
		t.Errorf("retype/turboKeyPress/turboRetype = %v/%v/%v", retype, turboKeyPress, turboRetype)
	}
}

func TestSearchPathsOrdersUserBeforeSystem(t *testing.T) {
	paths := SearchPaths("/home/alice")
	if len(paths) != 2 {
		t.Fatalf("SearchPaths returned %d entries, want 2", len(paths))
	}
	if paths[0] != filepath.Join("/home/alice", UserConfigRelPath) {
		t.Errorf("paths[0] = %q, want the user config path", paths[0])
	}
	if paths[1] != SystemConfigPath {
		t.Errorf("paths[1] = %q, want SystemConfigPath", paths[1])
	}
}

func TestSearchPathsEmptyHomeOnlySystem(t *testing.T) {
	paths := SearchPaths("")
	if len(paths) != 1 || paths[0] != SystemConfigPath {
		t.Errorf("SearchPaths(\"\") = %v, want only [SystemConfigPath]", paths)
	}
}

func TestLoadFallsBackToDefaultsWhenNothingFound(t *testing.T) {
	dir := t.TempDir()
	snap, err := Load("", []string{filepath.Join(dir, "missing.yaml")})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.Path != "" {
		t.Errorf("Path = %q, want empty when no file was found", snap.Path)
	}
	if snap.AutoSwitch.MinWordLen != DefaultMinWordLen {
		t.Errorf("AutoSwitch.MinWordLen = %d, want the default %d", snap.AutoSwitch.MinWordLen, DefaultMinWordLen)
	}
}

func TestLoadReadsAnExistingFileAndOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "auto_switch:\n  enabled: false\n  min_word_len: 4\nhotkey:\n  modifier: leftalt\n  key: tab\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("writing fixture config: %v", err)
	}

	snap, err := Load("", []string{path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.Path != path {
		t.Errorf("Path = %q, want %q", snap.Path, path)
	}
	if snap.AutoSwitch.Enabled {
		t.Error("auto_switch.enabled should have been overridden to false")
	}
	if snap.AutoSwitch.MinWordLen != 4 {
		t.Errorf("MinWordLen = %d, want 4", snap.AutoSwitch.MinWordLen)
	}
	if snap.Hotkey.Modifier != "leftalt" || snap.Hotkey.Key != "tab" {
		t.Errorf("Hotkey = %+v, want leftalt/tab", snap.Hotkey)
	}
	// Fields the fixture doesn't mention should keep their defaults.
	if snap.Sound.Enabled != DefaultSoundEnabled {
		t.Errorf("Sound.Enabled = %v, want the untouched default %v", snap.Sound.Enabled, DefaultSoundEnabled)
	}
}

func TestLoadSkipsMissingEntriesInSearchOrder(t *testing.T) {
	dir := t.TempDir()
	real := filepath.Join(dir, "real.yaml")
	if err := os.WriteFile(real, []byte("hotkey:\n  modifier: rightctrl\n  key: space\n"), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	missing := filepath.Join(dir, "missing.yaml")

	snap, err := Load("", []string{missing, real})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.Path != real {
		t.Errorf("Path = %q, want the real file found after skipping the missing one", snap.Path)
	}
	if snap.Hotkey.Modifier != "rightctrl" {
		t.Errorf("Hotkey.Modifier = %q, want rightctrl", snap.Hotkey.Modifier)
	}
}

func TestLoadExplicitPathErrorsIfUnreadable(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "does-not-exist.yaml"), nil); err == nil {
		t.Error("Load with an explicit missing path should return an error")
	}
}

func TestReloadReportsStructuredResult(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("sound:\n  enabled: true\n"), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	snap, result := Reload("", []string{path})
	if !result.Success {
		t.Fatalf("Reload should succeed, got %+v", result)
	}
	if snap.Sound.Enabled != true {
		t.Error("reloaded snapshot should reflect the file's sound.enabled: true")
	}

	_, failResult := Reload(filepath.Join(dir, "nope.yaml"), nil)
	if failResult.Success {
		t.Error("Reload with an explicit missing path should report failure")
	}
}

func TestExistingPathsFiltersToPresentFiles(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "present.yaml")
	os.WriteFile(present, []byte(""), 0644)
	absent := filepath.Join(dir, "absent.yaml")

	got := ExistingPaths([]string{absent, present}, func(p string) bool {
		_, err := os.Stat(p)
		return err == nil
	})
	if len(got) != 1 || got[0] != present {
		t.Errorf("ExistingPaths = %v, want only [%s]", got, present)
	}
}

func TestNewWatcherFiresOnChangeAfterDebounce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("sound:\n  enabled: false\n"), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	fired := make(chan struct{}, 1)
	w, err := NewWatcher([]string{path}, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("sound:\n  enabled: true\n"), 0644); err != nil {
		t.Fatalf("rewriting fixture: %v", err)
	}

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Error("onChange was not invoked within 2s of the watched file changing")
	}
}

func TestNewWatcherSkipsPathsThatDoNotExist(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher([]string{filepath.Join(dir, "never-created.yaml")}, func() {})
	if err != nil {
		t.Fatalf("NewWatcher should tolerate an absent path, got: %v", err)
	}
	w.Close()
}

package config

// Default configuration values, used both to seed viper and as the
// values a brand-new ConfigSnapshot carries before any file is read.
const (
	DefaultEnabled    = true
	DefaultMinWordLen = 2
	DefaultMinScore   = 2.0
	DefaultThreshold  = 1.5

	DefaultKeyPressMs      = 30
	DefaultLayoutSwitchMs  = 40
	DefaultRetypeMs        = 8
	DefaultTurboKeyPressMs = 15
	DefaultTurboRetypeMs   = 3

	DefaultHotkeyModifier = "leftctrl"
	DefaultHotkeyKey      = "grave"

	DefaultSoundEnabled = false
)

// UserConfigRelPath is the user config file's path relative to the
// resolved desktop user's $HOME.
const UserConfigRelPath = ".config/punto/config.yaml"

// SystemConfigPath is the fallback path consulted when no user config
// is found, matching the original daemon's /etc layout.
const SystemConfigPath = "/etc/punto/config.yaml"

// NewDefault returns a ConfigSnapshot with every default value, used
// both before the first successful load and as the base viper
// defaults are registered against.
func NewDefault() *ConfigSnapshot {
	return &ConfigSnapshot{
		AutoSwitch: AutoSwitchConfig{
			Enabled:    DefaultEnabled,
			MinWordLen: DefaultMinWordLen,
			MinScore:   DefaultMinScore,
			Threshold:  DefaultThreshold,
		},
		Delays: DelaysConfig{
			KeyPressMs:      DefaultKeyPressMs,
			LayoutSwitchMs:  DefaultLayoutSwitchMs,
			RetypeMs:        DefaultRetypeMs,
			TurboKeyPressMs: DefaultTurboKeyPressMs,
			TurboRetypeMs:   DefaultTurboRetypeMs,
		},
		Hotkey: HotkeyConfig{
			Modifier: DefaultHotkeyModifier,
			Key:      DefaultHotkeyKey,
		},
		Sound: SoundConfig{
			Enabled: DefaultSoundEnabled,
		},
	}
}

// Package config loads the user configuration from the XDG config
// directory, fills missing sections with defaults and translates the
// result into the behavior switches the window manager core consumes.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"

	"github.com/dodorz/mosaic/internal/platform"
	"github.com/dodorz/mosaic/internal/wm"
)

// configFile is the path of the config file under the XDG config root.
const configFile = "mosaic/config.toml"

// UserConfig represents the user's custom configuration.
type UserConfig struct {
	General        GeneralConfig        `toml:"general"`
	WindowBehavior WindowBehaviorConfig `toml:"window_behavior"`
}

// GeneralConfig holds top-level behavior settings.
type GeneralConfig struct {
	// FocusFollowsCursor moves focus to the window under the cursor on
	// plain pointer motion (default: false).
	FocusFollowsCursor *bool `toml:"focus_follows_cursor"`
	// DragModifier is the key held with the primary button to drag a
	// window: alt, super, shift, ctrl (default: alt).
	DragModifier string `toml:"drag_modifier"`
}

// WindowBehaviorConfig groups per-state window behavior.
type WindowBehaviorConfig struct {
	Floating FloatingBehaviorConfig `toml:"floating"`
}

// FloatingBehaviorConfig is the placement policy for windows entering
// the floating state through a command (interactive drags place the
// window under the cursor instead).
type FloatingBehaviorConfig struct {
	// Centered places newly floated windows at the workspace center
	// (default: true).
	Centered *bool `toml:"centered"`
	// ShownOnTop keeps floated windows above tiled ones (default: false).
	ShownOnTop bool `toml:"shown_on_top"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *UserConfig {
	f, c := false, true
	return &UserConfig{
		General: GeneralConfig{
			FocusFollowsCursor: &f,
			DragModifier:       "alt",
		},
		WindowBehavior: WindowBehaviorConfig{
			Floating: FloatingBehaviorConfig{
				Centered:   &c,
				ShownOnTop: false,
			},
		},
	}
}

// dragModifierKeys maps config names to platform keys.
var dragModifierKeys = map[string]platform.Key{
	"alt":   platform.KeyAlt,
	"super": platform.KeySuper,
	"shift": platform.KeyShift,
	"ctrl":  platform.KeyCtrl,
}

// Settings translates the config into the pipeline's switches.
func (c *UserConfig) Settings() wm.Settings {
	s := wm.Settings{DragModifier: platform.KeyAlt}
	if c.General.FocusFollowsCursor != nil {
		s.FocusFollowsCursor = *c.General.FocusFollowsCursor
	}
	if key, ok := dragModifierKeys[strings.ToLower(c.General.DragModifier)]; ok {
		s.DragModifier = key
	}
	return s
}

// FloatingDefaults translates the floating placement policy.
func (c *UserConfig) FloatingDefaults() wm.FloatingConfig {
	fc := wm.FloatingConfig{
		Centered:   true,
		ShownOnTop: c.WindowBehavior.Floating.ShownOnTop,
	}
	if c.WindowBehavior.Floating.Centered != nil {
		fc.Centered = *c.WindowBehavior.Floating.Centered
	}
	return fc
}

// LoadUserConfig loads the user configuration from the XDG config
// directory, creating a commented default file on first run.
func LoadUserConfig() (*UserConfig, error) {
	configPath, err := xdg.SearchConfigFile(configFile)
	if err != nil {
		return createDefaultConfig()
	}

	// #nosec G304 - configPath is from XDG search, reading user config is intentional
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return cfg, nil
}

// Parse decodes, defaults and validates a raw TOML config.
func Parse(data []byte) (*UserConfig, error) {
	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	fillMissing(&cfg, DefaultConfig())
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// fillMissing fills absent settings with defaults.
func fillMissing(cfg, defaultCfg *UserConfig) {
	if cfg.General.FocusFollowsCursor == nil {
		cfg.General.FocusFollowsCursor = defaultCfg.General.FocusFollowsCursor
	}
	if cfg.General.DragModifier == "" {
		cfg.General.DragModifier = defaultCfg.General.DragModifier
	}
	if cfg.WindowBehavior.Floating.Centered == nil {
		cfg.WindowBehavior.Floating.Centered = defaultCfg.WindowBehavior.Floating.Centered
	}
}

// validate rejects values outside the documented sets.
func validate(cfg *UserConfig) error {
	if _, ok := dragModifierKeys[strings.ToLower(cfg.General.DragModifier)]; !ok {
		return fmt.Errorf("config error in [general]: drag_modifier %q is not one of alt, super, shift, ctrl",
			cfg.General.DragModifier)
	}
	return nil
}

// createDefaultConfig creates a default config file in the user's
// config directory.
func createDefaultConfig() (*UserConfig, error) {
	cfg := DefaultConfig()

	configPath, err := xdg.ConfigFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# Mosaic Configuration File\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + configPath + "\n")
	sb.WriteString("#\n")
	sb.WriteString("# [general]\n")
	sb.WriteString("# focus_follows_cursor: focus the window under the cursor on motion\n")
	sb.WriteString("#   Options: true, false (default: false)\n")
	sb.WriteString("# drag_modifier: key held with the left button to drag windows\n")
	sb.WriteString("#   Options: alt, super, shift, ctrl (default: alt)\n")
	sb.WriteString("#\n")
	sb.WriteString("# [window_behavior.floating]\n")
	sb.WriteString("# centered: place windows floated by command at the workspace center\n")
	sb.WriteString("#   Options: true, false (default: true)\n")
	sb.WriteString("# shown_on_top: keep floated windows above tiled ones\n")
	sb.WriteString("#   Options: true, false (default: false)\n\n")
	sb.Write(data)

	if err := os.WriteFile(configPath, []byte(sb.String()), 0600); err != nil {
		return nil, fmt.Errorf("failed to write config file: %w", err)
	}
	return cfg, nil
}

// GetConfigPath returns the path of the config file, or where it would
// be created when it does not exist yet.
func GetConfigPath() (string, error) {
	path, err := xdg.SearchConfigFile(configFile)
	if err != nil {
		return xdg.ConfigFile(configFile)
	}
	return path, nil
}

package config

// Overrides contains CLI flag values that can override user config.
// Nil pointers indicate the flag was not set and the user config value
// stands.
type Overrides struct {
	// FocusFollowsCursor overrides general.focus_follows_cursor.
	FocusFollowsCursor *bool

	// DragModifier overrides general.drag_modifier.
	DragModifier string
}

// ApplyOverrides applies CLI flag overrides to the loaded config.
func ApplyOverrides(overrides Overrides, userConfig *UserConfig) {
	if overrides.FocusFollowsCursor != nil {
		v := *overrides.FocusFollowsCursor
		userConfig.General.FocusFollowsCursor = &v
	}
	if overrides.DragModifier != "" {
		userConfig.General.DragModifier = overrides.DragModifier
	}
}

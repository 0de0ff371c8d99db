// Package mosaic provides the public API for embedding the mosaic
// desktop in other bubbletea applications.
//
// Basic usage:
//
//	package main
//
//	import (
//	    tea "charm.land/bubbletea/v2"
//	    "github.com/dodorz/mosaic/pkg/mosaic"
//	)
//
//	func main() {
//	    model := mosaic.New(
//	        mosaic.WithInitialWindows(3),
//	        mosaic.WithFocusFollowsCursor(true),
//	    )
//	    p := tea.NewProgram(model)
//	    p.Run()
//	}
package mosaic

import (
	"github.com/charmbracelet/log"

	"github.com/dodorz/mosaic/internal/app"
	"github.com/dodorz/mosaic/internal/config"
)

// Model is the desktop model that implements tea.Model. It wraps the
// internal Desk struct and provides a clean public API.
type Model = app.Desk

// Options configures a mosaic instance.
type Options struct {
	// InitialWindows is the number of windows opened on startup.
	// Default is 2.
	InitialWindows int

	// FocusFollowsCursor focuses the window under the pointer as the
	// pointer moves. Nil leaves the user config (or default) in place.
	FocusFollowsCursor *bool

	// DragModifier is the key held to drag windows with the pointer.
	// Valid values: "alt", "super", "shift", "ctrl". Empty leaves the
	// user config (or default) in place.
	DragModifier string

	// Logger receives pipeline and synchronizer diagnostics. If nil,
	// the default logger is used.
	Logger *log.Logger

	// UserConfig is a custom user configuration. If nil, defaults are
	// used; the on-disk config is never read by this package.
	UserConfig *config.UserConfig
}

// Option is a functional option for configuring mosaic.
type Option func(*Options)

// WithInitialWindows sets how many windows open on startup.
func WithInitialWindows(n int) Option {
	return func(o *Options) {
		if n < 0 {
			n = 0
		}
		o.InitialWindows = n
	}
}

// WithFocusFollowsCursor enables or disables focus-follows-cursor.
func WithFocusFollowsCursor(enabled bool) Option {
	return func(o *Options) {
		o.FocusFollowsCursor = &enabled
	}
}

// WithDragModifier sets the pointer-drag modifier key.
func WithDragModifier(key string) Option {
	return func(o *Options) {
		o.DragModifier = key
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger *log.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithUserConfig sets a custom user configuration.
func WithUserConfig(cfg *config.UserConfig) Option {
	return func(o *Options) {
		o.UserConfig = cfg
	}
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{
		InitialWindows: 2,
	}
}

// New creates a new mosaic model with the given options.
// This is the main entry point for using mosaic as a library.
func New(opts ...Option) *Model {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return newModel(options)
}

// newModel creates the internal model with applied options.
func newModel(options Options) *Model {
	userConfig := options.UserConfig
	if userConfig == nil {
		userConfig = config.DefaultConfig()
	}
	config.ApplyOverrides(config.Overrides{
		FocusFollowsCursor: options.FocusFollowsCursor,
		DragModifier:       options.DragModifier,
	}, userConfig)

	return app.NewDesk(app.Options{
		UserConfig:     userConfig,
		Logger:         options.Logger,
		InitialWindows: options.InitialWindows,
	})
}

// Package main implements mosaic, a tiling window manager core with an
// interactive demo desktop. The demo runs the manager against a
// simulated platform in the terminal: windows tile automatically, drag
// them with alt+left button, and toggle floating, minimized and
// fullscreen states from the keyboard.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/dodorz/mosaic/internal/config"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags
var (
	debugMode          bool
	focusFollowsCursor bool
	dragModifier       string
	initialWindows     int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mosaic",
		Short: "Tiling window manager demo desktop",
		Long: `Mosaic - tiling window manager core

Runs the window manager against a simulated desktop in your terminal.
Windows tile automatically; hold alt and drag with the left button to
float a window, and use the keyboard to change window states.

Keys: n new, x close, f float, m minimize, z fullscreen,
space retile all, tab cycle focus, q quit.`,
		Example: `  # Run the demo desktop
  mosaic

  # Focus the window under the cursor on motion
  mosaic --focus-follows-cursor

  # Use super instead of alt as the drag modifier
  mosaic --drag-modifier super

  # Print the configuration file path
  mosaic config path`,
		Version: version,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLocal(cmd)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.Flags().BoolVar(&focusFollowsCursor, "focus-follows-cursor", false, "Focus the window under the cursor on motion (default: from config)")
	rootCmd.Flags().StringVar(&dragModifier, "drag-modifier", "", "Key held with the left button to drag windows: alt, super, shift, ctrl (default: from config or alt)")
	rootCmd.Flags().IntVar(&initialWindows, "windows", 2, "Number of demo windows to open on startup")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage mosaic configuration",
		Long:  `Manage the mosaic configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		RunE: func(_ *cobra.Command, _ []string) error {
			return printConfigPath()
		},
	}

	configShowCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long:  `Print the configuration after defaults have been filled in`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return showConfig()
		},
	}

	configCmd.AddCommand(configPathCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s", version, commit, date)),
	); err != nil {
		os.Exit(1)
	}
}

func printConfigPath() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}
	fmt.Println(path)
	return nil
}

func showConfig() error {
	cfg, err := config.LoadUserConfig()
	if err != nil {
		return err
	}
	s := cfg.Settings()
	fmt.Printf("focus_follows_cursor = %v\n", s.FocusFollowsCursor)
	fmt.Printf("drag_modifier = %q\n", cfg.General.DragModifier)
	fc := cfg.FloatingDefaults()
	fmt.Printf("floating.centered = %v\n", fc.Centered)
	fmt.Printf("floating.shown_on_top = %v\n", fc.ShownOnTop)
	return nil
}

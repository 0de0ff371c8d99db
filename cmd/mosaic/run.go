package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dodorz/mosaic/internal/config"
	"github.com/dodorz/mosaic/pkg/mosaic"
)

// normalFPS is the render tick rate of the demo desktop.
const normalFPS = 30

// filterMouseMotion drops plain motion events unless something can act
// on them: a drag in progress or focus-follow enabled. Without the
// filter every cursor move wakes the update loop for nothing.
func filterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}
	desk, ok := model.(*mosaic.Model)
	if !ok {
		return msg
	}
	if desk.WantsMotion(msg.(tea.MouseMotionMsg)) {
		return msg
	}
	return nil
}

func runLocal(cmd *cobra.Command) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if debugMode {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.ErrorLevel)
	}

	userConfig, err := config.LoadUserConfig()
	if err != nil {
		logger.Warn("failed to load config, using defaults", "err", err)
		userConfig = config.DefaultConfig()
	}

	if debugMode {
		configPath, _ := config.GetConfigPath()
		logger.Debug("configuration", "path", configPath)
	}

	opts := []mosaic.Option{
		mosaic.WithUserConfig(userConfig),
		mosaic.WithLogger(logger),
		mosaic.WithInitialWindows(initialWindows),
	}
	if cmd.Flags().Changed("focus-follows-cursor") {
		opts = append(opts, mosaic.WithFocusFollowsCursor(focusFollowsCursor))
	}
	if dragModifier != "" {
		opts = append(opts, mosaic.WithDragModifier(dragModifier))
	}
	desk := mosaic.New(opts...)

	p := tea.NewProgram(
		desk,
		tea.WithFPS(normalFPS),
		tea.WithoutSignalHandler(),
		tea.WithFilter(filterMouseMotion),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Send(tea.QuitMsg{})
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

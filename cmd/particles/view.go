package main

import (
	"github.com/spf13/cobra"

	"github.com/decker502/sparks/pkg/app"
	"github.com/decker502/sparks/pkg/game"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open the desktop viewer",
	Long: `Opens a window showing the effect library.

Controls:
  Mouse click / Space   - Spawn the current effect at the cursor / center
  Arrow keys            - Select the previous/next effect
  R                     - Clear all particles
  P                     - Pause
  + / -                 - Change simulation speed
  G                     - Toggle the auto-cycling gallery
  H                     - Toggle the HUD
  A                     - Toggle antialiasing
  F11                   - Toggle fullscreen
  Escape                - Quit`,
	Args: cobra.NoArgs,
	RunE: runView,
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, lib, logger, err := setup()
	if err != nil {
		return err
	}

	// 偏好存储不可用时以内存模式运行
	store, err := game.OpenStore(appName)
	if err != nil {
		logger.Warn("settings will not be saved", "err", err)
	}
	settings := game.NewSettingsManager(store, logger)

	viewer, err := app.NewApp(app.Config{
		Viewer:   cfg,
		Library:  lib,
		Settings: settings,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	return viewer.Run()
}

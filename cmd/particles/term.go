package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/decker502/sparks/pkg/app"
)

var termCmd = &cobra.Command{
	Use:   "term [effect]",
	Short: "Preview effects in the terminal",
	Long: `Plays effects on a character grid in the terminal. The effect restarts
when it finishes.

Controls:
  ←/→    - Previous/next effect
  Space  - Spawn again
  r      - Clear
  p      - Pause
  + / -  - Change simulation speed
  q      - Quit

Examples:
  particles term
  particles term snow`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTerm,
}

func runTerm(cmd *cobra.Command, args []string) error {
	cfg, lib, logger, err := setup()
	if err != nil {
		return err
	}

	effect := cfg.StartEffect
	if len(args) == 1 {
		effect = args[0]
	}
	if lib.IndexOf(effect) < 0 && len(args) == 0 {
		effect = ""
	}

	// 终端模式下日志会破坏画面，只保留错误
	if !flagVerbose {
		logger.SetLevel(log.ErrorLevel)
	}

	return app.RunTerminal(app.TerminalOptions{
		Viewer:  cfg,
		Library: lib,
		Effect:  effect,
		Logger:  logger,
	})
}

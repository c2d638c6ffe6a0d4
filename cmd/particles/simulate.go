package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/decker502/sparks/internal/storage"
	"github.com/decker502/sparks/pkg/app"
)

var (
	flagAll    bool
	flagFrames int
	flagStep   float64
	flagDBPath string
	flagSave   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [effect]",
	Short: "Run effects headless and report particle counts",
	Long: `Runs an effect for a fixed number of frames on a seeded particle system
and prints peak/final particle counts. With --all every effect runs
concurrently, each on its own system. Use --save to record the runs.

Examples:
  particles simulate explosion
  particles simulate explosion --frames 600 --seed 42 --save
  particles simulate --all`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().BoolVar(&flagAll, "all", false, "Simulate every effect")
	simulateCmd.Flags().IntVar(&flagFrames, "frames", app.DefaultSimulationFrames, "Number of frames")
	simulateCmd.Flags().Float64Var(&flagStep, "step", app.DefaultSimulationStep, "Frame step in milliseconds")
	simulateCmd.Flags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to run history database")
	simulateCmd.Flags().BoolVar(&flagSave, "save", false, "Record runs in the history database")
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	effectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func runSimulate(cmd *cobra.Command, args []string) error {
	if flagAll == (len(args) == 1) {
		return fmt.Errorf("give exactly one of <effect> or --all")
	}

	cfg, lib, logger, err := setup()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := app.SimulateOptions{
		Library:      lib,
		Frames:       flagFrames,
		Step:         flagStep,
		Seed:         cfg.Seed,
		MaxParticles: cfg.MaxParticles,
		Logger:       logger,
	}

	var results []app.SimulationResult
	if flagAll {
		results, err = app.SimulateAll(ctx, opts)
	} else {
		opts.Effect = args[0]
		var res app.SimulationResult
		res, err = app.Simulate(ctx, opts)
		results = []app.SimulationResult{res}
	}
	if err != nil {
		return err
	}

	printResults(results)

	if !flagSave {
		return nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, res := range results {
		run, err := store.SaveRun(res.Run())
		if err != nil {
			return err
		}
		logger.Debug("run saved", "id", run.ID, "effect", run.Effect)
	}
	fmt.Println(dimStyle.Render(fmt.Sprintf("saved %d run(s) to %s", len(results), flagDBPath)))
	return nil
}

func printResults(results []app.SimulationResult) {
	maxName := len("Effect")
	for _, r := range results {
		maxName = max(maxName, len(r.Effect))
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("  %-*s  %8s  %8s  %8s  %8s  %10s",
		maxName, "Effect", "Peak", "Final", "Spawned", "Dropped", "Time")))
	for _, r := range results {
		name := effectStyle.Render(fmt.Sprintf("%-*s", maxName, r.Effect))
		fmt.Printf("  %s  %8d  %8d  %8d  %8d  %10s\n",
			name, r.PeakParticles, r.FinalParticles, r.Spawned, r.Dropped, r.Duration.Round(time.Microsecond))
	}
	if len(results) > 0 {
		r := results[0]
		fmt.Println(dimStyle.Render(fmt.Sprintf("  %d frames x %.2f ms, seed %d", r.Frames, r.Step, r.Seed)))
	}
}

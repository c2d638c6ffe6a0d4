package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/decker502/sparks/internal/storage"
)

var flagLimit int

var runsCmd = &cobra.Command{
	Use:   "runs [effect]",
	Short: "Show recorded simulation runs",
	Long: `Lists the most recent runs saved by 'particles simulate --save',
newest first. Without an effect, runs of every effect are shown.

Examples:
  particles runs
  particles runs explosion --limit 5`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to run history database")
	runsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Maximum number of runs to show")
}

func runRuns(cmd *cobra.Command, args []string) error {
	effect := ""
	if len(args) == 1 {
		effect = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.RecentRuns(effect, flagLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println("Run 'particles simulate <effect> --save' to record one.")
		return nil
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("  %-16s  %-12s  %-10s  %6s  %8s  %8s  %s",
		"Date", "Effect", "ID", "Frames", "Peak", "Dropped", "Seed")))
	for _, r := range runs {
		fmt.Printf("  %-16s  %s  %-10s  %6d  %8d  %8d  %d\n",
			r.CreatedAt.Format("2006-01-02 15:04"),
			effectStyle.Render(fmt.Sprintf("%-12s", r.Effect)),
			r.ID[:8], r.Frames, r.PeakParticles, r.Dropped, r.Seed)
	}
	return nil
}

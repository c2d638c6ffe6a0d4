package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/decker502/sparks/pkg/entities"
)

var flagFilter string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List effects in the library",
	Long:  `Shows every effect in the library with its emitter count and source file.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVarP(&flagFilter, "filter", "f", "", "Only show effects whose name contains this text")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, lib, _, err := setup()
	if err != nil {
		return err
	}

	names := lib.Filter(flagFilter)
	if len(names) == 0 {
		fmt.Println("No effects found.")
		return nil
	}

	// Calculate column widths
	maxName := len("Name")
	for _, name := range names {
		maxName = max(maxName, len(name))
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("  %-*s  %-8s  %-20s  %s", maxName, "Name", "Emitters", "Source", "Description")))
	for _, name := range names {
		effect, err := lib.Get(name)
		if err != nil {
			return err
		}
		fmt.Printf("  %s  %-8d  %-20s  %s\n",
			effectStyle.Render(fmt.Sprintf("%-*s", maxName, name)),
			len(effect.Emitters), lib.Source(name), dimStyle.Render(effect.Description))
	}

	fmt.Println()
	source := "built-in effects"
	if cfg.EffectsDir != "" {
		source = cfg.EffectsDir
	}
	fmt.Printf("%d of %d effects from %s. Callbacks: %v\n", len(names), lib.Len(), source, entities.ParticleCallbacks())
	return nil
}

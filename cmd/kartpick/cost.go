package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kartwerks/kartpick/internal/cli"
	"github.com/kartwerks/kartpick/internal/cost"
)

func costCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cost",
		Short: "Show cost breakdown and budget status for the working build",
		Long: `Break the working build's cost down by category, and when a budget is
set (via --budget or the 'budget' config key), show how the build
tracks against it along with cheaper alternatives for the most
expensive parts.`,
		RunE: runCost,
	}
	cmd.Flags().Float64("budget", 0, "Budget in dollars (0 disables budget tracking)")
	_ = viper.BindPFlag("budget", cmd.Flags().Lookup("budget"))
	return cmd
}

func runCost(cmd *cobra.Command, _ []string) error {
	snap, store, err := loadSnapshot(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	session, err := loadSession(snap)
	if err != nil {
		return err
	}

	opts := cost.Options{Catalog: snap}
	if budget := viper.GetFloat64("budget"); budget > 0 {
		opts.Budget = &budget
	}

	summary := cost.Compute(session.PowerSource(), session.Selection(), opts)
	fmt.Println(cli.RenderCostSummary(summary))
	return nil
}

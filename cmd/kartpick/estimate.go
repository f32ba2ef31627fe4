package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kartwerks/kartpick/internal/cli"
	"github.com/kartwerks/kartpick/internal/estimate"
)

func estimateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate performance for the working build",
		Long: `Estimate performance figures for the working build. Gas builds get
horsepower, top speed, and acceleration estimates; electric builds get
range, runtime, and charging time.

All figures are rough planning numbers derived from catalog specs, not
measurements.`,
		RunE: runEstimate,
	}
	cmd.Flags().Float64("battery-ah", 0, "Override battery capacity in amp-hours for what-if runs")
	return cmd
}

func runEstimate(cmd *cobra.Command, _ []string) error {
	batteryAh, _ := cmd.Flags().GetFloat64("battery-ah")

	snap, store, err := loadSnapshot(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	session, err := loadSession(snap)
	if err != nil {
		return err
	}

	power := session.PowerSource()
	if _, isMotor := power.Motor(); isMotor {
		ev := estimate.Electric(power, session.Selection(), batteryAh)
		fmt.Println(cli.RenderEV(ev))
		return nil
	}

	metrics := estimate.Performance(power, session.Selection())
	fmt.Println(cli.RenderPerformance(metrics))
	return nil
}

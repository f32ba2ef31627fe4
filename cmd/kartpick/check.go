package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kartwerks/kartpick/internal/cli"
	"github.com/kartwerks/kartpick/internal/compat"
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the working build for incompatible parts",
		Long: `Run every compatibility check against the working build: built-in
physical checks (shaft and bore diameters, chain pitch, voltages) plus
any data-driven rules imported into the catalog.

Errors mean the parts will not work together. Warnings mean they may
work with reduced performance. Notes are suggestions.`,
		RunE: runCheck,
	}
	cmd.Flags().Bool("strict", false, "Exit with an error when any incompatibility is found")
	return cmd
}

func runCheck(cmd *cobra.Command, _ []string) error {
	strict, _ := cmd.Flags().GetBool("strict")

	snap, store, err := loadSnapshot(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	session, err := loadSession(snap)
	if err != nil {
		return err
	}

	warnings := compat.Evaluate(session.PowerSource(), session.Selection(), snap.Rules())
	fmt.Println(cli.RenderWarnings(warnings))

	if strict && compat.HasIncompatibilities(warnings) {
		return fmt.Errorf("build has incompatible parts")
	}
	return nil
}

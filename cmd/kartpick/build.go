package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kartwerks/kartpick/internal/build"
	"github.com/kartwerks/kartpick/internal/cli"
	"github.com/kartwerks/kartpick/internal/common"
)

func buildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Manage the working build",
		Long: `Manage the in-progress build: pick a power source, add and remove
parts, and save or load named builds.

The working build persists between invocations. Use 'build save <name>'
to keep a copy, and 'build load <name>' to bring one back.`,
	}

	cmd.AddCommand(buildNewCmd())
	cmd.AddCommand(buildShowCmd())
	cmd.AddCommand(buildSetEngineCmd())
	cmd.AddCommand(buildSetMotorCmd())
	cmd.AddCommand(buildAddPartCmd())
	cmd.AddCommand(buildRemovePartCmd())
	cmd.AddCommand(buildClearCmd())
	cmd.AddCommand(buildSaveCmd())
	cmd.AddCommand(buildLoadCmd())
	cmd.AddCommand(buildListCmd())
	cmd.AddCommand(buildDeleteCmd())
	return cmd
}

func buildNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Start a fresh working build",
		RunE: func(_ *cobra.Command, _ []string) error {
			session := build.NewSession()
			if err := saveSession(session); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Started a new build"))
			return nil
		},
	}
}

func buildShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the working build",
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, store, err := loadSnapshot(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			session, err := loadSession(snap)
			if err != nil {
				return err
			}

			fmt.Println(renderSession(session))
			return nil
		},
	}
}

func buildSetEngineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-engine <engine-id>",
		Short: "Select a gas engine (re-selecting the same engine removes it)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, store, err := loadSnapshot(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			session, err := loadSession(snap)
			if err != nil {
				return err
			}

			engine, ok := snap.EngineByID(args[0])
			if !ok {
				return fmt.Errorf("engine %q: %w", args[0], common.ErrUnknownCatalog)
			}
			session.SetEngine(engine)
			if err := saveSession(session); err != nil {
				return err
			}

			if session.PowerSource().IsNone() {
				fmt.Println(cli.FormatInfo("Removed engine " + engine.Name))
			} else {
				fmt.Println(cli.FormatSuccess("Selected engine " + engine.Name))
			}
			return nil
		},
	}
}

func buildSetMotorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-motor <motor-id>",
		Short: "Select an electric motor (re-selecting the same motor removes it)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, store, err := loadSnapshot(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			session, err := loadSession(snap)
			if err != nil {
				return err
			}

			motor, ok := snap.MotorByID(args[0])
			if !ok {
				return fmt.Errorf("motor %q: %w", args[0], common.ErrUnknownCatalog)
			}
			session.SetMotor(motor)
			if err := saveSession(session); err != nil {
				return err
			}

			if session.PowerSource().IsNone() {
				fmt.Println(cli.FormatInfo("Removed motor " + motor.Name))
			} else {
				fmt.Println(cli.FormatSuccess("Selected motor " + motor.Name))
			}
			return nil
		},
	}
}

func buildAddPartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-part <part-id>",
		Short: "Add a part to the working build (re-adding the same part removes it)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, store, err := loadSnapshot(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			session, err := loadSession(snap)
			if err != nil {
				return err
			}

			part, ok := snap.PartByID(args[0])
			if !ok {
				return fmt.Errorf("part %q: %w", args[0], common.ErrUnknownCatalog)
			}
			wasSelected := session.Selection().Contains(part.Category, part.ID)
			if err := session.SetPart(part.Category, part); err != nil {
				return err
			}
			if err := saveSession(session); err != nil {
				return err
			}

			if wasSelected {
				fmt.Println(cli.FormatInfo("Removed " + part.Name))
			} else {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added %s (%s)", part.Name, part.Category.Label())))
			}
			return nil
		},
	}
}

func buildRemovePartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-part <part-id>",
		Short: "Remove a part from the working build",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, store, err := loadSnapshot(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			session, err := loadSession(snap)
			if err != nil {
				return err
			}

			removed := false
			for _, category := range session.Selection().Categories() {
				if session.RemovePart(category, args[0]) {
					removed = true
					break
				}
			}
			if !removed {
				return fmt.Errorf("part %q is not in the working build", args[0])
			}
			if err := saveSession(session); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Removed " + args[0]))
			return nil
		},
	}
}

func buildClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the power source and every part from the working build",
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, store, err := loadSnapshot(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			session, err := loadSession(snap)
			if err != nil {
				return err
			}
			session.Clear()
			if err := saveSession(session); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Cleared the working build"))
			return nil
		},
	}
}

func buildSaveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save the working build under a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			description, _ := cmd.Flags().GetString("description")

			snap, store, err := loadSnapshot(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			session, err := loadSession(snap)
			if err != nil {
				return err
			}
			session.SetName(args[0])
			if description != "" {
				session.SetDescription(description)
			}

			record := session.Serialize()
			if err := store.SaveBuild(cmd.Context(), &record); err != nil {
				if errors.Is(err, common.ErrDuplicateEntry) {
					return common.NewUserError(fmt.Sprintf("a build named %q already exists", record.Name), err)
				}
				return err
			}
			if err := saveSession(session); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Saved build %q (total %s)", record.Name, cli.FormatPrice(record.TotalPrice))))
			return nil
		},
	}
	cmd.Flags().StringP("description", "d", "", "Description for the saved build")
	return cmd
}

func buildLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <name>",
		Short: "Replace the working build with a saved one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, store, err := loadSnapshot(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			record, err := store.GetBuildByName(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			session := build.Resolve(*record, snap)
			if err := saveSession(session); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Loaded build %q", record.Name)))
			fmt.Println(renderSession(session))
			return nil
		},
	}
}

func buildListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved builds",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			builds, err := store.ListBuilds(cmd.Context())
			if err != nil {
				return err
			}
			if len(builds) == 0 {
				fmt.Println(cli.FormatInfo("No saved builds yet"))
				return nil
			}

			fmt.Println(cli.TitleStyle.Render("Saved builds"))
			for _, b := range builds {
				line := fmt.Sprintf("%-24s %10s  %s",
					b.Name, cli.FormatPrice(b.TotalPrice), b.UpdatedAt.Format("2006-01-02"))
				if b.Description != "" {
					line += "  " + cli.SubtleStyle.Render(b.Description)
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}

func buildDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved build",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			record, err := store.GetBuildByName(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := store.DeleteBuild(cmd.Context(), record.ID); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted build %q", args[0])))
			return nil
		},
	}
}

// renderSession formats the working build for terminal output.
func renderSession(session *build.Session) string {
	var b strings.Builder

	b.WriteString(cli.TitleStyle.Render(cli.KartIcon + " Working Build"))
	b.WriteString("\n")
	if name := session.Name(); name != "" {
		b.WriteString(fmt.Sprintf("Name:         %s\n", name))
	}

	power := session.PowerSource()
	switch {
	case power.IsNone():
		b.WriteString("Power source: " + cli.SubtleStyle.Render("none") + "\n")
	default:
		label := "Engine"
		if _, isMotor := power.Motor(); isMotor {
			label = "Motor"
		}
		b.WriteString(fmt.Sprintf("%-13s %s", label+":", power.Label()))
		if price, ok := power.Price(); ok {
			b.WriteString("  " + cli.SubtleStyle.Render(cli.FormatPrice(price)))
		}
		b.WriteString("\n")
	}

	selection := session.Selection()
	if selection.Len() == 0 {
		b.WriteString(cli.SubtleStyle.Render("No parts selected") + "\n")
	} else {
		b.WriteString("\n")
		for _, category := range selection.Categories() {
			for _, part := range selection.Parts(category) {
				price := "—"
				if part.Price != nil {
					price = cli.FormatPrice(*part.Price)
				}
				b.WriteString(fmt.Sprintf("  %-18s %-32s %10s  %s\n",
					category.Label(), part.Name, price, cli.SubtleStyle.Render(part.ID)))
			}
		}
	}

	total, hasUnpriced := session.TotalPrice()
	b.WriteString("\n")
	b.WriteString(cli.BoldStyle.Render("Total: " + cli.FormatPrice(total)))
	if hasUnpriced {
		b.WriteString(cli.WarningStyle.Render("  (some items unpriced)"))
	}
	return b.String()
}

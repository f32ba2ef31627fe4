package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kartwerks/kartpick/internal/cli"
	"github.com/kartwerks/kartpick/internal/model"
)

func pickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pick <engine|motor|category>",
		Short: "Interactively pick a power source or part for the working build",
		Long: `Open an interactive picker over the catalog and put the chosen item
into the working build. The argument selects what to pick from:
'engine', 'motor', or any part category such as 'clutch' or 'battery'.

Examples:
  kartpick pick engine
  kartpick pick clutch
  kartpick pick battery`,
		Args: cobra.ExactArgs(1),
		RunE: runPick,
	}
}

func runPick(cmd *cobra.Command, args []string) error {
	snap, store, err := loadSnapshot(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	session, err := loadSession(snap)
	if err != nil {
		return err
	}

	switch args[0] {
	case "engine":
		items := make([]cli.PickerItem, 0, len(snap.Engines()))
		for _, e := range snap.Engines() {
			items = append(items, cli.PickerItem{
				ID:          e.ID,
				Title:       e.Name,
				Description: fmt.Sprintf("%.1f HP, %g\" shaft%s", e.Horsepower, e.ShaftDiameter, priceSuffix(e.Price)),
			})
		}
		if len(items) == 0 {
			return fmt.Errorf("no engines in catalog; run 'kartpick catalog import' first")
		}

		choice, ok, err := cli.Pick("Pick an engine", items)
		if err != nil || !ok {
			return err
		}
		engine, _ := snap.EngineByID(choice.ID)
		session.SetEngine(engine)
		if err := saveSession(session); err != nil {
			return err
		}
		fmt.Println(cli.FormatSuccess("Selected engine " + engine.Name))
		return nil

	case "motor":
		items := make([]cli.PickerItem, 0, len(snap.Motors()))
		for _, m := range snap.Motors() {
			items = append(items, cli.PickerItem{
				ID:          m.ID,
				Title:       m.Name,
				Description: fmt.Sprintf("%.0fV, %.1f kW%s", m.Voltage, m.PowerKW, priceSuffix(m.Price)),
			})
		}
		if len(items) == 0 {
			return fmt.Errorf("no motors in catalog; run 'kartpick catalog import' first")
		}

		choice, ok, err := cli.Pick("Pick a motor", items)
		if err != nil || !ok {
			return err
		}
		motor, _ := snap.MotorByID(choice.ID)
		session.SetMotor(motor)
		if err := saveSession(session); err != nil {
			return err
		}
		fmt.Println(cli.FormatSuccess("Selected motor " + motor.Name))
		return nil
	}

	category := model.PartCategory(args[0])
	if !category.Valid() {
		return fmt.Errorf("unknown category %q", args[0])
	}

	parts := snap.PartsByCategory(category)
	if len(parts) == 0 {
		return fmt.Errorf("no %s parts in catalog", category.Label())
	}
	items := make([]cli.PickerItem, 0, len(parts))
	for _, p := range parts {
		items = append(items, cli.PickerItem{
			ID:          p.ID,
			Title:       p.Name,
			Description: p.Brand + priceSuffix(p.Price),
		})
	}

	choice, ok, err := cli.Pick("Pick a "+category.Label(), items)
	if err != nil || !ok {
		return err
	}
	part, _ := snap.PartByID(choice.ID)
	if err := session.SetPart(category, part); err != nil {
		return err
	}
	if err := saveSession(session); err != nil {
		return err
	}
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added %s (%s)", part.Name, category.Label())))
	return nil
}

func priceSuffix(price *float64) string {
	if price == nil {
		return ""
	}
	return ", " + cli.FormatPrice(*price)
}

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/kartwerks/kartpick/internal/catalog"
	"github.com/kartwerks/kartpick/internal/cli"
	"github.com/kartwerks/kartpick/internal/model"
	"github.com/kartwerks/kartpick/internal/service"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Import and inspect the parts catalog",
	}
	cmd.AddCommand(catalogImportCmd())
	cmd.AddCommand(catalogListCmd())
	return cmd
}

func catalogImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [files...]",
		Short: "Import engines, motors, parts, and rules from YAML seed files",
		Long: `Import catalog records from one or more YAML seed files. Records with
an existing id are updated in place, so re-importing a file is safe.

Examples:
  # Import a single seed file
  kartpick catalog import seeds/gopowersports.yaml

  # Import everything in a directory
  kartpick catalog import seeds/*.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCatalogImport,
	}
}

func runCatalogImport(cmd *cobra.Command, args []string) error {
	// Expand globs and collect all files
	var allFiles []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			// If no glob matches, check if it's a direct file
			if _, err := os.Stat(pattern); err == nil {
				allFiles = append(allFiles, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
		} else {
			allFiles = append(allFiles, matches...)
		}
	}
	if len(allFiles) == 0 {
		return fmt.Errorf("no seed files found")
	}

	store, err := initStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	totalRecords := 0
	for _, file := range allFiles {
		seed, parseErr := catalog.ParseSeedFile(file)
		if parseErr != nil {
			return parseErr
		}
		if seed.Len() == 0 {
			slog.Warn("Seed file has no records", "file", file)
			continue
		}

		bar := progressbar.NewOptions(seed.Len(),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription(fmt.Sprintf("[cyan]Importing %s[reset]", filepath.Base(file))),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(os.Stderr)
			}),
		)

		if err := catalog.Import(cmd.Context(), store, seed, func() {
			_ = bar.Add(1)
		}); err != nil {
			return err
		}
		totalRecords += seed.Len()
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d record(s) from %d file(s)", totalRecords, len(allFiles))))
	return nil
}

func catalogListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog contents",
		RunE:  runCatalogList,
	}
	cmd.Flags().StringP("category", "c", "", "Only list parts in one category (e.g. clutch, battery)")
	cmd.Flags().Float64("max-price", 0, "Only list parts at or below this price")
	return cmd
}

func runCatalogList(cmd *cobra.Command, _ []string) error {
	categoryFlag, _ := cmd.Flags().GetString("category")
	maxPrice, _ := cmd.Flags().GetFloat64("max-price")

	store, err := initStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := cmd.Context()

	if categoryFlag == "" {
		engines, err := store.GetEngines(ctx)
		if err != nil {
			return err
		}
		if len(engines) > 0 {
			fmt.Println(cli.TitleStyle.Render("Engines"))
			for _, e := range engines {
				fmt.Println(catalogLine(e.ID, e.Name, fmt.Sprintf("%.1f HP", e.Horsepower), e.Price))
			}
		}

		motors, err := store.GetMotors(ctx)
		if err != nil {
			return err
		}
		if len(motors) > 0 {
			fmt.Println(cli.TitleStyle.Render("Motors"))
			for _, m := range motors {
				fmt.Println(catalogLine(m.ID, m.Name, fmt.Sprintf("%.0fV %.1fkW", m.Voltage, m.PowerKW), m.Price))
			}
		}
	}

	filter := service.PartFilter{}
	if categoryFlag != "" {
		category := model.PartCategory(categoryFlag)
		if !category.Valid() {
			return fmt.Errorf("unknown category %q", categoryFlag)
		}
		filter.Category = category
	}
	if maxPrice > 0 {
		filter.MaxPrice = &maxPrice
	}

	parts, err := store.GetParts(ctx, filter)
	if err != nil {
		return err
	}
	if len(parts) > 0 {
		fmt.Println(cli.TitleStyle.Render("Parts"))
		for _, p := range parts {
			fmt.Println(catalogLine(p.ID, p.Name, p.Category.Label(), p.Price))
		}
	}

	if categoryFlag != "" && len(parts) == 0 {
		fmt.Println(cli.FormatInfo("No parts in category " + categoryFlag))
	}
	return nil
}

func catalogLine(id, name, detail string, price *float64) string {
	priceText := "—"
	if price != nil {
		priceText = cli.FormatPrice(*price)
	}
	return fmt.Sprintf("  %-36s %-20s %10s  %s", name, detail, priceText, cli.SubtleStyle.Render(id))
}

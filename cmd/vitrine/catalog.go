package main

import (
	"fmt"
	"os"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/taigrr/vitrine/pkg/catalog"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5f87ff")).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	missingStyle = cellStyle.Foreground(lipgloss.Color("#ff5f5f"))
	okStyle      = cellStyle.Foreground(lipgloss.Color("#5fd75f"))
	labelStyle   = lipgloss.NewStyle().Bold(true).Width(12)
)

func newCatalogCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the model catalog and check that every file exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := a.catalog()
			if err != nil {
				return err
			}
			missing := catalogStatus(cat, a.cfg.Assets.ModelsDir)
			fmt.Fprintln(cmd.OutOrStdout(), catalogTable(cat, a.cfg.Assets.ModelsDir, missing))

			if _, err := os.Stat(a.cfg.Assets.Environment); err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), missingStyle.Render("environment "+a.cfg.Assets.Environment+" not found"))
			}
			if len(missing) > 0 {
				return fmt.Errorf("%d of %d model files missing", len(missing), cat.Len())
			}
			return nil
		},
	}
}

func catalogStatus(cat *catalog.Catalog, modelsDir string) map[string]bool {
	missing := make(map[string]bool)
	for _, d := range cat.Missing(modelsDir) {
		missing[d.Name] = true
	}
	return missing
}

func catalogTable(cat *catalog.Catalog, modelsDir string, missing map[string]bool) string {
	entries := cat.Entries()
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("NAME", "TITLE", "FILE", "STATUS").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 3 && missing[entries[row].Name]:
				return missingStyle
			case col == 3:
				return okStyle
			}
			return cellStyle
		})

	for _, d := range entries {
		status := "ok"
		if missing[d.Name] {
			status = "missing"
		}
		t.Row(d.Name, d.Title, catalog.Path(modelsDir, d), status)
	}
	return t.String()
}

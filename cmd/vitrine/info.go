package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taigrr/vitrine/pkg/catalog"
	"github.com/taigrr/vitrine/pkg/models"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <model>",
		Short: "Print mesh statistics for a catalog entry or a model file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.resolveModel(args[0])
			if err != nil {
				return err
			}
			m, err := a.gltfLoader().Load(cmd.Context(), path)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), modelInfo(path, m))
			return nil
		},
	}
}

// resolveModel accepts a catalog name or a path to a model file.
func (a *app) resolveModel(arg string) (string, error) {
	cat, err := a.catalog()
	if err != nil {
		return "", err
	}
	if d, ok := cat.Lookup(arg); ok {
		return catalog.Path(a.cfg.Assets.ModelsDir, d), nil
	}
	if _, err := os.Stat(arg); err != nil {
		return "", fmt.Errorf("%q is neither a catalog name nor a readable file: %w", arg, err)
	}
	return arg, nil
}

func modelInfo(path string, m *models.Model) string {
	size := m.Size()
	rows := [][2]string{
		{"file", path},
		{"parts", fmt.Sprint(len(m.Parts))},
		{"vertices", fmt.Sprint(m.VertexCount())},
		{"triangles", fmt.Sprint(m.TriangleCount())},
		{"textures", fmt.Sprint(m.TextureCount())},
		{"size", fmt.Sprintf("%.3f × %.3f × %.3f", size.X, size.Y, size.Z)},
	}

	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = labelStyle.Render(r[0]) + r[1]
	}
	return strings.Join(lines, "\n")
}

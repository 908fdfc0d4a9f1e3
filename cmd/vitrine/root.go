package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taigrr/vitrine/internal/config"
	"github.com/taigrr/vitrine/internal/logger"
	"github.com/taigrr/vitrine/pkg/catalog"
	"github.com/taigrr/vitrine/pkg/models"
	"github.com/taigrr/vitrine/pkg/sections"
)

// app carries what every command needs once flags are parsed.
type app struct {
	flags config.Flags
	cfg   *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "vitrine [story.md]",
		Short: "Terminal 3D model showcase",
		Long: `vitrine renders GLTF models in the terminal next to a scrolling story.
Each level-1 heading of the story selects the model with the same number;
scrolling the story past a heading switches the canvas to that model.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// The viewer owns the terminal, so only subcommands log to it.
			return a.setup(cmd != cmd.Root())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				a.cfg.Assets.Story = args[0]
			}
			return a.run(cmd.Context())
		},
	}
	a.flags.Register(cmd.PersistentFlags())

	cmd.AddCommand(newCatalogCmd(a), newInfoCmd(a), newSnapshotCmd(a), newConfigCmd(a))
	return cmd
}

func (a *app) setup(console bool) error {
	cfg, err := config.Load(&a.flags)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile, console); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.Debug("config loaded")
	return nil
}

func (a *app) catalog() (*catalog.Catalog, error) {
	if a.cfg.Assets.Catalog == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(a.cfg.Assets.Catalog)
}

// story returns nil when no story is configured; the viewer then shows one
// section per model.
func (a *app) story() (*sections.Story, error) {
	if a.cfg.Assets.Story == "" {
		return nil, nil
	}
	return sections.LoadStory(a.cfg.Assets.Story)
}

func (a *app) gltfLoader() *models.GLTFLoader {
	l := models.NewGLTFLoader()
	l.FitSize = a.cfg.Viewer.FitSize
	return l
}

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"car-showroom/internal/app"
	"car-showroom/internal/assets"
	"car-showroom/internal/catalog"
	"car-showroom/internal/config"
	"car-showroom/internal/graphics"
	"car-showroom/internal/logger"
	"car-showroom/internal/navigation"
	"car-showroom/internal/storage"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/cobra"
)

var (
	configDir string
	carID     string
)

func main() {
	cmd := &cobra.Command{
		Use:   "showroom",
		Short: "3D car showroom",
		Long: `showroom - walk a 3D garage and inspect cars on a podium

Controls:
  Click Start   - Capture the mouse and walk
  W/A/S/D       - Move
  Mouse         - Look around
  P / Esc       - Release the mouse
  Click object  - Show its details
  Click car     - Open it on the podium
  F3            - Toggle FPS and memory stats
  F4            - Toggle the grid`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}
	cmd.PersistentFlags().StringVar(&configDir, "config", ".", "Directory holding showroom.json")
	cmd.Flags().StringVar(&carID, "car", "", "Open this catalog car on the podium at startup")

	carsCmd := &cobra.Command{
		Use:   "cars",
		Short: "List the cars in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCars(cmd)
		},
	}
	cmd.AddCommand(carsCmd)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func listCars(cmd *cobra.Command) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return err
	}
	cat, err := catalog.Load(cfg.Assets.Catalog)
	if err != nil {
		return err
	}
	for _, r := range cat.Cars() {
		fmt.Fprintf(cmd.OutOrStdout(), "%-12s %-28s %s\n", r.ID, r.Label(), r.AssetPath)
	}
	return nil
}

func run() error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return err
	}
	lg, err := logger.New(logger.Options{Level: cfg.Log.Level, FilePath: cfg.Log.File})
	if err != nil {
		return err
	}
	defer lg.Close()

	cat, err := catalog.Load(cfg.Assets.Catalog)
	if err != nil {
		return err
	}
	store, err := storage.Open(storage.Config{Backend: cfg.Storage.Backend, Path: cfg.Storage.Path})
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.Close()
	lg.Info("starting", "cars", cat.Len(), "storage", cfg.Storage.Backend, "assets", cfg.Assets.Root)

	closeWindow := graphics.Open(cfg.Window)
	defer closeWindow()
	if !rl.IsWindowReady() {
		return errors.New("window init failed")
	}

	models := graphics.NewModelLoader(cfg.Assets.Root, lg.Logger)
	defer models.Close()

	a := app.New(app.Deps{
		Config:    cfg,
		ConfigDir: configDir,
		Catalog:   cat,
		Storage:   store,
		Loader:    assets.NewTemplateCache(models, lg.Logger),
		Logger:    lg.Logger,
		FPS:       rl.GetFPS,
		LogLines:  lg.Lines,
	})
	defer a.Close()

	cursor := graphics.NewCursor()
	a.AttachPointer(cursor)
	if carID != "" && !a.OpenCar(carID) {
		lg.Warn("unknown car", "id", carID)
	}

	overlay := graphics.NewOverlay(filepath.Join(cfg.Assets.Root, cfg.Assets.Fonts), a.UI(), lg.Logger)
	defer overlay.Close()
	panel := graphics.NewPanel()
	renderer := graphics.NewRenderer(cfg, models, overlay, panel, lg.Logger)
	defer renderer.Close()

	uploads := max(1, cfg.Assets.UploadsPerFrame)
	update := func() {
		cursor.Flush()
		models.Service(uploads)
		over := a.Route() == navigation.RoutePodium && panel.Contains(rl.GetMousePosition(), float32(rl.GetScreenWidth()))
		a.Update(graphics.ReadFrame(a.Camera(), over))
	}
	graphics.Loop(update, func() { renderer.Draw(a) })
	lg.Info("window closed")
	return nil
}

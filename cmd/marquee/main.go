package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/catalog"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/engine"
	"github.com/mmcdole/marquee/internal/playback"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/tui"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

type options struct {
	configPath string
	emulate    string
	open       string
}

func main() {
	var showVersion bool
	var opts options
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&opts.configPath, "config", "", "path to config file")
	flag.StringVar(&opts.emulate, "emulate", "", `emulate a device safe area: "ios", "android" or "none" (remembered)`)
	flag.StringVar(&opts.open, "open", "", `route to open at startup, e.g. "/search" or "/movie/3"`)
	flag.Parse()

	if showVersion {
		fmt.Printf("marquee %s\n", Version)
		return
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg, err := adapter.LoadConfigFrom(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting marquee", "version", Version)

	route, err := tui.ParseRoute(opts.open)
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("marquee needs an interactive terminal")
	}

	cat, err := loadCatalog(cfg.Catalog.File)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	prefs, err := store.NewPreferenceStore(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("failed to open preference store: %w", err)
	}
	defer prefs.Close()

	prefSvc := service.NewPreferenceService(prefs, logger)
	emulation, err := prefSvc.ResolveEmulation(opts.emulate, cfg.UI.Emulate)
	if err != nil {
		return err
	}

	launcher := adapter.NewLauncher(cfg.Player, logger)

	overlayOpts := playback.DefaultOptions()
	overlayOpts.SkipInterval = cfg.Playback.SkipInterval
	overlayOpts.ControlsTimeout = cfg.Playback.ControlsTimeout
	overlayOpts.LoadTimeout = cfg.Playback.LoadTimeout

	resolve := engine.CatalogResolver(cat)
	engineOpts := engine.SimulatedOptions{
		Interval:    cfg.Playback.StatusInterval,
		LoadLatency: cfg.Playback.LoadLatency,
		Logger:      logger,
	}

	catalogSvc := service.NewCatalogService(cat, logger)
	catalogSvc.SetHomeGenres(cfg.Catalog.HomeGenres)

	svcs := tui.Services{
		Catalog:     catalogSvc,
		Playback:    service.NewPlaybackService(launcher, overlayOpts, logger),
		Preferences: prefSvc,
		NewEngine: func() domain.MediaEngine {
			return engine.NewSimulated(resolve, engineOpts)
		},
	}

	model := tui.NewModel(svcs, tui.Options{
		Emulation:     emulation,
		InitialRoute:  route,
		WatchlistSeed: cfg.Catalog.WatchlistSeed,
		Version:       Version,
		Persistent:    prefs.Persistent(),
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	logger.Info("starting TUI", "emulate", emulation, "route", route.Path())

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}

package main

import (
	"errors"
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/skillgrid/prefabs"
	"github.com/milk9111/skillgrid/system"
	"go.uber.org/zap"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	gridFile := flag.String("grid", "", "grid spec in prefabs/ (overrides game.yaml)")
	watch := flag.Bool("watch", false, "hot-reload skills, transitions and behaviors from prefabs/")
	seed := flag.Int64("seed", 0, "seed for the start-up grid scramble (0 uses the clock)")
	flag.Parse()

	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := newLogger(*debug, spec.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if *gridFile != "" {
		spec.Grid = *gridFile
	}
	switch {
	case *seed != 0:
		spec.Seed = *seed
	case spec.Seed == 0:
		spec.Seed = time.Now().UnixNano()
	}

	world, err := system.Build(spec, system.WithLogger(logger))
	if err != nil {
		logger.Fatal("build world", zap.Error(err))
	}

	var watcher *prefabs.Watcher
	if *watch || spec.Watch {
		watcher, err = prefabs.NewWatcher(prefabs.WatchDirs()...)
		if err != nil {
			logger.Warn("hot reload disabled", zap.Error(err))
		} else {
			defer watcher.Close()
		}
	}

	ebiten.SetTPS(spec.TickRate)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle(spec.Name)

	game := NewGame(world, watcher, logger, 1/float64(spec.TickRate))
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("game loop", zap.Error(err))
	}
}

func newLogger(debug bool, level string) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg.Level = lvl
	return cfg.Build()
}

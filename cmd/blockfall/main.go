package main

import (
	"context"
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	log "github.com/sirupsen/logrus"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/logging"
	"github.com/plus3/blockfall/session"
)

func main() {
	configPath := flag.String("config", "", "Path to a config file (default: search for blockfall.yaml)")
	debug := flag.Bool("debug", false, "Show the Dear ImGui debug overlay")
	scale := flag.Int("cell", 28, "Cell size in pixels")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer closer.Close()

	opts, err := session.OptionsFromConfig(cfg)
	if err != nil {
		logger.Fatalf("Invalid game options: %v", err)
	}

	game, err := NewGame(context.Background(), opts, log.NewEntry(logger), *scale)
	if err != nil {
		logger.Fatalf("Failed to start game: %v", err)
	}
	defer game.Close()

	width, height := game.WindowSize()
	if *debug {
		game.EnableDebug(width+360, max(height, 640))
	} else {
		ebiten.SetWindowSize(width, height)
	}
	ebiten.SetWindowTitle("blockfall")

	if err := ebiten.RunGame(game); err != nil {
		logger.Errorf("Game loop failed: %v", err)
		closer.Close()
		os.Exit(1)
	}
}

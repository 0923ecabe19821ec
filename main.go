// Command sokoban runs a terminal Sokoban game.
//
// Modes:
//  1. "play" (default) – interactive game in the terminal
//  2. "mcp" – MCP stdio server so an agent can play the same game
//  3. "levels" – list, show, validate and build level files
//
// Settings come from SOKOBAN_* environment variables (a .env file is loaded
// first when present). Global flags override them.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/wricardo/sokoban/game/config"
	"github.com/wricardo/sokoban/game/controller"
	"github.com/wricardo/sokoban/game/records"
	"github.com/wricardo/sokoban/game/service"
	"github.com/wricardo/sokoban/game/session"
	"github.com/wricardo/sokoban/logging"
	"github.com/wricardo/sokoban/transport/mcp"
	"github.com/wricardo/sokoban/ui/terminal"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "sokoban"
)

// main loads .env, then runs the selected command until it returns or the
// process is interrupted.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", AppName, err)
		os.Exit(1)
	}
}

// newApp builds the command tree
func newApp() *cli.Command {
	return &cli.Command{
		Name:    AppName,
		Usage:   "push every box onto a goal",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "levels-dir", Usage: "directory holding level<N>.bin files"},
			&cli.IntFlag{Name: "max-level", Usage: "highest level reachable with next level"},
			&cli.IntFlag{Name: "start-level", Usage: "level loaded at startup"},
			&cli.StringFlag{Name: "save-file", Usage: "path of the save slot"},
			&cli.StringFlag{Name: "records-db", Usage: "SQLite file for completion records (empty disables)"},
			&cli.StringFlag{Name: "log-file", Usage: "JSON log file (empty disables)"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
			&cli.DurationFlag{Name: "tick", Usage: "terminal redraw interval"},
			&cli.BoolFlag{Name: "no-color", Usage: "draw without ANSI colors"},
		},
		Action: runPlay,
		Commands: []*cli.Command{
			{
				Name:   "play",
				Usage:  "play in the terminal (default)",
				Action: runPlay,
			},
			{
				Name:   "mcp",
				Usage:  "serve the game as MCP tools over stdio",
				Action: runMCP,
			},
			levelsCommand(),
		},
	}
}

// loadConfig reads the environment and applies the flags that were set
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("levels-dir") {
		cfg.LevelsDir = cmd.String("levels-dir")
	}
	if cmd.IsSet("max-level") {
		cfg.MaxLevel = int(cmd.Int("max-level"))
	}
	if cmd.IsSet("start-level") {
		cfg.StartLevel = int(cmd.Int("start-level"))
	}
	if cmd.IsSet("save-file") {
		cfg.SaveFile = cmd.String("save-file")
	}
	if cmd.IsSet("records-db") {
		cfg.RecordsDB = cmd.String("records-db")
	}
	if cmd.IsSet("log-file") {
		cfg.LogFile = cmd.String("log-file")
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}
	if cmd.IsSet("tick") {
		cfg.Tick = cmd.Duration("tick")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// services is everything a game front end needs
type services struct {
	cfg     *config.Config
	logger  *zap.Logger
	levels  *config.Manager
	records *records.Store
	ctrl    *controller.Controller
	game    service.GameService
}

// Close releases the records database and flushes the log
func (s *services) Close() {
	if s.records != nil {
		if err := s.records.Close(); err != nil {
			s.logger.Warn("failed to close records", zap.Error(err))
		}
	}
	_ = s.logger.Sync()
}

// initializeServices wires the level catalogue, save slot, records store,
// controller and game service.
func initializeServices(ctx context.Context, cfg *config.Config) (*services, error) {
	logger, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	svc := &services{cfg: cfg, logger: logger}

	svc.levels, err = config.NewManager(cfg.LevelsDir, cfg.MaxLevel)
	if err != nil {
		svc.Close()
		return nil, fmt.Errorf("failed to create level manager: %w", err)
	}

	store, err := session.NewFilePersistence(cfg.SaveFile)
	if err != nil {
		svc.Close()
		return nil, fmt.Errorf("failed to create save slot: %w", err)
	}

	opts := controller.Options{
		Levels:     svc.levels,
		Store:      store,
		Logger:     logger,
		MaxLevel:   cfg.MaxLevel,
		StartLevel: cfg.StartLevel,
	}
	if cfg.RecordsDB != "" {
		svc.records, err = records.NewStore(cfg.RecordsDB)
		if err != nil {
			svc.Close()
			return nil, fmt.Errorf("failed to open records: %w", err)
		}
		opts.Recorder = svc.records
	}

	svc.ctrl, err = controller.New(ctx, opts)
	if err != nil {
		svc.Close()
		return nil, fmt.Errorf("failed to start game: %w", err)
	}
	svc.game = service.NewGameService(svc.ctrl, svc.levels)

	logger.Info("services initialized",
		zap.String("levels_dir", cfg.LevelsDir),
		zap.Int("max_level", cfg.MaxLevel),
		zap.String("save_file", cfg.SaveFile),
		zap.Bool("records", svc.records != nil),
	)
	return svc, nil
}

// runPlay runs the terminal game
func runPlay(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	svc, err := initializeServices(ctx, cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	ui := terminal.New(svc.ctrl, terminal.Options{
		Tick:    cfg.Tick,
		Logger:  svc.logger,
		NoColor: cmd.Bool("no-color"),
	})
	err = ui.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// runMCP serves the MCP tools on stdin/stdout. Diagnostics go to the log
// file because stdout carries the protocol.
func runMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	svc, err := initializeServices(ctx, cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	svc.logger.Info("MCP stdio server ready", zap.String("version", Version))
	server := mcp.NewServer(svc.game, Version)
	err = server.ServeStdio(ctx, os.Stdin, os.Stdout, zap.NewStdLog(svc.logger))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

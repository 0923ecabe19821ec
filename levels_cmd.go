package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/sokoban/game/config"
	"github.com/wricardo/sokoban/game/levels"
	"github.com/wricardo/sokoban/game/records"
)

func levelsCommand() *cli.Command {
	return &cli.Command{
		Name:  "levels",
		Usage: "inspect and build level files",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "list the levels in the levels directory",
				Action: runLevelsList,
			},
			{
				Name:      "show",
				Usage:     "print a level as text with its analysis",
				ArgsUsage: "<number>",
				Action:    runLevelsShow,
			},
			{
				Name:   "validate",
				Usage:  "check every level file for playability",
				Action: runLevelsValidate,
			},
			{
				Name:      "solve",
				Usage:     "search for the shortest solution of a level",
				ArgsUsage: "<number>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "max-states", Value: levels.DefaultMaxStates, Usage: "give up after this many positions"},
				},
				Action: runLevelsSolve,
			},
			{
				Name:      "build",
				Usage:     "convert a text level collection into level files",
				ArgsUsage: "<file.txt>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "first", Value: 1, Usage: "number of the first level written"},
				},
				Action: runLevelsBuild,
			},
		},
	}
}

func runLevelsList(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	manager, err := config.NewManager(cfg.LevelsDir, cfg.MaxLevel)
	if err != nil {
		return err
	}
	infos, err := manager.ListLevels()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.Root().Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LEVEL\tFILE\tSIZE\tGOALS\tBOXES")
	for _, info := range infos {
		fmt.Fprintf(w, "%d\t%s\t%dx%d\t%d\t%d\n", info.Number, info.Filename, info.Rows, info.Cols, info.Goals, info.Boxes)
	}
	return w.Flush()
}

func runLevelsShow(ctx context.Context, cmd *cli.Command) error {
	number, err := strconv.Atoi(cmd.Args().First())
	if err != nil {
		return fmt.Errorf("level number required: %w", err)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	manager, err := config.NewManager(cfg.LevelsDir, cfg.MaxLevel)
	if err != nil {
		return err
	}
	level, err := manager.LoadLevel(number)
	if err != nil {
		return err
	}

	out := cmd.Root().Writer
	fmt.Fprintf(out, "Level %d (%dx%d)\n", number, level.Rows, level.Cols)
	for _, row := range levels.Format(level) {
		fmt.Fprintln(out, row)
	}

	a := levels.Analyze(level)
	fmt.Fprintf(out, "\nWalls: %d\nGoals: %d\nBoxes: %d (%d on goals)\nReachable floor: %d\n",
		a.Walls, a.Goals, a.Boxes, a.BoxesOnGoals, a.Reachable)
	for _, pos := range a.CornerBoxes {
		fmt.Fprintf(out, "⚠️  Box at %s is stuck in a corner\n", pos)
	}

	if cfg.RecordsDB == "" {
		return nil
	}
	if _, err := os.Stat(cfg.RecordsDB); err != nil {
		return nil
	}
	store, err := records.NewStore(cfg.RecordsDB)
	if err != nil {
		return err
	}
	defer store.Close()
	return printCompletions(ctx, out, store, number)
}

func printCompletions(ctx context.Context, out io.Writer, store *records.Store, number int) error {
	best, ok, err := store.BestSteps(ctx, number)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(out, "\nNot solved yet")
		return nil
	}
	recent, err := store.Completions(ctx, number, 5)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nBest: %d steps\n", best)
	for _, rec := range recent {
		fmt.Fprintf(out, "  %s  %d steps\n", rec.CompletedAt.Format("2006-01-02 15:04"), rec.Steps)
	}
	return nil
}

func runLevelsSolve(ctx context.Context, cmd *cli.Command) error {
	number, err := strconv.Atoi(cmd.Args().First())
	if err != nil {
		return fmt.Errorf("level number required: %w", err)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	manager, err := config.NewManager(cfg.LevelsDir, cfg.MaxLevel)
	if err != nil {
		return err
	}
	level, err := manager.LoadLevel(number)
	if err != nil {
		return err
	}

	sol, err := levels.Solve(ctx, level, int(cmd.Int("max-states")))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.Root().Writer, "Level %d: %d moves, %d pushes (%d positions explored)\n%s\n",
		number, len(sol.Moves), sol.Pushes, sol.Explored, sol.String())
	return nil
}

func runLevelsValidate(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	files, err := filepath.Glob(filepath.Join(cfg.LevelsDir, "level*.bin"))
	if err != nil {
		return fmt.Errorf("error finding level files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no level files in %s", cfg.LevelsDir)
	}

	out := cmd.Root().Writer
	allValid := true
	for _, file := range files {
		result := levels.ValidateFile(file)
		fmt.Fprintf(out, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(out, "✅ VALID")
			for _, info := range result.Info {
				fmt.Fprintln(out, "  "+info)
			}
			continue
		}
		allValid = false
		fmt.Fprintln(out, "❌ INVALID")
		for _, msg := range result.Errors {
			fmt.Fprintln(out, "  ❌ "+msg)
		}
	}

	fmt.Fprintf(out, "\n%s\n", strings.Repeat("=", 40))
	if !allValid {
		return cli.Exit("❌ Some levels have errors", 1)
	}
	fmt.Fprintln(out, "✅ All levels are valid!")
	return nil
}

func runLevelsBuild(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return fmt.Errorf("text level file required")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	written, err := levels.Build(f, cfg.LevelsDir, int(cmd.Int("first")))
	if err != nil {
		return err
	}
	for _, p := range written {
		fmt.Fprintf(cmd.Root().Writer, "wrote %s\n", p)
	}
	return nil
}

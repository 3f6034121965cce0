package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/t2048/internal/config"
	"github.com/vovakirdan/t2048/internal/core"
	"github.com/vovakirdan/t2048/internal/platform/tui"
)

var (
	flagEphemeral  bool
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play 2048",
	Long: `Resume the saved game, or start a new one, in a full-screen board.

Controls:
  Arrows/WASD/hjkl - Slide tiles
  Mouse drag       - Slide tiles in the drag direction
  U/Z              - Undo
  N/R              - New game
  C/Enter          - Keep playing after reaching 2048
  ?                - Toggle help
  Q/Esc/Ctrl+C     - Quit (the game is saved)

Difficulty options:
  easy   - Fewer 4s spawn, deeper undo
  normal - Config values unchanged
  hard   - More 4s spawn, a single undo

Examples:
  t2048 play
  t2048 play --difficulty hard
  t2048 play --ephemeral --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	registerPlayFlags(playCmd)
}

func registerPlayFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&flagEphemeral, "ephemeral", false, "Play without reading or writing the database")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitf("%v", err)
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		exitf("%v", err)
	}
	config.ApplyPreset(&cfg, preset)

	logger, logFile, err := newLogger(cfg, true)
	if err != nil {
		exitf("%v", err)
	}
	defer logFile.Close()

	sess, err := openSession(cfg, logger, flagEphemeral, true)
	if err != nil {
		exitf("could not open game database: %v", err)
	}

	// Get terminal size
	rc := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}

	logger.Info("starting", "difficulty", preset, "score", sess.ctrl.State().Score, "best", sess.ctrl.Best())

	runErr := tui.Run(sess.ctrl, rc, tui.Options{
		SwipeCells: cfg.Input.MouseSwipeCells,
		Logger:     logger,
	})

	// Flush before potential exit
	sess.Close()

	if runErr != nil {
		exitf("running game: %v", runErr)
	}
}

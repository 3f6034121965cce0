package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/t2048/internal/core"
	"github.com/vovakirdan/t2048/internal/game"
)

var moveCmd = &cobra.Command{
	Use:   "move <step>...",
	Short: "Apply moves to the saved game",
	Long: `Apply one or more steps to the saved game, save it and print the board.

A step is a direction (up, down, left, right), a single key as used in
the interactive game (w, a, s, d, h, j, k, l), or one of:
  undo      - Undo the previous step of this invocation
  new       - Start a new game
  continue  - Keep playing after reaching 2048

Undo history is not saved between invocations.

Examples:
  t2048 move left
  t2048 move w a s d
  t2048 move left undo right
  t2048 move continue up`,
	Args: cobra.MinimumNArgs(1),
	Run:  runMove,
}

func runMove(_ *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitf("%v", err)
	}

	steps, err := parseSteps(args)
	if err != nil {
		exitf("%v", err)
	}

	logger, _, err := newLogger(cfg, false)
	if err != nil {
		exitf("%v", err)
	}

	sess, err := openSession(cfg, logger, false, true)
	if err != nil {
		exitf("could not open game database: %v", err)
	}

	applySteps(sess.ctrl, steps)
	printState(os.Stdout, sess.ctrl.State(), sess.ctrl.Best(), cfg.Game.WinTile)
	sess.Close()
}

// parseSteps validates every step before any is applied.
func parseSteps(args []string) ([]core.Action, error) {
	steps := make([]core.Action, 0, len(args))
	for _, arg := range args {
		a, err := parseStep(arg)
		if err != nil {
			return nil, err
		}
		steps = append(steps, a)
	}
	return steps, nil
}

func parseStep(arg string) (core.Action, error) {
	name := strings.ToLower(strings.TrimSpace(arg))

	switch name {
	case "undo":
		return core.ActionUndo, nil
	case "new":
		return core.ActionNewGame, nil
	case "continue":
		return core.ActionContinue, nil
	}

	switch a := core.ActionForKey(name); a {
	case core.ActionNone, core.ActionHelp, core.ActionQuit:
		return core.ActionNone, fmt.Errorf("unknown step %q", arg)
	default:
		return a, nil
	}
}

// applySteps runs steps in order. Rejected moves leave the game unchanged.
func applySteps(ctrl *game.Controller, steps []core.Action) {
	for _, a := range steps {
		if dir, ok := a.Direction(); ok {
			// Direction comes from a valid action, so Move cannot fail.
			_, _ = ctrl.Move(dir)
			continue
		}
		switch a {
		case core.ActionUndo:
			ctrl.Undo()
		case core.ActionNewGame:
			ctrl.NewGame()
		case core.ActionContinue:
			ctrl.ContinueAfterWin()
		}
	}
}

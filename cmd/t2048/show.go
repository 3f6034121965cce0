package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved game",
	Long: `Print the saved board, score and status without changing anything.

Examples:
  t2048 show
  t2048 show --db ./t2048.db`,
	Args: cobra.NoArgs,
	Run:  runShow,
}

func runShow(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitf("%v", err)
	}
	logger, _, err := newLogger(cfg, false)
	if err != nil {
		exitf("%v", err)
	}

	sess, err := openSession(cfg, logger, false, false)
	if err != nil {
		exitf("could not open game database: %v", err)
	}
	defer sess.Close()

	if !sess.persister.Restored() {
		fmt.Println("No saved game.")
		fmt.Println()
		fmt.Println("Run 't2048' to start one!")
		return
	}

	printState(os.Stdout, sess.ctrl.State(), sess.ctrl.Best(), cfg.Game.WinTile)
	if at, ok, err := sess.store.UpdatedAt(cfg.Storage.StateKey); err == nil && ok {
		fmt.Printf("Saved: %s\n", at.Format(time.DateTime))
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/t2048/internal/storage"
)

var flagResetAll bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the saved game",
	Long: `Delete the saved game so the next session starts fresh.

With --all the best score and every finished game are deleted too.

Examples:
  t2048 reset
  t2048 reset --all`,
	Args: cobra.NoArgs,
	Run:  runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagResetAll, "all", false, "Also delete the best score and finished games")
}

func runReset(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitf("%v", err)
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		exitf("opening game database: %v", err)
	}
	defer store.Close()

	if err := store.Delete(cfg.Storage.StateKey); err != nil {
		exitf("%v", err)
	}
	if !flagResetAll {
		fmt.Println("Saved game discarded.")
		return
	}

	if err := store.Delete(cfg.Storage.BestKey); err != nil {
		exitf("%v", err)
	}
	if err := store.ClearResults(); err != nil {
		exitf("%v", err)
	}
	fmt.Println("Saved game, best score and finished games deleted.")
}

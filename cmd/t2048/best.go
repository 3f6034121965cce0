package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var bestCmd = &cobra.Command{
	Use:   "best",
	Short: "Print the best score and game statistics",
	Args:  cobra.NoArgs,
	Run:   runBest,
}

func runBest(_ *cobra.Command, _ []string) {
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

	stats, err := sess.store.Stats()
	if err != nil {
		logger.Warn("cannot read results", "err", err)
		fmt.Println(sess.ctrl.Best())
		return
	}

	fmt.Println(max(sess.ctrl.Best(), stats.HighScore))
	if stats.Games > 0 {
		fmt.Printf("Games: %d  Wins: %d  Best tile: %d  Last played: %s\n",
			stats.Games, stats.Wins, stats.BestTile, stats.LastPlayed.Format("2006-01-02 15:04"))
	}
}

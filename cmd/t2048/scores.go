package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/t2048/internal/platform/tui"
	"github.com/vovakirdan/t2048/internal/storage"
)

var (
	flagLimit       int
	flagInteractive bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show finished games",
	Long: `Display the best finished games and overall statistics.

Examples:
  t2048 scores
  t2048 scores --limit 25
  t2048 scores --interactive`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of games to show")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse scores in a full-screen table")
}

func runScores(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitf("%v", err)
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		exitf("opening game database: %v", err)
	}
	defer store.Close()

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, flagLimit, width, height); err != nil {
			exitf("%v", err)
		}
		return
	}

	results, err := store.TopResults(flagLimit)
	if err != nil {
		exitf("retrieving scores: %v", err)
	}

	fmt.Println("High Scores - 2048")
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No games finished yet.")
		fmt.Println()
		fmt.Println("Play 't2048' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-8s  %-3s  %s\n", "Rank", "Score", "Max", "Won", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %-3s  %s\n", "----", "-----", "---", "---", "----")

	for i, r := range results {
		won := ""
		if r.Won {
			won = "yes"
		}
		fmt.Printf("  %-4d  %-8d  %-8d  %-3s  %s\n", i+1, r.Score, r.MaxTile, won, r.EndedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.Stats(); err == nil {
		fmt.Printf("Games: %d  Wins: %d  Average: %.0f  Best: %d\n",
			stats.Games, stats.Wins, stats.AvgScore, stats.HighScore)
	}
}

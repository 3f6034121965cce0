// t2048 is the 2048 sliding-tile puzzle for the terminal.
//
// Usage:
//
//	t2048                    - Resume or start a game (same as play)
//	t2048 play               - Play interactively
//	t2048 move <dir>...      - Apply moves to the saved game and print it
//	t2048 show               - Print the saved game
//	t2048 best               - Print the best score
//	t2048 scores             - Show finished games
//	t2048 reset              - Discard the saved game
//
// Global flags:
//
//	--config <path>     - Use a specific config file
//	--db <path>         - Set database path (default: ~/.t2048/t2048.db)
//	--seed <value>      - Set RNG seed for reproducible tile spawns
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagSeed     int64
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 in your terminal",
	Long: `t2048 is the 2048 sliding-tile puzzle for the terminal.

Slide the board to merge equal tiles and reach 2048. Your game is saved
after every move and resumed the next time you start.

Available commands:
  play     - Play interactively (default)
  move     - Apply moves to the saved game from the command line
  show     - Print the saved game
  best     - Print the best score
  scores   - Show finished games
  reset    - Discard the saved game

Examples:
  t2048
  t2048 play --difficulty hard
  t2048 move left up up right
  t2048 scores --interactive`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to game database (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	registerPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(bestCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(resetCmd)
}

// exitf prints an error and exits.
func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

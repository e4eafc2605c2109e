// crush is Cam Crush: a one-button season runner for the terminal.
//
// Usage:
//
//	crush play             - Play a season
//	crush scores           - Show the leaderboard and season archive
//	crush bans             - Manage the name ban list
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.camcrush/crush.db)
//	--config <path> - Load tuning from a custom YAML file
//	--log <path>    - Write the game log to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cam-crush/internal/leaderboard"
	"github.com/vovakirdan/cam-crush/internal/storage"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogPath string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "crush",
	Short: "Cam Crush - steamroll a football season in your terminal",
	Long: `Cam Crush is a terminal runner. Drive through a 17-week season,
crush opponents, dodge hazards and put your name on the Top 5.

Available commands:
  play     - Play a season
  scores   - View the leaderboard and archived seasons
  bans     - Manage names that may not be entered

Examples:
  crush play
  crush play --year 2030
  crush scores --browse
  crush bans add rival`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.camcrush/crush.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "~/.camcrush/crush.log", "Path to log file (empty = no log)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log every game event")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(bansCmd)
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// newLogger opens the log file. The terminal belongs to the game, so logging
// is discarded when the file cannot be opened.
func newLogger() (*log.Logger, func()) {
	var out io.Writer = io.Discard
	closer := func() {}

	if flagLogPath != "" {
		path := expandHome(flagLogPath)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
				out = f
				closer = func() { f.Close() }
			}
		}
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "crush",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closer
}

// openBoard opens the database and the leaderboard on top of it.
// The returned store is nil when the database cannot be opened.
func openBoard(logger *log.Logger) (*leaderboard.Manager, *storage.Store) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores database unavailable", "path", flagDBPath, "error", err)
		// Continue in memory - the game still works
		return leaderboard.New(storage.NewMemory(), leaderboard.WithLogger(logger)), nil
	}
	return leaderboard.New(store, leaderboard.WithLogger(logger)), store
}

// mustStore opens the database or fails the command.
func mustStore() (*storage.Store, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("opening scores database: %w", err)
	}
	return store, nil
}

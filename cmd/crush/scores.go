package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/cam-crush/internal/leaderboard"
	"github.com/vovakirdan/cam-crush/internal/platform/tui"
)

var (
	flagReset  bool
	flagBrowse bool
	flagLimit  int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard and archived seasons",
	Long: `Display the Top 5, the best score and the best archived seasons.

Examples:
  crush scores
  crush scores --browse
  crush scores --limit 20
  crush scores --reset`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagReset, "reset", false, "Clear the leaderboard, best score and season archive")
	scoresCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Browse scores interactively")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of archived seasons to show")
}

func runScores(cmd *cobra.Command, args []string) error {
	logger, closeLog := newLogger()
	defer closeLog()

	store, err := mustStore()
	if err != nil {
		return err
	}
	defer store.Close()

	board := leaderboard.New(store, leaderboard.WithLogger(logger))

	if flagReset {
		if err := board.Reset(); err != nil {
			return fmt.Errorf("resetting leaderboard: %w", err)
		}
		if err := store.ClearSeasons(); err != nil {
			return fmt.Errorf("clearing season archive: %w", err)
		}
		fmt.Println("Leaderboard and season archive cleared.")
		return nil
	}

	if flagBrowse {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(board, store, width, height)
	}

	// Display the board
	fmt.Println("Top 5")
	fmt.Println()

	entries := board.Entries()
	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'crush play' to set the first high score!")
	} else {
		fmt.Printf("  %-4s  %-20s  %-10s  %s\n", "Rank", "Name", "Score", "Date")
		fmt.Printf("  %-4s  %-20s  %-10s  %s\n", "----", "----", "-----", "----")
		for i, e := range entries {
			date := "-"
			if !e.Date.IsZero() {
				date = e.Date.Local().Format("2006-01-02 15:04")
			}
			fmt.Printf("  %-4d  %-20s  %-10d  %s\n", i+1, e.Name, e.Score, date)
		}
	}

	fmt.Println()
	fmt.Printf("Best: %d\n", board.Best())

	seasons, err := store.TopSeasons(flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving seasons: %w", err)
	}
	count, err := store.SeasonCount()
	if err != nil {
		return fmt.Errorf("counting seasons: %w", err)
	}
	if count == 0 {
		return nil
	}

	fmt.Println()
	fmt.Printf("Seasons played: %d\n", count)
	fmt.Println()
	fmt.Printf("  %-4s  %-6s  %-10s  %s\n", "Rank", "Season", "Score", "Played")
	fmt.Printf("  %-4s  %-6s  %-10s  %s\n", "----", "------", "-----", "------")
	for i, s := range seasons {
		fmt.Printf("  %-4d  %-6d  %-10d  %s\n", i+1, s.Year, s.Score, s.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

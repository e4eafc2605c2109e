package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cam-crush/internal/leaderboard"
	"github.com/vovakirdan/cam-crush/internal/storage"
)

var bansCmd = &cobra.Command{
	Use:   "bans",
	Short: "Manage the name ban list",
	Long: `Names containing a banned word (case-insensitive) cannot be entered
on the leaderboard.

Examples:
  crush bans list
  crush bans add rival
  crush bans remove rival
  crush bans reset`,
}

var bansListCmd = &cobra.Command{
	Use:   "list",
	Short: "List banned words",
	Args:  cobra.NoArgs,
	RunE: withBoard(func(board *leaderboard.Manager, _ []string) error {
		for _, w := range board.Bans() {
			fmt.Println(w)
		}
		return nil
	}),
}

var bansAddCmd = &cobra.Command{
	Use:   "add <word>...",
	Short: "Ban one or more words",
	Args:  cobra.MinimumNArgs(1),
	RunE: withBoard(func(board *leaderboard.Manager, args []string) error {
		for _, w := range args {
			if err := board.AddBan(w); err != nil {
				return fmt.Errorf("banning %q: %w", w, err)
			}
		}
		fmt.Printf("Banned: %s\n", strings.Join(args, ", "))
		return nil
	}),
}

var bansRemoveCmd = &cobra.Command{
	Use:   "remove <word>",
	Short: "Unban a word",
	Args:  cobra.ExactArgs(1),
	RunE: withBoard(func(board *leaderboard.Manager, args []string) error {
		removed, err := board.RemoveBan(args[0])
		if err != nil {
			return fmt.Errorf("unbanning %q: %w", args[0], err)
		}
		if !removed {
			return fmt.Errorf("%q is not banned", args[0])
		}
		fmt.Printf("Unbanned: %s\n", args[0])
		return nil
	}),
}

var bansResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default ban list",
	Args:  cobra.NoArgs,
	RunE: withBoard(func(board *leaderboard.Manager, _ []string) error {
		if err := board.ResetBans(); err != nil {
			return fmt.Errorf("resetting bans: %w", err)
		}
		fmt.Printf("Ban list restored (%d words).\n", len(leaderboard.DefaultBans))
		return nil
	}),
}

func init() {
	bansCmd.AddCommand(bansListCmd, bansAddCmd, bansRemoveCmd, bansResetCmd)
}

// withBoard opens the database for a ban subcommand.
func withBoard(fn func(*leaderboard.Manager, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		logger, closeLog := newLogger()
		defer closeLog()

		store, err := mustStore()
		if err != nil {
			return err
		}
		defer store.Close()

		var kv storage.KV = store
		return fn(leaderboard.New(kv, leaderboard.WithLogger(logger)), args)
	}
}

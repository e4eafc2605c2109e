package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/cam-crush/internal/config"
	"github.com/vovakirdan/cam-crush/internal/core"
	"github.com/vovakirdan/cam-crush/internal/games/crush"
	"github.com/vovakirdan/cam-crush/internal/platform/tui"
)

var (
	flagYear    int
	flagSprites string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a season",
	Long: `Start Cam Crush on the home screen, or straight into a season with --year.

Controls:
  Right/D        - Push forward (faster, more points)
  Left/A         - Back off
  Space/W/Up     - Jump
  Up/Down        - Pick a season on the home screen
  Enter          - Start / continue
  P/Esc          - Pause
  Q              - Quit the run (on the home screen: exit)
  Ctrl+C         - Exit

Examples:
  crush play
  crush play --year 2027
  crush play --sprites ./sprites
  crush play --config ./my-crush.yaml --seed 42`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagYear, "year", 0, "Start this season immediately")
	playCmd.Flags().StringVar(&flagSprites, "sprites", "", "Directory of .txt sprite art")
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger, closeLog := newLogger()
	defer closeLog()

	cfg, err := config.LoadCrush(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}

	board, store := openBoard(logger)
	opts := []crush.Option{crush.WithSeed(seed), crush.WithLogger(logger)}
	if store != nil {
		defer store.Close()
		opts = append(opts, crush.WithArchive(store))
	}
	session := crush.NewSession(cfg, board, opts...)

	if flagYear != 0 {
		if err := session.StartSeason(flagYear); err != nil {
			return fmt.Errorf("season %d: %w", flagYear, err)
		}
	}

	logger.Info("starting", "seed", seed, "fps", flagFPS, "year", flagYear)
	if err := tui.Run(session, board, runtime,
		tui.WithSprites(config.LoadSprites(flagSprites)),
		tui.WithLogger(logger),
	); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

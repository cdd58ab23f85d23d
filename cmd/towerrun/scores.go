package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/towerrun/internal/games/towerrun/engine"
	"github.com/vovakirdan/towerrun/internal/platform/tui"
	"github.com/vovakirdan/towerrun/internal/storage"
)

var (
	flagRecent bool
	flagLimit  int
	flagTUI    bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the run history",
	Long: `Display the best runs, or the most recent ones.

Examples:
  towerrun scores
  towerrun scores --recent --limit 20
  towerrun scores --tui`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "List the most recent runs instead of the best")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to list")
	scoresCmd.Flags().BoolVar(&flagTUI, "tui", false, "Browse the history interactively")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var runs []storage.RunEntry
	title := "Top Runs"
	if flagRecent {
		title = "Recent Runs"
		runs, err = store.RecentRuns(flagLimit)
	} else {
		runs, err = store.TopRuns(flagLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Tower Run - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'towerrun play' to set the first score!")
		return
	}

	fmt.Printf("  %-4s  %-8s  %-4s  %-6s  %-6s  %-6s  %s\n", "Rank", "Score", "Tier", "Floors", "Result", "Time", "Date")
	fmt.Printf("  %-4s  %-8s  %-4s  %-6s  %-6s  %-6s  %s\n", "----", "-----", "----", "------", "------", "----", "----")
	for i, r := range runs {
		result := "lost"
		if r.Won {
			result = "won"
		}
		fmt.Printf("  %-4d  %-8d  %-4d  %-6d  %-6s  %-6s  %s\n",
			i+1, r.Score, r.Tier, r.FloorsCleared, result,
			engine.FormatDuration(r.Duration), r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, statsErr := store.Stats(); statsErr == nil {
		fmt.Printf("Best: %d   Runs: %d   Wins: %d\n", stats.HighScore, stats.RunsCount, stats.Wins)
	}
	if fastest, fastErr := store.FastestWin(); fastErr == nil && fastest > 0 {
		fmt.Printf("Fastest clear: %s\n", engine.FormatDuration(fastest))
	}
}

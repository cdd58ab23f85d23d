package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/towerrun/internal/storage"
)

var flagYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear progress, settings and history",
	Long: `Remove the best score, fastest clear, settings (including those of SSH
users) and the whole run history from the database.

Examples:
  towerrun reset
  towerrun reset --yes`,
	Args: cobra.NoArgs,
	Run:  runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Do not ask for confirmation")
}

func runReset(_ *cobra.Command, _ []string) {
	if !flagYes {
		fmt.Print("This removes all Tower Run data. Continue? [y/N] ")
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			fmt.Println("Aborted.")
			return
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Clear(); err != nil {
		fmt.Fprintf(os.Stderr, "Error clearing values: %v\n", err)
		os.Exit(1)
	}
	if err := store.ClearRuns(); err != nil {
		fmt.Fprintf(os.Stderr, "Error clearing run history: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("All Tower Run data cleared.")
}

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/towerrun/internal/games/towerrun/engine"
	"github.com/vovakirdan/towerrun/internal/storage"
)

var settingsCmd = &cobra.Command{
	Use:   "settings [name value]",
	Short: "Show or change settings",
	Long: `Without arguments, print the current settings. With a name and a value,
change one setting.

Settings:
  reduce-motion  true/false
  sound          true/false
  show-fps       true/false

Examples:
  towerrun settings
  towerrun settings sound false`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("expected no arguments or a name and a value, got %d", len(args))
		}
		return nil
	},
	Run: runSettings,
}

func runSettings(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	progress := engine.NewProgress(store, nil)
	s := progress.Settings()

	if len(args) == 2 {
		updated, setErr := applySetting(s, args[0], args[1])
		if setErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", setErr)
			os.Exit(1)
		}
		progress.SaveSettings(updated)
		s = updated
	}

	fmt.Printf("reduce-motion  %t\n", s.ReduceMotion)
	fmt.Printf("sound          %t\n", s.Sound)
	fmt.Printf("show-fps       %t\n", s.ShowFPS)
}

// applySetting returns s with the named setting changed.
func applySetting(s engine.Settings, name, value string) (engine.Settings, error) {
	on, err := strconv.ParseBool(value)
	if err != nil {
		return s, fmt.Errorf("invalid value %q for %s: want true or false", value, name)
	}
	switch name {
	case "reduce-motion":
		s.ReduceMotion = on
	case "sound":
		s.Sound = on
	case "show-fps":
		s.ShowFPS = on
	default:
		return s, fmt.Errorf("unknown setting %q", name)
	}
	return s, nil
}

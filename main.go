package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sheikhrachel/go-organism/utils"
)

// Version of the organism CLI
const Version = "0.3.0"

var rootCmd = &cobra.Command{
	Use:   "organism",
	Short: "organism evolves a 4-neighbor cellular automaton",
	Long: `organism verifies its transition rule against fixtures, fetches a starting
world, computes its generations, and submits them back to the world service.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "config.json", "Path to the JSON configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
}

// loadConfig reads --config. A missing default file yields the defaults; a
// missing file named explicitly with --config is an error.
func loadConfig(cmd *cobra.Command) (utils.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if cmd.Flags().Changed("config") {
		if _, err := os.Stat(path); err != nil {
			return utils.Config{}, errors.Wrapf(err, "[loadConfig] --config %s", path)
		}
	}
	config, err := utils.LoadConfig(path)
	if err != nil {
		return config, err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		config.LogLevel = level
	}
	return config, nil
}

func main() {
	Execute()
}

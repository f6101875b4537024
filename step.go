package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sheikhrachel/go-organism/model"
)

var stepCmd = &cobra.Command{
	Use:   "step",
	Short: "Evolve a grid given on the command line",
	Example: `  organism step --grid '[[0,1,0],[1,1,1],[0,1,0]]' --generations 2
  organism step --grid '[[1,1],[1,1]]' --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		raw, _ := cmd.Flags().GetString("grid")
		count, _ := cmd.Flags().GetInt("generations")
		asJSON, _ := cmd.Flags().GetBool("json")

		var grid model.Grid
		if err := json.Unmarshal([]byte(raw), &grid); err != nil {
			return errors.Wrap(err, "[step] --grid")
		}

		seq, err := model.NewStepper(config.Workers).Generate(&grid, count)
		if err != nil {
			return err
		}

		if asJSON {
			return json.NewEncoder(os.Stdout).Encode(seq)
		}
		renderer := model.NewTerminalRenderer(os.Stdout)
		if frameRate, _ := cmd.Flags().GetDuration("animate"); frameRate > 0 {
			renderer.Animate(seq, frameRate)
		} else {
			renderer.DisplaySequence(seq)
		}
		fmt.Printf("%d generations\n", seq.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stepCmd)

	stepCmd.Flags().String("grid", "", "Grid as a JSON array of rows of 0/1")
	stepCmd.Flags().IntP("generations", "n", 1, "Number of transitions to apply")
	stepCmd.Flags().Bool("json", false, "Print the sequence as JSON")
	stepCmd.Flags().Duration("animate", 0, "Redraw generations in place at this frame rate, e.g. 150ms")
	_ = stepCmd.MarkFlagRequired("grid")
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sheikhrachel/go-organism/internal/logging"
	"github.com/sheikhrachel/go-organism/model"
	"github.com/sheikhrachel/go-organism/verify"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [fixtures]",
	Short: "Run the fixture diagnostics only",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		path := config.FixturesPath
		if len(args) > 0 {
			path = args[0]
		}

		cases, err := verify.LoadFixtures(path)
		if err != nil {
			return err
		}

		logger := logging.New(config.SlogLevel())
		report, err := verify.NewVerifier(model.NewStepper(config.Workers), logger).Run(cases)
		printReport(report)
		return err
	},
}

// printReport renders the report with glamour, falling back to raw markdown
func printReport(report *verify.Report) {
	out, err := report.Render()
	if err != nil {
		fmt.Println(report.Markdown())
		return
	}
	fmt.Print(out)
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of organism",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("organism version %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

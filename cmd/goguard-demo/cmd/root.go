package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "goguard-demo",
	Short: "goguard-demo is a small admin console guarded by goGuard",
	Long: `A demonstration console that wires the goGuard session controller,
route guard, and a mock authentication boundary into one process.
Complete documentation is available at https://github.com/MrEthical07/goGuard`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

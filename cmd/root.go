package cmd

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "spawnjoin",
	Short: "Spawnjoin - fan out workers and join them all",
	Long: `Spawnjoin starts a fixed number of concurrent workers, lets each one
print its own thread number, and returns once every worker has finished.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to an explicit config file")
}

func Execute() error {
	return rootCmd.Execute()
}

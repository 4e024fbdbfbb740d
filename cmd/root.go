package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the meetslot application
var rootCmd = &cobra.Command{
	Use:   "meetslot",
	Short: "Finds meeting slots where a group of calendars is free",
	Long: `meetslot searches a set of Google calendars for meeting slots where
every participant is free, and lists partially free slots ranked by how
few participants are busy.

It can run as:
  - A standalone CLI tool (default)
  - An MCP (Model Context Protocol) server for AI assistants`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(debugMode)
	},
}

// debugMode enables debug logging across all commands
var debugMode bool

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "meetslot version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
}

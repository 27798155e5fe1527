package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/censor/internal/logger"
)

const version = "0.1.0"

// Exit codes
const (
	ExitSuccess      = 0
	ExitUsageError   = 2
	ExitPatternError = 3
	ExitFileError    = 4
)

var flagLogLevel string

var rootCmd = &cobra.Command{
	Use:          "censor",
	Short:        "Redact regex matches from text files in place",
	Long:         "Censor replaces every match of an ordered list of regular expressions with [REDACTED] and rewrites each file in place.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagLogLevel != "" {
			logger.SetLevel(flagLogLevel)
		}
	},
}

// Run executes the root command and returns an exit code.
func Run() int {
	defer logger.Sync()
	return execute(os.Args[1:])
}

func execute(args []string) int {
	exitCode = ExitSuccess
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}
	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print censor version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "censor version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error). Overrides CENSOR_LOG_LEVEL")

	rootCmd.AddCommand(fileCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(patternsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

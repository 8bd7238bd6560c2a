// Package commands implements the CLI commands using Cobra.
package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/msgtools/telstra-numbers/internal/output"
)

// Version information (set at build time via ldflags)
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// Global flags
var (
	verbose    bool
	jsonOutput bool
	configPath string
	logLevel   string
	logFile    string
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "telstra-numbers",
	Short: "Manage Telstra messaging free-trial and virtual numbers",
	Long: `telstra-numbers talks to the Telstra messaging v3 API.

Each run requests an OAuth2 client-credentials token, performs one action,
prints every HTTP status and raw response body, and exits.

Credentials are read from TELSTRA_CLIENT_ID and TELSTRA_CLIENT_SECRET, or from
a telstra-numbers.yaml config file (see --config).

Commands:
  free-trial list               List registered free-trial numbers
  free-trial register <n>...    Register national-format numbers for the free trial
  virtual-numbers               List the account's virtual numbers
  token                         Request a token and show its metadata
  version                       Show version information

Examples:
  # List free-trial numbers
  telstra-numbers free-trial list

  # Register two numbers
  telstra-numbers free-trial register 0412345678 0487654321

  # List virtual numbers as JSON
  telstra-numbers virtual-numbers --json`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command tree with args and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		output.NewPrinter(stdout, stderr, jsonOutput, verbose).Error(err, exitFailure)
		return exitFailure
	}
	return exitSuccess
}

const (
	exitSuccess = 0
	exitFailure = 1
)

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show request URLs and latency")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ./telstra-numbers.yaml or ~/.config/telstra-numbers/telstra-numbers.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Diagnostic log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write diagnostic logs to a rotating file instead of stderr")
}

// GetVerbose returns the verbose flag value.
func GetVerbose() bool {
	return verbose
}

// GetJSONOutput returns the json output flag value.
func GetJSONOutput() bool {
	return jsonOutput
}

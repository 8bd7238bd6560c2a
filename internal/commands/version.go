package commands

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msgtools/telstra-numbers/internal/config"
	"github.com/msgtools/telstra-numbers/internal/output"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Display version, build information, runtime details and the API version requested.`,
	Run:   runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()

	if GetJSONOutput() {
		output.WriteJSON(out, map[string]string{
			"version":    Version,
			"commit":     Commit,
			"buildDate":  BuildDate,
			"apiVersion": config.DefaultAPIVersion,
			"go":         runtime.Version(),
			"os":         runtime.GOOS,
			"arch":       runtime.GOARCH,
		})
		return
	}

	// Compact format: telstra-numbers 0.1.0 (e0b2c4f)
	commitShort := truncate(Commit, 7)
	if commitShort != "none" {
		fmt.Fprintf(out, "telstra-numbers %s (%s)\n", Version, commitShort)
	} else {
		fmt.Fprintf(out, "telstra-numbers %s\n", Version)
	}

	if BuildDate != "unknown" {
		fmt.Fprintf(out, "  Built:    %s\n", truncate(BuildDate, 10))
	}

	goVersion := strings.TrimPrefix(runtime.Version(), "go")
	fmt.Fprintf(out, "  Go:       %s\n", goVersion)
	fmt.Fprintf(out, "  Platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(out, "  API:      messaging v3 (%s)\n", config.DefaultAPIVersion)
}

// truncate returns at most maxLen characters from s.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

package commands

import (
	"github.com/spf13/cobra"
)

var virtualNumbersCmd = &cobra.Command{
	Use:     "virtual-numbers",
	Aliases: []string{"virtual", "vn"},
	Short:   "List the account's virtual numbers",
	Long: `Request a token and list the account's virtual numbers.

Only the bearer token is sent with this request unless
virtual_numbers.protocol_headers is enabled in the config.

A 204 or 404 response is reported as "no virtual numbers" and exits 0.

Examples:
  telstra-numbers virtual-numbers
  telstra-numbers virtual-numbers --json`,
	Args: cobra.NoArgs,
	RunE: runVirtualNumbers,
}

func init() {
	rootCmd.AddCommand(virtualNumbersCmd)
}

func runVirtualNumbers(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	c, err := s.client(cmd.Context(), s.cfg.VirtualNumbers.Timeout)
	if err != nil {
		return err
	}

	result, err := c.ListVirtualNumbers(cmd.Context())
	if err != nil {
		return err
	}
	return s.printer.VirtualNumbers(result)
}

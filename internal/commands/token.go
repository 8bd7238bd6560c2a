package commands

import (
	"github.com/spf13/cobra"
)

var tokenShow bool

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Request an access token and show its metadata",
	Long: `Perform the client-credentials grant only. Useful for checking credentials
and scope before calling the number endpoints.

The access token itself is hidden unless --show-token is given.

Examples:
  telstra-numbers token
  telstra-numbers token --show-token --json`,
	Args: cobra.NoArgs,
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().BoolVar(&tokenShow, "show-token", false, "Print the access token")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	tok, err := s.authenticate(cmd.Context(), s.cfg.FreeTrial.Timeout)
	if err != nil {
		return err
	}
	return s.printer.Token(tok, tokenShow)
}

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msgtools/telstra-numbers/internal/telstra"
)

var freeTrialCmd = &cobra.Command{
	Use:     "free-trial",
	Aliases: []string{"free-trial-numbers", "ftn"},
	Short:   "List or register free-trial numbers",
	Long: `Manage the numbers registered for the Telstra messaging free trial.

Numbers must be in national format (e.g. 0412345678). A number that does not
look like an 04 mobile or a 10-digit number produces a warning but is still
submitted; the API decides what is valid.

A 404 from the list endpoint usually means free-trial numbers are not enabled
for the account. It is reported as a notice, not a failure.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.Help()
		return fmt.Errorf("an action is required: list or register")
	},
}

var freeTrialListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered free-trial numbers",
	Long: `List the numbers registered for the free trial.

Examples:
  telstra-numbers free-trial list
  telstra-numbers free-trial list --json`,
	Args: cobra.NoArgs,
	RunE: runFreeTrialList,
}

var freeTrialRegisterCmd = &cobra.Command{
	Use:   "register <number> [<number>...]",
	Short: "Register numbers for the free trial",
	Long: `Register one or more national-format numbers for the free trial.

A single number is sent as a string, several as an array.

Examples:
  telstra-numbers free-trial register 0412345678
  telstra-numbers free-trial register 0412345678 0487654321`,
	RunE: runFreeTrialRegister,
}

func init() {
	freeTrialCmd.AddCommand(freeTrialListCmd)
	freeTrialCmd.AddCommand(freeTrialRegisterCmd)
	rootCmd.AddCommand(freeTrialCmd)
}

func runFreeTrialList(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	c, err := s.client(cmd.Context(), s.cfg.FreeTrial.Timeout)
	if err != nil {
		return err
	}

	result, err := c.ListFreeTrialNumbers(cmd.Context())
	if err != nil {
		return err
	}
	return s.printer.FreeTrialNumbers(result)
}

func runFreeTrialRegister(cmd *cobra.Command, args []string) error {
	numbers := normalizeNumbers(args)
	if len(numbers) == 0 {
		cmd.Usage()
		return &telstra.ValidationError{Field: "freeTrialNumbers", Message: "no numbers provided to register"}
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	for _, n := range telstra.SuspectNumbers(numbers) {
		s.printer.Warning(telstra.FormatWarning(n))
	}

	c, err := s.client(cmd.Context(), s.cfg.FreeTrial.Timeout)
	if err != nil {
		return err
	}

	resp, err := c.RegisterFreeTrialNumbers(cmd.Context(), numbers)
	if err != nil {
		return err
	}
	return s.printer.RegisterResponse(resp)
}

// normalizeNumbers trims whitespace and drops empty arguments.
func normalizeNumbers(args []string) []string {
	numbers := make([]string, 0, len(args))
	for _, a := range args {
		if n := strings.TrimSpace(a); n != "" {
			numbers = append(numbers, n)
		}
	}
	return numbers
}

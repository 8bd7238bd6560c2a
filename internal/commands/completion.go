package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for telstra-numbers.

To load completions:

Bash:
  $ source <(telstra-numbers completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ telstra-numbers completion bash > /etc/bash_completion.d/telstra-numbers
  # macOS:
  $ telstra-numbers completion bash > $(brew --prefix)/etc/bash_completion.d/telstra-numbers

Zsh:
  $ source <(telstra-numbers completion zsh)
  # To load completions for each session, execute once:
  $ telstra-numbers completion zsh > "${fpath[1]}/_telstra-numbers"

Fish:
  $ telstra-numbers completion fish | source
  # To load completions for each session, execute once:
  $ telstra-numbers completion fish > ~/.config/fish/completions/telstra-numbers.fish

PowerShell:
  PS> telstra-numbers completion powershell | Out-String | Invoke-Expression`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			if err := cmd.Root().GenBashCompletion(cmd.OutOrStdout()); err != nil {
				return fmt.Errorf("generating bash completion: %w", err)
			}
		case "zsh":
			if err := cmd.Root().GenZshCompletion(cmd.OutOrStdout()); err != nil {
				return fmt.Errorf("generating zsh completion: %w", err)
			}
		case "fish":
			if err := cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true); err != nil {
				return fmt.Errorf("generating fish completion: %w", err)
			}
		case "powershell":
			if err := cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout()); err != nil {
				return fmt.Errorf("generating powershell completion: %w", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(completionCmd)
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `To load completions:

Bash:
  $ source <(coexm completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ coexm completion bash > /etc/bash_completion.d/coexm
  # macOS:
  $ coexm completion bash > /usr/local/etc/bash_completion.d/coexm

Zsh:
  $ coexm completion zsh > "${fpath[1]}/_coexm"

Fish:
  $ coexm completion fish > ~/.config/fish/completions/coexm.fish

PowerShell:
  PS> coexm completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
		}
		return cmd.Help()
	},
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/cartesian/pkg/render"
)

// modelArgs is the number of model file arguments each command takes.
var modelArgs = map[string]int{
	"measure":     1,
	"markers":     1,
	"render":      1,
	"explore":     1,
	"interpolate": 2,
}

// completionCommand creates the shell completion command.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for cartesian.

Model arguments complete to .json files, --config to .toml and .yaml files,
and render --format to the supported output formats.

  $ source <(cartesian completion bash)
  $ cartesian completion zsh > "${fpath[1]}/_cartesian"
  $ cartesian completion fish | source
  PS> cartesian completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// registerCompletions wires argument and flag completion into every
// subcommand of root.
func registerCompletions(root *cobra.Command) {
	for _, cmd := range root.Commands() {
		if n, ok := modelArgs[cmd.Name()]; ok {
			cmd.ValidArgsFunction = completeFiles(n, "json")
		}
		if cmd.Flags().Lookup("config") != nil {
			_ = cmd.RegisterFlagCompletionFunc("config", completeFiles(-1, "toml", "yaml", "yml"))
		}
	}
	if cmd, _, err := root.Find([]string{"render"}); err == nil {
		_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
			[]string{string(render.FormatSVG), string(render.FormatPNG), string(render.FormatPDF)},
			cobra.ShellCompDirectiveNoFileComp,
		))
	}
}

// completeFiles completes files with the given extensions until n
// arguments are present. A negative n never stops.
func completeFiles(n int, exts ...string) cobra.CompletionFunc {
	return func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if n >= 0 && len(args) >= n {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return exts, cobra.ShellCompDirectiveFilterFileExt
	}
}

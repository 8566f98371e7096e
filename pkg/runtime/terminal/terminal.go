package terminal

import (
	"github.com/de-tools/site-report/pkg/runtime/terminal/commands"
	"github.com/de-tools/site-report/pkg/services/export"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	registry *export.Registry
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Registry *export.Registry
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	cli := &CLI{registry: opts.Registry}
	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "site-report",
		Short: "Daily site report export tool",
	}

	cmd.AddCommand(commands.NewRenderCmd(cli.registry))
	cmd.AddCommand(commands.NewFormatsCmd(cli.registry))

	return cmd
}

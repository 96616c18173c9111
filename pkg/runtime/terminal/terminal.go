package terminal

import (
	"io"
	"os"

	"github.com/de-tools/promo-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/promo-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/promo-atlas/pkg/services/registry"
	"github.com/de-tools/promo-atlas/pkg/services/session"
	"github.com/de-tools/promo-atlas/pkg/services/views"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	registry registry.Registry
	sessions *session.Manager
	builder  views.Builder
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Registry registry.Registry
	Sessions *session.Manager
	Builder  views.Builder
	Output   io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		registry: opts.Registry,
		sessions: opts.Sessions,
		builder:  opts.Builder,
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "promo-atlas",
		Short: "Promotion analytics over the canonical datasets",
	}

	cmd.AddCommand(commands.NewReportCmd(cli.sessions, cli.builder, cli.reporter))
	cmd.AddCommand(commands.NewViewsCmd(cli.builder))
	cmd.AddCommand(commands.NewValidateCmd(cli.registry))

	return cmd
}

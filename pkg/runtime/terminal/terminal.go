package terminal

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/finreport/pkg/runtime/terminal/commands"
	"github.com/de-tools/finreport/pkg/runtime/terminal/export"
	"github.com/de-tools/finreport/pkg/services/config"
	"github.com/de-tools/finreport/pkg/services/llm"
)

// CLI represents the command-line interface
type CLI struct {
	env     *commands.Environment
	output  io.Writer
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Registry llm.Registry
	Output   io.Writer
	Input    io.Reader
	Logger   *zerolog.Logger
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Registry == nil {
		opts.Registry = llm.NewDefaultRegistry()
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	cli := &CLI{
		env: &commands.Environment{
			Registry: opts.Registry,
			Logger:   logger,
			Stdin:    opts.Input,
		},
		output: opts.Output,
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// SetArgs overrides os.Args, used in tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) reporter(currency string) *export.Reporter {
	return export.NewReporter(cli.output, currency)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "finreport",
		Short:         "Quarterly financial metrics and reports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(cli.output)

	flags := cmd.PersistentFlags()
	flags.StringVar(&cli.env.SettingsPath, "settings", "", "Path to a settings file (yaml, json or toml)")
	flags.StringSliceVar(&cli.env.EnvFiles, "env-file", nil, "Environment files to load (default .env when present)")
	flags.StringVar(&cli.env.Profile, "profile", "", "Credential profile to use for text generation")
	flags.StringVar(&cli.env.ProfilesPath, "profiles-file", config.DefaultProfilesPath(), "Path to the credential profiles file")

	cmd.AddCommand(commands.NewAnalyzeCmd(cli.env, cli.reporter))
	cmd.AddCommand(commands.NewRenderCmd(cli.env, cli.reporter))
	cmd.AddCommand(commands.NewProfilesCmd(cli.env, cli.reporter))

	return cmd
}

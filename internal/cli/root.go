package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// envPrefix is the prefix of the environment variables read by viper
const envPrefix = "NLOGFMT"

// app holds the state shared by the commands of one root command
type app struct {
	v       *viper.Viper
	cfgFile string
}

// NewRootCommand builds the nlogfmt command tree. Each call gets its own
// viper instance so commands can be built and executed side by side.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "nlogfmt",
		Short: "Render log records through spdlog-style patterns",
		Long: `nlogfmt renders messages or JSON log lines through a log pattern
such as "[%Y-%m-%d %H:%M:%S.%e] [%n] [%l] %v" and explains how a pattern
compiles.

Settings are read from flags, then NLOGFMT_* environment variables, then
.nlogfmt.yaml in the current or home directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initConfig()
		},
	}

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default: ./.nlogfmt.yaml or $HOME/.nlogfmt.yaml)")
	root.PersistentFlags().StringP("pattern", "p", "%+", "log pattern")
	root.PersistentFlags().Bool("utc", false, "render dates and times in UTC")
	cobra.CheckErr(a.v.BindPFlag("pattern", root.PersistentFlags().Lookup("pattern")))
	cobra.CheckErr(a.v.BindPFlag("utc", root.PersistentFlags().Lookup("utc")))

	root.AddCommand(a.newRenderCommand(), a.newExplainCommand())
	return root
}

// initConfig layers the config file and environment under the flags
func (a *app) initConfig() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			a.v.AddConfigPath(home)
		}
		a.v.SetConfigName(".nlogfmt")
		a.v.SetConfigType("yaml")
	}

	a.v.SetEnvPrefix(envPrefix)
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// Execute runs the nlogfmt command line and returns the process exit
// code. SIGINT and SIGTERM cancel the command's context.
func Execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "nlogfmt:", err)
		return 1
	}
	return 0
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

var log = commonlog.GetLogger("pcx.cli")

// app carries configuration shared by all subcommands. Flags, PCX_*
// environment variables and the --config file are merged by viper, flags
// taking precedence.
type app struct {
	conf *viper.Viper
}

func newRootCmd() *cobra.Command {
	a := &app{conf: viper.New()}

	rootCmd := &cobra.Command{
		Use:          "pcx",
		Short:        "Parser combinator toolkit",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	rootCmd.PersistentFlags().String("config", "",
		"configuration file (yaml, json or toml); overridden by PCX_* environment variables and flags")
	rootCmd.PersistentFlags().CountP("verbose", "v", "increase log verbosity (repeatable)")

	rootCmd.AddCommand(a.newCheckCmd())
	rootCmd.AddCommand(a.newParseCmd())
	rootCmd.AddCommand(a.newMatchCmd())
	rootCmd.AddCommand(a.newLSPCmd())

	return rootCmd
}

func (a *app) load(cmd *cobra.Command) error {
	if err := a.conf.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}
	if err := a.conf.BindPFlags(cmd.InheritedFlags()); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}
	a.conf.SetEnvPrefix("PCX")
	a.conf.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.conf.AutomaticEnv()

	if cfg := a.conf.GetString("config"); cfg != "" {
		a.conf.SetConfigFile(cfg)
		if err := a.conf.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}

	commonlog.Configure(a.conf.GetInt("verbose"), nil)
	log.Debugf("running %s", cmd.CommandPath())
	return nil
}

// Package cli implements the schemata command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/persistx/schemata/i18n"
)

// app is the state shared by the commands of one root command.
type app struct {
	v   *viper.Viper
	cfg Config
	log *log.Logger
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCommand builds the command tree with its own configuration.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New(), log: log.New(io.Discard, "", 0)}

	root := &cobra.Command{
		Use:               "schemata",
		Short:             "Decode, check and describe schema-mapped models",
		Long:              "schemata maps the library's Book and Author models to JSON, YAML, TOML and env-style records.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default .schemata.yaml)")
	pf.StringP("format", "f", "", "file format: auto, json, yaml, toml or record")
	pf.String("lang", "", "message language: en or ja")
	pf.BoolP("verbose", "v", false, "verbose output")
	for _, key := range []string{"format", "lang", "verbose"} {
		_ = a.v.BindPFlag(key, pf.Lookup(key))
	}

	root.AddCommand(
		a.describeCmd(),
		a.decodeCmd(),
		a.convertCmd(),
		a.resolveCmd(),
		a.checkCmd(),
		a.schemaCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	if err := initConfig(a.v, cfgFile); err != nil {
		return err
	}
	cfg, err := loadConfig(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	i18n.SetLanguage(cfg.Lang)

	if cfg.Verbose {
		a.log = log.New(cmd.ErrOrStderr(), "[schemata] ", 0)
	}
	a.log.Printf("config: format=%s lang=%s", cfg.Format, cfg.Lang)
	return nil
}

// format returns the configured file format. loadConfig has validated it.
func (a *app) format() format {
	f, _ := parseFormat(a.cfg.Format)
	return f
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/tactile/internal/app"
	"github.com/dshills/tactile/internal/config"
)

func newConfigCmd(opts *app.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}
	cmd.AddCommand(newConfigShowCmd(opts), newConfigPathCmd(opts), newConfigEnvCmd())
	return cmd
}

func newConfigShowCmd(opts *app.Options) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.ConfigPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			data, err := config.Encode(cfg, config.Format(strings.ToLower(format)))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(config.FormatYAML), "output format: toml or yaml")
	return cmd
}

func newConfigPathCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			path := opts.ConfigPath
			if path == "" {
				path = config.DefaultPath()
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
		},
	}
}

func newConfigEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List environment variables that override configuration",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.EnvVars() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}

func loadConfig(path string) (config.Config, error) {
	var opts []config.LoaderOption
	if path == "" {
		path = config.DefaultPath()
		opts = append(opts, config.WithOptionalFile())
	}
	return config.NewLoader(path, opts...).Load()
}

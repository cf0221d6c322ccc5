package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/peakfindr/peakfindr/internal/bootstrap"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Without a subcommand the desktop app
// starts.
func newRootCmd() *cobra.Command {
	var opts bootstrap.Options

	rootCmd := &cobra.Command{
		Use:           "peakfindr",
		Short:         "Swipe through places worth visiting",
		Long:          `Peakfindr shows a stack of nearby places. Swipe right to save one, left to skip it, or tap it for details.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return bootstrap.RunGUI(opts, version)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default is the user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(guiCmd(&opts))
	rootCmd.AddCommand(tuiCmd(&opts))
	rootCmd.AddCommand(configCmd(&opts))
	rootCmd.AddCommand(versionCmd())
	return rootCmd
}

func guiCmd(opts *bootstrap.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Start the desktop app",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return bootstrap.RunGUI(*opts, version)
		},
	}
}

func tuiCmd(opts *bootstrap.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the terminal front-end",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return bootstrap.RunTUI(cmd.Context(), *opts)
		},
	}
}

// configCmd prints the effective configuration, or writes it with --write
func configCmd(opts *bootstrap.Options) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loadOpts := *opts
			if write {
				// --verbose tunes this run only and never reaches the file
				loadOpts.Verbose = false
			}
			path, cfg, err := bootstrap.LoadConfig(loadOpts)
			if err != nil {
				return err
			}
			if write {
				if err := cfg.Save(path); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", path)
			return cfg.Encode(cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&write, "write", false, "write the effective configuration to the config file")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "peakfindr %s\n", version)
		},
	}
}

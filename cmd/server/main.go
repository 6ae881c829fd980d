package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ferdiebergado/finderid/internal/app"
	"github.com/ferdiebergado/finderid/internal/platform/realtime"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("Command failed.", "reason", err)
		stop()
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:           "server",
		Short:         "FinderID API server and maintenance tasks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.json", "path to the config file (.json or .yaml)")

	cmd.AddCommand(serveCmd(&cfgFile))
	cmd.AddCommand(sweepCmd(&cfgFile))
	cmd.AddCommand(campaignCmd(&cfgFile))
	cmd.AddCommand(routesCmd(&cfgFile))

	return cmd
}

func serveCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the realtime feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			slog.Info("Starting server...")
			if err := app.Serve(cmd.Context(), *cfgFile); err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			slog.Info("Server shutdown gracefully.")
			return nil
		},
	}
}

func sweepCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Notify owners of subscriptions that expired since the last sweep",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			modules, cleanup, err := bootstrapModules(cmd.Context(), *cfgFile)
			if err != nil {
				return err
			}
			defer cleanup()

			n, err := modules.Subscription.Service().Sweep(cmd.Context())
			if err != nil {
				return fmt.Errorf("sweep subscriptions: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "notified %d expired subscription(s)\n", n)
			return nil
		},
	}
}

func campaignCmd(cfgFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaign",
		Short: "Manage e-mail campaigns",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "send <campaign-id>",
		Short: "Send a stored campaign to its audience",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			modules, cleanup, err := bootstrapModules(cmd.Context(), *cfgFile)
			if err != nil {
				return err
			}
			defer cleanup()

			run, err := modules.Campaign.Service().Send(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("send campaign %s: %w", args[0], err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "run %s: %d recipient(s), %d chunk(s), %d failed\n",
				run.ID, run.Recipients, run.Chunks, run.FailedChunks)
			return nil
		},
	})

	return cmd
}

func routesCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print every HTTP route the server mounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, provider, cleanup, err := app.Bootstrap(cmd.Context(), *cfgFile)
			if err != nil {
				return err
			}
			defer cleanup()

			for _, route := range app.New(cfg, provider, app.Middlewares(cfg)).Routes() {
				fmt.Fprintln(cmd.OutOrStdout(), route)
			}
			return nil
		},
	}
}

// bootstrapModules wires the modules without starting the HTTP server. No client is connected
// to the realtime feed, so change events are discarded.
func bootstrapModules(ctx context.Context, cfgFile string) (*app.Modules, func(), error) {
	cfg, provider, cleanup, err := app.Bootstrap(ctx, cfgFile)
	if err != nil {
		return nil, nil, err
	}
	provider.Events = realtime.NopPublisher{}
	return app.NewModules(cfg, provider), cleanup, nil
}

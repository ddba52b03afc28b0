package main

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/kafkabridge/config"
	"github.com/Gunvolt24/kafkabridge/internal/app"
	"github.com/Gunvolt24/kafkabridge/internal/transport/console"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	envPrefix string
	cfg       *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "kafkabridge",
		Short: "Bridge between a Kafka topic and browser/terminal subscribers",
		Long: `kafkabridge produces test records to a topic, streams consumed records to
subscribers and lists the topics of the cluster.

Without a subcommand it runs the HTTP service (same as "serve").`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadWithPrefix(opts.envPrefix)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			opts.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.envPrefix, "env-prefix", config.Prefix, "prefix of environment variables")

	root.AddCommand(
		newServeCmd(opts),
		newSendCmd(opts),
		newTopicsCmd(opts),
		newConsumeCmd(opts),
	)
	return root
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service (API, SSE stream, static UI, metrics)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				opts.cfg.HTTP.Addr = addr
			}
			return runServe(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides BRIDGE_HTTP_ADDR")
	return cmd
}

func runServe(cmd *cobra.Command, opts *rootOptions) error {
	ctx := cmd.Context()

	a, cleanup, err := app.Bootstrap(ctx, opts.cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	return a.Run(ctx)
}

func newSendCmd(opts *rootOptions) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send count-1 test records (key-i/value-i) to the configured topic",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			comps, cleanup, err := app.BuildComponents(ctx, opts.cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := comps.NewService(opts.cfg, nil).Send(ctx, count)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number passed to send (count-1 records are produced)")
	return cmd
}

func newTopicsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "topics",
		Short: "List user topics of the cluster",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			comps, cleanup, err := app.BuildComponents(ctx, opts.cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			topics, err := comps.NewService(opts.cfg, nil).ListTopics(ctx)
			if err != nil {
				return err
			}
			for _, t := range topics {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}
}

func newConsumeCmd(opts *rootOptions) *cobra.Command {
	var topic string
	cmd := &cobra.Command{
		Use:   "consume",
		Short: "Print consumed records as JSON lines until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if topic != "" {
				opts.cfg.Kafka.Topic = topic
			}

			comps, cleanup, err := app.BuildComponents(ctx, opts.cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			out := console.NewWriter(cmd.OutOrStdout(), comps.Logger)
			svc := comps.NewService(opts.cfg, out)

			if _, err := svc.StartConsuming(ctx); err != nil {
				return err
			}
			<-ctx.Done()

			stopCtx, cancel := stopContext(opts.cfg)
			defer cancel()
			if err := svc.StopConsuming(stopCtx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "consumed %d record(s)\n", out.Written())
			return nil
		},
	}
	cmd.Flags().StringVarP(&topic, "topic", "t", "", "topic to consume, overrides BRIDGE_KAFKA_TOPIC")
	return cmd
}

// stopContext - ожидание остановки сессии: один receive timeout плюс graceful timeout.
func stopContext(cfg *config.Config) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), cfg.Kafka.ReceiveTimeout+cfg.HTTP.GracefulTimeout)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"taskboard/internal/syncclient"
)

func watchCmd(opts *globalOptions) *cobra.Command {
	var (
		interval  time.Duration
		sectionID string
		backlog   bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll the board and print unread and task changes",
		Long: "Polls on a fixed interval. Changes made by others show up at most one " +
			"interval after they happen; nothing is pushed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if backlog && sectionID != "" {
				return errors.New("--backlog and --section are mutually exclusive")
			}
			client, err := opts.client()
			if err != nil {
				return err
			}
			logger, err := opts.logger()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			query := url.Values{}
			if sectionID != "" {
				query.Set("section_id", sectionID)
			}
			if backlog {
				query.Set("backlog", "true")
			}

			out := cmd.OutOrStdout()
			lastCount := -1
			poller := syncclient.NewPoller(client, syncclient.NewView(), syncclient.PollerConfig{
				Interval: interval,
				Query:    query,
				OnUnreadChange: func(_, current int) {
					fmt.Fprintf(out, "%s unread notifications: %d\n", time.Now().Format(time.TimeOnly), current)
				},
				OnSynced: func(view *syncclient.View) {
					if n := view.Len(); n != lastCount {
						fmt.Fprintf(out, "%s tasks: %d\n", time.Now().Format(time.TimeOnly), n)
						lastCount = n
					}
				},
			}, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(out, "watching %s every %s\n", opts.baseURL, formatInterval(interval))
			if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().DurationVarP(&interval, "interval", "i", 0, "Poll interval (defaults to the server's advertised interval)")
	cmd.Flags().StringVarP(&sectionID, "section", "s", "", "Only watch tasks in this section")
	cmd.Flags().BoolVar(&backlog, "backlog", false, "Only watch tasks without a section")

	return cmd
}

func readAllCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification as read",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			updated, err := client.MarkAllRead(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "marked %d notifications as read\n", updated)
			return nil
		},
	}
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/pagekit-go/pagekit/pkg/gateway"
	"github.com/pagekit-go/pagekit/pkg/messenger"
	"github.com/pagekit-go/pagekit/pkg/pager"
)

func demoCmd() *cobra.Command {
	var (
		url     string
		token   string
		channel string
		owner   string
		idle    time.Duration
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "demo [file]",
		Short: "Send an interactive paginator through a gateway",
		Long: `Connect to a chat gateway, send the given file (or a built-in sample)
as a paginated message, and keep serving its button and select-menu
interactions until interrupted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if url == "" || channel == "" || owner == "" {
				return fmt.Errorf("--url, --channel and --owner are required")
			}

			content := sampleText
			if len(args) == 1 {
				b, err := os.ReadFile(args[0])
				if err != nil {
					return err
				}
				content = string(b)
			}

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			c, err := gateway.Dial(ctx, gateway.Config{
				URL:    url,
				Token:  token,
				Logger: logger,
			})
			if err != nil {
				return err
			}
			defer c.Close()

			p := pager.FromString(c, content,
				pager.WithIdleTimeout(idle),
				pager.WithSelectMenu(),
				pager.WithLogger(logger),
			)

			ref, err := p.Send(ctx, pager.Trigger{
				Author:    messenger.User{ID: owner},
				ChannelID: channel,
			})
			if err != nil {
				return err
			}
			fmt.Printf("paginator sent: channel=%s message=%s pages=%d\n",
				ref.ChannelID, ref.MessageID, p.Len())
			fmt.Println("serving interactions, ctrl-c to stop")

			<-ctx.Done()

			stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := p.Stop(stopCtx); err != nil {
				logger.Warn("stop failed", "error", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&url, "url", "u", "", "Gateway websocket URL")
	cmd.Flags().StringVarP(&token, "token", "t", "", "Gateway bearer token")
	cmd.Flags().StringVarP(&channel, "channel", "c", "", "Channel to send the paginator to")
	cmd.Flags().StringVarP(&owner, "owner", "o", "", "User ID allowed to drive the paginator")
	cmd.Flags().DurationVar(&idle, "idle", 2*time.Minute, "Idle timeout before controls are disabled")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

const sampleText = `Pagekit splits long content into pages and serves the navigation
controls for them. This demo paginator was produced by the pagekit CLI;
use the buttons below to move between pages, or the select menu to jump
straight to one.

Each page keeps its own footer position indicator, and the whole
message deactivates automatically after the idle timeout so stale
controls never linger in the channel.

This is the last page of the sample. Point the demo at a real file to
paginate your own content.`

package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fieldops-io/fieldops-client/internal/notify"
	"github.com/fieldops-io/fieldops-client/pkg/fieldops"
)

// NewNotificationsCommand creates the notifications command group.
func NewNotificationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notification", "notifs"},
		Short:   "Manage notifications",
		Long:    "List stored notifications or watch the live feed",
	}

	cmd.AddCommand(newNotificationsListCommand())
	cmd.AddCommand(newNotificationsWatchCommand())

	return cmd
}

func newNotificationsListCommand() *cobra.Command {
	var unreadOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			filters := fieldops.Filters{}
			if unreadOnly {
				filters["unread"] = true
			}

			notifications, err := Unwrap(client.Notifications().List(context.Background(), filters))
			if err != nil {
				return err
			}

			return outputNotifications(notifications, client.Notifications().PageInfo())
		},
	}

	cmd.Flags().BoolVar(&unreadOnly, "unread", false, "only unread notifications")

	return cmd
}

func newNotificationsWatchCommand() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the live notification feed",
		Long:  "Subscribe to the notification broker and print notifications as they arrive. Interrupt to stop.",
		RunE: func(cmd *cobra.Command, args []string) error {
			natsURL := viper.GetString("nats_url")
			if natsURL == "" {
				return ErrBrokerURLRequired
			}

			if userID == "" {
				return ErrUserRequired
			}

			feed, err := notify.Subscribe(natsURL, userID, NewStderrLogger())
			if err != nil {
				return err
			}
			defer feed.Close()

			fmt.Fprintf(os.Stderr, "Watching notifications for user %s (interrupt to stop)\n", userID)

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

			for {
				select {
				case <-stop:
					return nil
				case notification, ok := <-feed.Notifications():
					if !ok {
						return nil
					}

					fmt.Fprintf(os.Stdout, "[%s] %s: %s\n",
						notification.CreatedAt.Format("15:04:05"), notification.Title, notification.Body)
				}
			}
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user ID to watch (required)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func outputNotifications(notifications []fieldops.Notification, pageInfo *fieldops.PageInfo) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return OutputJSON(notifications)
	case OutputFormatYAML:
		return OutputYAML(notifications)
	default:
		if len(notifications) == 0 {
			_, _ = os.Stdout.WriteString("No notifications found\n")

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("ID", "Title", "Body", "Read")

		for _, notification := range notifications {
			read := "no"
			if notification.ReadAt != nil {
				read = "yes"
			}

			_ = table.Append(string(notification.ID), notification.Title, notification.Body, read)
		}

		_ = table.Render()

		PrintPageInfo(pageInfo)

		return nil
	}
}

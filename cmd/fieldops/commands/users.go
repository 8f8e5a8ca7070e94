package commands

import (
	"context"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fieldops-io/fieldops-client/pkg/fieldops"
)

// NewUsersCommand creates the users command group.
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Manage users",
		Long:    "List and inspect field-representative accounts",
	}

	cmd.AddCommand(newUsersListCommand())
	cmd.AddCommand(newUsersGetCommand())

	return cmd
}

func newUsersListCommand() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			users, err := Unwrap(client.Users().List(context.Background(), fieldops.Filters{"role": role}))
			if err != nil {
				return err
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return OutputJSON(users)
			case OutputFormatYAML:
				return OutputYAML(users)
			default:
				if len(users) == 0 {
					_, _ = os.Stdout.WriteString("No users found\n")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Username", "Phone", "Role")

				for _, user := range users {
					_ = table.Append(string(user.ID), user.Name, user.Username, user.Phone, user.Role)
				}

				_ = table.Render()

				PrintPageInfo(client.Users().PageInfo())

				return nil
			}
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "filter by role")

	return cmd
}

func newUsersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get USER_ID",
		Short: "Get user details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			user, err := Unwrap(client.Users().Get(context.Background(), args[0]))
			if err != nil {
				return err
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return OutputJSON(user)
			default:
				return OutputYAML(user)
			}
		},
	}
}

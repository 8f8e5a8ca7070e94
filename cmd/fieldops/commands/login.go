package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fieldops-io/fieldops-client/pkg/fieldops"
	"github.com/fieldops-io/fieldops-client/pkg/foclient"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		username string
		password string
		phone    string
		otp      string
		deviceID string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to the field-operations API",
		Long: `Authenticate with username/password, or with a phone number via
one-time password (--phone, then --phone --otp with the received code). The
session token is stored in the CLI config for subsequent commands.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			apiEndpoint := viper.GetString("api")
			if apiEndpoint == "" {
				return ErrAPIEndpointRequired
			}

			client, err := foclient.New(&fieldops.Config{APIEndpoint: apiEndpoint})
			if err != nil {
				return err
			}

			ctx := context.Background()

			// OTP flow
			if phone != "" {
				if otp == "" {
					challenge, err := Unwrap(client.Auth().RequestOTP(ctx, phone))
					if err != nil {
						return err
					}

					fmt.Fprintf(os.Stdout, "OTP sent to %s; run again with --otp CODE\n", challenge.Phone)

					return nil
				}

				session, err := Unwrap(client.Auth().VerifyOTP(ctx, phone, otp, deviceID))
				if err != nil {
					return err
				}

				return persistSession(session)
			}

			// Username/password flow
			if username == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Username: ")
				username, _ = reader.ReadString('\n')
				username = strings.TrimSpace(username)
			}

			if password == "" {
				fmt.Print("Password: ")

				bytePassword, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}

				password = string(bytePassword)

				fmt.Println()
			}

			session, err := Unwrap(client.Auth().Login(ctx, username, password, deviceID))
			if err != nil {
				return err
			}

			return persistSession(session)
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number for the OTP flow")
	cmd.Flags().StringVar(&otp, "otp", "", "one-time password received by phone")
	cmd.Flags().StringVar(&deviceID, "device-id", "", "device notification ID to register")

	return cmd
}

// persistSession stores the session token in the CLI config file.
func persistSession(session fieldops.Session) error {
	viper.Set("token", session.Token)

	err := viper.WriteConfig()
	if err != nil {
		// No config file yet: create one at the default location.
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return fmt.Errorf("saving session: %w", homeErr)
		}

		err = viper.WriteConfigAs(home + "/.fieldops/config.yml")
		if err != nil {
			return fmt.Errorf("saving session: %w", err)
		}
	}

	fmt.Fprintf(os.Stdout, "Logged in as %s\n", session.User.Name)

	return nil
}

package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fieldops-io/fieldops-client/pkg/fieldops"
)

// NewOutletsCommand creates the outlets command group.
func NewOutletsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "outlets",
		Aliases: []string{"outlet"},
		Short:   "Manage outlets",
		Long:    "List, inspect, and manage retail outlets",
	}

	cmd.AddCommand(newOutletsListCommand())
	cmd.AddCommand(newOutletsGetCommand())
	cmd.AddCommand(newOutletsCreateCommand())
	cmd.AddCommand(newOutletsUpdateCommand())
	cmd.AddCommand(newOutletsDeleteCommand())
	cmd.AddCommand(newOutletsUploadCommand())

	return cmd
}

func newOutletsListCommand() *cobra.Command {
	var (
		status   string
		district string
		search   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List outlets",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			filters := fieldops.Filters{
				"status":   status,
				"district": district,
				"search":   search,
			}

			outlets, err := Unwrap(client.Outlets().List(context.Background(), filters))
			if err != nil {
				return err
			}

			return outputOutlets(outlets, client.Outlets().PageInfo())
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (e.g. maintain, acquisition)")
	cmd.Flags().StringVar(&district, "district", "", "filter by district")
	cmd.Flags().StringVar(&search, "search", "", "filter by name search")

	return cmd
}

func newOutletsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get OUTLET_ID",
		Short: "Get outlet details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			outlet, err := Unwrap(client.Outlets().Get(context.Background(), args[0]))
			if err != nil {
				return err
			}

			return outputOutlet(&outlet)
		},
	}
}

func newOutletsCreateCommand() *cobra.Command {
	var name, owner, phone, address, district, status string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an outlet",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			attrs := attrsFromFlags(map[string]string{
				"name":       name,
				"owner_name": owner,
				"phone":      phone,
				"address":    address,
				"district":   district,
				"status":     status,
			})

			outlet, err := Unwrap(client.Outlets().Create(context.Background(), attrs))
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "Created outlet %s\n", outlet.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "outlet name (required)")
	cmd.Flags().StringVar(&owner, "owner", "", "owner name")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&address, "address", "", "street address")
	cmd.Flags().StringVar(&district, "district", "", "district")
	cmd.Flags().StringVar(&status, "status", "", "status")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newOutletsUpdateCommand() *cobra.Command {
	var name, owner, phone, address, district, status string

	cmd := &cobra.Command{
		Use:   "update OUTLET_ID",
		Short: "Update an outlet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			attrs := attrsFromFlags(map[string]string{
				"name":       name,
				"owner_name": owner,
				"phone":      phone,
				"address":    address,
				"district":   district,
				"status":     status,
			})

			outlet, err := Unwrap(client.Outlets().Update(context.Background(), args[0], attrs))
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "Updated outlet %s\n", outlet.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "outlet name")
	cmd.Flags().StringVar(&owner, "owner", "", "owner name")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&address, "address", "", "street address")
	cmd.Flags().StringVar(&district, "district", "", "district")
	cmd.Flags().StringVar(&status, "status", "", "status")

	return cmd
}

func newOutletsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete OUTLET_ID",
		Short: "Delete an outlet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			_, err = Unwrap(client.Outlets().Delete(context.Background(), args[0]))
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "Deleted outlet %s\n", args[0])

			return nil
		},
	}
}

func newOutletsUploadCommand() *cobra.Command {
	var (
		file string
		name string
	)

	cmd := &cobra.Command{
		Use:   "upload [OUTLET_ID]",
		Short: "Upload an outlet photo",
		Long: `Upload a photo as a multipart form. With OUTLET_ID the photo is
attached to the existing outlet; without it a new outlet is created from the
form payload.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			content, err := os.ReadFile(file) // #nosec G304 -- user-supplied CLI path
			if err != nil {
				return fmt.Errorf("reading upload file: %w", err)
			}

			form := fieldops.NewForm().WithFile("photo", filepath.Base(file), content)
			if name != "" {
				form = form.WithField("name", name)
			}

			mode := fieldops.UploadModeCreate
			id := ""

			if len(args) == 1 {
				mode = fieldops.UploadModeUpdate
				id = args[0]
			}

			outlet, err := Unwrap(client.Outlets().Upload(context.Background(), id, form, mode))
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "Uploaded photo for outlet %s\n", outlet.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "photo file to upload (required)")
	cmd.Flags().StringVar(&name, "name", "", "outlet name (create mode)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func outputOutlets(outlets []fieldops.Outlet, pageInfo *fieldops.PageInfo) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return OutputJSON(outlets)
	case OutputFormatYAML:
		return OutputYAML(outlets)
	default:
		return outputOutletsTable(outlets, pageInfo)
	}
}

func outputOutletsTable(outlets []fieldops.Outlet, pageInfo *fieldops.PageInfo) error {
	if len(outlets) == 0 {
		_, _ = os.Stdout.WriteString("No outlets found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "Owner", "District", "Status", "Phone")

	for _, outlet := range outlets {
		_ = table.Append(string(outlet.ID), outlet.Name, outlet.OwnerName, outlet.District, outlet.Status, outlet.Phone)
	}

	_ = table.Render()

	PrintPageInfo(pageInfo)

	return nil
}

func outputOutlet(outlet *fieldops.Outlet) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return OutputJSON(outlet)
	case OutputFormatYAML:
		return OutputYAML(outlet)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Field", "Value")
		_ = table.Append("ID", string(outlet.ID))
		_ = table.Append("Name", outlet.Name)
		_ = table.Append("Owner", outlet.OwnerName)
		_ = table.Append("Phone", outlet.Phone)
		_ = table.Append("Address", outlet.Address)
		_ = table.Append("District", outlet.District)
		_ = table.Append("Status", outlet.Status)
		_ = table.Render()

		return nil
	}
}

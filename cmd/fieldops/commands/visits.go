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

// NewVisitsCommand creates the visits command group.
func NewVisitsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "visits",
		Aliases: []string{"visit"},
		Short:   "Manage visits",
		Long:    "List and manage completed outlet visits",
	}

	cmd.AddCommand(newVisitsListCommand())
	cmd.AddCommand(newVisitsGetCommand())
	cmd.AddCommand(newVisitsCreateCommand())
	cmd.AddCommand(newVisitsDeleteCommand())
	cmd.AddCommand(newVisitsUploadCommand())

	return cmd
}

func newVisitsListCommand() *cobra.Command {
	var (
		outletID string
		date     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List visits",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			filters := fieldops.Filters{
				"outlet_id":  outletID,
				"visit_date": date,
			}

			visits, err := Unwrap(client.Visits().List(context.Background(), filters))
			if err != nil {
				return err
			}

			return outputVisits(visits, client.Visits().PageInfo())
		},
	}

	cmd.Flags().StringVar(&outletID, "outlet", "", "filter by outlet ID")
	cmd.Flags().StringVar(&date, "date", "", "filter by visit date (YYYY-MM-DD)")

	return cmd
}

func newVisitsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get VISIT_ID",
		Short: "Get visit details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			visit, err := Unwrap(client.Visits().Get(context.Background(), args[0]))
			if err != nil {
				return err
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return OutputJSON(visit)
			default:
				return OutputYAML(visit)
			}
		},
	}
}

func newVisitsCreateCommand() *cobra.Command {
	var outletID, date, checkIn, checkOut, notes string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Record a visit",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			attrs := attrsFromFlags(map[string]string{
				"outlet_id":  outletID,
				"visit_date": date,
				"check_in":   checkIn,
				"check_out":  checkOut,
				"notes":      notes,
			})

			visit, err := Unwrap(client.Visits().Create(context.Background(), attrs))
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "Recorded visit %s\n", visit.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&outletID, "outlet", "", "outlet ID (required)")
	cmd.Flags().StringVar(&date, "date", "", "visit date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&checkIn, "check-in", "", "check-in time")
	cmd.Flags().StringVar(&checkOut, "check-out", "", "check-out time")
	cmd.Flags().StringVar(&notes, "notes", "", "visit notes")
	_ = cmd.MarkFlagRequired("outlet")

	return cmd
}

func newVisitsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete VISIT_ID",
		Short: "Delete a visit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			_, err = Unwrap(client.Visits().Delete(context.Background(), args[0]))
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "Deleted visit %s\n", args[0])

			return nil
		},
	}
}

func newVisitsUploadCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "upload VISIT_ID",
		Short: "Upload a visit photo",
		Args:  cobra.ExactArgs(1),
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

			visit, err := Unwrap(client.Visits().Upload(context.Background(), args[0], form, fieldops.UploadModeUpdate))
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "Uploaded photo for visit %s\n", visit.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "photo file to upload (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func outputVisits(visits []fieldops.Visit, pageInfo *fieldops.PageInfo) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return OutputJSON(visits)
	case OutputFormatYAML:
		return OutputYAML(visits)
	default:
		if len(visits) == 0 {
			_, _ = os.Stdout.WriteString("No visits found\n")

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("ID", "Outlet", "Date", "Check-In", "Check-Out", "Notes")

		for _, visit := range visits {
			_ = table.Append(string(visit.ID), string(visit.OutletID), visit.VisitDate, visit.CheckIn, visit.CheckOut, visit.Notes)
		}

		_ = table.Render()

		PrintPageInfo(pageInfo)

		return nil
	}
}

package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fieldops-io/fieldops-client/pkg/fieldops"
)

// NewPlanVisitsCommand creates the plan-visits command group.
func NewPlanVisitsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "plan-visits",
		Aliases: []string{"plan-visit", "plans"},
		Short:   "Manage planned visits",
		Long:    "List and manage scheduled outlet visits",
	}

	cmd.AddCommand(newPlanVisitsListCommand())
	cmd.AddCommand(newPlanVisitsCreateCommand())
	cmd.AddCommand(newPlanVisitsUpdateCommand())
	cmd.AddCommand(newPlanVisitsDeleteCommand())

	return cmd
}

func newPlanVisitsListCommand() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List planned visits",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			plans, err := Unwrap(client.PlanVisits().List(context.Background(), fieldops.Filters{"planned_date": date}))
			if err != nil {
				return err
			}

			return outputPlanVisits(plans, client.PlanVisits().PageInfo())
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "filter by planned date (YYYY-MM-DD)")

	return cmd
}

func newPlanVisitsCreateCommand() *cobra.Command {
	var outletID, date string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Schedule a visit",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			attrs := attrsFromFlags(map[string]string{
				"outlet_id":    outletID,
				"planned_date": date,
			})

			plan, err := Unwrap(client.PlanVisits().Create(context.Background(), attrs))
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "Scheduled visit %s\n", plan.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&outletID, "outlet", "", "outlet ID (required)")
	cmd.Flags().StringVar(&date, "date", "", "planned date (YYYY-MM-DD, required)")
	_ = cmd.MarkFlagRequired("outlet")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func newPlanVisitsUpdateCommand() *cobra.Command {
	var date, status string

	cmd := &cobra.Command{
		Use:   "update PLAN_ID",
		Short: "Update a planned visit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			attrs := attrsFromFlags(map[string]string{
				"planned_date": date,
				"status":       status,
			})

			plan, err := Unwrap(client.PlanVisits().Update(context.Background(), args[0], attrs))
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "Updated planned visit %s\n", plan.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "planned date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&status, "status", "", "plan status")

	return cmd
}

func newPlanVisitsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete PLAN_ID",
		Short: "Delete a planned visit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			_, err = Unwrap(client.PlanVisits().Delete(context.Background(), args[0]))
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "Deleted planned visit %s\n", args[0])

			return nil
		},
	}
}

func outputPlanVisits(plans []fieldops.PlanVisit, pageInfo *fieldops.PageInfo) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return OutputJSON(plans)
	case OutputFormatYAML:
		return OutputYAML(plans)
	default:
		if len(plans) == 0 {
			_, _ = os.Stdout.WriteString("No planned visits found\n")

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("ID", "Outlet", "Planned Date", "Status")

		for _, plan := range plans {
			_ = table.Append(string(plan.ID), string(plan.OutletID), plan.PlannedDate, plan.Status)
		}

		_ = table.Render()

		PrintPageInfo(pageInfo)

		return nil
	}
}

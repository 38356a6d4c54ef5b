package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/undocked/timekeep/internal/model"
	"github.com/undocked/timekeep/internal/render"
)

var (
	activityProject     string
	activityDescription string
	activityBillable    bool
	activityYes         bool
)

var adminActivityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Manage activities",
}

var adminActivityListCmd = &cobra.Command{
	Use:   "list",
	Short: "List activities, optionally for one project",
	Args:  cobra.NoArgs,
	RunE:  runAdminActivityList,
}

var adminActivityAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create an activity under a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminActivityAdd,
}

var adminActivityUpdateCmd = &cobra.Command{
	Use:   "update <name>",
	Short: "Update an activity",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminActivityUpdate,
}

var adminActivityRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Delete an activity",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminActivityRm,
}

func init() {
	adminActivityListCmd.Flags().StringVar(&activityProject, "project", "", "Only this project's activities")
	adminActivityAddCmd.Flags().StringVar(&activityProject, "project", "", "Project name (required)")
	adminActivityAddCmd.Flags().StringVar(&activityDescription, "description", "", "Activity description")
	adminActivityAddCmd.Flags().BoolVar(&activityBillable, "billable", true, "Whether hours on this activity count as billable")
	adminActivityUpdateCmd.Flags().StringVar(&activityProject, "project", "", "Project name (required)")
	adminActivityUpdateCmd.Flags().StringVar(&activityDescription, "description", "", "New description")
	adminActivityUpdateCmd.Flags().BoolVar(&activityBillable, "billable", true, "Whether hours on this activity count as billable")
	adminActivityRmCmd.Flags().StringVar(&activityProject, "project", "", "Project name (required)")
	adminActivityRmCmd.Flags().BoolVarP(&activityYes, "yes", "y", false, "Skip the confirmation prompt")

	adminActivityCmd.AddCommand(adminActivityListCmd)
	adminActivityCmd.AddCommand(adminActivityAddCmd)
	adminActivityCmd.AddCommand(adminActivityUpdateCmd)
	adminActivityCmd.AddCommand(adminActivityRmCmd)
}

func runAdminActivityList(cmd *cobra.Command, args []string) error {
	a, _, err := newAdminApp(cmd.Context())
	if err != nil {
		return err
	}
	activities := a.catalog.Activities
	if activityProject != "" {
		activities = a.catalog.ActivitiesForProject(activityProject)
	}
	fmt.Println(render.Activities(activities))
	return nil
}

func runAdminActivityAdd(cmd *cobra.Command, args []string) error {
	_, svc, err := newAdminApp(cmd.Context())
	if err != nil {
		return err
	}
	if activityProject == "" {
		return fmt.Errorf("--project is required")
	}

	created, err := svc.CreateActivity(cmd.Context(), model.Activity{
		ProjectName: activityProject,
		Name:        args[0],
		Description: activityDescription,
		Billable:    activityBillable,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Created activity %s under %s, id %s\n", created.Name, created.ProjectName, created.ID)
	return nil
}

func runAdminActivityUpdate(cmd *cobra.Command, args []string) error {
	a, svc, err := newAdminApp(cmd.Context())
	if err != nil {
		return err
	}
	if activityProject == "" {
		return fmt.Errorf("--project is required")
	}

	activity, ok := a.catalog.ActivityFor(args[0], activityProject)
	if !ok {
		return fmt.Errorf("project %q has no activity %q", activityProject, args[0])
	}
	if cmd.Flags().Changed("description") {
		activity.Description = activityDescription
	}
	if cmd.Flags().Changed("billable") {
		activity.Billable = activityBillable
	}

	if err := svc.UpdateActivity(cmd.Context(), activity); err != nil {
		return err
	}
	fmt.Printf("Updated activity %s\n", activity.Name)
	return nil
}

func runAdminActivityRm(cmd *cobra.Command, args []string) error {
	a, svc, err := newAdminApp(cmd.Context())
	if err != nil {
		return err
	}
	if activityProject == "" {
		return fmt.Errorf("--project is required")
	}

	activity, ok := a.catalog.ActivityFor(args[0], activityProject)
	if !ok {
		return fmt.Errorf("project %q has no activity %q", activityProject, args[0])
	}

	if !activityYes {
		if !confirm(fmt.Sprintf("Delete activity %s (project %s)?", activity.Name, activity.ProjectName)) {
			fmt.Println("Cancelled, nothing deleted.")
			return nil
		}
	}

	if err := svc.DeleteActivity(cmd.Context(), activity.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted activity %s\n", activity.Name)
	return nil
}

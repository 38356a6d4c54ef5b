package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/undocked/timekeep/internal/model"
	"github.com/undocked/timekeep/internal/render"
)

var (
	projectClient      string
	projectDescription string
	projectBillable    bool
	projectYes         bool
)

var adminProjectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var adminProjectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects, optionally for one client",
	Args:  cobra.NoArgs,
	RunE:  runAdminProjectList,
}

var adminProjectAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a project under a client",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminProjectAdd,
}

var adminProjectUpdateCmd = &cobra.Command{
	Use:   "update <name>",
	Short: "Update a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminProjectUpdate,
}

var adminProjectRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminProjectRm,
}

func init() {
	adminProjectListCmd.Flags().StringVar(&projectClient, "client", "", "Only this client's projects")
	adminProjectAddCmd.Flags().StringVar(&projectClient, "client", "", "Client code (required)")
	adminProjectAddCmd.Flags().StringVar(&projectDescription, "description", "", "Project description")
	adminProjectAddCmd.Flags().BoolVar(&projectBillable, "billable", true, "Whether the project is billable")
	adminProjectUpdateCmd.Flags().StringVar(&projectDescription, "description", "", "New description")
	adminProjectUpdateCmd.Flags().BoolVar(&projectBillable, "billable", true, "Whether the project is billable")
	adminProjectRmCmd.Flags().BoolVarP(&projectYes, "yes", "y", false, "Skip the confirmation prompt")

	adminProjectCmd.AddCommand(adminProjectListCmd)
	adminProjectCmd.AddCommand(adminProjectAddCmd)
	adminProjectCmd.AddCommand(adminProjectUpdateCmd)
	adminProjectCmd.AddCommand(adminProjectRmCmd)
}

func runAdminProjectList(cmd *cobra.Command, args []string) error {
	a, _, err := newAdminApp(cmd.Context())
	if err != nil {
		return err
	}
	projects := a.catalog.Projects
	if projectClient != "" {
		projects = a.catalog.ProjectsForClient(projectClient)
	}
	fmt.Println(render.Projects(projects))
	return nil
}

func runAdminProjectAdd(cmd *cobra.Command, args []string) error {
	_, svc, err := newAdminApp(cmd.Context())
	if err != nil {
		return err
	}
	if projectClient == "" {
		return fmt.Errorf("--client is required")
	}

	created, err := svc.CreateProject(cmd.Context(), model.Project{
		ClientCode:  projectClient,
		Name:        args[0],
		Description: projectDescription,
		Billable:    projectBillable,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Created project %s under %s, id %s\n", created.Name, created.ClientCode, created.ID)
	return nil
}

func runAdminProjectUpdate(cmd *cobra.Command, args []string) error {
	a, svc, err := newAdminApp(cmd.Context())
	if err != nil {
		return err
	}

	project, ok := a.catalog.ProjectByName(args[0])
	if !ok {
		return fmt.Errorf("no project named %q", args[0])
	}
	if cmd.Flags().Changed("description") {
		project.Description = projectDescription
	}
	if cmd.Flags().Changed("billable") {
		project.Billable = projectBillable
	}

	if err := svc.UpdateProject(cmd.Context(), project); err != nil {
		return err
	}
	fmt.Printf("Updated project %s\n", project.Name)
	return nil
}

func runAdminProjectRm(cmd *cobra.Command, args []string) error {
	a, svc, err := newAdminApp(cmd.Context())
	if err != nil {
		return err
	}

	project, ok := a.catalog.ProjectByName(args[0])
	if !ok {
		return fmt.Errorf("no project named %q", args[0])
	}

	if !projectYes {
		if !confirm(fmt.Sprintf("Delete project %s (client %s)?", project.Name, project.ClientCode)) {
			fmt.Println("Cancelled, nothing deleted.")
			return nil
		}
	}

	if err := svc.DeleteProject(cmd.Context(), project.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted project %s\n", project.Name)
	return nil
}

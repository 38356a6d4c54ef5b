package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/undocked/timekeep/internal/model"
	"github.com/undocked/timekeep/internal/render"
)

var (
	clientName        string
	clientDescription string
	clientYes         bool
)

var adminClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Manage clients",
}

var adminClientListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all clients",
	Args:  cobra.NoArgs,
	RunE:  runAdminClientList,
}

var adminClientAddCmd = &cobra.Command{
	Use:   "add <code>",
	Short: "Create a client",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminClientAdd,
}

var adminClientUpdateCmd = &cobra.Command{
	Use:   "update <code>",
	Short: "Update a client's name or description",
	Long: `Update a client's name or description. The code is the client's
identity and every entry references it, so it cannot be changed.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdminClientUpdate,
}

var adminClientRmCmd = &cobra.Command{
	Use:   "rm <code>",
	Short: "Delete a client and everything that depends on it",
	Long: `Delete a client together with its projects and user assignments.
Dependent records are removed first; if any of them fail the client is kept
so the command can be re-run safely.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdminClientRm,
}

func init() {
	adminClientAddCmd.Flags().StringVar(&clientName, "name", "", "Client display name (required)")
	adminClientAddCmd.Flags().StringVar(&clientDescription, "description", "", "Client description")
	adminClientUpdateCmd.Flags().StringVar(&clientName, "name", "", "New display name")
	adminClientUpdateCmd.Flags().StringVar(&clientDescription, "description", "", "New description")
	adminClientRmCmd.Flags().BoolVarP(&clientYes, "yes", "y", false, "Skip the confirmation prompt")

	adminClientCmd.AddCommand(adminClientListCmd)
	adminClientCmd.AddCommand(adminClientAddCmd)
	adminClientCmd.AddCommand(adminClientUpdateCmd)
	adminClientCmd.AddCommand(adminClientRmCmd)
}

func runAdminClientList(cmd *cobra.Command, args []string) error {
	a, _, err := newAdminApp(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Println(render.Clients(a.catalog.Clients))
	return nil
}

func runAdminClientAdd(cmd *cobra.Command, args []string) error {
	_, svc, err := newAdminApp(cmd.Context())
	if err != nil {
		return err
	}

	created, err := svc.CreateClient(cmd.Context(), model.Client{
		Code:        args[0],
		Name:        clientName,
		Description: clientDescription,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Created client %s (%s), id %s\n", created.Name, created.Code, created.ID)
	return nil
}

func runAdminClientUpdate(cmd *cobra.Command, args []string) error {
	a, svc, err := newAdminApp(cmd.Context())
	if err != nil {
		return err
	}

	client, ok := a.catalog.ClientByCode(args[0])
	if !ok {
		return fmt.Errorf("no client with code %q", args[0])
	}

	name := client.Name
	if cmd.Flags().Changed("name") {
		name = clientName
	}
	description := client.Description
	if cmd.Flags().Changed("description") {
		description = clientDescription
	}

	if err := svc.UpdateClient(cmd.Context(), client.ID, name, description); err != nil {
		return err
	}
	fmt.Printf("Updated client %s\n", client.Code)
	return nil
}

func runAdminClientRm(cmd *cobra.Command, args []string) error {
	a, svc, err := newAdminApp(cmd.Context())
	if err != nil {
		return err
	}

	client, ok := a.catalog.ClientByCode(args[0])
	if !ok {
		return fmt.Errorf("no client with code %q", args[0])
	}

	plan, err := svc.PlanClientDelete(client.ID)
	if err != nil {
		return err
	}

	if !clientYes {
		prompt := fmt.Sprintf("Delete client %s (%s) with %d project(s) and %d assignment(s)?",
			client.Name, client.Code, len(plan.Projects), len(plan.Access))
		if !confirm(prompt) {
			fmt.Println("Cancelled, nothing deleted.")
			return nil
		}
	}

	result, execErr := svc.ExecuteClientDelete(cmd.Context(), plan)
	fmt.Printf("Removed %d project(s) and %d assignment(s)\n", result.ProjectsDeleted, result.AccessDeleted)
	for _, f := range result.Failures {
		fmt.Printf("  failed: %s item %s: %v\n", f.List, f.ItemID, f.Err)
	}
	if execErr != nil {
		return execErr
	}
	fmt.Printf("Deleted client %s\n", client.Code)
	return nil
}

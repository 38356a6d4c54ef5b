package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/undocked/timekeep/internal/model"
	"github.com/undocked/timekeep/internal/render"
)

var (
	accessClient     string
	accessTeam       string
	accessAllocation float64
	accessYes        bool
)

var adminAccessCmd = &cobra.Command{
	Use:   "access",
	Short: "Manage user-to-client assignments",
}

var adminAccessListCmd = &cobra.Command{
	Use:   "list",
	Short: "List assignments, optionally for one client",
	Args:  cobra.NoArgs,
	RunE:  runAdminAccessList,
}

var adminAccessAddCmd = &cobra.Command{
	Use:   "add <email>",
	Short: "Assign a user to a client",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminAccessAdd,
}

var adminAccessRmCmd = &cobra.Command{
	Use:   "rm <email>",
	Short: "Remove a user's assignment to a client",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminAccessRm,
}

func init() {
	adminAccessListCmd.Flags().StringVar(&accessClient, "client", "", "Only this client's assignments")
	adminAccessAddCmd.Flags().StringVar(&accessClient, "client", "", "Client code (required)")
	adminAccessAddCmd.Flags().StringVar(&accessTeam, "team", model.TeamOnshore, "Team: Onshore or Offshore")
	adminAccessAddCmd.Flags().Float64Var(&accessAllocation, "allocation", model.DefaultAllocationPercent, "Allocation percent (0-100)")
	adminAccessRmCmd.Flags().StringVar(&accessClient, "client", "", "Client code (required)")
	adminAccessRmCmd.Flags().BoolVarP(&accessYes, "yes", "y", false, "Skip the confirmation prompt")

	adminAccessCmd.AddCommand(adminAccessListCmd)
	adminAccessCmd.AddCommand(adminAccessAddCmd)
	adminAccessCmd.AddCommand(adminAccessRmCmd)
}

func runAdminAccessList(cmd *cobra.Command, args []string) error {
	a, _, err := newAdminApp(cmd.Context())
	if err != nil {
		return err
	}
	access := a.catalog.Access
	if accessClient != "" {
		access = a.catalog.AccessForClient(accessClient)
	}
	fmt.Println(render.Assignments(access, func(code string) string {
		if c, ok := a.catalog.ClientByCode(code); ok {
			return c.Name
		}
		return "Unknown"
	}))
	return nil
}

func runAdminAccessAdd(cmd *cobra.Command, args []string) error {
	_, svc, err := newAdminApp(cmd.Context())
	if err != nil {
		return err
	}
	if accessClient == "" {
		return fmt.Errorf("--client is required")
	}

	created, err := svc.CreateAssignment(cmd.Context(), model.UserClientAccess{
		UserEmail:         args[0],
		ClientCode:        accessClient,
		Team:              accessTeam,
		AllocationPercent: accessAllocation,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Assigned %s to %s (%s, %.0f%%), id %s\n",
		created.UserEmail, created.ClientCode, created.Team, created.AllocationPercent, created.ID)
	return nil
}

func runAdminAccessRm(cmd *cobra.Command, args []string) error {
	a, svc, err := newAdminApp(cmd.Context())
	if err != nil {
		return err
	}
	if accessClient == "" {
		return fmt.Errorf("--client is required")
	}

	var found *model.UserClientAccess
	for i, as := range a.catalog.Access {
		if strings.EqualFold(as.UserEmail, args[0]) && as.ClientCode == accessClient {
			found = &a.catalog.Access[i]
			break
		}
	}
	if found == nil {
		return fmt.Errorf("%s is not assigned to client %q", args[0], accessClient)
	}

	if !accessYes {
		if !confirm(fmt.Sprintf("Remove %s from client %s?", found.UserEmail, found.ClientCode)) {
			fmt.Println("Cancelled, nothing removed.")
			return nil
		}
	}

	if err := svc.DeleteAssignment(cmd.Context(), found.ID); err != nil {
		return err
	}
	fmt.Printf("Removed %s from client %s\n", found.UserEmail, found.ClientCode)
	return nil
}

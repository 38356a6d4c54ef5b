package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/undocked/timekeep/internal/auth"
	"github.com/undocked/timekeep/internal/config"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with your Microsoft account",
	Args:  cobra.NoArgs,
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored sign-in tokens",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	tok, oc, err := auth.SignIn(cmd.Context(), cfg.Azure.TenantID, cfg.Azure.ClientID)
	if err != nil {
		return err
	}

	email, err := auth.Me(cmd.Context(), auth.HTTPClient(cmd.Context(), tok, oc), "")
	if err != nil {
		return err
	}

	fmt.Printf("Signed in as %s\n", email)
	if cfg.IsAdmin(email) {
		fmt.Println("Admin console available: timekeep admin --help")
	}
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	if err := auth.Logout(); err != nil {
		return err
	}
	fmt.Println("Signed out.")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	role := "member"
	if a.isAdmin {
		role = "admin"
	}
	fmt.Printf("%s (%s)\n", a.email, role)

	assignments := a.catalog.AssignmentsForUser(a.email)
	if len(assignments) == 0 {
		fmt.Println("No client assignments.")
		return nil
	}
	fmt.Println("Assigned clients:")
	for _, as := range assignments {
		name := as.ClientCode
		if c, ok := a.catalog.ClientByCode(as.ClientCode); ok {
			name = fmt.Sprintf("%s (%s)", c.Name, c.Code)
		}
		fmt.Printf("  %-40s %s, %.0f%%\n", name, as.Team, as.AllocationPercent)
	}
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/undocked/timekeep/internal/admin"
	"github.com/undocked/timekeep/internal/render"
	"github.com/undocked/timekeep/internal/timecalc"
	"github.com/undocked/timekeep/internal/utilization"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage clients, projects, activities, and assignments",
	Long: `The admin console manages the catalog records every entry is logged
against. It is only available to users listed as admins in the configuration.`,
}

func init() {
	adminCmd.AddCommand(adminClientCmd)
	adminCmd.AddCommand(adminProjectCmd)
	adminCmd.AddCommand(adminActivityCmd)
	adminCmd.AddCommand(adminAccessCmd)
	adminCmd.AddCommand(adminSummaryCmd)
}

// newAdminApp is newApp plus the admin gate and the admin service.
func newAdminApp(ctx context.Context) (*app, *admin.Service, error) {
	a, err := newApp(ctx)
	if err != nil {
		return nil, nil, err
	}
	if !a.isAdmin {
		return nil, nil, fmt.Errorf("admin access required, signed in as %s", a.email)
	}
	svc := admin.NewService(a.store, a.cfg.SharePoint.Lists, a.catalog, a.log)
	return a, svc, nil
}

var adminSummaryMonth string

var adminSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Monthly utilization for every assigned user",
	Args:  cobra.NoArgs,
	RunE:  runAdminSummary,
}

func init() {
	adminSummaryCmd.Flags().StringVar(&adminSummaryMonth, "month", "", "Month to report (YYYY-MM, default current)")
}

func runAdminSummary(cmd *cobra.Command, args []string) error {
	a, _, err := newAdminApp(cmd.Context())
	if err != nil {
		return err
	}

	now := time.Now()
	year, month := now.Year(), now.Month()
	if adminSummaryMonth != "" {
		year, month, err = timecalc.ParseMonth(adminSummaryMonth)
		if err != nil {
			return err
		}
	}

	calc := &utilization.Calculator{
		Entries:    a.catalog.Entries,
		Activities: a.catalog.Activities,
		Holidays:   a.catalog.Holidays,
	}

	users := make(map[string][]utilization.Result)
	for _, as := range a.catalog.Access {
		email := strings.ToLower(as.UserEmail)
		rule := a.catalog.RuleForClient(as.ClientCode)
		users[email] = append(users[email], calc.Calculate(as.UserEmail, as.ClientCode, year, month, rule, as))
	}

	emails := make([]string, 0, len(users))
	for email := range users {
		emails = append(emails, email)
	}
	sort.Strings(emails)

	fmt.Printf("Catalog: %d client(s), %d project(s), %d activities, %d assignment(s)\n",
		len(a.catalog.Clients), len(a.catalog.Projects), len(a.catalog.Activities), len(a.catalog.Access))
	fmt.Printf("Team utilization %04d-%02d\n", year, int(month))
	for _, email := range emails {
		fmt.Println()
		fmt.Println(render.Metrics(email, users[email]))
	}
	return nil
}

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/undocked/timekeep/internal/render"
	"github.com/undocked/timekeep/internal/timecalc"
	"github.com/undocked/timekeep/internal/utilization"
)

var (
	metricsMonth string
	metricsUser  string
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Show monthly utilization per assigned client",
	Long: `Show billable and total hours against available hours for each client
you are assigned to, for one calendar month. Admins can pass --user to view
another user's numbers.`,
	Args: cobra.NoArgs,
	RunE: runMetrics,
}

func init() {
	metricsCmd.Flags().StringVar(&metricsMonth, "month", "", "Month to report (YYYY-MM, default current)")
	metricsCmd.Flags().StringVar(&metricsUser, "user", "", "Report for another user (admins only)")
}

func runMetrics(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	now := time.Now()
	year, month := now.Year(), now.Month()
	if metricsMonth != "" {
		year, month, err = timecalc.ParseMonth(metricsMonth)
		if err != nil {
			return err
		}
	}

	email := a.email
	if metricsUser != "" && metricsUser != a.email {
		if !a.isAdmin {
			return fmt.Errorf("--user requires admin access")
		}
		email = metricsUser
	}

	assignments := a.catalog.AssignmentsForUser(email)
	if len(assignments) == 0 {
		fmt.Printf("%s has no client assignments.\n", email)
		return nil
	}

	calc := &utilization.Calculator{
		Entries:    a.catalog.Entries,
		Activities: a.catalog.Activities,
		Holidays:   a.catalog.Holidays,
	}

	results := make([]utilization.Result, 0, len(assignments))
	for _, as := range assignments {
		rule := a.catalog.RuleForClient(as.ClientCode)
		results = append(results, calc.Calculate(email, as.ClientCode, year, month, rule, as))
	}

	label := fmt.Sprintf("%04d-%02d", year, int(month))
	if email != a.email {
		label += " for " + email
	}
	fmt.Println(render.Metrics(label, results))
	return nil
}

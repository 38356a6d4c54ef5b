package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/undocked/timekeep/internal/timecalc"
	"github.com/undocked/timekeep/internal/timesheet"
	"github.com/undocked/timekeep/internal/tui"
)

var (
	logClient   string
	logProject  string
	logActivity string
	logDate     string
	logHours    float64
	logNotes    string
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Record a time entry",
	Long: `Record a time entry against a client, project, and activity.

With --client, --project, --activity, and --hours the entry is created
directly; otherwise an interactive form walks through the choices.`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func init() {
	logCmd.Flags().StringVar(&logClient, "client", "", "Client code")
	logCmd.Flags().StringVar(&logProject, "project", "", "Project name")
	logCmd.Flags().StringVar(&logActivity, "activity", "", "Activity name")
	logCmd.Flags().StringVar(&logDate, "date", "", "Entry date (YYYY-MM-DD, default today)")
	logCmd.Flags().Float64Var(&logHours, "hours", 0, "Hours worked (0.25 steps)")
	logCmd.Flags().StringVar(&logNotes, "notes", "", "Optional notes")
}

func runLog(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	form := timesheet.NewForm(a.catalog, a.email)
	if logClient != "" {
		if err := form.SelectClient(logClient); err != nil {
			return err
		}
	}
	if logProject != "" {
		if err := form.SelectProject(logProject); err != nil {
			return err
		}
	}
	if logActivity != "" {
		if err := form.SelectActivity(logActivity); err != nil {
			return err
		}
	}
	if logDate != "" {
		d, err := timecalc.ParseDate(logDate)
		if err != nil {
			return err
		}
		form.Date = d
	}
	form.Hours = logHours
	form.Notes = logNotes

	// Anything still missing is collected interactively.
	if !form.Submittable() || logHours == 0 {
		submitted, err := tui.Run(form)
		if err != nil {
			return err
		}
		if !submitted {
			fmt.Println("Cancelled, nothing saved.")
			return nil
		}
	}

	entry, err := form.Entry()
	if err != nil {
		return err
	}

	svc := timesheet.NewService(a.store, a.cfg.SharePoint.Lists.TimeEntries, a.log)
	created, err := svc.Create(cmd.Context(), entry)
	if err != nil {
		return err
	}

	fmt.Printf("Logged %.2f hrs on %s / %s / %s (%s), id %s\n",
		created.Hours, created.ClientCode, created.ProjectName, created.ActivityTask,
		created.Date.Format("2006-01-02"), created.ID)
	return nil
}

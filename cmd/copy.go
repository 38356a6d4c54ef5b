package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/undocked/timekeep/internal/timesheet"
	"github.com/undocked/timekeep/internal/tui"
)

var copyCmd = &cobra.Command{
	Use:   "copy <entry-id>",
	Short: "Log a new entry pre-filled from an existing one",
	Long: `Copy seeds the entry form from a previous entry. The client, project,
activity, hours, and notes carry over; the date resets to today. The form
opens so any field can still be changed before saving.`,
	Args: cobra.ExactArgs(1),
	RunE: runCopy,
}

func runCopy(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	src, ok := a.catalog.EntryByID(a.email, args[0])
	if !ok {
		return fmt.Errorf("no entry with id %q", args[0])
	}

	form := timesheet.NewForm(a.catalog, a.email)
	if err := form.Seed(src); err != nil {
		// Catalog records can have changed since the source entry was logged.
		// Whatever prefix of the cascade still resolves stays pre-selected.
		fmt.Printf("Warning: %v\n", err)
	}

	submitted, err := tui.Run(form)
	if err != nil {
		return err
	}
	if !submitted {
		fmt.Println("Cancelled, nothing saved.")
		return nil
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

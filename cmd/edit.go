package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/undocked/timekeep/internal/timecalc"
	"github.com/undocked/timekeep/internal/timesheet"
)

var (
	editDate  string
	editHours float64
	editNotes string
)

var editCmd = &cobra.Command{
	Use:   "edit <entry-id>",
	Short: "Change the date, hours, or notes of an entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func init() {
	editCmd.Flags().StringVar(&editDate, "date", "", "New date (YYYY-MM-DD)")
	editCmd.Flags().Float64Var(&editHours, "hours", 0, "New hours (0.25 steps)")
	editCmd.Flags().StringVar(&editNotes, "notes", "", "New notes")
}

func runEdit(cmd *cobra.Command, args []string) error {
	if editDate == "" && editHours == 0 && !cmd.Flags().Changed("notes") {
		return fmt.Errorf("nothing to change, pass --date, --hours, or --notes")
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	entry, ok := a.catalog.EntryByID(a.email, args[0])
	if !ok {
		return fmt.Errorf("no entry with id %q", args[0])
	}

	if editDate != "" {
		d, err := timecalc.ParseDate(editDate)
		if err != nil {
			return err
		}
		entry.Date = d
	}
	if editHours != 0 {
		entry.Hours = editHours
	}
	if cmd.Flags().Changed("notes") {
		entry.Notes = editNotes
	}

	svc := timesheet.NewService(a.store, a.cfg.SharePoint.Lists.TimeEntries, a.log)
	if err := svc.Update(cmd.Context(), entry); err != nil {
		return err
	}

	fmt.Printf("Updated entry %s: %.2f hrs on %s\n", entry.ID, entry.Hours, entry.Date.Format("2006-01-02"))
	return nil
}

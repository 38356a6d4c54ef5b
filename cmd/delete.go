package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/undocked/timekeep/internal/timesheet"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete <entry-id>",
	Short: "Delete one of your time entries",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	entry, ok := a.catalog.EntryByID(a.email, args[0])
	if !ok {
		return fmt.Errorf("no entry with id %q", args[0])
	}

	if !deleteYes {
		prompt := fmt.Sprintf("Delete %.2f hrs on %s / %s (%s)?",
			entry.Hours, entry.ClientCode, entry.ActivityTask, entry.Date.Format("2006-01-02"))
		if !confirm(prompt) {
			fmt.Println("Cancelled, nothing deleted.")
			return nil
		}
	}

	svc := timesheet.NewService(a.store, a.cfg.SharePoint.Lists.TimeEntries, a.log)
	if err := svc.Delete(cmd.Context(), entry.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted entry %s\n", entry.ID)
	return nil
}

// confirm asks a yes/no question on stdin and defaults to no.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

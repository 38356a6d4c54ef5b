package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/undocked/timekeep/internal/model"
	"github.com/undocked/timekeep/internal/render"
	"github.com/undocked/timekeep/internal/timecalc"
	"github.com/undocked/timekeep/internal/timesheet"
)

var (
	listMonth  string
	listAll    bool
	listFormat string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your time entries",
	Long: `List your time entries grouped by day. The current week is shown by
default; --month restricts to a calendar month and --all shows everything.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listMonth, "month", "", "Restrict to a month (YYYY-MM)")
	listCmd.Flags().BoolVar(&listAll, "all", false, "Show all entries")
	listCmd.Flags().StringVar(&listFormat, "format", "table", "Output format: table, csv, json")
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	now := time.Now()

	entries := a.catalog.EntriesForOwner(a.email)
	weekTotal := timesheet.WeekTotal(entries, now)

	switch {
	case listAll:
	case listMonth != "":
		year, month, err := timecalc.ParseMonth(listMonth)
		if err != nil {
			return err
		}
		entries = filterEntries(entries, func(e model.TimeEntry) bool {
			return timecalc.InMonth(e.Date, year, month)
		})
	default:
		weekStart := timecalc.WeekStart(now)
		entries = filterEntries(entries, func(e model.TimeEntry) bool {
			return !e.Date.Before(weekStart)
		})
	}

	switch listFormat {
	case "json":
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		fmt.Println(string(data))
	case "csv":
		printEntriesCSV(entries)
	default:
		fmt.Println(render.Entries(timesheet.GroupByDay(entries), weekTotal, len(entries)))
	}
	return nil
}

func filterEntries(entries []model.TimeEntry, keep func(model.TimeEntry) bool) []model.TimeEntry {
	var out []model.TimeEntry
	for _, e := range entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func printEntriesCSV(entries []model.TimeEntry) {
	fmt.Println("date,client,project,activity,hours,notes,id")
	for _, e := range entries {
		fmt.Printf("%s,%s,%s,%s,%.2f,%s,%s\n",
			e.Date.Format("2006-01-02"),
			csvEscape(e.ClientCode),
			csvEscape(e.ProjectName),
			csvEscape(e.ActivityTask),
			e.Hours,
			csvEscape(e.Notes),
			csvEscape(e.ID),
		)
	}
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	needsQuote := false
	for _, c := range s {
		if c == ',' || c == '"' || c == '\n' || c == '\r' {
			needsQuote = true
			break
		}
	}
	if !needsQuote {
		return s
	}
	// Escape internal double quotes by doubling them.
	escaped := ""
	for _, c := range s {
		if c == '"' {
			escaped += "\""
		}
		escaped += string(c)
	}
	return `"` + escaped + `"`
}

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/existflow/ironcal/internal/clock"
	"github.com/existflow/ironcal/internal/db"
	"github.com/existflow/ironcal/internal/editor"
)

var addCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new event",
	Long: `Add a new event to the calendar.

Examples:
  ironcal add "Dentist" --date 2026-09-12 --start 14:30 --end 15:00
  ironcal add "Conference" --date 2026-10-01 --all-day
  ironcal add "Dinner" --place "Luigi's" --category Personal`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

var (
	addPlace    string
	addDesc     string
	addCategory string
	addDate     string
	addStart    string
	addEnd      string
	addAllDay   bool
)

func init() {
	addCmd.Flags().StringVarP(&addPlace, "place", "p", "", "Where the event happens")
	addCmd.Flags().StringVar(&addDesc, "desc", "", "Free-form description")
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "Category name (default category if omitted)")
	addCmd.Flags().StringVarP(&addDate, "date", "d", "", "Event date, YYYY-MM-DD (today if omitted)")
	addCmd.Flags().StringVar(&addStart, "start", "", "Start time, HH:MM (00:00 if omitted)")
	addCmd.Flags().StringVar(&addEnd, "end", "", "End time, HH:MM (start plus one hour if omitted)")
	addCmd.Flags().BoolVar(&addAllDay, "all-day", false, "All-day event")
}

func runAdd(cmd *cobra.Command, args []string) error {
	database, err := db.OpenDefault()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	loc := cfg.Location()
	ed, err := editor.New(database, clock.NewSystem(), loc, nil)
	if err != nil {
		return err
	}

	day := time.Now().In(loc)
	if addDate != "" {
		day, err = time.ParseInLocation("2006-01-02", addDate, loc)
		if err != nil {
			return fmt.Errorf("invalid --date %q: want YYYY-MM-DD", addDate)
		}
	}
	ed.SetEventDate(day.Year(), day.Month(), day.Day())

	ed.SetName(args[0])
	ed.SetPlace(addPlace)
	ed.SetDescription(addDesc)

	if addAllDay {
		ed.Apply(editor.ToggleAllDay{})
	} else {
		if addStart != "" {
			h, min, err := parseClock(addStart)
			if err != nil {
				return fmt.Errorf("invalid --start: %w", err)
			}
			ed.Apply(editor.StartTimeChanged{Hour: h, Minute: min})
			// Keep the one-hour default window when only a start is given.
			if addEnd == "" {
				ed.Apply(editor.EndTimeChanged{Hour: h + 1, Minute: min})
			}
		}
		if addEnd != "" {
			h, min, err := parseClock(addEnd)
			if err != nil {
				return fmt.Errorf("invalid --end: %w", err)
			}
			ed.Apply(editor.EndTimeChanged{Hour: h, Minute: min})
		}
	}

	if addCategory != "" {
		if !selectCategoryByName(ed, addCategory) {
			return fmt.Errorf("no category named %q; see 'ironcal category list'", addCategory)
		}
	}

	effect := ed.Apply(editor.Save{})
	if effect.Err != nil {
		return effect.Err
	}

	fmt.Printf("Added: %s\n", args[0])
	return nil
}

func parseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("%q: want HH:MM", s)
	}
	return t.Hour(), t.Minute(), nil
}

func selectCategoryByName(ed *editor.Editor, name string) bool {
	for _, c := range ed.Categories() {
		if c.Name == name {
			ed.SelectCategory(c)
			return true
		}
	}
	return false
}

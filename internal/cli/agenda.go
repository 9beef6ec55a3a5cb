package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/existflow/ironcal/internal/dateheader"
	"github.com/existflow/ironcal/internal/db"
)

var agendaCmd = &cobra.Command{
	Use:   "agenda",
	Short: "List events",
	Long: `List active events. By default shows the current day; use --date for
another day or --all for every active event.`,
	RunE: runAgenda,
}

var (
	agendaDate string
	agendaAll  bool
)

func init() {
	agendaCmd.Flags().StringVarP(&agendaDate, "date", "d", "", "Day to list, YYYY-MM-DD")
	agendaCmd.Flags().BoolVarP(&agendaAll, "all", "a", false, "List every active event")
}

func runAgenda(cmd *cobra.Command, args []string) error {
	database, err := db.OpenDefault()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	loc := cfg.Location()
	ctx := context.Background()

	if agendaAll {
		events, err := database.ListEvents(ctx)
		if err != nil {
			return err
		}
		for _, e := range events {
			printEvent(e.ID, e.Name, e.Place, e.Category.Name, e.AllDay, e.Start, e.End, loc)
		}
		if len(events) == 0 {
			fmt.Println("No events.")
		}
		return nil
	}

	day := time.Now().In(loc)
	if agendaDate != "" {
		day, err = time.ParseInLocation("2006-01-02", agendaDate, loc)
		if err != nil {
			return fmt.Errorf("invalid --date %q: want YYYY-MM-DD", agendaDate)
		}
	}
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)

	header := dateheader.New(cfg.Locale).Decompose(day.Year(), day.Month(), day.Day())
	fmt.Printf("%s %s, %s\n\n", header.Weekday, header.Day, header.MonthYear)

	events, err := database.EventsInRange(ctx, midnight.Unix(), midnight.AddDate(0, 0, 1).Unix())
	if err != nil {
		return err
	}
	for _, e := range events {
		printEvent(e.ID, e.Name, e.Place, e.Category.Name, e.AllDay, e.Start, e.End, loc)
	}
	if len(events) == 0 {
		fmt.Println("No events.")
	}
	return nil
}

func printEvent(id int64, name, place, category string, allDay bool, start, end int64, loc *time.Location) {
	when := "all day"
	if !allDay {
		s := time.Unix(start, 0).In(loc)
		e := time.Unix(end, 0).In(loc)
		when = fmt.Sprintf("%s %s–%s", s.Format("2006-01-02"), s.Format("15:04"), e.Format("15:04"))
	}
	line := fmt.Sprintf("%4d  %-22s %-24s [%s]", id, when, name, category)
	if place != "" {
		line += " @ " + place
	}
	fmt.Println(line)
}

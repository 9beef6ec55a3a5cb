package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/existflow/ironcal/internal/clock"
	"github.com/existflow/ironcal/internal/db"
	"github.com/existflow/ironcal/internal/editor"
)

var rmCmd = &cobra.Command{
	Use:   "rm [event id]",
	Short: "Delete an event",
	Long: `Soft-delete an event by id (see 'ironcal agenda'). The record stays in
the store but disappears from listings.`,
	Args: cobra.ExactArgs(1),
	RunE: runRm,
}

var rmForce bool

func init() {
	rmCmd.Flags().BoolVarP(&rmForce, "force", "f", false, "Skip the confirmation prompt")
}

func runRm(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid event id %q", args[0])
	}

	database, err := db.OpenDefault()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	event, err := database.GetEvent(context.Background(), id)
	if err != nil {
		return err
	}

	confirm := promptConfirm
	if rmForce || !cfg.ConfirmDelete {
		confirm = func(string) bool { return true }
	}

	ed, err := editor.New(database, clock.NewSystem(), cfg.Location(), confirm)
	if err != nil {
		return err
	}
	ed.SetEvent(&event)

	effect := ed.Apply(editor.Delete{})
	if effect.Err != nil {
		return effect.Err
	}
	if !effect.Close {
		fmt.Println("Aborted.")
		return nil
	}

	fmt.Printf("Deleted: %s\n", event.Name)
	return nil
}

func promptConfirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/existflow/ironcal/internal/db"
	"github.com/existflow/ironcal/internal/model"
)

// The category manager is the "elsewhere" that edits categories; the event
// editor only consumes them and re-resolves its selection after a refresh.
var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage categories",
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.OpenDefault()
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		categories, err := database.ListCategories(context.Background())
		if err != nil {
			return err
		}
		for _, c := range categories {
			fmt.Printf("%-36s %-20s %s\n", c.ID, c.Name, c.Color.Hex())
		}
		return nil
	},
}

var categoryColor string

var categoryAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		color, err := model.ParseColor(categoryColor)
		if err != nil {
			return err
		}

		database, err := db.OpenDefault()
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		c := model.Category{
			ID:    uuid.New().String(),
			Name:  args[0],
			Color: color,
		}
		if err := database.AddCategory(context.Background(), c); err != nil {
			return err
		}
		fmt.Printf("Added category: %s\n", c.Name)
		return nil
	},
}

var categoryRmCmd = &cobra.Command{
	Use:   "rm [name]",
	Short: "Remove a category",
	Long: `Remove a category by name. Events tagged with it move to the default
category. The default category cannot be removed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.OpenDefault()
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		ctx := context.Background()
		categories, err := database.ListCategories(ctx)
		if err != nil {
			return err
		}
		for _, c := range categories {
			if c.Name == args[0] {
				if err := database.RemoveCategory(ctx, c.ID); err != nil {
					return err
				}
				fmt.Printf("Removed category: %s\n", c.Name)
				return nil
			}
		}
		return fmt.Errorf("no category named %q", args[0])
	},
}

func init() {
	categoryAddCmd.Flags().StringVar(&categoryColor, "color", "#4ECDC4", "Category color, #RRGGBB")
	categoryCmd.AddCommand(categoryListCmd)
	categoryCmd.AddCommand(categoryAddCmd)
	categoryCmd.AddCommand(categoryRmCmd)
}

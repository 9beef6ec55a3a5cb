package db

import (
	"context"
	"fmt"

	"github.com/existflow/ironcal/internal/model"
)

// ListCategories returns every category in display order: the default entry
// first, then the rest by name. The result is never empty; if the table has
// somehow drained, the default category is re-seeded. Order is stable between
// writes but is display order only, so callers resolve entries by structural
// equality, never by position held across a refresh.
func (db *DB) ListCategories(ctx context.Context) ([]model.Category, error) {
	const query = `
SELECT id, name, color FROM categories
ORDER BY id = 'default' DESC, name COLLATE NOCASE ASC`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		var color string
		if err := rows.Scan(&c.ID, &c.Name, &color); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		if c.Color, err = model.ParseColor(color); err != nil {
			return nil, fmt.Errorf("category %s: %w", c.ID, err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	if len(categories) == 0 {
		fallback := model.DefaultCategory()
		if err := db.AddCategory(ctx, fallback); err != nil {
			return nil, fmt.Errorf("reseed default category: %w", err)
		}
		categories = append(categories, fallback)
	}

	return categories, nil
}

// AddCategory inserts a category. Callers normally assign ids with uuid.New.
func (db *DB) AddCategory(ctx context.Context, c model.Category) error {
	const stmt = `INSERT INTO categories (id, name, color) VALUES (?, ?, ?)`
	if _, err := db.ExecContext(ctx, stmt, c.ID, c.Name, c.Color.Hex()); err != nil {
		return fmt.Errorf("add category: %w", err)
	}
	return nil
}

// UpdateCategory renames or recolors an existing category.
func (db *DB) UpdateCategory(ctx context.Context, c model.Category) error {
	const stmt = `UPDATE categories SET name = ?, color = ? WHERE id = ?`
	res, err := db.ExecContext(ctx, stmt, c.Name, c.Color.Hex(), c.ID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update category: no category with id %s", c.ID)
	}
	return nil
}

// RemoveCategory deletes a custom category. The default entry cannot be
// removed, so enumeration always has a fallback. Events still tagged with the
// removed category, active or soft-deleted, are moved to the default so their
// rows keep resolving.
func (db *DB) RemoveCategory(ctx context.Context, id string) error {
	if id == model.DefaultCategory().ID {
		return fmt.Errorf("remove category: the default category cannot be removed")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("remove category: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE events SET category_id = ? WHERE category_id = ?`,
		model.DefaultCategory().ID, id); err != nil {
		return fmt.Errorf("remove category: reassign events: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("remove category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("remove category: no category with id %s", id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("remove category: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/chronicle-app/chronicle-api/internal/models"
)

// CategoryRepository provides persistence for event categories.
type CategoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository constructs the repository.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// List returns all categories ordered by title.
func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	const query = `SELECT id, title, color, created_at, updated_at FROM categories ORDER BY title ASC`

	var categories []models.Category
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// FindByTitle fetches a category by its unique title; nil when absent.
func (r *CategoryRepository) FindByTitle(ctx context.Context, title string) (*models.Category, error) {
	const query = `SELECT id, title, color, created_at, updated_at FROM categories WHERE title = $1`

	var category models.Category
	if err := r.db.GetContext(ctx, &category, query, title); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &category, nil
}

// Upsert inserts the category or updates the color of an existing title.
func (r *CategoryRepository) Upsert(ctx context.Context, category *models.Category) error {
	const query = `INSERT INTO categories (title, color, created_at, updated_at)
VALUES ($1, $2, $3, $3)
ON CONFLICT (title) DO UPDATE SET color = EXCLUDED.color, updated_at = EXCLUDED.updated_at
RETURNING id, created_at, updated_at`

	now := time.Now().UTC()
	if err := r.db.QueryRowxContext(ctx, query, category.Title, category.Color, now).
		Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt); err != nil {
		return fmt.Errorf("upsert category: %w", err)
	}
	return nil
}

// Delete removes a category by title. It reports whether a row existed.
func (r *CategoryRepository) Delete(ctx context.Context, title string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE title = $1`, title)
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete category rows affected: %w", err)
	}
	return affected > 0, nil
}

// ColorMap returns the title to color mapping for every category.
func (r *CategoryRepository) ColorMap(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT title, color FROM categories`)
	if err != nil {
		return nil, fmt.Errorf("list category colors: %w", err)
	}
	defer rows.Close()

	colors := map[string]string{}
	for rows.Next() {
		var title, color string
		if err := rows.Scan(&title, &color); err != nil {
			return nil, fmt.Errorf("scan category color: %w", err)
		}
		colors[title] = color
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category colors: %w", err)
	}
	return colors, nil
}

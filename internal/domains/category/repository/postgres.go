package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"localbiz-backend/internal/domains/category"
	"localbiz-backend/internal/infrastructure/database"
	"localbiz-backend/internal/shared/utils"
)

type postgresRepository struct {
	db database.DBTX
}

func NewPostgresRepository(db database.DBTX) category.Repository {
	return &postgresRepository{db: db}
}

// business_count đếm mọi business tham chiếu category, không lọc status
const selectWithCount = `
	SELECT c.id, c.name, c.slug, c.parent_id, c.description, c.is_active, c.created_at,
	       (SELECT COUNT(*) FROM businesses b WHERE b.category_id = c.id) AS business_count
	FROM categories c
`

// ========================================
// WRITE
// ========================================

func (r *postgresRepository) Create(ctx context.Context, c *category.Category) error {
	query := `
		INSERT INTO categories (id, name, slug, parent_id, description, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		c.ID, c.Name, c.Slug, c.ParentID, c.Description, c.IsActive, c.CreatedAt,
	)
	if err != nil {
		if constraint, ok := database.UniqueViolation(err); ok && constraint == "categories_slug_key" {
			return category.ErrSlugExists
		}
		if _, ok := database.ForeignKeyViolation(err); ok {
			return category.ErrParentNotFound
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// Delete relies on ON DELETE SET NULL for businesses and child categories.
func (r *postgresRepository) Delete(ctx context.Context, slug string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE slug = $1`, slug)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return category.ErrCategoryNotFound
	}
	return nil
}

// ========================================
// READ
// ========================================

func (r *postgresRepository) FindBySlug(ctx context.Context, slug string) (*category.Category, error) {
	rows, err := r.db.Query(ctx, selectWithCount+` WHERE c.slug = $1`, slug)
	if err != nil {
		return nil, fmt.Errorf("query category: %w", err)
	}
	list, err := scanCategories(rows)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, category.ErrCategoryNotFound
	}
	return &list[0], nil
}

func (r *postgresRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM categories WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check category slug: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) ListWithCounts(ctx context.Context) ([]category.Category, error) {
	return r.list(ctx, selectWithCount+` ORDER BY c.name ASC`)
}

func (r *postgresRepository) ListFirst(ctx context.Context, limit int) ([]category.Category, error) {
	return r.list(ctx, selectWithCount+` ORDER BY c.name ASC LIMIT $1`, limit)
}

func (r *postgresRepository) ListPaged(ctx context.Context, limit, offset int) ([]category.Category, int, error) {
	total, err := r.Count(ctx, false)
	if err != nil {
		return nil, 0, err
	}
	list, err := r.list(ctx, selectWithCount+` ORDER BY c.name ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *postgresRepository) SearchActive(ctx context.Context, term string, limit int) ([]category.Category, error) {
	var where utils.Where
	where.Add("c.is_active = TRUE")
	where.ContainsAny([]string{"c.name"}, term)
	query := fmt.Sprintf("%s %s ORDER BY c.name ASC LIMIT $%d", selectWithCount, where.SQL(), where.Next())
	return r.list(ctx, query, append(where.Args(), limit)...)
}

func (r *postgresRepository) TopByBusinessCount(ctx context.Context, limit int) ([]category.Category, error) {
	return r.list(ctx, selectWithCount+` ORDER BY business_count DESC, c.name ASC LIMIT $1`, limit)
}

func (r *postgresRepository) Count(ctx context.Context, activeOnly bool) (int, error) {
	query := `SELECT COUNT(*) FROM categories`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	var n int
	if err := r.db.QueryRow(ctx, query).Scan(&n); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return n, nil
}

func (r *postgresRepository) list(ctx context.Context, query string, args ...any) ([]category.Category, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	return scanCategories(rows)
}

func scanCategories(rows pgx.Rows) ([]category.Category, error) {
	defer rows.Close()

	list := make([]category.Category, 0)
	for rows.Next() {
		var c category.Category
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Slug, &c.ParentID, &c.Description, &c.IsActive, &c.CreatedAt,
			&c.BusinessCount,
		); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return list, nil
}

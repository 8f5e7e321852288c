package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"localbiz-backend/internal/domains/business/model"
	"localbiz-backend/internal/infrastructure/database"
	"localbiz-backend/internal/shared/utils"
)

type PostgresRepository struct {
	db database.DBTX
}

func NewPostgresRepository(db database.DBTX) RepositoryInterface {
	return &PostgresRepository{db: db}
}

const selectBusiness = `
	SELECT b.id, b.name, b.slug, b.description, b.address, b.city, b.state, b.zip_code,
	       b.email, b.phone, b.website, b.logo, b.featured_image, b.category_id, b.owner_id,
	       b.is_active, b.is_featured, b.is_verified, b.views, b.created_at, b.updated_at,
	       COALESCE(c.name, ''), COALESCE(c.slug, ''), COALESCE(u.username, ''), COALESCE(u.email, '')
	FROM businesses b
	LEFT JOIN categories c ON c.id = b.category_id
	LEFT JOIN users u ON u.id = b.owner_id
`

const countBusiness = `
	SELECT COUNT(*)
	FROM businesses b
	LEFT JOIN categories c ON c.id = b.category_id
`

// =====================================================
// WRITE
// =====================================================

func (r *PostgresRepository) Create(ctx context.Context, b *model.Business) error {
	query := `
		INSERT INTO businesses (
			id, name, slug, description, address, city, state, zip_code,
			email, phone, website, logo, featured_image, category_id, owner_id,
			is_active, is_featured, is_verified, views, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8,
			$9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21
		)
	`
	_, err := r.db.Exec(ctx, query,
		b.ID, b.Name, b.Slug, b.Description, b.Address, b.City, b.State, b.ZipCode,
		b.Email, b.Phone, b.Website, b.Logo, b.FeaturedImage, b.CategoryID, b.OwnerID,
		b.IsActive, b.IsFeatured, b.IsVerified, b.Views, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("insert business", err)
	}
	return nil
}

func (r *PostgresRepository) UpdateOwned(ctx context.Context, b *model.Business, ownerID uuid.UUID) error {
	query := `
		UPDATE businesses SET
			name = $3, description = $4, address = $5, city = $6, state = $7, zip_code = $8,
			email = $9, phone = $10, website = $11, logo = $12, featured_image = $13,
			category_id = $14, updated_at = $15
		WHERE id = $1 AND owner_id = $2
	`
	tag, err := r.db.Exec(ctx, query,
		b.ID, ownerID,
		b.Name, b.Description, b.Address, b.City, b.State, b.ZipCode,
		b.Email, b.Phone, b.Website, b.Logo, b.FeaturedImage,
		b.CategoryID, b.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("update business", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBusinessNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteOwned(ctx context.Context, slug string, ownerID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM businesses WHERE slug = $1 AND owner_id = $2`, slug, ownerID)
	if err != nil {
		return fmt.Errorf("delete business: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBusinessNotFound
	}
	return nil
}

func (r *PostgresRepository) IncrementViews(ctx context.Context, id uuid.UUID) (int, error) {
	var views int
	err := r.db.QueryRow(ctx,
		`UPDATE businesses SET views = views + 1 WHERE id = $1 AND is_active = TRUE RETURNING views`,
		id,
	).Scan(&views)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, model.ErrBusinessNotFound
		}
		return 0, fmt.Errorf("increment views: %w", err)
	}
	return views, nil
}

func (r *PostgresRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE businesses SET is_active = $2, updated_at = $3 WHERE id = $1`,
		id, active, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("set business active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBusinessNotFound
	}
	return nil
}

func mapWriteError(op string, err error) error {
	if constraint, ok := database.UniqueViolation(err); ok && constraint == "businesses_slug_key" {
		return model.ErrSlugExists
	}
	if constraint, ok := database.ForeignKeyViolation(err); ok {
		switch constraint {
		case "businesses_category_id_fkey":
			return model.ErrCategoryNotFound
		case "businesses_owner_id_fkey":
			return model.ErrOwnerNotFound
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// =====================================================
// LOOKUP
// =====================================================

func (r *PostgresRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM businesses WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check business slug: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Business, error) {
	return r.findOne(ctx, selectBusiness+` WHERE b.id = $1`, id)
}

func (r *PostgresRepository) FindActiveBySlug(ctx context.Context, slug string) (*model.Business, error) {
	return r.findOne(ctx, selectBusiness+` WHERE b.slug = $1 AND b.is_active = TRUE`, slug)
}

func (r *PostgresRepository) FindOwnedBySlug(ctx context.Context, slug string, ownerID uuid.UUID) (*model.Business, error) {
	return r.findOne(ctx, selectBusiness+` WHERE b.slug = $1 AND b.owner_id = $2`, slug, ownerID)
}

func (r *PostgresRepository) findOne(ctx context.Context, query string, args ...any) (*model.Business, error) {
	list, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, model.ErrBusinessNotFound
	}
	return &list[0], nil
}

// =====================================================
// LISTING
// =====================================================

func (r *PostgresRepository) List(ctx context.Context, q model.Query, limit, offset int) ([]model.Business, error) {
	where := buildWhere(q)

	query := fmt.Sprintf("%s %s ORDER BY %s", selectBusiness, where.SQL(), orderBy(q.Sort))
	args := where.Args()
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", where.Next(), where.Next()+1)
		args = append(args, limit, offset)
	}

	return r.query(ctx, query, args...)
}

func (r *PostgresRepository) Count(ctx context.Context, q model.Query) (int, error) {
	where := buildWhere(q)
	var total int
	if err := r.db.QueryRow(ctx, countBusiness+" "+where.SQL(), where.Args()...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count businesses: %w", err)
	}
	return total, nil
}

func buildWhere(q model.Query) *utils.Where {
	where := &utils.Where{}
	if q.ActiveOnly {
		where.Add("b.is_active = TRUE")
	}
	switch q.Status {
	case model.StatusPending:
		where.Add("b.is_active = FALSE")
	case model.StatusActive:
		where.Add("b.is_active = TRUE")
	}
	if q.CategorySlug != "" {
		where.Eq("c.slug", q.CategorySlug)
	}
	if q.CategoryID != nil {
		where.Eq("b.category_id", *q.CategoryID)
	}
	if q.Search != "" {
		where.ContainsAny([]string{"b.name", "b.description", "c.name"}, q.Search)
	}
	if q.Location != "" {
		where.ContainsAny([]string{"b.city", "b.state", "b.address"}, q.Location)
	}
	return where
}

// Rating and review-count sorts fall back to featured-then-newest.
func orderBy(sort string) string {
	switch sort {
	case model.SortName:
		return "b.name ASC, b.id ASC"
	case model.SortRating, model.SortReviews:
		return "b.is_featured DESC, b.created_at DESC, b.id ASC"
	default:
		return "b.created_at DESC, b.id ASC"
	}
}

func (r *PostgresRepository) Featured(ctx context.Context, limit int) ([]model.Business, error) {
	return r.query(ctx,
		selectBusiness+` WHERE b.is_active = TRUE AND b.is_featured = TRUE ORDER BY b.created_at DESC LIMIT $1`,
		limit,
	)
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Business, error) {
	return r.query(ctx, selectBusiness+` WHERE b.owner_id = $1 ORDER BY b.created_at DESC`, ownerID)
}

func (r *PostgresRepository) Recent(ctx context.Context, limit int) ([]model.Business, error) {
	return r.query(ctx, selectBusiness+` ORDER BY b.created_at DESC LIMIT $1`, limit)
}

func (r *PostgresRepository) QuickSearch(ctx context.Context, term string, limit int) ([]model.Business, error) {
	return r.search(ctx, []string{"b.name", "b.description", "b.city"}, term, limit)
}

func (r *PostgresRepository) NameSearch(ctx context.Context, term string, limit int) ([]model.Business, error) {
	return r.search(ctx, []string{"b.name", "b.description"}, term, limit)
}

func (r *PostgresRepository) search(ctx context.Context, columns []string, term string, limit int) ([]model.Business, error) {
	where := &utils.Where{}
	where.Add("b.is_active = TRUE")
	where.ContainsAny(columns, term)
	query := fmt.Sprintf("%s %s ORDER BY b.created_at DESC LIMIT $%d", selectBusiness, where.SQL(), where.Next())
	return r.query(ctx, query, append(where.Args(), limit)...)
}

func (r *PostgresRepository) LocationSuggestions(ctx context.Context, term string, limit int) ([]string, error) {
	where := &utils.Where{}
	where.Add("is_active = TRUE")
	where.ContainsAny([]string{"city", "state"}, term)
	query := fmt.Sprintf(
		"SELECT DISTINCT city, state FROM businesses %s ORDER BY city, state LIMIT $%d",
		where.SQL(), where.Next(),
	)

	rows, err := r.db.Query(ctx, query, append(where.Args(), limit)...)
	if err != nil {
		return nil, fmt.Errorf("query locations: %w", err)
	}
	defer rows.Close()

	suggestions := make([]string, 0)
	for rows.Next() {
		var city, state string
		if err := rows.Scan(&city, &state); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		suggestions = append(suggestions, city+", "+state)
	}
	return suggestions, rows.Err()
}

func (r *PostgresRepository) Stats(ctx context.Context) (*model.Stats, error) {
	var s model.Stats
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE is_active),
		       COUNT(*) FILTER (WHERE NOT is_active),
		       COUNT(DISTINCT owner_id)
		FROM businesses
	`).Scan(&s.Total, &s.Active, &s.Pending, &s.Owners)
	if err != nil {
		return nil, fmt.Errorf("business stats: %w", err)
	}
	return &s, nil
}

// =====================================================
// SCAN HELPERS
// =====================================================

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]model.Business, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query businesses: %w", err)
	}
	defer rows.Close()

	list := make([]model.Business, 0)
	for rows.Next() {
		var b model.Business
		if err := rows.Scan(
			&b.ID, &b.Name, &b.Slug, &b.Description, &b.Address, &b.City, &b.State, &b.ZipCode,
			&b.Email, &b.Phone, &b.Website, &b.Logo, &b.FeaturedImage, &b.CategoryID, &b.OwnerID,
			&b.IsActive, &b.IsFeatured, &b.IsVerified, &b.Views, &b.CreatedAt, &b.UpdatedAt,
			&b.CategoryName, &b.CategorySlug, &b.OwnerUsername, &b.OwnerEmail,
		); err != nil {
			return nil, fmt.Errorf("scan business: %w", err)
		}
		list = append(list, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate businesses: %w", err)
	}
	return list, nil
}

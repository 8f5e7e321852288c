package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"localbiz-backend/internal/domains/review/model"
	"localbiz-backend/internal/infrastructure/database"
)

type postgresRepository struct {
	db database.DBTX
}

func NewPostgresRepository(db database.DBTX) ReviewRepository {
	return &postgresRepository{db: db}
}

const selectReview = `
	SELECT r.id, r.business_id, r.user_id, r.rating, r.title, r.comment, r.is_approved,
	       r.created_at, r.updated_at, u.username, b.name, b.slug
	FROM reviews r
	JOIN users u ON u.id = r.user_id
	JOIN businesses b ON b.id = r.business_id
`

// =====================================================
// CRUD
// =====================================================

func (r *postgresRepository) Create(ctx context.Context, review *model.Review) error {
	query := `
		INSERT INTO reviews (id, business_id, user_id, rating, title, comment, is_approved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.BusinessID,
		review.UserID,
		review.Rating,
		review.Title,
		review.Comment,
		review.IsApproved,
		review.CreatedAt,
		review.UpdatedAt,
	)
	if err == nil {
		return nil
	}

	if constraint, ok := database.UniqueViolation(err); ok && constraint == "reviews_business_user_key" {
		return model.ErrAlreadyReviewed
	}
	if _, ok := database.CheckViolation(err); ok {
		return model.ErrInvalidRating
	}
	if constraint, ok := database.ForeignKeyViolation(err); ok {
		switch constraint {
		case "reviews_business_id_fkey":
			return model.ErrBusinessNotFound
		case "reviews_user_id_fkey":
			return model.ErrUserNotFound
		}
	}
	return fmt.Errorf("insert review: %w", err)
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	list, err := r.query(ctx, selectReview+` WHERE r.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, model.ErrReviewNotFound
	}
	return &list[0], nil
}

// =====================================================
// LIST
// =====================================================

func (r *postgresRepository) ListAll(ctx context.Context) ([]model.Review, error) {
	return r.query(ctx, selectReview+` ORDER BY r.created_at DESC`)
}

func (r *postgresRepository) ListPaged(ctx context.Context, limit, offset int) ([]model.Review, int, error) {
	return r.ListByApproval(ctx, nil, limit, offset)
}

func (r *postgresRepository) ListApprovedByBusiness(ctx context.Context, businessID uuid.UUID) ([]model.Review, error) {
	return r.query(ctx,
		selectReview+` WHERE r.business_id = $1 AND r.is_approved = TRUE ORDER BY r.created_at DESC`,
		businessID,
	)
}

func (r *postgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Review, error) {
	return r.query(ctx, selectReview+` WHERE r.user_id = $1 ORDER BY r.created_at DESC`, userID)
}

func approvalWhere(approved *bool) (string, []any) {
	if approved == nil {
		return "", []any{}
	}
	return " WHERE r.is_approved = $1", []any{*approved}
}

func (r *postgresRepository) ListByApproval(ctx context.Context, approved *bool, limit, offset int) ([]model.Review, int, error) {
	total, err := r.CountByApproval(ctx, approved)
	if err != nil {
		return nil, 0, err
	}

	where, args := approvalWhere(approved)

	query := fmt.Sprintf("%s%s ORDER BY r.created_at DESC LIMIT $%d OFFSET $%d",
		selectReview, where, len(args)+1, len(args)+2)
	list, err := r.query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *postgresRepository) Recent(ctx context.Context, limit int) ([]model.Review, error) {
	return r.query(ctx, selectReview+` ORDER BY r.created_at DESC LIMIT $1`, limit)
}

// =====================================================
// STATISTICS
// =====================================================

func (r *postgresRepository) Summary(ctx context.Context, businessID uuid.UUID) (model.RatingSummary, error) {
	var sum int64
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(rating), 0), COUNT(*) FROM reviews WHERE business_id = $1 AND is_approved = TRUE`,
		businessID,
	).Scan(&sum, &count)
	if err != nil {
		return model.RatingSummary{}, fmt.Errorf("rating summary: %w", err)
	}
	return model.NewRatingSummary(sum, count), nil
}

func (r *postgresRepository) Stats(ctx context.Context) (*model.Stats, error) {
	var s model.Stats
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE NOT is_approved) FROM reviews`,
	).Scan(&s.Total, &s.Pending)
	if err != nil {
		return nil, fmt.Errorf("review stats: %w", err)
	}
	return &s, nil
}

func (r *postgresRepository) CountByApproval(ctx context.Context, approved *bool) (int, error) {
	where, args := approvalWhere(approved)
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews r`+where, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count reviews: %w", err)
	}
	return total, nil
}

func (r *postgresRepository) CountApproved(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews WHERE is_approved = TRUE`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count approved reviews: %w", err)
	}
	return n, nil
}

// =====================================================
// ADMIN
// =====================================================

func (r *postgresRepository) Approve(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE reviews SET is_approved = TRUE, updated_at = $2 WHERE id = $1`,
		id, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("approve review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrReviewNotFound
	}
	return nil
}

// =====================================================
// SCAN HELPERS
// =====================================================

func (r *postgresRepository) query(ctx context.Context, query string, args ...any) ([]model.Review, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []model.Review{}, nil
		}
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	list := make([]model.Review, 0)
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(
			&rv.ID, &rv.BusinessID, &rv.UserID, &rv.Rating, &rv.Title, &rv.Comment, &rv.IsApproved,
			&rv.CreatedAt, &rv.UpdatedAt, &rv.Username, &rv.BusinessName, &rv.BusinessSlug,
		); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		list = append(list, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	return list, nil
}

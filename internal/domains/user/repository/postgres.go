package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	user "localbiz-backend/internal/domains/user"
	"localbiz-backend/internal/infrastructure/database"
)

// postgresRepository là concrete implementation của user.Repository interface
type postgresRepository struct {
	db database.DBTX
}

// NewPostgresRepository nhận *pgxpool.Pool hoặc pgx.Tx
func NewPostgresRepository(db database.DBTX) user.Repository {
	return &postgresRepository{db: db}
}

const userColumns = `id, username, email, password_hash, is_staff, is_active, date_joined, last_login`

// ========================================
// BASIC CRUD OPERATIONS
// ========================================

func (r *postgresRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, is_staff, is_active, date_joined)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		u.ID,
		u.Username,
		u.Email,
		u.PasswordHash,
		u.IsStaff,
		u.IsActive,
		u.DateJoined,
	)
	if err != nil {
		if constraint, ok := database.UniqueViolation(err); ok && constraint == "users_username_key" {
			return user.ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

func (r *postgresRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return r.scanOne(ctx, query, username)
}

func (r *postgresRepository) scanOne(ctx context.Context, query string, arg any) (*user.User, error) {
	var u user.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.IsStaff,
		&u.IsActive,
		&u.DateJoined,
		&u.LastLogin,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

// ========================================
// UPDATES
// ========================================

func (r *postgresRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.execOne(ctx, `UPDATE users SET last_login = $2 WHERE id = $1`, id, at)
}

func (r *postgresRepository) SetStaff(ctx context.Context, id uuid.UUID, staff bool) error {
	return r.execOne(ctx, `UPDATE users SET is_staff = $2 WHERE id = $1`, id, staff)
}

func (r *postgresRepository) SetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.execOne(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, passwordHash)
}

func (r *postgresRepository) execOne(ctx context.Context, query string, args ...any) error {
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

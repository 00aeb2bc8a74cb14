package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/chakrahealing/admin_api/internal/database"
	"github.com/chakrahealing/admin_api/internal/models"
	"github.com/chakrahealing/admin_api/internal/utils"
)

// foreignKeyViolation is the postgres SQLSTATE for a missing referenced row.
const foreignKeyViolation = "23503"

// UserRepository handles panel users, their roles and their own profile.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByEmail finds a user by email, case-insensitively.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.GetContext(ctx, &u, `
		SELECT id, email, password_hash, created_at, updated_at
		FROM users WHERE LOWER(email) = LOWER($1)`, email)
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// GetByID finds a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := r.db.GetContext(ctx, &u, `
		SELECT id, email, password_hash, created_at, updated_at FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// Create inserts a user with a matching profile and role row and returns its id.
func (r *UserRepository) Create(ctx context.Context, email, passwordHash, fullName string, role models.Role) (string, error) {
	var id string
	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := tx.QueryRowxContext(ctx,
			`INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id`,
			email, passwordHash).Scan(&id); err != nil {
			return fmt.Errorf("insert user: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO profiles (id, email, full_name) VALUES ($1, $2, $3)`,
			id, email, nullString(&fullName)); err != nil {
			return fmt.Errorf("insert profile: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO user_roles (user_id, role) VALUES ($1, $2)`, id, string(role)); err != nil {
			return fmt.Errorf("insert role: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// GetRole returns the user's role. Users without a role row are employees.
func (r *UserRepository) GetRole(ctx context.Context, userID string) (models.Role, error) {
	var role string
	err := r.db.GetContext(ctx, &role, `SELECT role FROM user_roles WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.RoleEmployee, nil
	}
	if err != nil {
		return "", fmt.Errorf("select role: %w", err)
	}
	return models.ParseRole(role), nil
}

// ListUsersWithRoles returns every user with profile name and effective role.
func (r *UserRepository) ListUsersWithRoles(ctx context.Context) ([]models.UserWithRole, error) {
	users := []models.UserWithRole{}
	err := r.db.SelectContext(ctx, &users, `
		SELECT u.id, COALESCE(p.email, u.email) AS email, p.full_name,
			COALESCE(ur.role, 'employee') AS role, u.created_at
		FROM users u
		LEFT JOIN profiles p ON p.id = u.id
		LEFT JOIN user_roles ur ON ur.user_id = u.id
		ORDER BY u.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	return users, nil
}

// SetRole upserts the user's role row.
func (r *UserRepository) SetRole(ctx context.Context, userID string, role models.Role) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_roles (user_id, role) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role, updated_at = NOW()`,
		userID, string(role))
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
		return utils.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("upsert role: %w", err)
	}
	return nil
}

// UpdatePassword stores a new bcrypt hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return expectAffected(r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`, passwordHash, userID))
}

// GetProfile returns the profile of a user.
func (r *UserRepository) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	var p models.Profile
	err := r.db.GetContext(ctx, &p, `
		SELECT id, email, full_name, avatar_url, phone, dob, present_address, permanent_address,
			city, postal_code, country, created_at, updated_at
		FROM profiles WHERE id = $1`, id)
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// UpdateProfile applies a partial update to the user's own profile.
func (r *UserRepository) UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) error {
	return updateProfile(ctx, r.db, id, upd)
}

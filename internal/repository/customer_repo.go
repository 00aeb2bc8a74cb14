package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/chakrahealing/admin_api/internal/models"
)

// CustomerRepository reads the customer statistics view and edits profiles.
type CustomerRepository struct {
	db *sqlx.DB
}

// NewCustomerRepository creates a new CustomerRepository.
func NewCustomerRepository(db *sqlx.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// GetAll returns every customer row, newest first.
func (r *CustomerRepository) GetAll(ctx context.Context) ([]models.CustomerStats, error) {
	var rows []models.CustomerStats
	if err := r.db.SelectContext(ctx, &rows, `
		SELECT user_id, full_name, email, phone, created_at, total_sessions, last_visit, total_spent_paise
		FROM v_customer_stats ORDER BY created_at DESC`); err != nil {
		return nil, fmt.Errorf("select customers: %w", err)
	}
	return rows, nil
}

// UpdateProfile edits a customer's profile.
func (r *CustomerRepository) UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) error {
	return updateProfile(ctx, r.db, id, upd)
}

// DeleteProfile removes the profile row only. The login account is kept.
func (r *CustomerRepository) DeleteProfile(ctx context.Context, id string) error {
	return expectAffected(r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id))
}

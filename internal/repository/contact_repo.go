package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/chakrahealing/admin_api/internal/models"
)

// ContactRepository reads contact form submissions.
type ContactRepository struct {
	db *sqlx.DB
}

// NewContactRepository creates a new ContactRepository.
func NewContactRepository(db *sqlx.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// GetAll returns every submission, newest first.
func (r *ContactRepository) GetAll(ctx context.Context) ([]models.Contact, error) {
	var rows []models.Contact
	if err := r.db.SelectContext(ctx, &rows, `
		SELECT id, name, email, phone, subject, message, created_at
		FROM contact ORDER BY created_at DESC`); err != nil {
		return nil, fmt.Errorf("select contacts: %w", err)
	}
	return rows, nil
}

// GetByID returns one submission.
func (r *ContactRepository) GetByID(ctx context.Context, id int64) (*models.Contact, error) {
	var c models.Contact
	if err := r.db.GetContext(ctx, &c, `
		SELECT id, name, email, phone, subject, message, created_at FROM contact WHERE id = $1`, id); err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

// Delete removes a submission.
func (r *ContactRepository) Delete(ctx context.Context, id int64) error {
	return expectAffected(r.db.ExecContext(ctx, `DELETE FROM contact WHERE id = $1`, id))
}

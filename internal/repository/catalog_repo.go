package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/chakrahealing/admin_api/internal/database"
	"github.com/chakrahealing/admin_api/internal/models"
)

const serviceColumns = `
	id, title, slug, description, short_desc, long_desc, price_paise, is_active, image_path,
	created_at, updated_at`

// CatalogRepository reads and writes bookable services and their benefits.
type CatalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository creates a new CatalogRepository.
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// GetAll returns every service, highest id first, with benefits.
func (r *CatalogRepository) GetAll(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	if err := r.db.SelectContext(ctx, &services, `SELECT `+serviceColumns+` FROM services ORDER BY id DESC`); err != nil {
		return nil, fmt.Errorf("select services: %w", err)
	}
	if err := r.loadBenefits(ctx, services); err != nil {
		return nil, err
	}
	return services, nil
}

// GetByID returns one service with benefits.
func (r *CatalogRepository) GetByID(ctx context.Context, id int64) (*models.Service, error) {
	var s models.Service
	if err := r.db.GetContext(ctx, &s, `SELECT `+serviceColumns+` FROM services WHERE id = $1`, id); err != nil {
		return nil, notFound(err)
	}
	services := []models.Service{s}
	if err := r.loadBenefits(ctx, services); err != nil {
		return nil, err
	}
	return &services[0], nil
}

func (r *CatalogRepository) loadBenefits(ctx context.Context, services []models.Service) error {
	if len(services) == 0 {
		return nil
	}
	ids := make([]int64, len(services))
	index := make(map[int64]int, len(services))
	for i := range services {
		ids[i] = services[i].ID
		index[services[i].ID] = i
		services[i].Benefits = []models.ServiceBenefit{}
	}

	var benefits []models.ServiceBenefit
	if err := selectIn(ctx, r.db, &benefits, `
		SELECT id, service_id, label, sort_order FROM service_benefits
		WHERE service_id IN (?) ORDER BY sort_order ASC, id ASC`, ids); err != nil {
		return fmt.Errorf("select service benefits: %w", err)
	}
	for _, b := range benefits {
		i := index[b.ServiceID]
		services[i].Benefits = append(services[i].Benefits, b)
	}
	return nil
}

// Upsert inserts a service when ID is zero, otherwise updates it. It returns the id.
func (r *CatalogRepository) Upsert(ctx context.Context, s *models.Service) (int64, error) {
	if s.ID == 0 {
		var id int64
		err := r.db.QueryRowxContext(ctx, `
			INSERT INTO services (title, slug, description, short_desc, long_desc, price_paise, is_active, image_path)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
			s.Title, s.Slug, nullString(s.Description), nullString(s.ShortDesc), nullString(s.LongDesc),
			s.PricePaise, s.IsActive, nullString(s.ImagePath),
		).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("insert service: %w", err)
		}
		return id, nil
	}

	err := expectAffected(r.db.ExecContext(ctx, `
		UPDATE services SET title = $1, slug = $2, description = $3, short_desc = $4, long_desc = $5,
			price_paise = $6, is_active = $7, image_path = COALESCE($8, image_path), updated_at = NOW()
		WHERE id = $9`,
		s.Title, s.Slug, nullString(s.Description), nullString(s.ShortDesc), nullString(s.LongDesc),
		s.PricePaise, s.IsActive, nullString(s.ImagePath), s.ID,
	))
	if err != nil {
		return 0, err
	}
	return s.ID, nil
}

// ReplaceBenefits deletes the service's benefits and inserts labels with sort_order i.
func (r *CatalogRepository) ReplaceBenefits(ctx context.Context, serviceID int64, labels []string) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM service_benefits WHERE service_id = $1`, serviceID); err != nil {
			return fmt.Errorf("delete benefits: %w", err)
		}
		for i, label := range labels {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO service_benefits (service_id, label, sort_order) VALUES ($1, $2, $3)`,
				serviceID, label, i); err != nil {
				return fmt.Errorf("insert benefit: %w", err)
			}
		}
		return nil
	})
}

// SetImage stores the public URL of the service image.
func (r *CatalogRepository) SetImage(ctx context.Context, serviceID int64, imagePath string) error {
	return expectAffected(r.db.ExecContext(ctx,
		`UPDATE services SET image_path = $1, updated_at = NOW() WHERE id = $2`, imagePath, serviceID))
}

// Delete removes benefits first, then the service.
func (r *CatalogRepository) Delete(ctx context.Context, id int64) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM service_benefits WHERE service_id = $1`, id); err != nil {
			return fmt.Errorf("delete benefits: %w", err)
		}
		return expectAffected(tx.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id))
	})
}

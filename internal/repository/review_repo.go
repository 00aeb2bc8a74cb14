package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/chakrahealing/admin_api/internal/models"
)

// ReviewRepository reads and moderates product reviews.
type ReviewRepository struct {
	db *sqlx.DB
}

// NewReviewRepository creates a new ReviewRepository.
func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// GetAllAdmin returns the newest reviews with their product and reviewer.
func (r *ReviewRepository) GetAllAdmin(ctx context.Context, limit int) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.SelectContext(ctx, &reviews, `
		SELECT id, product_id, user_id, rating, title, body, status, created_at
		FROM product_reviews ORDER BY created_at DESC NULLS LAST LIMIT $1`, limit); err != nil {
		return nil, fmt.Errorf("select reviews: %w", err)
	}
	if len(reviews) == 0 {
		return reviews, nil
	}

	productIDs := make([]int64, 0, len(reviews))
	userIDs := make([]*string, 0, len(reviews))
	for _, rv := range reviews {
		if rv.ProductID != nil {
			productIDs = append(productIDs, *rv.ProductID)
		}
		userIDs = append(userIDs, rv.UserID)
	}

	products := make(map[int64]*models.ReviewProduct)
	if len(productIDs) > 0 {
		var rows []models.ReviewProduct
		if err := selectIn(ctx, r.db, &rows, `
			SELECT id, name, slug, primary_image_url FROM products WHERE id IN (?)`, productIDs); err != nil {
			return nil, fmt.Errorf("select review products: %w", err)
		}
		for i := range rows {
			products[rows[i].ID] = &rows[i]
		}
	}

	profiles, err := loadProfileSummaries(ctx, r.db, uniqueStrings(userIDs))
	if err != nil {
		return nil, err
	}

	for i := range reviews {
		if reviews[i].ProductID != nil {
			reviews[i].Product = products[*reviews[i].ProductID]
		}
		if reviews[i].UserID != nil {
			reviews[i].Reviewer = profiles[*reviews[i].UserID]
		}
	}
	return reviews, nil
}

// UpdateStatus sets the moderation status of a review.
func (r *ReviewRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	return expectAffected(r.db.ExecContext(ctx, `UPDATE product_reviews SET status = $1 WHERE id = $2`, status, id))
}

// Delete removes a review.
func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	return expectAffected(r.db.ExecContext(ctx, `DELETE FROM product_reviews WHERE id = $1`, id))
}

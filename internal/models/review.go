package models

import (
	"fmt"
	"time"
)

// Review statuses.
const (
	ReviewPending  = "pending"
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
)

// ValidReviewStatus reports whether s is a status an admin can set.
func ValidReviewStatus(s string) bool {
	switch s {
	case ReviewPending, ReviewApproved, ReviewRejected:
		return true
	}
	return false
}

// ReviewProduct is the product summary embedded into a review.
type ReviewProduct struct {
	ID              int64   `db:"id" json:"id"`
	Name            string  `db:"name" json:"name"`
	Slug            *string `db:"slug" json:"slug,omitempty"`
	PrimaryImageURL *string `db:"primary_image_url" json:"primaryImageUrl,omitempty"`
}

// Review is a product review awaiting or past moderation.
type Review struct {
	ID        int64      `db:"id" json:"id"`
	ProductID *int64     `db:"product_id" json:"productId,omitempty"`
	UserID    *string    `db:"user_id" json:"userId,omitempty"`
	Rating    int        `db:"rating" json:"rating"`
	Title     *string    `db:"title" json:"title,omitempty"`
	Body      *string    `db:"body" json:"body,omitempty"`
	Status    *string    `db:"status" json:"status,omitempty"`
	CreatedAt *time.Time `db:"created_at" json:"createdAt,omitempty"`

	Product  *ReviewProduct  `db:"-" json:"product,omitempty"`
	Reviewer *ProfileSummary `db:"-" json:"reviewer,omitempty"`
}

// EffectiveStatus treats a missing status as pending.
func (r *Review) EffectiveStatus() string {
	if r.Status == nil || *r.Status == "" {
		return ReviewPending
	}
	return *r.Status
}

// DisplayID renders the review id as R0001.
func (r *Review) DisplayID() string {
	return fmt.Sprintf("R%04d", r.ID)
}

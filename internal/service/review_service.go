package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/chakrahealing/admin_api/internal/listing"
	"github.com/chakrahealing/admin_api/internal/models"
	"github.com/chakrahealing/admin_api/internal/sse"
	"github.com/chakrahealing/admin_api/internal/utils"
)

// ReviewService backs review moderation on the products page.
type ReviewService struct {
	reviews  ReviewStore
	notifier sse.Notifier
	limit    int
}

// NewReviewService constructs a ReviewService.
func NewReviewService(reviews ReviewStore, notifier sse.Notifier, limit int) *ReviewService {
	if notifier == nil {
		notifier = sse.NopNotifier{}
	}
	return &ReviewService{reviews: reviews, notifier: notifier, limit: limit}
}

// List returns one page of reviews filtered by status and search.
func (s *ReviewService) List(ctx context.Context, q listing.Query) (listing.Page[models.Review], error) {
	reviews, err := s.reviews.GetAllAdmin(ctx, s.limit)
	if err != nil {
		return listing.Page[models.Review]{}, err
	}
	return listing.Apply(reviews, q, listing.ReviewMatch(q)), nil
}

// UpdateStatus sets a review to pending, approved or rejected.
func (s *ReviewService) UpdateStatus(ctx context.Context, id int64, status, actorID string) error {
	status = strings.ToLower(strings.TrimSpace(status))
	if !models.ValidReviewStatus(status) {
		return fmt.Errorf("%w: review status %q", utils.ErrInvalidStatus, status)
	}
	if err := s.reviews.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.notifier.NotifyReviewStatusChanged(id, status, actorID)
	return nil
}

// Delete removes a review.
func (s *ReviewService) Delete(ctx context.Context, id int64) error {
	return s.reviews.Delete(ctx, id)
}

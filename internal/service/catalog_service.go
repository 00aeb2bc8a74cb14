package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/chakrahealing/admin_api/internal/listing"
	"github.com/chakrahealing/admin_api/internal/models"
	"github.com/chakrahealing/admin_api/internal/storage"
)

// ServiceInput is the service form of the services page.
type ServiceInput struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title" validate:"required,max=200"`
	Slug        string   `json:"slug" validate:"max=200"`
	Description *string  `json:"description"`
	ShortDesc   *string  `json:"shortDesc" validate:"omitempty,max=500"`
	LongDesc    *string  `json:"longDesc"`
	PricePaise  int64    `json:"pricePaise" validate:"gte=0"`
	IsActive    bool     `json:"isActive"`
	Benefits    []string `json:"benefits" validate:"dive,max=200"`
}

// CatalogService manages the bookable services shown on the public site.
type CatalogService struct {
	catalog CatalogStore
	storage ObjectStore
	now     func() time.Time
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(catalog CatalogStore, storage ObjectStore) *CatalogService {
	return &CatalogService{catalog: catalog, storage: storage, now: time.Now}
}

// List returns one page of services with image URLs resolved.
func (s *CatalogService) List(ctx context.Context, q listing.Query) (listing.Page[models.Service], error) {
	services, err := s.catalog.GetAll(ctx)
	if err != nil {
		return listing.Page[models.Service]{}, err
	}
	for i := range services {
		s.resolve(&services[i])
	}
	return listing.Apply(services, q, listing.ServiceMatch(q)), nil
}

// Get returns one service with its image URL resolved.
func (s *CatalogService) Get(ctx context.Context, id int64) (*models.Service, error) {
	svc, err := s.catalog.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.resolve(svc)
	return svc, nil
}

func (s *CatalogService) resolve(svc *models.Service) {
	svc.ImageURL = s.storage.ResolveImageURL(s.storage.Buckets().ServiceBucket, svc.ImagePath)
}

// Save upserts the service, replaces its benefits and optionally stores a
// single image whose public URL becomes image_path.
func (s *CatalogService) Save(ctx context.Context, in ServiceInput, image *Upload) (*models.Service, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	slug := Slugify(in.Slug)
	if slug == "" {
		slug = Slugify(in.Title)
	}

	id, err := s.catalog.Upsert(ctx, &models.Service{
		ID:          in.ID,
		Title:       in.Title,
		Slug:        slug,
		Description: in.Description,
		ShortDesc:   in.ShortDesc,
		LongDesc:    in.LongDesc,
		PricePaise:  in.PricePaise,
		IsActive:    in.IsActive,
	})
	if err != nil {
		return nil, err
	}

	if err := s.catalog.ReplaceBenefits(ctx, id, CleanBenefits(in.Benefits)); err != nil {
		return nil, err
	}

	if image != nil {
		url, err := s.storage.Upload(ctx, s.storage.Buckets().ServiceBucket,
			storage.ServiceImageKey(id, image.Filename, s.now()), image.Body, image.Size, image.ContentType)
		if err != nil {
			return nil, err
		}
		if err := s.catalog.SetImage(ctx, id, url); err != nil {
			return nil, err
		}
	}

	log.Info().Int64("service_id", id).Bool("created", in.ID == 0).Msg("Service saved")
	return s.Get(ctx, id)
}

// Delete removes the service and its benefits.
func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	return s.catalog.Delete(ctx, id)
}

// CleanBenefits trims labels and drops empty ones, keeping order.
func CleanBenefits(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

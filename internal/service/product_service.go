package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/chakrahealing/admin_api/internal/listing"
	"github.com/chakrahealing/admin_api/internal/models"
	"github.com/chakrahealing/admin_api/internal/repository"
	"github.com/chakrahealing/admin_api/internal/storage"
	"github.com/chakrahealing/admin_api/internal/utils"
)

// ProductInput is the product form. Money is in paise.
type ProductInput struct {
	ID             int64          `json:"id"`
	Name           string         `json:"name" validate:"required,max=200"`
	Slug           string         `json:"slug" validate:"max=200"`
	ShortDesc      *string        `json:"shortDesc" validate:"omitempty,max=500"`
	LongDesc       *string        `json:"longDesc"`
	Description    *string        `json:"description"`
	PricePaise     int64          `json:"pricePaise" validate:"gte=0"`
	MRPPaise       int64          `json:"mrpPaise" validate:"gte=0"`
	CompareAtPaise int64          `json:"compareAtPaise" validate:"gte=0"`
	SKU            *string        `json:"sku" validate:"omitempty,max=64"`
	TrackInventory bool           `json:"trackInventory"`
	Stock          int            `json:"stock"`
	IsActive       bool           `json:"isActive"`
	MetaColors     []string       `json:"metaColors"`
	KeepImageIDs   []int64        `json:"keepImageIds"`
	Variants       []VariantInput `json:"variants" validate:"dive"`
}

// VariantInput is one row of the variants editor. A zero ID inserts a new variant.
type VariantInput struct {
	ID         int64   `json:"id"`
	SKU        *string `json:"sku" validate:"omitempty,max=64"`
	ColorLabel *string `json:"colorLabel" validate:"omitempty,max=64"`
	ColorValue *string `json:"colorValue" validate:"omitempty,max=64"`
	SizeLabel  *string `json:"sizeLabel" validate:"omitempty,max=64"`
	PricePaise *int64  `json:"pricePaise" validate:"omitempty,gte=0"`
	MRPPaise   int64   `json:"mrpPaise" validate:"gte=0"`
	Stock      int     `json:"stock"`
	ImageURL   *string `json:"imageUrl"`
}

// ProductService backs the products page.
type ProductService struct {
	products ProductStore
	storage  ObjectStore
	limit    int
	now      func() time.Time
}

// NewProductService constructs a ProductService.
func NewProductService(products ProductStore, storage ObjectStore, limit int) *ProductService {
	return &ProductService{products: products, storage: storage, limit: limit, now: time.Now}
}

// List returns one page of non-deleted products with their sold counts.
func (s *ProductService) List(ctx context.Context, q listing.Query) (listing.Page[models.Product], error) {
	products, err := s.products.GetAllAdmin(ctx, s.limit)
	if err != nil {
		return listing.Page[models.Product]{}, err
	}
	if err := s.attachSold(ctx, products); err != nil {
		return listing.Page[models.Product]{}, err
	}
	return listing.Apply(products, q, listing.ProductMatch(q)), nil
}

// Get returns one product with images, variants and sold count.
func (s *ProductService) Get(ctx context.Context, id int64) (*models.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	one := []models.Product{*p}
	if err := s.attachSold(ctx, one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

func (s *ProductService) attachSold(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]int64, len(products))
	for i := range products {
		ids[i] = products[i].ID
	}
	sold, err := s.products.SoldCounts(ctx, ids)
	if err != nil {
		return err
	}
	for i := range products {
		products[i].Sold = sold[products[i].ID]
	}
	return nil
}

// Save inserts or updates a product, then rewrites its images and variants.
// Existing images in KeepImageIDs are kept, uploads fill the remaining room
// up to four, sort orders are rewritten 0..N and the primary image is the
// first of them.
func (s *ProductService) Save(ctx context.Context, in ProductInput, uploads []Upload) (*models.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	slug := Slugify(in.Slug)
	if slug == "" {
		slug = Slugify(in.Name)
	}
	if slug == "" {
		return nil, fmt.Errorf("%w: slug is required", utils.ErrInvalidInput)
	}

	row, err := buildProductRow(in, slug)
	if err != nil {
		return nil, err
	}

	var existing *models.Product
	productID := in.ID
	if productID == 0 {
		if productID, err = s.products.Create(ctx, row); err != nil {
			return nil, err
		}
	} else {
		if existing, err = s.products.GetByID(ctx, productID); err != nil {
			return nil, err
		}
		row.ID = productID
		if err := s.products.Update(ctx, row); err != nil {
			return nil, err
		}
	}

	kept := keptImages(existing, in.KeepImageIDs)
	room := models.MaxProductImages - len(kept)
	if room < 0 {
		room = 0
	}
	if len(uploads) > room {
		log.Warn().Int64("product_id", productID).Int("uploads", len(uploads)).Int("room", room).Msg("Dropping product images beyond the limit")
		uploads = uploads[:room]
	}

	uploaded := make([]string, 0, len(uploads))
	for _, u := range uploads {
		url, err := s.storage.Upload(ctx, s.storage.Buckets().ProductBucket,
			storage.ProductImageKey(productID, u.Filename), u.Body, u.Size, u.ContentType)
		if err != nil {
			return nil, err
		}
		uploaded = append(uploaded, url)
	}

	plan := PlanProductMedia(existing, in, kept, uploaded, GenerateSKUBase(in.SKU, slug), s.now())
	if err := s.products.ApplyMedia(ctx, productID, plan); err != nil {
		log.Error().Err(err).Int64("product_id", productID).Msg("Failed to save product media")
		return nil, err
	}

	log.Info().Int64("product_id", productID).Bool("created", in.ID == 0).Int("images", len(kept)+len(uploaded)).Msg("Product saved")
	return s.Get(ctx, productID)
}

// Delete soft-deletes a product.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	return s.products.SoftDelete(ctx, id)
}

func buildProductRow(in ProductInput, slug string) (*models.Product, error) {
	colors := make([]string, 0, len(in.MetaColors))
	for _, c := range in.MetaColors {
		if c = strings.TrimSpace(c); c != "" {
			colors = append(colors, c)
		}
	}
	meta, err := json.Marshal(map[string][]string{"colors": colors})
	if err != nil {
		return nil, err
	}

	stock := in.Stock
	if stock < 0 {
		stock = 0
	}
	track := in.TrackInventory
	active := in.IsActive

	return &models.Product{
		Name:           in.Name,
		Slug:           slug,
		ShortDesc:      in.ShortDesc,
		LongDesc:       in.LongDesc,
		Description:    in.Description,
		PricePaise:     in.PricePaise,
		MRPPaise:       positiveOrNil(in.MRPPaise),
		CompareAtPaise: positiveOrNil(in.CompareAtPaise),
		SKU:            in.SKU,
		TrackInventory: &track,
		Stock:          &stock,
		IsActive:       &active,
		Meta:           models.JSONB(meta),
	}, nil
}

// keptImages returns the existing images selected for keeping, in their
// current sort order.
func keptImages(existing *models.Product, keepIDs []int64) []models.ProductImage {
	if existing == nil {
		return nil
	}
	keep := make(map[int64]struct{}, len(keepIDs))
	for _, id := range keepIDs {
		keep[id] = struct{}{}
	}
	out := make([]models.ProductImage, 0, len(existing.Images))
	for _, img := range existing.Images {
		if _, ok := keep[img.ID]; ok {
			out = append(out, img)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out
}

// PlanProductMedia computes the image and variant writes of a save.
func PlanProductMedia(existing *models.Product, in ProductInput, kept []models.ProductImage, uploaded []string, skuBase string, now time.Time) repository.ProductMediaPlan {
	var plan repository.ProductMediaPlan

	keptIDs := make(map[int64]struct{}, len(kept))
	for i, img := range kept {
		keptIDs[img.ID] = struct{}{}
		plan.KeepImages = append(plan.KeepImages, repository.ImageSort{ID: img.ID, SortOrder: i})
	}

	name := in.Name
	for i, url := range uploaded {
		plan.NewImages = append(plan.NewImages, models.ProductImage{URL: url, Alt: &name, SortOrder: len(kept) + i})
	}

	switch {
	case len(kept) > 0:
		plan.PrimaryImageURL = &kept[0].URL
	case len(uploaded) > 0:
		plan.PrimaryImageURL = &uploaded[0]
	case existing != nil:
		plan.PrimaryImageURL = existing.PrimaryImageURL
	}

	current := make(map[int64]struct{}, len(in.Variants))
	for _, v := range in.Variants {
		if v.ID != 0 {
			current[v.ID] = struct{}{}
		}
	}

	if existing != nil {
		for _, img := range existing.Images {
			if _, ok := keptIDs[img.ID]; !ok {
				plan.DeleteImageIDs = append(plan.DeleteImageIDs, img.ID)
			}
		}
		for _, v := range existing.Variants {
			if _, ok := current[v.ID]; !ok {
				plan.DeleteVariantIDs = append(plan.DeleteVariantIDs, v.ID)
			}
		}
	}

	for i, v := range in.Variants {
		sku := strings.TrimSpace(models.StrValue(v.SKU))
		if sku == "" {
			// Offset by position so variants saved in the same millisecond differ.
			sku = GenerateVariantSKU(skuBase, models.StrValue(v.ColorLabel), models.StrValue(v.SizeLabel), now.Add(time.Duration(i)*time.Millisecond))
		}
		price := in.PricePaise
		if v.PricePaise != nil {
			price = *v.PricePaise
		}
		plan.Variants = append(plan.Variants, models.ProductVariant{
			ID:         v.ID,
			SKU:        &sku,
			ColorLabel: v.ColorLabel,
			ColorValue: v.ColorValue,
			SizeLabel:  v.SizeLabel,
			PricePaise: price,
			MRPPaise:   positiveOrNil(v.MRPPaise),
			Stock:      v.Stock,
			ImageURL:   v.ImageURL,
		})
	}
	return plan
}

var (
	nonSlug     = regexp.MustCompile(`[^a-z0-9]+`)
	nonSKUChars = regexp.MustCompile(`[^A-Z0-9]`)
)

// Slugify lowercases s and joins alphanumeric runs with dashes.
func Slugify(s string) string {
	s = nonSlug.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
	return strings.Trim(s, "-")
}

// GenerateSKUBase returns the product SKU uppercased, or up to ten
// alphanumerics of the slug, or PRODUCT.
func GenerateSKUBase(sku *string, slug string) string {
	if base := strings.TrimSpace(models.StrValue(sku)); base != "" {
		return strings.ToUpper(base)
	}
	raw := nonSKUChars.ReplaceAllString(strings.ToUpper(slug), "")
	if len(raw) > 10 {
		raw = raw[:10]
	}
	if raw == "" {
		return "PRODUCT"
	}
	return raw
}

// GenerateVariantSKU builds BASE-CLR-SZ-NNNNN where NNNNN are the last five
// digits of the unix millisecond clock.
func GenerateVariantSKU(base, color, size string, now time.Time) string {
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	if len(ms) > 5 {
		ms = ms[len(ms)-5:]
	}
	return strings.Join([]string{base, skuPart(color, "CLR"), skuPart(size, "SZ"), ms}, "-")
}

func skuPart(s, fallback string) string {
	s = nonSKUChars.ReplaceAllString(strings.ToUpper(s), "")
	if len(s) > 4 {
		s = s[:4]
	}
	if s == "" {
		return fallback
	}
	return s
}

func positiveOrNil(v int64) *int64 {
	if v <= 0 {
		return nil
	}
	return &v
}

package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/chakrahealing/admin_api/internal/database"
	"github.com/chakrahealing/admin_api/internal/models"
)

const productColumns = `
	id, slug, name, short_desc, long_desc, description, price_paise, mrp_paise, compare_at_paise,
	sku, track_inventory, stock, reserved, rating_avg, rating_count, is_active, primary_image_url,
	meta, created_at, updated_at, deleted_at`

// ImageSort assigns a new sort order to a kept image.
type ImageSort struct {
	ID        int64
	SortOrder int
}

// ProductMediaPlan describes how a save rewrites images and variants.
type ProductMediaPlan struct {
	DeleteImageIDs   []int64
	KeepImages       []ImageSort
	NewImages        []models.ProductImage
	PrimaryImageURL  *string
	DeleteVariantIDs []int64
	Variants         []models.ProductVariant
}

// ProductRepository reads and writes products with their images and variants.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetAllAdmin returns the newest non-deleted products with images and variants.
func (r *ProductRepository) GetAllAdmin(ctx context.Context, limit int) ([]models.Product, error) {
	var products []models.Product
	query := `SELECT ` + productColumns + ` FROM products
		WHERE deleted_at IS NULL ORDER BY created_at DESC LIMIT $1`
	if err := r.db.SelectContext(ctx, &products, query, limit); err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	if err := r.loadRelations(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID returns one non-deleted product with its relations.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND deleted_at IS NULL`
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		return nil, notFound(err)
	}
	products := []models.Product{p}
	if err := r.loadRelations(ctx, products); err != nil {
		return nil, err
	}
	return &products[0], nil
}

func (r *ProductRepository) loadRelations(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]int64, len(products))
	index := make(map[int64]int, len(products))
	for i := range products {
		ids[i] = products[i].ID
		index[products[i].ID] = i
		products[i].Images = []models.ProductImage{}
		products[i].Variants = []models.ProductVariant{}
	}

	var images []models.ProductImage
	if err := selectIn(ctx, r.db, &images, `
		SELECT id, product_id, url, alt, COALESCE(sort_order, 0) AS sort_order
		FROM product_images WHERE product_id IN (?) ORDER BY sort_order ASC, id ASC`, ids); err != nil {
		return fmt.Errorf("select product images: %w", err)
	}
	for _, img := range images {
		i := index[img.ProductID]
		products[i].Images = append(products[i].Images, img)
	}

	var variants []models.ProductVariant
	if err := selectIn(ctx, r.db, &variants, `
		SELECT id, product_id, sku, color_label, color_value, size_label, price_paise, mrp_paise,
			COALESCE(stock, 0) AS stock, image_url, created_at
		FROM product_variants WHERE product_id IN (?) ORDER BY id ASC`, ids); err != nil {
		return fmt.Errorf("select product variants: %w", err)
	}
	for _, v := range variants {
		i := index[v.ProductID]
		products[i].Variants = append(products[i].Variants, v)
	}
	return nil
}

// SoldCounts sums ordered quantities per product over orders whose payment status is paid.
func (r *ProductRepository) SoldCounts(ctx context.Context, productIDs []int64) (map[int64]int, error) {
	out := make(map[int64]int, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}

	var rows []models.ProductSoldCount
	if err := selectIn(ctx, r.db, &rows, `
		SELECT oi.product_id, COALESCE(SUM(oi.quantity), 0)::INT AS quantity
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE oi.product_id IN (?) AND LOWER(COALESCE(o.payment_status, '')) = 'paid'
		GROUP BY oi.product_id`, productIDs); err != nil {
		return nil, fmt.Errorf("select sold counts: %w", err)
	}
	for _, row := range rows {
		out[row.ProductID] = row.Quantity
	}
	return out, nil
}

// Create inserts the product row and returns its id.
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) (int64, error) {
	var id int64
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO products (
			name, slug, short_desc, long_desc, description, price_paise, mrp_paise, compare_at_paise,
			sku, track_inventory, stock, is_active, meta, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
		RETURNING id`,
		p.Name, p.Slug, nullString(p.ShortDesc), nullString(p.LongDesc), nullString(p.Description),
		p.PricePaise, p.MRPPaise, p.CompareAtPaise, nullString(p.SKU), p.TrackInventory, p.Stock,
		p.IsActive, p.Meta,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}
	return id, nil
}

// Update rewrites the product row.
func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	return expectAffected(r.db.ExecContext(ctx, `
		UPDATE products SET
			name = $1, slug = $2, short_desc = $3, long_desc = $4, description = $5,
			price_paise = $6, mrp_paise = $7, compare_at_paise = $8, sku = $9,
			track_inventory = $10, stock = $11, is_active = $12, meta = $13, updated_at = NOW()
		WHERE id = $14 AND deleted_at IS NULL`,
		p.Name, p.Slug, nullString(p.ShortDesc), nullString(p.LongDesc), nullString(p.Description),
		p.PricePaise, p.MRPPaise, p.CompareAtPaise, nullString(p.SKU), p.TrackInventory, p.Stock,
		p.IsActive, p.Meta, p.ID,
	))
}

// ApplyMedia rewrites images, primary image and variants of a product in one transaction.
func (r *ProductRepository) ApplyMedia(ctx context.Context, productID int64, plan ProductMediaPlan) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if len(plan.DeleteImageIDs) > 0 {
			query, args, err := sqlx.In(`DELETE FROM product_images WHERE product_id = ? AND id IN (?)`, productID, plan.DeleteImageIDs)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
				return fmt.Errorf("delete images: %w", err)
			}
		}

		for _, k := range plan.KeepImages {
			if _, err := tx.ExecContext(ctx,
				`UPDATE product_images SET sort_order = $1 WHERE id = $2 AND product_id = $3`,
				k.SortOrder, k.ID, productID); err != nil {
				return fmt.Errorf("reorder image %d: %w", k.ID, err)
			}
		}

		for _, img := range plan.NewImages {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO product_images (product_id, url, alt, sort_order) VALUES ($1, $2, $3, $4)`,
				productID, img.URL, nullString(img.Alt), img.SortOrder); err != nil {
				return fmt.Errorf("insert image: %w", err)
			}
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE products SET primary_image_url = $1, updated_at = NOW() WHERE id = $2`,
			plan.PrimaryImageURL, productID); err != nil {
			return fmt.Errorf("set primary image: %w", err)
		}

		if len(plan.DeleteVariantIDs) > 0 {
			query, args, err := sqlx.In(`DELETE FROM product_variants WHERE product_id = ? AND id IN (?)`, productID, plan.DeleteVariantIDs)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
				return fmt.Errorf("delete variants: %w", err)
			}
		}

		for _, v := range plan.Variants {
			if v.ID != 0 {
				if _, err := tx.ExecContext(ctx, `
					UPDATE product_variants SET
						sku = $1, color_label = $2, color_value = $3, size_label = $4,
						price_paise = $5, mrp_paise = $6, stock = $7, image_url = $8
					WHERE id = $9 AND product_id = $10`,
					nullString(v.SKU), nullString(v.ColorLabel), nullString(v.ColorValue), nullString(v.SizeLabel),
					v.PricePaise, v.MRPPaise, v.Stock, nullString(v.ImageURL), v.ID, productID); err != nil {
					return fmt.Errorf("update variant %d: %w", v.ID, err)
				}
				continue
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO product_variants (
					product_id, sku, color_label, color_value, size_label, price_paise, mrp_paise, stock, image_url
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				productID, nullString(v.SKU), nullString(v.ColorLabel), nullString(v.ColorValue), nullString(v.SizeLabel),
				v.PricePaise, v.MRPPaise, v.Stock, nullString(v.ImageURL)); err != nil {
				return fmt.Errorf("insert variant: %w", err)
			}
		}
		return nil
	})
}

// SoftDelete hides a product from the admin listing and deactivates it.
func (r *ProductRepository) SoftDelete(ctx context.Context, id int64) error {
	return expectAffected(r.db.ExecContext(ctx, `
		UPDATE products SET deleted_at = NOW(), is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`, id))
}

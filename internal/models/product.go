package models

import (
	"fmt"
	"time"
)

// MaxProductImages is the number of images a product can carry.
const MaxProductImages = 4

// LowStockThreshold is the stock level below which a tracked product is flagged.
const LowStockThreshold = 5

// StockStatus is the inventory label shown for a product.
type StockStatus string

const (
	StockActive     StockStatus = "Active"
	StockLow        StockStatus = "Low Stock"
	StockOutOfStock StockStatus = "Out of Stock"
)

// ProductImage is one ordered image of a product. SortOrder 0 is the primary image.
type ProductImage struct {
	ID        int64   `db:"id" json:"id"`
	ProductID int64   `db:"product_id" json:"productId"`
	URL       string  `db:"url" json:"url"`
	Alt       *string `db:"alt" json:"alt,omitempty"`
	SortOrder int     `db:"sort_order" json:"sortOrder"`
}

// ProductVariant is an independently priced and stocked colour/size combination.
type ProductVariant struct {
	ID         int64     `db:"id" json:"id"`
	ProductID  int64     `db:"product_id" json:"productId"`
	SKU        *string   `db:"sku" json:"sku,omitempty"`
	ColorLabel *string   `db:"color_label" json:"colorLabel,omitempty"`
	ColorValue *string   `db:"color_value" json:"colorValue,omitempty"`
	SizeLabel  *string   `db:"size_label" json:"sizeLabel,omitempty"`
	PricePaise int64     `db:"price_paise" json:"pricePaise"`
	MRPPaise   *int64    `db:"mrp_paise" json:"mrpPaise,omitempty"`
	Stock      int       `db:"stock" json:"stock"`
	ImageURL   *string   `db:"image_url" json:"imageUrl,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// Product is a catalogue product with images, variants and a derived sold count.
type Product struct {
	ID              int64      `db:"id" json:"id"`
	Slug            string     `db:"slug" json:"slug"`
	Name            string     `db:"name" json:"name"`
	ShortDesc       *string    `db:"short_desc" json:"shortDesc,omitempty"`
	LongDesc        *string    `db:"long_desc" json:"longDesc,omitempty"`
	Description     *string    `db:"description" json:"description,omitempty"`
	PricePaise      int64      `db:"price_paise" json:"pricePaise"`
	MRPPaise        *int64     `db:"mrp_paise" json:"mrpPaise,omitempty"`
	CompareAtPaise  *int64     `db:"compare_at_paise" json:"compareAtPaise,omitempty"`
	SKU             *string    `db:"sku" json:"sku,omitempty"`
	TrackInventory  *bool      `db:"track_inventory" json:"trackInventory,omitempty"`
	Stock           *int       `db:"stock" json:"stock,omitempty"`
	Reserved        *int       `db:"reserved" json:"reserved,omitempty"`
	RatingAvg       *float64   `db:"rating_avg" json:"ratingAvg,omitempty"`
	RatingCount     *int       `db:"rating_count" json:"ratingCount,omitempty"`
	IsActive        *bool      `db:"is_active" json:"isActive,omitempty"`
	PrimaryImageURL *string    `db:"primary_image_url" json:"primaryImageUrl,omitempty"`
	Meta            JSONB      `db:"meta" json:"meta"`
	CreatedAt       time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updatedAt"`
	DeletedAt       *time.Time `db:"deleted_at" json:"deletedAt,omitempty"`

	Images   []ProductImage   `db:"-" json:"images"`
	Variants []ProductVariant `db:"-" json:"variants"`
	Sold     int              `db:"-" json:"sold"`
}

// StockStatus derives the inventory label. Untracked inventory is unlimited.
func (p *Product) StockStatus() StockStatus {
	if p.TrackInventory != nil && !*p.TrackInventory {
		return StockActive
	}
	stock := 0
	if p.Stock != nil {
		stock = *p.Stock
	}
	switch {
	case stock <= 0:
		return StockOutOfStock
	case stock < LowStockThreshold:
		return StockLow
	default:
		return StockActive
	}
}

// DisplayID renders the product id as P001.
func (p *Product) DisplayID() string {
	return fmt.Sprintf("P%03d", p.ID)
}

// ProductSoldCount is the quantity sold of one product across paid orders.
type ProductSoldCount struct {
	ProductID int64 `db:"product_id"`
	Quantity  int   `db:"quantity"`
}

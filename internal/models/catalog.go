package models

import "time"

// ServiceBenefit is one bullet on a service page.
type ServiceBenefit struct {
	ID        int64  `db:"id" json:"id"`
	ServiceID int64  `db:"service_id" json:"serviceId"`
	Label     string `db:"label" json:"label"`
	SortOrder int    `db:"sort_order" json:"sortOrder"`
}

// Service is a bookable healing service.
type Service struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Slug        string    `db:"slug" json:"slug"`
	Description *string   `db:"description" json:"description,omitempty"`
	ShortDesc   *string   `db:"short_desc" json:"shortDesc,omitempty"`
	LongDesc    *string   `db:"long_desc" json:"longDesc,omitempty"`
	PricePaise  int64     `db:"price_paise" json:"pricePaise"`
	IsActive    bool      `db:"is_active" json:"isActive"`
	ImagePath   *string   `db:"image_path" json:"imagePath,omitempty"`
	ImageURL    string    `db:"-" json:"imageUrl,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`

	Benefits []ServiceBenefit `db:"-" json:"benefits"`
}

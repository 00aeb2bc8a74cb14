package models

import "time"

// MaxBlogImages is the number of positional inline images on a post.
const MaxBlogImages = 4

// BlogAuthor is a post author.
type BlogAuthor struct {
	ID         string  `db:"id" json:"id"`
	Name       string  `db:"name" json:"name"`
	AvatarPath *string `db:"avatar_path" json:"avatarPath,omitempty"`
}

// BlogCategory is a post category.
type BlogCategory struct {
	ID    string `db:"id" json:"id"`
	Title string `db:"title" json:"title"`
	Slug  string `db:"slug" json:"slug"`
}

// BlogImage is an inline image at position 1..4.
type BlogImage struct {
	ID       int64   `db:"id" json:"id"`
	BlogID   int64   `db:"blog_id" json:"blogId"`
	Path     string  `db:"path" json:"path"`
	URL      string  `db:"-" json:"url"`
	Caption  *string `db:"caption" json:"caption,omitempty"`
	Position int     `db:"position" json:"position"`
}

// Blog is a blog post with its author, categories and inline images.
type Blog struct {
	ID           int64     `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	Slug         string    `db:"slug" json:"slug"`
	Excerpt      *string   `db:"excerpt" json:"excerpt,omitempty"`
	Body1        *string   `db:"body1" json:"body1,omitempty"`
	Body2        *string   `db:"body2" json:"body2,omitempty"`
	Body3        *string   `db:"body3" json:"body3,omitempty"`
	Body4        *string   `db:"body4" json:"body4,omitempty"`
	HeroPath     *string   `db:"hero_path" json:"heroPath,omitempty"`
	ThumbPath    *string   `db:"thumb_path" json:"thumbPath,omitempty"`
	ReadMinutes  int       `db:"read_minutes" json:"readMinutes"`
	Featured     bool      `db:"featured" json:"featured"`
	FeaturedRank *int      `db:"featured_rank" json:"featuredRank,omitempty"`
	Published    bool      `db:"published" json:"published"`
	AuthorID     *string   `db:"author_id" json:"authorId,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`

	HeroURL    string         `db:"-" json:"heroUrl,omitempty"`
	ThumbURL   string         `db:"-" json:"thumbUrl,omitempty"`
	Author     *BlogAuthor    `db:"-" json:"author,omitempty"`
	Categories []BlogCategory `db:"-" json:"categories"`
	Images     []BlogImage    `db:"-" json:"images"`
}

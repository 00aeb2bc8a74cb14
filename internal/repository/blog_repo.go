package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/chakrahealing/admin_api/internal/database"
	"github.com/chakrahealing/admin_api/internal/models"
)

const blogColumns = `
	id, title, slug, excerpt, body1, body2, body3, body4, hero_path, thumb_path, read_minutes,
	featured, featured_rank, published, author_id, created_at, updated_at`

// BlogRepository reads and writes blog posts, authors and categories.
type BlogRepository struct {
	db *sqlx.DB
}

// NewBlogRepository creates a new BlogRepository.
func NewBlogRepository(db *sqlx.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

// GetAllAdmin returns every post, newest first, with author and categories.
func (r *BlogRepository) GetAllAdmin(ctx context.Context) ([]models.Blog, error) {
	var blogs []models.Blog
	if err := r.db.SelectContext(ctx, &blogs, `SELECT `+blogColumns+` FROM blogs ORDER BY created_at DESC`); err != nil {
		return nil, fmt.Errorf("select blogs: %w", err)
	}
	if err := r.loadRelations(ctx, blogs, false); err != nil {
		return nil, err
	}
	return blogs, nil
}

// GetByID returns one post with author, categories and positional images.
func (r *BlogRepository) GetByID(ctx context.Context, id int64) (*models.Blog, error) {
	var b models.Blog
	if err := r.db.GetContext(ctx, &b, `SELECT `+blogColumns+` FROM blogs WHERE id = $1`, id); err != nil {
		return nil, notFound(err)
	}
	blogs := []models.Blog{b}
	if err := r.loadRelations(ctx, blogs, true); err != nil {
		return nil, err
	}
	return &blogs[0], nil
}

func (r *BlogRepository) loadRelations(ctx context.Context, blogs []models.Blog, withImages bool) error {
	if len(blogs) == 0 {
		return nil
	}

	ids := make([]int64, len(blogs))
	authorIDs := make([]*string, len(blogs))
	index := make(map[int64]int, len(blogs))
	for i := range blogs {
		ids[i] = blogs[i].ID
		authorIDs[i] = blogs[i].AuthorID
		index[blogs[i].ID] = i
		blogs[i].Categories = []models.BlogCategory{}
		blogs[i].Images = []models.BlogImage{}
	}

	if authors := uniqueStrings(authorIDs); len(authors) > 0 {
		var rows []models.BlogAuthor
		if err := selectIn(ctx, r.db, &rows, `SELECT id, name, avatar_path FROM blog_authors WHERE id IN (?)`, authors); err != nil {
			return fmt.Errorf("select blog authors: %w", err)
		}
		byID := make(map[string]*models.BlogAuthor, len(rows))
		for i := range rows {
			byID[rows[i].ID] = &rows[i]
		}
		for i := range blogs {
			if blogs[i].AuthorID != nil {
				blogs[i].Author = byID[*blogs[i].AuthorID]
			}
		}
	}

	var cats []struct {
		BlogID int64 `db:"blog_id"`
		models.BlogCategory
	}
	if err := selectIn(ctx, r.db, &cats, `
		SELECT m.blog_id, c.id, c.title, c.slug
		FROM blog_category_map m JOIN blog_categories c ON c.id = m.category_id
		WHERE m.blog_id IN (?) ORDER BY c.title`, ids); err != nil {
		return fmt.Errorf("select blog categories: %w", err)
	}
	for _, c := range cats {
		i := index[c.BlogID]
		blogs[i].Categories = append(blogs[i].Categories, c.BlogCategory)
	}

	if !withImages {
		return nil
	}

	var images []models.BlogImage
	if err := selectIn(ctx, r.db, &images, `
		SELECT id, blog_id, path, caption, position FROM blog_images
		WHERE blog_id IN (?) ORDER BY position`, ids); err != nil {
		return fmt.Errorf("select blog images: %w", err)
	}
	for _, img := range images {
		i := index[img.BlogID]
		blogs[i].Images = append(blogs[i].Images, img)
	}
	return nil
}

// Upsert inserts a post when ID is zero, otherwise updates it. It returns the id.
func (r *BlogRepository) Upsert(ctx context.Context, b *models.Blog) (int64, error) {
	args := []interface{}{
		b.Title, b.Slug, nullString(b.Excerpt), nullString(b.Body1), nullString(b.Body2),
		nullString(b.Body3), nullString(b.Body4), b.ReadMinutes, b.Featured, b.FeaturedRank,
		b.Published, nullString(b.AuthorID),
	}

	if b.ID == 0 {
		var id int64
		err := r.db.QueryRowxContext(ctx, `
			INSERT INTO blogs (title, slug, excerpt, body1, body2, body3, body4, read_minutes,
				featured, featured_rank, published, author_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`, args...).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("insert blog: %w", err)
		}
		return id, nil
	}

	args = append(args, b.ID)
	if err := expectAffected(r.db.ExecContext(ctx, `
		UPDATE blogs SET title = $1, slug = $2, excerpt = $3, body1 = $4, body2 = $5, body3 = $6,
			body4 = $7, read_minutes = $8, featured = $9, featured_rank = $10, published = $11,
			author_id = $12, updated_at = NOW()
		WHERE id = $13`, args...)); err != nil {
		return 0, err
	}
	return b.ID, nil
}

// SetCovers stores the hero and thumbnail paths.
func (r *BlogRepository) SetCovers(ctx context.Context, blogID int64, heroPath, thumbPath *string) error {
	return expectAffected(r.db.ExecContext(ctx,
		`UPDATE blogs SET hero_path = $1, thumb_path = $2, updated_at = NOW() WHERE id = $3`,
		nullString(heroPath), nullString(thumbPath), blogID))
}

// ReplaceImages deletes the post's positional images and inserts images.
func (r *BlogRepository) ReplaceImages(ctx context.Context, blogID int64, images []models.BlogImage) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM blog_images WHERE blog_id = $1`, blogID); err != nil {
			return fmt.Errorf("delete blog images: %w", err)
		}
		for _, img := range images {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO blog_images (blog_id, path, caption, position) VALUES ($1, $2, $3, $4)`,
				blogID, img.Path, nullString(img.Caption), img.Position); err != nil {
				return fmt.Errorf("insert blog image: %w", err)
			}
		}
		return nil
	})
}

// ReplaceCategories rewrites the post's category mapping.
func (r *BlogRepository) ReplaceCategories(ctx context.Context, blogID int64, categoryIDs []string) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM blog_category_map WHERE blog_id = $1`, blogID); err != nil {
			return fmt.Errorf("delete category map: %w", err)
		}
		for _, cid := range categoryIDs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO blog_category_map (blog_id, category_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				blogID, cid); err != nil {
				return fmt.Errorf("insert category map: %w", err)
			}
		}
		return nil
	})
}

// Delete removes a post. Images and category mappings cascade.
func (r *BlogRepository) Delete(ctx context.Context, id int64) error {
	return expectAffected(r.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = $1`, id))
}

// ListAuthors returns all authors ordered by name.
func (r *BlogRepository) ListAuthors(ctx context.Context) ([]models.BlogAuthor, error) {
	authors := []models.BlogAuthor{}
	if err := r.db.SelectContext(ctx, &authors, `SELECT id, name, avatar_path FROM blog_authors ORDER BY name`); err != nil {
		return nil, fmt.Errorf("select authors: %w", err)
	}
	return authors, nil
}

// ListCategories returns all categories ordered by title.
func (r *BlogRepository) ListCategories(ctx context.Context) ([]models.BlogCategory, error) {
	cats := []models.BlogCategory{}
	if err := r.db.SelectContext(ctx, &cats, `SELECT id, title, slug FROM blog_categories ORDER BY title`); err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	return cats, nil
}

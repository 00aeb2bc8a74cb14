package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/chakrahealing/admin_api/internal/listing"
	"github.com/chakrahealing/admin_api/internal/models"
	"github.com/chakrahealing/admin_api/internal/storage"
	"github.com/chakrahealing/admin_api/internal/utils"
)

// BlogInput is the blog editor form.
type BlogInput struct {
	ID           int64            `json:"id"`
	Title        string           `json:"title" validate:"required,max=200"`
	Slug         string           `json:"slug" validate:"max=200"`
	Excerpt      *string          `json:"excerpt" validate:"omitempty,max=1000"`
	Body1        *string          `json:"body1"`
	Body2        *string          `json:"body2"`
	Body3        *string          `json:"body3"`
	Body4        *string          `json:"body4"`
	ReadMinutes  int              `json:"readMinutes" validate:"gte=0,lte=600"`
	Featured     bool             `json:"featured"`
	FeaturedRank *int             `json:"featuredRank"`
	Published    bool             `json:"published"`
	AuthorID     *string          `json:"authorId" validate:"omitempty,uuid"`
	HeroPath     *string          `json:"heroPath"`
	ThumbPath    *string          `json:"thumbPath"`
	CategoryIDs  []string         `json:"categoryIds" validate:"dive,uuid"`
	Images       []BlogImageInput `json:"images" validate:"max=4,dive"`
}

// BlogImageInput keeps or captions the inline image at a position.
type BlogImageInput struct {
	Position int     `json:"position" validate:"min=1,max=4"`
	Path     *string `json:"path"`
	Caption  *string `json:"caption" validate:"omitempty,max=300"`
}

// BlogUploads holds the files of one blog save. Inline maps position to file.
type BlogUploads struct {
	Hero   *Upload
	Thumb  *Upload
	Inline map[int]*Upload
}

// BlogService manages blog posts.
type BlogService struct {
	blogs   BlogStore
	storage ObjectStore
	now     func() time.Time
}

// NewBlogService constructs a BlogService.
func NewBlogService(blogs BlogStore, storage ObjectStore) *BlogService {
	return &BlogService{blogs: blogs, storage: storage, now: time.Now}
}

// List returns one page of posts with cover URLs resolved.
func (s *BlogService) List(ctx context.Context, q listing.Query) (listing.Page[models.Blog], error) {
	blogs, err := s.blogs.GetAllAdmin(ctx)
	if err != nil {
		return listing.Page[models.Blog]{}, err
	}
	for i := range blogs {
		s.resolve(&blogs[i])
	}
	return listing.Apply(blogs, q, listing.BlogMatch(q)), nil
}

// Get returns one post with its cover URL resolved.
func (s *BlogService) Get(ctx context.Context, id int64) (*models.Blog, error) {
	b, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.resolve(b)
	return b, nil
}

func (s *BlogService) resolve(b *models.Blog) {
	bucket := s.storage.Buckets().BlogBucket
	b.HeroURL = s.storage.ResolveImageURL(bucket, b.HeroPath)
	b.ThumbURL = s.storage.ResolveImageURL(bucket, b.ThumbPath)
	for i := range b.Images {
		b.Images[i].URL = s.storage.ResolveImageURL(bucket, &b.Images[i].Path)
	}
}

// Save upserts the post, uploads covers, replaces the positional images and
// the category mapping, then returns the stored post.
func (s *BlogService) Save(ctx context.Context, in BlogInput, files BlogUploads) (*models.Blog, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	slug := Slugify(in.Slug)
	if slug == "" {
		slug = Slugify(in.Title)
	}
	if slug == "" {
		return nil, fmt.Errorf("%w: slug is required", utils.ErrInvalidInput)
	}
	for pos := range files.Inline {
		if pos < 1 || pos > models.MaxBlogImages {
			return nil, fmt.Errorf("%w: image position %d", utils.ErrInvalidInput, pos)
		}
	}

	readMinutes := in.ReadMinutes
	if readMinutes == 0 {
		readMinutes = 3
	}
	blogID, err := s.blogs.Upsert(ctx, &models.Blog{
		ID:           in.ID,
		Title:        in.Title,
		Slug:         slug,
		Excerpt:      in.Excerpt,
		Body1:        in.Body1,
		Body2:        in.Body2,
		Body3:        in.Body3,
		Body4:        in.Body4,
		ReadMinutes:  readMinutes,
		Featured:     in.Featured,
		FeaturedRank: featuredRank(in),
		Published:    in.Published,
		AuthorID:     in.AuthorID,
	})
	if err != nil {
		return nil, err
	}
	prefix := fmt.Sprintf("%d", blogID)

	hero, thumb := in.HeroPath, in.ThumbPath
	if files.Hero != nil {
		if hero, err = s.upload(ctx, prefix, files.Hero); err != nil {
			return nil, err
		}
	}
	if files.Thumb != nil {
		if thumb, err = s.upload(ctx, prefix, files.Thumb); err != nil {
			return nil, err
		}
	}
	if err := s.blogs.SetCovers(ctx, blogID, hero, thumb); err != nil {
		return nil, err
	}

	byPos := make(map[int]BlogImageInput, models.MaxBlogImages)
	for _, img := range in.Images {
		byPos[img.Position] = img
	}
	images := make([]models.BlogImage, 0, models.MaxBlogImages)
	for pos := 1; pos <= models.MaxBlogImages; pos++ {
		img := byPos[pos]
		path := img.Path
		if f := files.Inline[pos]; f != nil {
			if path, err = s.upload(ctx, fmt.Sprintf("%s/pos-%d", prefix, pos), f); err != nil {
				return nil, err
			}
		}
		if strings.TrimSpace(models.StrValue(path)) == "" {
			continue
		}
		images = append(images, models.BlogImage{BlogID: blogID, Path: *path, Caption: img.Caption, Position: pos})
	}
	if err := s.blogs.ReplaceImages(ctx, blogID, images); err != nil {
		return nil, err
	}

	if err := s.blogs.ReplaceCategories(ctx, blogID, in.CategoryIDs); err != nil {
		return nil, err
	}

	log.Info().Int64("blog_id", blogID).Bool("created", in.ID == 0).Int("images", len(images)).Msg("Blog saved")
	return s.Get(ctx, blogID)
}

// upload stores f under blogs/<prefix>/ and returns the relative path.
func (s *BlogService) upload(ctx context.Context, prefix string, f *Upload) (*string, error) {
	key := storage.BlogImageKey(prefix, f.Filename, s.now())
	if _, err := s.storage.Upload(ctx, s.storage.Buckets().BlogBucket, key, f.Body, f.Size, f.ContentType); err != nil {
		return nil, err
	}
	return &key, nil
}

func featuredRank(in BlogInput) *int {
	if !in.Featured {
		return nil
	}
	return in.FeaturedRank
}

// Delete removes a post.
func (s *BlogService) Delete(ctx context.Context, id int64) error {
	return s.blogs.Delete(ctx, id)
}

// Authors lists the authors offered in the post editor.
func (s *BlogService) Authors(ctx context.Context) ([]models.BlogAuthor, error) {
	return s.blogs.ListAuthors(ctx)
}

// Categories lists the categories offered in the post editor.
func (s *BlogService) Categories(ctx context.Context) ([]models.BlogCategory, error) {
	return s.blogs.ListCategories(ctx)
}

package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/chakrahealing/admin_api/internal/service"
	"github.com/chakrahealing/admin_api/internal/utils"
)

// Inline blog images are uploaded as image_1 .. image_4.
const maxBlogImages = 4

// BlogHandler handles the blog editor.
type BlogHandler struct {
	blogService *service.BlogService
}

// NewBlogHandler constructs a BlogHandler.
func NewBlogHandler(blogService *service.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// ListBlogs handles GET /v1/admin/blogs
func (h *BlogHandler) ListBlogs(c *gin.Context) {
	page, err := h.blogService.List(c.Request.Context(), listQuery(c))
	if err != nil {
		utils.RespondError(c, err, "Failed to retrieve blogs")
		return
	}
	respondPage(c, "Blogs retrieved", page)
}

// GetBlog handles GET /v1/admin/blogs/:id
func (h *BlogHandler) GetBlog(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	blog, err := h.blogService.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err, "Failed to retrieve blog")
		return
	}
	utils.Success(c, 200, "Blog retrieved", blog)
}

// CreateBlog handles POST /v1/admin/blogs (multipart: data, hero, thumb, image_N)
func (h *BlogHandler) CreateBlog(c *gin.Context) {
	h.save(c, 0, 201, "Blog created")
}

// UpdateBlog handles PUT /v1/admin/blogs/:id
func (h *BlogHandler) UpdateBlog(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	h.save(c, id, 200, "Blog updated")
}

func (h *BlogHandler) save(c *gin.Context, id int64, status int, message string) {
	var in service.BlogInput
	if err := bindForm(c, &in); err != nil {
		invalidRequest(c, err)
		return
	}
	in.ID = id

	var closers []func()
	defer func() {
		for _, cl := range closers {
			cl()
		}
	}()
	open := func(field string) (*service.Upload, error) {
		u, cl, err := formFile(c, field)
		closers = append(closers, cl)
		return u, err
	}

	files := service.BlogUploads{Inline: map[int]*service.Upload{}}
	var err error
	if files.Hero, err = open("hero"); err != nil {
		invalidRequest(c, err)
		return
	}
	if files.Thumb, err = open("thumb"); err != nil {
		invalidRequest(c, err)
		return
	}
	for pos := 1; pos <= maxBlogImages; pos++ {
		u, err := open(fmt.Sprintf("image_%d", pos))
		if err != nil {
			invalidRequest(c, err)
			return
		}
		if u != nil {
			files.Inline[pos] = u
		}
	}

	blog, err := h.blogService.Save(c.Request.Context(), in, files)
	if err != nil {
		utils.RespondError(c, err, "Failed to save blog")
		return
	}
	utils.Success(c, status, message, blog)
}

// DeleteBlog handles DELETE /v1/admin/blogs/:id
func (h *BlogHandler) DeleteBlog(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.blogService.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err, "Failed to delete blog")
		return
	}
	utils.Success(c, 200, "Blog deleted", nil)
}

// ListAuthors handles GET /v1/admin/blogs/authors
func (h *BlogHandler) ListAuthors(c *gin.Context) {
	authors, err := h.blogService.Authors(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err, "Failed to retrieve authors")
		return
	}
	utils.Success(c, 200, "Authors retrieved", authors)
}

// ListCategories handles GET /v1/admin/blogs/categories
func (h *BlogHandler) ListCategories(c *gin.Context) {
	categories, err := h.blogService.Categories(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err, "Failed to retrieve categories")
		return
	}
	utils.Success(c, 200, "Categories retrieved", categories)
}

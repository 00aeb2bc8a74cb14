package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/chakrahealing/admin_api/internal/listing"
	"github.com/chakrahealing/admin_api/internal/service"
	"github.com/chakrahealing/admin_api/internal/utils"
)

const (
	maxPageSize = 100

	// multipart forms carry the JSON payload in this field next to the files.
	formDataField = "data"

	// maxFormMemory bounds the in-memory part of multipart parsing; larger
	// files spill to disk.
	maxFormMemory = 32 << 20
)

// parseID reads an int64 path parameter and writes a 400 when it is invalid.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		utils.Error(c, 400, "INVALID_ID", "Invalid "+name)
		return 0, false
	}
	return id, true
}

// listQuery reads the table controls from the query string.
func listQuery(c *gin.Context) listing.Query {
	q := listing.Query{
		Search:        strings.TrimSpace(c.Query("search")),
		Status:        strings.TrimSpace(c.Query("status")),
		PaymentStatus: strings.TrimSpace(c.Query("paymentStatus")),
		Tab:           strings.TrimSpace(c.Query("tab")),
		Page:          1,
		PageSize:      listing.DefaultPageSize,
	}
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		q.Page = v
	}
	if v, err := strconv.Atoi(c.Query("pageSize")); err == nil && v > 0 {
		q.PageSize = min(v, maxPageSize)
	}
	return q
}

// respondPage writes one table page with pagination metadata.
func respondPage[T any](c *gin.Context, message string, page listing.Page[T]) {
	utils.SuccessWithPagination(c, 200, message, page.Items, page.Page, page.PageSize, page.TotalItems)
}

// bindForm decodes the request into dst. Multipart requests carry the JSON in
// the "data" field; anything else is read as a JSON body.
func bindForm(c *gin.Context, dst interface{}) error {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return c.ShouldBindJSON(dst)
	}
	if err := c.Request.ParseMultipartForm(maxFormMemory); err != nil {
		return fmt.Errorf("parse multipart form: %w", err)
	}
	raw := c.Request.FormValue(formDataField)
	if raw == "" {
		return fmt.Errorf("missing %q field", formDataField)
	}
	return json.Unmarshal([]byte(raw), dst)
}

// formFiles opens every file under field. The returned closer releases them
// and must be called once the uploads are consumed.
func formFiles(c *gin.Context, field string) ([]service.Upload, func(), error) {
	if c.Request.MultipartForm == nil || c.Request.MultipartForm.File == nil {
		return nil, func() {}, nil
	}
	headers := c.Request.MultipartForm.File[field]

	uploads := make([]service.Upload, 0, len(headers))
	closers := make([]io.Closer, 0, len(headers))
	closeAll := func() {
		for _, cl := range closers {
			if err := cl.Close(); err != nil {
				log.Warn().Err(err).Msg("Failed to close uploaded file")
			}
		}
	}

	for _, fh := range headers {
		u, f, err := openUpload(fh)
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		closers = append(closers, f)
		uploads = append(uploads, u)
	}
	return uploads, closeAll, nil
}

// formFile opens the single file under field, or returns nil when absent.
func formFile(c *gin.Context, field string) (*service.Upload, func(), error) {
	uploads, closer, err := formFiles(c, field)
	if err != nil || len(uploads) == 0 {
		return nil, closer, err
	}
	return &uploads[0], closer, nil
}

func openUpload(fh *multipart.FileHeader) (service.Upload, multipart.File, error) {
	f, err := fh.Open()
	if err != nil {
		return service.Upload{}, nil, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	return service.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}, f, nil
}

// invalidRequest writes a 400 for a body that failed to bind.
func invalidRequest(c *gin.Context, err error) {
	log.Debug().Err(err).Str("path", c.FullPath()).Msg("Invalid request body")
	utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
}

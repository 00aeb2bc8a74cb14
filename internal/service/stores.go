package service

import (
	"context"
	"io"
	"time"

	"github.com/chakrahealing/admin_api/internal/cache"
	"github.com/chakrahealing/admin_api/internal/config"
	"github.com/chakrahealing/admin_api/internal/models"
	"github.com/chakrahealing/admin_api/internal/repository"
)

// The interfaces below are satisfied by the repository package and let the
// services be exercised with testify mocks.

type OrderStore interface {
	GetAllAdmin(ctx context.Context, limit int) ([]models.Order, error)
	ListPaid(ctx context.Context, limit int) ([]models.Order, error)
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	ApplyShippingStatus(ctx context.Context, orderID int64, status models.ShippingStatus, cancelReason string) error
	UpdatePayment(ctx context.Context, id int64, upd models.PaymentUpdate) error
	Delete(ctx context.Context, id int64) error
}

type BookingStore interface {
	GetAll(ctx context.Context) ([]models.Booking, error)
	GetByID(ctx context.Context, id int64) (*models.Booking, error)
	Update(ctx context.Context, id int64, upd models.BookingUpdate) error
	Delete(ctx context.Context, id int64) error
}

type ProductStore interface {
	GetAllAdmin(ctx context.Context, limit int) ([]models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	SoldCounts(ctx context.Context, productIDs []int64) (map[int64]int, error)
	Create(ctx context.Context, p *models.Product) (int64, error)
	Update(ctx context.Context, p *models.Product) error
	ApplyMedia(ctx context.Context, productID int64, plan repository.ProductMediaPlan) error
	SoftDelete(ctx context.Context, id int64) error
}

type ReviewStore interface {
	GetAllAdmin(ctx context.Context, limit int) ([]models.Review, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
}

type CustomerStore interface {
	GetAll(ctx context.Context) ([]models.CustomerStats, error)
	UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) error
	DeleteProfile(ctx context.Context, id string) error
}

type CatalogStore interface {
	GetAll(ctx context.Context) ([]models.Service, error)
	GetByID(ctx context.Context, id int64) (*models.Service, error)
	Upsert(ctx context.Context, s *models.Service) (int64, error)
	ReplaceBenefits(ctx context.Context, serviceID int64, labels []string) error
	SetImage(ctx context.Context, serviceID int64, imagePath string) error
	Delete(ctx context.Context, id int64) error
}

type BlogStore interface {
	GetAllAdmin(ctx context.Context) ([]models.Blog, error)
	GetByID(ctx context.Context, id int64) (*models.Blog, error)
	Upsert(ctx context.Context, b *models.Blog) (int64, error)
	SetCovers(ctx context.Context, blogID int64, heroPath, thumbPath *string) error
	ReplaceImages(ctx context.Context, blogID int64, images []models.BlogImage) error
	ReplaceCategories(ctx context.Context, blogID int64, categoryIDs []string) error
	Delete(ctx context.Context, id int64) error
	ListAuthors(ctx context.Context) ([]models.BlogAuthor, error)
	ListCategories(ctx context.Context) ([]models.BlogCategory, error)
}

type ContactStore interface {
	GetAll(ctx context.Context) ([]models.Contact, error)
	GetByID(ctx context.Context, id int64) (*models.Contact, error)
	Delete(ctx context.Context, id int64) error
}

type DashboardStore interface {
	CountBookingsSince(ctx context.Context, since time.Time) (int, error)
	CountBookingsOn(ctx context.Context, day string) (int, error)
	PaidOrderTotals(ctx context.Context) ([]models.RevenueEntry, error)
	PaidBookingPayments(ctx context.Context) ([]models.RevenueEntry, error)
	CountProfilesSince(ctx context.Context, since time.Time) (int, error)
	MonthlyBookings(ctx context.Context) ([]models.MonthlyBookings, error)
	TopServices(ctx context.Context, limit int) ([]models.TopService, error)
	MostOrdered(ctx context.Context, limit int) ([]models.MostOrderedProduct, error)
	Upcoming(ctx context.Context, from, to string) ([]models.UpcomingAppointment, error)
}

type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, email, passwordHash, fullName string, role models.Role) (string, error)
	GetRole(ctx context.Context, userID string) (models.Role, error)
	ListUsersWithRoles(ctx context.Context) ([]models.UserWithRole, error)
	SetRole(ctx context.Context, userID string, role models.Role) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) error
}

// TokenStore keeps the logout denylist and pending password resets.
type TokenStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	SaveReset(ctx context.Context, token string, data *cache.ResetData, ttl time.Duration) error
	ConsumeReset(ctx context.Context, token string) (*cache.ResetData, error)
}

// ObjectStore uploads images and resolves their public URLs.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, key string, body io.Reader, size int64, contentType string) (string, error)
	ResolveImageURL(bucket string, value *string) string
	Buckets() config.StorageConfig
}

// RoleClient calls the privileged grant-role / revoke-role functions.
type RoleClient interface {
	Grant(ctx context.Context, callerToken, targetUserID, role string) error
	Revoke(ctx context.Context, callerToken, targetUserID string) error
}

// Upload is one file received from a multipart form.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

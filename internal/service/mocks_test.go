package service

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/chakrahealing/admin_api/internal/cache"
	"github.com/chakrahealing/admin_api/internal/config"
	"github.com/chakrahealing/admin_api/internal/models"
	"github.com/chakrahealing/admin_api/internal/repository"
)

type mockOrderStore struct{ mock.Mock }

func (m *mockOrderStore) GetAllAdmin(ctx context.Context, limit int) ([]models.Order, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *mockOrderStore) ListPaid(ctx context.Context, limit int) ([]models.Order, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *mockOrderStore) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Error(1)
}

func (m *mockOrderStore) ApplyShippingStatus(ctx context.Context, orderID int64, status models.ShippingStatus, cancelReason string) error {
	return m.Called(ctx, orderID, status, cancelReason).Error(0)
}

func (m *mockOrderStore) UpdatePayment(ctx context.Context, id int64, upd models.PaymentUpdate) error {
	return m.Called(ctx, id, upd).Error(0)
}

func (m *mockOrderStore) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockBookingStore struct{ mock.Mock }

func (m *mockBookingStore) GetAll(ctx context.Context) ([]models.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *mockBookingStore) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*models.Booking)
	return b, args.Error(1)
}

func (m *mockBookingStore) Update(ctx context.Context, id int64, upd models.BookingUpdate) error {
	return m.Called(ctx, id, upd).Error(0)
}

func (m *mockBookingStore) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockProductStore struct{ mock.Mock }

func (m *mockProductStore) GetAllAdmin(ctx context.Context, limit int) ([]models.Product, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *mockProductStore) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*models.Product)
	return p, args.Error(1)
}

func (m *mockProductStore) SoldCounts(ctx context.Context, productIDs []int64) (map[int64]int, error) {
	args := m.Called(ctx, productIDs)
	counts, _ := args.Get(0).(map[int64]int)
	return counts, args.Error(1)
}

func (m *mockProductStore) Create(ctx context.Context, p *models.Product) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockProductStore) Update(ctx context.Context, p *models.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProductStore) ApplyMedia(ctx context.Context, productID int64, plan repository.ProductMediaPlan) error {
	return m.Called(ctx, productID, plan).Error(0)
}

func (m *mockProductStore) SoftDelete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockCatalogStore struct{ mock.Mock }

func (m *mockCatalogStore) GetAll(ctx context.Context) ([]models.Service, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Service), args.Error(1)
}

func (m *mockCatalogStore) GetByID(ctx context.Context, id int64) (*models.Service, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*models.Service)
	return s, args.Error(1)
}

func (m *mockCatalogStore) Upsert(ctx context.Context, s *models.Service) (int64, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCatalogStore) ReplaceBenefits(ctx context.Context, serviceID int64, labels []string) error {
	return m.Called(ctx, serviceID, labels).Error(0)
}

func (m *mockCatalogStore) SetImage(ctx context.Context, serviceID int64, imagePath string) error {
	return m.Called(ctx, serviceID, imagePath).Error(0)
}

func (m *mockCatalogStore) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockBlogStore struct{ mock.Mock }

func (m *mockBlogStore) GetAllAdmin(ctx context.Context) ([]models.Blog, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Blog), args.Error(1)
}

func (m *mockBlogStore) GetByID(ctx context.Context, id int64) (*models.Blog, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*models.Blog)
	return b, args.Error(1)
}

func (m *mockBlogStore) Upsert(ctx context.Context, b *models.Blog) (int64, error) {
	args := m.Called(ctx, b)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBlogStore) SetCovers(ctx context.Context, blogID int64, heroPath, thumbPath *string) error {
	return m.Called(ctx, blogID, heroPath, thumbPath).Error(0)
}

func (m *mockBlogStore) ReplaceImages(ctx context.Context, blogID int64, images []models.BlogImage) error {
	return m.Called(ctx, blogID, images).Error(0)
}

func (m *mockBlogStore) ReplaceCategories(ctx context.Context, blogID int64, categoryIDs []string) error {
	return m.Called(ctx, blogID, categoryIDs).Error(0)
}

func (m *mockBlogStore) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockBlogStore) ListAuthors(ctx context.Context) ([]models.BlogAuthor, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.BlogAuthor), args.Error(1)
}

func (m *mockBlogStore) ListCategories(ctx context.Context) ([]models.BlogCategory, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.BlogCategory), args.Error(1)
}

type mockDashboardStore struct{ mock.Mock }

func (m *mockDashboardStore) CountBookingsSince(ctx context.Context, since time.Time) (int, error) {
	args := m.Called(ctx, since)
	return args.Int(0), args.Error(1)
}

func (m *mockDashboardStore) CountBookingsOn(ctx context.Context, day string) (int, error) {
	args := m.Called(ctx, day)
	return args.Int(0), args.Error(1)
}

func (m *mockDashboardStore) PaidOrderTotals(ctx context.Context) ([]models.RevenueEntry, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.RevenueEntry), args.Error(1)
}

func (m *mockDashboardStore) PaidBookingPayments(ctx context.Context) ([]models.RevenueEntry, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.RevenueEntry), args.Error(1)
}

func (m *mockDashboardStore) CountProfilesSince(ctx context.Context, since time.Time) (int, error) {
	args := m.Called(ctx, since)
	return args.Int(0), args.Error(1)
}

func (m *mockDashboardStore) MonthlyBookings(ctx context.Context) ([]models.MonthlyBookings, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.MonthlyBookings), args.Error(1)
}

func (m *mockDashboardStore) TopServices(ctx context.Context, limit int) ([]models.TopService, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.TopService), args.Error(1)
}

func (m *mockDashboardStore) MostOrdered(ctx context.Context, limit int) ([]models.MostOrderedProduct, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.MostOrderedProduct), args.Error(1)
}

func (m *mockDashboardStore) Upcoming(ctx context.Context, from, to string) ([]models.UpcomingAppointment, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]models.UpcomingAppointment), args.Error(1)
}

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserStore) Create(ctx context.Context, email, passwordHash, fullName string, role models.Role) (string, error) {
	args := m.Called(ctx, email, passwordHash, fullName, role)
	return args.String(0), args.Error(1)
}

func (m *mockUserStore) GetRole(ctx context.Context, userID string) (models.Role, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.Role), args.Error(1)
}

func (m *mockUserStore) ListUsersWithRoles(ctx context.Context) ([]models.UserWithRole, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.UserWithRole), args.Error(1)
}

func (m *mockUserStore) SetRole(ctx context.Context, userID string, role models.Role) error {
	return m.Called(ctx, userID, role).Error(0)
}

func (m *mockUserStore) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return m.Called(ctx, userID, passwordHash).Error(0)
}

func (m *mockUserStore) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*models.Profile)
	return p, args.Error(1)
}

func (m *mockUserStore) UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) error {
	return m.Called(ctx, id, upd).Error(0)
}

type mockTokenStore struct{ mock.Mock }

func (m *mockTokenStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	return m.Called(ctx, jti, ttl).Error(0)
}

func (m *mockTokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

func (m *mockTokenStore) SaveReset(ctx context.Context, token string, data *cache.ResetData, ttl time.Duration) error {
	return m.Called(ctx, token, data, ttl).Error(0)
}

func (m *mockTokenStore) ConsumeReset(ctx context.Context, token string) (*cache.ResetData, error) {
	args := m.Called(ctx, token)
	d, _ := args.Get(0).(*cache.ResetData)
	return d, args.Error(1)
}

type mockRoleClient struct{ mock.Mock }

func (m *mockRoleClient) Grant(ctx context.Context, callerToken, targetUserID, role string) error {
	return m.Called(ctx, callerToken, targetUserID, role).Error(0)
}

func (m *mockRoleClient) Revoke(ctx context.Context, callerToken, targetUserID string) error {
	return m.Called(ctx, callerToken, targetUserID).Error(0)
}

// fakeObjectStore records uploads and resolves paths like the real storage.
type fakeObjectStore struct {
	keys []string
	err  error
}

func (f *fakeObjectStore) Upload(_ context.Context, bucket, key string, _ io.Reader, _ int64, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.keys = append(f.keys, key)
	return "https://cdn.test/" + bucket + "/" + key, nil
}

func (f *fakeObjectStore) ResolveImageURL(bucket string, value *string) string {
	if value == nil || *value == "" {
		return ""
	}
	return "https://cdn.test/" + bucket + "/" + *value
}

func (f *fakeObjectStore) Buckets() config.StorageConfig {
	return config.StorageConfig{ProductBucket: "product-images", BlogBucket: "blog-image", ServiceBucket: "service-images"}
}

// recordingNotifier captures the events a service emits.
type recordingNotifier struct {
	shipping []int64
	updated  []int64
	deleted  []int64
	reviews  map[int64]string
}

func (n *recordingNotifier) NotifyShippingStatusChanged(o *models.Order, _ string) {
	n.shipping = append(n.shipping, o.ID)
}

func (n *recordingNotifier) NotifyBookingUpdated(b *models.Booking, _ string) {
	n.updated = append(n.updated, b.ID)
}

func (n *recordingNotifier) NotifyBookingDeleted(id int64, _ string) {
	n.deleted = append(n.deleted, id)
}

func (n *recordingNotifier) NotifyReviewStatusChanged(id int64, status, _ string) {
	if n.reviews == nil {
		n.reviews = map[int64]string{}
	}
	n.reviews[id] = status
}

func (n *recordingNotifier) NotifyPaymentReconciled(int64, string) {}

func strPtr(s string) *string { return &s }

type mockReviewStore struct{ mock.Mock }

func (m *mockReviewStore) GetAllAdmin(ctx context.Context, limit int) ([]models.Review, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *mockReviewStore) UpdateStatus(ctx context.Context, id int64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockReviewStore) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockCustomerStore struct{ mock.Mock }

func (m *mockCustomerStore) GetAll(ctx context.Context) ([]models.CustomerStats, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.CustomerStats), args.Error(1)
}

func (m *mockCustomerStore) UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) error {
	return m.Called(ctx, id, upd).Error(0)
}

func (m *mockCustomerStore) DeleteProfile(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockContactStore struct{ mock.Mock }

func (m *mockContactStore) GetAll(ctx context.Context) ([]models.Contact, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Contact), args.Error(1)
}

func (m *mockContactStore) GetByID(ctx context.Context, id int64) (*models.Contact, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*models.Contact)
	return c, args.Error(1)
}

func (m *mockContactStore) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

package paymentControllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/solestride/storefront-api/events"
	"github.com/solestride/storefront-api/models"
	"gorm.io/gorm"
)

// gatewayTimeout bounds every outbound gateway call. The system this
// replaces configured 10s but overrode it with a 3s socket timeout; a
// single 10s budget is used here.
const gatewayTimeout = 10 * time.Second

var (
	// ErrPaymentUnavailable is the single user-facing failure for any
	// gateway-side problem (HTTP error, bad JSON, provider error code).
	ErrPaymentUnavailable = errors.New("Thanh toán trực tuyến hiện không khả dụng, vui lòng chọn phương thức thanh toán khác")

	ErrEmptyCart       = errors.New("Giỏ hàng chưa có sản phẩm nào được chọn")
	ErrMissingShipping = errors.New("Vui lòng nhập thông tin giao hàng trước khi thanh toán")
)

// redisCmdable is the subset of the redis client the payment flows use.
type redisCmdable interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Service owns checkout, the gateway adapters, and callback correlation.
type Service struct {
	db        *gorm.DB
	cfg       Config
	client    *http.Client
	redis     redisCmdable
	publisher events.PublisherInterface
	now       func() time.Time
}

func NewService(db *gorm.DB, cfg Config) *Service {
	return &Service{
		db:     db,
		cfg:    cfg,
		client: &http.Client{Timeout: gatewayTimeout},
		now:    time.Now,
	}
}

func (s *Service) SetRedisClient(client *redis.Client) {
	if client != nil {
		s.redis = client
	}
}

func (s *Service) SetPublisher(pub events.PublisherInterface) {
	s.publisher = pub
}

// checkout carries everything an adapter needs for one create call.
type checkout struct {
	userID   string
	clientIP string
	cart     *models.Cart
	items    []models.PaymentItem
	totals   checkoutTotals
}

type checkoutTotals struct {
	Subtotal     models.Money
	CouponAmount models.Money
	Final        models.Money
}

// newPendingPayment builds the pending row every adapter persists before
// redirecting, so a correlation target exists ahead of any callback.
func (s *Service) newPendingPayment(co checkout, method models.PaymentMethod, orderID string) *models.Payment {
	return &models.Payment{
		UserID:               co.userID,
		OrderID:              orderID,
		Items:                co.items,
		TotalPrice:           co.totals.Subtotal,
		FinalPrice:           co.totals.Final,
		Status:               models.PaymentStatusPending,
		Method:               method,
		CouponCode:           co.cart.CouponCode,
		CouponDiscountPct:    co.cart.CouponDiscountPct,
		CouponDiscountAmount: co.totals.CouponAmount,
		ShippingName:         co.cart.ShippingName,
		ShippingPhone:        co.cart.ShippingPhone,
		ShippingAddress:      co.cart.ShippingAddress,
		CreatedAt:            s.now(),
	}
}

package paymentControllers

import (
	"errors"
	"strings"
	"time"

	"github.com/solestride/storefront-api/models"
	"gorm.io/gorm"
)

// correlationWindow bounds the weaker fallback matchers: beyond it a
// pending payment is considered stale and never guessed at.
const correlationWindow = 10 * time.Minute

// ErrNoMatch means every matcher in the chain came up empty.
var ErrNoMatch = errors.New("no payment matched the callback")

// callbackQuery is the normalized view of a gateway notification.
type callbackQuery struct {
	Method    models.PaymentMethod
	OrderID   string // transaction/order reference the gateway echoed back
	OrderInfo string // free-text description the adapter populated
	TransID   string // raw provider transaction id (ZaloPay app_trans_id)
}

// paymentStore is the lookup surface the matchers run against.
type paymentStore interface {
	FindByOrderID(method models.PaymentMethod, orderID string) (*models.Payment, error)
	RecentPending(method models.PaymentMethod, since time.Time) ([]models.Payment, error)
}

// matcher is one correlation strategy. Returning (nil, nil) means
// not-found; the chain moves on to the next strategy.
type matcher struct {
	name string
	fn   func(store paymentStore, q callbackQuery, now time.Time) (*models.Payment, error)
}

// defaultMatchers is the fixed fallback order: exact ID, description-token
// re-parse, ZaloPay recent-substring, then the most-recent-pending guess.
func defaultMatchers() []matcher {
	return []matcher{
		{name: "exact-order-id", fn: matchExactOrderID},
		{name: "order-info-token", fn: matchOrderInfoToken},
		{name: "zalopay-recent-substring", fn: matchZaloPayRecent},
		{name: "recent-pending", fn: matchRecentPending},
	}
}

// resolvePayment runs the matcher chain in order; the first hit wins.
func resolvePayment(store paymentStore, q callbackQuery, now time.Time) (*models.Payment, string, error) {
	for _, m := range defaultMatchers() {
		p, err := m.fn(store, q, now)
		if err != nil {
			return nil, "", err
		}
		if p != nil {
			return p, m.name, nil
		}
	}
	return nil, "", ErrNoMatch
}

func matchExactOrderID(store paymentStore, q callbackQuery, _ time.Time) (*models.Payment, error) {
	if q.OrderID == "" {
		return nil, nil
	}
	return store.FindByOrderID(q.Method, q.OrderID)
}

func matchOrderInfoToken(store paymentStore, q callbackQuery, _ time.Time) (*models.Payment, error) {
	orderID, ok := orderIDFromInfo(q.OrderInfo)
	if !ok || orderID == q.OrderID {
		return nil, nil
	}
	return store.FindByOrderID(q.Method, orderID)
}

func matchZaloPayRecent(store paymentStore, q callbackQuery, now time.Time) (*models.Payment, error) {
	if q.Method != models.PaymentMethodZaloPay || q.TransID == "" {
		return nil, nil
	}
	// app_trans_id is "yymmdd_<millis>"; match on the suffix in case the
	// gateway echoed a decorated form of it.
	suffix := q.TransID
	if i := strings.IndexByte(suffix, '_'); i >= 0 {
		suffix = suffix[i+1:]
	}
	if suffix == "" {
		return nil, nil
	}

	pending, err := store.RecentPending(q.Method, now.Add(-correlationWindow))
	if err != nil {
		return nil, err
	}
	for i := range pending {
		if strings.Contains(pending[i].OrderID, suffix) {
			return &pending[i], nil
		}
	}
	return nil, nil
}

func matchRecentPending(store paymentStore, q callbackQuery, now time.Time) (*models.Payment, error) {
	pending, err := store.RecentPending(q.Method, now.Add(-correlationWindow))
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return nil, nil
	}
	return &pending[0], nil
}

// gormPaymentStore backs the matcher chain with the payments table.
type gormPaymentStore struct {
	db *gorm.DB
}

func (g gormPaymentStore) FindByOrderID(method models.PaymentMethod, orderID string) (*models.Payment, error) {
	var p models.Payment
	err := g.db.Where("method = ? AND order_id = ?", method, orderID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (g gormPaymentStore) RecentPending(method models.PaymentMethod, since time.Time) ([]models.Payment, error) {
	var out []models.Payment
	err := g.db.Where("method = ? AND status = ? AND created_at >= ?", method, models.PaymentStatusPending, since).
		Order("created_at DESC").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) store() paymentStore {
	return gormPaymentStore{db: s.db}
}

package paymentControllers

import (
	"testing"
	"time"

	"github.com/solestride/storefront-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPaymentStore struct {
	mock.Mock
}

func (m *mockPaymentStore) FindByOrderID(method models.PaymentMethod, orderID string) (*models.Payment, error) {
	args := m.Called(method, orderID)
	p, _ := args.Get(0).(*models.Payment)
	return p, args.Error(1)
}

func (m *mockPaymentStore) RecentPending(method models.PaymentMethod, since time.Time) ([]models.Payment, error) {
	args := m.Called(method, since)
	p, _ := args.Get(0).([]models.Payment)
	return p, args.Error(1)
}

func TestResolvePaymentExactOrderID(t *testing.T) {
	store := new(mockPaymentStore)
	want := &models.Payment{OrderID: "MOMO123"}
	store.On("FindByOrderID", models.PaymentMethodMoMo, "MOMO123").Return(want, nil)

	got, matchedBy, err := resolvePayment(store, callbackQuery{
		Method:  models.PaymentMethodMoMo,
		OrderID: "MOMO123",
	}, time.Now())

	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, "exact-order-id", matchedBy)
	store.AssertNotCalled(t, "RecentPending", mock.Anything, mock.Anything)
}

func TestResolvePaymentOrderInfoToken(t *testing.T) {
	store := new(mockPaymentStore)
	want := &models.Payment{OrderID: "MOMO456"}
	store.On("FindByOrderID", models.PaymentMethodMoMo, "garbled").Return(nil, nil)
	store.On("FindByOrderID", models.PaymentMethodMoMo, "MOMO456").Return(want, nil)

	got, matchedBy, err := resolvePayment(store, callbackQuery{
		Method:    models.PaymentMethodMoMo,
		OrderID:   "garbled",
		OrderInfo: "Thanh toan don hang MOMO456 user_abc",
	}, time.Now())

	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, "order-info-token", matchedBy)
}

func TestResolvePaymentZaloPayRecentSubstring(t *testing.T) {
	now := time.Now()
	store := new(mockPaymentStore)
	pending := []models.Payment{
		{OrderID: "240101_999", Status: models.PaymentStatusPending},
		{OrderID: "240101_1700000000000", Status: models.PaymentStatusPending},
	}
	store.On("FindByOrderID", models.PaymentMethodZaloPay, "prefix_1700000000000").Return(nil, nil)
	store.On("RecentPending", models.PaymentMethodZaloPay, now.Add(-correlationWindow)).Return(pending, nil)

	got, matchedBy, err := resolvePayment(store, callbackQuery{
		Method:  models.PaymentMethodZaloPay,
		OrderID: "prefix_1700000000000",
		TransID: "prefix_1700000000000",
	}, now)

	require.NoError(t, err)
	assert.Equal(t, "240101_1700000000000", got.OrderID)
	assert.Equal(t, "zalopay-recent-substring", matchedBy)
}

func TestResolvePaymentRecentPendingFallback(t *testing.T) {
	now := time.Now()
	store := new(mockPaymentStore)
	pending := []models.Payment{
		{OrderID: "newest", Status: models.PaymentStatusPending},
		{OrderID: "older", Status: models.PaymentStatusPending},
	}
	store.On("FindByOrderID", mock.Anything, mock.Anything).Return(nil, nil)
	store.On("RecentPending", models.PaymentMethodVNPay, now.Add(-correlationWindow)).Return(pending, nil)

	got, matchedBy, err := resolvePayment(store, callbackQuery{
		Method:  models.PaymentMethodVNPay,
		OrderID: "unknown",
	}, now)

	require.NoError(t, err)
	assert.Equal(t, "newest", got.OrderID, "newest pending wins")
	assert.Equal(t, "recent-pending", matchedBy)
}

func TestResolvePaymentNoMatch(t *testing.T) {
	store := new(mockPaymentStore)
	store.On("FindByOrderID", mock.Anything, mock.Anything).Return(nil, nil)
	store.On("RecentPending", mock.Anything, mock.Anything).Return([]models.Payment{}, nil)

	_, _, err := resolvePayment(store, callbackQuery{
		Method:  models.PaymentMethodMoMo,
		OrderID: "unknown",
	}, time.Now())

	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestResolvePaymentEmptyOrderIDSkipsExactLookup(t *testing.T) {
	store := new(mockPaymentStore)
	store.On("RecentPending", mock.Anything, mock.Anything).Return([]models.Payment{}, nil)

	_, _, err := resolvePayment(store, callbackQuery{Method: models.PaymentMethodMoMo}, time.Now())

	assert.ErrorIs(t, err, ErrNoMatch)
	store.AssertNotCalled(t, "FindByOrderID", mock.Anything, mock.Anything)
}

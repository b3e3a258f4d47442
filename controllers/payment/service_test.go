package paymentControllers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/solestride/storefront-api/events"
	"github.com/solestride/storefront-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, routingKey string, data interface{}) error {
	args := m.Called(ctx, routingKey, data)
	return args.Error(0)
}

func TestEmitCreatedPublishesOrderCreated(t *testing.T) {
	s := newTestService()
	pub := new(mockPublisher)
	pub.On("Publish", mock.Anything, events.OrderCreated, mock.Anything).Return(nil).Once()
	s.SetPublisher(pub)

	s.emitCreated(&models.Payment{
		OrderID:    "MOMO1700000000000",
		UserID:     "user_abc",
		Method:     models.PaymentMethodMoMo,
		FinalPrice: 900000,
	})

	pub.AssertExpectations(t)
}

func TestEmitConfirmedPublishesOrderConfirmed(t *testing.T) {
	s := newTestService()
	pub := new(mockPublisher)
	pub.On("Publish", mock.Anything, events.OrderConfirmed, mock.Anything).Return(nil).Once()
	s.SetPublisher(pub)

	s.emitConfirmed(&models.Payment{OrderID: "X", UserID: "u", Method: models.PaymentMethodCOD})

	pub.AssertExpectations(t)
}

func TestEmitWithoutPublisherIsNoOp(t *testing.T) {
	s := newTestService()
	assert.NotPanics(t, func() {
		s.emitCreated(&models.Payment{OrderID: "X"})
		s.emitConfirmed(&models.Payment{OrderID: "X"})
	})
}

func TestMoMoCreateRequestAmountIsNumeric(t *testing.T) {
	body, err := json.Marshal(momoCreateRequest{
		PartnerCode: "MOMO",
		Amount:      900000,
		OrderID:     "MOMO1700000000000",
	})
	require.NoError(t, err)

	assert.Contains(t, string(body), `"amount":900000`)
	assert.NotContains(t, string(body), `"amount":"900000"`)
}

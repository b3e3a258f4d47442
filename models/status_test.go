package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionForward(t *testing.T) {
	assert.True(t, CanTransition(PaymentStatusPending, PaymentStatusConfirmed))
	assert.True(t, CanTransition(PaymentStatusConfirmed, PaymentStatusShipped))
	assert.True(t, CanTransition(PaymentStatusShipped, PaymentStatusDelivered))

	// No skipping steps.
	assert.False(t, CanTransition(PaymentStatusPending, PaymentStatusShipped))
	assert.False(t, CanTransition(PaymentStatusPending, PaymentStatusDelivered))
	assert.False(t, CanTransition(PaymentStatusConfirmed, PaymentStatusDelivered))

	// No going backwards.
	assert.False(t, CanTransition(PaymentStatusConfirmed, PaymentStatusPending))
	assert.False(t, CanTransition(PaymentStatusShipped, PaymentStatusConfirmed))
	assert.False(t, CanTransition(PaymentStatusDelivered, PaymentStatusShipped))
}

func TestCanTransitionCancel(t *testing.T) {
	assert.True(t, CanTransition(PaymentStatusPending, PaymentStatusCancelled))
	assert.True(t, CanTransition(PaymentStatusConfirmed, PaymentStatusCancelled))

	assert.False(t, CanTransition(PaymentStatusShipped, PaymentStatusCancelled))
	assert.False(t, CanTransition(PaymentStatusDelivered, PaymentStatusCancelled))
}

func TestCanTransitionTerminal(t *testing.T) {
	for _, to := range []PaymentStatus{
		PaymentStatusPending, PaymentStatusConfirmed, PaymentStatusShipped,
		PaymentStatusDelivered, PaymentStatusCancelled,
	} {
		assert.False(t, CanTransition(PaymentStatusCancelled, to), "cancelled -> %s", to)
		assert.False(t, CanTransition(PaymentStatusDelivered, to), "delivered -> %s", to)
	}
}

func TestCanTransitionSelf(t *testing.T) {
	for _, s := range []PaymentStatus{
		PaymentStatusPending, PaymentStatusConfirmed, PaymentStatusShipped,
		PaymentStatusDelivered, PaymentStatusCancelled,
	} {
		assert.False(t, CanTransition(s, s))
	}
}

func TestParsePaymentStatus(t *testing.T) {
	got, ok := ParsePaymentStatus("shipped")
	assert.True(t, ok)
	assert.Equal(t, PaymentStatusShipped, got)

	_, ok = ParsePaymentStatus("refunded")
	assert.False(t, ok)
	_, ok = ParsePaymentStatus("")
	assert.False(t, ok)
}

func TestParsePaymentMethod(t *testing.T) {
	got, ok := ParsePaymentMethod("momo")
	assert.True(t, ok)
	assert.Equal(t, PaymentMethodMoMo, got)

	_, ok = ParsePaymentMethod("paypal")
	assert.False(t, ok)
}

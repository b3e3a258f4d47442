package models

// forward order of the lifecycle; cancelled sits outside the chain.
var statusRank = map[PaymentStatus]int{
	PaymentStatusPending:   0,
	PaymentStatusConfirmed: 1,
	PaymentStatusShipped:   2,
	PaymentStatusDelivered: 3,
}

// CanTransition reports whether an order may move from one status to
// another. Forward progress is monotonic one step at a time; cancellation
// is only reachable from pending or confirmed; cancelled and delivered are
// terminal.
func CanTransition(from, to PaymentStatus) bool {
	if from == to {
		return false
	}
	if from == PaymentStatusCancelled || from == PaymentStatusDelivered {
		return false
	}
	if to == PaymentStatusCancelled {
		return from == PaymentStatusPending || from == PaymentStatusConfirmed
	}
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank == fromRank+1
}

// ParsePaymentStatus maps a request string onto a known status.
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(s) {
	case PaymentStatusPending, PaymentStatusConfirmed, PaymentStatusShipped,
		PaymentStatusDelivered, PaymentStatusCancelled:
		return PaymentStatus(s), true
	}
	return "", false
}

// ParsePaymentMethod maps a request string onto a supported gateway.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(s) {
	case PaymentMethodCOD, PaymentMethodMoMo, PaymentMethodVNPay, PaymentMethodZaloPay:
		return PaymentMethod(s), true
	}
	return "", false
}

package paymentControllers

import (
	"github.com/google/uuid"
	"github.com/solestride/storefront-api/models"
	"gorm.io/gorm"
)

// createCOD places a cash-on-delivery order: the payment is created pending
// and confirmed in the same transaction, since there is no gateway round
// trip to wait for.
func (s *Service) createCOD(co checkout) (string, error) {
	orderID := s.now().Format("20060102150405") + "-" + uuid.NewString()

	payment := s.newPendingPayment(co, "cod", orderID)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		return s.confirmPaymentTx(tx, payment)
	})
	if err != nil {
		return "", err
	}

	s.emitCreated(payment)
	s.emitConfirmed(payment)
	return orderID, nil
}

// synthesizeFromCart is the last-resort recovery path: a gateway reported
// success but no pending payment could be correlated, so a confirmed
// payment is rebuilt from whatever the user's cart still holds.
func (s *Service) synthesizeFromCart(userID string, method models.PaymentMethod) (*models.Payment, error) {
	co, err := s.loadCheckout(userID, "")
	if err != nil {
		return nil, err
	}

	orderID := s.now().Format("20060102150405") + "-" + uuid.NewString()
	payment := s.newPendingPayment(co, method, orderID)
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		return s.confirmPaymentTx(tx, payment)
	})
	if err != nil {
		return nil, err
	}

	s.emitCreated(payment)
	s.emitConfirmed(payment)
	return payment, nil
}

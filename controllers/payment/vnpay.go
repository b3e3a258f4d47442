package paymentControllers

import (
	"fmt"
	"strconv"
)

// createVNPay persists a pending payment and builds the signed hosted
// checkout URL. VNPay has no create API call; the redirect URL itself
// carries the signed request.
func (s *Service) createVNPay(co checkout) (redirectURL, orderID string, err error) {
	cfg := s.cfg.VNPay
	if !cfg.configured() {
		return "", "", ErrPaymentUnavailable
	}

	now := s.now()
	orderID = strconv.FormatInt(now.UnixMilli(), 10)
	orderInfo := fmt.Sprintf("Thanh toan don hang %s %s", orderID, co.userID)

	payment := s.newPendingPayment(co, "vnpay", orderID)
	if err := s.db.Create(payment).Error; err != nil {
		return "", "", err
	}
	s.emitCreated(payment)

	// vnp_Amount is in hundredths of a dong per the VNPay contract.
	params := map[string]string{
		"vnp_Version":    "2.1.0",
		"vnp_Command":    "pay",
		"vnp_TmnCode":    cfg.TmnCode,
		"vnp_Amount":     strconv.FormatInt(co.totals.Final*100, 10),
		"vnp_CreateDate": now.Format("20060102150405"),
		"vnp_CurrCode":   "VND",
		"vnp_IpAddr":     co.clientIP,
		"vnp_Locale":     "vn",
		"vnp_OrderInfo":  orderInfo,
		"vnp_OrderType":  "other",
		"vnp_ReturnUrl":  cfg.ReturnURL,
		"vnp_TxnRef":     orderID,
	}

	return cfg.PayURL + "?" + vnpaySignedQuery(params, cfg.HashSecret), orderID, nil
}

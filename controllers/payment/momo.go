package paymentControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/solestride/storefront-api/models"
)

// momoCreateRequest mirrors MoMo's create-order body. amount is a JSON
// number, matching the numeric form the signature covers.
type momoCreateRequest struct {
	PartnerCode string       `json:"partnerCode"`
	AccessKey   string       `json:"accessKey"`
	RequestID   string       `json:"requestId"`
	Amount      models.Money `json:"amount"`
	OrderID     string       `json:"orderId"`
	OrderInfo   string       `json:"orderInfo"`
	RedirectURL string       `json:"redirectUrl"`
	IPNURL      string       `json:"ipnUrl"`
	ExtraData   string       `json:"extraData"`
	RequestType string       `json:"requestType"`
	Signature   string       `json:"signature"`
	Lang        string       `json:"lang"`
}

type momoCreateResponse struct {
	PayURL     string `json:"payUrl"`
	ResultCode int    `json:"resultCode"`
	Message    string `json:"message"`
}

// createMoMo persists a pending payment, then asks MoMo for a hosted
// checkout URL. Any gateway-side failure surfaces as ErrPaymentUnavailable.
func (s *Service) createMoMo(co checkout) (redirectURL, orderID string, err error) {
	cfg := s.cfg.MoMo
	if !cfg.configured() {
		return "", "", ErrPaymentUnavailable
	}

	orderID = cfg.PartnerCode + strconv.FormatInt(s.now().UnixMilli(), 10)
	requestID := orderID
	orderInfo := fmt.Sprintf("Thanh toan don hang %s %s", orderID, co.userID)
	requestType := "captureWallet"
	extraData := ""

	payment := s.newPendingPayment(co, "momo", orderID)
	if err := s.db.Create(payment).Error; err != nil {
		return "", "", err
	}
	s.emitCreated(payment)

	signature := hmacSHA256Hex(cfg.SecretKey, momoRawSignature(momoSignParams{
		AccessKey:   cfg.AccessKey,
		Amount:      co.totals.Final,
		ExtraData:   extraData,
		IPNURL:      cfg.IPNURL,
		OrderID:     orderID,
		OrderInfo:   orderInfo,
		PartnerCode: cfg.PartnerCode,
		RedirectURL: cfg.RedirectURL,
		RequestID:   requestID,
		RequestType: requestType,
	}))

	body, _ := json.Marshal(momoCreateRequest{
		PartnerCode: cfg.PartnerCode,
		AccessKey:   cfg.AccessKey,
		RequestID:   requestID,
		Amount:      co.totals.Final,
		OrderID:     orderID,
		OrderInfo:   orderInfo,
		RedirectURL: cfg.RedirectURL,
		IPNURL:      cfg.IPNURL,
		ExtraData:   extraData,
		RequestType: requestType,
		Signature:   signature,
		Lang:        "vi",
	})

	req, err := http.NewRequest(http.MethodPost, cfg.Endpoint, bytes.NewBuffer(body))
	if err != nil {
		return "", "", ErrPaymentUnavailable
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("payment: momo create request failed: %v", err)
		return "", "", ErrPaymentUnavailable
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		log.Printf("payment: momo create returned %d: %s", resp.StatusCode, string(raw))
		return "", "", ErrPaymentUnavailable
	}

	var momoResp momoCreateResponse
	if err := json.Unmarshal(raw, &momoResp); err != nil {
		log.Printf("payment: momo create returned invalid JSON: %v", err)
		return "", "", ErrPaymentUnavailable
	}
	if momoResp.ResultCode != 0 || momoResp.PayURL == "" {
		log.Printf("payment: momo rejected order %s: code=%d message=%s", orderID, momoResp.ResultCode, momoResp.Message)
		return "", "", ErrPaymentUnavailable
	}

	return momoResp.PayURL, orderID, nil
}

package paymentControllers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// correlationAidTTL bounds how long the redis-side ZaloPay transaction hint
// is kept; it only needs to outlive one checkout round trip.
const correlationAidTTL = 15 * time.Minute

func zalopayAidKey(userID string) string {
	return "zalopay:trans:" + userID
}

type zalopayCreateResponse struct {
	ReturnCode    int    `json:"return_code"`
	ReturnMessage string `json:"return_message"`
	OrderURL      string `json:"order_url"`
}

type zalopayItem struct {
	ItemID    uint   `json:"itemid"`
	ItemName  string `json:"itemname"`
	ItemPrice int64  `json:"itemprice"`
	ItemQty   int    `json:"itemquantity"`
}

// createZaloPay persists a pending payment and opens a ZaloPay order. The
// app_trans_id doubles as the stored correlation key; a copy is parked in
// redis keyed by user as a weaker correlation aid for the redirect flow.
func (s *Service) createZaloPay(co checkout) (redirectURL, orderID string, err error) {
	cfg := s.cfg.ZaloPay
	if !cfg.configured() {
		return "", "", ErrPaymentUnavailable
	}

	now := s.now()
	appTransID := now.Format("060102") + "_" + strconv.FormatInt(now.UnixMilli(), 10)
	appTime := now.UnixMilli()

	payment := s.newPendingPayment(co, "zalopay", appTransID)
	if err := s.db.Create(payment).Error; err != nil {
		return "", "", err
	}
	s.emitCreated(payment)

	items := make([]zalopayItem, 0, len(co.items))
	for _, it := range co.items {
		items = append(items, zalopayItem{
			ItemID:    it.ProductID,
			ItemName:  it.ProductName,
			ItemPrice: it.PriceAfterDiscount,
			ItemQty:   it.Quantity,
		})
	}
	itemJSON, _ := json.Marshal(items)
	embedData := fmt.Sprintf(`{"redirecturl":"%s"}`, cfg.RedirectURL)

	mac := zalopayMAC(cfg.Key1, cfg.AppID, appTransID, co.userID, co.totals.Final, appTime, embedData, string(itemJSON))

	form := url.Values{}
	form.Set("app_id", strconv.Itoa(cfg.AppID))
	form.Set("app_user", co.userID)
	form.Set("app_time", strconv.FormatInt(appTime, 10))
	form.Set("amount", strconv.FormatInt(co.totals.Final, 10))
	form.Set("app_trans_id", appTransID)
	form.Set("embed_data", embedData)
	form.Set("item", string(itemJSON))
	form.Set("description", fmt.Sprintf("Thanh toan don hang %s %s", appTransID, co.userID))
	form.Set("bank_code", "")
	form.Set("callback_url", cfg.CallbackURL)
	form.Set("mac", mac)

	req, err := http.NewRequest(http.MethodPost, cfg.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", "", ErrPaymentUnavailable
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("payment: zalopay create request failed: %v", err)
		return "", "", ErrPaymentUnavailable
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		log.Printf("payment: zalopay create returned %d: %s", resp.StatusCode, string(raw))
		return "", "", ErrPaymentUnavailable
	}

	var zpResp zalopayCreateResponse
	if err := json.Unmarshal(raw, &zpResp); err != nil {
		log.Printf("payment: zalopay create returned invalid JSON: %v", err)
		return "", "", ErrPaymentUnavailable
	}
	if zpResp.ReturnCode != 1 || zpResp.OrderURL == "" {
		log.Printf("payment: zalopay rejected order %s: code=%d message=%s", appTransID, zpResp.ReturnCode, zpResp.ReturnMessage)
		return "", "", ErrPaymentUnavailable
	}

	if s.redis != nil {
		key := zalopayAidKey(co.userID)
		if err := s.redis.Set(context.Background(), key, appTransID, correlationAidTTL).Err(); err != nil {
			log.Printf("payment: failed to store zalopay correlation aid: %v", err)
		}
	}

	return zpResp.OrderURL, appTransID, nil
}

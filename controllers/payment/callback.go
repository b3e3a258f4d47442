package paymentControllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/solestride/storefront-api/auth"
	"github.com/solestride/storefront-api/models"
)

// Redirect outcomes carried back to the client as a query flag. Provider
// failures and unresolvable correlations never surface as HTTP errors; the
// browser always lands somewhere usable.
const (
	resultSuccess = "success"
	resultFailed  = "failed"
	resultError   = "error"
)

func (s *Service) redirectResult(c *gin.Context, outcome string) {
	c.Redirect(http.StatusFound, s.cfg.ClientURL+"/payment-result?payment="+outcome)
}

// GET /api/payment/momo — browser redirect from MoMo.
func (s *Service) MoMoReturnHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Query("resultCode") != "0" {
			s.redirectResult(c, resultFailed)
			return
		}
		s.finishCallback(c, callbackQuery{
			Method:    models.PaymentMethodMoMo,
			OrderID:   c.Query("orderId"),
			OrderInfo: c.Query("orderInfo"),
		})
	}
}

// GET /api/payment/vnpay — browser redirect from VNPay.
func (s *Service) VNPayReturnHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Query("vnp_ResponseCode") != "00" {
			s.redirectResult(c, resultFailed)
			return
		}
		s.finishCallback(c, callbackQuery{
			Method:    models.PaymentMethodVNPay,
			OrderID:   c.Query("vnp_TxnRef"),
			OrderInfo: c.Query("vnp_OrderInfo"),
		})
	}
}

// GET /api/payment/zalopay — browser redirect from ZaloPay. The stored
// cookie, then the redis aid, recover the app_trans_id when the query string
// arrives mangled.
func (s *Service) ZaloPayReturnHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Query("status") != "1" {
			s.redirectResult(c, resultFailed)
			return
		}

		orderID, transID := s.zalopayCallbackIDs(c)
		s.finishCallback(c, callbackQuery{
			Method:  models.PaymentMethodZaloPay,
			OrderID: orderID,
			TransID: transID,
		})
	}
}

// zalopayCallbackIDs picks the app_trans_id for a browser return. The query
// param is the baseline, the correlation cookie overrides it, and when both
// are missing the aid parked in redis at create time is looked up via the
// session cookie the browser still sends on the redirect.
func (s *Service) zalopayCallbackIDs(c *gin.Context) (orderID, transID string) {
	transID = c.Query("apptransid")
	orderID = transID
	if cookie, err := c.Cookie(zalopayTransCookie); err == nil && cookie != "" {
		orderID = cookie
	}
	if orderID == "" {
		if aid, ok := s.zalopayAidFromSession(c); ok {
			orderID, transID = aid, aid
		}
	}
	return orderID, transID
}

func (s *Service) zalopayAidFromSession(c *gin.Context) (string, bool) {
	if s.redis == nil {
		return "", false
	}
	token, err := c.Cookie("token")
	if err != nil || token == "" {
		return "", false
	}
	userID, err := auth.UserIDFromToken(token)
	if err != nil {
		return "", false
	}
	aid, err := s.redis.Get(c.Request.Context(), zalopayAidKey(userID)).Result()
	if err != nil || aid == "" {
		return "", false
	}
	return aid, true
}

type zalopayIPNData struct {
	AppTransID string `json:"app_trans_id"`
	AppUser    string `json:"app_user"`
}

// POST /api/payment/zalopay — server-to-server IPN. The MAC has already
// been verified by middleware, which stashes the raw data string.
func (s *Service) ZaloPayIPNHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		dataVal, exists := c.Get("zalopay_data")
		if !exists {
			c.JSON(http.StatusOK, gin.H{"return_code": -1, "return_message": "missing data"})
			return
		}

		var data zalopayIPNData
		if err := json.Unmarshal([]byte(dataVal.(string)), &data); err != nil {
			c.JSON(http.StatusOK, gin.H{"return_code": -1, "return_message": "invalid data"})
			return
		}

		q := callbackQuery{
			Method:  models.PaymentMethodZaloPay,
			OrderID: data.AppTransID,
			TransID: data.AppTransID,
		}
		payment, matchedBy, err := resolvePayment(s.store(), q, s.now())
		if errors.Is(err, ErrNoMatch) {
			if data.AppUser != "" {
				if _, synthErr := s.synthesizeFromCart(data.AppUser, models.PaymentMethodZaloPay); synthErr == nil {
					c.JSON(http.StatusOK, gin.H{"return_code": 1, "return_message": "success"})
					return
				}
			}
			c.JSON(http.StatusOK, gin.H{"return_code": -1, "return_message": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"return_code": 0, "return_message": "retry"})
			return
		}

		if err := s.confirmPayment(payment); err != nil {
			log.Printf("payment: zalopay ipn confirm failed for %s: %v", payment.OrderID, err)
			c.JSON(http.StatusOK, gin.H{"return_code": 0, "return_message": "retry"})
			return
		}

		log.Printf("payment: order %s confirmed via ipn (%s)", payment.OrderID, matchedBy)
		c.JSON(http.StatusOK, gin.H{"return_code": 1, "return_message": "success"})
	}
}

// finishCallback correlates a successful gateway notification to its
// payment and promotes it. Exhausted correlation falls back to rebuilding
// the order from the user's cart before giving up with a payment=error
// redirect.
func (s *Service) finishCallback(c *gin.Context, q callbackQuery) {
	payment, matchedBy, err := resolvePayment(s.store(), q, s.now())
	if errors.Is(err, ErrNoMatch) {
		userID, ok := userIDFromInfo(q.OrderInfo)
		if !ok {
			s.redirectResult(c, resultError)
			return
		}
		if _, err := s.synthesizeFromCart(userID, q.Method); err != nil {
			log.Printf("payment: cart fallback failed for user %s: %v", userID, err)
			s.redirectResult(c, resultError)
			return
		}
		log.Printf("payment: rebuilt %s order for user %s from cart", q.Method, userID)
		s.redirectResult(c, resultSuccess)
		return
	}
	if err != nil {
		log.Printf("payment: correlation lookup failed: %v", err)
		s.redirectResult(c, resultError)
		return
	}

	if err := s.confirmPayment(payment); err != nil {
		log.Printf("payment: confirm failed for %s: %v", payment.OrderID, err)
		s.redirectResult(c, resultError)
		return
	}

	if q.Method == models.PaymentMethodZaloPay && s.redis != nil {
		s.redis.Del(context.Background(), zalopayAidKey(payment.UserID))
	}

	log.Printf("payment: order %s confirmed (%s)", payment.OrderID, matchedBy)
	s.redirectResult(c, resultSuccess)
}

package paymentControllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/solestride/storefront-api/models"
	"gorm.io/gorm"
)

type CreatePaymentRequest struct {
	Method string `json:"method" binding:"required"`
}

// zalopayTransCookie is a short-lived correlation aid for the ZaloPay
// redirect flow; the browser carries it back to the return handler.
const zalopayTransCookie = "zalopay_app_trans_id"

// POST /api/payment/create
func (s *Service) CreatePaymentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input CreatePaymentRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		method, ok := models.ParsePaymentMethod(input.Method)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported payment method"})
			return
		}

		co, err := s.loadCheckout(userID, c.ClientIP())
		if err != nil {
			status := http.StatusInternalServerError
			msg := "Failed to prepare checkout"
			switch {
			case errors.Is(err, ErrEmptyCart), errors.Is(err, ErrMissingShipping):
				status, msg = http.StatusBadRequest, err.Error()
			case errors.Is(err, gorm.ErrRecordNotFound):
				status, msg = http.StatusBadRequest, "User cart not found"
			}
			c.JSON(status, gin.H{"error": msg})
			return
		}

		switch method {
		case models.PaymentMethodCOD:
			orderID, err := s.createCOD(co)
			if err != nil {
				log.Printf("payment: cod checkout failed for user %s: %v", userID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"order_id": orderID, "payment_method": method})

		case models.PaymentMethodMoMo, models.PaymentMethodVNPay, models.PaymentMethodZaloPay:
			var redirectURL, orderID string
			switch method {
			case models.PaymentMethodMoMo:
				redirectURL, orderID, err = s.createMoMo(co)
			case models.PaymentMethodVNPay:
				redirectURL, orderID, err = s.createVNPay(co)
			case models.PaymentMethodZaloPay:
				redirectURL, orderID, err = s.createZaloPay(co)
			}
			if errors.Is(err, ErrPaymentUnavailable) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err != nil {
				log.Printf("payment: %s checkout failed for user %s: %v", method, userID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment"})
				return
			}

			if method == models.PaymentMethodZaloPay {
				c.SetCookie(zalopayTransCookie, orderID, int(correlationAidTTL.Seconds()), "/", "", false, false)
			}
			c.JSON(http.StatusOK, gin.H{
				"order_id":       orderID,
				"payment_method": method,
				"redirect_url":   redirectURL,
			})
		}
	}
}

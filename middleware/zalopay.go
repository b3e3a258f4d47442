package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

type zalopayIPNBody struct {
	Data string `json:"data"`
	Mac  string `json:"mac"`
}

// ZaloPayIPNAuth verifies the MAC on ZaloPay's server-to-server callback
// against key2 and hands the verified data string to the handler.
func ZaloPayIPNAuth() gin.HandlerFunc {
	key2 := os.Getenv("ZALOPAY_KEY2")

	return func(c *gin.Context) {
		if key2 == "" {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ZaloPay is not configured"})
			c.Abort()
			return
		}

		var body zalopayIPNBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse callback body"})
			c.Abort()
			return
		}

		mac := hmac.New(sha256.New, []byte(key2))
		mac.Write([]byte(body.Data))
		calculated := hex.EncodeToString(mac.Sum(nil))

		if !hmac.Equal([]byte(calculated), []byte(body.Mac)) {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid callback signature"})
			c.Abort()
			return
		}

		c.Set("zalopay_data", body.Data)
		c.Next()
	}
}

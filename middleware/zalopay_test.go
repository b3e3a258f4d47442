package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signIPNBody(t *testing.T, key2, data string) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(key2))
	mac.Write([]byte(data))
	body, err := json.Marshal(map[string]string{
		"data": data,
		"mac":  hex.EncodeToString(mac.Sum(nil)),
	})
	require.NoError(t, err)
	return string(body)
}

func ipnRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/ipn", ZaloPayIPNAuth(), func(c *gin.Context) {
		data, _ := c.Get("zalopay_data")
		c.JSON(http.StatusOK, gin.H{"data": data})
	})
	return r
}

func TestZaloPayIPNAuthValidMAC(t *testing.T) {
	t.Setenv("ZALOPAY_KEY2", "key2")
	data := `{"app_trans_id":"240101_1700000000000","app_user":"user_abc"}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ipn", strings.NewReader(signIPNBody(t, "key2", data)))
	req.Header.Set("Content-Type", "application/json")
	ipnRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "240101_1700000000000")
}

func TestZaloPayIPNAuthBadMAC(t *testing.T) {
	t.Setenv("ZALOPAY_KEY2", "key2")
	data := `{"app_trans_id":"240101_1700000000000"}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ipn", strings.NewReader(signIPNBody(t, "wrong-key", data)))
	req.Header.Set("Content-Type", "application/json")
	ipnRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestZaloPayIPNAuthUnconfigured(t *testing.T) {
	t.Setenv("ZALOPAY_KEY2", "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ipn", strings.NewReader(`{"data":"x","mac":"y"}`))
	req.Header.Set("Content-Type", "application/json")
	ipnRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

package paymentControllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService(nil, Config{ClientURL: "http://localhost:3000"})
}

func performGET(handler gin.HandlerFunc, target string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	r := gin.New()
	r.GET("/cb", handler)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestMoMoReturnFailureRedirects(t *testing.T) {
	s := newTestService()
	w := performGET(s.MoMoReturnHandler(), "/cb?resultCode=1006&orderId=MOMO123")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://localhost:3000/payment-result?payment=failed", w.Header().Get("Location"))
}

func TestVNPayReturnFailureRedirects(t *testing.T) {
	s := newTestService()
	w := performGET(s.VNPayReturnHandler(), "/cb?vnp_ResponseCode=24&vnp_TxnRef=1700000000000")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://localhost:3000/payment-result?payment=failed", w.Header().Get("Location"))
}

func TestZaloPayReturnFailureRedirects(t *testing.T) {
	s := newTestService()

	// User cancelled at the gateway.
	w := performGET(s.ZaloPayReturnHandler(), "/cb?status=-49&apptransid=240101_1700000000000")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://localhost:3000/payment-result?payment=failed", w.Header().Get("Location"))

	// Missing status behaves the same.
	w = performGET(s.ZaloPayReturnHandler(), "/cb?apptransid=240101_1700000000000")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://localhost:3000/payment-result?payment=failed", w.Header().Get("Location"))
}

// fakeAidStore stands in for redis in the correlation-aid flow.
type fakeAidStore struct {
	values map[string]string
}

func (f *fakeAidStore) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.values[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeAidStore) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeAidStore) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, k := range keys {
		delete(f.values, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func signedTestToken(t *testing.T, secret, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func zalopayReturnContext(t *testing.T, target string, cookies ...*http.Cookie) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	for _, cookie := range cookies {
		c.Request.AddCookie(cookie)
	}
	return c
}

func TestZaloPayCallbackIDsQueryAndCookie(t *testing.T) {
	s := newTestService()

	c := zalopayReturnContext(t, "/cb?apptransid=240101_111")
	orderID, transID := s.zalopayCallbackIDs(c)
	assert.Equal(t, "240101_111", orderID)
	assert.Equal(t, "240101_111", transID)

	c = zalopayReturnContext(t, "/cb?apptransid=mangled",
		&http.Cookie{Name: zalopayTransCookie, Value: "240101_222"})
	orderID, transID = s.zalopayCallbackIDs(c)
	assert.Equal(t, "240101_222", orderID, "cookie overrides the query param")
	assert.Equal(t, "mangled", transID)
}

func TestZaloPayCallbackIDsRedisRecovery(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	s := newTestService()
	s.redis = &fakeAidStore{values: map[string]string{
		zalopayAidKey("user_abc"): "240101_1700000000000",
	}}

	// Neither the query param nor the correlation cookie survived, but the
	// session cookie identifies the user and the parked aid is looked up.
	c := zalopayReturnContext(t, "/cb?status=1",
		&http.Cookie{Name: "token", Value: signedTestToken(t, "test-secret", "user_abc")})
	orderID, transID := s.zalopayCallbackIDs(c)
	assert.Equal(t, "240101_1700000000000", orderID)
	assert.Equal(t, "240101_1700000000000", transID)
}

func TestZaloPayCallbackIDsNoRecoverySource(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	// No redis wired.
	s := newTestService()
	c := zalopayReturnContext(t, "/cb?status=1",
		&http.Cookie{Name: "token", Value: signedTestToken(t, "test-secret", "user_abc")})
	orderID, _ := s.zalopayCallbackIDs(c)
	assert.Empty(t, orderID)

	// Redis wired but no session cookie.
	s.redis = &fakeAidStore{values: map[string]string{}}
	c = zalopayReturnContext(t, "/cb?status=1")
	orderID, _ = s.zalopayCallbackIDs(c)
	assert.Empty(t, orderID)

	// Session present but nothing parked for the user.
	c = zalopayReturnContext(t, "/cb?status=1",
		&http.Cookie{Name: "token", Value: signedTestToken(t, "test-secret", "user_abc")})
	orderID, _ = s.zalopayCallbackIDs(c)
	assert.Empty(t, orderID)
}

func TestZaloPayIPNMissingData(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := newTestService()

	w := httptest.NewRecorder()
	r := gin.New()
	// Middleware never ran, so no verified data is present in the context.
	r.POST("/cb", s.ZaloPayIPNHandler())
	req := httptest.NewRequest(http.MethodPost, "/cb", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"return_code":-1`)
}

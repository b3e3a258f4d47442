package paymentControllers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoMoRawSignatureOrdering(t *testing.T) {
	raw := momoRawSignature(momoSignParams{
		AccessKey:   "AK",
		Amount:      900000,
		ExtraData:   "",
		IPNURL:      "https://api.example.com/api/payment/momo-ipn",
		OrderID:     "MOMO1700000000000",
		OrderInfo:   "Thanh toan don hang MOMO1700000000000 user_abc",
		PartnerCode: "MOMO",
		RedirectURL: "https://api.example.com/api/payment/momo",
		RequestID:   "MOMO1700000000000",
		RequestType: "captureWallet",
	})

	assert.Equal(t,
		"accessKey=AK&amount=900000&extraData=&ipnUrl=https://api.example.com/api/payment/momo-ipn&orderId=MOMO1700000000000&orderInfo=Thanh toan don hang MOMO1700000000000 user_abc&partnerCode=MOMO&redirectUrl=https://api.example.com/api/payment/momo&requestId=MOMO1700000000000&requestType=captureWallet",
		raw,
	)

	// Keys must stay in alphabetical order.
	prev := -1
	for _, key := range []string{"accessKey=", "amount=", "extraData=", "ipnUrl=", "orderId=", "orderInfo=", "partnerCode=", "redirectUrl=", "requestId=", "requestType="} {
		idx := strings.Index(raw, key)
		assert.Greater(t, idx, prev, "key %s out of order", key)
		prev = idx
	}
}

func TestVNPaySignedQuery(t *testing.T) {
	params := map[string]string{
		"vnp_Version":   "2.1.0",
		"vnp_Command":   "pay",
		"vnp_TmnCode":   "TEST01",
		"vnp_Amount":    "90000000",
		"vnp_TxnRef":    "1700000000000",
		"vnp_OrderInfo": "Thanh toan don hang 1700000000000 user_abc",
		"vnp_IpAddr":    "127.0.0.1",
		"vnp_BankCode":  "",
	}
	signed := vnpaySignedQuery(params, "secret")

	query, hashPart, found := strings.Cut(signed, "&vnp_SecureHash=")
	assert.True(t, found)
	assert.Len(t, hashPart, 128, "HMAC-SHA512 hex digest")
	assert.Equal(t, hmacSHA512Hex("secret", query), hashPart, "hash covers the encoded query")

	// Empty values are dropped, keys are sorted, values URL-encoded.
	assert.NotContains(t, query, "vnp_BankCode")
	assert.Contains(t, query, "vnp_OrderInfo=Thanh+toan+don+hang+1700000000000+user_abc")
	keys := []string{"vnp_Amount=", "vnp_Command=", "vnp_IpAddr=", "vnp_OrderInfo=", "vnp_TmnCode=", "vnp_TxnRef=", "vnp_Version="}
	prev := -1
	for _, key := range keys {
		idx := strings.Index(query, key)
		assert.Greater(t, idx, prev, "key %s out of order", key)
		prev = idx
	}
}

func TestZaloPayMAC(t *testing.T) {
	mac := zalopayMAC("key1", 2553, "231120_1700000000000", "user_abc", 855000, 1700000000000, "{}", "[]")

	expected := hmacSHA256Hex("key1", "2553|231120_1700000000000|user_abc|855000|1700000000000|{}|[]")
	assert.Equal(t, expected, mac)
	assert.Len(t, mac, 64)
}

func TestZaloPayCallbackMAC(t *testing.T) {
	data := `{"app_trans_id":"231120_1700000000000","app_user":"user_abc"}`
	assert.Equal(t, hmacSHA256Hex("key2", data), zalopayCallbackMAC("key2", data))
	assert.NotEqual(t, zalopayCallbackMAC("key2", data), zalopayCallbackMAC("other", data))
}

func TestOrderIDFromInfo(t *testing.T) {
	orderID, ok := orderIDFromInfo("Thanh toan don hang MOMO1700000000000 user_abc")
	assert.True(t, ok)
	assert.Equal(t, "MOMO1700000000000", orderID)

	userID, ok := userIDFromInfo("Thanh toan don hang MOMO1700000000000 user_abc")
	assert.True(t, ok)
	assert.Equal(t, "user_abc", userID)

	_, ok = orderIDFromInfo("too short")
	assert.False(t, ok)
	_, ok = userIDFromInfo("")
	assert.False(t, ok)
}

package paymentControllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/solestride/storefront-api/models"
)

func hmacSHA256Hex(key, data string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}

func hmacSHA512Hex(key, data string) string {
	mac := hmac.New(sha512.New, []byte(key))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}

// momoSignParams are the fields MoMo requires in its canonical string, in
// the provider-mandated alphabetical key order. The string must match the
// documented layout bit-for-bit or MoMo rejects the signature.
type momoSignParams struct {
	AccessKey   string
	Amount      models.Money
	ExtraData   string
	IPNURL      string
	OrderID     string
	OrderInfo   string
	PartnerCode string
	RedirectURL string
	RequestID   string
	RequestType string
}

func momoRawSignature(p momoSignParams) string {
	return fmt.Sprintf(
		"accessKey=%s&amount=%d&extraData=%s&ipnUrl=%s&orderId=%s&orderInfo=%s&partnerCode=%s&redirectUrl=%s&requestId=%s&requestType=%s",
		p.AccessKey, p.Amount, p.ExtraData, p.IPNURL, p.OrderID, p.OrderInfo,
		p.PartnerCode, p.RedirectURL, p.RequestID, p.RequestType,
	)
}

// vnpaySignedQuery encodes the vnp_* params sorted by key, signs the
// encoded string with HMAC-SHA512 and appends vnp_SecureHash. VNPay hashes
// the URL-encoded form, not the raw values.
func vnpaySignedQuery(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if params[k] == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params[k]))
	}
	encoded := b.String()
	return encoded + "&vnp_SecureHash=" + hmacSHA512Hex(secret, encoded)
}

// zalopayMAC signs the create-order request with key1. Field order and the
// pipe delimiter are fixed by the ZaloPay contract.
func zalopayMAC(key1 string, appID int, appTransID, appUser string, amount models.Money, appTime int64, embedData, item string) string {
	data := fmt.Sprintf("%d|%s|%s|%d|%d|%s|%s", appID, appTransID, appUser, amount, appTime, embedData, item)
	return hmacSHA256Hex(key1, data)
}

// zalopayCallbackMAC verifies the IPN payload with key2.
func zalopayCallbackMAC(key2, data string) string {
	return hmacSHA256Hex(key2, data)
}

// orderIDFromInfo re-extracts the order ID from the free-text description
// the adapters populate as "<label> <orderId> <userId>". Token positions
// are fixed: the order ID is second from the end.
func orderIDFromInfo(info string) (string, bool) {
	fields := strings.Fields(info)
	if len(fields) < 3 {
		return "", false
	}
	return fields[len(fields)-2], true
}

// userIDFromInfo pulls the trailing user ID token out of the same string.
func userIDFromInfo(info string) (string, bool) {
	fields := strings.Fields(info)
	if len(fields) < 3 {
		return "", false
	}
	return fields[len(fields)-1], true
}

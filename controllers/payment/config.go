package paymentControllers

import (
	"log"
	"os"
	"strconv"
)

type MoMoConfig struct {
	PartnerCode string
	AccessKey   string
	SecretKey   string
	Endpoint    string
	RedirectURL string
	IPNURL      string
}

func (c MoMoConfig) configured() bool {
	return c.PartnerCode != "" && c.AccessKey != "" && c.SecretKey != "" && c.Endpoint != ""
}

type VNPayConfig struct {
	TmnCode    string
	HashSecret string
	PayURL     string
	ReturnURL  string
}

func (c VNPayConfig) configured() bool {
	return c.TmnCode != "" && c.HashSecret != "" && c.PayURL != ""
}

type ZaloPayConfig struct {
	AppID       int
	Key1        string
	Key2        string
	Endpoint    string
	RedirectURL string
	CallbackURL string
}

func (c ZaloPayConfig) configured() bool {
	return c.AppID != 0 && c.Key1 != "" && c.Key2 != "" && c.Endpoint != ""
}

// Config snapshots all gateway credentials at startup.
type Config struct {
	ClientURL string
	MoMo      MoMoConfig
	VNPay     VNPayConfig
	ZaloPay   ZaloPayConfig
}

// LoadConfig reads gateway settings from the environment. Gateways with
// missing credentials stay disabled; checkout against them fails with the
// generic payment-unavailable error.
func LoadConfig() Config {
	appID, _ := strconv.Atoi(os.Getenv("ZALOPAY_APP_ID"))

	cfg := Config{
		ClientURL: os.Getenv("CLIENT_URL"),
		MoMo: MoMoConfig{
			PartnerCode: os.Getenv("MOMO_PARTNER_CODE"),
			AccessKey:   os.Getenv("MOMO_ACCESS_KEY"),
			SecretKey:   os.Getenv("MOMO_SECRET_KEY"),
			Endpoint:    os.Getenv("MOMO_ENDPOINT"),
			RedirectURL: os.Getenv("MOMO_REDIRECT_URL"),
			IPNURL:      os.Getenv("MOMO_IPN_URL"),
		},
		VNPay: VNPayConfig{
			TmnCode:    os.Getenv("VNPAY_TMN_CODE"),
			HashSecret: os.Getenv("VNPAY_HASH_SECRET"),
			PayURL:     os.Getenv("VNPAY_PAY_URL"),
			ReturnURL:  os.Getenv("VNPAY_RETURN_URL"),
		},
		ZaloPay: ZaloPayConfig{
			AppID:       appID,
			Key1:        os.Getenv("ZALOPAY_KEY1"),
			Key2:        os.Getenv("ZALOPAY_KEY2"),
			Endpoint:    os.Getenv("ZALOPAY_ENDPOINT"),
			RedirectURL: os.Getenv("ZALOPAY_REDIRECT_URL"),
			CallbackURL: os.Getenv("ZALOPAY_CALLBACK_URL"),
		},
	}

	if cfg.ClientURL == "" {
		cfg.ClientURL = "http://localhost:3000"
	}
	if !cfg.MoMo.configured() {
		log.Println("payment: MoMo credentials not set, gateway disabled")
	}
	if !cfg.VNPay.configured() {
		log.Println("payment: VNPay credentials not set, gateway disabled")
	}
	if !cfg.ZaloPay.configured() {
		log.Println("payment: ZaloPay credentials not set, gateway disabled")
	}
	return cfg
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr  string
	GinMode  string
	LogLevel string

	DatabaseURL   string
	DBAutoMigrate bool

	CORSAllowedOrigins []string

	Hubtel   HubtelEnv
	Paystack PaystackEnv

	// JWT secret of the hosted auth platform; admin sessions are verified with it.
	AuthJWTSecret string

	ResendAPIKey string
	EmailFrom    string
	AdminEmail   string

	SupportPhone    string
	SupportWhatsApp string

	HTTPClientTimeout time.Duration
}

type HubtelEnv struct {
	ClientID              string
	ClientSecret          string
	MerchantAccountNumber string
	CallbackURL           string
	ReturnURL             string
	CancellationURL       string
	CheckoutBaseURL       string
	StatusBaseURL         string
}

type PaystackEnv struct {
	SecretKey string
	BaseURL   string
}

// LoadEnv reads .env (if present) and the process environment.
func LoadEnv() Env {
	_ = godotenv.Load()

	return Env{
		AppAddr:  getEnv("APP_ADDR", ":8080"),
		GinMode:  getEnv("GIN_MODE", ""),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DatabaseURL:   getEnv("DATABASE_URL", "root:@tcp(127.0.0.1:3306)/quarhire?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"),
		DBAutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", true),

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")),

		Hubtel: HubtelEnv{
			ClientID:              getEnv("HUBTEL_CLIENT_ID", ""),
			ClientSecret:          getEnv("HUBTEL_CLIENT_SECRET", ""),
			MerchantAccountNumber: getEnv("HUBTEL_MERCHANT_ACCOUNT_NUMBER", ""),
			CallbackURL:           getEnv("HUBTEL_CALLBACK_URL", ""),
			ReturnURL:             getEnv("HUBTEL_RETURN_URL", ""),
			CancellationURL:       getEnv("HUBTEL_CANCELLATION_URL", ""),
			CheckoutBaseURL:       getEnv("HUBTEL_CHECKOUT_BASE_URL", "https://payproxyapi.hubtel.com"),
			StatusBaseURL:         getEnv("HUBTEL_STATUS_BASE_URL", "https://api-txnstatus.hubtel.com"),
		},
		Paystack: PaystackEnv{
			SecretKey: getEnv("PAYSTACK_SECRET_KEY", ""),
			BaseURL:   getEnv("PAYSTACK_BASE_URL", "https://api.paystack.co"),
		},

		AuthJWTSecret: getEnv("SUPABASE_JWT_SECRET", ""),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		EmailFrom:    getEnv("EMAIL_FROM", "Quarhire <bookings@quarhire.com>"),
		AdminEmail:   getEnv("ADMIN_EMAIL", ""),

		SupportPhone:    getEnv("SUPPORT_PHONE", "+233 20 000 0000"),
		SupportWhatsApp: getEnv("SUPPORT_WHATSAPP", "https://wa.me/233200000000"),

		HTTPClientTimeout: getEnvAsDuration("HTTP_CLIENT_TIMEOUT", "30s"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	if d, err := time.ParseDuration(getEnv(key, defaultValue)); err == nil {
		return d
	}
	d, _ := time.ParseDuration(defaultValue)
	return d
}

func splitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

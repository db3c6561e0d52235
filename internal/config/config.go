package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Auth      AuthConfig
	Pricing   PricingConfig
	Orders    OrdersConfig
	Payment   PaymentConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type AuthConfig struct {
	JWTSecret     string
	AccessExpiry  int // in minutes
	RefreshExpiry int // in days
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

type PricingConfig struct {
	DeliveryFee     float64
	MinDeliveryLead time.Duration
}

type OrdersConfig struct {
	// StatusPolicy is "any" (every status reachable from every other,
	// matching the original storefront) or "forward" (New → Confirmed →
	// In Progress → Completed only).
	StatusPolicy string
}

type PaymentConfig struct {
	WhatsAppNumber string
	MerchantHandle string
	QRBaseURL      string
	QRSize         string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerWindow int
	WindowSeconds     int
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("JWT_ACCESS_EXPIRY", 15)
	viper.SetDefault("JWT_REFRESH_EXPIRY", 7)
	viper.SetDefault("ADMIN_EMAIL", "admin@bakehouse.local")
	viper.SetDefault("ADMIN_NAME", "Bakehouse Admin")
	viper.SetDefault("DELIVERY_FEE", 50.0)
	viper.SetDefault("MIN_DELIVERY_LEAD_HOURS", 25)
	viper.SetDefault("ORDER_STATUS_POLICY", "any")
	viper.SetDefault("PAYMENT_WHATSAPP_NUMBER", "")
	viper.SetDefault("PAYMENT_MERCHANT_HANDLE", "")
	viper.SetDefault("PAYMENT_QR_BASE_URL", "https://api.qrserver.com/v1/create-qr-code/")
	viper.SetDefault("PAYMENT_QR_SIZE", "220x220")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("RATE_LIMIT_ENABLED", false)
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Auth: AuthConfig{
			JWTSecret:     viper.GetString("JWT_SECRET"),
			AccessExpiry:  viper.GetInt("JWT_ACCESS_EXPIRY"),
			RefreshExpiry: viper.GetInt("JWT_REFRESH_EXPIRY"),
			AdminEmail:    viper.GetString("ADMIN_EMAIL"),
			AdminPassword: viper.GetString("ADMIN_PASSWORD"),
			AdminName:     viper.GetString("ADMIN_NAME"),
		},
		Pricing: PricingConfig{
			DeliveryFee:     viper.GetFloat64("DELIVERY_FEE"),
			MinDeliveryLead: time.Duration(viper.GetInt("MIN_DELIVERY_LEAD_HOURS")) * time.Hour,
		},
		Orders: OrdersConfig{
			StatusPolicy: viper.GetString("ORDER_STATUS_POLICY"),
		},
		Payment: PaymentConfig{
			WhatsAppNumber: viper.GetString("PAYMENT_WHATSAPP_NUMBER"),
			MerchantHandle: viper.GetString("PAYMENT_MERCHANT_HANDLE"),
			QRBaseURL:      viper.GetString("PAYMENT_QR_BASE_URL"),
			QRSize:         viper.GetString("PAYMENT_QR_SIZE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		RateLimit: RateLimitConfig{
			Enabled:           viper.GetBool("RATE_LIMIT_ENABLED"),
			RequestsPerWindow: viper.GetInt("RATE_LIMIT_REQUESTS"),
			WindowSeconds:     viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
	}
}

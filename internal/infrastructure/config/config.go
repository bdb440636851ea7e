package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Storage   StorageConfig
	Auth      AuthConfig
	Quotes    QuoteConfig
	Redis     RedisConfig
	Events    EventsConfig
	Payments  PaymentsConfig
	Telemetry TelemetryConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogLevel           string
	LogFilePath        string
	CorsAllowedOrigins []string
}

// StorageConfig selects the document store. Driver is "dynamodb" or
// "memory".
type StorageConfig struct {
	Driver               string
	Region               string
	AccessKeyID          string
	SecretAccessKey      string
	Endpoint             string
	QuotesTable          string
	ServiceRequestsTable string
	PaymentsTable        string
}

type AuthConfig struct {
	JWTSecret string
	Disabled  bool
}

type QuoteConfig struct {
	DefaultCurrency  string
	DefaultValidDays int
}

// RedisConfig is empty when Addr is blank; analytics are then not cached.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type EventsConfig struct {
	AMQPURL  string
	Exchange string
}

// PaymentsConfig holds the Mercado Pago credentials. The sandbox payer is
// only used with TEST- access tokens.
type PaymentsConfig struct {
	MercadoPagoAccessToken string
	Mock                   bool
	SandboxPayerEmail      string
	SandboxPayerUserID     string
}

type TelemetryConfig struct {
	Enabled      bool
	ServiceName  string
	OTLPEndpoint string
	OTLPInsecure bool
	SampleRatio  float64
}

// Load reads the environment, after an optional .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		App: AppConfig{
			Port:               getenvDefault("APP_PORT", "8080"),
			Environment:        getenvDefault("APP_ENV", "development"),
			LogLevel:           getenvDefault("LOG_LEVEL", "info"),
			LogFilePath:        os.Getenv("LOG_FILE_PATH"),
			CorsAllowedOrigins: splitList(getenvDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		Storage: StorageConfig{
			Driver:               strings.ToLower(getenvDefault("STORAGE_DRIVER", "dynamodb")),
			Region:               getenvDefault("AWS_REGION", "us-east-1"),
			AccessKeyID:          getenvDefault("AWS_ACCESS_KEY_ID", "local"),
			SecretAccessKey:      getenvDefault("AWS_SECRET_ACCESS_KEY", "local"),
			Endpoint:             os.Getenv("DYNAMODB_ENDPOINT"),
			QuotesTable:          getenvDefault("QUOTES_TABLE", "price_quotes"),
			ServiceRequestsTable: getenvDefault("SERVICE_REQUESTS_TABLE", "serviceRequest"),
			PaymentsTable:        getenvDefault("PAYMENTS_TABLE", "payments"),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
			Disabled:  readBool("AUTH_DISABLED", false),
		},
		Quotes: QuoteConfig{
			DefaultCurrency:  strings.ToUpper(getenvDefault("DEFAULT_CURRENCY", "USD")),
			DefaultValidDays: readInt("QUOTE_DEFAULT_VALID_DAYS", 7),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       readInt("REDIS_DB", 0),
			TTL:      readDuration("ANALYTICS_CACHE_TTL", time.Minute),
		},
		Events: EventsConfig{
			AMQPURL:  firstNonEmpty(os.Getenv("AMQP_URL"), os.Getenv("RABBITMQ_URL")),
			Exchange: getenvDefault("EVENTS_EXCHANGE", "ritual_desk.events"),
		},
		Payments: PaymentsConfig{
			MercadoPagoAccessToken: os.Getenv("MERCADOPAGO_ACCESS_TOKEN"),
			Mock:                   readBool("PAYMENT_GATEWAY_MOCK", false) || readBool("MERCADOPAGO_MOCK", false),
			SandboxPayerEmail:      os.Getenv("MERCADOPAGO_TEST_PAYER_EMAIL"),
			SandboxPayerUserID:     os.Getenv("MERCADOPAGO_TEST_PAYER_USER_ID"),
		},
		Telemetry: TelemetryConfig{
			Enabled:      readBool("OTEL_ENABLED", false),
			ServiceName:  getenvDefault("OTEL_SERVICE_NAME", "ritual-desk"),
			OTLPEndpoint: strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
			OTLPInsecure: readBool("OTEL_EXPORTER_OTLP_INSECURE", false),
			SampleRatio:  readRatio("OTEL_SAMPLER_RATIO", 0.1),
		},
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func readInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func readBool(key string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "":
		return fallback
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}

// readRatio parses a float clamped to [0, 1].
func readRatio(key string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func readDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

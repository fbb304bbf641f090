package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend  BackendConfig
	Checkout CheckoutConfig
	Session  SessionConfig
	Redis    RedisConfig
}

// BackendConfig points at the gym's REST backend, the source of truth for
// all business state.
type BackendConfig struct {
	BaseURL string        `env:"BACKEND_BASE_URL, default=http://localhost:8000/api"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT,  default=10s"`
}

type CheckoutConfig struct {
	// ReturnURL is where the payment gateway sends the browser after the
	// user finishes (or aborts) the payment form.
	ReturnURL string `env:"CHECKOUT_RETURN_URL, default=http://localhost:8000/api/webpay/return/"`
	// MarkerTTL bounds the in-flight marker's lifetime; it approximates a
	// browser session, surviving the gateway round trip but not a new visit.
	MarkerTTL time.Duration `env:"CHECKOUT_MARKER_TTL, default=12h"`
}

type SessionConfig struct {
	CookieName   string        `env:"SESSION_COOKIE,        default=gymstore_sid"`
	CookieSecure bool          `env:"SESSION_COOKIE_SECURE, default=false"`
	TokenTTL     time.Duration `env:"SESSION_TOKEN_TTL,     default=720h"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

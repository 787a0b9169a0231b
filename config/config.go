package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the server needs from the environment. It is built
// once in main and handed to each component; nothing reads os.Getenv at
// request time.
type Config struct {
	// Server
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	CORSOrigins string `envconfig:"CORS_ORIGINS" default:""`

	// Rate limiting (requests per window, per client IP)
	RateLimitWindowSec int `envconfig:"RATE_LIMIT_WINDOW_SEC" default:"900"`
	RateLimitMax       int `envconfig:"RATE_LIMIT_MAX_REQUESTS" default:"100"`

	// Database
	MySQLURL    string `envconfig:"MYSQL_URL" default:""`
	DatabaseURL string `envconfig:"DATABASE_URL" default:""`
	DBUser      string `envconfig:"DB_USER" default:"root"`
	DBPass      string `envconfig:"DB_PASS" default:""`
	DBHost      string `envconfig:"DB_HOST" default:"127.0.0.1"`
	DBPort      string `envconfig:"DB_PORT" default:"3306"`
	DBName      string `envconfig:"DB_NAME" default:"guesthouse_db"`

	// SMTP. When host/user/pass are unset the mailer runs in mock mode and
	// only logs what it would have sent.
	SMTPHost     string `envconfig:"SMTP_HOST" default:""`
	SMTPPort     string `envconfig:"SMTP_PORT" default:"465"`
	SMTPUser     string `envconfig:"SMTP_USERNAME" default:""`
	SMTPPass     string `envconfig:"SMTP_PASSWORD" default:""`
	SMTPFromName string `envconfig:"SMTP_FROM_NAME" default:"Casa Bucuriei"`

	// Business settings
	OwnerEmail    string  `envconfig:"OWNER_EMAIL" default:"owner@casabucuriei.ro"`
	BusinessName  string  `envconfig:"BUSINESS_NAME" default:"Casa Bucuriei"`
	PricePerNight float64 `envconfig:"PRICE_PER_NIGHT" default:"150"`
	MaxGuests     int     `envconfig:"MAX_GUESTS" default:"8"`
	CheckInTime   string  `envconfig:"CHECKIN_TIME" default:"15:00"`
	CheckOutTime  string  `envconfig:"CHECKOUT_TIME" default:"11:00"`
	Currency      string  `envconfig:"CURRENCY" default:"RON"`

	// Online payments are scaffolding only: the flag exists so the frontend
	// can ask, but no payment flow is wired behind it.
	PaymentsEnabled bool `envconfig:"PAYMENTS_ENABLED" default:"false"`
}

func Load() (Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	return c, err
}

// IsProduction reports whether stack detail should be kept out of responses.
func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

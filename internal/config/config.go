package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Autentke"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		URL      string `envconfig:"DATABASE_URL"`
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"autentke"`
		Migrate  bool   `envconfig:"DB_MIGRATE" default:"true"`
	}

	Server struct {
		Timeout      time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
		WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	}

	// Shop holds the business defaults used by pricing and the dashboard.
	Shop struct {
		DefaultGoal   decimal.Decimal `envconfig:"SHOP_DEFAULT_GOAL" default:"5000"`
		DefaultMarkup decimal.Decimal `envconfig:"SHOP_DEFAULT_MARKUP" default:"2.5"`
		PromoDiscount decimal.Decimal `envconfig:"SHOP_PROMO_DISCOUNT" default:"10"`
		TopBuyers     int             `envconfig:"SHOP_TOP_BUYERS" default:"5"`
	}

	Log struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info"`
		Format string `envconfig:"LOG_FORMAT" default:"text"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}
}

func (c *Config) ConnectionString() string {
	if c.DB.URL != "" {
		return c.DB.URL
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// DefaultGoalCents returns the fallback monthly target in cents.
func (c *Config) DefaultGoalCents() int64 {
	return c.Shop.DefaultGoal.Shift(2).Round(0).IntPart()
}

// Validate rejects settings that would make pricing or the server misbehave.
func (c *Config) Validate() error {
	var problems []string

	if c.App.Port < 1 || c.App.Port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", c.App.Port))
	}

	if !c.Shop.DefaultMarkup.IsPositive() {
		problems = append(problems, "default markup must be positive")
	}

	if c.Shop.PromoDiscount.IsNegative() || c.Shop.PromoDiscount.GreaterThan(decimal.NewFromInt(100)) {
		problems = append(problems, "promo discount must be between 0 and 100")
	}

	if c.Shop.DefaultGoal.IsNegative() {
		problems = append(problems, "default goal cannot be negative")
	}

	if c.Shop.TopBuyers < 1 {
		problems = append(problems, "top buyers limit must be at least 1")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config:\n- %s", strings.Join(problems, "\n- "))
	}

	return nil
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Logger builds the slog logger described by the Log section.
func (c *Config) Logger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}

	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

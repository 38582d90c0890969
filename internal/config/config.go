package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/clinicore/clinicore/pkg/timeslot"
)

type Config struct {
	Port        string   `mapstructure:"PORT"`
	Env         string   `mapstructure:"ENV"`
	DatabaseURL string   `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32    `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`

	AuthIssuer   string `mapstructure:"AUTH_ISSUER"`
	AuthJWKSURL  string `mapstructure:"AUTH_JWKS_URL"`
	AuthAudience string `mapstructure:"AUTH_AUDIENCE"`

	// Slot grid. The dashboard grid historically runs to 18:00 while the
	// booking grid stops at 17:15; both bounds stay configurable rather
	// than hard-coded at the call sites.
	SlotMinutes          int    `mapstructure:"SLOT_MINUTES"`
	BookingWindowStart   string `mapstructure:"BOOKING_WINDOW_START"`
	BookingWindowEnd     string `mapstructure:"BOOKING_WINDOW_END"`
	DashboardWindowStart string `mapstructure:"DASHBOARD_WINDOW_START"`
	DashboardWindowEnd   string `mapstructure:"DASHBOARD_WINDOW_END"`

	// Request hardening.
	BodyLimitBytes        int64 `mapstructure:"BODY_LIMIT_BYTES"`
	RequestTimeoutSeconds int   `mapstructure:"REQUEST_TIMEOUT_SECONDS"`

	// Earnings rollups use this flat per-consultation fee, not the fee
	// stored on individual appointments.
	ConsultationFee int64 `mapstructure:"CONSULTATION_FEE"`
	EarningsDaySpan int   `mapstructure:"EARNINGS_DAY_SPAN"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("SLOT_MINUTES", 15)
	v.SetDefault("BOOKING_WINDOW_START", "09:00")
	v.SetDefault("BOOKING_WINDOW_END", "17:15")
	v.SetDefault("DASHBOARD_WINDOW_START", "09:00")
	v.SetDefault("DASHBOARD_WINDOW_END", "18:00")
	v.SetDefault("BODY_LIMIT_BYTES", 1<<20)
	v.SetDefault("REQUEST_TIMEOUT_SECONDS", 30)
	v.SetDefault("CONSULTATION_FEE", 300)
	v.SetDefault("EARNINGS_DAY_SPAN", 7)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("AUTH_ISSUER")
	v.BindEnv("AUTH_JWKS_URL")
	v.BindEnv("AUTH_AUDIENCE")
	v.BindEnv("SLOT_MINUTES")
	v.BindEnv("BOOKING_WINDOW_START")
	v.BindEnv("BOOKING_WINDOW_END")
	v.BindEnv("DASHBOARD_WINDOW_START")
	v.BindEnv("DASHBOARD_WINDOW_END")
	v.BindEnv("BODY_LIMIT_BYTES")
	v.BindEnv("REQUEST_TIMEOUT_SECONDS")
	v.BindEnv("CONSULTATION_FEE")
	v.BindEnv("EARNINGS_DAY_SPAN")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// BookingWindow returns the slot grid offered to patients.
func (c *Config) BookingWindow() (timeslot.Window, error) {
	return timeslot.WindowBetween(c.BookingWindowStart, c.BookingWindowEnd, c.SlotMinutes)
}

// DashboardWindow returns the slot grid shown on the doctor dashboard.
func (c *Config) DashboardWindow() (timeslot.Window, error) {
	return timeslot.WindowBetween(c.DashboardWindowStart, c.DashboardWindowEnd, c.SlotMinutes)
}

// Validate checks that the slot grid and earnings settings are usable.
func (c *Config) Validate() error {
	if _, err := c.BookingWindow(); err != nil {
		return fmt.Errorf("booking window: %w", err)
	}
	if _, err := c.DashboardWindow(); err != nil {
		return fmt.Errorf("dashboard window: %w", err)
	}
	if c.BodyLimitBytes <= 0 {
		return fmt.Errorf("BODY_LIMIT_BYTES must be positive, got %d", c.BodyLimitBytes)
	}
	if c.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be positive, got %d", c.RequestTimeoutSeconds)
	}
	if c.ConsultationFee < 0 {
		return fmt.Errorf("CONSULTATION_FEE must not be negative, got %v", c.ConsultationFee)
	}
	if c.EarningsDaySpan <= 0 {
		return fmt.Errorf("EARNINGS_DAY_SPAN must be positive, got %d", c.EarningsDaySpan)
	}
	return nil
}

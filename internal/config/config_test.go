package config

import (
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	os.Setenv("DATABASE_URL", "postgres://localhost/clinic_test")
	defer os.Unsetenv("DATABASE_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.SlotMinutes != 15 {
		t.Errorf("expected 15-minute slots, got %d", cfg.SlotMinutes)
	}
	if cfg.BookingWindowEnd != "17:15" {
		t.Errorf("expected booking window end 17:15, got %s", cfg.BookingWindowEnd)
	}
	if cfg.DashboardWindowEnd != "18:00" {
		t.Errorf("expected dashboard window end 18:00, got %s", cfg.DashboardWindowEnd)
	}
	if cfg.EarningsDaySpan != 7 {
		t.Errorf("expected trailing 7 days, got %d", cfg.EarningsDaySpan)
	}
	if cfg.BodyLimitBytes != 1<<20 {
		t.Errorf("expected 1 MiB body limit, got %d", cfg.BodyLimitBytes)
	}
	if cfg.RequestTimeoutSeconds != 30 {
		t.Errorf("expected 30s request timeout, got %d", cfg.RequestTimeoutSeconds)
	}
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	os.Unsetenv("DATABASE_URL")
	if _, err := Load(); err == nil {
		t.Error("expected error when DATABASE_URL is missing")
	}
}

func TestLoad_WindowsDifferByDefault(t *testing.T) {
	os.Setenv("DATABASE_URL", "postgres://localhost/clinic_test")
	defer os.Unsetenv("DATABASE_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	booking, err := cfg.BookingWindow()
	if err != nil {
		t.Fatalf("booking window: %v", err)
	}
	dashboard, err := cfg.DashboardWindow()
	if err != nil {
		t.Fatalf("dashboard window: %v", err)
	}
	if len(booking.Generate()) != 33 {
		t.Errorf("expected 33 booking slots, got %d", len(booking.Generate()))
	}
	if len(dashboard.Generate()) != 36 {
		t.Errorf("expected 36 dashboard slots, got %d", len(dashboard.Generate()))
	}
}

func TestValidate_RejectsBadWindow(t *testing.T) {
	cfg := &Config{
		SlotMinutes:           15,
		BookingWindowStart:    "18:00",
		BookingWindowEnd:      "09:00",
		DashboardWindowStart:  "09:00",
		DashboardWindowEnd:    "18:00",
		BodyLimitBytes:        1 << 20,
		RequestTimeoutSeconds: 30,
		ConsultationFee:       300,
		EarningsDaySpan:       7,
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for inverted booking window")
	}
}

func TestValidate_RejectsNegativeFee(t *testing.T) {
	cfg := &Config{
		SlotMinutes:           15,
		BookingWindowStart:    "09:00",
		BookingWindowEnd:      "17:15",
		DashboardWindowStart:  "09:00",
		DashboardWindowEnd:    "18:00",
		BodyLimitBytes:        1 << 20,
		RequestTimeoutSeconds: 30,
		ConsultationFee:       -1,
		EarningsDaySpan:       7,
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative fee")
	}
}

func TestValidate_RejectsZeroBodyLimit(t *testing.T) {
	cfg := &Config{
		SlotMinutes:           15,
		BookingWindowStart:    "09:00",
		BookingWindowEnd:      "17:15",
		DashboardWindowStart:  "09:00",
		DashboardWindowEnd:    "18:00",
		BodyLimitBytes:        0,
		RequestTimeoutSeconds: 30,
		ConsultationFee:       300,
		EarningsDaySpan:       7,
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero body limit")
	}
}

package utils

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSessionForHour(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{23, "Asia"},
		{0, "Asia"},
		{6, "Asia"},
		{7, "London"},
		{11, "London"},
		{12, "New York"},
		{20, "New York"},
		{21, ""},
		{22, "Asia"},
		{-1, ""},
		{24, ""},
	}
	for _, tt := range tests {
		if got := SessionForHour(tt.hour); got != tt.want {
			t.Errorf("SessionForHour(%d) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}

func TestFormatR(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{2.5, "+2.50R"},
		{-1, "-1.00R"},
		{0, "0.00R"},
	}
	for _, tt := range tests {
		if got := FormatR(tt.in); got != tt.want {
			t.Errorf("FormatR(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("a longer sentence", 8); got != "a longe…" {
		t.Errorf("Truncate = %q", got)
	}
}

func TestRetryWithResult(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, BackoffFactor: 2}

	attempts := 0
	got, err := RetryWithResult(context.Background(), cfg, func() (int, error) {
		attempts++
		if attempts < 3 {
			return 0, errors.New("transient")
		}
		return 42, nil
	})
	if err != nil || got != 42 {
		t.Errorf("RetryWithResult = %d, %v", got, err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}

	boom := errors.New("boom")
	attempts = 0
	_, err = RetryWithResult(context.Background(), cfg, func() (int, error) {
		attempts++
		return 0, boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("exhausted err = %v, want last error", err)
	}
	if attempts != cfg.MaxAttempts {
		t.Errorf("attempts = %d, want %d", attempts, cfg.MaxAttempts)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = RetryWithResult(ctx, cfg, func() (int, error) {
		return 0, errors.New("never succeeds")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled err = %v", err)
	}
}

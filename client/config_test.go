package client_test

import (
	"errors"
	"testing"
	"time"

	"github.com/adamwoolhether/reqkit/client"
	"github.com/adamwoolhether/reqkit/client/throttle"
	"github.com/google/go-cmp/cmp"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("RQK_TIMEOUT", "5s")
	t.Setenv("RQK_USER_AGENT", "cfg/1.0")
	t.Setenv("RQK_THROTTLE_RPS", "20")
	t.Setenv("RQK_THROTTLE_BURST", "5")
	t.Setenv("RQK_NO_FOLLOW_REDIRECTS", "true")
	t.Setenv("RQK_REQUEST_ID_HEADER", "X-Request-ID")

	cfg, err := client.LoadConfig("RQK")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	exp := client.Config{
		Timeout:           5 * time.Second,
		UserAgent:         "cfg/1.0",
		ThrottleRPS:       20,
		ThrottleBurst:     5,
		NoFollowRedirects: true,
		RequestIDHeader:   "X-Request-ID",
	}
	if diff := cmp.Diff(exp, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	if got := len(cfg.Options()); got != 5 {
		t.Errorf("expected 5 options, got %d", got)
	}

	if _, err := client.Build(cfg.Options()...); err != nil {
		t.Errorf("expected loaded config to build, got: %v", err)
	}
}

func TestLoadConfig_Empty(t *testing.T) {
	cfg, err := client.LoadConfig("RQK_UNSET")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if diff := cmp.Diff(client.Config{}, cfg); diff != "" {
		t.Errorf("expected zero config (-want +got):\n%s", diff)
	}
	if opts := cfg.Options(); len(opts) != 0 {
		t.Errorf("expected no options, got %d", len(opts))
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("RQK_TIMEOUT", "soon")

	if _, err := client.LoadConfig("RQK"); err == nil {
		t.Fatal("expected error for malformed duration")
	}
}

func TestConfig_HalfThrottle(t *testing.T) {
	cfg := client.Config{ThrottleRPS: 10}

	_, err := client.Build(cfg.Options()...)
	if !errors.Is(err, throttle.ErrMustNotBeZero) {
		t.Fatalf("expected ErrMustNotBeZero, got: %v", err)
	}
}

package otelx

import (
	"os"
	"testing"
)

func TestConfigFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"OTEL_ENABLED", "OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_SAMPLING_RATIO"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := ConfigFromEnv("booking-service")
	if !cfg.Enabled {
		t.Fatalf("expected tracing enabled by default")
	}
	if cfg.ServiceName != "booking-service" {
		t.Fatalf("unexpected service name %q", cfg.ServiceName)
	}
	if cfg.OTLPEndpoint != "jaeger:4317" {
		t.Fatalf("unexpected endpoint %q", cfg.OTLPEndpoint)
	}
	if cfg.SampleRatio != 1.0 {
		t.Fatalf("unexpected sample ratio %v", cfg.SampleRatio)
	}
}

func TestConfigFromEnvOverrides(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "false")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4317")
	t.Setenv("OTEL_SAMPLING_RATIO", "0.25")

	cfg := ConfigFromEnv("gateway-service")
	if cfg.Enabled {
		t.Fatalf("expected tracing disabled")
	}
	if cfg.OTLPEndpoint != "collector:4317" {
		t.Fatalf("unexpected endpoint %q", cfg.OTLPEndpoint)
	}
	if cfg.SampleRatio != 0.25 {
		t.Fatalf("unexpected sample ratio %v", cfg.SampleRatio)
	}
}

package scheduling

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPProvider_GetAvailabilityConfig(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/internal/v1/availability-config" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("business_id") != "biz-1" || q.Get("service_id") != "svc-1" || q.Get("date") != "2026-01-28" {
			t.Fatalf("unexpected query %s", r.URL.RawQuery)
		}
		if q.Get("staff_id") != "staff-1" {
			t.Fatalf("expected staff_id to be forwarded, got %q", q.Get("staff_id"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"days": [
				{"open": false},
				{"open": true, "open_minute": 540, "close_minute": 1080},
				{"open": true, "open_minute": 540, "close_minute": 1080},
				{"open": true, "open_minute": 540, "close_minute": 1080},
				{"open": true, "open_minute": 540, "close_minute": 1080},
				{"open": true, "open_minute": 540, "close_minute": 1080},
				{"open": false}
			],
			"slot_granularity_minutes": 30,
			"min_lead_minutes": 60,
			"max_advance_days": 30,
			"min_change_minutes": 120,
			"prevent_gaps": true,
			"duration_minutes": 45,
			"shortest_service_minutes": 15,
			"timezone": "UTC",
			"time_off": [
				{"start": "2026-01-28T12:00:00Z", "end": "2026-01-28T13:00:00Z"}
			]
		}`))
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL)
	cfg, err := p.GetAvailabilityConfig(context.Background(), "biz-1", "svc-1", "staff-1", "2026-01-28")
	if err != nil {
		t.Fatalf("GetAvailabilityConfig failed: %v", err)
	}
	if cfg.DurationMinutes != 45 {
		t.Fatalf("expected duration 45, got %d", cfg.DurationMinutes)
	}
	if cfg.Calendar.Granularity != 30*time.Minute {
		t.Fatalf("expected 30m granularity, got %s", cfg.Calendar.Granularity)
	}
	if cfg.Calendar.MinLead != time.Hour || cfg.Calendar.MinChange != 2*time.Hour {
		t.Fatalf("unexpected lead/change: %s / %s", cfg.Calendar.MinLead, cfg.Calendar.MinChange)
	}
	if cfg.Calendar.MaxAdvance != 30 || !cfg.Calendar.PreventGaps {
		t.Fatalf("unexpected advance/gaps: %d / %v", cfg.Calendar.MaxAdvance, cfg.Calendar.PreventGaps)
	}
	if !cfg.Calendar.Days[1].Open || cfg.Calendar.Days[0].Open {
		t.Fatal("day rules not mapped by weekday")
	}
	if len(cfg.TimeOff) != 1 {
		t.Fatalf("expected 1 time-off interval, got %d", len(cfg.TimeOff))
	}
}

func TestHTTPProvider_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL)
	if _, err := p.GetAvailabilityConfig(context.Background(), "biz-1", "svc-missing", "", "2026-01-28"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestHTTPProvider_RejectsZeroDuration(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"duration_minutes": 0, "timezone": "UTC"}`))
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL)
	if _, err := p.GetAvailabilityConfig(context.Background(), "biz-1", "svc-1", "", "2026-01-28"); err == nil {
		t.Fatal("expected error for zero duration")
	}
}

func TestToConfig_Defaults(t *testing.T) {
	resp := availabilityConfigResponse{
		DurationMinutes: 30,
		Timezone:        "Not/AZone",
	}
	cfg, err := resp.toConfig()
	if err != nil {
		t.Fatalf("toConfig failed: %v", err)
	}
	if cfg.Calendar.Granularity != 15*time.Minute {
		t.Fatalf("expected 15m default granularity, got %s", cfg.Calendar.Granularity)
	}
	if cfg.Calendar.Location != time.UTC {
		t.Fatalf("expected UTC fallback, got %s", cfg.Calendar.Location)
	}
}

package policy

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sadia-akter/trimly/services/booking-service/internal/approval"
)

type failingProvider struct{}

func (failingProvider) BookingPolicy(context.Context, string, string) (BookingPolicy, error) {
	return BookingPolicy{}, errors.New("connection refused")
}

func TestHTTPProvider_BookingPolicy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/internal/v1/booking-policy" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("customer_ref") != "cust-7" {
			t.Fatalf("expected customer_ref forwarded, got %q", r.URL.Query().Get("customer_ref"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"approval_mode": "vip", "vip": true, "min_change_minutes": 90}`))
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL)
	pol, err := p.BookingPolicy(context.Background(), "biz-1", "cust-7")
	if err != nil {
		t.Fatalf("BookingPolicy failed: %v", err)
	}
	if pol.ApprovalMode != approval.ModeVIP || !pol.VIP || pol.MinChangeMinutes != 90 {
		t.Fatalf("unexpected policy: %+v", pol)
	}
}

func TestHTTPProvider_UnknownModeFallsBackToManual(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"approval_mode": "instant", "min_change_minutes": 60}`))
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL)
	pol, err := p.BookingPolicy(context.Background(), "biz-1", "")
	if err != nil {
		t.Fatalf("BookingPolicy failed: %v", err)
	}
	if pol.ApprovalMode != approval.ModeManual {
		t.Fatalf("expected manual fallback, got %s", pol.ApprovalMode)
	}
}

func TestFallbackProvider_PrefersPrimary(t *testing.T) {
	primary := NewStaticProvider(BookingPolicy{ApprovalMode: approval.ModeAutomatic, VIP: true, MinChangeMinutes: 60})
	cacheCalled := false
	cache := func(context.Context, string) (string, int, error) {
		cacheCalled = true
		return "manual", 120, nil
	}

	p := NewFallbackProvider(primary, cache, slog.Default())
	pol, err := p.BookingPolicy(context.Background(), "biz-1", "cust-1")
	if err != nil {
		t.Fatalf("BookingPolicy failed: %v", err)
	}
	if pol.ApprovalMode != approval.ModeAutomatic || !pol.VIP {
		t.Fatalf("expected primary answer, got %+v", pol)
	}
	if cacheCalled {
		t.Fatal("cache should not be consulted when primary answers")
	}
}

func TestFallbackProvider_CacheAnswersWithoutVIP(t *testing.T) {
	cache := func(context.Context, string) (string, int, error) {
		return "vip", 180, nil
	}

	p := NewFallbackProvider(failingProvider{}, cache, slog.Default())
	pol, err := p.BookingPolicy(context.Background(), "biz-1", "cust-1")
	if err != nil {
		t.Fatalf("expected cached answer, got error: %v", err)
	}
	if pol.ApprovalMode != approval.ModeVIP {
		t.Fatalf("expected cached vip mode, got %s", pol.ApprovalMode)
	}
	// The cache carries no VIP data, so a vip-mode business effectively
	// treats the customer as non-VIP for this request.
	if pol.VIP {
		t.Fatal("cached answers must not grant VIP")
	}
	if pol.MinChangeMinutes != 180 {
		t.Fatalf("expected cached min change 180, got %d", pol.MinChangeMinutes)
	}
}

func TestFallbackProvider_BothFail(t *testing.T) {
	cache := func(context.Context, string) (string, int, error) {
		return "", 0, errors.New("no cached row")
	}
	p := NewFallbackProvider(failingProvider{}, cache, slog.Default())
	if _, err := p.BookingPolicy(context.Background(), "biz-1", ""); err == nil {
		t.Fatal("expected error when primary and cache both fail")
	}
}

// Package policy answers how a new appointment for a given customer should
// start out: which approval mode the business runs, whether this customer is
// a VIP, and how much notice changes require.
package policy

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sadia-akter/trimly/services/booking-service/internal/approval"
)

// BookingPolicy is business-service's answer for one business/customer pair.
type BookingPolicy struct {
	ApprovalMode     approval.Mode `json:"approval_mode"`
	VIP              bool          `json:"vip"`
	MinChangeMinutes int           `json:"min_change_minutes"`
}

type Provider interface {
	BookingPolicy(ctx context.Context, businessID, customerRef string) (BookingPolicy, error)
}

type staticProvider struct {
	policy BookingPolicy
}

// NewStaticProvider returns a Provider that answers the same policy for every
// business. Used in tests and when no business-service is configured.
func NewStaticProvider(policy BookingPolicy) Provider {
	return &staticProvider{policy: policy}
}

func (p *staticProvider) BookingPolicy(_ context.Context, _, _ string) (BookingPolicy, error) {
	return p.policy, nil
}

// CacheLookup reads a locally cached policy for a business. Used as the
// fallback when business-service cannot be reached.
type CacheLookup func(ctx context.Context, businessID string) (mode string, minChangeMinutes int, err error)

type fallbackProvider struct {
	primary Provider
	cache   CacheLookup
	logger  *slog.Logger
}

// NewFallbackProvider answers from primary, and on failure from the local
// cache. Cached answers carry no VIP information, so vip-mode businesses
// degrade to manual approval for the request in question.
func NewFallbackProvider(primary Provider, cache CacheLookup, logger *slog.Logger) Provider {
	return &fallbackProvider{primary: primary, cache: cache, logger: logger}
}

func (p *fallbackProvider) BookingPolicy(ctx context.Context, businessID, customerRef string) (BookingPolicy, error) {
	pol, err := p.primary.BookingPolicy(ctx, businessID, customerRef)
	if err == nil {
		return pol, nil
	}
	p.logger.Warn("policy lookup failed, trying local cache", "err", err, "business_id", businessID)

	mode, minChange, cacheErr := p.cache(ctx, businessID)
	if cacheErr != nil {
		return BookingPolicy{}, err
	}
	parsed, parseErr := approval.ParseMode(mode)
	if parseErr != nil {
		parsed = approval.ModeManual
	}
	return BookingPolicy{ApprovalMode: parsed, VIP: false, MinChangeMinutes: minChange}, nil
}

type httpProvider struct {
	baseURL string
	client  *http.Client
}

func NewHTTPProvider(baseURL string) Provider {
	return &httpProvider{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  &http.Client{Timeout: 3 * time.Second},
	}
}

func (p *httpProvider) BookingPolicy(ctx context.Context, businessID, customerRef string) (BookingPolicy, error) {
	q := url.Values{}
	q.Set("business_id", businessID)
	if customerRef != "" {
		q.Set("customer_ref", customerRef)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/internal/v1/booking-policy?"+q.Encode(), nil)
	if err != nil {
		return BookingPolicy{}, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return BookingPolicy{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return BookingPolicy{}, fmt.Errorf("booking policy request returned %d", resp.StatusCode)
	}
	var out BookingPolicy
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return BookingPolicy{}, err
	}
	if _, err := approval.ParseMode(string(out.ApprovalMode)); err != nil {
		out.ApprovalMode = approval.ModeManual
	}
	return out, nil
}

// Package scheduling fetches the availability configuration the slot
// pipeline needs from business-service: the weekly calendar, booking policy
// knobs, service duration, and staff time off for the requested date.
package scheduling

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sadia-akter/trimly/services/booking-service/internal/calendar"
	"github.com/sadia-akter/trimly/services/booking-service/internal/slots"
)

// ErrNotFound means the business, service, or staff member does not exist or
// is inactive.
var ErrNotFound = errors.New("business, service, or staff not found")

// Config is everything booking-service needs to compute slots for one
// business/service/staff/date request.
type Config struct {
	Calendar               calendar.Calendar
	DurationMinutes        int
	ShortestServiceMinutes int
	Timezone               string
	TimeOff                []slots.Interval // absolute intervals on the requested date
}

type Provider interface {
	GetAvailabilityConfig(ctx context.Context, businessID, serviceID, staffID, date string) (Config, error)
}

// availabilityConfigResponse is the wire shape served by business-service's
// internal availability-config endpoint.
type availabilityConfigResponse struct {
	Days                   [7]calendar.DayRule `json:"days"`
	SlotGranularityMinutes int                 `json:"slot_granularity_minutes"`
	MinLeadMinutes         int                 `json:"min_lead_minutes"`
	MaxAdvanceDays         int                 `json:"max_advance_days"`
	MinChangeMinutes       int                 `json:"min_change_minutes"`
	PreventGaps            bool                `json:"prevent_gaps"`
	DurationMinutes        int                 `json:"duration_minutes"`
	ShortestServiceMinutes int                 `json:"shortest_service_minutes"`
	Timezone               string              `json:"timezone"`
	TimeOff                []struct {
		Start time.Time `json:"start"`
		End   time.Time `json:"end"`
	} `json:"time_off"`
}

type httpProvider struct {
	baseURL string
	client  *http.Client
}

// NewHTTPProvider returns a Provider backed by business-service's internal
// HTTP API. baseURL is the service root, e.g. http://business-service:8082.
func NewHTTPProvider(baseURL string) Provider {
	return &httpProvider{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  &http.Client{Timeout: 3 * time.Second},
	}
}

func (p *httpProvider) GetAvailabilityConfig(ctx context.Context, businessID, serviceID, staffID, date string) (Config, error) {
	q := url.Values{}
	q.Set("business_id", businessID)
	q.Set("service_id", serviceID)
	if staffID != "" {
		q.Set("staff_id", staffID)
	}
	q.Set("date", date)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/internal/v1/availability-config?"+q.Encode(), nil)
	if err != nil {
		return Config{}, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return Config{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Config{}, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return Config{}, fmt.Errorf("availability config request returned %d", resp.StatusCode)
	}

	var body availabilityConfigResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Config{}, err
	}
	return body.toConfig()
}

func (r availabilityConfigResponse) toConfig() (Config, error) {
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		loc = time.UTC
	}
	cfg := Config{
		Calendar: calendar.Calendar{
			Days:        r.Days,
			Granularity: time.Duration(r.SlotGranularityMinutes) * time.Minute,
			MinLead:     time.Duration(r.MinLeadMinutes) * time.Minute,
			MinChange:   time.Duration(r.MinChangeMinutes) * time.Minute,
			MaxAdvance:  r.MaxAdvanceDays,
			PreventGaps: r.PreventGaps,
			Location:    loc,
		},
		DurationMinutes:        r.DurationMinutes,
		ShortestServiceMinutes: r.ShortestServiceMinutes,
		Timezone:               r.Timezone,
	}
	if cfg.DurationMinutes <= 0 {
		return Config{}, fmt.Errorf("invalid service duration %d", r.DurationMinutes)
	}
	if cfg.Calendar.Granularity <= 0 {
		cfg.Calendar.Granularity = 15 * time.Minute
	}
	for _, t := range r.TimeOff {
		if t.End.After(t.Start) {
			cfg.TimeOff = append(cfg.TimeOff, slots.Interval{Start: t.Start, End: t.End})
		}
	}
	return cfg, nil
}

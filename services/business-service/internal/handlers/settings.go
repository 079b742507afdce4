package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sadia-akter/trimly/services/business-service/internal/outbox"
	"github.com/sadia-akter/trimly/services/business-service/internal/settings"
)

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	businessID := businessIDFromHeader(r)
	if businessID == "" {
		http.Error(w, "missing X-Business-Id", http.StatusBadRequest)
		return
	}

	s, err := h.repo.GetSettings(r.Context(), businessID)
	if err != nil {
		http.Error(w, "failed to load settings", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s)
}

// UpdateSettings replaces the whole settings row and publishes the change so
// booking-service can refresh its local policy cache.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	businessID := businessIDFromHeader(r)
	if businessID == "" {
		http.Error(w, "missing X-Business-Id", http.StatusBadRequest)
		return
	}

	var req settings.BookingSettings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		if errors.Is(err, settings.ErrOutOfRange) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, "invalid settings", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	tx, err := h.repo.Begin(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := h.repo.UpsertSettings(ctx, tx, businessID, req); err != nil {
		http.Error(w, "failed to update settings", http.StatusInternalServerError)
		return
	}

	payload, err := json.Marshal(map[string]any{
		"business_id":              businessID,
		"approval_mode":            req.ApprovalMode,
		"min_lead_minutes":         req.MinLeadMinutes,
		"max_advance_days":         req.MaxAdvanceDays,
		"min_change_minutes":       req.MinChangeMinutes,
		"slot_granularity_minutes": req.SlotGranularityMinutes,
		"prevent_gaps":             req.PreventGaps,
	})
	if err != nil {
		http.Error(w, "failed to build event payload", http.StatusInternalServerError)
		return
	}
	if err := h.outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "business",
		AggregateID:   businessID,
		EventType:     "business.settings.updated.v1",
		Payload:       payload,
	}); err != nil {
		http.Error(w, "failed to write outbox event", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit(ctx); err != nil {
		http.Error(w, "failed to commit", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	businessID := businessIDFromHeader(r)
	if businessID == "" {
		http.Error(w, "missing X-Business-Id", http.StatusBadRequest)
		return
	}

	week, err := h.repo.GetWeekCalendar(r.Context(), businessID)
	if err != nil {
		http.Error(w, "failed to load calendar", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"days": week})
}

func (h *Handler) UpdateCalendar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	businessID := businessIDFromHeader(r)
	if businessID == "" {
		http.Error(w, "missing X-Business-Id", http.StatusBadRequest)
		return
	}

	var req struct {
		Days settings.WeekCalendar `json:"days"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	if err := req.Days.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	ctx := r.Context()
	tx, err := h.repo.Begin(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := h.repo.UpsertWeekCalendar(ctx, tx, businessID, req.Days); err != nil {
		http.Error(w, "failed to update calendar", http.StatusInternalServerError)
		return
	}
	if err := tx.Commit(ctx); err != nil {
		http.Error(w, "failed to commit", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// VIPCustomers handles list/add/remove on one route, switching on method.
func (h *Handler) VIPCustomers(w http.ResponseWriter, r *http.Request) {
	businessID := businessIDFromHeader(r)
	if businessID == "" {
		http.Error(w, "missing X-Business-Id", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		refs, err := h.repo.ListVIP(r.Context(), businessID, 200)
		if err != nil {
			http.Error(w, "failed to list vip customers", http.StatusInternalServerError)
			return
		}
		if refs == nil {
			refs = []string{}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"customer_refs": refs})
	case http.MethodPost, http.MethodDelete:
		var req struct {
			CustomerRef string `json:"customer_ref"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json body", http.StatusBadRequest)
			return
		}
		req.CustomerRef = strings.TrimSpace(req.CustomerRef)
		if req.CustomerRef == "" {
			http.Error(w, "customer_ref required", http.StatusBadRequest)
			return
		}
		var err error
		if r.Method == http.MethodPost {
			err = h.repo.AddVIP(r.Context(), businessID, req.CustomerRef)
		} else {
			err = h.repo.RemoveVIP(r.Context(), businessID, req.CustomerRef)
		}
		if err != nil {
			http.Error(w, "failed to update vip customers", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

type timeOffItem struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// AvailabilityConfig serves booking-service everything it needs to compute
// slots for one business/service/staff/date: the effective day rules, policy
// knobs, service duration, and staff time off on that date.
func (h *Handler) AvailabilityConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	businessID := strings.TrimSpace(q.Get("business_id"))
	serviceID := strings.TrimSpace(q.Get("service_id"))
	staffID := strings.TrimSpace(q.Get("staff_id"))
	dateStr := strings.TrimSpace(q.Get("date"))
	if businessID == "" || serviceID == "" || dateStr == "" {
		http.Error(w, "business_id, service_id, and date are required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	profile, err := h.repo.GetOrCreateProfile(ctx, businessID)
	if err != nil {
		http.Error(w, "failed to load profile", http.StatusInternalServerError)
		return
	}
	loc, err := time.LoadLocation(profile.Timezone)
	if err != nil {
		loc = time.UTC
	}
	date, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	duration, err := h.repo.GetServiceDuration(ctx, businessID, serviceID)
	if err != nil {
		http.Error(w, "service not found", http.StatusNotFound)
		return
	}

	s, err := h.repo.GetSettings(ctx, businessID)
	if err != nil {
		http.Error(w, "failed to load settings", http.StatusInternalServerError)
		return
	}

	// Business-level opening hours; a staff member's own weekly schedule
	// replaces them when a specific staff member is requested.
	week, err := h.repo.GetWeekCalendar(ctx, businessID)
	if err != nil {
		http.Error(w, "failed to load calendar", http.StatusInternalServerError)
		return
	}
	var timeOff []timeOffItem
	if staffID != "" {
		hours, err := h.repo.ListWorkingHours(ctx, businessID, staffID)
		if err != nil {
			http.Error(w, "failed to load working hours", http.StatusInternalServerError)
			return
		}
		if len(hours) > 0 {
			var staffWeek settings.WeekCalendar
			for _, wh := range hours {
				if wh.Weekday < 0 || wh.Weekday > 6 {
					continue
				}
				staffWeek[wh.Weekday] = settings.DayRule{
					Open:        wh.IsWorking,
					OpenMinute:  wh.StartMinute,
					CloseMinute: wh.EndMinute,
				}
			}
			week = staffWeek
		}

		dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
		entries, err := h.repo.ListTimeOff(ctx, businessID, staffID, dayStart, dayStart.AddDate(0, 0, 1), 100)
		if err != nil {
			http.Error(w, "failed to load time off", http.StatusInternalServerError)
			return
		}
		for _, t := range entries {
			timeOff = append(timeOff, timeOffItem{Start: t.StartTime, End: t.EndTime})
		}
	}

	shortest, err := h.repo.ShortestServiceDuration(ctx, businessID)
	if err != nil {
		http.Error(w, "failed to load services", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"days":                     week,
		"slot_granularity_minutes": s.SlotGranularityMinutes,
		"min_lead_minutes":         s.MinLeadMinutes,
		"max_advance_days":         s.MaxAdvanceDays,
		"min_change_minutes":       s.MinChangeMinutes,
		"prevent_gaps":             s.PreventGaps,
		"duration_minutes":         duration,
		"shortest_service_minutes": shortest,
		"timezone":                 profile.Timezone,
		"time_off":                 timeOff,
	})
}

// BookingPolicy answers how a new appointment should start for one
// business/customer pair.
func (h *Handler) BookingPolicy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	businessID := strings.TrimSpace(q.Get("business_id"))
	customerRef := strings.TrimSpace(q.Get("customer_ref"))
	if businessID == "" {
		http.Error(w, "business_id required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	s, err := h.repo.GetSettings(ctx, businessID)
	if err != nil {
		http.Error(w, "failed to load settings", http.StatusInternalServerError)
		return
	}
	vip, err := h.repo.IsVIP(ctx, businessID, customerRef)
	if err != nil {
		http.Error(w, "failed to check vip status", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"approval_mode":      s.ApprovalMode,
		"vip":                vip,
		"min_change_minutes": s.MinChangeMinutes,
	})
}

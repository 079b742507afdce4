package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sadia-akter/trimly/services/booking-service/internal/approval"
	"github.com/sadia-akter/trimly/services/booking-service/internal/calendar"
	"github.com/sadia-akter/trimly/services/booking-service/internal/model"
	"github.com/sadia-akter/trimly/services/booking-service/internal/outbox"
	"github.com/sadia-akter/trimly/services/booking-service/internal/policy"
	"github.com/sadia-akter/trimly/services/booking-service/internal/scheduling"
	"github.com/sadia-akter/trimly/services/booking-service/internal/slots"
	"github.com/sadia-akter/trimly/services/booking-service/internal/storage"
)

type BookingHandler struct {
	repo       *storage.BookingRepository
	outboxRepo *outbox.Repository
	logger     *slog.Logger
	policy     policy.Provider
	scheduling scheduling.Provider

	// Now is swappable in tests; everything time-sensitive reads it.
	Now func() time.Time
}

func NewBookingHandler(repo *storage.BookingRepository, outboxRepo *outbox.Repository, logger *slog.Logger, policyProvider policy.Provider, schedulingProvider scheduling.Provider) *BookingHandler {
	return &BookingHandler{
		repo:       repo,
		outboxRepo: outboxRepo,
		logger:     logger,
		policy:     policyProvider,
		scheduling: schedulingProvider,
		Now:        func() time.Time { return time.Now().UTC() },
	}
}

type slotItem struct {
	Time   string `json:"time"`
	Status string `json:"status"`
}

type createBookingRequest struct {
	BusinessID    string `json:"business_id"`
	ServiceID     string `json:"service_id"`
	StaffID       string `json:"staff_id"`
	CustomerRef   string `json:"customer_ref"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	Date          string `json:"date"` // YYYY-MM-DD, business-local
	Time          string `json:"time"` // HH:MM, business-local
}

type appointmentResponse struct {
	AppointmentID string `json:"appointment_id"`
	Status        string `json:"status"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
}

type cancelBookingRequest struct {
	BusinessID    string `json:"business_id"`
	AppointmentID string `json:"appointment_id"`
	Reason        string `json:"reason"`
}

type cancelBookingResponse struct {
	AppointmentID string `json:"appointment_id"`
	Status        string `json:"status"`
	CancelledAt   string `json:"cancelled_at"`
}

type rescheduleRequest struct {
	BusinessID    string `json:"business_id"`
	AppointmentID string `json:"appointment_id"`
	Date          string `json:"date"`
	Time          string `json:"time"`
}

type statusChangeRequest struct {
	BusinessID    string `json:"business_id"`
	AppointmentID string `json:"appointment_id"`
}

type listAppointmentItem struct {
	AppointmentID string `json:"appointment_id"`
	StaffID       string `json:"staff_id,omitempty"`
	ServiceID     string `json:"service_id"`
	CustomerName  string `json:"customer_name"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Status        string `json:"status"`
	VIP           bool   `json:"vip,omitempty"`
	CancelledAt   string `json:"cancelled_at,omitempty"`
	CreatedAt     string `json:"created_at"`
}

// Slots answers the public day view: every candidate start on the grid with
// its availability status, in business-local HH:MM labels.
func (h *BookingHandler) Slots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed")
		return
	}

	businessID := strings.TrimSpace(r.URL.Query().Get("business_id"))
	serviceID := strings.TrimSpace(r.URL.Query().Get("service_id"))
	staffID := strings.TrimSpace(r.URL.Query().Get("staff_id"))
	dateStr := strings.TrimSpace(r.URL.Query().Get("date"))
	if businessID == "" || serviceID == "" || dateStr == "" {
		writeError(w, http.StatusBadRequest, "business_id, service_id, and date are required")
		return
	}

	cfg, ok := h.fetchConfig(w, r.Context(), businessID, serviceID, staffID, dateStr)
	if !ok {
		return
	}

	now := h.Now()
	date, err := time.ParseInLocation("2006-01-02", dateStr, location(cfg))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}

	winStart, winEnd, err := cfg.Calendar.Window(date, now)
	if err != nil {
		// Closed or fully behind the lead window: an empty day, not an error.
		if errors.Is(err, calendar.ErrClosed) || errors.Is(err, calendar.ErrTooEarly) {
			writeJSON(w, http.StatusOK, []slotItem{})
			return
		}
		writeError(w, http.StatusUnprocessableEntity, "too_far_ahead")
		return
	}

	busy, err := h.repo.OccupiedIntervals(r.Context(), businessID, staffID, winStart, winEnd, "")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load booked slots")
		return
	}

	resolved := resolveDay(cfg, winStart, winEnd, busy, now)
	items := make([]slotItem, 0, len(resolved))
	for _, s := range resolved {
		items = append(items, slotItem{
			Time:   s.Start.In(location(cfg)).Format("15:04"),
			Status: string(s.Status),
		})
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed")
		return
	}

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	req.BusinessID = strings.TrimSpace(req.BusinessID)
	req.ServiceID = strings.TrimSpace(req.ServiceID)
	req.StaffID = strings.TrimSpace(req.StaffID)
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	if req.BusinessID == "" || req.ServiceID == "" || req.CustomerName == "" || req.Date == "" || req.Time == "" {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}

	cfg, ok := h.fetchConfig(w, r.Context(), req.BusinessID, req.ServiceID, req.StaffID, req.Date)
	if !ok {
		return
	}

	now := h.Now()
	start, err := parseLocalStart(req.Date, req.Time, location(cfg))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date or time")
		return
	}
	duration := time.Duration(cfg.DurationMinutes) * time.Minute
	end := start.Add(duration)

	ctx := r.Context()
	tx, err := h.repo.Begin(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	idempotencyKey := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	if idempotencyKey != "" {
		rec, exists, err := h.repo.LockIdempotencyKey(ctx, tx, req.BusinessID, idempotencyKey)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to lock idempotency key")
			return
		}
		if exists && rec.StatusCode > 0 && len(rec.ResponsePayload) > 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(rec.StatusCode)
			_, _ = w.Write(rec.ResponsePayload)
			return
		}
	}

	// Advisory slot check: the same pipeline the day view runs. The exclusion
	// constraint re-checks at commit, so a lost race still surfaces as 409.
	if code, apiErr := h.validateSelection(ctx, cfg, req.BusinessID, req.StaffID, start, now); apiErr != "" {
		if idempotencyKey != "" && code != http.StatusServiceUnavailable {
			if h.finalizeIdempotencyError(ctx, tx, req.BusinessID, idempotencyKey, code, apiErr) {
				_ = tx.Commit(ctx)
				return
			}
		}
		writeError(w, code, apiErr)
		return
	}

	pol, err := h.bookingPolicy(ctx, req.BusinessID, req.CustomerRef)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "policy service unavailable")
		return
	}

	appt := &model.Appointment{
		BusinessID:    req.BusinessID,
		ServiceID:     req.ServiceID,
		StaffID:       req.StaffID,
		CustomerRef:   strings.TrimSpace(req.CustomerRef),
		CustomerName:  req.CustomerName,
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		StartTime:     start.UTC(),
		EndTime:       end.UTC(),
		Status:        approval.Decide(pol.ApprovalMode, pol.VIP),
		IsVIP:         pol.VIP,
	}

	id, err := h.repo.Create(ctx, tx, appt)
	if err != nil {
		if storage.IsConflict(err) {
			writeError(w, http.StatusConflict, "slot_taken")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create appointment")
		return
	}

	evtPayload, err := appointmentEventPayload(id, appt, nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build event payload")
		return
	}
	eventType := "booking.appointment.created.v1"
	if appt.Status == model.StatusConfirmed {
		eventType = approval.EventType(model.StatusConfirmed)
	}
	if err := h.outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "appointment",
		AggregateID:   id,
		EventType:     eventType,
		Payload:       evtPayload,
	}); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to write outbox event")
		return
	}

	respBody, err := json.Marshal(appointmentResponse{
		AppointmentID: id,
		Status:        string(appt.Status),
		StartTime:     appt.StartTime.Format(time.RFC3339),
		EndTime:       appt.EndTime.Format(time.RFC3339),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build response")
		return
	}
	if idempotencyKey != "" {
		if err := h.repo.FinalizeIdempotency(ctx, tx, req.BusinessID, idempotencyKey, id, http.StatusCreated, respBody); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to finalize idempotency key")
			return
		}
	}

	if err := tx.Commit(ctx); err != nil {
		if storage.IsConflict(err) {
			writeError(w, http.StatusConflict, "slot_taken")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to commit")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write(respBody)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed")
		return
	}

	var req cancelBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.BusinessID = strings.TrimSpace(req.BusinessID)
	req.AppointmentID = strings.TrimSpace(req.AppointmentID)
	req.Reason = strings.TrimSpace(req.Reason)
	if req.BusinessID == "" || req.AppointmentID == "" {
		writeError(w, http.StatusBadRequest, "business_id and appointment_id required")
		return
	}

	ctx := r.Context()
	tx, err := h.repo.Begin(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	appt, err := h.repo.GetAppointmentForUpdate(ctx, tx, req.BusinessID, req.AppointmentID)
	if err != nil {
		if storage.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load appointment")
		return
	}

	// Cancelling twice is a no-op, not an error.
	if appt.Status == model.StatusCancelled && appt.CancelledAt != nil {
		h.writeCancelResponse(w, appt.ID, appt.CancelledAt.UTC())
		return
	}
	if !approval.CanTransition(appt.Status, model.StatusCancelled) {
		writeError(w, http.StatusConflict, "invalid_transition")
		return
	}

	pol, err := h.bookingPolicy(ctx, req.BusinessID, appt.CustomerRef)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "policy service unavailable")
		return
	}
	minChange := time.Duration(pol.MinChangeMinutes) * time.Minute
	if err := approval.CheckChangeNotice(h.Now(), appt.StartTime, minChange); err != nil {
		writeError(w, http.StatusConflict, "too_late_to_change")
		return
	}

	cancelledAt, err := h.repo.CancelAppointment(ctx, tx, req.BusinessID, appt.ID, req.Reason)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to cancel appointment")
		return
	}

	extra := map[string]any{
		"cancelled_at": cancelledAt.UTC().Format(time.RFC3339),
		"reason":       req.Reason,
	}
	appt.Status = model.StatusCancelled
	payload, err := appointmentEventPayload(appt.ID, &appt, extra)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build cancellation event")
		return
	}
	if err := h.outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "appointment",
		AggregateID:   appt.ID,
		EventType:     approval.EventType(model.StatusCancelled),
		Payload:       payload,
	}); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to write outbox event")
		return
	}

	if err := tx.Commit(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to commit")
		return
	}
	h.writeCancelResponse(w, appt.ID, cancelledAt.UTC())
}

func (h *BookingHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed")
		return
	}

	var req rescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.BusinessID = strings.TrimSpace(req.BusinessID)
	req.AppointmentID = strings.TrimSpace(req.AppointmentID)
	if req.BusinessID == "" || req.AppointmentID == "" || req.Date == "" || req.Time == "" {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}

	ctx := r.Context()
	tx, err := h.repo.Begin(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	appt, err := h.repo.GetAppointmentForUpdate(ctx, tx, req.BusinessID, req.AppointmentID)
	if err != nil {
		if storage.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load appointment")
		return
	}
	if !appt.Status.Occupying() {
		writeError(w, http.StatusConflict, "invalid_transition")
		return
	}

	pol, err := h.bookingPolicy(ctx, req.BusinessID, appt.CustomerRef)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "policy service unavailable")
		return
	}
	minChange := time.Duration(pol.MinChangeMinutes) * time.Minute
	now := h.Now()
	if err := approval.CheckChangeNotice(now, appt.StartTime, minChange); err != nil {
		writeError(w, http.StatusConflict, "too_late_to_change")
		return
	}

	cfg, ok := h.fetchConfig(w, ctx, req.BusinessID, appt.ServiceID, appt.StaffID, req.Date)
	if !ok {
		return
	}
	start, err := parseLocalStart(req.Date, req.Time, location(cfg))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date or time")
		return
	}

	if code, apiErr := h.validateSelectionExcluding(ctx, cfg, req.BusinessID, appt.StaffID, start, now, appt.ID); apiErr != "" {
		writeError(w, code, apiErr)
		return
	}

	duration := time.Duration(cfg.DurationMinutes) * time.Minute
	oldStart, oldEnd := appt.StartTime, appt.EndTime
	appt.StartTime = start.UTC()
	appt.EndTime = start.Add(duration).UTC()

	if err := h.repo.Reschedule(ctx, tx, req.BusinessID, appt.ID, appt.StartTime, appt.EndTime); err != nil {
		if storage.IsConflict(err) {
			writeError(w, http.StatusConflict, "slot_taken")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to reschedule appointment")
		return
	}

	extra := map[string]any{
		"previous_start_time": oldStart.UTC().Format(time.RFC3339),
		"previous_end_time":   oldEnd.UTC().Format(time.RFC3339),
	}
	payload, err := appointmentEventPayload(appt.ID, &appt, extra)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build event payload")
		return
	}
	if err := h.outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "appointment",
		AggregateID:   appt.ID,
		EventType:     "booking.appointment.rescheduled.v1",
		Payload:       payload,
	}); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to write outbox event")
		return
	}

	if err := tx.Commit(ctx); err != nil {
		if storage.IsConflict(err) {
			writeError(w, http.StatusConflict, "slot_taken")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to commit")
		return
	}

	writeJSON(w, http.StatusOK, appointmentResponse{
		AppointmentID: appt.ID,
		Status:        string(appt.Status),
		StartTime:     appt.StartTime.Format(time.RFC3339),
		EndTime:       appt.EndTime.Format(time.RFC3339),
	})
}

// Confirm moves a pending appointment to confirmed. Business-side action.
func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, model.StatusConfirmed)
}

// Complete marks a confirmed appointment completed once it has ended.
func (h *BookingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, model.StatusCompleted)
}

func (h *BookingHandler) transition(w http.ResponseWriter, r *http.Request, to model.AppointmentStatus) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed")
		return
	}

	var req statusChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.BusinessID = strings.TrimSpace(req.BusinessID)
	req.AppointmentID = strings.TrimSpace(req.AppointmentID)
	if req.BusinessID == "" || req.AppointmentID == "" {
		writeError(w, http.StatusBadRequest, "business_id and appointment_id required")
		return
	}

	ctx := r.Context()
	tx, err := h.repo.Begin(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	appt, err := h.repo.GetAppointmentForUpdate(ctx, tx, req.BusinessID, req.AppointmentID)
	if err != nil {
		if storage.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load appointment")
		return
	}

	if appt.Status == to {
		writeJSON(w, http.StatusOK, appointmentResponse{
			AppointmentID: appt.ID,
			Status:        string(appt.Status),
			StartTime:     appt.StartTime.UTC().Format(time.RFC3339),
			EndTime:       appt.EndTime.UTC().Format(time.RFC3339),
		})
		return
	}
	if !approval.CanTransition(appt.Status, to) {
		writeError(w, http.StatusConflict, "invalid_transition")
		return
	}
	if to == model.StatusCompleted {
		if err := approval.CheckCompletable(h.Now(), appt.EndTime); err != nil {
			writeError(w, http.StatusUnprocessableEntity, "not_finished")
			return
		}
	}

	if err := h.repo.UpdateStatus(ctx, tx, req.BusinessID, appt.ID, to); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update status")
		return
	}

	appt.Status = to
	payload, err := appointmentEventPayload(appt.ID, &appt, nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build event payload")
		return
	}
	if err := h.outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "appointment",
		AggregateID:   appt.ID,
		EventType:     approval.EventType(to),
		Payload:       payload,
	}); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to write outbox event")
		return
	}

	if err := tx.Commit(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to commit")
		return
	}

	writeJSON(w, http.StatusOK, appointmentResponse{
		AppointmentID: appt.ID,
		Status:        string(to),
		StartTime:     appt.StartTime.UTC().Format(time.RFC3339),
		EndTime:       appt.EndTime.UTC().Format(time.RFC3339),
	})
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed")
		return
	}

	businessID := strings.TrimSpace(r.Header.Get("X-Business-Id"))
	if businessID == "" {
		businessID = strings.TrimSpace(r.URL.Query().Get("business_id"))
	}
	if businessID == "" {
		writeError(w, http.StatusBadRequest, "business_id required")
		return
	}

	var statuses []string
	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			s = strings.TrimSpace(s)
			switch model.AppointmentStatus(s) {
			case model.StatusPending, model.StatusConfirmed, model.StatusCancelled, model.StatusCompleted:
				statuses = append(statuses, s)
			default:
				writeError(w, http.StatusBadRequest, "invalid status filter")
				return
			}
		}
	}

	limit := 50
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	appts, err := h.repo.ListByBusiness(r.Context(), businessID, statuses, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list appointments")
		return
	}

	items := make([]listAppointmentItem, 0, len(appts))
	for _, appt := range appts {
		item := listAppointmentItem{
			AppointmentID: appt.ID,
			StaffID:       appt.StaffID,
			ServiceID:     appt.ServiceID,
			CustomerName:  appt.CustomerName,
			StartTime:     appt.StartTime.UTC().Format(time.RFC3339),
			EndTime:       appt.EndTime.UTC().Format(time.RFC3339),
			Status:        string(appt.Status),
			VIP:           appt.IsVIP,
			CreatedAt:     appt.CreatedAt.UTC().Format(time.RFC3339),
		}
		if appt.CancelledAt != nil {
			item.CancelledAt = appt.CancelledAt.UTC().Format(time.RFC3339)
		}
		items = append(items, item)
	}
	writeJSON(w, http.StatusOK, items)
}

// fetchConfig loads the availability config and writes the HTTP error itself
// when the lookup fails. The bool result says whether to continue.
func (h *BookingHandler) fetchConfig(w http.ResponseWriter, ctx context.Context, businessID, serviceID, staffID, date string) (scheduling.Config, bool) {
	reqCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	cfg, err := h.scheduling.GetAvailabilityConfig(reqCtx, businessID, serviceID, staffID, date)
	if err != nil {
		if errors.Is(err, scheduling.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found")
			return scheduling.Config{}, false
		}
		h.logger.Warn("availability config fetch failed", "err", err, "business_id", businessID)
		writeError(w, http.StatusServiceUnavailable, "availability service unavailable")
		return scheduling.Config{}, false
	}
	return cfg, true
}

func (h *BookingHandler) bookingPolicy(ctx context.Context, businessID, customerRef string) (policy.BookingPolicy, error) {
	reqCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return h.policy.BookingPolicy(reqCtx, businessID, customerRef)
}

func (h *BookingHandler) validateSelection(ctx context.Context, cfg scheduling.Config, businessID, staffID string, start time.Time, now time.Time) (int, string) {
	return h.validateSelectionExcluding(ctx, cfg, businessID, staffID, start, now, "")
}

// validateSelectionExcluding re-runs the slot pipeline for the requested day
// and checks the start against it. Returns (0, "") when the selection is a
// bookable slot.
func (h *BookingHandler) validateSelectionExcluding(ctx context.Context, cfg scheduling.Config, businessID, staffID string, start time.Time, now time.Time, excludeID string) (int, string) {
	winStart, winEnd, err := cfg.Calendar.Window(start, now)
	if err != nil {
		switch {
		case errors.Is(err, calendar.ErrClosed):
			return http.StatusUnprocessableEntity, "outside_window"
		case errors.Is(err, calendar.ErrTooFarAhead):
			return http.StatusUnprocessableEntity, "too_far_ahead"
		default:
			return http.StatusUnprocessableEntity, "too_early"
		}
	}

	busy, err := h.repo.OccupiedIntervals(ctx, businessID, staffID, winStart, winEnd, excludeID)
	if err != nil {
		return http.StatusServiceUnavailable, "failed to load booked slots"
	}

	resolved := resolveDay(cfg, winStart, winEnd, busy, now)
	if _, err := slots.Select(resolved, start); err != nil {
		if errors.Is(err, slots.ErrSlotTaken) {
			return http.StatusConflict, "slot_taken"
		}
		if start.Before(now.Add(cfg.Calendar.MinLead)) {
			return http.StatusUnprocessableEntity, "too_early"
		}
		if start.Before(winStart) || start.Add(time.Duration(cfg.DurationMinutes)*time.Minute).After(winEnd) {
			return http.StatusUnprocessableEntity, "outside_window"
		}
		return http.StatusUnprocessableEntity, "invalid_selection"
	}
	return 0, ""
}

// resolveDay runs the pipeline over the open window with staff time off
// carved out. Slots inside a time-off block simply do not appear.
func resolveDay(cfg scheduling.Config, winStart, winEnd time.Time, busy []slots.Interval, now time.Time) []slots.Slot {
	duration := time.Duration(cfg.DurationMinutes) * time.Minute
	var minFill time.Duration
	if cfg.Calendar.PreventGaps {
		minFill = time.Duration(cfg.ShortestServiceMinutes) * time.Minute
	}

	timeOff := append([]slots.Interval(nil), cfg.TimeOff...)
	sort.Slice(timeOff, func(i, j int) bool { return timeOff[i].Start.Before(timeOff[j].Start) })

	var resolved []slots.Slot
	for _, win := range slots.SubtractBusy(slots.Interval{Start: winStart, End: winEnd}, timeOff) {
		resolved = append(resolved, slots.ForWindow(
			win.Start, win.End,
			duration, cfg.Calendar.Granularity,
			busy, now,
			cfg.Calendar.MinLead, minFill,
		)...)
	}
	return resolved
}

func appointmentEventPayload(id string, appt *model.Appointment, extra map[string]any) ([]byte, error) {
	payload := map[string]any{
		"appointment_id": id,
		"business_id":    appt.BusinessID,
		"service_id":     appt.ServiceID,
		"staff_id":       appt.StaffID,
		"customer_name":  appt.CustomerName,
		"customer_email": appt.CustomerEmail,
		"customer_phone": appt.CustomerPhone,
		"start_time":     appt.StartTime.UTC().Format(time.RFC3339),
		"end_time":       appt.EndTime.UTC().Format(time.RFC3339),
		"status":         string(appt.Status),
	}
	for k, v := range extra {
		payload[k] = v
	}
	return json.Marshal(payload)
}

func parseLocalStart(dateStr, timeStr string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", dateStr+" "+timeStr, loc)
}

func location(cfg scheduling.Config) *time.Location {
	if cfg.Calendar.Location != nil {
		return cfg.Calendar.Location
	}
	return time.UTC
}

func (h *BookingHandler) writeCancelResponse(w http.ResponseWriter, appointmentID string, cancelledAt time.Time) {
	writeJSON(w, http.StatusOK, cancelBookingResponse{
		AppointmentID: appointmentID,
		Status:        string(model.StatusCancelled),
		CancelledAt:   cancelledAt.Format(time.RFC3339),
	})
}

func (h *BookingHandler) finalizeIdempotencyError(ctx context.Context, tx pgx.Tx, businessID, key string, statusCode int, msg string) bool {
	body, err := json.Marshal(map[string]string{"error": msg})
	if err != nil {
		return false
	}
	if err := h.repo.FinalizeIdempotency(ctx, tx, businessID, key, "", statusCode, body); err != nil {
		h.logger.Error("failed to finalize idempotency (error)", "err", err)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "failed to build response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

package storage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sadia-akter/trimly/libs/db"
	"github.com/sadia-akter/trimly/services/booking-service/internal/model"
	"github.com/sadia-akter/trimly/services/booking-service/internal/slots"
)

const appointmentColumns = `id, business_id, service_id, COALESCE(staff_id::text, ''), customer_ref,
	customer_name, customer_email, customer_phone, start_time, end_time, status, is_vip,
	cancelled_at, COALESCE(cancellation_reason, ''), created_at`

type BookingRepository struct {
	pool *db.Pool
}

type IdempotencyRecord struct {
	BusinessID      string
	IdempotencyKey  string
	AppointmentID   string
	StatusCode      int
	ResponsePayload []byte
}

func NewBookingRepository(pool *db.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func (r *BookingRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

func (r *BookingRepository) LockIdempotencyKey(ctx context.Context, tx pgx.Tx, businessID, key string) (IdempotencyRecord, bool, error) {
	rec, err := r.selectIdempotencyForUpdate(ctx, tx, businessID, key)
	if err == nil {
		return rec, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return IdempotencyRecord{}, false, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO booking_idempotency_keys (business_id, idempotency_key)
		VALUES ($1, $2)
		ON CONFLICT (business_id, idempotency_key) DO NOTHING
	`, businessID, key)
	if err != nil {
		return IdempotencyRecord{}, false, err
	}

	rec, err = r.selectIdempotencyForUpdate(ctx, tx, businessID, key)
	if err != nil {
		return IdempotencyRecord{}, false, err
	}
	return rec, false, nil
}

func (r *BookingRepository) FinalizeIdempotency(ctx context.Context, tx pgx.Tx, businessID, key, appointmentID string, statusCode int, response []byte) error {
	_, err := tx.Exec(ctx, `
		UPDATE booking_idempotency_keys
		SET appointment_id = $3,
			status_code = $4,
			response_payload = $5,
			updated_at = now()
		WHERE business_id = $1 AND idempotency_key = $2
	`, businessID, key, uuidOrNil(appointmentID), statusCode, response)
	return err
}

// Create inserts the appointment. The exclusion constraint on occupying
// rows is the final word on slot conflicts: a 23P01 here means somebody
// committed the same interval first, and callers map it with IsConflict.
func (r *BookingRepository) Create(ctx context.Context, tx pgx.Tx, appt *model.Appointment) (string, error) {
	var id string
	err := tx.QueryRow(ctx, `
		INSERT INTO appointments
			(business_id, service_id, staff_id, customer_ref, customer_name, customer_email, customer_phone,
			 start_time, end_time, status, is_vip)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`, appt.BusinessID, appt.ServiceID, uuidOrNil(appt.StaffID), appt.CustomerRef,
		appt.CustomerName, appt.CustomerEmail, appt.CustomerPhone,
		appt.StartTime, appt.EndTime, appt.Status, appt.IsVIP).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *BookingRepository) GetAppointmentForUpdate(ctx context.Context, tx pgx.Tx, businessID, appointmentID string) (model.Appointment, error) {
	row := tx.QueryRow(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE id = $1 AND business_id = $2
		FOR UPDATE
	`, appointmentID, businessID)
	return scanAppointment(row)
}

func (r *BookingRepository) GetAppointment(ctx context.Context, businessID, appointmentID string) (model.Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE id = $1 AND business_id = $2
	`, appointmentID, businessID)
	return scanAppointment(row)
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, businessID, appointmentID string, status model.AppointmentStatus) error {
	tag, err := tx.Exec(ctx, `
		UPDATE appointments
		SET status = $3, updated_at = now()
		WHERE id = $1 AND business_id = $2
	`, appointmentID, businessID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *BookingRepository) CancelAppointment(ctx context.Context, tx pgx.Tx, businessID, appointmentID, reason string) (time.Time, error) {
	var cancelledAt time.Time
	err := tx.QueryRow(ctx, `
		UPDATE appointments
		SET status = 'cancelled',
			cancelled_at = now(),
			cancellation_reason = $3,
			updated_at = now()
		WHERE id = $1 AND business_id = $2
		RETURNING cancelled_at
	`, appointmentID, businessID, reason).Scan(&cancelledAt)
	return cancelledAt, err
}

// Reschedule moves an occupying appointment to a new interval. The exclusion
// constraint ignores the row's own old interval because the UPDATE replaces
// it in place.
func (r *BookingRepository) Reschedule(ctx context.Context, tx pgx.Tx, businessID, appointmentID string, start, end time.Time) error {
	tag, err := tx.Exec(ctx, `
		UPDATE appointments
		SET start_time = $3, end_time = $4, updated_at = now()
		WHERE id = $1 AND business_id = $2
	`, appointmentID, businessID, start, end)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// OccupiedIntervals returns the busy intervals overlapping [start, end) for
// the given resource. Business-wide appointments (NULL staff_id) block every
// staff member; a staff member's appointments also block the business-wide
// view, so an empty staffID matches all occupying rows of the business.
// excludeID lets a reschedule ignore the appointment being moved.
func (r *BookingRepository) OccupiedIntervals(ctx context.Context, businessID, staffID string, start, end time.Time, excludeID string) ([]slots.Interval, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT start_time, end_time
		FROM appointments
		WHERE business_id = $1
			AND ($2 = '' OR staff_id IS NULL OR staff_id::text = $2)
			AND status IN ('pending', 'confirmed')
			AND start_time < $4
			AND end_time > $3
			AND ($5 = '' OR id::text <> $5)
		ORDER BY start_time ASC
	`, businessID, staffID, start, end, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var busy []slots.Interval
	for rows.Next() {
		var iv slots.Interval
		if err := rows.Scan(&iv.Start, &iv.End); err != nil {
			return nil, err
		}
		busy = append(busy, iv)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return busy, nil
}

func (r *BookingRepository) ListByBusiness(ctx context.Context, businessID string, statuses []string, limit int) ([]model.Appointment, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE business_id = $1
	`
	args := []any{businessID}
	if len(statuses) > 0 {
		query += ` AND status = ANY($2) ORDER BY start_time DESC LIMIT $3`
		args = append(args, statuses, limit)
	} else {
		query += ` ORDER BY start_time DESC LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appts []model.Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appts = append(appts, appt)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return appts, nil
}

func IsConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23P01"
}

func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// uuidOrNil maps the empty string to SQL NULL for nullable uuid columns.
// Passing "" straight through fails in the uuid codec.
func uuidOrNil(id string) any {
	if id == "" {
		return nil
	}
	return id
}

func scanAppointment(row pgx.Row) (model.Appointment, error) {
	var appt model.Appointment
	var cancelledAt *time.Time
	err := row.Scan(
		&appt.ID,
		&appt.BusinessID,
		&appt.ServiceID,
		&appt.StaffID,
		&appt.CustomerRef,
		&appt.CustomerName,
		&appt.CustomerEmail,
		&appt.CustomerPhone,
		&appt.StartTime,
		&appt.EndTime,
		&appt.Status,
		&appt.IsVIP,
		&cancelledAt,
		&appt.CancelReason,
		&appt.CreatedAt,
	)
	if err != nil {
		return model.Appointment{}, err
	}
	appt.CancelledAt = cancelledAt
	return appt, nil
}

func (r *BookingRepository) selectIdempotencyForUpdate(ctx context.Context, tx pgx.Tx, businessID, key string) (IdempotencyRecord, error) {
	var rec IdempotencyRecord
	var responseText string
	err := tx.QueryRow(ctx, `
		SELECT business_id::text,
			idempotency_key,
			COALESCE(appointment_id::text, ''),
			COALESCE(status_code, 0),
			COALESCE(response_payload::text, '')
		FROM booking_idempotency_keys
		WHERE business_id = $1 AND idempotency_key = $2
		FOR UPDATE
	`, businessID, key).Scan(
		&rec.BusinessID,
		&rec.IdempotencyKey,
		&rec.AppointmentID,
		&rec.StatusCode,
		&responseText,
	)
	if err != nil {
		return IdempotencyRecord{}, err
	}
	if responseText != "" {
		rec.ResponsePayload = []byte(responseText)
	}
	return rec, nil
}

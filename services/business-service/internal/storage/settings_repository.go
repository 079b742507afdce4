package storage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/sadia-akter/trimly/services/business-service/internal/settings"
)

// GetSettings returns the stored settings row, or the defaults when the
// business has never saved one.
func (r *Repository) GetSettings(ctx context.Context, businessID string) (settings.BookingSettings, error) {
	var s settings.BookingSettings
	err := r.pool.QueryRow(ctx, `
		SELECT approval_mode, min_lead_minutes, max_advance_days, min_change_minutes,
			slot_granularity_minutes, prevent_gaps
		FROM business_settings
		WHERE business_id = $1
	`, businessID).Scan(
		&s.ApprovalMode,
		&s.MinLeadMinutes,
		&s.MaxAdvanceDays,
		&s.MinChangeMinutes,
		&s.SlotGranularityMinutes,
		&s.PreventGaps,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return settings.Defaults(), nil
	}
	if err != nil {
		return settings.BookingSettings{}, err
	}
	return s, nil
}

// UpsertSettings replaces the whole settings row.
func (r *Repository) UpsertSettings(ctx context.Context, tx pgx.Tx, businessID string, s settings.BookingSettings) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO business_settings
			(business_id, approval_mode, min_lead_minutes, max_advance_days, min_change_minutes,
			 slot_granularity_minutes, prevent_gaps)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (business_id) DO UPDATE
		SET approval_mode = EXCLUDED.approval_mode,
			min_lead_minutes = EXCLUDED.min_lead_minutes,
			max_advance_days = EXCLUDED.max_advance_days,
			min_change_minutes = EXCLUDED.min_change_minutes,
			slot_granularity_minutes = EXCLUDED.slot_granularity_minutes,
			prevent_gaps = EXCLUDED.prevent_gaps,
			updated_at = now()
	`, businessID, s.ApprovalMode, s.MinLeadMinutes, s.MaxAdvanceDays, s.MinChangeMinutes,
		s.SlotGranularityMinutes, s.PreventGaps)
	return err
}

// GetWeekCalendar loads the business-level opening hours, defaulting any
// weekday that has no row.
func (r *Repository) GetWeekCalendar(ctx context.Context, businessID string) (settings.WeekCalendar, error) {
	week := settings.DefaultWeek()
	rows, err := r.pool.Query(ctx, `
		SELECT weekday, open, open_minute, close_minute
		FROM business_calendar
		WHERE business_id = $1
	`, businessID)
	if err != nil {
		return settings.WeekCalendar{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var wd int
		var rule settings.DayRule
		if err := rows.Scan(&wd, &rule.Open, &rule.OpenMinute, &rule.CloseMinute); err != nil {
			return settings.WeekCalendar{}, err
		}
		if wd >= 0 && wd < 7 {
			week[wd] = rule
		}
	}
	if rows.Err() != nil {
		return settings.WeekCalendar{}, rows.Err()
	}
	return week, nil
}

// UpsertWeekCalendar writes all seven day rules in one transaction.
func (r *Repository) UpsertWeekCalendar(ctx context.Context, tx pgx.Tx, businessID string, week settings.WeekCalendar) error {
	for wd, rule := range week {
		if _, err := tx.Exec(ctx, `
			INSERT INTO business_calendar (business_id, weekday, open, open_minute, close_minute)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (business_id, weekday) DO UPDATE
			SET open = EXCLUDED.open,
				open_minute = EXCLUDED.open_minute,
				close_minute = EXCLUDED.close_minute
		`, businessID, wd, rule.Open, rule.OpenMinute, rule.CloseMinute); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) AddVIP(ctx context.Context, businessID, customerRef string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO vip_customers (business_id, customer_ref)
		VALUES ($1, $2)
		ON CONFLICT (business_id, customer_ref) DO NOTHING
	`, businessID, customerRef)
	return err
}

func (r *Repository) RemoveVIP(ctx context.Context, businessID, customerRef string) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM vip_customers
		WHERE business_id = $1 AND customer_ref = $2
	`, businessID, customerRef)
	return err
}

func (r *Repository) ListVIP(ctx context.Context, businessID string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 200
	}
	rows, err := r.pool.Query(ctx, `
		SELECT customer_ref
		FROM vip_customers
		WHERE business_id = $1
		ORDER BY customer_ref ASC
		LIMIT $2
	`, businessID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

func (r *Repository) IsVIP(ctx context.Context, businessID, customerRef string) (bool, error) {
	if customerRef == "" {
		return false, nil
	}
	var vip bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM vip_customers
			WHERE business_id = $1 AND customer_ref = $2
		)
	`, businessID, customerRef).Scan(&vip)
	return vip, err
}

// ShortestServiceDuration is the gap-prevention threshold: no booking may
// strand a free gap shorter than the quickest service on offer.
func (r *Repository) ShortestServiceDuration(ctx context.Context, businessID string) (int, error) {
	var mins int
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(MIN(duration_minutes), 0)
		FROM business_services
		WHERE business_id = $1
	`, businessID).Scan(&mins)
	return mins, err
}

package storage

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// PolicyCacheRow is booking-service's local copy of a business's booking
// policy, kept fresh by consuming settings-updated events. It lets bookings
// proceed when business-service is briefly unreachable; VIP status is not
// cached, so cached decisions treat the customer as non-VIP.
type PolicyCacheRow struct {
	BusinessID       string
	ApprovalMode     string
	MinChangeMinutes int
}

func (r *BookingRepository) UpsertPolicyCache(ctx context.Context, tx pgx.Tx, row PolicyCacheRow) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO business_policy_cache (business_id, approval_mode, min_change_minutes)
		VALUES ($1, $2, $3)
		ON CONFLICT (business_id) DO UPDATE
		SET approval_mode = EXCLUDED.approval_mode,
			min_change_minutes = EXCLUDED.min_change_minutes,
			updated_at = now()
	`, row.BusinessID, row.ApprovalMode, row.MinChangeMinutes)
	return err
}

func (r *BookingRepository) GetPolicyCache(ctx context.Context, businessID string) (PolicyCacheRow, error) {
	var row PolicyCacheRow
	err := r.pool.QueryRow(ctx, `
		SELECT business_id::text, approval_mode, min_change_minutes
		FROM business_policy_cache
		WHERE business_id = $1
	`, businessID).Scan(&row.BusinessID, &row.ApprovalMode, &row.MinChangeMinutes)
	if err != nil {
		return PolicyCacheRow{}, err
	}
	return row, nil
}

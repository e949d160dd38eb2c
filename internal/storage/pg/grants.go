package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vexora-shop/accounts/internal/domain"
	internal_errors "github.com/vexora-shop/accounts/internal/errors"
)

// =========================================================================
// Reset-grant store (satisfies service.GrantStore)
// =========================================================================

// SaveResetGrant records that an identity was confirmed for password reset.
// A repeated confirmation replaces the previous grant.
func (s *Storage) SaveResetGrant(grant domain.ResetGrant) error {
	ctx, cancel := opCtx()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
            INSERT INTO reset_grants(email, token, expires_at)
            VALUES($1, $2, $3)
            ON CONFLICT (email)
            DO UPDATE SET token = EXCLUDED.token, expires_at = EXCLUDED.expires_at`,
			grant.Email, grant.Token, grant.Expires,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert reset grant: %w", err)
		}
		return nil
	})
}

// ResetGrant fetches the grant for an email. Expiry is checked by the caller.
func (s *Storage) ResetGrant(email domain.Email) (domain.ResetGrant, error) {
	var grant domain.ResetGrant
	err := s.db.QueryRow(`
        SELECT email, token, (expires_at at time zone 'utc')
        FROM reset_grants WHERE email = $1`, email,
	).Scan(&grant.Email, &grant.Token, &grant.Expires)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ResetGrant{}, &internal_errors.ErrorWithStatusCode{Message: "Reset grant not found", StatusCode: http.StatusNotFound}
		}
		return domain.ResetGrant{}, fmt.Errorf("failed to query reset grant: %w", err)
	}
	return grant, nil
}

// DeleteResetGrant consumes a grant so the reset flow cannot be replayed.
func (s *Storage) DeleteResetGrant(email domain.Email) error {
	ctx, cancel := opCtx()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.Exec("DELETE FROM reset_grants WHERE email = $1", email)
		if err != nil {
			return fmt.Errorf("failed to delete reset grant: %w", err)
		}
		return checkAffected(result, "Reset grant not found for deletion")
	})
}

// DeleteExpiredGrants is the janitor counterpart of DeleteExpiredCodes.
func (s *Storage) DeleteExpiredGrants(now time.Time) (int64, error) {
	result, err := s.db.Exec("DELETE FROM reset_grants WHERE expires_at < $1", now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired grants: %w", err)
	}
	return result.RowsAffected()
}

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
// One-time-code store (satisfies service.CodeStore)
// =========================================================================

// SaveCode persists a code record, replacing any previous record for the
// same (email, purpose) in the same statement. There is never a window in
// which two codes are valid for one key.
func (s *Storage) SaveCode(code domain.OneTimeCode) error {
	ctx, cancel := opCtx()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.saveCode(tx, code)
	})
}

// Code fetches the stored record for (email, purpose). Expiry is NOT checked
// here; callers must re-check it on every read.
func (s *Storage) Code(email domain.Email, purpose domain.Purpose) (domain.OneTimeCode, error) {
	return s.code(s.db, email, purpose)
}

// DeleteCode removes the record for (email, purpose).
func (s *Storage) DeleteCode(email domain.Email, purpose domain.Purpose) error {
	ctx, cancel := opCtx()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.deleteCode(tx, email, purpose)
	})
}

// DeleteExpiredCodes removes every record whose expiry has passed and
// reports how many were removed. Used by the background janitor only;
// correctness never depends on it running.
func (s *Storage) DeleteExpiredCodes(now time.Time) (int64, error) {
	result, err := s.db.Exec("DELETE FROM one_time_codes WHERE expires_at < $1", now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired codes: %w", err)
	}
	return result.RowsAffected()
}

// =========================================================================
// Internal Methods
// =========================================================================

func (s *Storage) saveCode(q Querier, code domain.OneTimeCode) error {
	_, err := q.Exec(`
        INSERT INTO one_time_codes(email, purpose, code_hash, expires_at, created_at)
        VALUES($1, $2, $3, $4, $5)
        ON CONFLICT (email, purpose)
        DO UPDATE SET code_hash = EXCLUDED.code_hash, expires_at = EXCLUDED.expires_at, created_at = EXCLUDED.created_at`,
		code.Email, code.Purpose, code.CodeHash, code.Expires, code.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert one-time code: %w", err)
	}
	return nil
}

func (s *Storage) code(q Querier, email domain.Email, purpose domain.Purpose) (domain.OneTimeCode, error) {
	var code domain.OneTimeCode
	err := q.QueryRow(`
        SELECT email, purpose, code_hash, (expires_at at time zone 'utc'), (created_at at time zone 'utc')
        FROM one_time_codes WHERE email = $1 AND purpose = $2`,
		email, purpose,
	).Scan(&code.Email, &code.Purpose, &code.CodeHash, &code.Expires, &code.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.OneTimeCode{}, &internal_errors.ErrorWithStatusCode{Message: "Code not found", StatusCode: http.StatusNotFound}
		}
		return domain.OneTimeCode{}, fmt.Errorf("failed to query one-time code: %w", err)
	}
	return code, nil
}

func (s *Storage) deleteCode(q Querier, email domain.Email, purpose domain.Purpose) error {
	result, err := q.Exec("DELETE FROM one_time_codes WHERE email = $1 AND purpose = $2", email, purpose)
	if err != nil {
		return fmt.Errorf("failed to delete one-time code: %w", err)
	}
	return checkAffected(result, "Code not found for deletion")
}

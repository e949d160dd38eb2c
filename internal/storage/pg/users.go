package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/vexora-shop/accounts/internal/domain"
	internal_errors "github.com/vexora-shop/accounts/internal/errors"
)

// =========================================================================
// Public Methods (satisfy the service.CredentialStore interface)
// =========================================================================

// SaveUser creates a new account record and returns its id.
func (s *Storage) SaveUser(user domain.User) (domain.UserId, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var id domain.UserId
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = s.saveUser(tx, user)
		return err
	})
	return id, err
}

// User fetches a single account by email.
func (s *Storage) User(email domain.Email) (domain.User, error) {
	return s.user(s.db, email)
}

// UserById fetches a single account by id.
func (s *Storage) UserById(id domain.UserId) (domain.User, error) {
	return s.userById(s.db, id)
}

// UpdateUnverified overwrites profile fields and the password hash of an
// account that has not completed verification yet. Signing up again over an
// unverified account is a fresh start, not an error.
func (s *Storage) UpdateUnverified(user domain.User) error {
	ctx, cancel := opCtx()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.updateUnverified(tx, user)
	})
}

// SetVerified flips the verification flag. Only successful code confirmation
// should call this.
func (s *Storage) SetVerified(email domain.Email) error {
	ctx, cancel := opCtx()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.setVerified(tx, email)
	})
}

// UpdatePassword replaces the stored password hash.
func (s *Storage) UpdatePassword(email domain.Email, passwordHash string) error {
	ctx, cancel := opCtx()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.updatePassword(tx, email, passwordHash)
	})
}

// SetStatus switches an account between active and blocked.
func (s *Storage) SetStatus(id domain.UserId, status domain.AccountStatus) error {
	ctx, cancel := opCtx()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.setStatus(tx, id, status)
	})
}

// Users lists accounts for the admin screen, newest first, filtered by a
// case-insensitive name/email search. Returns the page plus the total count.
func (s *Storage) Users(search string, page, limit int) ([]domain.User, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	var total int
	pattern := "%" + search + "%"
	err := s.db.QueryRow(`
        SELECT count(*) FROM users
        WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1`,
		pattern,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	rows, err := s.db.Query(`
        SELECT id, email, first_name, last_name, mobile, password_hash, is_verified, status, is_admin, created_at
        FROM users
        WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`,
		pattern, limit, (page-1)*limit,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.Id, &u.Email, &u.FirstName, &u.LastName, &u.Mobile, &u.PassHash, &u.Verified, &u.Status, &u.Admin, &u.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

// =========================================================================
// Internal Methods (Core Database Logic)
// These methods accept a Querier and are transaction-agnostic.
// =========================================================================

func (s *Storage) saveUser(q Querier, user domain.User) (domain.UserId, error) {
	status := user.Status
	if status == "" {
		status = domain.StatusActive
	}
	var id domain.UserId
	err := q.QueryRow(`
        INSERT INTO users(email, first_name, last_name, mobile, password_hash, is_verified, status, is_admin)
        VALUES($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		user.Email, user.FirstName, user.LastName, user.Mobile, user.PassHash, user.Verified, status, user.Admin,
	).Scan(&id)
	if err != nil {
		return -1, fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}

func (s *Storage) user(q Querier, email domain.Email) (domain.User, error) {
	var user domain.User
	err := q.QueryRow(`
        SELECT id, email, first_name, last_name, mobile, password_hash, is_verified, status, is_admin, created_at
        FROM users WHERE email = $1`, email,
	).Scan(&user.Id, &user.Email, &user.FirstName, &user.LastName, &user.Mobile, &user.PassHash, &user.Verified, &user.Status, &user.Admin, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

func (s *Storage) userById(q Querier, id domain.UserId) (domain.User, error) {
	var user domain.User
	err := q.QueryRow(`
        SELECT id, email, first_name, last_name, mobile, password_hash, is_verified, status, is_admin, created_at
        FROM users WHERE id = $1`, id,
	).Scan(&user.Id, &user.Email, &user.FirstName, &user.LastName, &user.Mobile, &user.PassHash, &user.Verified, &user.Status, &user.Admin, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

func (s *Storage) updateUnverified(q Querier, user domain.User) error {
	result, err := q.Exec(`
        UPDATE users
        SET first_name = $1, last_name = $2, mobile = $3, password_hash = $4, is_verified = FALSE
        WHERE email = $5 AND is_verified = FALSE`,
		user.FirstName, user.LastName, user.Mobile, user.PassHash, user.Email,
	)
	if err != nil {
		return fmt.Errorf("failed to update unverified user: %w", err)
	}
	return checkAffected(result, "User not found for update")
}

func (s *Storage) setVerified(q Querier, email domain.Email) error {
	result, err := q.Exec("UPDATE users SET is_verified = TRUE WHERE email = $1", email)
	if err != nil {
		return fmt.Errorf("failed to set verified flag: %w", err)
	}
	return checkAffected(result, "User not found for verification")
}

func (s *Storage) updatePassword(q Querier, email domain.Email, passwordHash string) error {
	result, err := q.Exec("UPDATE users SET password_hash = $1 WHERE email = $2", passwordHash, email)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return checkAffected(result, "User not found for password update")
}

func (s *Storage) setStatus(q Querier, id domain.UserId, status domain.AccountStatus) error {
	result, err := q.Exec("UPDATE users SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	return checkAffected(result, "User not found for status update")
}

func checkAffected(result sql.Result, notFoundMsg string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return &internal_errors.ErrorWithStatusCode{Message: notFoundMsg, StatusCode: http.StatusNotFound}
	}
	return nil
}

package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/vexora-shop/accounts/internal/domain"
	"github.com/vexora-shop/accounts/internal/errors"
	"github.com/vexora-shop/accounts/internal/logger"
	"github.com/vexora-shop/accounts/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

var (
	namePolicy  = bluemonday.StrictPolicy()
	mobileRegex = regexp.MustCompile(`^\d{10}$`)
)

type SignupRequest struct {
	FirstName       string
	LastName        string
	Mobile          string
	Email           domain.Email
	Password        string
	ConfirmPassword string
}

// Signup creates (or refreshes) an unverified account and sends a signup
// code. Signing up again over an unverified account overwrites the profile
// and password and issues a fresh code; a verified account is an error.
func (a *Accounts) Signup(req SignupRequest) error {
	email := normalizeEmail(req.Email)

	if err := a.email.IsCorrect(email); err != nil {
		return err
	}
	if req.Password != req.ConfirmPassword {
		return errors.ValidationFailed("Passwords do not match")
	}
	if err := a.validatePassword(req.Password); err != nil {
		return err
	}
	if !mobileRegex.MatchString(req.Mobile) {
		return errors.ValidationFailed("Mobile number must be 10 digits")
	}

	user, err := a.store.User(email)
	if err != nil && !errors.IsNotFound(err) {
		return err
	}
	exists := err == nil
	if exists && user.Verified {
		return errors.AccountAlreadyVerified
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return err
	}

	account := domain.User{
		Email:     email,
		FirstName: sanitizeName(req.FirstName),
		LastName:  sanitizeName(req.LastName),
		Mobile:    req.Mobile,
		PassHash:  string(passHash),
		Verified:  false,
		Status:    domain.StatusActive,
	}
	if exists {
		if err := a.store.UpdateUnverified(account); err != nil {
			return err
		}
	} else {
		if _, err := a.store.SaveUser(account); err != nil {
			return err
		}
	}

	return a.issueCode(email, account.FirstName, domain.PurposeSignup)
}

// RequestPasswordReset issues a reset code for an existing account.
func (a *Accounts) RequestPasswordReset(email domain.Email) error {
	email = normalizeEmail(email)

	if err := a.email.IsCorrect(email); err != nil {
		return err
	}

	user, err := a.store.User(email)
	if err != nil {
		if errors.IsNotFound(err) {
			return errors.AccountNotFound
		}
		return err
	}

	return a.issueCode(email, user.FirstName, domain.PurposePasswordReset)
}

// VerifyCode checks the submitted code against the active record for
// (email, purpose) and consumes it. For signup it marks the account
// verified; for password reset it returns a one-time reset token that the
// final password write must present.
func (a *Accounts) VerifyCode(email domain.Email, code string, purpose domain.Purpose) (string, error) {
	email = normalizeEmail(email)

	if !purpose.Valid() {
		return "", errors.ValidationFailed("Unknown verification purpose")
	}

	record, err := a.codes.Code(email, purpose)
	if err != nil {
		if errors.IsNotFound(err) {
			return "", errors.CodeNotFound
		}
		return "", err
	}

	if record.Expired(time.Now().UTC()) {
		if err := a.codes.DeleteCode(email, purpose); err != nil && !errors.IsNotFound(err) {
			logger.Log.Warn("failed to delete expired code", "error", err)
		}
		return "", errors.CodeExpired
	}

	if err := bcrypt.CompareHashAndPassword([]byte(record.CodeHash), []byte(code)); err != nil {
		// wrong code and missing code look the same to the caller
		return "", errors.CodeNotFound
	}

	// one-time use: the record is gone before any state transition
	if err := a.codes.DeleteCode(email, purpose); err != nil && !errors.IsNotFound(err) {
		return "", err
	}

	switch purpose {
	case domain.PurposeSignup:
		if err := a.store.SetVerified(email); err != nil {
			if errors.IsNotFound(err) {
				return "", errors.AccountNotFound
			}
			return "", err
		}
		logger.Log.Info("account verified", "email", email)
		return "", nil
	default:
		grant := domain.ResetGrant{
			Email:   email,
			Token:   uuid.NewString(),
			Expires: time.Now().UTC().Add(a.cfg.ResetGrantTTL()),
		}
		if err := a.grants.SaveResetGrant(grant); err != nil {
			return "", err
		}
		return grant.Token, nil
	}
}

// ResendCode re-issues a code, superseding the previous one, unless the
// per-identifier cooldown is still running.
func (a *Accounts) ResendCode(email domain.Email, purpose domain.Purpose) error {
	email = normalizeEmail(email)

	if !purpose.Valid() {
		return errors.ValidationFailed("Unknown verification purpose")
	}
	if err := a.email.IsCorrect(email); err != nil {
		return err
	}

	seconds, err := a.cooldown.SecondsRemaining(context.Background(), email)
	if err != nil {
		logger.Log.Warn("cooldown tracker unavailable, allowing resend", "error", err)
	} else if seconds > 0 {
		return errors.CooldownActive(seconds)
	}

	user, err := a.store.User(email)
	if err != nil {
		if errors.IsNotFound(err) {
			return errors.AccountNotFound
		}
		return err
	}
	if purpose == domain.PurposeSignup && user.Verified {
		return errors.AccountAlreadyVerified
	}

	return a.issueCode(email, user.FirstName, purpose)
}

// CompletePasswordReset writes a new password for an identity that was
// confirmed by VerifyCode, then consumes the grant so the flow cannot be
// replayed.
func (a *Accounts) CompletePasswordReset(email domain.Email, resetToken, newPassword string) error {
	email = normalizeEmail(email)

	if err := a.validatePassword(newPassword); err != nil {
		return err
	}

	grant, err := a.grants.ResetGrant(email)
	if err != nil {
		if errors.IsNotFound(err) {
			return errors.NotConfirmed
		}
		return err
	}
	if grant.Expired(time.Now().UTC()) {
		if err := a.grants.DeleteResetGrant(email); err != nil && !errors.IsNotFound(err) {
			logger.Log.Warn("failed to delete expired reset grant", "error", err)
		}
		return errors.NotConfirmed
	}
	if subtle.ConstantTimeCompare([]byte(grant.Token), []byte(resetToken)) != 1 {
		return errors.NotConfirmed
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return err
	}
	if err := a.store.UpdatePassword(email, string(passHash)); err != nil {
		if errors.IsNotFound(err) {
			return errors.AccountNotFound
		}
		return err
	}

	if err := a.grants.DeleteResetGrant(email); err != nil && !errors.IsNotFound(err) {
		logger.Log.Warn("failed to consume reset grant", "email", email, "error", err)
	}
	logger.Log.Info("password reset completed", "email", email)
	return nil
}

// issueCode generates a fresh code, persists it (superseding any previous
// code for the same key, expired or not), records the cooldown mark, and
// delivers the code. A delivery failure surfaces as an error but leaves the
// stored code intact; resend after cooldown replaces it.
func (a *Accounts) issueCode(email domain.Email, firstName string, purpose domain.Purpose) error {
	code := utils.GenerateCode(a.cfg.Public.Verification.CodeLength)

	codeHash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash one-time code", "error", err)
		return err
	}

	now := time.Now().UTC()
	record := domain.OneTimeCode{
		Email:     email,
		Purpose:   purpose,
		CodeHash:  string(codeHash),
		Expires:   now.Add(a.cfg.CodeTTL()),
		CreatedAt: now,
	}
	if err := a.codes.SaveCode(record); err != nil {
		return err
	}

	if err := a.cooldown.MarkSent(context.Background(), email); err != nil {
		logger.Log.Warn("failed to record cooldown mark", "error", err)
	}

	subject, body := a.codeEmail(firstName, code, purpose)
	if err := a.email.Send(email, subject, body); err != nil {
		logger.Log.Error("failed to deliver one-time code", "email", email, "error", err)
		return errors.DeliveryFailed
	}
	return nil
}

func (a *Accounts) codeEmail(firstName, code string, purpose domain.Purpose) (subject, body string) {
	minutes := int(a.cfg.CodeTTL().Minutes())
	greeting := "Hello"
	if firstName != "" {
		greeting = "Hello " + firstName
	}

	switch purpose {
	case domain.PurposeSignup:
		subject = "Vexora: Verify your account"
	default:
		subject = "Vexora: Password reset code"
	}

	body = fmt.Sprintf(`<div style="font-family:Arial,sans-serif;padding:20px;">
  <h2>%s</h2>
  <p>Your Vexora verification code is:</p>
  <h1 style="background:#eee;padding:10px 20px;width:fit-content;border-radius:5px;">%s</h1>
  <p>This code is valid for <b>%d minutes</b>. Do not share it with anyone.</p>
  <p>If you did not request this, please ignore this email.</p>
</div>`, greeting, code, minutes)
	return subject, body
}

// validatePassword enforces the configured policy: minimum length plus at
// least one lowercase, uppercase, digit, and symbol.
func (a *Accounts) validatePassword(password string) error {
	minLen := a.cfg.Public.PasswordMinLength
	if len(password) < minLen {
		return errors.ValidationFailed(fmt.Sprintf("Password must be at least %d characters long", minLen))
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	if !hasLower || !hasUpper || !hasDigit || !hasSymbol {
		return &errors.ErrorWithStatusCode{
			Message:    "Password must include at least one uppercase letter, one lowercase letter, one number, and one special character",
			StatusCode: http.StatusBadRequest,
		}
	}
	return nil
}

func normalizeEmail(email domain.Email) domain.Email {
	return strings.ToLower(strings.TrimSpace(email))
}

func sanitizeName(name string) string {
	return strings.TrimSpace(namePolicy.Sanitize(name))
}

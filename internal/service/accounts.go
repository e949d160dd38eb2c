package service

import (
	"net/http"

	"github.com/vexora-shop/accounts/internal/config"
	"github.com/vexora-shop/accounts/internal/cooldown"
	"github.com/vexora-shop/accounts/internal/domain"
	"github.com/vexora-shop/accounts/internal/errors"
	"github.com/vexora-shop/accounts/internal/logger"
	"golang.org/x/crypto/bcrypt"
)

const customersPerPage = 20

type AccountService interface {
	Signup(req SignupRequest) error
	Login(email, password string) (string, error)
	LoginWithGoogle(email, firstName, lastName string) (string, error)
	RequestPasswordReset(email domain.Email) error
	VerifyCode(email domain.Email, code string, purpose domain.Purpose) (string, error)
	ResendCode(email domain.Email, purpose domain.Purpose) error
	CompletePasswordReset(email domain.Email, resetToken, newPassword string) error
	CurrentUser(id domain.UserId) (domain.User, error)

	// Admin operations
	Customers(search string, page int) ([]domain.User, int, error)
	BlockCustomer(id domain.UserId) error
	UnblockCustomer(id domain.UserId) error
}

// CredentialStore is the only component allowed to mutate account records.
type CredentialStore interface {
	SaveUser(user domain.User) (domain.UserId, error)
	User(email domain.Email) (domain.User, error)
	UserById(id domain.UserId) (domain.User, error)
	UpdateUnverified(user domain.User) error
	SetVerified(email domain.Email) error
	UpdatePassword(email domain.Email, passwordHash string) error
	SetStatus(id domain.UserId, status domain.AccountStatus) error
	Users(search string, page, limit int) ([]domain.User, int, error)
}

// CodeStore holds at most one code record per (email, purpose); SaveCode
// atomically replaces the previous record for the same key.
type CodeStore interface {
	SaveCode(code domain.OneTimeCode) error
	Code(email domain.Email, purpose domain.Purpose) (domain.OneTimeCode, error)
	DeleteCode(email domain.Email, purpose domain.Purpose) error
}

// GrantStore persists "identity confirmed" markers for the reset flow.
type GrantStore interface {
	SaveResetGrant(grant domain.ResetGrant) error
	ResetGrant(email domain.Email) (domain.ResetGrant, error)
	DeleteResetGrant(email domain.Email) error
}

type Sender interface {
	Send(recipientEmail, subject, body string) error
	IsCorrect(email domain.Email) error
}

type SessionIssuer interface {
	NewToken(user domain.User) (string, error)
}

type Accounts struct {
	store    CredentialStore
	codes    CodeStore
	grants   GrantStore
	email    Sender
	jwt      SessionIssuer
	cooldown cooldown.Tracker
	cfg      *config.Config
}

func NewAccounts(store CredentialStore, codes CodeStore, grants GrantStore, email Sender, jwt SessionIssuer, cd cooldown.Tracker, cfg *config.Config) *Accounts {
	return &Accounts{
		store:    store,
		codes:    codes,
		grants:   grants,
		email:    email,
		jwt:      jwt,
		cooldown: cd,
		cfg:      cfg,
	}
}

// Login checks credentials and returns a session token.
// Unverified and blocked accounts cannot log in; a missing account and a
// wrong password are indistinguishable to the caller.
func (a *Accounts) Login(email, password string) (string, error) {
	email = normalizeEmail(email)

	if err := a.email.IsCorrect(email); err != nil {
		return "", err
	}

	user, err := a.store.User(email)
	if err != nil {
		if errors.IsNotFound(err) {
			return "", &errors.ErrorWithStatusCode{Message: "Invalid credentials", StatusCode: http.StatusUnauthorized}
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(password)); err != nil {
		return "", &errors.ErrorWithStatusCode{Message: "Invalid credentials", StatusCode: http.StatusUnauthorized}
	}

	if !user.Verified {
		return "", &errors.ErrorWithStatusCode{Message: "Account not verified. Please complete email verification", StatusCode: http.StatusForbidden}
	}
	if user.Status == domain.StatusBlocked {
		return "", &errors.ErrorWithStatusCode{Message: "Account suspended", StatusCode: http.StatusForbidden}
	}

	token, err := a.jwt.NewToken(user)
	if err != nil {
		logger.Log.Error("failed to create session token", "user_id", user.Id, "error", err)
		return "", err
	}
	return token, nil
}

// LoginWithGoogle finds or creates an account for an identity Google already
// verified for us, then starts a session. Accounts created this way have no
// password until the user runs the reset flow.
func (a *Accounts) LoginWithGoogle(email, firstName, lastName string) (string, error) {
	email = normalizeEmail(email)

	if err := a.email.IsCorrect(email); err != nil {
		return "", err
	}

	user, err := a.store.User(email)
	if err != nil {
		if !errors.IsNotFound(err) {
			return "", err
		}
		user = domain.User{
			Email:     email,
			FirstName: sanitizeName(firstName),
			LastName:  sanitizeName(lastName),
			Verified:  true,
			Status:    domain.StatusActive,
		}
		id, err := a.store.SaveUser(user)
		if err != nil {
			return "", err
		}
		user.Id = id
		logger.Log.Info("created account via google oauth", "user_id", id)
	}

	if user.Status == domain.StatusBlocked {
		return "", &errors.ErrorWithStatusCode{Message: "Account suspended", StatusCode: http.StatusForbidden}
	}

	token, err := a.jwt.NewToken(user)
	if err != nil {
		logger.Log.Error("failed to create session token", "user_id", user.Id, "error", err)
		return "", err
	}
	return token, nil
}

func (a *Accounts) CurrentUser(id domain.UserId) (domain.User, error) {
	return a.store.UserById(id)
}

// Customers lists accounts for the admin screen.
func (a *Accounts) Customers(search string, page int) ([]domain.User, int, error) {
	return a.store.Users(search, page, customersPerPage)
}

// BlockCustomer suspends an account. Existing sessions are not revoked; the
// block takes effect at the next login.
func (a *Accounts) BlockCustomer(id domain.UserId) error {
	if err := a.store.SetStatus(id, domain.StatusBlocked); err != nil {
		return err
	}
	logger.Log.Info("customer blocked", "user_id", id)
	return nil
}

func (a *Accounts) UnblockCustomer(id domain.UserId) error {
	if err := a.store.SetStatus(id, domain.StatusActive); err != nil {
		return err
	}
	logger.Log.Info("customer unblocked", "user_id", id)
	return nil
}

package service

import (
	"context"
	"net/http"
	"strings"

	"github.com/vexora-shop/accounts/internal/config"
	"github.com/vexora-shop/accounts/internal/domain"
	internal_errors "github.com/vexora-shop/accounts/internal/errors"
	"golang.org/x/crypto/bcrypt"
)

// --- Mocks ---

type MockCredentialStore struct {
	SaveUserFunc         func(user domain.User) (domain.UserId, error)
	UserFunc             func(email domain.Email) (domain.User, error)
	UserByIdFunc         func(id domain.UserId) (domain.User, error)
	UpdateUnverifiedFunc func(user domain.User) error
	SetVerifiedFunc      func(email domain.Email) error
	UpdatePasswordFunc   func(email domain.Email, passwordHash string) error
	SetStatusFunc        func(id domain.UserId, status domain.AccountStatus) error
	UsersFunc            func(search string, page, limit int) ([]domain.User, int, error)
}

func (m *MockCredentialStore) SaveUser(user domain.User) (domain.UserId, error) {
	if m.SaveUserFunc != nil {
		return m.SaveUserFunc(user)
	}
	return 1, nil
}

func (m *MockCredentialStore) User(email domain.Email) (domain.User, error) {
	if m.UserFunc != nil {
		return m.UserFunc(email)
	}
	// Default: not found
	return domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
}

func (m *MockCredentialStore) UserById(id domain.UserId) (domain.User, error) {
	if m.UserByIdFunc != nil {
		return m.UserByIdFunc(id)
	}
	return domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
}

func (m *MockCredentialStore) UpdateUnverified(user domain.User) error {
	if m.UpdateUnverifiedFunc != nil {
		return m.UpdateUnverifiedFunc(user)
	}
	return nil
}

func (m *MockCredentialStore) SetVerified(email domain.Email) error {
	if m.SetVerifiedFunc != nil {
		return m.SetVerifiedFunc(email)
	}
	return nil
}

func (m *MockCredentialStore) UpdatePassword(email domain.Email, passwordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(email, passwordHash)
	}
	return nil
}

func (m *MockCredentialStore) SetStatus(id domain.UserId, status domain.AccountStatus) error {
	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(id, status)
	}
	return nil
}

func (m *MockCredentialStore) Users(search string, page, limit int) ([]domain.User, int, error) {
	if m.UsersFunc != nil {
		return m.UsersFunc(search, page, limit)
	}
	return nil, 0, nil
}

type MockCodeStore struct {
	SaveCodeFunc   func(code domain.OneTimeCode) error
	CodeFunc       func(email domain.Email, purpose domain.Purpose) (domain.OneTimeCode, error)
	DeleteCodeFunc func(email domain.Email, purpose domain.Purpose) error
}

func (m *MockCodeStore) SaveCode(code domain.OneTimeCode) error {
	if m.SaveCodeFunc != nil {
		return m.SaveCodeFunc(code)
	}
	return nil
}

func (m *MockCodeStore) Code(email domain.Email, purpose domain.Purpose) (domain.OneTimeCode, error) {
	if m.CodeFunc != nil {
		return m.CodeFunc(email, purpose)
	}
	// Default: not found
	return domain.OneTimeCode{}, &internal_errors.ErrorWithStatusCode{Message: "Code not found", StatusCode: http.StatusNotFound}
}

func (m *MockCodeStore) DeleteCode(email domain.Email, purpose domain.Purpose) error {
	if m.DeleteCodeFunc != nil {
		return m.DeleteCodeFunc(email, purpose)
	}
	return nil
}

type MockGrantStore struct {
	SaveResetGrantFunc   func(grant domain.ResetGrant) error
	ResetGrantFunc       func(email domain.Email) (domain.ResetGrant, error)
	DeleteResetGrantFunc func(email domain.Email) error
}

func (m *MockGrantStore) SaveResetGrant(grant domain.ResetGrant) error {
	if m.SaveResetGrantFunc != nil {
		return m.SaveResetGrantFunc(grant)
	}
	return nil
}

func (m *MockGrantStore) ResetGrant(email domain.Email) (domain.ResetGrant, error) {
	if m.ResetGrantFunc != nil {
		return m.ResetGrantFunc(email)
	}
	// Default: not found
	return domain.ResetGrant{}, &internal_errors.ErrorWithStatusCode{Message: "Reset grant not found", StatusCode: http.StatusNotFound}
}

func (m *MockGrantStore) DeleteResetGrant(email domain.Email) error {
	if m.DeleteResetGrantFunc != nil {
		return m.DeleteResetGrantFunc(email)
	}
	return nil
}

type MockSender struct {
	SendFunc      func(recipientEmail, subject, body string) error
	IsCorrectFunc func(email domain.Email) error
}

func (m *MockSender) Send(recipientEmail, subject, body string) error {
	if m.SendFunc != nil {
		return m.SendFunc(recipientEmail, subject, body)
	}
	return nil
}

func (m *MockSender) IsCorrect(email domain.Email) error {
	if m.IsCorrectFunc != nil {
		return m.IsCorrectFunc(email)
	}
	if !strings.Contains(email, "@") {
		return &internal_errors.ErrorWithStatusCode{Message: "Invalid email", StatusCode: http.StatusBadRequest}
	}
	return nil
}

type MockJwt struct {
	NewTokenFunc func(user domain.User) (string, error)
}

func (m *MockJwt) NewToken(user domain.User) (string, error) {
	if m.NewTokenFunc != nil {
		return m.NewTokenFunc(user)
	}
	return "test_token", nil
}

type MockCooldown struct {
	MarkSentFunc         func(ctx context.Context, identifier string) error
	SecondsRemainingFunc func(ctx context.Context, identifier string) (int, error)
}

func (m *MockCooldown) MarkSent(ctx context.Context, identifier string) error {
	if m.MarkSentFunc != nil {
		return m.MarkSentFunc(ctx, identifier)
	}
	return nil
}

func (m *MockCooldown) SecondsRemaining(ctx context.Context, identifier string) (int, error) {
	if m.SecondsRemainingFunc != nil {
		return m.SecondsRemainingFunc(ctx, identifier)
	}
	return 0, nil
}

// --- Helpers ---

func testConfig() *config.Config {
	return &config.Config{Public: config.Public{
		Verification: config.Verification{
			CodeLength:            6,
			CodeTTLSeconds:        300,
			ResendCooldownSeconds: 60,
			ResetGrantTTLSeconds:  600,
		},
		PasswordMinLength: 8,
	}}
}

func newTestService() (*Accounts, *MockCredentialStore, *MockCodeStore, *MockGrantStore, *MockSender, *MockJwt, *MockCooldown) {
	store := &MockCredentialStore{}
	codes := &MockCodeStore{}
	grants := &MockGrantStore{}
	sender := &MockSender{}
	jwt := &MockJwt{}
	cd := &MockCooldown{}
	svc := NewAccounts(store, codes, grants, sender, jwt, cd, testConfig())
	return svc, store, codes, grants, sender, jwt, cd
}

func mustHash(value string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(value), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}

package handler

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/vexora-shop/accounts/internal/domain"
	"github.com/vexora-shop/accounts/internal/service"
)

func createRequest(t *testing.T, method, url string, body []byte, cookies ...*http.Cookie) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

type MockAccountService struct {
	MockSignup                func(req service.SignupRequest) error
	MockLogin                 func(email, password string) (string, error)
	MockLoginWithGoogle       func(email, firstName, lastName string) (string, error)
	MockRequestPasswordReset  func(email domain.Email) error
	MockVerifyCode            func(email domain.Email, code string, purpose domain.Purpose) (string, error)
	MockResendCode            func(email domain.Email, purpose domain.Purpose) error
	MockCompletePasswordReset func(email domain.Email, resetToken, newPassword string) error
	MockCurrentUser           func(id domain.UserId) (domain.User, error)
	MockCustomers             func(search string, page int) ([]domain.User, int, error)
	MockBlockCustomer         func(id domain.UserId) error
	MockUnblockCustomer       func(id domain.UserId) error
}

func (m *MockAccountService) Signup(req service.SignupRequest) error {
	if m.MockSignup != nil {
		return m.MockSignup(req)
	}
	return nil
}

func (m *MockAccountService) Login(email, password string) (string, error) {
	if m.MockLogin != nil {
		return m.MockLogin(email, password)
	}
	return "", nil
}

func (m *MockAccountService) LoginWithGoogle(email, firstName, lastName string) (string, error) {
	if m.MockLoginWithGoogle != nil {
		return m.MockLoginWithGoogle(email, firstName, lastName)
	}
	return "", nil
}

func (m *MockAccountService) RequestPasswordReset(email domain.Email) error {
	if m.MockRequestPasswordReset != nil {
		return m.MockRequestPasswordReset(email)
	}
	return nil
}

func (m *MockAccountService) VerifyCode(email domain.Email, code string, purpose domain.Purpose) (string, error) {
	if m.MockVerifyCode != nil {
		return m.MockVerifyCode(email, code, purpose)
	}
	return "", nil
}

func (m *MockAccountService) ResendCode(email domain.Email, purpose domain.Purpose) error {
	if m.MockResendCode != nil {
		return m.MockResendCode(email, purpose)
	}
	return nil
}

func (m *MockAccountService) CompletePasswordReset(email domain.Email, resetToken, newPassword string) error {
	if m.MockCompletePasswordReset != nil {
		return m.MockCompletePasswordReset(email, resetToken, newPassword)
	}
	return nil
}

func (m *MockAccountService) CurrentUser(id domain.UserId) (domain.User, error) {
	if m.MockCurrentUser != nil {
		return m.MockCurrentUser(id)
	}
	return domain.User{}, nil
}

func (m *MockAccountService) Customers(search string, page int) ([]domain.User, int, error) {
	if m.MockCustomers != nil {
		return m.MockCustomers(search, page)
	}
	return nil, 0, nil
}

func (m *MockAccountService) BlockCustomer(id domain.UserId) error {
	if m.MockBlockCustomer != nil {
		return m.MockBlockCustomer(id)
	}
	return nil
}

func (m *MockAccountService) UnblockCustomer(id domain.UserId) error {
	if m.MockUnblockCustomer != nil {
		return m.MockUnblockCustomer(id)
	}
	return nil
}

type MockPinger struct {
	MockPing func(ctx context.Context) error
}

func (m *MockPinger) Ping(ctx context.Context) error {
	if m.MockPing != nil {
		return m.MockPing(ctx)
	}
	return nil
}

package service

import (
	"errors"
	"net/http"
	"testing"

	"github.com/vexora-shop/accounts/internal/domain"
	internal_errors "github.com/vexora-shop/accounts/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	password := "Str0ng!pass"
	activeUser := domain.User{
		Id:       1,
		Email:    "jane@example.com",
		PassHash: mustHash(password),
		Verified: true,
		Status:   domain.StatusActive,
	}

	t.Run("Successful login", func(t *testing.T) {
		svc, store, _, _, _, jwt, _ := newTestService()

		store.UserFunc = func(e domain.Email) (domain.User, error) {
			return activeUser, nil
		}
		jwt.NewTokenFunc = func(user domain.User) (string, error) {
			assert.Equal(t, activeUser.Id, user.Id)
			return "success_token", nil
		}

		token, err := svc.Login("jane@example.com", password)
		require.NoError(t, err)
		assert.Equal(t, "success_token", token)
	})

	t.Run("Unknown account looks like a wrong password", func(t *testing.T) {
		svc, _, _, _, _, _, _ := newTestService()

		token, err := svc.Login("nobody@example.com", password)
		require.Error(t, err)
		assert.Empty(t, token)
		var errWithStatus *internal_errors.ErrorWithStatusCode
		require.True(t, errors.As(err, &errWithStatus))
		assert.Equal(t, http.StatusUnauthorized, errWithStatus.StatusCode)
		assert.Equal(t, "Invalid credentials", errWithStatus.Message)
	})

	t.Run("Wrong password", func(t *testing.T) {
		svc, store, _, _, _, _, _ := newTestService()

		store.UserFunc = func(e domain.Email) (domain.User, error) {
			return activeUser, nil
		}

		token, err := svc.Login("jane@example.com", "wrong_password")
		require.Error(t, err)
		assert.Empty(t, token)
		var errWithStatus *internal_errors.ErrorWithStatusCode
		require.True(t, errors.As(err, &errWithStatus))
		assert.Equal(t, http.StatusUnauthorized, errWithStatus.StatusCode)
		assert.Equal(t, "Invalid credentials", errWithStatus.Message)
	})

	t.Run("Unverified account", func(t *testing.T) {
		svc, store, _, _, _, _, _ := newTestService()

		store.UserFunc = func(e domain.Email) (domain.User, error) {
			user := activeUser
			user.Verified = false
			return user, nil
		}

		token, err := svc.Login("jane@example.com", password)
		require.Error(t, err)
		assert.Empty(t, token)
		var errWithStatus *internal_errors.ErrorWithStatusCode
		require.True(t, errors.As(err, &errWithStatus))
		assert.Equal(t, http.StatusForbidden, errWithStatus.StatusCode)
	})

	t.Run("Blocked account", func(t *testing.T) {
		svc, store, _, _, _, _, _ := newTestService()

		store.UserFunc = func(e domain.Email) (domain.User, error) {
			user := activeUser
			user.Status = domain.StatusBlocked
			return user, nil
		}

		token, err := svc.Login("jane@example.com", password)
		require.Error(t, err)
		assert.Empty(t, token)
		var errWithStatus *internal_errors.ErrorWithStatusCode
		require.True(t, errors.As(err, &errWithStatus))
		assert.Equal(t, http.StatusForbidden, errWithStatus.StatusCode)
		assert.Equal(t, "Account suspended", errWithStatus.Message)
	})

	t.Run("jwt.NewToken error", func(t *testing.T) {
		svc, store, _, _, _, jwt, _ := newTestService()

		mockError := errors.New("mock NewTokenFunc error")
		store.UserFunc = func(e domain.Email) (domain.User, error) {
			return activeUser, nil
		}
		jwt.NewTokenFunc = func(user domain.User) (string, error) {
			return "", mockError
		}

		token, err := svc.Login("jane@example.com", password)
		require.Error(t, err)
		assert.True(t, errors.Is(err, mockError))
		assert.Empty(t, token)
	})
}

func TestLoginWithGoogle(t *testing.T) {
	t.Run("Existing account logs straight in", func(t *testing.T) {
		svc, store, _, _, _, jwt, _ := newTestService()

		store.UserFunc = func(e domain.Email) (domain.User, error) {
			return domain.User{Id: 7, Email: e, Verified: true, Status: domain.StatusActive}, nil
		}
		saveCalled := false
		store.SaveUserFunc = func(user domain.User) (domain.UserId, error) {
			saveCalled = true
			return 0, nil
		}
		jwt.NewTokenFunc = func(user domain.User) (string, error) {
			assert.Equal(t, domain.UserId(7), user.Id)
			return "google_token", nil
		}

		token, err := svc.LoginWithGoogle("jane@example.com", "Jane", "Doe")
		require.NoError(t, err)
		assert.Equal(t, "google_token", token)
		assert.False(t, saveCalled)
	})

	t.Run("New account is created already verified", func(t *testing.T) {
		svc, store, _, _, _, _, _ := newTestService()

		var savedUser domain.User
		store.SaveUserFunc = func(user domain.User) (domain.UserId, error) {
			savedUser = user
			return 42, nil
		}

		token, err := svc.LoginWithGoogle("new@example.com", "New", "User")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.True(t, savedUser.Verified, "a Google identity needs no code verification")
		assert.Equal(t, domain.StatusActive, savedUser.Status)
		assert.Empty(t, savedUser.PassHash)
	})

	t.Run("Blocked account", func(t *testing.T) {
		svc, store, _, _, _, _, _ := newTestService()

		store.UserFunc = func(e domain.Email) (domain.User, error) {
			return domain.User{Id: 7, Email: e, Verified: true, Status: domain.StatusBlocked}, nil
		}

		token, err := svc.LoginWithGoogle("jane@example.com", "Jane", "Doe")
		require.Error(t, err)
		assert.Empty(t, token)
		var errWithStatus *internal_errors.ErrorWithStatusCode
		require.True(t, errors.As(err, &errWithStatus))
		assert.Equal(t, http.StatusForbidden, errWithStatus.StatusCode)
	})
}

func TestBlockUnblock(t *testing.T) {
	t.Run("Block sets the blocked status", func(t *testing.T) {
		svc, store, _, _, _, _, _ := newTestService()

		var setStatus domain.AccountStatus
		store.SetStatusFunc = func(id domain.UserId, status domain.AccountStatus) error {
			assert.Equal(t, domain.UserId(5), id)
			setStatus = status
			return nil
		}

		require.NoError(t, svc.BlockCustomer(5))
		assert.Equal(t, domain.StatusBlocked, setStatus)
	})

	t.Run("Unblock restores the active status", func(t *testing.T) {
		svc, store, _, _, _, _, _ := newTestService()

		var setStatus domain.AccountStatus
		store.SetStatusFunc = func(id domain.UserId, status domain.AccountStatus) error {
			setStatus = status
			return nil
		}

		require.NoError(t, svc.UnblockCustomer(5))
		assert.Equal(t, domain.StatusActive, setStatus)
	})

	t.Run("Unknown customer", func(t *testing.T) {
		svc, store, _, _, _, _, _ := newTestService()

		store.SetStatusFunc = func(id domain.UserId, status domain.AccountStatus) error {
			return internal_errors.AccountNotFound
		}

		err := svc.BlockCustomer(99)
		require.Error(t, err)
		assert.True(t, internal_errors.IsNotFound(err))
	})
}

func TestCustomers(t *testing.T) {
	svc, store, _, _, _, _, _ := newTestService()

	store.UsersFunc = func(search string, page, limit int) ([]domain.User, int, error) {
		assert.Equal(t, "jane", search)
		assert.Equal(t, 2, page)
		assert.Equal(t, customersPerPage, limit)
		return []domain.User{{Id: 1}}, 21, nil
	}

	users, total, err := svc.Customers("jane", 2)
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, 21, total)
}

package handler

import (
	"net/http"

	"github.com/vexora-shop/accounts/internal/domain"
	"github.com/vexora-shop/accounts/internal/middleware"
	"github.com/vexora-shop/accounts/internal/middleware/metrics"
	"github.com/vexora-shop/accounts/internal/service"
	"github.com/vexora-shop/accounts/internal/utils"
)

type signupRequest struct {
	FirstName       string `validate:"required" json:"first_name"`
	LastName        string `validate:"required" json:"last_name"`
	Mobile          string `validate:"required" json:"mobile"`
	Email           string `validate:"required,email" json:"email"`
	Password        string `validate:"required" json:"password"`
	ConfirmPassword string `validate:"required" json:"confirm_password"`
}

type credentials struct {
	Email    string `validate:"required,email" json:"email"`
	Password string `validate:"required" json:"password"`
}

// Signup handles POST /v1/auth/signup
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	err := h.accounts.Signup(service.SignupRequest{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Mobile:          req.Mobile,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	metrics.CodeIssued(string(domain.PurposeSignup))

	w.WriteHeader(http.StatusCreated)
	w.Write([]byte("Created. Check your email for the verification code"))
}

// Login handles POST /v1/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := utils.DecodeValidate(r.Body, &creds); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	accessToken, err := h.accounts.Login(creds.Email, creds.Password)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	h.setSessionCookie(w, accessToken)

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("You logged in"))
}

// Logout handles POST /v1/auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie := &http.Cookie{
		Path:     "/",
		Name:     "accessToken",
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
	}
	http.SetCookie(w, cookie)

	w.WriteHeader(http.StatusOK)
}

// Me handles GET /v1/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r)
	if claims == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return
	}

	user, err := h.accounts.CurrentUser(claims.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, user)
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, accessToken string) {
	cookie := &http.Cookie{
		Path:     "/",
		Name:     "accessToken",
		Value:    accessToken,
		MaxAge:   int(h.cfg.SessionTTL().Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
	}
	http.SetCookie(w, cookie)
}

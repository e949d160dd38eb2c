package handler

import (
	"net/http"

	"github.com/vexora-shop/accounts/internal/domain"
	"github.com/vexora-shop/accounts/internal/middleware/metrics"
	"github.com/vexora-shop/accounts/internal/utils"
)

type forgotPasswordRequest struct {
	Email string `validate:"required,email" json:"email"`
}

type resetPasswordRequest struct {
	Email       string `validate:"required,email" json:"email"`
	ResetToken  string `validate:"required" json:"reset_token"`
	NewPassword string `validate:"required" json:"new_password"`
}

// ForgotPassword handles POST /v1/auth/forgot-password
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.accounts.RequestPasswordReset(req.Email); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	metrics.CodeIssued(string(domain.PurposePasswordReset))

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("A reset code was sent to your email"))
}

// ResetPassword handles POST /v1/auth/reset-password
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.accounts.CompletePasswordReset(req.Email, req.ResetToken, req.NewPassword); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Password updated. You can login now"))
}

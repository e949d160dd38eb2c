package handler

import (
	"net/http"

	"github.com/vexora-shop/accounts/internal/domain"
	"github.com/vexora-shop/accounts/internal/middleware/metrics"
	"github.com/vexora-shop/accounts/internal/utils"
)

type verifyCodeRequest struct {
	Email   string `validate:"required,email" json:"email"`
	Code    string `validate:"required" json:"code"`
	Purpose string `validate:"required" json:"purpose"`
}

type resendCodeRequest struct {
	Email   string `validate:"required,email" json:"email"`
	Purpose string `validate:"required" json:"purpose"`
}

type verifyCodeResponse struct {
	Message    string `json:"message"`
	ResetToken string `json:"reset_token,omitempty"`
}

// VerifyCode handles POST /v1/auth/verify
func (h *Handler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req verifyCodeRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	resetToken, err := h.accounts.VerifyCode(req.Email, req.Code, domain.Purpose(req.Purpose))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, verifyCodeResponse{
		Message:    "Code verified",
		ResetToken: resetToken,
	})
}

// ResendCode handles POST /v1/auth/resend
func (h *Handler) ResendCode(w http.ResponseWriter, r *http.Request) {
	var req resendCodeRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.accounts.ResendCode(req.Email, domain.Purpose(req.Purpose)); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	metrics.CodeIssued(req.Purpose)

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("A new code was sent to your email"))
}

package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/vexora-shop/accounts/internal/config"
	"github.com/vexora-shop/accounts/internal/logger"
	"github.com/vexora-shop/accounts/internal/service"
	"golang.org/x/oauth2"
)

// Pinger reports whether a dependency can serve requests.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	accounts service.AccountService
	health   Pinger
	oauth    *oauth2.Config
	cfg      *config.Config
}

func New(accounts service.AccountService, health Pinger, oauth *oauth2.Config, cfg *config.Config) *Handler {
	return &Handler{accounts, health, oauth, cfg}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}

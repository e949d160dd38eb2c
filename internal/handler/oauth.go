package handler

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/vexora-shop/accounts/internal/logger"
	"github.com/vexora-shop/accounts/internal/utils"
)

const userinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type googleUserinfo struct {
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

// GoogleLogin handles GET /v1/auth/google
// Redirects the browser to Google's consent screen. The random state is
// stored in a short-lived cookie and checked on callback.
func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	stateBytes := make([]byte, 16)
	if _, err := rand.Read(stateBytes); err != nil {
		logger.Log.Error("failed to generate oauth state", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	state := base64.RawURLEncoding.EncodeToString(stateBytes)

	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     "oauthState",
		Value:    state,
		MaxAge:   300,
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
	})

	http.Redirect(w, r, h.oauth.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// GoogleCallback handles GET /v1/auth/google/callback
func (h *Handler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie("oauthState")
	if err != nil || stateCookie.Value == "" || r.URL.Query().Get("state") != stateCookie.Value {
		http.Error(w, "Invalid oauth state", http.StatusBadRequest)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Missing authorization code", http.StatusBadRequest)
		return
	}

	token, err := h.oauth.Exchange(r.Context(), code)
	if err != nil {
		logger.Log.Error("oauth code exchange failed", "error", err)
		http.Error(w, "Authorization failed", http.StatusUnauthorized)
		return
	}

	info, err := fetchGoogleUserinfo(r, token.AccessToken)
	if err != nil {
		logger.Log.Error("failed to fetch google userinfo", "error", err)
		http.Error(w, "Authorization failed", http.StatusUnauthorized)
		return
	}

	accessToken, err := h.accounts.LoginWithGoogle(info.Email, info.GivenName, info.FamilyName)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	h.setSessionCookie(w, accessToken)

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("You logged in"))
}

func fetchGoogleUserinfo(r *http.Request, accessToken string) (*googleUserinfo, error) {
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, userinfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var info googleUserinfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}

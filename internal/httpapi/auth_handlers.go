package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"mikopo.org/internal/notify"
	"mikopo.org/internal/session"
)

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
	Remember   bool   `json:"remember"`
}

type loginResponse struct {
	Session session.Session `json:"session"`
	Token   string          `json:"token"`
	Offline bool            `json:"offline"`
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Identifier) == "" || req.Password == "" {
		writeError(w, r, http.StatusBadRequest, "identifier and password are required")
		return
	}

	s, err := a.resolver.Resolve(r.Context(), req.Identifier, req.Password, req.Remember)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			// One message for every miss; see session package.
			writeError(w, r, http.StatusUnauthorized, "invalid credentials")
			return
		}
		writeError(w, r, http.StatusInternalServerError, "authentication error")
		return
	}

	token, err := session.GenerateToken(s)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "session token failed")
		return
	}

	if s.Offline && a.notices != nil {
		a.notices.Publish(notify.KindOfflineMode,
			"Signed in from the local cache; the remote directory was unreachable.")
	}

	writeJSON(w, http.StatusOK, loginResponse{Session: s, Token: token, Offline: s.Offline})
}

func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	if err := a.resolver.Logout(r.Context()); err != nil {
		writeError(w, r, http.StatusInternalServerError, "logout failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	s, ok := session.FromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "no session")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

package httpapi

import (
	"errors"
	"net/http"

	"mikopo.org/internal/tenant"
)

type organizationResponse struct {
	Organization tenant.Organization `json:"organization"`
	Synced       bool                `json:"synced"`
	Notice       string              `json:"notice,omitempty"`
}

func (a *API) handleOrganizations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var form tenant.RegistrationForm
	if err := decodeJSON(w, r, &form); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	res, err := a.onboarding.Register(r.Context(), &form)
	if err != nil {
		var verr *tenant.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":  "validation failed",
				"fields": verr.Fields,
			})
			return
		}
		writeError(w, r, http.StatusInternalServerError, "registration failed")
		return
	}

	// The credentials travel back once so the caller can sign in; the
	// password never appears in list responses.
	org := res.Organization
	writeJSON(w, http.StatusCreated, organizationResponse{
		Organization: org,
		Synced:       res.Synced,
		Notice:       res.Notice,
	})
}

package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"mikopo.org/internal/notify"
	"mikopo.org/internal/obs"
	"mikopo.org/internal/portfolio"
	"mikopo.org/internal/session"
	"mikopo.org/internal/tenant"
)

// ReadyProbe checks the stores behind the API. The local cache is required;
// the remote directory is optional and its outage never fails readiness,
// because the product is expected to keep working offline.
type ReadyProbe struct {
	Local  *sql.DB
	Remote *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.Local == nil {
		return nil
	}
	return rp.Local.PingContext(ctx)
}

// RemoteStatus reports the directory connection state for the /readyz payload.
func (rp ReadyProbe) RemoteStatus(ctx context.Context) string {
	if rp.Remote == nil {
		return "disabled"
	}
	if err := rp.Remote.PingContext(ctx); err != nil {
		return "unreachable"
	}
	return "ok"
}

// API is the HTTP layer.
type API struct {
	mux        *http.ServeMux
	readyProbe ReadyProbe
	version    string

	resolver   *session.Resolver
	onboarding *tenant.Onboarding
	snapshot   *portfolio.Snapshot
	notices    *notify.Hub

	insightDelay time.Duration
	rateBurst    int
	ratePerSec   int
}

// New wires the routes. notices may be nil to disable the notice stream.
func New(rp ReadyProbe, version string, resolver *session.Resolver, onboarding *tenant.Onboarding, snapshot *portfolio.Snapshot, notices *notify.Hub) *API {
	a := &API{
		mux:          http.NewServeMux(),
		readyProbe:   rp,
		version:      version,
		resolver:     resolver,
		onboarding:   onboarding,
		snapshot:     snapshot,
		notices:      notices,
		insightDelay: 1200 * time.Millisecond,
		rateBurst:    20,
		ratePerSec:   10,
	}

	a.mux.HandleFunc("/healthz", a.Healthz)
	a.mux.HandleFunc("/readyz", a.Ready)
	a.mux.HandleFunc("/v1/info", a.Info)

	a.mux.HandleFunc("/v1/auth/login", a.handleLogin)
	a.mux.HandleFunc("/v1/auth/logout", a.handleLogout)
	a.mux.HandleFunc("/v1/session", a.handleSession)
	a.mux.HandleFunc("/v1/organizations", a.handleOrganizations)

	a.mux.HandleFunc("/v1/insights/risk", a.handleRiskInsight)
	a.mux.HandleFunc("/v1/insights/cashflow", a.handleCashflowInsight)
	a.mux.HandleFunc("/v1/insights/fraud", a.handleFraudInsight)
	a.mux.HandleFunc("/v1/insights/reminders", a.handleRemindersInsight)

	a.mux.HandleFunc("/v1/notices/stream", a.Stream)

	// Prometheus metrics
	a.mux.Handle("/metrics", obs.Handler())

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	return a
}

// SetInsightDelay overrides the simulated analysis pause (tests set it to 0).
func (a *API) SetInsightDelay(d time.Duration) {
	if d >= 0 {
		a.insightDelay = d
	}
}

// Handler returns the fully assembled middleware chain.
func (a *API) Handler() http.Handler {
	handler := a.withAuth(obs.Instrument(a.mux))
	handler = RateLimit(handler, a.rateBurst, a.ratePerSec)
	handler = MaxBodyBytes(handler, 1<<20)
	handler = CORS(handler)
	handler = SecurityHeaders(handler)
	handler = LoggingJSON(handler)
	handler = RequestID(handler)
	return handler
}

// --- Handlers ---

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "mikopo-api",
		"version": a.version,
	})
}

func (a *API) Ready(w http.ResponseWriter, r *http.Request) {
	if err := a.readyProbe.Check(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
		"remote": a.readyProbe.RemoteStatus(r.Context()),
	})
}

func (a *API) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "mikopo-api",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": a.version,
	})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	payload := map[string]any{
		"error": msg,
	}
	if rid := RequestIDFromContext(r.Context()); rid != "" {
		payload["request_id"] = rid
	}
	writeJSON(w, code, payload)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	reader := http.MaxBytesReader(w, r.Body, 1<<20)
	defer reader.Close()
	dec := json.NewDecoder(reader)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return errors.New("unexpected data after JSON body")
		}
		return err
	}
	return nil
}

package httpapi

import (
	"net/http"
	"time"

	"mikopo.org/internal/insight"
	"mikopo.org/internal/obs"
)

// runInsight applies the simulated analysis pause shared by every panel. The
// pause aborts cleanly when the client goes away.
func (a *API) runInsight(w http.ResponseWriter, r *http.Request, panel string, compute func() any) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	start := time.Now()
	if err := insight.Process(r.Context(), a.insightDelay); err != nil {
		writeError(w, r, http.StatusRequestTimeout, "analysis cancelled")
		return
	}
	report := compute()
	obs.ObserveInsight(panel, time.Since(start))
	writeJSON(w, http.StatusOK, report)
}

func (a *API) handleRiskInsight(w http.ResponseWriter, r *http.Request) {
	a.runInsight(w, r, "risk", func() any {
		return insight.Risk(a.snapshot.Loans())
	})
}

func (a *API) handleCashflowInsight(w http.ResponseWriter, r *http.Request) {
	a.runInsight(w, r, "cashflow", func() any {
		return insight.Cashflow(a.snapshot.Loans(), time.Now().UTC())
	})
}

func (a *API) handleFraudInsight(w http.ResponseWriter, r *http.Request) {
	a.runInsight(w, r, "fraud", func() any {
		return insight.Fraud(a.snapshot.Clients(), a.snapshot.Loans())
	})
}

func (a *API) handleRemindersInsight(w http.ResponseWriter, r *http.Request) {
	a.runInsight(w, r, "reminders", func() any {
		return map[string]any{
			"reminders": insight.Reminders(a.snapshot.Clients(), a.snapshot.Loans(), time.Now().UTC()),
		}
	})
}

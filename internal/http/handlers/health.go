package handlers

import "net/http"

// Health answers liveness probes. It deliberately touches no dependency: a
// degraded database or rate provider must not make the process look dead.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "givebox",
	})
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/yashxcode/aurelia-studio/internal/stt"
)

type HealthHandler struct {
	provider stt.Transcriber
}

func NewHealthHandler(provider stt.Transcriber) *HealthHandler {
	return &HealthHandler{provider: provider}
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}

	if hc, ok := h.provider.(stt.HealthChecker); ok {
		if err := hc.CheckHealth(r.Context()); err != nil {
			checks[h.provider.Name()] = "unhealthy: " + err.Error()
		} else {
			checks[h.provider.Name()] = "ok"
		}
	}

	status := http.StatusOK
	for _, v := range checks {
		if v != "ok" {
			status = http.StatusServiceUnavailable
			break
		}
	}

	writeJSON(w, status, map[string]interface{}{"status": statusStr(status), "checks": checks})
}

func statusStr(code int) string {
	if code == http.StatusOK {
		return "ok"
	}
	return "unhealthy"
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

package handlers

import (
	"net/http"
	"time"

	"github.com/Mateuus/Applio/internal/engine"
)

const (
	apiName        = "Applio TTS Inference API"
	apiVersion     = "1.0.0"
	apiDescription = "API REST para geração de áudio usando Text-to-Speech com Voice Conversion (RVC)"
)

// InfoHandler serves the unauthenticated liveness and info endpoints.
type InfoHandler struct {
	eng engine.Engine
}

func NewInfoHandler(eng engine.Engine) *InfoHandler {
	return &InfoHandler{eng: eng}
}

func (h *InfoHandler) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"name":        apiName,
		"version":     apiVersion,
		"description": apiDescription,
	})
}

func (h *InfoHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// GPUStatus reports which device the pipeline runs on. A failed probe
// degrades to an error payload, never an HTTP error.
func (h *InfoHandler) GPUStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.eng.DeviceStatus(r.Context())
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"cuda_available": false,
			"device":         "unknown",
			"error":          err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, status)
}

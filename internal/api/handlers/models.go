package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Mateuus/Applio/internal/rvc"
)

// ModelInfo is the transport shape of one voice-conversion model.
type ModelInfo struct {
	Path      string  `json:"path"`
	Name      string  `json:"name"`
	IndexPath *string `json:"index_path"`
}

type modelsListResponse struct {
	Success bool        `json:"success"`
	Models  []ModelInfo `json:"models"`
	Total   int         `json:"total"`
}

type modelIndexResponse struct {
	Success   bool    `json:"success"`
	ModelPath string  `json:"model_path"`
	IndexPath *string `json:"index_path"`
	Message   string  `json:"message"`
}

type speakerIDsResponse struct {
	Success    bool   `json:"success"`
	ModelPath  string `json:"model_path"`
	SpeakerIDs []int  `json:"speaker_ids"`
	Total      int    `json:"total"`
}

type ModelsHandler struct {
	resolver *rvc.Resolver
}

func NewModelsHandler(resolver *rvc.Resolver) *ModelsHandler {
	return &ModelsHandler{resolver: resolver}
}

// List enumerates available models with best-effort index matches.
func (h *ModelsHandler) List(w http.ResponseWriter, _ *http.Request) {
	models, err := h.resolver.ListModels()
	if err != nil {
		writeError(w, fmt.Errorf("Erro ao listar modelos: %w", err))
		return
	}

	out := make([]ModelInfo, 0, len(models))
	for _, m := range models {
		out = append(out, ModelInfo{Path: m.Path, Name: m.Name, IndexPath: optional(m.IndexPath)})
	}
	writeJSON(w, http.StatusOK, modelsListResponse{Success: true, Models: out, Total: len(out)})
}

// Lookup dispatches the per-model sub-resources. Model paths contain
// slashes (logs/Lula/Lula.pth), so the route is a wildcard whose last
// segment names the operation: /models/{path...}/index or
// /models/{path...}/speakers.
func (h *ModelsHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	wild := chi.URLParam(r, "*")

	switch {
	case strings.HasSuffix(wild, "/index"):
		h.getIndex(w, r, strings.TrimSuffix(wild, "/index"))
	case strings.HasSuffix(wild, "/speakers"):
		h.getSpeakers(w, r, strings.TrimSuffix(wild, "/speakers"))
	default:
		writeDetail(w, http.StatusNotFound, "Not Found")
	}
}

func (h *ModelsHandler) getIndex(w http.ResponseWriter, _ *http.Request, modelPath string) {
	indexPath, err := h.resolver.ResolveIndex(modelPath)
	if err != nil {
		writeError(w, err)
		return
	}

	message := "Nenhum index file encontrado para este modelo"
	if indexPath != "" {
		message = fmt.Sprintf("Index file encontrado: %s", indexPath)
	}

	writeJSON(w, http.StatusOK, modelIndexResponse{
		Success:   true,
		ModelPath: modelPath,
		IndexPath: optional(indexPath),
		Message:   message,
	})
}

func (h *ModelsHandler) getSpeakers(w http.ResponseWriter, r *http.Request, modelPath string) {
	ids, err := h.resolver.SpeakerIDs(r.Context(), modelPath)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, speakerIDsResponse{
		Success:    true,
		ModelPath:  modelPath,
		SpeakerIDs: ids,
		Total:      len(ids),
	})
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

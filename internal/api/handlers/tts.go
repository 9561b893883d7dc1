package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/Mateuus/Applio/internal/synth"
)

// inferenceResponse mirrors the original response envelope: output_file /
// output_path are set for file output, base64 / format for inline output,
// never both.
type inferenceResponse struct {
	Success         bool     `json:"success"`
	Message         string   `json:"message"`
	Text            string   `json:"text"`
	TTSVoice        string   `json:"tts_voice"`
	ModelPath       string   `json:"model_path"`
	IndexPath       *string  `json:"index_path"`
	OutputFile      *string  `json:"output_file"`
	OutputPath      *string  `json:"output_path"`
	Base64          *string  `json:"base64"`
	Format          *string  `json:"format"`
	SizeKB          *float64 `json:"size_kb"`
	DurationSeconds *float64 `json:"duration_seconds"`
}

type TTSHandler struct {
	adapter   *synth.Adapter
	outputDir string
}

func NewTTSHandler(adapter *synth.Adapter, outputDir string) *TTSHandler {
	return &TTSHandler{adapter: adapter, outputDir: outputDir}
}

// Generate is the simplified endpoint: defaults for every advanced knob and
// always an inline base64 result in the requested format.
func (h *TTSHandler) Generate(w http.ResponseWriter, r *http.Request) {
	req := synth.DefaultGenerateRequest()
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	full, err := h.adapter.Normalize(req)
	if err != nil {
		writeError(w, err)
		return
	}

	h.run(w, r, full)
}

// Inference is the full endpoint: every tuning parameter is accepted and
// the caller chooses between a file reference and an inline payload.
func (h *TTSHandler) Inference(w http.ResponseWriter, r *http.Request) {
	req := synth.DefaultInferenceRequest()
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	h.run(w, r, req)
}

func (h *TTSHandler) run(w http.ResponseWriter, r *http.Request, req synth.InferenceRequest) {
	res, err := h.adapter.Synthesize(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := inferenceResponse{
		Success:   true,
		Message:   res.Message,
		Text:      res.Text,
		TTSVoice:  res.TTSVoice,
		ModelPath: res.ModelPath,
		IndexPath: optional(res.IndexPath),
		SizeKB:    &res.SizeKB,
	}
	if res.HasDuration {
		resp.DurationSeconds = &res.DurationSeconds
	}

	if path, ok := res.Output.Path(); ok {
		name := filepath.Base(path)
		resp.OutputFile = &name
		resp.OutputPath = &path
	}
	if b64, ok := res.Output.Base64(); ok {
		resp.Base64 = &b64
		resp.Format = &res.Format
	}

	writeJSON(w, http.StatusOK, resp)
}

// Download streams a previously generated file from the output directory.
func (h *TTSHandler) Download(w http.ResponseWriter, r *http.Request) {
	filename := filepath.Base(chi.URLParam(r, "filename"))
	path := filepath.Join(h.outputDir, filename)

	if _, err := os.Stat(path); err != nil {
		writeDetail(w, http.StatusNotFound, fmt.Sprintf("Arquivo não encontrado: %s", filename))
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	http.ServeFile(w, r, path)
}

package handlers

import (
	"net/http"

	"github.com/Mateuus/Applio/internal/voices"
)

// VoiceInfo is the transport shape of one catalog entry.
type VoiceInfo struct {
	ShortName string `json:"short_name"`
	Name      string `json:"name"`
	Locale    string `json:"locale"`
	Gender    string `json:"gender"`
	Language  string `json:"language"`
}

type voicesListResponse struct {
	Success        bool        `json:"success"`
	Voices         []VoiceInfo `json:"voices"`
	Total          int         `json:"total"`
	LanguageFilter *string     `json:"language_filter"`
}

type VoicesHandler struct {
	catalog *voices.Catalog
}

func NewVoicesHandler(catalog *voices.Catalog) *VoicesHandler {
	return &VoicesHandler{catalog: catalog}
}

// List returns catalog entries, optionally filtered by the case-insensitive
// `language` query parameter.
func (h *VoicesHandler) List(w http.ResponseWriter, r *http.Request) {
	language := r.URL.Query().Get("language")

	matched, err := h.catalog.Filter(language)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]VoiceInfo, 0, len(matched))
	for _, v := range matched {
		out = append(out, VoiceInfo{
			ShortName: v.ShortName,
			Name:      v.Name,
			Locale:    v.Locale,
			Gender:    v.Gender,
			Language:  v.Language(),
		})
	}

	resp := voicesListResponse{Success: true, Voices: out, Total: len(out)}
	if language != "" {
		resp.LanguageFilter = &language
	}
	writeJSON(w, http.StatusOK, resp)
}

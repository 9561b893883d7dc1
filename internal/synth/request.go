package synth

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/Mateuus/Applio/internal/apierr"
)

// MaxTextLength is the request text ceiling, in characters.
const MaxTextLength = 5000

// ExportFormats is the fixed set of accepted output audio formats.
var ExportFormats = []string{"WAV", "MP3", "FLAC", "OGG", "M4A"}

// GenerateRequest is the reduced request shape of POST /tts/generate.
// Everything the full shape adds is filled with fixed defaults; the output
// is always returned inline as base64.
type GenerateRequest struct {
	Text         string `json:"text"`
	TTSVoice     string `json:"tts_voice"`
	ModelPath    string `json:"model_path"`
	IndexPath    string `json:"index_path,omitempty"`
	TTSRate      int    `json:"tts_rate"`
	OutputFormat string `json:"output_format"`
}

// DefaultGenerateRequest returns the simple shape with its documented
// defaults; JSON decoding on top of it keeps omitted fields at the default.
func DefaultGenerateRequest() GenerateRequest {
	return GenerateRequest{OutputFormat: "OGG"}
}

// InferenceRequest is the full request shape of POST /tts/inference, with
// every tuning knob the pipeline accepts.
type InferenceRequest struct {
	Text      string `json:"text"`
	TTSVoice  string `json:"tts_voice"`
	ModelPath string `json:"model_path"`
	IndexPath string `json:"index_path,omitempty"`
	TTSRate   int    `json:"tts_rate"`

	Pitch          int     `json:"pitch"`
	IndexRate      float64 `json:"index_rate"`
	VolumeEnvelope float64 `json:"volume_envelope"`
	Protect        float64 `json:"protect"`
	F0Method       string  `json:"f0_method"`

	SplitAudio             bool    `json:"split_audio"`
	F0Autotune             bool    `json:"f0_autotune"`
	F0AutotuneStrength     float64 `json:"f0_autotune_strength"`
	ProposedPitch          bool    `json:"proposed_pitch"`
	ProposedPitchThreshold float64 `json:"proposed_pitch_threshold"`
	CleanAudio             bool    `json:"clean_audio"`
	CleanStrength          float64 `json:"clean_strength"`

	ExportFormat        string `json:"export_format"`
	EmbedderModel       string `json:"embedder_model"`
	EmbedderModelCustom string `json:"embedder_model_custom,omitempty"`
	SpeakerID           int    `json:"sid"`

	ReturnBase64   bool   `json:"return_base64"`
	OutputFilename string `json:"output_filename,omitempty"`
}

// DefaultInferenceRequest returns the full shape with its documented
// defaults. Handlers decode request bodies on top of this value so omitted
// fields keep their defaults.
func DefaultInferenceRequest() InferenceRequest {
	return InferenceRequest{
		IndexRate:              0.75,
		VolumeEnvelope:         1.0,
		Protect:                0.5,
		F0Method:               "rmvpe",
		F0AutotuneStrength:     1.0,
		ProposedPitchThreshold: 155.0,
		CleanStrength:          0.5,
		ExportFormat:           "WAV",
		EmbedderModel:          "contentvec",
	}
}

// Validate checks text bounds, numeric ranges and the embedder
// configuration. All failures are ValidationErrors (HTTP 400).
func (r *InferenceRequest) Validate() error {
	n := utf8.RuneCountInString(r.Text)
	if n == 0 {
		return apierr.Validationf("Texto inválido ou vazio")
	}
	if n > MaxTextLength {
		return apierr.Validationf("Texto excede o limite de %d caracteres", MaxTextLength)
	}

	ranges := []struct {
		name     string
		value    float64
		min, max float64
	}{
		{"tts_rate", float64(r.TTSRate), -100, 100},
		{"pitch", float64(r.Pitch), -24, 24},
		{"index_rate", r.IndexRate, 0, 1},
		{"volume_envelope", r.VolumeEnvelope, 0, 1},
		{"protect", r.Protect, 0, 0.5},
		{"f0_autotune_strength", r.F0AutotuneStrength, 0, 1},
		{"proposed_pitch_threshold", r.ProposedPitchThreshold, 50, 1200},
		{"clean_strength", r.CleanStrength, 0, 1},
	}
	for _, rg := range ranges {
		if rg.value < rg.min || rg.value > rg.max {
			return apierr.Validationf("%s fora do intervalo permitido (%g a %g)", rg.name, rg.min, rg.max)
		}
	}

	if r.SpeakerID < 0 {
		return apierr.Validationf("sid deve ser maior ou igual a 0")
	}
	if !ValidExportFormat(r.ExportFormat) {
		return invalidFormatError(r.ExportFormat)
	}
	if r.EmbedderModel == "custom" && strings.TrimSpace(r.EmbedderModelCustom) == "" {
		return apierr.Validationf("embedder_model_custom é obrigatório quando embedder_model='custom'")
	}
	return nil
}

// ValidExportFormat reports membership in ExportFormats, case-insensitively.
func ValidExportFormat(format string) bool {
	upper := strings.ToUpper(format)
	for _, f := range ExportFormats {
		if upper == f {
			return true
		}
	}
	return false
}

func invalidFormatError(format string) error {
	return apierr.Validationf("Formato inválido: %s. Formatos válidos: %s",
		strings.ToUpper(format), strings.Join(ExportFormats, ", "))
}

// hasAudioExtension reports whether a caller-supplied filename already ends
// in one of the recognized audio extensions.
func hasAudioExtension(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".wav", ".mp3", ".flac", ".ogg", ".m4a":
		return true
	default:
		return false
	}
}

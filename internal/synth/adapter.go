// Package synth adapts validated HTTP synthesis requests into calls against
// the external TTS + voice-conversion pipeline and shapes the outcome into
// a transport-ready result.
package synth

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/Mateuus/Applio/internal/apierr"
	"github.com/Mateuus/Applio/internal/audioinfo"
	"github.com/Mateuus/Applio/internal/engine"
	"github.com/Mateuus/Applio/internal/rvc"
	"github.com/Mateuus/Applio/internal/text"
	"github.com/Mateuus/Applio/internal/voices"
)

const defaultMessage = "Áudio gerado com sucesso"

// Result is the outcome of one synthesis run. Output is a tagged union:
// exactly one of file reference or inline payload, matching the request's
// return_base64 flag.
type Result struct {
	Message   string
	Text      string
	TTSVoice  string
	ModelPath string
	IndexPath string

	// Format is the audio format tag, set for inline output where the
	// caller needs it to interpret the payload.
	Format string
	SizeKB float64

	// DurationSeconds is best-effort; HasDuration reports whether it could
	// be computed.
	DurationSeconds float64
	HasDuration     bool

	Output Output
}

// Adapter orchestrates one synthesis request end to end: validation, index
// resolution, temp-file naming, the pipeline call and output shaping. It
// holds no per-request state and is safe for concurrent use; it imposes no
// concurrency limit of its own, so parallel requests each invoke the
// pipeline independently.
type Adapter struct {
	eng       engine.Engine
	catalog   *voices.Catalog
	resolver  *rvc.Resolver
	outputDir string
}

// NewAdapter wires the adapter to its collaborators.
func NewAdapter(eng engine.Engine, catalog *voices.Catalog, resolver *rvc.Resolver, outputDir string) *Adapter {
	return &Adapter{eng: eng, catalog: catalog, resolver: resolver, outputDir: outputDir}
}

// Normalize projects the simplified request shape onto the full one:
// sanitize the text, validate the output format, fill the documented
// defaults and force inline output.
func (a *Adapter) Normalize(req GenerateRequest) (InferenceRequest, error) {
	cleaned := text.Clean(req.Text)
	if cleaned == "" {
		return InferenceRequest{}, apierr.Validationf("Texto inválido ou vazio após limpeza")
	}

	if !ValidExportFormat(req.OutputFormat) {
		return InferenceRequest{}, invalidFormatError(req.OutputFormat)
	}

	full := DefaultInferenceRequest()
	full.Text = cleaned
	full.TTSVoice = req.TTSVoice
	full.ModelPath = req.ModelPath
	full.IndexPath = req.IndexPath
	full.TTSRate = req.TTSRate
	full.ExportFormat = strings.ToUpper(req.OutputFormat)
	full.ReturnBase64 = true
	return full, nil
}

// Synthesize runs the full request against the pipeline. Validation happens
// strictly before any file is touched; cleanup of intermediate artifacts is
// best-effort and never fails the request.
func (a *Adapter) Synthesize(ctx context.Context, req InferenceRequest) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := os.Stat(req.ModelPath); err != nil {
		return nil, apierr.NotFoundf("Modelo não encontrado: %s", req.ModelPath)
	}

	if req.IndexPath == "" {
		// Absence after resolution is fine: conversion runs without an index.
		req.IndexPath = a.resolver.MatchIndex(req.ModelPath)
	} else if _, err := os.Stat(req.IndexPath); err != nil {
		return nil, apierr.NotFoundf("Arquivo index não encontrado: %s", req.IndexPath)
	}

	known, err := a.catalog.Contains(req.TTSVoice)
	if err != nil {
		return nil, fmt.Errorf("load voice catalog: %w", err)
	}
	if !known {
		return nil, apierr.NotFoundf("Voz TTS não encontrada: %s. Use /voices para listar vozes disponíveis.", req.TTSVoice)
	}

	ttsPath, rvcPath := a.outputPaths(req)

	slog.Info("running tts inference",
		"voice", req.TTSVoice,
		"model", req.ModelPath,
		"index", req.IndexPath,
		"format", req.ExportFormat)

	message, outputFile, err := a.eng.Synthesize(ctx, engine.Params{
		Text:                   req.Text,
		TTSVoice:               req.TTSVoice,
		TTSRate:                req.TTSRate,
		Pitch:                  req.Pitch,
		IndexRate:              req.IndexRate,
		VolumeEnvelope:         req.VolumeEnvelope,
		Protect:                req.Protect,
		F0Method:               req.F0Method,
		SplitAudio:             req.SplitAudio,
		F0Autotune:             req.F0Autotune,
		F0AutotuneStrength:     req.F0AutotuneStrength,
		ProposedPitch:          req.ProposedPitch,
		ProposedPitchThreshold: req.ProposedPitchThreshold,
		CleanAudio:             req.CleanAudio,
		CleanStrength:          req.CleanStrength,
		ExportFormat:           req.ExportFormat,
		EmbedderModel:          req.EmbedderModel,
		EmbedderModelCustom:    req.EmbedderModelCustom,
		SpeakerID:              req.SpeakerID,
		ModelPath:              req.ModelPath,
		IndexPath:              req.IndexPath,
		OutputTTSPath:          ttsPath,
		OutputRVCPath:          rvcPath,
	})
	// The intermediate TTS file is never part of the result; drop it no
	// matter how the run ended.
	defer removeBestEffort(ttsPath)

	if err != nil {
		return nil, apierr.Synthesisf(err, "Erro ao gerar TTS")
	}

	fi, err := os.Stat(outputFile)
	if err != nil {
		return nil, &apierr.SynthesisError{Detail: "Erro ao gerar áudio: arquivo não foi criado"}
	}

	if message == "" {
		message = defaultMessage
	}

	res := &Result{
		Message:   message,
		Text:      req.Text,
		TTSVoice:  req.TTSVoice,
		ModelPath: req.ModelPath,
		IndexPath: req.IndexPath,
		SizeKB:    float64(fi.Size()) / 1024,
	}
	res.DurationSeconds, res.HasDuration = audioinfo.Duration(outputFile)

	if req.ReturnBase64 {
		audio, err := os.ReadFile(outputFile)
		if err != nil {
			return nil, apierr.Synthesisf(err, "Erro ao ler áudio gerado")
		}
		res.Output = InlineOutput(base64.StdEncoding.EncodeToString(audio))
		res.Format = strings.ToUpper(req.ExportFormat)
		removeBestEffort(outputFile)
	} else {
		res.Output = FileOutput(outputFile)
	}

	slog.Info("tts inference done",
		"output", filepath.Base(outputFile),
		"size", humanize.Bytes(uint64(fi.Size())),
		"inline", req.ReturnBase64)

	return res, nil
}

// outputPaths derives the request-scoped intermediate and final paths. The
// stamp is timestamp-based like the original naming scheme, with a short
// random suffix so two requests inside the same clock second cannot
// collide.
func (a *Adapter) outputPaths(req InferenceRequest) (ttsPath, rvcPath string) {
	stamp := fmt.Sprintf("%s_%s", time.Now().Format("20060102_150405"), uuid.NewString()[:8])

	ttsPath = filepath.Join(a.outputDir, fmt.Sprintf("tts_output_%s.wav", stamp))

	name := req.OutputFilename
	if name == "" {
		name = fmt.Sprintf("tts_rvc_output_%s.%s", stamp, strings.ToLower(req.ExportFormat))
	} else if !hasAudioExtension(name) {
		name += "." + strings.ToLower(req.ExportFormat)
	}
	rvcPath = filepath.Join(a.outputDir, filepath.Base(name))
	return ttsPath, rvcPath
}

// removeBestEffort deletes a temp artifact, logging and discarding any
// failure: output generation matters more than tidy cleanup, and a stale
// file is an acceptable leak.
func removeBestEffort(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		slog.Warn("temp file cleanup failed", "path", path, "error", err)
	}
}

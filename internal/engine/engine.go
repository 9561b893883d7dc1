// Package engine wraps the external TTS + voice-conversion pipeline. The
// pipeline does all the heavy lifting; this package only invokes it with a
// fully resolved parameter set and reports what came back.
package engine

import "context"

// Params is the full parameter set for one synthesis run: TTS inputs, RVC
// tuning knobs and the two output paths the pipeline writes (intermediate
// TTS audio and final converted audio).
type Params struct {
	Text     string
	TTSVoice string
	TTSRate  int

	Pitch          int
	IndexRate      float64
	VolumeEnvelope float64
	Protect        float64
	F0Method       string

	SplitAudio             bool
	F0Autotune             bool
	F0AutotuneStrength     float64
	ProposedPitch          bool
	ProposedPitchThreshold float64
	CleanAudio             bool
	CleanStrength          float64

	ExportFormat        string
	EmbedderModel       string
	EmbedderModelCustom string
	SpeakerID           int

	ModelPath string
	IndexPath string

	OutputTTSPath string
	OutputRVCPath string
}

// GPU describes one accelerator visible to the pipeline.
type GPU struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	MemoryGB      float64 `json:"memory_gb"`
	CurrentDevice bool    `json:"current_device"`
}

// DeviceStatus reports which compute device the pipeline runs on.
type DeviceStatus struct {
	CUDAAvailable bool   `json:"cuda_available"`
	Device        string `json:"device"`
	GPUName       string `json:"gpu_name,omitempty"`
	GPUCount      int    `json:"gpu_count"`
	GPUs          []GPU  `json:"gpus"`
	Message       string `json:"message"`
}

// Engine is the contract with the external synthesis pipeline. Synthesize is
// a long-running, blocking call with no cancellation beyond the context; it
// runs to completion or fails. The returned message is the pipeline's own
// human-readable status, outputPath the final audio it claims to have
// written (callers verify).
type Engine interface {
	Synthesize(ctx context.Context, p Params) (message string, outputPath string, err error)
	SpeakerCount(ctx context.Context, modelPath string) (int, error)
	DeviceStatus(ctx context.Context) (*DeviceStatus, error)
}

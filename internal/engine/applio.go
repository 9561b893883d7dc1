package engine

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Config holds the subprocess configuration for the Applio pipeline.
type Config struct {
	PythonBin string // default: "python"
	Script    string // path to the Applio core script, e.g. "core.py"
	WorkDir   string // Applio root; relative model paths resolve against it
}

// ApplioEngine invokes the Applio CLI as a subprocess. One invocation per
// request; concurrent requests each spawn their own process.
type ApplioEngine struct {
	cfg Config
}

// NewApplioEngine creates an engine backed by the Applio core script.
func NewApplioEngine(cfg Config) *ApplioEngine {
	if cfg.PythonBin == "" {
		cfg.PythonBin = "python"
	}
	if cfg.Script == "" {
		cfg.Script = "core.py"
	}
	return &ApplioEngine{cfg: cfg}
}

// Synthesize runs `python core.py tts ...` with the full parameter set and
// returns the pipeline's status message plus the final output path.
func (e *ApplioEngine) Synthesize(ctx context.Context, p Params) (string, string, error) {
	args := []string{
		e.cfg.Script, "tts",
		"--tts_file", "",
		"--tts_text", p.Text,
		"--tts_voice", p.TTSVoice,
		"--tts_rate", strconv.Itoa(p.TTSRate),
		"--pitch", strconv.Itoa(p.Pitch),
		"--index_rate", formatFloat(p.IndexRate),
		"--volume_envelope", formatFloat(p.VolumeEnvelope),
		"--protect", formatFloat(p.Protect),
		"--f0_method", p.F0Method,
		"--output_tts_path", p.OutputTTSPath,
		"--output_rvc_path", p.OutputRVCPath,
		"--pth_path", p.ModelPath,
		"--index_path", p.IndexPath,
		"--split_audio", formatBool(p.SplitAudio),
		"--f0_autotune", formatBool(p.F0Autotune),
		"--f0_autotune_strength", formatFloat(p.F0AutotuneStrength),
		"--proposed_pitch", formatBool(p.ProposedPitch),
		"--proposed_pitch_threshold", formatFloat(p.ProposedPitchThreshold),
		"--clean_audio", formatBool(p.CleanAudio),
		"--clean_strength", formatFloat(p.CleanStrength),
		"--export_format", p.ExportFormat,
		"--embedder_model", p.EmbedderModel,
		"--sid", strconv.Itoa(p.SpeakerID),
	}
	if p.EmbedderModelCustom != "" {
		args = append(args, "--embedder_model_custom", p.EmbedderModelCustom)
	}

	out, err := e.run(ctx, args)
	if err != nil {
		return "", "", err
	}

	return lastLine(out), p.OutputRVCPath, nil
}

// SpeakerCount asks the pipeline how many speaker identities a model
// exposes. The helper prints the count as the last line of stdout.
func (e *ApplioEngine) SpeakerCount(ctx context.Context, modelPath string) (int, error) {
	out, err := e.run(ctx, []string{e.cfg.Script, "speakers", "--pth_path", modelPath})
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(lastLine(out))
	if err != nil {
		return 0, fmt.Errorf("unexpected speaker count output %q: %w", lastLine(out), err)
	}
	return n, nil
}

func (e *ApplioEngine) run(ctx context.Context, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, e.cfg.PythonBin, args...)
	cmd.Dir = e.cfg.WorkDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("applio pipeline failed: %w (stderr: %s)", err, tail(stderr.String()))
	}
	return stdout.String(), nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

// tail keeps error messages readable when the pipeline dumps a long
// traceback on stderr.
func tail(s string) string {
	const max = 2000
	s = strings.TrimSpace(s)
	if len(s) > max {
		return "..." + s[len(s)-max:]
	}
	return s
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

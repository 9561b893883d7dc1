package engine

import (
	"context"
	"errors"
	"os"
)

// Mock is an in-memory Engine for tests. It records every Synthesize call
// and, unless told otherwise, writes both output files the way the real
// pipeline does.
type Mock struct {
	Message  string
	Audio    []byte
	Err      error
	Speakers int

	// SkipOutput makes Synthesize report success without writing the final
	// file, to exercise the missing-output failure path.
	SkipOutput bool
	// SkipIntermediate suppresses the intermediate TTS file.
	SkipIntermediate bool

	Calls []Params
}

// NewMock returns a mock that succeeds and writes a small fake payload.
func NewMock() *Mock {
	return &Mock{
		Message:  "TTS completed successfully",
		Audio:    []byte("RIFF-fake-audio"),
		Speakers: 1,
	}
}

func (m *Mock) Synthesize(_ context.Context, p Params) (string, string, error) {
	m.Calls = append(m.Calls, p)

	if m.Err != nil {
		return "", "", m.Err
	}

	if !m.SkipIntermediate {
		if err := os.WriteFile(p.OutputTTSPath, m.Audio, 0o644); err != nil {
			return "", "", err
		}
	}
	if !m.SkipOutput {
		if err := os.WriteFile(p.OutputRVCPath, m.Audio, 0o644); err != nil {
			return "", "", err
		}
	}

	return m.Message, p.OutputRVCPath, nil
}

func (m *Mock) SpeakerCount(context.Context, string) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	if m.Speakers < 0 {
		return 0, errors.New("mock: speaker query failed")
	}
	return m.Speakers, nil
}

func (m *Mock) DeviceStatus(context.Context) (*DeviceStatus, error) {
	return &DeviceStatus{
		CUDAAvailable: false,
		Device:        "cpu",
		GPUs:          []GPU{},
		Message:       "Usando cpu (CPU)",
	}, nil
}

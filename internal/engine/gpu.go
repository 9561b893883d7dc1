package engine

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

const mibPerGB = 1024.0

// DeviceStatus probes the NVIDIA driver for visible GPUs. When the probe
// fails the pipeline is assumed to run on CPU; the failure is reported in
// the payload, never as an error to the caller.
func (e *ApplioEngine) DeviceStatus(ctx context.Context) (*DeviceStatus, error) {
	cmd := exec.CommandContext(ctx, "nvidia-smi",
		"--query-gpu=index,name,memory.total",
		"--format=csv,noheader,nounits")

	out, err := cmd.Output()
	if err != nil {
		return &DeviceStatus{
			CUDAAvailable: false,
			Device:        "cpu",
			GPUs:          []GPU{},
			Message:       fmt.Sprintf("Usando cpu (CPU): %v", err),
		}, nil
	}

	gpus := parseGPUList(string(out))
	if len(gpus) == 0 {
		return &DeviceStatus{
			CUDAAvailable: false,
			Device:        "cpu",
			GPUs:          []GPU{},
			Message:       "Usando cpu (CPU)",
		}, nil
	}

	// The pipeline pins itself to the first visible device.
	gpus[0].CurrentDevice = true

	return &DeviceStatus{
		CUDAAvailable: true,
		Device:        "cuda:0",
		GPUName:       gpus[0].Name,
		GPUCount:      len(gpus),
		GPUs:          gpus,
		Message:       fmt.Sprintf("Usando cuda:0 (%s)", gpus[0].Name),
	}, nil
}

func parseGPUList(out string) []GPU {
	var gpus []GPU
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		fields := strings.SplitN(line, ",", 3)
		if len(fields) != 3 {
			continue
		}

		id, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			continue
		}
		memMiB, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
		if err != nil {
			continue
		}

		gpus = append(gpus, GPU{
			ID:       id,
			Name:     strings.TrimSpace(fields[1]),
			MemoryGB: roundTo(memMiB/mibPerGB, 2),
		})
	}
	return gpus
}

func roundTo(f float64, places int) float64 {
	shift := 1.0
	for i := 0; i < places; i++ {
		shift *= 10
	}
	return float64(int64(f*shift+0.5)) / shift
}

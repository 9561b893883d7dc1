// Package audioinfo probes generated audio files for metadata.
package audioinfo

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
)

// Duration returns the length in seconds of a WAV file. It is strictly
// best-effort: compressed formats and unreadable files report ok=false and
// the caller carries on without a duration.
func Duration(path string) (seconds float64, ok bool) {
	if !strings.EqualFold(filepath.Ext(path), ".wav") {
		return 0, false
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, false
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	d, err := dec.Duration()
	if err != nil || d <= 0 {
		return 0, false
	}
	return d.Seconds(), true
}

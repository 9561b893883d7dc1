package audioinfo_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/require"

	"github.com/Mateuus/Applio/internal/audioinfo"
)

// writeWAV encodes `seconds` of silence as 16-bit mono PCM.
func writeWAV(t *testing.T, path string, sampleRate int, seconds float64) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           make([]int, int(float64(sampleRate)*seconds)),
		SourceBitDepth: 16,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())
}

func TestDuration(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.wav")
	writeWAV(t, path, 8000, 2.0)

	seconds, ok := audioinfo.Duration(path)
	require.True(t, ok)
	require.InDelta(t, 2.0, seconds, 0.05)
}

func TestDurationBestEffort(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("non-wav extension", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(dir, "out.ogg")
		require.NoError(t, os.WriteFile(path, []byte("OggS"), 0o644))
		_, ok := audioinfo.Duration(path)
		require.False(t, ok)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, ok := audioinfo.Duration(filepath.Join(dir, "nope.wav"))
		require.False(t, ok)
	})

	t.Run("corrupt wav", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(dir, "broken.wav")
		require.NoError(t, os.WriteFile(path, []byte("not riff data"), 0o644))
		_, ok := audioinfo.Duration(path)
		require.False(t, ok)
	})
}

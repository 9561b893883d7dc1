package voices_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Mateuus/Applio/internal/voices"
)

const sampleVoices = `[
	{"Name": "Microsoft Server Speech Text to Speech Voice (en-US, GuyNeural)", "ShortName": "en-US-GuyNeural", "Gender": "Male", "Locale": "en-US"},
	{"Name": "Microsoft Server Speech Text to Speech Voice (en-GB, SoniaNeural)", "ShortName": "en-GB-SoniaNeural", "Gender": "Female", "Locale": "en-GB"},
	{"Name": "Microsoft Server Speech Text to Speech Voice (pt-BR, FranciscaNeural)", "ShortName": "pt-BR-FranciscaNeural", "Gender": "Female", "Locale": "pt-BR"}
]`

func writeVoicesFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tts_voices.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCatalogAll(t *testing.T) {
	t.Parallel()

	c := voices.NewCatalog(writeVoicesFile(t, sampleVoices))
	all, err := c.All()
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "en-US-GuyNeural", all[0].ShortName)
	require.Equal(t, "Male", all[0].Gender)
}

func TestCatalogLoadsOnce(t *testing.T) {
	t.Parallel()

	path := writeVoicesFile(t, sampleVoices)
	c := voices.NewCatalog(path)

	_, err := c.All()
	require.NoError(t, err)

	// Removing the backing file must not matter: the catalog is cached for
	// the process lifetime after the first read.
	require.NoError(t, os.Remove(path))

	all, err := c.All()
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestCatalogFilter(t *testing.T) {
	t.Parallel()

	c := voices.NewCatalog(writeVoicesFile(t, sampleVoices))

	en, err := c.Filter("en-")
	require.NoError(t, err)
	require.Len(t, en, 2)

	// Case-insensitive substring match.
	pt, err := c.Filter("PT-br")
	require.NoError(t, err)
	require.Len(t, pt, 1)
	require.Equal(t, "pt-BR-FranciscaNeural", pt[0].ShortName)

	all, err := c.Filter("")
	require.NoError(t, err)
	require.Len(t, all, 3)

	none, err := c.Filter("zz-XX")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestCatalogContains(t *testing.T) {
	t.Parallel()

	c := voices.NewCatalog(writeVoicesFile(t, sampleVoices))

	ok, err := c.Contains("en-GB-SoniaNeural")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = c.Contains("not-a-real-voice")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCatalogErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		c := voices.NewCatalog(filepath.Join(t.TempDir(), "nope.json"))
		_, err := c.All()
		require.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()
		c := voices.NewCatalog(writeVoicesFile(t, "{not json"))
		_, err := c.All()
		require.Error(t, err)
	})

	t.Run("empty catalog is valid", func(t *testing.T) {
		t.Parallel()
		c := voices.NewCatalog(writeVoicesFile(t, "[]"))
		all, err := c.All()
		require.NoError(t, err)
		require.Empty(t, all)
	})
}

func TestVoiceLanguage(t *testing.T) {
	t.Parallel()

	require.Equal(t, "pt", voices.Voice{Locale: "pt-BR"}.Language())
	require.Equal(t, "en", voices.Voice{Locale: "en"}.Language())
}

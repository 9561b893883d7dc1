package rvc_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Mateuus/Applio/internal/apierr"
	"github.com/Mateuus/Applio/internal/engine"
	"github.com/Mateuus/Applio/internal/rvc"
)

func touch(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	return path
}

func TestListModels(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	lula := touch(t, filepath.Join(root, "Lula", "Lula.pth"))
	touch(t, filepath.Join(root, "Lula", "added_IVF256_Flat_nprobe_1_Lula_v2.index"))
	touch(t, filepath.Join(root, "Silvio", "Silvio.pth"))
	// Training checkpoints must be skipped.
	touch(t, filepath.Join(root, "Lula", "G_2333.pth"))
	touch(t, filepath.Join(root, "Lula", "D_2333.pth"))
	touch(t, filepath.Join(root, "Lula", "notes.txt"))

	r := rvc.NewResolver(root, engine.NewMock())
	models, err := r.ListModels()
	require.NoError(t, err)
	require.Len(t, models, 2)

	require.Equal(t, lula, models[0].Path)
	require.Equal(t, "Lula.pth", models[0].Name)
	require.Contains(t, models[0].IndexPath, "added_IVF256")

	require.Equal(t, "Silvio.pth", models[1].Name)
	require.Empty(t, models[1].IndexPath)
}

func TestMatchIndexPreference(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	model := touch(t, filepath.Join(root, "Voice", "Voice.pth"))
	trained := touch(t, filepath.Join(root, "Voice", "trained_IVF256.index"))

	r := rvc.NewResolver(root, engine.NewMock())

	// Only a trained index: it is still a match.
	require.Equal(t, trained, r.MatchIndex(model))

	// A plain index beats trained_*.
	plain := touch(t, filepath.Join(root, "Voice", "Voice.index"))
	require.Equal(t, plain, r.MatchIndex(model))

	// added_* beats everything.
	added := touch(t, filepath.Join(root, "Voice", "added_IVF256.index"))
	require.Equal(t, added, r.MatchIndex(model))
}

func TestResolveIndex(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	r := rvc.NewResolver(root, engine.NewMock())

	model := touch(t, filepath.Join(root, "Voice", "Voice.pth"))

	// No index at all is a valid outcome, not an error.
	idx, err := r.ResolveIndex(model)
	require.NoError(t, err)
	require.Empty(t, idx)

	added := touch(t, filepath.Join(root, "Voice", "added_x.index"))
	idx, err = r.ResolveIndex(model)
	require.NoError(t, err)
	require.Equal(t, added, idx)

	// Missing model is a NotFoundError carrying the literal path.
	missing := filepath.Join(root, "Nope", "Nope.pth")
	_, err = r.ResolveIndex(missing)
	require.Error(t, err)
	var nf *apierr.NotFoundError
	require.ErrorAs(t, err, &nf)
	require.Contains(t, nf.Detail, missing)
}

func TestSpeakerIDs(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	model := touch(t, filepath.Join(root, "Voice", "Voice.pth"))

	mock := engine.NewMock()
	mock.Speakers = 3
	r := rvc.NewResolver(root, mock)

	ids, err := r.SpeakerIDs(context.Background(), model)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2}, ids)

	_, err = r.SpeakerIDs(context.Background(), filepath.Join(root, "missing.pth"))
	var nf *apierr.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestSpeakerIDsZero(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	model := touch(t, filepath.Join(root, "Voice", "Voice.pth"))

	mock := engine.NewMock()
	mock.Speakers = 0
	r := rvc.NewResolver(root, mock)

	ids, err := r.SpeakerIDs(context.Background(), model)
	require.NoError(t, err)
	require.NotNil(t, ids)
	require.Empty(t, ids)
}

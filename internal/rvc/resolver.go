// Package rvc locates voice-conversion models and their companion index
// files on disk. Index matching is a heuristic: a model may legitimately
// have no index, and conversion still runs without one.
package rvc

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Mateuus/Applio/internal/apierr"
	"github.com/Mateuus/Applio/internal/engine"
)

const (
	modelExt = ".pth"
	indexExt = ".index"
)

// Model describes one voice-conversion model found in the asset store.
type Model struct {
	Path      string
	Name      string
	IndexPath string // "" when no companion index was matched
}

// Resolver enumerates models under a root directory and answers per-model
// questions. Nothing is cached: every call reflects live filesystem state.
type Resolver struct {
	root string
	eng  engine.Engine
}

// NewResolver creates a resolver rooted at the models directory (Applio's
// logs/ layout: one subdirectory per model holding the .pth and .index).
func NewResolver(root string, eng engine.Engine) *Resolver {
	return &Resolver{root: root, eng: eng}
}

// ListModels walks the root for model files, skipping training checkpoints
// (G_*/D_* generator and discriminator snapshots), and matches each one's
// index best-effort.
func (r *Resolver) ListModels() ([]Model, error) {
	var models []Model

	err := filepath.WalkDir(r.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		base := d.Name()
		if filepath.Ext(base) != modelExt {
			return nil
		}
		if strings.HasPrefix(base, "G_") || strings.HasPrefix(base, "D_") {
			return nil
		}

		models = append(models, Model{
			Path:      path,
			Name:      base,
			IndexPath: r.MatchIndex(path),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(models, func(i, j int) bool { return models[i].Path < models[j].Path })
	return models, nil
}

// MatchIndex looks for a companion .index next to the model. Indexes named
// added_* (the faiss index Applio builds for inference) win over trained_*
// raw snapshots; failing both, any index in the directory is taken. Returns
// "" when nothing matches.
func (r *Resolver) MatchIndex(modelPath string) string {
	entries, err := os.ReadDir(filepath.Dir(modelPath))
	if err != nil {
		return ""
	}

	var added, other, trained []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != indexExt {
			continue
		}
		full := filepath.Join(filepath.Dir(modelPath), e.Name())
		switch {
		case strings.HasPrefix(e.Name(), "added_"):
			added = append(added, full)
		case strings.HasPrefix(e.Name(), "trained_"):
			trained = append(trained, full)
		default:
			other = append(other, full)
		}
	}

	for _, group := range [][]string{added, other, trained} {
		if len(group) > 0 {
			sort.Strings(group)
			return group[0]
		}
	}
	return ""
}

// ResolveIndex re-runs the matching heuristic for one model. A missing
// model is an error; a missing index is not.
func (r *Resolver) ResolveIndex(modelPath string) (string, error) {
	if err := r.requireModel(modelPath); err != nil {
		return "", err
	}
	return r.MatchIndex(modelPath), nil
}

// SpeakerIDs reports the speaker identities a multi-speaker model exposes,
// as [0..n-1] in the order the pipeline reports them.
func (r *Resolver) SpeakerIDs(ctx context.Context, modelPath string) ([]int, error) {
	if err := r.requireModel(modelPath); err != nil {
		return nil, err
	}

	n, err := r.eng.SpeakerCount(ctx, modelPath)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, n)
	for i := 0; i < n; i++ {
		ids = append(ids, i)
	}
	return ids, nil
}

func (r *Resolver) requireModel(modelPath string) error {
	if _, err := os.Stat(modelPath); err != nil {
		return apierr.NotFoundf("Modelo não encontrado: %s", modelPath)
	}
	return nil
}

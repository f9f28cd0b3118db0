package emitter

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	lerrors "github.com/conneroisu/leafgen/internal/errors"
	"github.com/conneroisu/leafgen/internal/version"
)

// ManifestFile is the name of the manifest in the output directory.
const ManifestFile = "manifest.yml"

// Manifest describes the views present in an output directory.
type Manifest struct {
	Generator string         `yaml:"generator"`
	Extension string         `yaml:"extension"`
	Views     []ManifestView `yaml:"views"`
}

// ManifestView is one emitted view.
type ManifestView struct {
	Name        string `yaml:"name"`
	Kind        string `yaml:"kind"`
	Content     string `yaml:"content,omitempty"`
	ContentType string `yaml:"contentType,omitempty"`
	File        string `yaml:"file"`
	Hash        string `yaml:"sha256"`
}

// BuildManifest lists every registered view whose file exists, in name
// order.
func (e *Emitter) BuildManifest() *Manifest {
	m := &Manifest{
		Generator: "leafgen " + version.GetVersion(),
		Extension: e.output.Extension,
		Views:     []ManifestView{},
	}
	for _, entry := range e.registry.All() {
		path, err := e.PathFor(entry.Name)
		if err != nil {
			continue
		}
		hash, ok := fileHash(path)
		if !ok {
			continue
		}
		m.Views = append(m.Views, ManifestView{
			Name:        entry.Name,
			Kind:        string(entry.Kind),
			Content:     entry.ContentPath,
			ContentType: entry.ContentType,
			File:        filepath.Base(path),
			Hash:        hash,
		})
	}
	return m
}

func (e *Emitter) writeManifest() error {
	content, err := yaml.Marshal(e.BuildManifest())
	if err != nil {
		return lerrors.NewInternalError(lerrors.ErrCodeInternalError, "encode manifest", err)
	}

	path := filepath.Join(e.output.Dir, ManifestFile)
	if existing, ok := fileHash(path); ok && existing == contentHash(content) {
		return nil
	}
	if err := writeAtomic(path, content); err != nil {
		return lerrors.NewIOError(lerrors.ErrCodeWriteFailed, "write manifest", err).WithFile(path)
	}
	return nil
}

// ReadManifest loads the manifest from dir.
func ReadManifest(dir string) (*Manifest, error) {
	content, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(content, &m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", ManifestFile, err)
	}
	return &m, nil
}

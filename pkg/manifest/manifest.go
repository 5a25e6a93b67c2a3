package manifest

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Entry records one generated file and the document it was rendered from.
type Entry struct {
	Document string `yaml:"document" json:"document"`
	Language string `yaml:"language" json:"language"`
	File     string `yaml:"file" json:"file"`
}

// Manifest tracks the files written by render runs.
type Manifest struct {
	Version string  `yaml:"version,omitempty" json:"version,omitempty"`
	Files   []Entry `yaml:"files" json:"files"`
}

// Load reads a manifest from the provided path. If the file does not exist,
// an empty manifest is returned.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read manifest")
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "unmarshal manifest")
	}

	return &m, nil
}

// Save writes the manifest to the provided path, creating parent directories as needed.
// Entries are written in the order returned by Entries.
func (m *Manifest) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create manifest directory")
	}

	m.Files = m.Entries()
	data, err := yaml.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "marshal manifest")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "write manifest")
	}

	return nil
}

// Add records an entry, replacing an existing entry that shares the same
// document and file.
func (m *Manifest) Add(e Entry) {
	for i := range m.Files {
		if m.Files[i].Document == e.Document && m.Files[i].File == e.File {
			m.Files[i] = e
			return
		}
	}

	m.Files = append(m.Files, e)
}

// Entries returns the recorded entries ordered by file, then document.
func (m *Manifest) Entries() []Entry {
	out := slices.Clone(m.Files)
	slices.SortFunc(out, func(a, b Entry) int {
		if c := strings.Compare(a.File, b.File); c != 0 {
			return c
		}
		return strings.Compare(a.Document, b.Document)
	})
	return out
}

// File returns the entry that generated file, if present.
func (m *Manifest) File(file string) (Entry, bool) {
	for _, e := range m.Files {
		if e.File == file {
			return e, true
		}
	}
	return Entry{}, false
}

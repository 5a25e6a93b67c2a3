package check

import (
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"

	"github.com/cmmoran/langgen/pkg/action"
	"github.com/cmmoran/langgen/pkg/action/generate"
	"github.com/cmmoran/langgen/pkg/manifest"
	"github.com/cmmoran/langgen/pkg/options"
)

// ErrDrift is returned when generated files no longer match their documents.
var ErrDrift = errors.New("generated files are out of date")

// Drift describes a generated file whose content differs from a fresh render.
type Drift struct {
	Entry manifest.Entry
	// Missing is set when the file does not exist.
	Missing bool
	// Diff is the textual difference from the file on disk to the fresh
	// render.
	Diff string
}

// Run re-renders every manifest entry and compares the result with the file
// on disk. It returns the drifted entries and ErrDrift when there are any.
func Run(opts *options.Options) ([]Drift, error) {
	m, err := manifest.Load(opts.Manifest)
	if err != nil {
		return nil, err
	}

	entries := m.Entries()
	var drifts []Drift
	for _, e := range entries {
		d, err := compare(e, opts)
		if err != nil {
			return nil, err
		}
		if d != nil {
			slog.Default().With("document", e.Document, "file", e.File, "missing", d.Missing).Warn("generated file drifted")
			drifts = append(drifts, *d)
		}
	}

	slog.Default().With("manifest", opts.Manifest).
		Info("checked " + action.Count(len(entries), "file") + ", " + action.Count(len(drifts), "drift"))
	if len(drifts) > 0 {
		return drifts, errors.Wrapf(ErrDrift, "%s", action.Count(len(drifts), "file"))
	}
	return nil, nil
}

func compare(e manifest.Entry, opts *options.Options) (*Drift, error) {
	f, err := generate.Render(e.Document, opts)
	if err != nil {
		return nil, err
	}
	if f.Path != e.File {
		return nil, errors.WithHintf(
			errors.Newf("document %s now renders to %s, manifest records %s", e.Document, f.Path, e.File),
			"run render again to refresh the manifest")
	}

	current, err := os.ReadFile(e.File)
	if errors.Is(err, os.ErrNotExist) {
		return &Drift{Entry: e, Missing: true, Diff: cmp.Diff("", string(f.Content))}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", e.File)
	}

	if diff := cmp.Diff(string(current), string(f.Content)); diff != "" {
		return &Drift{Entry: e, Diff: diff}, nil
	}
	return nil, nil
}

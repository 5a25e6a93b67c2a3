package generate

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/tools/imports"

	"github.com/cmmoran/langgen/internal/document"
	"github.com/cmmoran/langgen/pkg/action"
	"github.com/cmmoran/langgen/pkg/manifest"
	"github.com/cmmoran/langgen/pkg/options"
)

// ErrNoDocuments is returned when there is nothing to render.
var ErrNoDocuments = errors.New("no documents to render")

var extensions = map[string]string{
	document.LanguageGo:   ".go",
	document.LanguageJava: ".java",
}

// File is a rendered document.
type File struct {
	Document string
	Language string
	// Path is where the file is written: the document's output below the
	// output directory.
	Path    string
	Imports []string
	Content []byte
}

// Render loads the document at path and renders it in memory.
func Render(path string, opts *options.Options) (*File, error) {
	d, err := document.Load(path)
	if err != nil {
		return nil, err
	}
	opts.Apply(d)

	var buf bytes.Buffer
	res, err := d.Render(&buf, opts.WriterOptions()...)
	if err != nil {
		return nil, errors.Wrapf(err, "render %s", path)
	}

	content := buf.Bytes()
	out := outputPath(path, d, opts.OutDir)
	if res.Language == document.LanguageGo && opts.GoFormat {
		content, err = imports.Process(out, content, &imports.Options{
			FormatOnly: true,
			Comments:   true,
			TabIndent:  true,
			TabWidth:   8,
		})
		if err != nil {
			return nil, errors.WithHint(errors.Wrapf(err, "gofmt %s", out), "disable go formatting to inspect the raw output")
		}
	}

	return &File{
		Document: path,
		Language: res.Language,
		Path:     out,
		Imports:  res.Imports,
		Content:  content,
	}, nil
}

// Aliases loads the Go document at path and builds the jennifer-formatted
// file of type aliases for its symbols. The path is where it would sit next
// to the rendered document.
func Aliases(path string, opts *options.Options) (*File, error) {
	d, err := document.Load(path)
	if err != nil {
		return nil, err
	}
	opts.Apply(d)

	var buf bytes.Buffer
	if err := d.WriteAliases(&buf); err != nil {
		return nil, errors.Wrapf(err, "aliases %s", path)
	}
	return &File{
		Document: path,
		Language: d.Language,
		Path:     document.AliasFileName(outputPath(path, d, opts.OutDir)),
		Content:  buf.Bytes(),
	}, nil
}

func outputPath(docPath string, d *document.Document, outDir string) string {
	name := d.Output
	if name == "" {
		base := filepath.Base(docPath)
		name = strings.TrimSuffix(base, filepath.Ext(base)) + extensions[d.Language]
	}
	return filepath.Clean(filepath.Join(outDir, name))
}

// Generate renders every document in opts, writes the files and records them
// in the manifest. Nothing is written unless every document renders. When a
// write fails the manifest still records the files written before it.
func Generate(opts *options.Options, version string) ([]*File, error) {
	if len(opts.Documents) == 0 {
		return nil, ErrNoDocuments
	}
	m, err := manifest.Load(opts.Manifest)
	if err != nil {
		return nil, err
	}

	files := make([]*File, 0, len(opts.Documents))
	for _, path := range opts.Documents {
		f, err := Render(path, opts)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}

	if version != "" {
		m.Version = version
	}
	for _, f := range files {
		if err := write(f); err != nil {
			if serr := m.Save(opts.Manifest); serr != nil {
				return nil, errors.CombineErrors(err, serr)
			}
			return nil, err
		}
		m.Add(manifest.Entry{Document: f.Document, Language: f.Language, File: f.Path})
		slog.Default().With("document", f.Document, "language", f.Language, "output", f.Path, "imports", f.Imports).
			Info("rendered document with " + action.Count(len(f.Imports), "import"))
	}

	if err := m.Save(opts.Manifest); err != nil {
		return nil, err
	}
	slog.Default().With("manifest", opts.Manifest).Info("generated " + action.Count(len(files), "file"))
	return files, nil
}

func write(f *File) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return errors.Wrap(err, "create output directory")
	}
	if err := os.WriteFile(f.Path, f.Content, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", f.Path)
	}
	return nil
}

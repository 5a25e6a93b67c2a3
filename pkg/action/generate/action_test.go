package generate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/langgen/pkg/manifest"
	"github.com/cmmoran/langgen/pkg/options"
)

const goDoc = `
language: go
package: p
symbols:
  dur: {qualifier: time, name: Duration}
body: |
  type T struct {
  A  #{dur}
  BB string
  }
`

const javaDoc = `
language: java
package: com.example
output: com/example/Names.java
symbols:
  list: {qualifier: java.util, name: List, args: [s]}
  s: {qualifier: java.lang, name: String}
body: |
  class Names {
      #{list} all;
  }
`

func writeDocs(t *testing.T, docs map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range docs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestRender(t *testing.T) {
	dir := writeDocs(t, map[string]string{"types.yaml": goDoc, "broken.yaml": "language: go\nsymbols: {d: {qualifier: foo, name: Debug}}\nbody: '#{d}'\n"})

	tests := []struct {
		name     string
		doc      string
		opts     []options.Option
		wantPath string
		want     string
		wantErr  string
	}{
		{
			name:     "gofmt",
			doc:      "types.yaml",
			opts:     []options.Option{options.WithOutDir("out")},
			wantPath: filepath.Join("out", "types.go"),
			want:     "package p\n\nimport \"time\"\n\ntype T struct {\n\tA  time.Duration\n\tBB string\n}\n",
		},
		{
			name:     "raw",
			doc:      "types.yaml",
			opts:     []options.Option{options.WithOutDir("out"), options.WithGoFormat(false)},
			wantPath: filepath.Join("out", "types.go"),
			want:     "package p\n\nimport \"time\"\n\ntype T struct {\nA  time.Duration\nBB string\n}\n",
		},
		{
			name:    "fragments cannot be formatted",
			doc:     "broken.yaml",
			wantErr: "gofmt",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := options.NewOptions(tt.opts...)
			require.NoError(t, opts.Normalize())

			f, err := Render(filepath.Join(dir, tt.doc), opts)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, f.Path)
			assert.Equal(t, []string{"time"}, f.Imports)
			require.Equalf(t, tt.want, string(f.Content), "diff = %s", cmp.Diff(tt.want, string(f.Content)))
		})
	}
}

func TestGenerate(t *testing.T) {
	dir := writeDocs(t, map[string]string{"types.yaml": goDoc, "names.yaml": javaDoc})
	out := filepath.Join(dir, "out")
	opts := options.NewOptions(
		options.WithDocuments(filepath.Join(dir, "*.yaml")),
		options.WithOutDir(out),
		options.WithManifest(""),
	)
	require.NoError(t, opts.Normalize())

	files, err := Generate(opts, "v0.1.0")
	require.NoError(t, err)
	require.Len(t, files, 2)

	java, err := os.ReadFile(filepath.Join(out, "com", "example", "Names.java"))
	require.NoError(t, err)
	assert.Equal(t, "package com.example;\n\nimport java.util.List;\n\nclass Names {\n    List<String> all;\n}\n", string(java))

	_, err = os.Stat(filepath.Join(out, "types.go"))
	require.NoError(t, err)

	m, err := manifest.Load(filepath.Join(out, ".langgen.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "v0.1.0", m.Version)
	assert.Equal(t, []manifest.Entry{
		{Document: filepath.Join(dir, "names.yaml"), Language: "java", File: filepath.Join(out, "com", "example", "Names.java")},
		{Document: filepath.Join(dir, "types.yaml"), Language: "go", File: filepath.Join(out, "types.go")},
	}, m.Entries())

	// a second run replaces entries instead of duplicating them
	_, err = Generate(opts, "")
	require.NoError(t, err)
	m, err = manifest.Load(opts.Manifest)
	require.NoError(t, err)
	assert.Len(t, m.Entries(), 2)
	assert.Equal(t, "v0.1.0", m.Version)
}

func TestGenerateErrors(t *testing.T) {
	_, err := Generate(options.NewOptions(), "")
	assert.ErrorIs(t, err, ErrNoDocuments)

	opts := options.NewOptions(options.WithDocuments(filepath.Join(t.TempDir(), "missing.yaml")))
	require.NoError(t, opts.Normalize())
	_, err = Generate(opts, "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGenerateWritesNothingWhenADocumentFails(t *testing.T) {
	dir := writeDocs(t, map[string]string{
		"a.yaml": javaDoc,
		"b.yaml": "language: java\nbody: '#{missing}'\n",
	})
	out := filepath.Join(dir, "out")
	opts := options.NewOptions(
		options.WithDocuments(filepath.Join(dir, "a.yaml"), filepath.Join(dir, "b.yaml")),
		options.WithOutDir(out),
		options.WithManifest(""),
	)
	require.NoError(t, opts.Normalize())

	_, err := Generate(opts, "")
	require.Error(t, err)

	_, err = os.Stat(filepath.Join(out, "com", "example", "Names.java"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = os.Stat(opts.Manifest)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGenerateRecordsFilesWrittenBeforeAWriteFailure(t *testing.T) {
	dir := writeDocs(t, map[string]string{
		"a.yaml": javaDoc,
		"b.yaml": "language: java\noutput: blocked/B.java\nbody: 'class B {}'\n",
	})
	out := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(out, 0o755))
	// a regular file where b's output directory has to go
	require.NoError(t, os.WriteFile(filepath.Join(out, "blocked"), nil, 0o644))

	opts := options.NewOptions(
		options.WithDocuments(filepath.Join(dir, "a.yaml"), filepath.Join(dir, "b.yaml")),
		options.WithOutDir(out),
		options.WithManifest(""),
	)
	require.NoError(t, opts.Normalize())

	_, err := Generate(opts, "")
	require.ErrorContains(t, err, "create output directory")

	m, err := manifest.Load(opts.Manifest)
	require.NoError(t, err)
	assert.Equal(t, []manifest.Entry{
		{Document: filepath.Join(dir, "a.yaml"), Language: "java", File: filepath.Join(out, "com", "example", "Names.java")},
	}, m.Entries())
}

func TestAliases(t *testing.T) {
	dir := writeDocs(t, map[string]string{"types.yaml": goDoc, "names.yaml": javaDoc})
	opts := options.NewOptions(options.WithOutDir("out"))
	require.NoError(t, opts.Normalize())

	f, err := Aliases(filepath.Join(dir, "types.yaml"), opts)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("out", "types_aliases.go"), f.Path)
	assert.Contains(t, string(f.Content), "package p\n")
	assert.Contains(t, string(f.Content), "type Dur = time.Duration\n")

	_, err = Aliases(filepath.Join(dir, "names.yaml"), opts)
	assert.ErrorContains(t, err, "aliases need a go document")
}

package options

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/langgen/internal/document"
	"github.com/cmmoran/langgen/pkg/render"
)

func TestNormalize(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.yaml", "b.yaml", "c.toml"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	tests := []struct {
		name     string
		opts     []Option
		wantDocs []string
		wantMan  string
		wantErr  error
	}{
		{
			name:    "defaults",
			wantMan: filepath.Join("gen", ".langgen.yaml"),
		},
		{
			name:     "globs are expanded and deduplicated",
			opts:     []Option{WithDocuments(filepath.Join(dir, "*.yaml"), filepath.Join(dir, "a.yaml"), " ", filepath.Join(dir, "missing.json"))},
			wantDocs: []string{filepath.Join(dir, "a.yaml"), filepath.Join(dir, "b.yaml"), filepath.Join(dir, "missing.json")},
			wantMan:  filepath.Join("gen", ".langgen.yaml"),
		},
		{
			name:    "manifest follows out dir",
			opts:    []Option{WithOutDir("out/"), WithManifest("")},
			wantMan: filepath.Join("out", ".langgen.yaml"),
		},
		{
			name:    "tabs and spaces",
			opts:    []Option{func(o *Options) { o.Tabs, o.Spaces = true, 2 }},
			wantErr: ErrInvalidOptions,
		},
		{
			name:    "negative spaces",
			opts:    []Option{WithSpaces(-1)},
			wantErr: ErrInvalidOptions,
		},
		{
			name:    "unknown language",
			opts:    []Option{WithLanguage("cobol")},
			wantErr: document.ErrUnknownLanguage,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOptions(tt.opts...)
			err := o.Normalize()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMan, o.Manifest)
			if tt.wantDocs == nil {
				assert.Empty(t, o.Documents)
			} else {
				assert.Equal(t, tt.wantDocs, o.Documents)
			}
		})
	}
}

func TestWriterOptions(t *testing.T) {
	indentOf := func(opts []render.Option) string {
		var buf bytes.Buffer
		w := render.NewWriter(&buf, opts...)
		w.Indent()
		_ = w.WriteString("x")
		_ = w.Close()
		return buf.String()
	}

	assert.Nil(t, NewOptions().WriterOptions())
	assert.Equal(t, "\tx\n", indentOf(NewOptions(WithTabs()).WriterOptions()))
	assert.Equal(t, "  x\n", indentOf(NewOptions(WithSpaces(2)).WriterOptions()))
	assert.Equal(t, "  x\n", indentOf(NewOptions(WithTabs(), WithSpaces(2)).WriterOptions()))
}

func TestApply(t *testing.T) {
	o := NewOptions(WithLanguage(document.LanguageGo), WithPackage("api"))

	d := &document.Document{}
	o.Apply(d)
	assert.Equal(t, document.LanguageGo, d.Language)
	assert.Equal(t, "api", d.Package)

	d = &document.Document{Language: document.LanguageJava, Package: "com.example"}
	o.Apply(d)
	assert.Equal(t, document.LanguageJava, d.Language)
	assert.Equal(t, "com.example", d.Package)
}

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/langgen/pkg/action/check"
)

const exampleDoc = `
language: java
package: com.example
output: Example.java
symbols:
  list: {qualifier: java.util, name: List, args: [s]}
  s: {qualifier: java.lang, name: String}
body: |
  public class Example {
      private #{list} names = #"hello";
  }
`

const exampleOut = "package com.example;\n\nimport java.util.List;\n\npublic class Example {\n    private List<String> names = \"hello\";\n}\n"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append([]string{"--level", "error"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func writeDoc(t *testing.T) (dir, path string) {
	t.Helper()
	dir = t.TempDir()
	path = filepath.Join(dir, "example.yaml")
	require.NoError(t, os.WriteFile(path, []byte(exampleDoc), 0o644))
	return dir, path
}

func TestPrint(t *testing.T) {
	_, path := writeDoc(t)

	out, err := run(t, "print", path)
	require.NoError(t, err)
	assert.Equal(t, exampleOut, out)

	_, err = run(t, "print")
	assert.Error(t, err)
}

func TestRenderAndCheck(t *testing.T) {
	dir, path := writeDoc(t)
	outDir := filepath.Join(dir, "out")

	_, err := run(t, "render", "-o", outDir, path)
	require.NoError(t, err)

	generated := filepath.Join(outDir, "Example.java")
	content, err := os.ReadFile(generated)
	require.NoError(t, err)
	assert.Equal(t, exampleOut, string(content))

	out, err := run(t, "check", "-o", outDir)
	require.NoError(t, err)
	assert.Empty(t, out)

	require.NoError(t, os.WriteFile(generated, []byte("stale\n"), 0o644))
	out, err = run(t, "check", "-o", outDir)
	require.ErrorIs(t, err, check.ErrDrift)
	assert.Contains(t, out, generated+" (modified, from "+path+")")
}

func TestAliases(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "types.yaml")
	require.NoError(t, os.WriteFile(path, []byte("language: go\nsymbols:\n  dur: {qualifier: time, name: Duration}\n"), 0o644))

	t.Cleanup(func() { _ = rootCmd.PersistentFlags().Set("package", "") })
	out, err := run(t, "aliases", "--package", "model", path)
	require.NoError(t, err)
	assert.Contains(t, out, "package model\n")
	assert.Contains(t, out, "type Dur = time.Duration\n")

	_, path = writeDoc(t)
	_, err = run(t, "aliases", path)
	assert.Error(t, err)
}

func TestSchema(t *testing.T) {
	out, err := run(t, "schema")
	require.NoError(t, err)
	assert.Contains(t, out, `"langgen document"`)
}

func TestParseLevel(t *testing.T) {
	ll, err := parseLevel("TRACE")
	require.NoError(t, err)
	assert.Equal(t, levelTrace, ll)

	ll, err = parseLevel("debug+1")
	require.NoError(t, err)
	assert.Equal(t, -3, int(ll))

	_, err = parseLevel("loud")
	assert.Error(t, err)
}

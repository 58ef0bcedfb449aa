package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwaudio/fwctl-go/pkg/version"
)

const testLayout = `
version: "9.9"
models:
  unit-a:
    segments:
      - {name: hw-state, offset: 0x1008, size: 28, notify: 0x01000000}
      - {name: ch-strip-meter, offset: 0x10dc, size: 60}
  unit-b:
    segments:
      - {name: panel, offset: 0x40, size: 28}
`

func TestParseModels(t *testing.T) {
	sels, err := parseModels("konnekt-live=klive, konnekt-8=k8")
	require.NoError(t, err)
	assert.Equal(t, []modelSel{{"konnekt-live", "klive"}, {"konnekt-8", "k8"}}, sels)

	for _, bad := range []string{"klive", "=k", "konnekt-live=", ""} {
		_, err := parseModels(bad)
		assert.Error(t, err, bad)
	}
}

func TestGoTitleCase(t *testing.T) {
	assert.Equal(t, "HwState", goTitleCase("hw-state"))
	assert.Equal(t, "ChStripMeter", goTitleCase("ch-strip-meter"))
	assert.Equal(t, "Knob", goTitleCase("knob"))
}

func TestGenerate(t *testing.T) {
	m, err := version.ParseLayout([]byte(testLayout))
	require.NoError(t, err)

	code, err := Generate(m, "shell", []modelSel{{"unit-b", "b"}, {"unit-a", "a"}})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(code, "// Code generated by fwctl-layoutgen from layout 9.9. DO NOT EDIT."))
	assert.Contains(t, code, "package shell\n")
	assert.Contains(t, code, "aHwStateOffset = 0x1008")
	assert.Contains(t, code, "aChStripMeterSize = 60")
	assert.Contains(t, code, "bPanelOffset = 0x0040")
	assert.Less(t, strings.Index(code, "unit-b"), strings.Index(code, "unit-a"))

	formatted, err := formatSource("layout_gen.go", code)
	require.NoError(t, err)
	assert.Contains(t, string(formatted), "aHwStateOffset      = 0x1008")

	_, err = Generate(m, "shell", []modelSel{{"unit-c", "c"}})
	assert.ErrorContains(t, err, `model "unit-c" not in layout 9.9`)
}

func TestRunWritesFile(t *testing.T) {
	dir := t.TempDir()
	layout := filepath.Join(dir, "layout.yaml")
	require.NoError(t, os.WriteFile(layout, []byte(testLayout), 0o644))
	out := filepath.Join(dir, "layout_gen.go")

	require.NoError(t, run(layout, "desktop", "unit-b=desktop", out))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "desktopPanelOffset = 0x0040")

	assert.Error(t, run(filepath.Join(dir, "missing.yaml"), "desktop", "unit-b=desktop", out))
}

// The checked-in layout files must match what the generator emits for the
// embedded manifest.
func TestCheckedInLayoutsUpToDate(t *testing.T) {
	m, err := version.LoadCurrentLayout()
	require.NoError(t, err)

	for _, tc := range []struct {
		path, pkg, models string
	}{
		{"../../pkg/tcelectronic/shell/layout_gen.go", "shell", "konnekt-live=klive,impact-twin=itwin,konnekt-8=k8"},
		{"../../pkg/tcelectronic/desktop/layout_gen.go", "desktop", "desktop-konnekt-6=desktop"},
	} {
		sels, err := parseModels(tc.models)
		require.NoError(t, err)
		code, err := Generate(m, tc.pkg, sels)
		require.NoError(t, err)
		want, err := formatSource(tc.path, code)
		require.NoError(t, err)

		got, err := os.ReadFile(tc.path)
		require.NoError(t, err)
		assert.Equal(t, string(want), string(got), tc.path)
	}
}

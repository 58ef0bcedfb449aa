package version

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed layouts/*.yaml
var layoutFS embed.FS

// LayoutManifest describes the register segments of every register model
// in one layout version.
type LayoutManifest struct {
	Version     string                 `yaml:"version"`
	Description string                 `yaml:"description"`
	Models      map[string]ModelLayout `yaml:"models"`
}

// ModelLayout lists the segments of one model.
type ModelLayout struct {
	Segments []SegmentLayout `yaml:"segments"`
}

// SegmentLayout places one segment.
type SegmentLayout struct {
	Name   string `yaml:"name"`
	Offset uint64 `yaml:"offset"`
	Size   int    `yaml:"size"`
	Notify uint32 `yaml:"notify,omitempty"`
}

func (s SegmentLayout) String() string {
	return fmt.Sprintf("%s[0x%04x+%d]", s.Name, s.Offset, s.Size)
}

var (
	cacheMu sync.RWMutex
	cache   = make(map[string]*LayoutManifest)
)

// LoadLayout loads a layout manifest by version string (e.g. "1.0").
func LoadLayout(ver string) (*LayoutManifest, error) {
	cacheMu.RLock()
	if m, ok := cache[ver]; ok {
		cacheMu.RUnlock()
		return m, nil
	}
	cacheMu.RUnlock()

	data, err := layoutFS.ReadFile("layouts/" + ver + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("layout version %q not found: %w", ver, err)
	}

	m, err := ParseLayout(data)
	if err != nil {
		return nil, fmt.Errorf("parsing layout %q: %w", ver, err)
	}

	cacheMu.Lock()
	cache[ver] = m
	cacheMu.Unlock()

	return m, nil
}

// ParseLayout decodes a layout manifest.
func ParseLayout(data []byte) (*LayoutManifest, error) {
	var m LayoutManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadCurrentLayout loads the manifest for the current layout version.
func LoadCurrentLayout() (*LayoutManifest, error) {
	return LoadLayout(Current)
}

// AvailableLayouts returns the version strings of all embedded manifests.
func AvailableLayouts() ([]string, error) {
	entries, err := layoutFS.ReadDir("layouts")
	if err != nil {
		return nil, fmt.Errorf("reading layouts directory: %w", err)
	}

	var versions []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") {
			versions = append(versions, strings.TrimSuffix(name, ".yaml"))
		}
	}
	sort.Strings(versions)
	return versions, nil
}

// ModelNames returns the model names, sorted.
func (m *LayoutManifest) ModelNames() []string {
	names := make([]string, 0, len(m.Models))
	for name := range m.Models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidationResult holds the outcome of validating a model against a
// manifest.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// ValidateModel checks that segs places every segment of the named model
// exactly as the manifest does. Order is not significant.
func (m *LayoutManifest) ValidateModel(model string, segs []SegmentLayout) ValidationResult {
	var result ValidationResult

	want, ok := m.Models[model]
	if !ok {
		result.Errors = append(result.Errors, fmt.Sprintf("model %s not in layout %s", model, m.Version))
		return result
	}

	got := make(map[string]SegmentLayout, len(segs))
	for _, s := range segs {
		got[s.Name] = s
	}

	for _, w := range want.Segments {
		g, present := got[w.Name]
		if !present {
			result.Errors = append(result.Errors, fmt.Sprintf("segment %s missing", w.Name))
			continue
		}
		delete(got, w.Name)
		if g.Offset != w.Offset || g.Size != w.Size {
			result.Errors = append(result.Errors, fmt.Sprintf("segment %s placed at %s, layout has %s", w.Name, g, w))
		}
		if g.Notify != w.Notify {
			result.Errors = append(result.Errors,
				fmt.Sprintf("segment %s notify flag %#08x, layout has %#08x", w.Name, g.Notify, w.Notify))
		}
	}

	extra := make([]string, 0, len(got))
	for name := range got {
		extra = append(extra, name)
	}
	sort.Strings(extra)
	for _, name := range extra {
		result.Errors = append(result.Errors, fmt.Sprintf("segment %s not in layout", name))
	}

	result.Valid = len(result.Errors) == 0
	return result
}

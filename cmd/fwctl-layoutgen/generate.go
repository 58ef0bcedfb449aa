package main

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/fwaudio/fwctl-go/pkg/version"
)

// modelSel selects a model of the manifest and the identifier prefix of
// its constants.
type modelSel struct {
	Name   string
	Prefix string
}

// parseModels parses "konnekt-live=klive,konnekt-8=k8".
func parseModels(s string) ([]modelSel, error) {
	var sels []modelSel
	for _, pair := range strings.Split(s, ",") {
		name, prefix, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || name == "" || prefix == "" {
			return nil, fmt.Errorf("invalid model selection %q, want model=prefix", pair)
		}
		sels = append(sels, modelSel{Name: name, Prefix: prefix})
	}
	return sels, nil
}

// goTitleCase converts "ch-strip-meter" to "ChStripMeter".
func goTitleCase(s string) string {
	var b strings.Builder
	for _, part := range strings.Split(s, "-") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

type segmentData struct {
	Ident  string
	Offset uint64
	Size   int
}

type modelData struct {
	Name     string
	Segments []segmentData
}

type fileData struct {
	Version string
	Package string
	Models  []modelData
}

const layoutTmpl = `// Code generated by fwctl-layoutgen from layout {{.Version}}. DO NOT EDIT.

package {{.Package}}
{{range .Models}}
// Register layout of {{.Name}}, relative to the unit base.
const (
{{- range .Segments}}
	{{.Ident}}Offset = {{hex .Offset}}
	{{.Ident}}Size = {{.Size}}
{{- end}}
)
{{end}}`

var layoutTemplate = template.Must(template.New("layout").Funcs(template.FuncMap{
	"hex": func(v uint64) string { return fmt.Sprintf("0x%04x", v) },
}).Parse(layoutTmpl))

// Generate renders the layout constants of the selected models.
func Generate(m *version.LayoutManifest, pkg string, sels []modelSel) (string, error) {
	data := fileData{Version: m.Version, Package: pkg}
	for _, sel := range sels {
		ml, ok := m.Models[sel.Name]
		if !ok {
			return "", fmt.Errorf("model %q not in layout %s", sel.Name, m.Version)
		}
		md := modelData{Name: sel.Name}
		for _, seg := range ml.Segments {
			md.Segments = append(md.Segments, segmentData{
				Ident:  sel.Prefix + goTitleCase(seg.Name),
				Offset: seg.Offset,
				Size:   seg.Size,
			})
		}
		data.Models = append(data.Models, md)
	}

	var b strings.Builder
	if err := layoutTemplate.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

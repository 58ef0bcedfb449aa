// Command fwctl-layoutgen generates register layout constants from a
// layout manifest.
//
// Usage:
//
//	fwctl-layoutgen -package shell -models konnekt-live=klive,konnekt-8=k8 -o layout_gen.go
//
// Without -layout the embedded manifest of the current layout version is
// used.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/imports"

	"github.com/fwaudio/fwctl-go/pkg/version"
)

func main() {
	layoutPath := flag.String("layout", "", "Layout manifest YAML (default: embedded current layout)")
	pkg := flag.String("package", "", "Package name of the generated file")
	models := flag.String("models", "", "Comma separated model=prefix pairs")
	output := flag.String("o", "", "Output file")
	flag.Parse()

	if *pkg == "" || *models == "" || *output == "" {
		fmt.Fprintln(os.Stderr, "Usage: fwctl-layoutgen -package <name> -models <model=prefix,...> -o <file> [-layout <path>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(*layoutPath, *pkg, *models, *output); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(layoutPath, pkg, models, output string) error {
	manifest, err := loadManifest(layoutPath)
	if err != nil {
		return fmt.Errorf("loading layout: %w", err)
	}
	sels, err := parseModels(models)
	if err != nil {
		return err
	}
	code, err := Generate(manifest, pkg, sels)
	if err != nil {
		return err
	}
	if err := writeFormatted(output, code); err != nil {
		return err
	}
	fmt.Printf("  generated %s\n", output)
	return nil
}

func loadManifest(path string) (*version.LayoutManifest, error) {
	if path == "" {
		return version.LoadCurrentLayout()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return version.ParseLayout(data)
}

// formatSource runs goimports over generated code.
func formatSource(path, code string) ([]byte, error) {
	formatted, err := imports.Process(path, []byte(code), nil)
	if err != nil {
		return nil, fmt.Errorf("goimports %s: %w", filepath.Base(path), err)
	}
	return formatted, nil
}

// writeFormatted formats Go source code with goimports and writes it to a file.
func writeFormatted(path, code string) error {
	formatted, err := formatSource(path, code)
	if err != nil {
		// Keep the raw output for debugging the generator.
		_ = os.WriteFile(path+".broken", []byte(code), 0o644)
		return err
	}
	return os.WriteFile(path, formatted, 0o644)
}

package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Template is one template file selected for generation.
type Template struct {
	Path    string // абсолютный путь
	Rel     string // путь относительно корня манифеста, через '/'
	Name    string // имя класса без суффикса Template
	OutName string // имя выходного файла, <base>.cs
}

// TemplateName resolves the generated class name: a non-blank override
// wins, otherwise the file name without its extension.
func TemplateName(path, override string) string {
	if strings.TrimSpace(override) != "" {
		return override
	}
	return baseName(path)
}

// OutputName is the generated file name for a template path.
func OutputName(path string) string {
	return baseName(path) + ".cs"
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Templates lists the templates under the manifest's root, sorted by
// relative path, with [[template]] overrides applied. Override entries may
// also name files outside the scanned root; such files must exist.
func (m *Manifest) Templates() ([]Template, error) {
	root := m.TemplateRoot()
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("template root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template root %s is not a directory", root)
	}

	overrides := make(map[string]TemplateConfig, len(m.Config.Templates))
	for _, tc := range m.Config.Templates {
		overrides[m.rel(m.resolve(tc.Path))] = tc
	}

	seen := make(map[string]bool)
	var out []Template
	add := func(path string) {
		rel := m.rel(path)
		if seen[rel] {
			return
		}
		seen[rel] = true
		tc, hasOverride := overrides[rel]
		if hasOverride && tc.Skip {
			return
		}
		out = append(out, Template{
			Path:    path,
			Rel:     rel,
			Name:    TemplateName(path, tc.Name),
			OutName: OutputName(path),
		})
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// скрытые каталоги и выходной каталог не сканируем
			if path != root && (strings.HasPrefix(d.Name(), ".") || path == m.OutDir()) {
				return filepath.SkipDir
			}
			return nil
		}
		if m.matchesExt(path) {
			add(path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	for _, tc := range m.Config.Templates {
		path := m.resolve(tc.Path)
		if seen[m.rel(path)] || tc.Skip {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("[[template]] %s does not exist", tc.Path)
			}
			return nil, err
		}
		add(path)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Rel < out[j].Rel })
	return out, nil
}

func (m *Manifest) matchesExt(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range m.Config.Generate.Ext {
		if ext == want {
			return true
		}
	}
	return false
}

func (m *Manifest) rel(path string) string {
	rel, err := filepath.Rel(m.Root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

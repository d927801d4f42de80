package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"transplator/internal/source"
)

const (
	// ManifestTOML is the primary manifest file name.
	ManifestTOML = "transplator.toml"
	// ManifestCUE is the CUE flavour of the manifest.
	ManifestCUE = "transplator.cue"

	DefaultRoot = "templates"
	DefaultOut  = "generated"
	DefaultExt  = ".tpl"
)

// ErrNoManifest is returned when no manifest is found walking up.
var ErrNoManifest = errors.New("no " + ManifestTOML + " or " + ManifestCUE + " found")

// Manifest is a loaded project manifest. Root is the directory holding it.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the manifest file. Tags serve both TOML and CUE decoding.
type Config struct {
	Generate  GenerateConfig   `toml:"generate" json:"generate"`
	Templates []TemplateConfig `toml:"template,omitempty" json:"template"`
}

// GenerateConfig is the [generate] section.
type GenerateConfig struct {
	Root     string   `toml:"root" json:"root"`
	Ext      []string `toml:"ext" json:"ext"`
	Out      string   `toml:"out" json:"out"`
	Encoding string   `toml:"encoding,omitempty" json:"encoding"`
	Jobs     int      `toml:"jobs,omitempty" json:"jobs"`
}

// TemplateConfig is one [[template]] override.
type TemplateConfig struct {
	Path string `toml:"path" json:"path"`
	Name string `toml:"name" json:"name"`
	Skip bool   `toml:"skip" json:"skip"`
}

// DefaultConfig returns the configuration used when a key is absent.
func DefaultConfig() Config {
	return Config{
		Generate: GenerateConfig{
			Root: DefaultRoot,
			Ext:  []string{DefaultExt},
			Out:  DefaultOut,
		},
	}
}

// FindManifest walks up from startDir to locate a manifest. TOML wins
// over CUE in the same directory.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range []string{ManifestTOML, ManifestCUE} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads the manifest governing startDir.
func Discover(startDir string) (*Manifest, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoManifest
	}
	return LoadManifest(path)
}

// LoadManifest reads a TOML or CUE manifest, fills defaults and validates it.
func LoadManifest(path string) (*Manifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
	}

	var cfg Config
	switch filepath.Ext(abs) {
	case ".toml":
		cfg, err = loadTOML(abs)
	case ".cue":
		cfg, err = loadCUE(abs)
	default:
		err = fmt.Errorf("%s: unsupported manifest format", abs)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", abs, err)
	}
	return &Manifest{Path: abs, Root: filepath.Dir(abs), Config: cfg}, nil
}

// Implicit builds an in-memory manifest rooted at dir for projects without
// a manifest file; dir itself is scanned.
func Implicit(dir string) (*Manifest, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", dir, err)
	}
	cfg := DefaultConfig()
	cfg.Generate.Root = "."
	return &Manifest{Root: abs, Config: cfg}, nil
}

func loadTOML(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	def := DefaultConfig().Generate
	if !meta.IsDefined("generate", "root") {
		cfg.Generate.Root = def.Root
	}
	if !meta.IsDefined("generate", "ext") {
		cfg.Generate.Ext = def.Ext
	}
	if !meta.IsDefined("generate", "out") {
		cfg.Generate.Out = def.Out
	}
	return cfg, nil
}

func (c *Config) validate() error {
	g := &c.Generate
	if strings.TrimSpace(g.Root) == "" {
		return errors.New("[generate].root must not be empty")
	}
	if strings.TrimSpace(g.Out) == "" {
		return errors.New("[generate].out must not be empty")
	}
	if len(g.Ext) == 0 {
		return errors.New("[generate].ext must list at least one extension")
	}
	for i, ext := range g.Ext {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return fmt.Errorf("[generate].ext[%d] is empty", i)
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		g.Ext[i] = strings.ToLower(ext)
	}
	if g.Jobs < 0 {
		return fmt.Errorf("[generate].jobs must be >= 0, got %d", g.Jobs)
	}
	if g.Encoding != "" {
		if _, err := source.ParseEncoding(g.Encoding); err != nil {
			return fmt.Errorf("[generate].encoding: %w", err)
		}
	}
	for i, t := range c.Templates {
		if strings.TrimSpace(t.Path) == "" {
			return fmt.Errorf("[[template]] #%d: missing path", i+1)
		}
	}
	return nil
}

// OutputEncoding returns the configured encoding override, if any.
func (m *Manifest) OutputEncoding() (*source.Encoding, error) {
	if m.Config.Generate.Encoding == "" {
		return nil, nil
	}
	enc, err := source.ParseEncoding(m.Config.Generate.Encoding)
	if err != nil {
		return nil, err
	}
	return &enc, nil
}

// TemplateRoot is the absolute directory scanned for templates.
func (m *Manifest) TemplateRoot() string {
	return m.resolve(m.Config.Generate.Root)
}

// OutDir is the absolute output directory.
func (m *Manifest) OutDir() string {
	return m.resolve(m.Config.Generate.Out)
}

func (m *Manifest) resolve(p string) string {
	p = filepath.FromSlash(strings.TrimSpace(p))
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(m.Root, p)
}

package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ExampleTemplate is written by Init next to a fresh manifest.
const ExampleTemplate = `Hello, {% Name %}!
{%-# greet every friend on its own line ~%}
{% foreach (var friend in Friends) { ~%}
  * {% friend %}
{% } ~%}
`

// InitResult lists what Init created.
type InitResult struct {
	Manifest string
	Template string
}

// Init writes a default transplator.toml and an example template into dir.
// Existing files are left alone unless force is set.
func Init(dir string, force bool) (*InitResult, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}

	manifestPath := filepath.Join(abs, ManifestTOML)
	if !force {
		if _, err := os.Stat(manifestPath); err == nil {
			return nil, fmt.Errorf("%s already exists", manifestPath)
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	f, err := os.Create(manifestPath) // #nosec G304 -- path built from user-selected dir
	if err != nil {
		return nil, err
	}
	enc := toml.NewEncoder(f)
	enc.Indent = ""
	if err := enc.Encode(DefaultConfig()); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write %s: %w", manifestPath, err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	tplDir := filepath.Join(abs, DefaultRoot)
	if err := os.MkdirAll(tplDir, 0o755); err != nil {
		return nil, err
	}
	tplPath := filepath.Join(tplDir, "Hello"+DefaultExt)
	if _, err := os.Stat(tplPath); err == nil && !force {
		return &InitResult{Manifest: manifestPath}, nil
	}
	if err := os.WriteFile(tplPath, []byte(ExampleTemplate), 0o600); err != nil {
		return nil, err
	}
	return &InitResult{Manifest: manifestPath, Template: tplPath}, nil
}

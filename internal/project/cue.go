package project

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// manifestSchema closes the manifest so typos fail loudly.
const manifestSchema = `
generate?: close({
	root?:     string
	ext?:      [...string]
	out?:      string
	encoding?: string
	jobs?:     int & >=0
})
template?: [...close({
	path:  string
	name?: string
	skip?: bool
})]
`

func loadCUE(path string) (Config, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- manifest path comes from discovery
	if err != nil {
		return Config{}, err
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString("close({" + manifestSchema + "})")
	if err := schema.Err(); err != nil {
		return Config{}, fmt.Errorf("manifest schema: %w", err)
	}

	value := ctx.CompileBytes(content, cue.Filename(path))
	if err := value.Err(); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse CUE: %w", path, err)
	}
	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	cfg := DefaultConfig()
	if gen := unified.LookupPath(cue.ParsePath("generate")); gen.Exists() {
		for _, key := range []struct {
			name   string
			target any
		}{
			{"root", &cfg.Generate.Root},
			{"ext", &cfg.Generate.Ext},
			{"out", &cfg.Generate.Out},
			{"encoding", &cfg.Generate.Encoding},
			{"jobs", &cfg.Generate.Jobs},
		} {
			v := gen.LookupPath(cue.ParsePath(key.name))
			if !v.Exists() {
				continue
			}
			if err := v.Decode(key.target); err != nil {
				return Config{}, fmt.Errorf("%s: generate.%s: %w", path, key.name, err)
			}
		}
	}
	if tpl := unified.LookupPath(cue.ParsePath("template")); tpl.Exists() {
		if err := tpl.Decode(&cfg.Templates); err != nil {
			return Config{}, fmt.Errorf("%s: template: %w", path, err)
		}
	}
	return cfg, nil
}

package layouts

import (
	"embed"
	"fmt"
	"gopkg.in/yaml.v3"
	"io"
	"io/fs"
	"os"
	"path"
)

//go:embed data/*.yaml
var builtin embed.FS

type manifest struct {
	Layouts []string `yaml:"layouts"`
}

// ParseLayout decodes a single YAML layout description.
func ParseLayout(r io.Reader) (*Layout, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	layout := &Layout{}
	if err := dec.Decode(layout); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	if layout.Name == "" {
		return nil, fmt.Errorf("layout has no name")
	}

	return layout, nil
}

func ParseLayoutFile(filename string) (*Layout, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return ParseLayout(file)
}

// RegisterManifest registers every layout listed in the manifest.yaml of fsys, in order.
func RegisterManifest(r *Registry, fsys fs.FS) error {
	raw, err := fs.ReadFile(fsys, "manifest.yaml")
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("decode manifest: %w", err)
	}

	for _, name := range m.Layouts {
		file, err := fsys.Open(path.Clean(name))
		if err != nil {
			return fmt.Errorf("open %q: %w", name, err)
		}

		layout, err := ParseLayout(file)
		_ = file.Close()
		if err != nil {
			return fmt.Errorf("parse %q: %w", name, err)
		}

		if err := r.Register(layout); err != nil {
			return err
		}
	}

	return nil
}

// RegisterBuiltin registers the layouts shipped with the binary.
func RegisterBuiltin(r *Registry) error {
	sub, err := fs.Sub(builtin, "data")
	if err != nil {
		return fmt.Errorf("open builtin layouts: %w", err)
	}

	return RegisterManifest(r, sub)
}

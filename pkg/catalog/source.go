package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// StaticSource is a Source over an in-memory slice of definitions,
// useful for tests and embedded catalogs.
type StaticSource struct {
	modules []Module
}

// NewStaticSource creates a source from the given definitions. It deep
// copies the input so later mutation by the caller has no effect.
func NewStaticSource(modules []Module) *StaticSource {
	cp := make([]Module, len(modules))
	for i, m := range modules {
		cp[i] = copyModule(m)
	}
	return &StaticSource{modules: cp}
}

// Load returns the definitions.
func (s *StaticSource) Load(ctx context.Context) ([]Module, error) {
	out := make([]Module, len(s.modules))
	for i, m := range s.modules {
		out[i] = copyModule(m)
	}
	return out, nil
}

// FileSource loads module definitions from a YAML catalog file, the
// deploy-time artifact that publishes the module catalog.
type FileSource struct {
	path string
}

// NewFileSource creates a source reading the given YAML file.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

type catalogFile struct {
	Modules []Module `yaml:"modules"`
}

// Load reads and decodes the catalog file.
func (s *FileSource) Load(ctx context.Context) ([]Module, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", s.path, err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Join(ErrInvalidDefinition, fmt.Errorf("catalog: decode %s: %w", s.path, err))
	}

	return file.Modules, nil
}

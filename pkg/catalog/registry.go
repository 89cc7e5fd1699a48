package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/workhubhq/workhub/pkg/permission"
)

// Source provides module definitions, typically loaded once at process
// start from a deploy-time artifact.
type Source interface {
	// Load returns all module definitions.
	Load(ctx context.Context) ([]Module, error)
}

// Registry holds validated, immutable module definitions. It is built once
// at startup and is safe for concurrent reads; request-path consumers never
// re-validate the dependency graph.
type Registry struct {
	modules map[string]Module
	sorted  []string
}

// New builds a registry from the source. It rejects duplicate ids, unknown
// or cyclic dependencies, and malformed capability strings, so the resolver
// can assume a well-formed acyclic catalog at request time.
func New(ctx context.Context, source Source) (*Registry, error) {
	defs, err := source.Load(ctx)
	if err != nil {
		return nil, err
	}

	modules := make(map[string]Module, len(defs))
	for _, def := range defs {
		if def.ID == "" {
			return nil, errors.Join(ErrInvalidDefinition, errors.New("module id is empty"))
		}
		if _, exists := modules[def.ID]; exists {
			return nil, errors.Join(ErrDuplicateModule, fmt.Errorf("module %q defined twice", def.ID))
		}
		if err := validateModule(def); err != nil {
			return nil, err
		}
		modules[def.ID] = copyModule(def)
	}

	for id, def := range modules {
		for _, dep := range def.Dependencies {
			if _, exists := modules[dep]; !exists {
				return nil, errors.Join(ErrUnknownDependency,
					fmt.Errorf("module %q depends on unknown module %q", id, dep))
			}
		}
	}

	for id := range modules {
		if err := checkDependencyCycle(id, modules, []string{id}); err != nil {
			return nil, err
		}
	}

	sorted := make([]string, 0, len(modules))
	for id := range modules {
		sorted = append(sorted, id)
	}
	slices.Sort(sorted)

	return &Registry{modules: modules, sorted: sorted}, nil
}

// Get returns the module definition for the id.
// Returns ErrModuleNotFound if the catalog does not define it.
func (r *Registry) Get(id string) (Module, error) {
	m, ok := r.modules[id]
	if !ok {
		return Module{}, errors.Join(ErrModuleNotFound, fmt.Errorf("module %q", id))
	}
	return copyModule(m), nil
}

// All returns every module definition ordered by id.
func (r *Registry) All() []Module {
	out := make([]Module, 0, len(r.sorted))
	for _, id := range r.sorted {
		out = append(out, copyModule(r.modules[id]))
	}
	return out
}

// Has reports whether the catalog defines the module id.
func (r *Registry) Has(id string) bool {
	_, ok := r.modules[id]
	return ok
}

func validateModule(def Module) error {
	if err := permission.ValidateAll(def.Permissions); err != nil {
		return errors.Join(ErrInvalidDefinition,
			fmt.Errorf("module %q capabilities: %w", def.ID, err))
	}
	for slug, grants := range def.RoleDefaults {
		if err := permission.ValidateAll(grants); err != nil {
			return errors.Join(ErrInvalidDefinition,
				fmt.Errorf("module %q role defaults for %q: %w", def.ID, slug, err))
		}
	}
	return validateNavItems(def.ID, def.Navigation)
}

func validateNavItems(moduleID string, items []NavItem) error {
	for _, it := range items {
		// Empty permission means an organizational node; anything else must parse.
		if it.Permission != "" {
			if err := permission.Validate(it.Permission); err != nil {
				return errors.Join(ErrInvalidDefinition,
					fmt.Errorf("module %q navigation item %q: %w", moduleID, it.Label, err))
			}
		}
		if err := validateNavItems(moduleID, it.Children); err != nil {
			return err
		}
	}
	return nil
}

// checkDependencyCycle walks the dependency graph depth-first and fails on
// the first id already present in the current path.
func checkDependencyCycle(id string, modules map[string]Module, path []string) error {
	for _, dep := range modules[id].Dependencies {
		if slices.Contains(path, dep) {
			return errors.Join(ErrDependencyCycle,
				fmt.Errorf("dependency cycle detected: %s -> %s", id, dep))
		}
		if err := checkDependencyCycle(dep, modules, append(path, dep)); err != nil {
			return err
		}
	}
	return nil
}

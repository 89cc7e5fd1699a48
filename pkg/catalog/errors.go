package catalog

import "errors"

var (
	// ErrModuleNotFound is returned when no module matches the id.
	ErrModuleNotFound = errors.New("catalog.module_not_found")

	// ErrDuplicateModule is returned when the source declares the same
	// module id twice.
	ErrDuplicateModule = errors.New("catalog.duplicate_module")

	// ErrUnknownDependency is returned when a module depends on an id the
	// catalog does not define.
	ErrUnknownDependency = errors.New("catalog.unknown_dependency")

	// ErrDependencyCycle is returned when module dependencies form a cycle.
	ErrDependencyCycle = errors.New("catalog.dependency_cycle")

	// ErrInvalidDefinition is returned when a module definition fails
	// validation (missing id, malformed capability strings, etc.).
	ErrInvalidDefinition = errors.New("catalog.invalid_definition")
)

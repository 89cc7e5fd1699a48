package entitlement

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingDependency is returned when enabling a module whose
	// dependency is not yet enabled for the tenant.
	ErrMissingDependency = errors.New("entitlement.missing_dependency")

	// ErrDependentModuleActive is returned when disabling a module that a
	// currently enabled module still depends on.
	ErrDependentModuleActive = errors.New("entitlement.dependent_module_active")
)

// DependencyError carries the offending module ids so callers can explain
// the required order of operations.
type DependencyError struct {
	// ModuleID is the module being enabled or disabled.
	ModuleID string
	// RelatedID is the missing dependency (on enable) or the still-active
	// dependent (on disable).
	RelatedID string

	sentinel error
}

func (e *DependencyError) Error() string {
	if errors.Is(e.sentinel, ErrMissingDependency) {
		return fmt.Sprintf("module %q requires module %q to be enabled first", e.ModuleID, e.RelatedID)
	}
	return fmt.Sprintf("module %q cannot be disabled while module %q depends on it", e.ModuleID, e.RelatedID)
}

func (e *DependencyError) Unwrap() error {
	return e.sentinel
}

func missingDependency(moduleID, dep string) error {
	return &DependencyError{ModuleID: moduleID, RelatedID: dep, sentinel: ErrMissingDependency}
}

func dependentActive(moduleID, dependent string) error {
	return &DependencyError{ModuleID: moduleID, RelatedID: dependent, sentinel: ErrDependentModuleActive}
}

package catalog

import (
	"github.com/workhubhq/workhub/pkg/permission"
)

// NavItem is a navigation fragment contributed by a module. A node with an
// empty Permission is purely organizational: it carries no gate of its own
// and is shown only while at least one descendant is visible.
type NavItem struct {
	Label      string                `json:"label" yaml:"label"`
	Icon       string                `json:"icon,omitempty" yaml:"icon,omitempty"`
	Href       string                `json:"href,omitempty" yaml:"href,omitempty"`
	Permission permission.Permission `json:"permission,omitempty" yaml:"permission,omitempty"`
	Children   []NavItem             `json:"children,omitempty" yaml:"children,omitempty"`
}

// Module is a versioned feature unit a tenant can enable. Definitions are
// global and immutable at runtime; changing one requires a new deployment
// of the catalog.
type Module struct {
	ID           string                             `json:"id" yaml:"id"`
	Name         string                             `json:"name" yaml:"name"`
	Version      string                             `json:"version" yaml:"version"`
	Dependencies []string                           `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	Permissions  []permission.Permission            `json:"permissions,omitempty" yaml:"permissions,omitempty"`
	RoleDefaults map[string][]permission.Permission `json:"role_defaults,omitempty" yaml:"role_defaults,omitempty"`
	Navigation   []NavItem                          `json:"navigation,omitempty" yaml:"navigation,omitempty"`
}

func copyModule(m Module) Module {
	cp := m
	cp.Dependencies = append([]string(nil), m.Dependencies...)
	cp.Permissions = append([]permission.Permission(nil), m.Permissions...)
	if m.RoleDefaults != nil {
		cp.RoleDefaults = make(map[string][]permission.Permission, len(m.RoleDefaults))
		for slug, grants := range m.RoleDefaults {
			cp.RoleDefaults[slug] = append([]permission.Permission(nil), grants...)
		}
	}
	cp.Navigation = copyNavItems(m.Navigation)
	return cp
}

func copyNavItems(items []NavItem) []NavItem {
	if items == nil {
		return nil
	}
	cp := make([]NavItem, len(items))
	for i, it := range items {
		cp[i] = it
		cp[i].Children = copyNavItems(it.Children)
	}
	return cp
}

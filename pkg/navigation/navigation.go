package navigation

import (
	"github.com/workhubhq/workhub/pkg/catalog"
	"github.com/workhubhq/workhub/pkg/permission"
)

// Compose prunes module navigation trees down to what the caller's grants
// can reach. A node survives when its own permission check passes or when
// at least one descendant survives; a parent whose children are all pruned
// and whose own permission fails disappears entirely. Organizational nodes
// (empty permission) carry no gate of their own and survive only through
// descendants. Sibling order is preserved; nothing is sorted.
func Compose(trees []catalog.NavItem, granted []permission.Permission) []catalog.NavItem {
	var out []catalog.NavItem
	for _, item := range trees {
		if pruned, ok := prune(item, granted); ok {
			out = append(out, pruned)
		}
	}
	return out
}

func prune(item catalog.NavItem, granted []permission.Permission) (catalog.NavItem, bool) {
	var children []catalog.NavItem
	for _, child := range item.Children {
		if pruned, ok := prune(child, granted); ok {
			children = append(children, pruned)
		}
	}

	selfVisible := item.Permission != "" && permission.Matches(granted, item.Permission)
	if !selfVisible && len(children) == 0 {
		return catalog.NavItem{}, false
	}

	item.Children = children
	return item, true
}

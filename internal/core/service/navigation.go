package service

import "github.com/elffinance/microfin-gateway/internal/core/domain"

// Navigation filters a menu table by role.
type Navigation struct {
	table domain.MenuTable
}

func NewNavigation(table domain.MenuTable) *Navigation {
	return &Navigation{table: table}
}

// Menu returns the entries visible to role, in table order. RoleNone gets an
// empty menu.
func (n *Navigation) Menu(role domain.Role) []domain.MenuItem {
	items := make([]domain.MenuItem, 0, len(n.table))
	for _, item := range n.table {
		if item.Roles.Has(role) {
			items = append(items, item)
		}
	}
	return items
}

// Table returns the full table.
func (n *Navigation) Table() domain.MenuTable {
	return n.table
}

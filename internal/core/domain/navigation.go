package domain

// MenuItem is one navigation entry and the roles allowed to see and reach it.
type MenuItem struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Path  string  `json:"path"`
	Roles RoleSet `json:"-"`
}

// MenuTable is the ordered role -> route table.
type MenuTable []MenuItem

// DefaultMenu is the dashboard's navigation in display order.
var DefaultMenu = MenuTable{
	{Key: "dashboard", Label: "Dashboard", Path: "/", Roles: AllRoles},
	{Key: "users", Label: "User Management", Path: "/users", Roles: RoleSet{RoleAdmin}},
	{Key: "customers", Label: "Customer Management", Path: "/customers", Roles: AllRoles},
	{Key: "collection", Label: "Collection Types", Path: "/collection-types", Roles: RoleSet{RoleAdmin, RoleManager}},
	{Key: "linetype", Label: "Line Management", Path: "/line-types", Roles: RoleSet{RoleAdmin, RoleManager}},
	{Key: "loan", Label: "Loan Management", Path: "/loans", Roles: AllRoles},
	{Key: "lines", Label: "Lines", Path: "/lines", Roles: AllRoles},
	{Key: "expenses", Label: "Expenses Management", Path: "/expenses-types", Roles: RoleSet{RoleAdmin}},
	{Key: "expensesList", Label: "Expenses", Path: "/expenses", Roles: RoleSet{RoleAdmin}},
}

// Lookup returns the entry registered for path.
func (t MenuTable) Lookup(path string) (MenuItem, bool) {
	for _, item := range t {
		if item.Path == path {
			return item, true
		}
	}
	return MenuItem{}, false
}

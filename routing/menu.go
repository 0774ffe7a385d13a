package routing

import (
	"github.com/jrsteele09/ims-console/users"
	"github.com/samber/lo"
)

// MenuItem is one entry in the side navigation. Index entries are only
// highlighted on an exact path match.
type MenuItem struct {
	Label string
	Path  string
	Icon  string
	Index bool
	roles []users.RoleType
}

var (
	adminOnly    = []users.RoleType{users.RoleAdministrator}
	operatorOnly = []users.RoleType{users.RoleOperator}
)

var menuItems = []MenuItem{
	{Label: "Dashboard", Path: PathAdminLanding, Icon: "home", Index: true, roles: adminOnly},
	{Label: "Suppliers", Path: PathAdminLanding + "/supplier", Icon: "truck", roles: adminOnly},
	{Label: "Categories", Path: PathAdminLanding + "/categories", Icon: "table", roles: adminOnly},
	{Label: "Products", Path: PathAdminLanding + "/products", Icon: "box", roles: adminOnly},
	{Label: "Users", Path: PathAdminLanding + "/users", Icon: "users", roles: adminOnly},
	{Label: "Orders", Path: PathAdminLanding + "/orders", Icon: "cart", roles: adminOnly},
	{Label: "Profile", Path: PathAdminLanding + "/profile", Icon: "cog", roles: adminOnly},

	{Label: "Products", Path: PathOperatorLanding, Icon: "box", Index: true, roles: operatorOnly},
	{Label: "Orders", Path: PathOperatorLanding + "/orders", Icon: "cart", roles: operatorOnly},
	{Label: "Profile", Path: PathOperatorLanding + "/profile", Icon: "cog", roles: operatorOnly},
}

var logoutItem = MenuItem{Label: "Logout", Path: PathLogout, Icon: "sign-out"}

// Menu returns the navigation entries visible to role, in display order, and
// the logout entry. Roles other than Administrator see the operator menu.
// The menu is cosmetic; access is enforced by the guard.
func Menu(role users.RoleType) (items []MenuItem, logout MenuItem) {
	if role != users.RoleAdministrator {
		role = users.RoleOperator
	}
	items = lo.Filter(menuItems, func(item MenuItem, _ int) bool {
		return lo.Contains(item.roles, role)
	})
	return items, logoutItem
}

// Active reports whether the item should be highlighted for path
func (m MenuItem) Active(path string) bool {
	if m.Index {
		return path == m.Path || path == m.Path+"/"
	}
	return path == m.Path || len(path) > len(m.Path) && path[:len(m.Path)+1] == m.Path+"/"
}

package server

import "github.com/jrsteele09/ims-console/routing"

// Route path constants
const (
	RouteRoot         = routing.PathRoot
	RouteLogin        = routing.PathLogin
	RouteLogout       = routing.PathLogout
	RouteUnauthorized = routing.PathUnauthorized

	// Administrator screens
	RouteAdmin           = routing.PathAdminLanding
	RouteAdminCategories = RouteAdmin + "/categories"
	RouteAdminProducts   = RouteAdmin + "/products"
	RouteAdminSuppliers  = RouteAdmin + "/supplier"
	RouteAdminUsers      = RouteAdmin + "/users"
	RouteAdminOrders     = RouteAdmin + "/orders"
	RouteAdminProfile    = RouteAdmin + "/profile"

	// Operator screens
	RouteOperator          = routing.PathOperatorLanding
	RouteOperatorOrders    = RouteOperator + "/orders"
	RouteOperatorOrdersAdd = RouteOperator + "/orders/add"
	RouteOperatorProfile   = RouteOperator + "/profile"

	// Static Asset Routes (patterns)
	RouteStatic = "/static/{file}"
)

package server

import (
	"net/http"

	"github.com/jrsteele09/ims-console/users"
)

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET "+RouteRoot+"{$}", ChainMiddleware(s.EntryHandler(), s.HTMLMiddleware()...))

	// LOGIN
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteUnauthorized, ChainMiddleware(s.UnauthorizedHandler(), s.HTMLMiddleware()...))

	// Administrator screens
	admin := s.HTMLMiddleware(s.RequireRole(users.RoleAdministrator))
	s.RegisterRouteHandler("GET "+RouteAdmin, ChainMiddleware(s.AdminSummaryHandler(), admin...))

	s.RegisterRouteHandler("GET "+RouteAdminCategories, ChainMiddleware(s.AdminCategoriesHandler(), admin...))
	s.RegisterRouteHandler("POST "+RouteAdminCategories, ChainMiddleware(s.AdminSaveCategoryHandler(), admin...))
	s.RegisterRouteHandler("POST "+RouteAdminCategories+"/{id}", ChainMiddleware(s.AdminSaveCategoryHandler(), admin...))
	s.RegisterRouteHandler("POST "+RouteAdminCategories+"/{id}/delete", ChainMiddleware(s.AdminDeleteCategoryHandler(), admin...))

	s.RegisterRouteHandler("GET "+RouteAdminProducts, ChainMiddleware(s.AdminProductsHandler(), admin...))
	s.RegisterRouteHandler("POST "+RouteAdminProducts, ChainMiddleware(s.AdminSaveProductHandler(), admin...))
	s.RegisterRouteHandler("POST "+RouteAdminProducts+"/{id}", ChainMiddleware(s.AdminSaveProductHandler(), admin...))
	s.RegisterRouteHandler("POST "+RouteAdminProducts+"/{id}/delete", ChainMiddleware(s.AdminDeleteProductHandler(), admin...))

	s.RegisterRouteHandler("GET "+RouteAdminSuppliers, ChainMiddleware(s.AdminSuppliersHandler(), admin...))
	s.RegisterRouteHandler("POST "+RouteAdminSuppliers, ChainMiddleware(s.AdminSaveSupplierHandler(), admin...))
	s.RegisterRouteHandler("POST "+RouteAdminSuppliers+"/{id}", ChainMiddleware(s.AdminSaveSupplierHandler(), admin...))
	s.RegisterRouteHandler("POST "+RouteAdminSuppliers+"/{id}/delete", ChainMiddleware(s.AdminDeleteSupplierHandler(), admin...))

	s.RegisterRouteHandler("GET "+RouteAdminUsers, ChainMiddleware(s.AdminUsersHandler(), admin...))
	s.RegisterRouteHandler("POST "+RouteAdminUsers, ChainMiddleware(s.AdminAddUserHandler(), admin...))
	s.RegisterRouteHandler("POST "+RouteAdminUsers+"/{id}/delete", ChainMiddleware(s.AdminDeleteUserHandler(), admin...))

	s.RegisterRouteHandler("GET "+RouteAdminOrders, ChainMiddleware(s.AdminOrdersHandler(), admin...))
	s.RegisterRouteHandler("GET "+RouteAdminProfile, ChainMiddleware(s.ProfileHandler(), admin...))

	// Operator screens
	operator := s.HTMLMiddleware(s.RequireRole(users.RoleOperator))
	s.RegisterRouteHandler("GET "+RouteOperator, ChainMiddleware(s.OperatorProductsHandler(), operator...))
	s.RegisterRouteHandler("POST "+RouteOperatorOrdersAdd, ChainMiddleware(s.OperatorPlaceOrderHandler(), operator...))
	s.RegisterRouteHandler("GET "+RouteOperatorOrders, ChainMiddleware(s.OperatorOrdersHandler(), operator...))
	s.RegisterRouteHandler("GET "+RouteOperatorProfile, ChainMiddleware(s.ProfileHandler(), operator...))

	s.RegisterRouteHandler("GET "+RouteStatic, ChainMiddleware(s.serveFileHandler(), s.StaticMiddleware()...))

	// Everything else
	s.RegisterRouteHandler("/", ChainMiddleware(s.NotFoundHandler(), s.HTMLMiddleware()...))
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file := r.PathValue("file")
		if err := StreamFile(w, r, file); err != nil {
			logError(r.Method, r.URL.Path, err.Error())
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
		}
	}
}

package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/jrsteele09/ims-console/inventory"
	"github.com/samber/lo"
)

// matchesQuery is the case-insensitive name search used by list screens
func matchesQuery(name, q string) bool {
	return q == "" || strings.Contains(strings.ToLower(name), strings.ToLower(strings.TrimSpace(q)))
}

func itemAction(base, id string) string {
	if id == "" {
		return base
	}
	return base + "/" + id
}

// AdminSummaryHandler renders the administrator landing screen
func (s *Server) AdminSummaryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dashboard, err := s.inventory.Dashboard(r.Context())
		if dashboard == nil {
			dashboard = &inventory.Dashboard{}
		}
		s.renderPage(w, r, page{
			Title:    "Dashboard",
			Template: "admin_summary.html",
			Data:     dashboard,
			Error:    screenError(r, err),
		})
	}
}

// Categories

type categoriesData struct {
	Categories []inventory.Category
	Query      string
	Editing    inventory.Category
	Action     string
}

func (s *Server) AdminCategoriesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := s.inventory.Categories(r.Context())
		q := r.URL.Query().Get("q")

		data := categoriesData{
			Categories: lo.Filter(categories, func(c inventory.Category, _ int) bool { return matchesQuery(c.Name, q) }),
			Query:      q,
		}
		if editing, ok := lo.Find(categories, func(c inventory.Category) bool { return c.ID == r.URL.Query().Get("edit") }); ok {
			data.Editing = editing
		}
		data.Action = itemAction(RouteAdminCategories, data.Editing.ID)

		s.renderPage(w, r, page{Title: "Categories", Template: "admin_categories.html", Data: data, Error: screenError(r, err)})
	}
}

// AdminSaveCategoryHandler adds a category, or updates the one named by the
// id path value
func (s *Server) AdminSaveCategoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		in := inventory.CategoryInput{Name: r.FormValue("name"), Description: r.FormValue("description")}
		if err := in.Normalize(); err != nil {
			actionFailed(w, r, RouteAdminCategories, err)
			return
		}

		existing, err := s.inventory.Categories(r.Context())
		if err != nil {
			actionFailed(w, r, RouteAdminCategories, err)
			return
		}
		if err := in.CheckDuplicate(existing, id); err != nil {
			actionFailed(w, r, RouteAdminCategories, err)
			return
		}

		if id == "" {
			err = s.inventory.AddCategory(r.Context(), in)
		} else {
			if original, ok := lo.Find(existing, func(c inventory.Category) bool { return c.ID == id }); ok &&
				original.Name == in.Name && original.Description == in.Description {
				redirectWithNotice(w, r, RouteAdminCategories, "No changes detected.")
				return
			}
			err = s.inventory.UpdateCategory(r.Context(), id, in)
		}
		if err != nil {
			actionFailed(w, r, RouteAdminCategories, err)
			return
		}
		redirectWithNotice(w, r, RouteAdminCategories, lo.Ternary(id == "", "Category Added!", "Category Updated!"))
	}
}

func (s *Server) AdminDeleteCategoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.inventory.DeleteCategory(r.Context(), r.PathValue("id")); err != nil {
			actionFailed(w, r, RouteAdminCategories, err)
			return
		}
		redirectWithNotice(w, r, RouteAdminCategories, "Category deleted")
	}
}

// Products

type productsData struct {
	Catalog *inventory.Catalog
	Query   string
	Editing inventory.Product
	Action  string
}

func (s *Server) AdminProductsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		catalog, err := s.inventory.Products(r.Context())
		if catalog == nil {
			catalog = &inventory.Catalog{}
		}
		q := r.URL.Query().Get("q")

		data := productsData{Catalog: catalog, Query: q}
		if editing, ok := lo.Find(catalog.Products, func(p inventory.Product) bool { return p.ID == r.URL.Query().Get("edit") }); ok {
			data.Editing = editing
		}
		catalog.Products = lo.Filter(catalog.Products, func(p inventory.Product, _ int) bool { return matchesQuery(p.Name, q) })
		data.Action = itemAction(RouteAdminProducts, data.Editing.ID)

		s.renderPage(w, r, page{Title: "Products", Template: "admin_products.html", Data: data, Error: screenError(r, err)})
	}
}

func productInputFromForm(r *http.Request) (inventory.ProductInput, error) {
	in := inventory.ProductInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Supplier:    r.FormValue("supplier"),
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue("price")), 64)
	if err != nil {
		return in, &inventory.ValidationError{Message: "Price must be a number"}
	}
	stock, err := strconv.Atoi(strings.TrimSpace(r.FormValue("stock")))
	if err != nil {
		return in, &inventory.ValidationError{Message: "Stock must be a whole number"}
	}
	in.Price, in.Stock = price, stock
	return in, in.Normalize()
}

func (s *Server) AdminSaveProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		in, err := productInputFromForm(r)
		if err != nil {
			actionFailed(w, r, RouteAdminProducts, err)
			return
		}

		if id == "" {
			err = s.inventory.AddProduct(r.Context(), in)
		} else {
			err = s.inventory.UpdateProduct(r.Context(), id, in)
		}
		if err != nil {
			actionFailed(w, r, RouteAdminProducts, err)
			return
		}
		redirectWithNotice(w, r, RouteAdminProducts, lo.Ternary(id == "", "Product Added!", "Product Updated!"))
	}
}

func (s *Server) AdminDeleteProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.inventory.DeleteProduct(r.Context(), r.PathValue("id")); err != nil {
			actionFailed(w, r, RouteAdminProducts, err)
			return
		}
		redirectWithNotice(w, r, RouteAdminProducts, "Product deleted")
	}
}

// Suppliers

type suppliersData struct {
	Suppliers []inventory.Supplier
	Query     string
	Editing   inventory.Supplier
	Action    string
}

func (s *Server) AdminSuppliersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		suppliers, err := s.inventory.Suppliers(r.Context())
		q := r.URL.Query().Get("q")

		data := suppliersData{
			Suppliers: lo.Filter(suppliers, func(sup inventory.Supplier, _ int) bool { return matchesQuery(sup.Name, q) }),
			Query:     q,
		}
		if editing, ok := lo.Find(suppliers, func(sup inventory.Supplier) bool { return sup.ID == r.URL.Query().Get("edit") }); ok {
			data.Editing = editing
		}
		data.Action = itemAction(RouteAdminSuppliers, data.Editing.ID)

		s.renderPage(w, r, page{Title: "Suppliers", Template: "admin_suppliers.html", Data: data, Error: screenError(r, err)})
	}
}

func (s *Server) AdminSaveSupplierHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		in := inventory.SupplierInput{
			Name:    r.FormValue("name"),
			Email:   r.FormValue("email"),
			Phone:   r.FormValue("phone"),
			Address: r.FormValue("address"),
		}
		err := in.Normalize()
		if err == nil {
			if id == "" {
				err = s.inventory.AddSupplier(r.Context(), in)
			} else {
				err = s.inventory.UpdateSupplier(r.Context(), id, in)
			}
		}
		if err != nil {
			actionFailed(w, r, RouteAdminSuppliers, err)
			return
		}
		redirectWithNotice(w, r, RouteAdminSuppliers, lo.Ternary(id == "", "Supplier Added!", "Supplier Updated!"))
	}
}

func (s *Server) AdminDeleteSupplierHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.inventory.DeleteSupplier(r.Context(), r.PathValue("id")); err != nil {
			actionFailed(w, r, RouteAdminSuppliers, err)
			return
		}
		redirectWithNotice(w, r, RouteAdminSuppliers, "Supplier deleted")
	}
}

// Users

type usersData struct {
	Users []inventory.User
	Query string
}

func (s *Server) AdminUsersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.inventory.Users(r.Context())
		q := r.URL.Query().Get("q")
		data := usersData{
			Users: lo.Filter(list, func(u inventory.User, _ int) bool { return matchesQuery(u.Name, q) }),
			Query: q,
		}
		s.renderPage(w, r, page{Title: "Users", Template: "admin_users.html", Data: data, Error: screenError(r, err)})
	}
}

func (s *Server) AdminAddUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in := inventory.UserInput{
			Name:     r.FormValue("name"),
			Email:    r.FormValue("email"),
			Password: r.FormValue("password"),
			Address:  r.FormValue("address"),
			Role:     r.FormValue("role"),
		}
		err := in.Normalize()
		if err == nil {
			err = s.inventory.AddUser(r.Context(), in)
		}
		if err != nil {
			actionFailed(w, r, RouteAdminUsers, err)
			return
		}
		redirectWithNotice(w, r, RouteAdminUsers, "User Added!")
	}
}

func (s *Server) AdminDeleteUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.inventory.DeleteUser(r.Context(), r.PathValue("id")); err != nil {
			actionFailed(w, r, RouteAdminUsers, err)
			return
		}
		redirectWithNotice(w, r, RouteAdminUsers, "User deleted")
	}
}

// Orders

type ordersData struct {
	Orders   []inventory.Order
	ShowUser bool
}

func (s *Server) AdminOrdersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := s.inventory.Orders(r.Context())
		s.renderPage(w, r, page{
			Title:    "All Orders",
			Template: "orders.html",
			Data:     ordersData{Orders: orders, ShowUser: true},
			Error:    screenError(r, err),
		})
	}
}

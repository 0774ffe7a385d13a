// Package apifake is an in-memory stand-in for the remote inventory API. It
// issues and revokes bearer tokens, answers revoked tokens with the same 401
// the real API sends, and keeps every collection in memory.
package apifake

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/ims-console/internal/errors"
	"github.com/jrsteele09/ims-console/inventory"
	"github.com/jrsteele09/ims-console/users"
	"github.com/samber/lo"
	"golang.org/x/crypto/bcrypt"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

type account struct {
	inventory.User
	passwordHash []byte
}

type productRecord struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Stock       int
	CategoryID  string
	SupplierID  string
}

type orderRecord struct {
	ID         string
	ProductID  string
	UserID     string
	Quantity   int
	TotalPrice float64
	OrderDate  time.Time
}

type failure struct {
	status  int
	message string
}

// API is an http.Handler serving the inventory API routes without the /api
// prefix. Mount it with http.StripPrefix.
type API struct {
	secret []byte
	mux    *http.ServeMux

	mu          sync.RWMutex
	accounts    []*account
	categories  []inventory.Category
	suppliers   []inventory.Supplier
	products    []productRecord
	orders      []orderRecord
	revoked     map[string]time.Time
	failures    []failure
	authHeaders []string
}

func New() *API {
	a := &API{
		secret:  []byte(uuid.NewString()),
		mux:     http.NewServeMux(),
		revoked: make(map[string]time.Time),
	}
	a.registerRoutes()
	return a
}

func (a *API) registerRoutes() {
	a.mux.HandleFunc("POST /auth/login", a.handleLogin)

	a.mux.HandleFunc("GET /category", a.authed(a.handleListCategories))
	a.mux.HandleFunc("POST /category/add", a.authed(a.handleAddCategory, users.RoleAdministrator))
	a.mux.HandleFunc("PUT /category/{id}", a.authed(a.handleUpdateCategory, users.RoleAdministrator))
	a.mux.HandleFunc("DELETE /category/{id}", a.authed(a.handleDeleteCategory, users.RoleAdministrator))

	a.mux.HandleFunc("GET /products", a.authed(a.handleListProducts))
	a.mux.HandleFunc("POST /products/add", a.authed(a.handleAddProduct, users.RoleAdministrator))
	a.mux.HandleFunc("PUT /products/{id}", a.authed(a.handleUpdateProduct, users.RoleAdministrator))
	a.mux.HandleFunc("DELETE /products/{id}", a.authed(a.handleDeleteProduct, users.RoleAdministrator))

	a.mux.HandleFunc("GET /supplier", a.authed(a.handleListSuppliers, users.RoleAdministrator))
	a.mux.HandleFunc("POST /supplier/add", a.authed(a.handleAddSupplier, users.RoleAdministrator))
	a.mux.HandleFunc("PUT /supplier/{id}", a.authed(a.handleUpdateSupplier, users.RoleAdministrator))
	a.mux.HandleFunc("DELETE /supplier/{id}", a.authed(a.handleDeleteSupplier, users.RoleAdministrator))

	a.mux.HandleFunc("GET /users", a.authed(a.handleListUsers, users.RoleAdministrator))
	a.mux.HandleFunc("POST /users/add", a.authed(a.handleAddUser, users.RoleAdministrator))
	a.mux.HandleFunc("DELETE /users/{id}", a.authed(a.handleDeleteUser, users.RoleAdministrator))

	a.mux.HandleFunc("GET /order", a.authed(a.handleListOrders, users.RoleAdministrator))
	a.mux.HandleFunc("GET /order/{userId}", a.authed(a.handleUserOrders))
	a.mux.HandleFunc("POST /order/add", a.authed(a.handlePlaceOrder))

	a.mux.HandleFunc("GET /dashboard", a.authed(a.handleDashboard, users.RoleAdministrator))
}

func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	a.authHeaders = append(a.authHeaders, r.Header.Get("Authorization"))
	var next *failure
	if len(a.failures) > 0 {
		next = &a.failures[0]
		a.failures = a.failures[1:]
	}
	a.mu.Unlock()

	if next != nil {
		writeJSON(w, next.status, map[string]any{"success": false, "message": next.message})
		return
	}
	a.mux.ServeHTTP(w, r)
}

// FailNext makes the next request fail with status and message, whatever
// its path. Calls queue up.
func (a *API) FailNext(status int, message string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failures = append(a.failures, failure{status: status, message: message})
}

// AuthHeaders returns the Authorization header of every request received,
// in arrival order
func (a *API) AuthHeaders() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]string(nil), a.authHeaders...)
}

// Seeding

// AddUser creates an account. role is stored as given, the way the API
// stores whatever the admin form sent.
func (a *API) AddUser(name, email, password, address, role string) inventory.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	u := inventory.User{ID: uuid.NewString(), Name: name, Email: email, Address: address, Role: role}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.accounts = append(a.accounts, &account{User: u, passwordHash: hash})
	return u
}

func (a *API) AddCategory(name, description string) inventory.Category {
	c := inventory.Category{ID: uuid.NewString(), Name: name, Description: description}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.categories = append(a.categories, c)
	return c
}

func (a *API) AddSupplier(name, email string) inventory.Supplier {
	s := inventory.Supplier{ID: uuid.NewString(), Name: name, Email: email}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.suppliers = append(a.suppliers, s)
	return s
}

func (a *API) AddProduct(name string, price float64, stock int, categoryID, supplierID string) inventory.Product {
	p := productRecord{ID: uuid.NewString(), Name: name, Price: price, Stock: stock, CategoryID: categoryID, SupplierID: supplierID}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.products = append(a.products, p)
	return a.populateProduct(p)
}

// Lookups, called with a.mu held

func (a *API) findAccount(pred func(*account) bool) (*account, int) {
	acc, idx, ok := lo.FindIndexOf(a.accounts, pred)
	if !ok {
		return nil, -1
	}
	return acc, idx
}

func (a *API) accountByEmail(email string) *account {
	acc, _ := a.findAccount(func(acc *account) bool { return strings.EqualFold(acc.Email, email) })
	return acc
}

func (a *API) accountByID(id string) *account {
	acc, _ := a.findAccount(func(acc *account) bool { return acc.ID == id })
	return acc
}

func (a *API) categoryRef(id string) inventory.Ref {
	c, ok := lo.Find(a.categories, func(c inventory.Category) bool { return c.ID == id })
	if !ok {
		return inventory.Ref{ID: id}
	}
	return inventory.Ref{ID: c.ID, Name: c.Name}
}

func (a *API) supplierRef(id string) inventory.Ref {
	s, ok := lo.Find(a.suppliers, func(s inventory.Supplier) bool { return s.ID == id })
	if !ok {
		return inventory.Ref{ID: id}
	}
	return inventory.Ref{ID: s.ID, Name: s.Name}
}

func (a *API) populateProduct(p productRecord) inventory.Product {
	return inventory.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    a.categoryRef(p.CategoryID),
		Supplier:    a.supplierRef(p.SupplierID),
	}
}

func (a *API) populateOrder(o orderRecord) inventory.Order {
	out := inventory.Order{
		ID:         o.ID,
		Quantity:   o.Quantity,
		TotalPrice: o.TotalPrice,
		OrderDate:  o.OrderDate,
	}
	if p, ok := lo.Find(a.products, func(p productRecord) bool { return p.ID == o.ProductID }); ok {
		ref := a.categoryRef(p.CategoryID)
		out.Product = inventory.OrderProduct{Name: p.Name, Category: inventory.Ref{Name: ref.Name}}
	}
	if acc := a.accountByID(o.UserID); acc != nil {
		out.User = inventory.OrderUser{Name: acc.Name, Address: acc.Address}
	}
	return out
}

// Responses

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}

func writeInvalid(w http.ResponseWriter, err error) {
	msg := err.Error()
	var ve *inventory.ValidationError
	if errors.As(err, &ve) {
		msg = ve.Message
	}
	writeError(w, http.StatusBadRequest, msg)
}

func writeOK(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": msg})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

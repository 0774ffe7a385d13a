package apifake

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/ims-console/inventory"
	"github.com/jrsteele09/ims-console/users"
	"github.com/samber/lo"
	"golang.org/x/crypto/bcrypt"
)

const lowStockThreshold = 5

// Categories

func (a *API) handleListCategories(w http.ResponseWriter, _ *http.Request, _ *account) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "categories": a.categories})
}

func (a *API) handleAddCategory(w http.ResponseWriter, r *http.Request, _ *account) {
	var in inventory.CategoryInput
	if !decode(w, r, &in) {
		return
	}
	if err := in.Normalize(); err != nil {
		writeInvalid(w, err)
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if err := in.CheckDuplicate(a.categories, ""); err != nil {
		writeError(w, http.StatusBadRequest, "Category already exists")
		return
	}
	a.categories = append(a.categories, inventory.Category{ID: uuid.NewString(), Name: in.Name, Description: in.Description})
	writeOK(w, "Category added successfully")
}

func (a *API) handleUpdateCategory(w http.ResponseWriter, r *http.Request, _ *account) {
	id := r.PathValue("id")
	var in inventory.CategoryInput
	if !decode(w, r, &in) {
		return
	}
	if err := in.Normalize(); err != nil {
		writeInvalid(w, err)
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	_, idx, ok := lo.FindIndexOf(a.categories, func(c inventory.Category) bool { return c.ID == id })
	if !ok {
		writeError(w, http.StatusNotFound, "Category not found")
		return
	}
	if err := in.CheckDuplicate(a.categories, id); err != nil {
		writeError(w, http.StatusBadRequest, "Category already exists")
		return
	}
	a.categories[idx].Name = in.Name
	a.categories[idx].Description = in.Description
	writeOK(w, "Category updated successfully")
}

func (a *API) handleDeleteCategory(w http.ResponseWriter, r *http.Request, _ *account) {
	id := r.PathValue("id")

	a.mu.Lock()
	defer a.mu.Unlock()
	if lo.ContainsBy(a.products, func(p productRecord) bool { return p.CategoryID == id }) {
		writeError(w, http.StatusBadRequest, "Cannot delete category with associated products")
		return
	}
	_, idx, ok := lo.FindIndexOf(a.categories, func(c inventory.Category) bool { return c.ID == id })
	if !ok {
		writeError(w, http.StatusNotFound, "Category not found")
		return
	}
	a.categories = append(a.categories[:idx], a.categories[idx+1:]...)
	writeOK(w, "Category deleted successfully")
}

// Products

func (a *API) handleListProducts(w http.ResponseWriter, _ *http.Request, _ *account) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"products":   lo.Map(a.products, func(p productRecord, _ int) inventory.Product { return a.populateProduct(p) }),
		"categories": a.categories,
		"suppliers":  a.suppliers,
	})
}

// validProductRefs must be called with a.mu held
func (a *API) validProductRefs(in inventory.ProductInput) bool {
	return lo.ContainsBy(a.categories, func(c inventory.Category) bool { return c.ID == in.Category }) &&
		lo.ContainsBy(a.suppliers, func(s inventory.Supplier) bool { return s.ID == in.Supplier })
}

func (a *API) handleAddProduct(w http.ResponseWriter, r *http.Request, _ *account) {
	var in inventory.ProductInput
	if !decode(w, r, &in) {
		return
	}
	if err := in.Normalize(); err != nil {
		writeInvalid(w, err)
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.validProductRefs(in) {
		writeError(w, http.StatusBadRequest, "Unknown category or supplier")
		return
	}
	a.products = append(a.products, productRecord{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		CategoryID:  in.Category,
		SupplierID:  in.Supplier,
	})
	writeOK(w, "Product added successfully")
}

func (a *API) handleUpdateProduct(w http.ResponseWriter, r *http.Request, _ *account) {
	id := r.PathValue("id")
	var in inventory.ProductInput
	if !decode(w, r, &in) {
		return
	}
	if err := in.Normalize(); err != nil {
		writeInvalid(w, err)
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	_, idx, ok := lo.FindIndexOf(a.products, func(p productRecord) bool { return p.ID == id })
	if !ok {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	if !a.validProductRefs(in) {
		writeError(w, http.StatusBadRequest, "Unknown category or supplier")
		return
	}
	a.products[idx] = productRecord{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		CategoryID:  in.Category,
		SupplierID:  in.Supplier,
	}
	writeOK(w, "Product updated successfully")
}

func (a *API) handleDeleteProduct(w http.ResponseWriter, r *http.Request, _ *account) {
	id := r.PathValue("id")

	a.mu.Lock()
	defer a.mu.Unlock()
	_, idx, ok := lo.FindIndexOf(a.products, func(p productRecord) bool { return p.ID == id })
	if !ok {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	a.products = append(a.products[:idx], a.products[idx+1:]...)
	writeOK(w, "Product deleted successfully")
}

// Suppliers

func (a *API) handleListSuppliers(w http.ResponseWriter, _ *http.Request, _ *account) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "suppliers": a.suppliers})
}

func (a *API) handleAddSupplier(w http.ResponseWriter, r *http.Request, _ *account) {
	var in inventory.SupplierInput
	if !decode(w, r, &in) {
		return
	}
	if err := in.Normalize(); err != nil {
		writeInvalid(w, err)
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.suppliers = append(a.suppliers, inventory.Supplier{
		ID:      uuid.NewString(),
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Address: in.Address,
	})
	writeOK(w, "Supplier added successfully")
}

func (a *API) handleUpdateSupplier(w http.ResponseWriter, r *http.Request, _ *account) {
	id := r.PathValue("id")
	var in inventory.SupplierInput
	if !decode(w, r, &in) {
		return
	}
	if err := in.Normalize(); err != nil {
		writeInvalid(w, err)
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	_, idx, ok := lo.FindIndexOf(a.suppliers, func(s inventory.Supplier) bool { return s.ID == id })
	if !ok {
		writeError(w, http.StatusNotFound, "Supplier not found")
		return
	}
	a.suppliers[idx] = inventory.Supplier{ID: id, Name: in.Name, Email: in.Email, Phone: in.Phone, Address: in.Address}
	writeOK(w, "Supplier updated successfully")
}

func (a *API) handleDeleteSupplier(w http.ResponseWriter, r *http.Request, _ *account) {
	id := r.PathValue("id")

	a.mu.Lock()
	defer a.mu.Unlock()
	if lo.ContainsBy(a.products, func(p productRecord) bool { return p.SupplierID == id }) {
		writeError(w, http.StatusBadRequest, "Cannot delete supplier with associated products")
		return
	}
	_, idx, ok := lo.FindIndexOf(a.suppliers, func(s inventory.Supplier) bool { return s.ID == id })
	if !ok {
		writeError(w, http.StatusNotFound, "Supplier not found")
		return
	}
	a.suppliers = append(a.suppliers[:idx], a.suppliers[idx+1:]...)
	writeOK(w, "Supplier deleted successfully")
}

// Users

func (a *API) handleListUsers(w http.ResponseWriter, _ *http.Request, _ *account) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"users":   lo.Map(a.accounts, func(acc *account, _ int) inventory.User { return acc.User }),
	})
}

func (a *API) handleAddUser(w http.ResponseWriter, r *http.Request, _ *account) {
	var in inventory.UserInput
	if !decode(w, r, &in) {
		return
	}
	if err := in.Normalize(); err != nil {
		writeInvalid(w, err)
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.MinCost)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid password")
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.accountByEmail(in.Email) != nil {
		writeError(w, http.StatusBadRequest, "User already exists")
		return
	}
	a.accounts = append(a.accounts, &account{
		User:         inventory.User{ID: uuid.NewString(), Name: in.Name, Email: in.Email, Address: in.Address, Role: in.Role},
		passwordHash: hash,
	})
	writeOK(w, "User added successfully")
}

// handleDeleteUser also ends every session of the deleted account, since
// its tokens no longer resolve to an account.
func (a *API) handleDeleteUser(w http.ResponseWriter, r *http.Request, caller *account) {
	id := r.PathValue("id")
	if id == caller.ID {
		writeError(w, http.StatusBadRequest, "You cannot delete your own account")
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	_, idx := a.findAccount(func(acc *account) bool { return acc.ID == id })
	if idx < 0 {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	a.accounts = append(a.accounts[:idx], a.accounts[idx+1:]...)
	writeOK(w, "User deleted successfully")
}

// Orders

func (a *API) handleListOrders(w http.ResponseWriter, _ *http.Request, _ *account) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"orders":  lo.Map(a.orders, func(o orderRecord, _ int) inventory.Order { return a.populateOrder(o) }),
	})
}

// handleUserOrders lets administrators read anyone's orders and everyone
// else only their own.
func (a *API) handleUserOrders(w http.ResponseWriter, r *http.Request, caller *account) {
	userID := r.PathValue("userId")
	role, _ := users.ParseRole(caller.Role)
	if userID != caller.ID && role != users.RoleAdministrator {
		writeJSON(w, http.StatusForbidden, map[string]any{"success": false, "message": "Forbidden - Not your orders"})
		return
	}

	a.mu.RLock()
	defer a.mu.RUnlock()
	own := lo.Filter(a.orders, func(o orderRecord, _ int) bool { return o.UserID == userID })
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"orders":  lo.Map(own, func(o orderRecord, _ int) inventory.Order { return a.populateOrder(o) }),
	})
}

func (a *API) handlePlaceOrder(w http.ResponseWriter, r *http.Request, caller *account) {
	var in inventory.OrderInput
	if !decode(w, r, &in) {
		return
	}
	if err := in.Normalize(); err != nil {
		writeInvalid(w, err)
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	_, idx, ok := lo.FindIndexOf(a.products, func(p productRecord) bool { return p.ID == in.ProductID })
	if !ok {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	if a.products[idx].Stock < in.Quantity {
		writeError(w, http.StatusBadRequest, "Not enough stock")
		return
	}
	a.products[idx].Stock -= in.Quantity
	a.orders = append(a.orders, orderRecord{
		ID:         uuid.NewString(),
		ProductID:  in.ProductID,
		UserID:     caller.ID,
		Quantity:   in.Quantity,
		TotalPrice: a.products[idx].Price * float64(in.Quantity),
		OrderDate:  NowTimeFunc(),
	})
	writeOK(w, "Order placed successfully")
}

// Dashboard

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (a *API) handleDashboard(w http.ResponseWriter, _ *http.Request, _ *account) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	now := NowTimeFunc()
	stockItem := func(p productRecord, _ int) inventory.StockItem {
		return inventory.StockItem{Name: p.Name, Stock: p.Stock, Category: a.categoryRef(p.CategoryID)}
	}

	d := inventory.Dashboard{
		TotalProducts:  len(a.products),
		TotalStock:     lo.SumBy(a.products, func(p productRecord) int { return p.Stock }),
		OrdersToday:    lo.CountBy(a.orders, func(o orderRecord) bool { return sameDay(o.OrderDate, now) }),
		Revenue:        lo.SumBy(a.orders, func(o orderRecord) float64 { return o.TotalPrice }),
		TotalSuppliers: len(a.suppliers),
		TotalUsers:     len(a.accounts),
		OutOfStock:     lo.Map(lo.Filter(a.products, func(p productRecord, _ int) bool { return p.Stock == 0 }), stockItem),
		LowStock: lo.Map(lo.Filter(a.products, func(p productRecord, _ int) bool {
			return p.Stock > 0 && p.Stock < lowStockThreshold
		}), stockItem),
		HighestSaleProduct: &inventory.TopProduct{Message: "No sales yet"},
	}

	sold := make(map[string]int)
	for _, o := range a.orders {
		sold[o.ProductID] += o.Quantity
	}
	best, bestQty := "", 0
	for _, p := range a.products {
		if q := sold[p.ID]; q > bestQty {
			best, bestQty = p.ID, q
		}
	}
	if p, ok := lo.Find(a.products, func(p productRecord) bool { return p.ID == best }); ok && bestQty > 0 {
		d.HighestSaleProduct = &inventory.TopProduct{
			Name:          p.Name,
			Category:      a.categoryRef(p.CategoryID).Name,
			TotalQuantity: bestQty,
		}
	}

	writeJSON(w, http.StatusOK, d)
}

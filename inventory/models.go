package inventory

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/jrsteele09/ims-console/users"
)

// Ref is a reference to another document. The API sends either the bare id
// or the populated document.
type Ref struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"name,omitempty"`
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte(`"`)) {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = Ref{ID: id}
		return nil
	}
	type plain Ref
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = Ref(p)
	return nil
}

type Category struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Product struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    Ref     `json:"category"`
	Supplier    Ref     `json:"supplier"`
}

// InStock reports whether at least one unit can be ordered
func (p Product) InStock() bool {
	return p.Stock > 0
}

type Supplier struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// User is an account as listed by the API. Role is kept as sent; use
// CanonicalRole to compare it.
type User struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Role    string `json:"role"`
}

func (u User) CanonicalRole() (users.RoleType, error) {
	return users.ParseRole(u.Role)
}

type OrderProduct struct {
	Name     string `json:"name"`
	Category Ref    `json:"category"`
}

type OrderUser struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type Order struct {
	ID         string       `json:"_id"`
	Product    OrderProduct `json:"product"`
	Quantity   int          `json:"quantity"`
	TotalPrice float64      `json:"totalPrice"`
	OrderDate  time.Time    `json:"orderDate"`
	User       OrderUser    `json:"user"`
}

type StockItem struct {
	Name     string `json:"name"`
	Stock    int    `json:"stock"`
	Category Ref    `json:"category"`
}

// TopProduct is the best selling product. When nothing has sold yet only
// Message is set.
type TopProduct struct {
	Name          string `json:"name,omitempty"`
	Category      string `json:"category,omitempty"`
	TotalQuantity int    `json:"totalQuantity,omitempty"`
	Message       string `json:"message,omitempty"`
}

type Dashboard struct {
	TotalProducts      int         `json:"totalProducts"`
	TotalStock         int         `json:"totalStock"`
	OrdersToday        int         `json:"ordersToday"`
	Revenue            float64     `json:"revenue"`
	TotalSuppliers     int         `json:"totalSuppliers"`
	TotalUsers         int         `json:"totalUsers"`
	OutOfStock         []StockItem `json:"outOfStock"`
	HighestSaleProduct *TopProduct `json:"highestSaleProduct"`
	LowStock           []StockItem `json:"lowStock"`
}

// Catalog is the product listing together with the choices for the
// product form
type Catalog struct {
	Products   []Product  `json:"products"`
	Categories []Category `json:"categories"`
	Suppliers  []Supplier `json:"suppliers"`
}

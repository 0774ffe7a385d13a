// Package inventory is the typed client for the remote inventory API.
package inventory

import (
	"context"
	"net/url"
)

// API is the transport the client sends requests through
type API interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, in, out any) error
	Put(ctx context.Context, path string, in, out any) error
	Delete(ctx context.Context, path string, out any) error
}

type Client struct {
	api API
}

func NewClient(api API) *Client {
	return &Client{api: api}
}

func itemPath(base, id string) string {
	return base + "/" + url.PathEscape(id)
}

// Categories

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var resp struct {
		Categories []Category `json:"categories"`
	}
	if err := c.api.Get(ctx, "/category", &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

func (c *Client) AddCategory(ctx context.Context, in CategoryInput) error {
	return c.api.Post(ctx, "/category/add", in, nil)
}

func (c *Client) UpdateCategory(ctx context.Context, id string, in CategoryInput) error {
	return c.api.Put(ctx, itemPath("/category", id), in, nil)
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.api.Delete(ctx, itemPath("/category", id), nil)
}

// Products

// Products returns the product list along with categories and suppliers
func (c *Client) Products(ctx context.Context) (*Catalog, error) {
	var resp Catalog
	if err := c.api.Get(ctx, "/products", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AddProduct(ctx context.Context, in ProductInput) error {
	return c.api.Post(ctx, "/products/add", in, nil)
}

func (c *Client) UpdateProduct(ctx context.Context, id string, in ProductInput) error {
	return c.api.Put(ctx, itemPath("/products", id), in, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.api.Delete(ctx, itemPath("/products", id), nil)
}

// Suppliers

func (c *Client) Suppliers(ctx context.Context) ([]Supplier, error) {
	var resp struct {
		Suppliers []Supplier `json:"suppliers"`
	}
	if err := c.api.Get(ctx, "/supplier", &resp); err != nil {
		return nil, err
	}
	return resp.Suppliers, nil
}

func (c *Client) AddSupplier(ctx context.Context, in SupplierInput) error {
	return c.api.Post(ctx, "/supplier/add", in, nil)
}

func (c *Client) UpdateSupplier(ctx context.Context, id string, in SupplierInput) error {
	return c.api.Put(ctx, itemPath("/supplier", id), in, nil)
}

func (c *Client) DeleteSupplier(ctx context.Context, id string) error {
	return c.api.Delete(ctx, itemPath("/supplier", id), nil)
}

// Users

func (c *Client) Users(ctx context.Context) ([]User, error) {
	var resp struct {
		Users []User `json:"users"`
	}
	if err := c.api.Get(ctx, "/users", &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

func (c *Client) AddUser(ctx context.Context, in UserInput) error {
	return c.api.Post(ctx, "/users/add", in, nil)
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.api.Delete(ctx, itemPath("/users", id), nil)
}

// Orders

// Orders returns every order. Administrator only.
func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	return c.orders(ctx, "/order")
}

// UserOrders returns the orders placed by userID
func (c *Client) UserOrders(ctx context.Context, userID string) ([]Order, error) {
	return c.orders(ctx, itemPath("/order", userID))
}

func (c *Client) orders(ctx context.Context, path string) ([]Order, error) {
	var resp struct {
		Orders []Order `json:"orders"`
	}
	if err := c.api.Get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

func (c *Client) PlaceOrder(ctx context.Context, in OrderInput) error {
	return c.api.Post(ctx, "/order/add", in, nil)
}

// Dashboard returns the administrator summary
func (c *Client) Dashboard(ctx context.Context) (*Dashboard, error) {
	var resp Dashboard
	if err := c.api.Get(ctx, "/dashboard", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

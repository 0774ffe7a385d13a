package inventory_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/ims-console/credstore"
	"github.com/jrsteele09/ims-console/gateway"
	"github.com/jrsteele09/ims-console/inventory"
	"github.com/jrsteele09/ims-console/inventory/apifake"
	"github.com/jrsteele09/ims-console/users"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	api    *apifake.API
	client *inventory.Client
	gw     *gateway.Gateway
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	api := apifake.New()
	srv := httptest.NewServer(http.StripPrefix("/api", api))
	t.Cleanup(srv.Close)

	gw, err := gateway.New(srv.URL + "/api")
	require.NoError(t, err)
	return &fixture{api: api, client: inventory.NewClient(gw), gw: gw}
}

// signIn logs in through the gateway and returns a context carrying the
// resulting credentials
func (f *fixture) signIn(t *testing.T, email, password string) context.Context {
	t.Helper()
	resp, err := f.gw.Login(context.Background(), gateway.LoginRequest{Email: email, Password: password})
	require.NoError(t, err)

	store := credstore.NewMemory()
	require.NoError(t, store.Save(resp.Token, resp.User))
	return credstore.NewContext(context.Background(), store)
}

func TestRef_UnmarshalJSON(t *testing.T) {
	var p inventory.Product
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"p","category":"c-1","supplier":{"_id":"s-1","name":"Acme"}}`), &p))
	require.Equal(t, inventory.Ref{ID: "c-1"}, p.Category)
	require.Equal(t, inventory.Ref{ID: "s-1", Name: "Acme"}, p.Supplier)
}

func TestUser_CanonicalRole(t *testing.T) {
	role, err := inventory.User{Role: "Customer"}.CanonicalRole()
	require.NoError(t, err)
	require.Equal(t, users.RoleOperator, role)
}

func TestClient_AdminCatalogue(t *testing.T) {
	f := newFixture(t)
	f.api.AddUser("Ada", "ada@example.com", "pw", "1 Loop", "Admin")
	ctx := f.signIn(t, "ada@example.com", "pw")

	require.NoError(t, f.client.AddCategory(ctx, inventory.CategoryInput{Name: "Tools", Description: "hand tools"}))
	categories, err := f.client.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)

	require.NoError(t, f.client.UpdateCategory(ctx, categories[0].ID, inventory.CategoryInput{Name: "Hand tools"}))
	require.NoError(t, f.client.AddSupplier(ctx, inventory.SupplierInput{Name: "Acme"}))
	suppliers, err := f.client.Suppliers(ctx)
	require.NoError(t, err)
	require.Len(t, suppliers, 1)

	require.NoError(t, f.client.AddProduct(ctx, inventory.ProductInput{
		Name: "Hammer", Price: 9.5, Stock: 4, Category: categories[0].ID, Supplier: suppliers[0].ID,
	}))
	catalog, err := f.client.Products(ctx)
	require.NoError(t, err)
	require.Len(t, catalog.Products, 1)
	require.Equal(t, "Hand tools", catalog.Products[0].Category.Name)
	require.Equal(t, "Acme", catalog.Products[0].Supplier.Name)
	require.Len(t, catalog.Categories, 1)
	require.Len(t, catalog.Suppliers, 1)

	err = f.client.DeleteCategory(ctx, categories[0].ID)
	var apiErr *gateway.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

	require.NoError(t, f.client.DeleteProduct(ctx, catalog.Products[0].ID))
	require.NoError(t, f.client.DeleteCategory(ctx, categories[0].ID))
	require.NoError(t, f.client.DeleteSupplier(ctx, suppliers[0].ID))

	dashboard, err := f.client.Dashboard(ctx)
	require.NoError(t, err)
	require.Zero(t, dashboard.TotalProducts)
	require.Equal(t, 1, dashboard.TotalUsers)
}

func TestClient_Users(t *testing.T) {
	f := newFixture(t)
	f.api.AddUser("Ada", "ada@example.com", "pw", "1 Loop", "Admin")
	ctx := f.signIn(t, "ada@example.com", "pw")

	in := inventory.UserInput{Name: "Olu", Email: "olu@example.com", Password: "pw", Address: "2 Loop", Role: "Operator"}
	require.NoError(t, in.Normalize())
	require.NoError(t, f.client.AddUser(ctx, in))

	list, err := f.client.Users(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Customer", list[1].Role)

	require.NoError(t, f.client.DeleteUser(ctx, list[1].ID))
	list, err = f.client.Users(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestClient_OperatorOrders(t *testing.T) {
	f := newFixture(t)
	olu := f.api.AddUser("Olu", "olu@example.com", "pw", "2 Loop", "Customer")
	cat := f.api.AddCategory("Tools", "")
	sup := f.api.AddSupplier("Acme", "")
	hammer := f.api.AddProduct("Hammer", 10, 5, cat.ID, sup.ID)
	ctx := f.signIn(t, "olu@example.com", "pw")

	require.NoError(t, f.client.PlaceOrder(ctx, inventory.OrderInput{ProductID: hammer.ID, Quantity: 3}))
	orders, err := f.client.UserOrders(ctx, olu.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, "Hammer", orders[0].Product.Name)
	require.Equal(t, "Tools", orders[0].Product.Category.Name)
	require.Equal(t, "Olu", orders[0].User.Name)
	require.Equal(t, 30.0, orders[0].TotalPrice)

	_, err = f.client.Orders(ctx)
	var apiErr *gateway.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	require.NotErrorIs(t, err, gateway.ErrSessionInvalidated)
}

package server

import (
	"net/http"
	"strconv"

	"github.com/jrsteele09/ims-console/inventory"
	"github.com/jrsteele09/ims-console/sessions"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

type operatorProductsData struct {
	Products   []inventory.Product
	Categories []inventory.Category
	Orders     []inventory.Order
	Query      string
	Category   string
	OrderPath  string
}

// OperatorProductsHandler is the operator landing screen: the product
// catalogue beside the operator's own orders, fetched together. Neither
// fetch cancels the other.
func (s *Server) OperatorProductsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, _ := sessions.FromContext(r.Context()).CurrentUser()

		var catalog *inventory.Catalog
		var orders []inventory.Order
		ctx := r.Context()
		var g errgroup.Group
		g.Go(func() error {
			var err error
			catalog, err = s.inventory.Products(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			orders, err = s.inventory.UserOrders(ctx, profile.ID)
			return err
		})
		err := g.Wait()
		if catalog == nil {
			catalog = &inventory.Catalog{}
		}

		q := r.URL.Query().Get("q")
		category := r.URL.Query().Get("category")
		data := operatorProductsData{
			Products: lo.Filter(catalog.Products, func(p inventory.Product, _ int) bool {
				return matchesQuery(p.Name, q) && (category == "" || p.Category.ID == category)
			}),
			Categories: catalog.Categories,
			Orders:     orders,
			Query:      q,
			Category:   category,
			OrderPath:  RouteOperatorOrdersAdd,
		}
		s.renderPage(w, r, page{Title: "Browse Products", Template: "operator_products.html", Data: data, Error: screenError(r, err)})
	}
}

func (s *Server) OperatorPlaceOrderHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quantity, _ := strconv.Atoi(r.FormValue("quantity"))
		price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
		in := inventory.OrderInput{
			ProductID: r.FormValue("productId"),
			Quantity:  quantity,
			Total:     price * float64(quantity),
		}
		err := in.Normalize()
		if err == nil {
			err = s.inventory.PlaceOrder(r.Context(), in)
		}
		if err != nil {
			actionFailed(w, r, RouteOperator, err)
			return
		}
		redirectWithNotice(w, r, RouteOperator, "Order placed!")
	}
}

func (s *Server) OperatorOrdersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, _ := sessions.FromContext(r.Context()).CurrentUser()
		orders, err := s.inventory.UserOrders(r.Context(), profile.ID)
		s.renderPage(w, r, page{
			Title:    "My Orders",
			Template: "orders.html",
			Data:     ordersData{Orders: orders},
			Error:    screenError(r, err),
		})
	}
}

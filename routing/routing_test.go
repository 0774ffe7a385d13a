package routing_test

import (
	"context"
	"sync"
	"testing"

	"github.com/jrsteele09/ims-console/routing"
	"github.com/jrsteele09/ims-console/users"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

var (
	admin    = users.Profile{ID: "u-1", Name: "Ada", Role: users.RoleAdministrator}
	operator = users.Profile{ID: "u-2", Name: "Olu", Role: users.RoleOperator}
	stranger = users.Profile{ID: "u-3", Name: "Zed", Role: users.RoleType("Auditor")}
)

func TestAdmit(t *testing.T) {
	tests := []struct {
		name     string
		profile  users.Profile
		ok       bool
		required []users.RoleType
		want     routing.Decision
	}{
		{"absent", users.Profile{}, false, []users.RoleType{users.RoleAdministrator}, routing.Decision{Redirect: routing.PathLogin}},
		{"operator on admin screen", operator, true, []users.RoleType{users.RoleAdministrator}, routing.Decision{Redirect: routing.PathUnauthorized}},
		{"admin on admin screen", admin, true, []users.RoleType{users.RoleAdministrator}, routing.Decision{Admitted: true}},
		{"operator on operator screen", operator, true, []users.RoleType{users.RoleOperator}, routing.Decision{Admitted: true}},
		{"either role", admin, true, []users.RoleType{users.RoleOperator, users.RoleAdministrator}, routing.Decision{Admitted: true}},
		{"empty set admits no one", admin, true, nil, routing.Decision{Redirect: routing.PathUnauthorized}},
		{"absent with empty set", users.Profile{}, false, nil, routing.Decision{Redirect: routing.PathLogin}},
		{"unknown role", stranger, true, []users.RoleType{users.RoleOperator}, routing.Decision{Redirect: routing.PathUnauthorized}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, routing.Admit(tt.profile, tt.ok, tt.required...))
		})
	}
}

func TestEntryPath(t *testing.T) {
	require.Equal(t, routing.PathLogin, routing.EntryPath(users.Profile{}, false))
	require.Equal(t, routing.PathAdminLanding, routing.EntryPath(admin, true))
	require.Equal(t, routing.PathOperatorLanding, routing.EntryPath(operator, true))
	require.Equal(t, routing.PathLogin, routing.EntryPath(stranger, true))
}

func TestMenu(t *testing.T) {
	labels := func(items []routing.MenuItem) []string {
		return lo.Map(items, func(item routing.MenuItem, _ int) string { return item.Label })
	}

	items, logout := routing.Menu(users.RoleAdministrator)
	require.Equal(t, []string{"Dashboard", "Suppliers", "Categories", "Products", "Users", "Orders", "Profile"}, labels(items))
	require.True(t, items[0].Index)
	require.Equal(t, routing.PathAdminLanding, items[0].Path)
	require.Equal(t, routing.PathLogout, logout.Path)

	items, logout = routing.Menu(users.RoleOperator)
	require.Equal(t, []string{"Products", "Orders", "Profile"}, labels(items))
	require.Equal(t, routing.PathOperatorLanding, items[0].Path)
	require.Equal(t, "Logout", logout.Label)

	items, _ = routing.Menu(users.RoleType("Auditor"))
	require.Equal(t, []string{"Products", "Orders", "Profile"}, labels(items))
}

func TestMenuItem_Active(t *testing.T) {
	items, _ := routing.Menu(users.RoleAdministrator)
	dashboard, products := items[0], items[3]

	require.True(t, dashboard.Active(routing.PathAdminLanding))
	require.False(t, dashboard.Active(routing.PathAdminLanding+"/products"))
	require.True(t, products.Active(routing.PathAdminLanding+"/products"))
	require.True(t, products.Active(routing.PathAdminLanding+"/products/p-1"))
	require.False(t, products.Active(routing.PathAdminLanding+"/productsx"))
}

func TestNavigator_FirstTargetWins(t *testing.T) {
	n := routing.NewNavigator()
	_, ok := n.Target()
	require.False(t, ok)

	var wg sync.WaitGroup
	wins := make(chan bool, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			wins <- n.Navigate(routing.PathLogin)
		}()
	}
	wg.Wait()
	close(wins)

	won := 0
	for w := range wins {
		if w {
			won++
		}
	}
	require.Equal(t, 1, won)

	require.False(t, n.Navigate(routing.PathUnauthorized))
	target, ok := n.Target()
	require.True(t, ok)
	require.Equal(t, routing.PathLogin, target)
}

func TestNavigator_Context(t *testing.T) {
	require.Nil(t, routing.FromContext(context.Background()))
	n := routing.NewNavigator()
	require.Same(t, n, routing.FromContext(routing.NewContext(context.Background(), n)))
}

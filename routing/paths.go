package routing

// Console paths
const (
	PathRoot            = "/"
	PathLogin           = "/login"
	PathLogout          = "/logout"
	PathUnauthorized    = "/unauthorized"
	PathAdminLanding    = "/admin/admin-dashboard"
	PathOperatorLanding = "/employee/employee-dashboard"
)

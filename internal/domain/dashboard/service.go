package dashboard

import "context"

// DashboardService derives progress statistics for the authenticated user.
type DashboardService interface {
	GetDashboard(ctx context.Context, filter DashboardFilter) (DashboardResponse, error)
}

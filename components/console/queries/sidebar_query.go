package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	console "github.com/strategicai/console/components/console"
)

type sidebarService interface {
	SidebarCollapsed(ctx context.Context, viewer console.ViewerContext) bool
}

// SidebarQuery reports the viewer's sidebar preference.
type SidebarQuery struct {
	service sidebarService
}

// NewSidebarQuery builds the query.
func NewSidebarQuery(service sidebarService) *SidebarQuery {
	return &SidebarQuery{service: service}
}

var _ gocommand.Querier[console.ViewerContext, bool] = (*SidebarQuery)(nil)

// Query returns whether the sidebar is collapsed for the viewer.
func (q *SidebarQuery) Query(ctx context.Context, viewer console.ViewerContext) (bool, error) {
	return q.service.SidebarCollapsed(ctx, viewer), nil
}

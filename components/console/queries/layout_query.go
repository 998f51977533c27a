package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	console "github.com/strategicai/console/components/console"
)

type layoutService interface {
	ConfigureLayout(ctx context.Context, viewer console.ViewerContext) (console.Layout, error)
}

// LayoutQuery executes read-only layout resolution.
type LayoutQuery struct {
	service layoutService
}

// NewLayoutQuery builds the query.
func NewLayoutQuery(service layoutService) *LayoutQuery {
	return &LayoutQuery{service: service}
}

var _ gocommand.Querier[console.ViewerContext, console.Layout] = (*LayoutQuery)(nil)

// Query resolves the layout for the viewer.
func (q *LayoutQuery) Query(ctx context.Context, viewer console.ViewerContext) (console.Layout, error) {
	return q.service.ConfigureLayout(ctx, viewer)
}

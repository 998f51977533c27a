package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	console "github.com/strategicai/console/components/console"
)

// PageInput identifies a page request for a viewer.
type PageInput struct {
	Viewer   console.ViewerContext
	PageCode string
}

type pageService interface {
	ResolvePage(ctx context.Context, viewer console.ViewerContext, pageCode string) (console.ResolvedPage, error)
}

// PageQuery fetches panels for a specific console page.
type PageQuery struct {
	service pageService
}

// NewPageQuery builds the query.
func NewPageQuery(service pageService) *PageQuery {
	return &PageQuery{service: service}
}

var _ gocommand.Querier[PageInput, console.ResolvedPage] = (*PageQuery)(nil)

// Query resolves an individual page for the viewer.
func (q *PageQuery) Query(ctx context.Context, input PageInput) (console.ResolvedPage, error) {
	return q.service.ResolvePage(ctx, input.Viewer, input.PageCode)
}

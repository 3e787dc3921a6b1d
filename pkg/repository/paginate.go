package repository

import (
	"context"
	"fmt"

	"github.com/JaimeStill/reel/pkg/pagination"
	"github.com/JaimeStill/reel/pkg/query"
)

// Paginate runs the count and page queries built from qb and assembles a PageResult.
// Both queries share the builder's FROM clause and conditions. They are separate
// reads, so concurrent writes may make the count and the page disagree.
func Paginate[T any](
	ctx context.Context,
	q Querier,
	qb *query.Builder,
	page pagination.PageRequest,
	scan ScanFunc[T],
) (*pagination.PageResult[T], error) {
	countSQL, countArgs := qb.BuildCount()

	var total int
	if err := q.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}

	var docs []T
	if total > page.Offset() {
		pageSQL, pageArgs := qb.BuildPage(page.Page, page.Limit)

		rows, err := QueryMany(ctx, q, pageSQL, pageArgs, scan)
		if err != nil {
			return nil, fmt.Errorf("page: %w", err)
		}
		docs = rows
	}

	result := pagination.NewPageResult(docs, total, page.Page, page.Limit)
	return &result, nil
}

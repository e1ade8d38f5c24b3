package pagination

import (
	"errors"
	"fmt"
	"strings"
)

// Pagination limits and sort orders.
const (
	MaxLimit         = 10000
	MaxPageSize      = 1000
	DefaultSortOrder = SortOrderAsc
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
)

// Common validation errors.
var (
	ErrInvalidLimit         = fmt.Errorf("limit must be between 0 and %d", MaxLimit)
	ErrInvalidPageSize      = fmt.Errorf("page-size must be between 1 and %d", MaxPageSize)
	ErrInvalidOffset        = errors.New("offset must be non-negative")
	ErrInvalidPage          = errors.New("page must be >= 1")
	ErrInvalidSortOrder     = errors.New("sort order must be 'asc' or 'desc'")
	ErrMixedPaginationModes = errors.New("cannot use both offset-based (--offset) and page-based (--page) pagination")
	ErrPageSizeWithoutPage  = errors.New("--page-size requires --page to be set")
	ErrInvalidSortFormat    = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'panels:desc')")
	ErrEmptySortField       = errors.New("sort field cannot be empty")
	ErrInvalidSortField     = errors.New("invalid sort field")
)

// Params holds CLI pagination flags. Two modes are supported and are
// mutually exclusive:
//   - Offset-based: --limit and --offset (limit 0 means no limit)
//   - Page-based: --page and --page-size
type Params struct {
	Limit    int
	Offset   int
	Page     int
	PageSize int
}

// Validate checks that the parameters are in range and use a single mode.
func (p Params) Validate() error {
	switch {
	case p.Limit < 0 || p.Limit > MaxLimit:
		return ErrInvalidLimit
	case p.Offset < 0:
		return ErrInvalidOffset
	case p.Page < 0:
		return ErrInvalidPage
	case p.PageSize < 0 || p.PageSize > MaxPageSize:
		return ErrInvalidPageSize
	case p.Page > 0 && p.Offset > 0:
		return ErrMixedPaginationModes
	case p.Page == 0 && p.PageSize > 0:
		return ErrPageSizeWithoutPage
	case p.Page > 0 && p.PageSize == 0:
		return fmt.Errorf("%w: --page needs --page-size", ErrInvalidPageSize)
	}
	return nil
}

// IsPageBased returns true if page-based pagination is active.
func (p Params) IsPageBased() bool {
	return p.Page > 0
}

// IsEnabled returns true if any pagination parameter narrows the output.
func (p Params) IsEnabled() bool {
	return p.Limit > 0 || p.Offset > 0 || p.Page > 0
}

// OffsetLimit returns the effective offset and limit. A zero limit means
// everything after offset.
//
//nolint:nonamedreturns // Named returns document the pair.
func (p Params) OffsetLimit() (offset, limit int) {
	if p.IsPageBased() {
		return (p.Page - 1) * p.PageSize, p.PageSize
	}
	return p.Offset, p.Limit
}

// Apply returns the window of items the parameters select. A page past the
// end is capped to the last page; an offset past the end yields nothing.
func Apply[T any](p Params, items []T) []T {
	if len(items) == 0 {
		return items
	}
	offset, limit := p.OffsetLimit()

	if p.IsPageBased() && offset >= len(items) {
		offset = ((len(items) - 1) / p.PageSize) * p.PageSize
	}
	if offset >= len(items) {
		return []T{}
	}

	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// ParseSort parses a sort string in the format "field" or "field:order".
// An empty string means no sorting.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field, order string, err error) {
	if strings.TrimSpace(sortStr) == "" {
		return "", DefaultSortOrder, nil
	}

	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = DefaultSortOrder
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}
	return field, order, nil
}

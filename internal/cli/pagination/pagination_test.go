package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/netzero/internal/batch"
	"github.com/rshade/netzero/internal/cli/pagination"
	"github.com/rshade/netzero/internal/solar"
)

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  pagination.Params
		wantErr error
	}{
		{"zero value", pagination.Params{}, nil},
		{"limit and offset", pagination.Params{Limit: 10, Offset: 5}, nil},
		{"page", pagination.Params{Page: 2, PageSize: 10}, nil},
		{"negative limit", pagination.Params{Limit: -1}, pagination.ErrInvalidLimit},
		{"limit too large", pagination.Params{Limit: pagination.MaxLimit + 1}, pagination.ErrInvalidLimit},
		{"negative offset", pagination.Params{Offset: -1}, pagination.ErrInvalidOffset},
		{"mixed modes", pagination.Params{Page: 1, PageSize: 5, Offset: 3}, pagination.ErrMixedPaginationModes},
		{"page size alone", pagination.Params{PageSize: 5}, pagination.ErrPageSizeWithoutPage},
		{"page alone", pagination.Params{Page: 1}, pagination.ErrInvalidPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestApply(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	assert.Equal(t, items, pagination.Apply(pagination.Params{}, items))
	assert.Equal(t, []int{3, 4}, pagination.Apply(pagination.Params{Offset: 2, Limit: 2}, items))
	assert.Equal(t, []int{6, 7}, pagination.Apply(pagination.Params{Offset: 5, Limit: 10}, items))
	assert.Empty(t, pagination.Apply(pagination.Params{Offset: 7}, items))
	assert.Equal(t, []int{4, 5, 6}, pagination.Apply(pagination.Params{Page: 2, PageSize: 3}, items))
	assert.Equal(t, []int{7}, pagination.Apply(pagination.Params{Page: 9, PageSize: 3}, items), "capped to the last page")
	assert.Empty(t, pagination.Apply(pagination.Params{Limit: 3}, []int{}))
}

func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(pagination.Params{Page: 2, PageSize: 3}, 7)
	assert.Equal(t, pagination.Meta{
		CurrentPage: 2, PageSize: 3, TotalPages: 3, TotalItems: 7, HasPrevious: true, HasNext: true,
	}, meta)

	meta = pagination.NewMeta(pagination.Params{Offset: 4, Limit: 2}, 5)
	assert.Equal(t, 3, meta.CurrentPage)
	assert.False(t, meta.HasNext)

	meta = pagination.NewMeta(pagination.Params{}, 4)
	assert.Equal(t, 1, meta.TotalPages)
	assert.False(t, meta.HasPrevious)
}

func TestParseSort(t *testing.T) {
	field, order, err := pagination.ParseSort("panels:DESC")
	require.NoError(t, err)
	assert.Equal(t, "panels", field)
	assert.Equal(t, pagination.SortOrderDesc, order)

	field, order, err = pagination.ParseSort(" name ")
	require.NoError(t, err)
	assert.Equal(t, "name", field)
	assert.Equal(t, pagination.SortOrderAsc, order)

	field, _, err = pagination.ParseSort("")
	require.NoError(t, err)
	assert.Empty(t, field)

	_, _, err = pagination.ParseSort("a:b:c")
	require.ErrorIs(t, err, pagination.ErrInvalidSortFormat)
	_, _, err = pagination.ParseSort(":asc")
	require.ErrorIs(t, err, pagination.ErrEmptySortField)
	_, _, err = pagination.ParseSort("name:up")
	require.ErrorIs(t, err, pagination.ErrInvalidSortOrder)
}

func outcome(row int, name string, offset, panels float64, failed bool) batch.Outcome {
	o := batch.Outcome{Scenario: batch.Scenario{Row: row, Name: name}}
	if failed {
		o.Err = solar.ErrInvalidInput
		return o
	}
	o.Result = &solar.OffsetResult{CarbonOffset: offset, AdditionalPanelsNeeded: panels}
	return o
}

func rows(outcomes []batch.Outcome) []int {
	out := make([]int, 0, len(outcomes))
	for _, o := range outcomes {
		out = append(out, o.Scenario.Row)
	}
	return out
}

func TestOutcomeSorter(t *testing.T) {
	s := pagination.NewOutcomeSorter()
	outcomes := []batch.Outcome{
		outcome(2, "Beta", 300, 10, false),
		outcome(3, "alpha", 100, 50, false),
		outcome(4, "gamma", 0, 0, true),
		outcome(5, "delta", 300, 5, false),
	}

	assert.Equal(t, []int{4, 3, 2, 5}, rows(s.Sort(outcomes, pagination.FieldOffset, pagination.SortOrderAsc)))
	assert.Equal(t, []int{2, 5, 3, 4}, rows(s.Sort(outcomes, pagination.FieldOffset, pagination.SortOrderDesc)),
		"ties keep input order")
	assert.Equal(t, []int{3, 2, 5, 4}, rows(s.Sort(outcomes, pagination.FieldPanels, pagination.SortOrderDesc)))
	assert.Equal(t, []int{3, 2, 5, 4}, rows(s.Sort(outcomes, pagination.FieldName, pagination.SortOrderAsc)))
	assert.Equal(t, []int{2, 3, 4, 5}, rows(s.Sort(outcomes, "", pagination.SortOrderAsc)))
	assert.Equal(t, []int{2, 3, 4, 5}, rows(outcomes), "input is not modified")

	require.NoError(t, s.Validate(""))
	require.NoError(t, s.Validate(pagination.FieldStatus))
	require.ErrorIs(t, s.Validate("cost"), pagination.ErrInvalidSortField)
	assert.Len(t, s.GetValidFields(), 6)
}

package pagination

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rshade/netzero/internal/batch"
)

// Sort fields for batch outcomes.
const (
	FieldRow       = "row"
	FieldName      = "name"
	FieldOffset    = "offset"
	FieldRemaining = "remaining"
	FieldPanels    = "panels"
	FieldStatus    = "status"
)

// OutcomeSorter sorts batch outcomes by a named field.
type OutcomeSorter struct {
	validFields map[string]func(batch.Outcome) float64
}

// NewOutcomeSorter creates an OutcomeSorter. Numeric fields of failed rows
// sort as the lowest value.
func NewOutcomeSorter() *OutcomeSorter {
	result := func(get func(*batch.Outcome) float64) func(batch.Outcome) float64 {
		return func(o batch.Outcome) float64 {
			if o.Result == nil {
				return -1
			}
			return get(&o)
		}
	}
	return &OutcomeSorter{
		validFields: map[string]func(batch.Outcome) float64{
			FieldRow:       func(o batch.Outcome) float64 { return float64(o.Scenario.Row) },
			FieldName:      nil,
			FieldStatus:    nil,
			FieldOffset:    result(func(o *batch.Outcome) float64 { return o.Result.CarbonOffset }),
			FieldRemaining: result(func(o *batch.Outcome) float64 { return o.Result.RemainingEmissions }),
			FieldPanels:    result(func(o *batch.Outcome) float64 { return o.Result.AdditionalPanelsNeeded }),
		},
	}
}

// IsValidField checks if the field is valid for sorting.
func (s *OutcomeSorter) IsValidField(field string) bool {
	_, ok := s.validFields[field]
	return ok
}

// GetValidFields returns all valid sort fields in sorted order.
func (s *OutcomeSorter) GetValidFields() []string {
	fields := make([]string, 0, len(s.validFields))
	for field := range s.validFields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Validate reports an unknown sort field.
func (s *OutcomeSorter) Validate(field string) error {
	if field == "" || s.IsValidField(field) {
		return nil
	}
	return fmt.Errorf("%w: %q (valid: %s)", ErrInvalidSortField, field, strings.Join(s.GetValidFields(), ", "))
}

// Sort returns a sorted copy of outcomes. Ties keep input order. An empty or
// unknown field returns outcomes unchanged.
func (s *OutcomeSorter) Sort(outcomes []batch.Outcome, field, order string) []batch.Outcome {
	key, ok := s.validFields[field]
	if !ok {
		return outcomes
	}

	sorted := make([]batch.Outcome, len(outcomes))
	copy(sorted, outcomes)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if order == SortOrderDesc {
			a, b = b, a
		}
		switch field {
		case FieldName:
			return strings.ToLower(a.Scenario.Name) < strings.ToLower(b.Scenario.Name)
		case FieldStatus:
			return batch.Status(a) < batch.Status(b)
		default:
			return key(a) < key(b)
		}
	})
	return sorted
}

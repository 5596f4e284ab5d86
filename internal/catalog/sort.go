package catalog

import (
	"cmp"
	"fmt"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortField names the supplier column to order by.
type SortField string

const (
	SortByRisk SortField = "risk"
	SortByName SortField = "name"
)

// SortOrder is the direction of a supplier sort.
type SortOrder string

const (
	SortDesc SortOrder = "desc"
	SortAsc  SortOrder = "asc"
)

// SupplierSort orders the supplier page. The zero value sorts by risk,
// highest first.
type SupplierSort struct {
	By    SortField
	Order SortOrder
}

// Validate reports an unknown field or order.
func (s SupplierSort) Validate() error {
	switch s.By {
	case "", SortByRisk, SortByName:
	default:
		return fmt.Errorf("invalid sort field %q: must be name or risk", s.By)
	}
	switch s.Order {
	case "", SortAsc, SortDesc:
	default:
		return fmt.Errorf("invalid sort order %q: must be asc or desc", s.Order)
	}
	return nil
}

// Toggle returns the sort after selecting field: the same field flips
// direction, a new field starts descending.
func (s SupplierSort) Toggle(field SortField) SupplierSort {
	cur := s.normalized()
	if cur.By == field {
		if cur.Order == SortDesc {
			return SupplierSort{By: field, Order: SortAsc}
		}
		return SupplierSort{By: field, Order: SortDesc}
	}
	return SupplierSort{By: field, Order: SortDesc}
}

func (s SupplierSort) normalized() SupplierSort {
	if s.By == "" {
		s.By = SortByRisk
	}
	if s.Order == "" {
		s.Order = SortDesc
	}
	return s
}

// SortSuppliers returns the suppliers ordered by s. The sort is stable, so
// equal keys keep catalog order in either direction. Names compare with
// the root collation, not byte order.
func (c Catalog) SortSuppliers(s SupplierSort) []Supplier {
	s = s.normalized()
	out := slices.Clone(c.Suppliers)
	if out == nil {
		out = []Supplier{}
	}

	var compare func(a, b Supplier) int
	switch s.By {
	case SortByName:
		col := collate.New(language.Und)
		compare = func(a, b Supplier) int { return col.CompareString(a.Name, b.Name) }
	default:
		compare = func(a, b Supplier) int { return cmp.Compare(a.RiskScore, b.RiskScore) }
	}
	if s.Order == SortDesc {
		asc := compare
		compare = func(a, b Supplier) int { return asc(b, a) }
	}

	slices.SortStableFunc(out, compare)
	return out
}

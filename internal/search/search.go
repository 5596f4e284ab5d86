// Package search answers the dashboard search box: a case-insensitive
// substring query over routes, suppliers and alerts, grouped by entity
// type and capped per group.
//
// Routes and suppliers are fixed when the Index is built. Alerts are read
// from an AlertSource on every query so the results reflect the ledger at
// query time.
package search

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/opsdash/internal/catalog"
)

// MaxResultsPerGroup caps each group of a ResultSet.
const MaxResultsPerGroup = 5

// AlertSource supplies the current alert records.
type AlertSource interface {
	Alerts() []catalog.Alert
}

// AlertsFunc adapts a function to AlertSource.
type AlertsFunc func() []catalog.Alert

// Alerts calls f.
func (f AlertsFunc) Alerts() []catalog.Alert { return f() }

// ResultSet groups matches by entity type. The slices are never nil.
type ResultSet struct {
	Routes    []catalog.Route    `json:"routes"`
	Suppliers []catalog.Supplier `json:"suppliers"`
	Alerts    []catalog.Alert    `json:"alerts"`
}

// Empty reports whether nothing matched.
func (r ResultSet) Empty() bool {
	return len(r.Routes) == 0 && len(r.Suppliers) == 0 && len(r.Alerts) == 0
}

// Total returns the number of matches across all groups.
func (r ResultSet) Total() int {
	return len(r.Routes) + len(r.Suppliers) + len(r.Alerts)
}

func emptyResult() ResultSet {
	return ResultSet{
		Routes:    []catalog.Route{},
		Suppliers: []catalog.Supplier{},
		Alerts:    []catalog.Alert{},
	}
}

type indexed[T any] struct {
	item T
	keys []string
}

// Index is safe for concurrent queries.
type Index struct {
	routes    []indexed[catalog.Route]
	suppliers []indexed[catalog.Supplier]
	alerts    AlertSource
}

// New builds an index. routes and suppliers are copied; alerts is consulted
// on every Query and may be nil for an index without alerts.
func New(routes []catalog.Route, suppliers []catalog.Supplier, alerts AlertSource) *Index {
	fold := newFolder()

	idx := &Index{
		routes:    make([]indexed[catalog.Route], 0, len(routes)),
		suppliers: make([]indexed[catalog.Supplier], 0, len(suppliers)),
		alerts:    alerts,
	}
	for _, r := range routes {
		idx.routes = append(idx.routes, indexed[catalog.Route]{
			item: r,
			keys: fold.all(r.ID, r.Name, r.Origin, r.Destination, r.Carrier),
		})
	}
	for _, s := range suppliers {
		idx.suppliers = append(idx.suppliers, indexed[catalog.Supplier]{
			item: s,
			keys: fold.all(s.ID, s.Name, s.Location),
		})
	}
	return idx
}

// Query returns the first MaxResultsPerGroup matches of each group in
// catalog order. A blank query matches nothing.
func (idx *Index) Query(text string) ResultSet {
	res := emptyResult()
	if strings.TrimSpace(text) == "" {
		return res
	}

	fold := newFolder()
	needle := fold.one(text)

	for _, r := range idx.routes {
		if len(res.Routes) == MaxResultsPerGroup {
			break
		}
		if containsAny(r.keys, needle) {
			res.Routes = append(res.Routes, r.item)
		}
	}
	for _, s := range idx.suppliers {
		if len(res.Suppliers) == MaxResultsPerGroup {
			break
		}
		if containsAny(s.keys, needle) {
			res.Suppliers = append(res.Suppliers, s.item)
		}
	}

	if idx.alerts == nil {
		return res
	}
	for _, a := range idx.alerts.Alerts() {
		if len(res.Alerts) == MaxResultsPerGroup {
			break
		}
		if containsAny(fold.all(a.ID, a.Title, a.Description), needle) {
			res.Alerts = append(res.Alerts, a.Clone())
		}
	}
	return res
}

func containsAny(keys []string, needle string) bool {
	for _, k := range keys {
		if strings.Contains(k, needle) {
			return true
		}
	}
	return false
}

// folder lower-cases text. A cases.Caser keeps state, so each goroutine
// needs its own.
type folder struct {
	lower cases.Caser
}

func newFolder() *folder {
	return &folder{lower: cases.Lower(language.Und)}
}

func (f *folder) one(s string) string {
	return f.lower.String(norm.NFC.String(s))
}

func (f *folder) all(fields ...string) []string {
	out := make([]string, len(fields))
	for i, s := range fields {
		out[i] = f.one(s)
	}
	return out
}

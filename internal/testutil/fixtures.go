// Package testutil provides deterministic fixtures shared by package tests:
// in-memory and fault-injecting key-value backends, and small catalogs
// with known search characteristics.
package testutil

import (
	"fmt"

	"github.com/roach88/opsdash/internal/catalog"
)

// ManyRoutesCatalog returns a catalog with n routes that all match the
// query "corridor", numbered C01..Cnn in order, plus one route that does not.
func ManyRoutesCatalog(n int) catalog.Catalog {
	routes := make([]catalog.Route, 0, n+1)
	routes = append(routes, catalog.Route{
		ID: "X00", Name: "Unrelated", Origin: "Perth", Destination: "Darwin",
		Carrier: "ONE", RiskLevel: catalog.RiskLow, Status: catalog.RouteActive,
	})
	for i := 1; i <= n; i++ {
		routes = append(routes, catalog.Route{
			ID:          fmt.Sprintf("C%02d", i),
			Name:        fmt.Sprintf("Corridor %d", i),
			Origin:      "Port A",
			Destination: "Port B",
			Carrier:     "MSC",
			RiskLevel:   catalog.RiskMedium,
			Status:      catalog.RouteActive,
		})
	}
	return catalog.Catalog{Routes: routes}
}

// TwoAlertCatalog returns a catalog with one unread and one read alert.
func TwoAlertCatalog() catalog.Catalog {
	return catalog.Catalog{
		Alerts: []catalog.Alert{
			{ID: "T1", Severity: catalog.SeverityHigh, Title: "Unread alert", Description: "first", AffectedRoutes: []string{"R001"}},
			{ID: "T2", Severity: catalog.SeverityLow, Title: "Read alert", Description: "second", Acknowledged: true},
		},
	}
}

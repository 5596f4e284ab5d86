package catalog

import "strings"

// RouteFilter narrows a route list the way the route-risk page does.
// Empty fields match everything.
type RouteFilter struct {
	// Region matches when it is a substring of the origin or destination.
	Region  string
	Carrier string
	Risk    RiskLevel
}

// FilterRoutes returns the routes matching f in catalog order.
func (c Catalog) FilterRoutes(f RouteFilter) []Route {
	out := make([]Route, 0, len(c.Routes))
	for _, r := range c.Routes {
		if f.Region != "" && !strings.Contains(r.Origin, f.Region) && !strings.Contains(r.Destination, f.Region) {
			continue
		}
		if f.Carrier != "" && r.Carrier != f.Carrier {
			continue
		}
		if f.Risk != "" && r.RiskLevel != f.Risk {
			continue
		}
		out = append(out, r)
	}
	return out
}

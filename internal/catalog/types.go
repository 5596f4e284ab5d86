package catalog

import "slices"

// Severity ranks an alert.
type Severity string

const (
	SeverityHigh   Severity = "High"
	SeverityMedium Severity = "Medium"
	SeverityLow    Severity = "Low"
)

// RiskLevel ranks a route.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// RouteStatus is the operational state of a route.
type RouteStatus string

const (
	RouteActive    RouteStatus = "Active"
	RouteDelayed   RouteStatus = "Delayed"
	RouteCompleted RouteStatus = "Completed"
)

// SupplierStatus is the health classification of a supplier.
type SupplierStatus string

const (
	SupplierActive   SupplierStatus = "Active"
	SupplierWarning  SupplierStatus = "Warning"
	SupplierCritical SupplierStatus = "Critical"
)

// Route is a shipping lane between two ports.
type Route struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Origin      string      `json:"origin" yaml:"origin"`
	Destination string      `json:"destination" yaml:"destination"`
	Carrier     string      `json:"carrier" yaml:"carrier"`
	RiskLevel   RiskLevel   `json:"riskLevel" yaml:"riskLevel"`
	Status      RouteStatus `json:"status" yaml:"status"`
}

// SupplierDetails holds the percentage scores shown on the supplier page.
type SupplierDetails struct {
	OnTimeDelivery int `json:"onTimeDelivery" yaml:"onTimeDelivery"`
	QualityScore   int `json:"qualityScore" yaml:"qualityScore"`
	ComplianceRate int `json:"complianceRate" yaml:"complianceRate"`
}

// Supplier is a vendor in the supply chain.
type Supplier struct {
	ID        string          `json:"id" yaml:"id"`
	Name      string          `json:"name" yaml:"name"`
	Location  string          `json:"location" yaml:"location"`
	RiskScore int             `json:"riskScore" yaml:"riskScore"`
	Status    SupplierStatus  `json:"status" yaml:"status"`
	Details   SupplierDetails `json:"details" yaml:"details"`
}

// Alert is a risk notification. Acknowledged is the only field that
// changes after seeding, and only the alert ledger changes it.
//
// AffectedRoutes references Route ids by value; dangling ids are allowed.
type Alert struct {
	ID             string   `json:"id" yaml:"id"`
	Severity       Severity `json:"severity" yaml:"severity"`
	Title          string   `json:"title" yaml:"title"`
	Description    string   `json:"description" yaml:"description"`
	Timestamp      string   `json:"timestamp" yaml:"timestamp"`
	AffectedRoutes []string `json:"affectedRoutes" yaml:"affectedRoutes"`
	Acknowledged   bool     `json:"acknowledged" yaml:"acknowledged"`
}

// Clone returns a deep copy of the alert.
func (a Alert) Clone() Alert {
	a.AffectedRoutes = slices.Clone(a.AffectedRoutes)
	return a
}

// CloneAlerts deep copies a list of alerts, preserving order.
func CloneAlerts(in []Alert) []Alert {
	if in == nil {
		return nil
	}
	out := make([]Alert, len(in))
	for i, a := range in {
		out[i] = a.Clone()
	}
	return out
}

// Catalog groups the three seed collections.
type Catalog struct {
	Routes    []Route    `json:"routes" yaml:"routes"`
	Suppliers []Supplier `json:"suppliers" yaml:"suppliers"`
	Alerts    []Alert    `json:"alerts" yaml:"alerts"`
}

// Clone returns a copy that shares no slices with c.
func (c Catalog) Clone() Catalog {
	return Catalog{
		Routes:    slices.Clone(c.Routes),
		Suppliers: slices.Clone(c.Suppliers),
		Alerts:    CloneAlerts(c.Alerts),
	}
}

// Route returns the route with the given id.
func (c Catalog) Route(id string) (Route, bool) {
	for _, r := range c.Routes {
		if r.ID == id {
			return r, true
		}
	}
	return Route{}, false
}

// Supplier returns the supplier with the given id.
func (c Catalog) Supplier(id string) (Supplier, bool) {
	for _, s := range c.Suppliers {
		if s.ID == id {
			return s, true
		}
	}
	return Supplier{}, false
}

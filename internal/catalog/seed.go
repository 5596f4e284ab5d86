package catalog

// Seed returns the built-in sample catalog. Each call returns fresh slices.
func Seed() Catalog {
	return Catalog{
		Routes:    seedRoutes(),
		Suppliers: seedSuppliers(),
		Alerts:    seedAlerts(),
	}
}

func seedRoutes() []Route {
	return []Route{
		{ID: "R001", Name: "Pacific Express", Origin: "Shanghai", Destination: "Los Angeles", Carrier: "MSC", RiskLevel: RiskLow, Status: RouteActive},
		{ID: "R002", Name: "Atlantic Bridge", Origin: "Rotterdam", Destination: "New York", Carrier: "Maersk", RiskLevel: RiskMedium, Status: RouteActive},
		{ID: "R003", Name: "Euro Connect", Origin: "Hamburg", Destination: "Singapore", Carrier: "CMA CGM", RiskLevel: RiskHigh, Status: RouteDelayed},
		{ID: "R004", Name: "Asian Gateway", Origin: "Hong Kong", Destination: "Seattle", Carrier: "COSCO", RiskLevel: RiskLow, Status: RouteActive},
		{ID: "R005", Name: "Mediterranean Link", Origin: "Barcelona", Destination: "Dubai", Carrier: "Hapag-Lloyd", RiskLevel: RiskMedium, Status: RouteActive},
		{ID: "R006", Name: "South Pacific Route", Origin: "Sydney", Destination: "Tokyo", Carrier: "ONE", RiskLevel: RiskLow, Status: RouteCompleted},
		{ID: "R007", Name: "Trans-Siberian", Origin: "Moscow", Destination: "Beijing", Carrier: "FESCO", RiskLevel: RiskHigh, Status: RouteDelayed},
		{ID: "R008", Name: "Caribbean Corridor", Origin: "Miami", Destination: "Santos", Carrier: "MSC", RiskLevel: RiskMedium, Status: RouteActive},
		{ID: "R009", Name: "North Star", Origin: "Oslo", Destination: "Montreal", Carrier: "Maersk", RiskLevel: RiskLow, Status: RouteActive},
		{ID: "R010", Name: "Indian Ocean Express", Origin: "Mumbai", Destination: "Cape Town", Carrier: "CMA CGM", RiskLevel: RiskMedium, Status: RouteActive},
		{ID: "R011", Name: "Panama Passage", Origin: "Busan", Destination: "Charleston", Carrier: "Yang Ming", RiskLevel: RiskHigh, Status: RouteActive},
		{ID: "R012", Name: "Baltic Bridge", Origin: "Gdansk", Destination: "Stockholm", Carrier: "DFDS", RiskLevel: RiskLow, Status: RouteCompleted},
		{ID: "R013", Name: "Red Sea Route", Origin: "Jeddah", Destination: "Port Said", Carrier: "Evergreen", RiskLevel: RiskHigh, Status: RouteDelayed},
		{ID: "R014", Name: "Southeast Passage", Origin: "Manila", Destination: "Vancouver", Carrier: "COSCO", RiskLevel: RiskMedium, Status: RouteActive},
		{ID: "R015", Name: "African Gateway", Origin: "Lagos", Destination: "Durban", Carrier: "MSC", RiskLevel: RiskLow, Status: RouteActive},
		{ID: "R016", Name: "Arctic Circle", Origin: "Murmansk", Destination: "Reykjavik", Carrier: "Maersk", RiskLevel: RiskHigh, Status: RouteActive},
		{ID: "R017", Name: "Gulf Stream", Origin: "Houston", Destination: "Marseille", Carrier: "CMA CGM", RiskLevel: RiskMedium, Status: RouteActive},
		{ID: "R018", Name: "East Coast Express", Origin: "Savannah", Destination: "London", Carrier: "Hapag-Lloyd", RiskLevel: RiskLow, Status: RouteCompleted},
	}
}

func seedSuppliers() []Supplier {
	return []Supplier{
		{ID: "S001", Name: "Pacific Manufacturing Ltd", Location: "Shanghai, China", RiskScore: 25, Status: SupplierActive,
			Details: SupplierDetails{OnTimeDelivery: 95, QualityScore: 92, ComplianceRate: 98}},
		{ID: "S002", Name: "European Logistics GmbH", Location: "Hamburg, Germany", RiskScore: 45, Status: SupplierWarning,
			Details: SupplierDetails{OnTimeDelivery: 78, QualityScore: 85, ComplianceRate: 90}},
		{ID: "S003", Name: "Global Freight Solutions", Location: "Singapore", RiskScore: 15, Status: SupplierActive,
			Details: SupplierDetails{OnTimeDelivery: 98, QualityScore: 96, ComplianceRate: 99}},
		{ID: "S004", Name: "Trans-Atlantic Shipping", Location: "Rotterdam, Netherlands", RiskScore: 72, Status: SupplierCritical,
			Details: SupplierDetails{OnTimeDelivery: 65, QualityScore: 70, ComplianceRate: 75}},
		{ID: "S005", Name: "Asia-Pacific Traders", Location: "Hong Kong", RiskScore: 30, Status: SupplierActive,
			Details: SupplierDetails{OnTimeDelivery: 90, QualityScore: 88, ComplianceRate: 94}},
		{ID: "S006", Name: "Middle East Cargo Co", Location: "Dubai, UAE", RiskScore: 55, Status: SupplierWarning,
			Details: SupplierDetails{OnTimeDelivery: 75, QualityScore: 80, ComplianceRate: 85}},
		{ID: "S007", Name: "Nordic Supply Chain", Location: "Oslo, Norway", RiskScore: 20, Status: SupplierActive,
			Details: SupplierDetails{OnTimeDelivery: 94, QualityScore: 91, ComplianceRate: 97}},
		{ID: "S008", Name: "South American Exports", Location: "Santos, Brazil", RiskScore: 68, Status: SupplierCritical,
			Details: SupplierDetails{OnTimeDelivery: 68, QualityScore: 72, ComplianceRate: 78}},
		{ID: "S009", Name: "Mediterranean Trading", Location: "Barcelona, Spain", RiskScore: 38, Status: SupplierWarning,
			Details: SupplierDetails{OnTimeDelivery: 82, QualityScore: 86, ComplianceRate: 88}},
		{ID: "S010", Name: "Australian Logistics Pty", Location: "Sydney, Australia", RiskScore: 22, Status: SupplierActive,
			Details: SupplierDetails{OnTimeDelivery: 93, QualityScore: 90, ComplianceRate: 96}},
		{ID: "S011", Name: "African Trade Partners", Location: "Lagos, Nigeria", RiskScore: 80, Status: SupplierCritical,
			Details: SupplierDetails{OnTimeDelivery: 60, QualityScore: 65, ComplianceRate: 70}},
		{ID: "S012", Name: "North American Freight", Location: "Vancouver, Canada", RiskScore: 18, Status: SupplierActive,
			Details: SupplierDetails{OnTimeDelivery: 96, QualityScore: 94, ComplianceRate: 98}},
	}
}

func seedAlerts() []Alert {
	return []Alert{
		{
			ID:             "A001",
			Severity:       SeverityHigh,
			Title:          "Port Congestion Alert",
			Description:    "Severe delays expected at Los Angeles port due to labor disputes. Estimated 5-7 day delays.",
			Timestamp:      "2 hours ago",
			AffectedRoutes: []string{"R001", "R004"},
		},
		{
			ID:             "A002",
			Severity:       SeverityMedium,
			Title:          "Weather Disruption",
			Description:    "Tropical storm forming in South China Sea. May affect routes to Singapore.",
			Timestamp:      "5 hours ago",
			AffectedRoutes: []string{"R003"},
		},
		{
			ID:             "A003",
			Severity:       SeverityHigh,
			Title:          "Supplier Compliance Issue",
			Description:    "Trans-Atlantic Shipping failed recent quality audit. Immediate review recommended.",
			Timestamp:      "8 hours ago",
			AffectedRoutes: []string{"R002", "R018"},
			Acknowledged:   true,
		},
		{
			ID:             "A004",
			Severity:       SeverityLow,
			Title:          "Route Optimization Opportunity",
			Description:    "Alternative route via Suez Canal could reduce transit time by 2 days for R005.",
			Timestamp:      "12 hours ago",
			AffectedRoutes: []string{"R005"},
		},
		{
			ID:             "A005",
			Severity:       SeverityMedium,
			Title:          "Customs Delay",
			Description:    "New documentation requirements in Dubai causing 24-48 hour processing delays.",
			Timestamp:      "1 day ago",
			AffectedRoutes: []string{"R005", "R006"},
			Acknowledged:   true,
		},
		{
			ID:             "A006",
			Severity:       SeverityHigh,
			Title:          "Geopolitical Risk",
			Description:    "Increased security concerns in Red Sea region. Consider alternative routes.",
			Timestamp:      "1 day ago",
			AffectedRoutes: []string{"R013"},
		},
		{
			ID:             "A007",
			Severity:       SeverityLow,
			Title:          "Carrier Schedule Change",
			Description:    "MSC has updated departure times for Pacific routes. Review affected schedules.",
			Timestamp:      "2 days ago",
			AffectedRoutes: []string{"R001", "R008", "R015"},
			Acknowledged:   true,
		},
		{
			ID:             "A008",
			Severity:       SeverityMedium,
			Title:          "Fuel Price Surge",
			Description:    "Bunker fuel prices increased 15%. Cost implications for all active routes.",
			Timestamp:      "2 days ago",
			AffectedRoutes: []string{"R001", "R002", "R003", "R004"},
		},
	}
}

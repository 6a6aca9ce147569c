package domain

// TrendForecast is a single yearly growth projection in the ecosystem stats.
type TrendForecast struct {
	Year   string `json:"year" yaml:"year"`
	Trend  string `json:"trend" yaml:"trend"`
	Growth int    `json:"growth" yaml:"growth"`
}

// EcosystemStats holds the aggregate display counters for the hub.
// It is read-only and never persisted.
type EcosystemStats struct {
	TotalVendors   int             `json:"totalVendors" yaml:"totalVendors"`
	ActiveProducts int             `json:"activeProducts" yaml:"activeProducts"`
	MonthlyVolume  int             `json:"monthlyVolume" yaml:"monthlyVolume"`
	AIInteractions int             `json:"aiInteractions" yaml:"aiInteractions"`
	TrendForecast  []TrendForecast `json:"trendForecast" yaml:"trendForecast"`
}

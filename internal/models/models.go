// Package models defines the record shapes served by cyberdash.
package models

// Domain identifies one of the four independent data categories.
type Domain string

const (
	DomainNews            Domain = "news"
	DomainVulnerabilities Domain = "vulnerabilities"
	DomainIncidents       Domain = "incidents"
	DomainMarkets         Domain = "markets"
)

// Domains returns all domains in a stable order.
func Domains() []Domain {
	return []Domain{DomainNews, DomainVulnerabilities, DomainIncidents, DomainMarkets}
}

// NewsItem is a single headline pulled from a configured feed.
// Published carries the upstream timestamp string as-is; feeds disagree on
// format, so normalization happens at sort time, not here.
type NewsItem struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Published string `json:"published"`
	Source    string `json:"source"`
}

// VulnerabilityRecord is a critical (CVSS >= 8.0) advisory published in the
// trailing 24 hours.
type VulnerabilityRecord struct {
	ID          string  `json:"id"`
	Score       float64 `json:"score"`
	Published   string  `json:"published"`
	Description string  `json:"description"`
}

// VictimRecord is one ransomware victim entry.
type VictimRecord struct {
	Victim   string `json:"victim"`
	Group    string `json:"group"`
	Activity string `json:"activity"`
	Date     string `json:"date"`
}

// IncidentGroup aggregates recent ransomware victims for one country.
type IncidentGroup struct {
	Country     string         `json:"country"`
	CountryName string         `json:"country_name"`
	Count       int            `json:"count"`
	Coords      [2]float64     `json:"coords"`
	Victims     []VictimRecord `json:"victims"`
}

// PricePoint is one (date, price) sample in an asset's trailing-month history.
type PricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// MarketAsset holds the current quote and downsampled month history for one
// tracked asset. Price is nil when the quote provider had no usable value.
type MarketAsset struct {
	Symbol   string       `json:"symbol"`
	Name     string       `json:"name"`
	Type     string       `json:"type"` // "crypto" or "stock"
	Price    *float64     `json:"price"`
	Currency string       `json:"currency"`
	History  []PricePoint `json:"history"`
}

// Shortcut is an operator-defined dashboard link.
type Shortcut struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Icon string `json:"icon"`
}

package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/joblinours/cyberdash/internal/models"
)

const (
	incidentWindow  = 7 * 24 * time.Hour
	incidentTimeout = 8 * time.Second
	attackDateLen   = 19
	attackDateForm  = "2006-01-02 15:04:05"
)

// IncidentAdapter fetches recent ransomware victims and groups them by
// country for the map view.
type IncidentAdapter struct {
	url    string
	client *http.Client
	now    func() time.Time
}

// NewIncidentAdapter creates an adapter against the given victims endpoint.
func NewIncidentAdapter(url string) *IncidentAdapter {
	return &IncidentAdapter{
		url:    url,
		client: newHTTPClient(incidentTimeout),
		now:    time.Now,
	}
}

// Domain implements Adapter.
func (a *IncidentAdapter) Domain() models.Domain { return models.DomainIncidents }

type victimEntry struct {
	Victim     string `json:"victim"`
	Group      string `json:"group"`
	Activity   string `json:"activity"`
	AttackDate string `json:"attackdate"`
	Country    string `json:"country"`
}

// Fetch keeps victims from the allow-listed countries whose attack date
// falls within the last seven days, grouped per country and sorted by
// country code.
func (a *IncidentAdapter) Fetch(ctx context.Context) (any, error) {
	groups := []models.IncidentGroup{}

	body, err := getBody(ctx, a.client, a.url)
	if err != nil {
		return groups, err
	}

	var entries []victimEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return groups, fmt.Errorf("decode victims response: %w", err)
	}

	byCountry := make(map[string][]models.VictimRecord)
	for _, e := range entries {
		if _, ok := countryNames[e.Country]; !ok {
			continue
		}
		if !a.isRecent(e.AttackDate) {
			continue
		}
		byCountry[e.Country] = append(byCountry[e.Country], models.VictimRecord{
			Victim:   orNA(e.Victim),
			Group:    orNA(e.Group),
			Activity: orNA(e.Activity),
			Date:     e.AttackDate,
		})
	}

	for code, victims := range byCountry {
		groups = append(groups, models.IncidentGroup{
			Country:     code,
			CountryName: countryNames[code],
			Count:       len(victims),
			Coords:      countryCoords[code],
			Victims:     victims,
		})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Country < groups[j].Country })
	return groups, nil
}

// isRecent parses the leading "YYYY-MM-DD HH:MM:SS" of the attack date and
// checks it against the seven-day window. Unparseable dates are excluded.
func (a *IncidentAdapter) isRecent(dateStr string) bool {
	if len(dateStr) < attackDateLen {
		return false
	}
	t, err := time.Parse(attackDateForm, dateStr[:attackDateLen])
	if err != nil {
		return false
	}
	return !t.Before(a.now().Add(-incidentWindow))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/joblinours/cyberdash/internal/models"
)

const (
	vulnScoreFloor = 8.0
	vulnDescLimit  = 120
	vulnTimeout    = 5 * time.Second

	// The NVD 2.0 API wants millisecond-precision bounds. The day is
	// formatted alone and the fixed time-of-day appended as a literal;
	// running the full strings through time.Format would treat the zeros
	// and nines as seconds and fractional-second directives.
	nvdDayLayout   = "2006-01-02"
	nvdStartSuffix = "T00:00:00.000Z"
	nvdEndSuffix   = "T23:59:59.999Z"
)

// VulnAdapter fetches high-severity CVEs published in the trailing 24 hours
// from the NVD 2.0 API.
type VulnAdapter struct {
	baseURL string
	client  *http.Client
	now     func() time.Time
}

// NewVulnAdapter creates an adapter against the given NVD base URL.
func NewVulnAdapter(baseURL string) *VulnAdapter {
	return &VulnAdapter{
		baseURL: baseURL,
		client:  newHTTPClient(vulnTimeout),
		now:     time.Now,
	}
}

// Domain implements Adapter.
func (a *VulnAdapter) Domain() models.Domain { return models.DomainVulnerabilities }

// nvdResponse mirrors the slice of the NVD 2.0 payload we consume.
type nvdResponse struct {
	Vulnerabilities []struct {
		CVE struct {
			ID           string `json:"id"`
			Published    string `json:"published"`
			Descriptions []struct {
				Lang  string `json:"lang"`
				Value string `json:"value"`
			} `json:"descriptions"`
			Metrics struct {
				CVSSMetricV31 []cvssMetric `json:"cvssMetricV31"`
				CVSSMetricV30 []cvssMetric `json:"cvssMetricV30"`
			} `json:"metrics"`
		} `json:"cve"`
	} `json:"vulnerabilities"`
}

type cvssMetric struct {
	CVSSData struct {
		BaseScore float64 `json:"baseScore"`
	} `json:"cvssData"`
}

// Fetch queries CVEs published in the last 24 hours and keeps those with a
// CVSS v3 base score of 8.0 or higher, newest first.
func (a *VulnAdapter) Fetch(ctx context.Context) (any, error) {
	records := []models.VulnerabilityRecord{}

	now := a.now().UTC()
	params := url.Values{}
	params.Set("pubStartDate", now.AddDate(0, 0, -1).Format(nvdDayLayout)+nvdStartSuffix)
	params.Set("pubEndDate", now.Format(nvdDayLayout)+nvdEndSuffix)

	body, err := getBody(ctx, a.client, a.baseURL+"?"+params.Encode())
	if err != nil {
		return records, err
	}

	var resp nvdResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return records, fmt.Errorf("decode nvd response: %w", err)
	}

	for _, v := range resp.Vulnerabilities {
		score, ok := baseScore(v.CVE.Metrics.CVSSMetricV31, v.CVE.Metrics.CVSSMetricV30)
		if !ok || score < vulnScoreFloor {
			continue
		}
		records = append(records, models.VulnerabilityRecord{
			ID:          v.CVE.ID,
			Score:       score,
			Published:   v.CVE.Published,
			Description: truncateDescription(pickDescription(v.CVE.Descriptions)),
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Published > records[j].Published
	})
	return records, nil
}

// baseScore prefers the CVSS v3.1 primary metric and falls back to v3.0.
func baseScore(v31, v30 []cvssMetric) (float64, bool) {
	if len(v31) > 0 {
		return v31[0].CVSSData.BaseScore, true
	}
	if len(v30) > 0 {
		return v30[0].CVSSData.BaseScore, true
	}
	return 0, false
}

// pickDescription returns the English description, or the first one when no
// English text is present.
func pickDescription(descs []struct {
	Lang  string `json:"lang"`
	Value string `json:"value"`
}) string {
	for _, d := range descs {
		if d.Lang == "en" {
			return d.Value
		}
	}
	if len(descs) > 0 {
		return descs[0].Value
	}
	return ""
}

func truncateDescription(s string) string {
	runes := []rune(s)
	if len(runes) <= vulnDescLimit {
		return s
	}
	return string(runes[:vulnDescLimit]) + "..."
}

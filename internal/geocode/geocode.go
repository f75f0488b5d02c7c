package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/ajmayo/fortscan/internal/model"
)

// Result is the outcome of one geocoding attempt. Lat and Lon are nil
// when the lookup failed; Confidence is always set so failed lookups
// are not retried forever.
type Result struct {
	Lat        *float64
	Lon        *float64
	Confidence string // exact, approximate, locality, county, state, failed
	Source     string
	Query      string
}

// googleTypeConfidence maps Google result types to confidence levels.
var googleTypeConfidence = map[string]string{
	"premise":           "exact",
	"subpremise":        "exact",
	"street_address":    "exact",
	"route":             "exact",
	"intersection":      "exact",
	"point_of_interest": "exact",
	"park":              "exact",
	"airport":           "exact",
	"establishment":     "exact",

	"locality":            "locality",
	"sublocality":         "locality",
	"sublocality_level_1": "locality",
	"neighborhood":        "locality",
	"postal_code":         "locality",

	"administrative_area_level_2": "county",
	"administrative_area_level_1": "state",
	"country":                     "state",
}

var (
	reNear  = regexp.MustCompile(`(?i)^near\s+(.+)$`)
	reSpace = regexp.MustCompile(`\s+`)
)

// Preprocess cleans stored location text for querying. Uncertainty
// markers and "near" prefixes stay verbatim in the database; they are
// stripped only here, at lookup time, and reported as flags.
func Preprocess(locationText string) (cleaned string, approximate, uncertain bool) {
	text := strings.TrimSpace(locationText)
	if text == "" {
		return "", false, false
	}

	if strings.Contains(text, "?") {
		uncertain = true
		text = strings.TrimSpace(strings.ReplaceAll(text, "?", ""))
	}
	if m := reNear.FindStringSubmatch(text); m != nil {
		approximate = true
		text = strings.TrimSpace(m[1])
	}
	return reSpace.ReplaceAllString(text, " "), approximate, uncertain
}

// confidenceFromTypes picks the best confidence the result types
// support. A "near X" location caps specific hits at approximate.
func confidenceFromTypes(types []string, approximate bool) string {
	confidence := "state"
	for _, t := range types {
		tc, ok := googleTypeConfidence[t]
		if !ok {
			continue
		}
		switch {
		case tc == "exact":
			if approximate {
				return "approximate"
			}
			return "exact"
		case tc == "locality" && (confidence == "county" || confidence == "state"):
			if approximate {
				confidence = "approximate"
			} else {
				confidence = "locality"
			}
		case tc == "county" && confidence == "state":
			confidence = "county"
		}
	}
	return confidence
}

// Geocoder resolves fort locations through the Google Geocoding API.
type Geocoder struct {
	client   *http.Client
	endpoint string
	apiKey   string
	delay    time.Duration
}

func New(cfg model.GeocodeConfig) *Geocoder {
	return &Geocoder{
		client:   &http.Client{Timeout: 10 * time.Second},
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		delay:    cfg.Delay,
	}
}

type googleResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Types    []string `json:"types"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// GeocodeFort looks up one fort location, scoped to its state.
func (g *Geocoder) GeocodeFort(ctx context.Context, locationText, stateFullName string) Result {
	if strings.TrimSpace(locationText) == "" {
		return Result{Confidence: "failed", Source: "google", Query: "(no location)"}
	}

	cleaned, approximate, _ := Preprocess(locationText)
	if cleaned == "" {
		return Result{Confidence: "failed", Source: "google", Query: "(empty after cleaning)"}
	}

	query := fmt.Sprintf("%s, %s, USA", cleaned, stateFullName)
	res := g.lookup(ctx, query, approximate)

	if g.delay > 0 {
		select {
		case <-ctx.Done():
		case <-time.After(g.delay):
		}
	}
	return res
}

func (g *Geocoder) lookup(ctx context.Context, query string, approximate bool) Result {
	res := Result{Confidence: "failed", Source: "google", Query: query}

	params := url.Values{}
	params.Set("address", query)
	params.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return res
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return res
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return res
	}

	var data googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return res
	}
	if data.Status != "OK" || len(data.Results) == 0 {
		return res
	}

	first := data.Results[0]
	lat := first.Geometry.Location.Lat
	lon := first.Geometry.Location.Lng
	res.Lat = &lat
	res.Lon = &lon
	res.Confidence = confidenceFromTypes(first.Types, approximate)
	return res
}

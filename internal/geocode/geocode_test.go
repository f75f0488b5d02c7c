package geocode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ajmayo/fortscan/internal/model"
)

func TestPreprocess(t *testing.T) {
	tests := []struct {
		in          string
		want        string
		approximate bool
		uncertain   bool
	}{
		{"Castle Island", "Castle Island", false, false},
		{"near Richmond", "Richmond", true, false},
		{"Near  Santa   Fe", "Santa Fe", true, false},
		{"Galveston Island?", "Galveston Island", false, true},
		{"near Brownsville?", "Brownsville", true, true},
		{"  ", "", false, false},
		{"", "", false, false},
	}
	for _, tt := range tests {
		got, approx, unc := Preprocess(tt.in)
		if got != tt.want || approx != tt.approximate || unc != tt.uncertain {
			t.Errorf("Preprocess(%q) = (%q, %v, %v), want (%q, %v, %v)",
				tt.in, got, approx, unc, tt.want, tt.approximate, tt.uncertain)
		}
	}
}

func TestConfidenceFromTypes(t *testing.T) {
	tests := []struct {
		types       []string
		approximate bool
		want        string
	}{
		{[]string{"park", "point_of_interest"}, false, "exact"},
		{[]string{"park"}, true, "approximate"},
		{[]string{"locality", "political"}, false, "locality"},
		{[]string{"locality"}, true, "approximate"},
		{[]string{"administrative_area_level_2"}, false, "county"},
		{[]string{"administrative_area_level_1"}, false, "state"},
		{[]string{"political"}, false, "state"},
		{nil, false, "state"},
		// A later, more specific type still upgrades the result.
		{[]string{"administrative_area_level_2", "locality"}, false, "locality"},
	}
	for _, tt := range tests {
		if got := confidenceFromTypes(tt.types, tt.approximate); got != tt.want {
			t.Errorf("confidenceFromTypes(%v, %v) = %q, want %q",
				tt.types, tt.approximate, got, tt.want)
		}
	}
}

func googleStub(t *testing.T, status string, types []string, lat, lng float64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{"status": status}
		if status == "OK" {
			resp["results"] = []map[string]any{{
				"types": types,
				"geometry": map[string]any{
					"location": map[string]float64{"lat": lat, "lng": lng},
				},
			}}
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func testGeocoder(endpoint string) *Geocoder {
	return New(model.GeocodeConfig{
		APIKey:   "test-key",
		Endpoint: endpoint,
		Delay:    0,
	})
}

func TestGeocodeFort(t *testing.T) {
	srv := googleStub(t, "OK", []string{"park"}, 42.338, -71.010)
	defer srv.Close()

	res := testGeocoder(srv.URL).GeocodeFort(context.Background(), "Castle Island", "Massachusetts")
	if res.Confidence != "exact" {
		t.Errorf("confidence: %q", res.Confidence)
	}
	if res.Lat == nil || *res.Lat != 42.338 || res.Lon == nil || *res.Lon != -71.010 {
		t.Errorf("coordinates: %v, %v", res.Lat, res.Lon)
	}
	if res.Query != "Castle Island, Massachusetts, USA" {
		t.Errorf("query: %q", res.Query)
	}
}

func TestGeocodeFort_NearPrefix(t *testing.T) {
	var gotAddress string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAddress = r.URL.Query().Get("address")
		json.NewEncoder(w).Encode(map[string]any{
			"status": "OK",
			"results": []map[string]any{{
				"types": []string{"locality"},
				"geometry": map[string]any{
					"location": map[string]float64{"lat": 37.5, "lng": -77.4},
				},
			}},
		})
	}))
	defer srv.Close()

	res := testGeocoder(srv.URL).GeocodeFort(context.Background(), "near Richmond?", "Virginia")
	if gotAddress != "Richmond, Virginia, USA" {
		t.Errorf("queried address: %q", gotAddress)
	}
	if res.Confidence != "approximate" {
		t.Errorf("near-prefixed locality should be approximate, got %q", res.Confidence)
	}
}

func TestGeocodeFort_ZeroResults(t *testing.T) {
	srv := googleStub(t, "ZERO_RESULTS", nil, 0, 0)
	defer srv.Close()

	res := testGeocoder(srv.URL).GeocodeFort(context.Background(), "Nowhere Particular", "Kansas")
	if res.Confidence != "failed" {
		t.Errorf("confidence: %q", res.Confidence)
	}
	if res.Lat != nil || res.Lon != nil {
		t.Errorf("failed lookup must not carry coordinates: %v, %v", res.Lat, res.Lon)
	}
}

func TestGeocodeFort_EmptyLocation(t *testing.T) {
	res := testGeocoder("http://127.0.0.1:0").GeocodeFort(context.Background(), "  ", "Texas")
	if res.Confidence != "failed" || res.Query != "(no location)" {
		t.Errorf("got %+v", res)
	}
}

func TestGeocodeFort_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusForbidden)
	}))
	defer srv.Close()

	res := testGeocoder(srv.URL).GeocodeFort(context.Background(), "Alamo", "Texas")
	if res.Confidence != "failed" {
		t.Errorf("confidence: %q", res.Confidence)
	}
}

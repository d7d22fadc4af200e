package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tripmate/rdx"
)

var ErrNotFound = errors.New("places: not found")

const geocodeCacheTTL = 7 * 24 * time.Hour

// Geocoder wraps the Nominatim API for forward and reverse geocoding.
type Geocoder struct {
	BaseURL string
	HTTP    *http.Client
}

func NewGeocoder() *Geocoder {
	return &Geocoder{
		BaseURL: "https://nominatim.openstreetmap.org",
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

type nominatimResult struct {
	Lat     string `json:"lat"`
	Lon     string `json:"lon"`
	Address struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		County  string `json:"county"`
		Country string `json:"country"`
	} `json:"address"`
}

// GeocodeCity resolves a city name to coordinates, with a week-long
// Redis cache since cities do not move.
func (g *Geocoder) GeocodeCity(ctx context.Context, city string) (lat, lng float64, err error) {
	cacheKey := "geo:v1:city:" + normQuery(city)
	if cached, err := rdx.RdxGet(cacheKey); err == nil && cached != "" {
		var xy [2]float64
		if json.Unmarshal([]byte(cached), &xy) == nil {
			return xy[0], xy[1], nil
		}
	}

	endpoint := fmt.Sprintf("%s/search?format=json&limit=1&q=%s", g.BaseURL, url.QueryEscape(city))
	var results []nominatimResult
	if err := g.getJSON(ctx, endpoint, &results); err != nil {
		return 0, 0, err
	}
	if len(results) == 0 {
		return 0, 0, ErrNotFound
	}
	fmt.Sscanf(results[0].Lat, "%f", &lat)
	fmt.Sscanf(results[0].Lon, "%f", &lng)

	if buf, err := json.Marshal([2]float64{lat, lng}); err == nil {
		if err := rdx.RdxSetTTL(cacheKey, string(buf), geocodeCacheTTL); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}
	return lat, lng, nil
}

// ReverseCity resolves coordinates to a display city name. Korean
// administrative suffixes are stripped so "서울특별시" and "서울" compare
// equal in the region-chat gate.
func (g *Geocoder) ReverseCity(ctx context.Context, lat, lon float64) (city, country string, err error) {
	endpoint := fmt.Sprintf("%s/reverse?format=json&lat=%f&lon=%f&zoom=10&addressdetails=1", g.BaseURL, lat, lon)
	var result nominatimResult
	if err := g.getJSON(ctx, endpoint, &result); err != nil {
		return "", "", err
	}
	a := result.Address
	name := firstNonEmpty(a.City, a.Town, a.Village, a.County)
	if name == "" {
		return "", a.Country, ErrNotFound
	}
	return CleanCityName(name, a.Country), a.Country, nil
}

// CleanCityName strips Korean administrative-division suffixes; city
// names elsewhere pass through unchanged.
func CleanCityName(name, country string) string {
	if country != "대한민국" && country != "South Korea" {
		return name
	}
	for _, suffix := range []string{"특별자치도", "특별자치시", "광역시", "특별시"} {
		if strings.HasSuffix(name, suffix) {
			return strings.TrimSuffix(name, suffix)
		}
	}
	return name
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func (g *Geocoder) getJSON(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "tripmate/1.0")
	resp, err := g.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("places: geocoder status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// Package places finds candidate stops around a point and geocodes
// cities, caching results in Redis keyed by ~2km map tiles.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"tripmate/rdx"
)

// gridDeg is the cache tile size, roughly 2.2km at mid latitudes.
const gridDeg = 0.02

const (
	nearbyCacheTTL = 60 * time.Minute
	searchCacheTTL = 10 * time.Minute
)

// Place is one search result candidate for the planner.
type Place struct {
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Category string  `json:"category,omitempty"`
	Rate     int     `json:"rate,omitempty"`
	Source   string  `json:"source"`
	Ref      string  `json:"ref,omitempty"`
}

// Searcher queries OpenTripMap with a Redis read-through cache.
type Searcher struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func NewSearcher() *Searcher {
	return &Searcher{
		BaseURL: "https://api.opentripmap.com/0.1/en",
		APIKey:  os.Getenv("OTM_API_KEY"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

type otmFeature struct {
	Properties struct {
		XID  string `json:"xid"`
		Name string `json:"name"`
		Rate int    `json:"rate"`
		Kind string `json:"kinds"`
	} `json:"properties"`
	Geometry struct {
		Coordinates [2]float64 `json:"coordinates"` // lon, lat
	} `json:"geometry"`
}

type otmResponse struct {
	Features []otmFeature `json:"features"`
}

// Nearby lists rated places around a point.
func (s *Searcher) Nearby(ctx context.Context, lat, lon float64, limit, rate int) ([]Place, error) {
	if limit <= 0 {
		limit = 20
	}
	if rate <= 0 {
		rate = 1
	}
	cacheKey := fmt.Sprintf("places:v1:%s:nearby:rate=%d", regionKey(lat, lon), rate)
	if hit, ok := cacheGet(cacheKey); ok {
		return hit, nil
	}

	endpoint := fmt.Sprintf("%s/places/radius?radius=3000&lon=%f&lat=%f&rate=%d&limit=%d&format=geojson&apikey=%s",
		s.BaseURL, lon, lat, rate, limit, s.APIKey)
	places, err := s.fetch(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	cachePut(cacheKey, places, nearbyCacheTTL)
	return places, nil
}

// Search looks up places by name near a point.
func (s *Searcher) Search(ctx context.Context, q string, lat, lon float64, limit int) ([]Place, error) {
	if limit <= 0 {
		limit = 20
	}
	cacheKey := fmt.Sprintf("places:v1:%s:q=%s", regionKey(lat, lon), normQuery(q))
	if hit, ok := cacheGet(cacheKey); ok {
		return hit, nil
	}

	endpoint := fmt.Sprintf("%s/places/autosuggest?name=%s&radius=20000&lon=%f&lat=%f&limit=%d&format=geojson&apikey=%s",
		s.BaseURL, url.QueryEscape(q), lon, lat, limit, s.APIKey)
	places, err := s.fetch(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	cachePut(cacheKey, places, searchCacheTTL)
	return places, nil
}

func (s *Searcher) fetch(ctx context.Context, endpoint string) ([]Place, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("places: opentripmap status %d", resp.StatusCode)
	}
	var body otmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	places := make([]Place, 0, len(body.Features))
	for _, f := range body.Features {
		if f.Properties.Name == "" {
			continue
		}
		places = append(places, Place{
			Name:     f.Properties.Name,
			Lat:      f.Geometry.Coordinates[1],
			Lon:      f.Geometry.Coordinates[0],
			Category: firstKind(f.Properties.Kind),
			Rate:     f.Properties.Rate,
			Source:   "otm",
			Ref:      f.Properties.XID,
		})
	}
	return places, nil
}

// regionKey buckets a coordinate into its cache tile.
func regionKey(lat, lon float64) string {
	return fmt.Sprintf("z13:lat%d:lon%d", int(math.Floor(lat/gridDeg)), int(math.Floor(lon/gridDeg)))
}

func normQuery(q string) string {
	t := strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(q))), " ")
	if t == "" {
		return "nearby"
	}
	return t
}

func firstKind(kinds string) string {
	if i := strings.IndexByte(kinds, ','); i >= 0 {
		return kinds[:i]
	}
	return kinds
}

func cacheGet(key string) ([]Place, bool) {
	raw, err := rdx.RdxGet(key)
	if err != nil || raw == "" {
		return nil, false
	}
	var places []Place
	if json.Unmarshal([]byte(raw), &places) != nil {
		return nil, false
	}
	return places, true
}

func cachePut(key string, places []Place, ttl time.Duration) {
	if buf, err := json.Marshal(places); err == nil {
		_ = rdx.RdxSetTTL(key, string(buf), ttl)
	}
}

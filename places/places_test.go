package places

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanCityName(t *testing.T) {
	cases := []struct {
		name, country, want string
	}{
		{"서울특별시", "대한민국", "서울"},
		{"부산광역시", "대한민국", "부산"},
		{"제주특별자치도", "대한민국", "제주"},
		{"세종특별자치시", "대한민국", "세종"},
		{"수원시", "대한민국", "수원시"},
		{"Paris", "France", "Paris"},
		{"서울특별시", "Japan", "서울특별시"}, // suffix rules apply to Korea only
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CleanCityName(c.name, c.country), "%s (%s)", c.name, c.country)
	}
}

func TestRegionKeyBucketsNearbyPoints(t *testing.T) {
	a := regionKey(37.5665, 126.9780)
	b := regionKey(37.5667, 126.9782) // a few hundred meters away, same tile
	c := regionKey(37.60, 127.05)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestNormQuery(t *testing.T) {
	assert.Equal(t, "city hall", normQuery("  City   Hall "))
	assert.Equal(t, "nearby", normQuery(""))
	assert.Equal(t, "nearby", normQuery("   "))
}

func TestFirstKind(t *testing.T) {
	assert.Equal(t, "museums", firstKind("museums,cultural,interesting_places"))
	assert.Equal(t, "museums", firstKind("museums"))
	assert.Equal(t, "", firstKind(""))
}

func TestReverseCity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		w.Write([]byte(`{"address":{"city":"부산광역시","country":"대한민국"}}`))
	}))
	defer srv.Close()

	g := &Geocoder{BaseURL: srv.URL, HTTP: srv.Client()}
	city, country, err := g.ReverseCity(context.Background(), 35.1796, 129.0756)
	require.NoError(t, err)
	assert.Equal(t, "부산", city)
	assert.Equal(t, "대한민국", country)
}

func TestReverseCityFallbackFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"address":{"town":"Gimpo","country":"South Korea"}}`))
	}))
	defer srv.Close()

	g := &Geocoder{BaseURL: srv.URL, HTTP: srv.Client()}
	city, _, err := g.ReverseCity(context.Background(), 37.6, 126.7)
	require.NoError(t, err)
	assert.Equal(t, "Gimpo", city)
}

func TestSearcherFetchParsesFeatures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features":[
			{"properties":{"xid":"W123","name":"Gyeongbokgung","rate":3,"kinds":"museums,cultural"},"geometry":{"coordinates":[126.977,37.579]}},
			{"properties":{"xid":"W456","name":"","rate":1,"kinds":"other"},"geometry":{"coordinates":[126.9,37.5]}}
		]}`))
	}))
	defer srv.Close()

	s := &Searcher{BaseURL: srv.URL, HTTP: srv.Client()}
	got, err := s.fetch(context.Background(), srv.URL+"/places/radius")
	require.NoError(t, err)
	require.Len(t, got, 1, "unnamed features dropped")
	assert.Equal(t, "Gyeongbokgung", got[0].Name)
	assert.Equal(t, 37.579, got[0].Lat)
	assert.Equal(t, 126.977, got[0].Lon)
	assert.Equal(t, "museums", got[0].Category)
	assert.Equal(t, "W123", got[0].Ref)
}

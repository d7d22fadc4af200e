package places

import (
	"errors"
	"net/http"

	"tripmate/utils"

	"github.com/julienschmidt/httprouter"
)

var (
	searcher = NewSearcher()
	geocoder = NewGeocoder()
)

// GET /api/places/nearby?lat=..&lon=..&limit=..&rate=..
func GetNearbyPlaces(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	lat, okLat := utils.ParseFloatQuery(r, "lat")
	lon, okLon := utils.ParseFloatQuery(r, "lon")
	if !okLat || !okLon {
		utils.Error(w, http.StatusBadRequest, "lat and lon are required")
		return
	}
	opts := utils.ParseQueryOptions(r)
	rate := 1
	if v, ok := utils.ParseFloatQuery(r, "rate"); ok {
		rate = int(v)
	}

	result, err := searcher.Nearby(r.Context(), lat, lon, opts.Limit, rate)
	if err != nil {
		utils.Error(w, http.StatusBadGateway, "Place lookup failed")
		return
	}
	utils.JSON(w, http.StatusOK, result)
}

// GET /api/places/search?q=..&lat=..&lon=..&limit=..
func SearchPlaces(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query().Get("q")
	if q == "" {
		utils.Error(w, http.StatusBadRequest, "q is required")
		return
	}
	lat, _ := utils.ParseFloatQuery(r, "lat")
	lon, _ := utils.ParseFloatQuery(r, "lon")
	opts := utils.ParseQueryOptions(r)

	result, err := searcher.Search(r.Context(), q, lat, lon, opts.Limit)
	if err != nil {
		utils.Error(w, http.StatusBadGateway, "Place search failed")
		return
	}
	utils.JSON(w, http.StatusOK, result)
}

// GET /api/geo/geocode?city=..
func GeocodeCity(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	city := r.URL.Query().Get("city")
	if city == "" {
		utils.Error(w, http.StatusBadRequest, "city is required")
		return
	}
	lat, lng, err := geocoder.GeocodeCity(r.Context(), city)
	if errors.Is(err, ErrNotFound) {
		utils.Error(w, http.StatusNotFound, "City not found")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusBadGateway, "Geocoding failed")
		return
	}
	utils.JSON(w, http.StatusOK, utils.M{"lat": lat, "lng": lng})
}

// GET /api/geo/reverse?lat=..&lon=..
func ReverseGeocode(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	lat, okLat := utils.ParseFloatQuery(r, "lat")
	lon, okLon := utils.ParseFloatQuery(r, "lon")
	if !okLat || !okLon {
		utils.Error(w, http.StatusBadRequest, "lat and lon are required")
		return
	}
	city, country, err := geocoder.ReverseCity(r.Context(), lat, lon)
	if err != nil && !errors.Is(err, ErrNotFound) {
		utils.Error(w, http.StatusBadGateway, "Reverse geocoding failed")
		return
	}
	utils.JSON(w, http.StatusOK, utils.M{"city": city, "country": country})
}

// Package weather proxies current conditions for a trip city from
// weatherapi.com, cached briefly in Redis.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"tripmate/rdx"
	"tripmate/utils"

	"github.com/julienschmidt/httprouter"
)

const cacheTTL = 10 * time.Minute

type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func NewClient() *Client {
	return &Client{
		BaseURL: "http://api.weatherapi.com/v1",
		APIKey:  os.Getenv("WEATHER_API_KEY"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Current holds the subset of the weatherapi payload the clients use.
type Current struct {
	Location struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"location"`
	Current struct {
		TempC     float64 `json:"temp_c"`
		Condition struct {
			Text string `json:"text"`
			Icon string `json:"icon"`
		} `json:"condition"`
		Humidity int     `json:"humidity"`
		WindKph  float64 `json:"wind_kph"`
	} `json:"current"`
}

func (c *Client) CurrentByCity(ctx context.Context, city string) (*Current, error) {
	cacheKey := "weather:v1:" + city
	if raw, err := rdx.RdxGet(cacheKey); err == nil && raw != "" {
		var cached Current
		if json.Unmarshal([]byte(raw), &cached) == nil {
			return &cached, nil
		}
	}

	endpoint := fmt.Sprintf("%s/current.json?key=%s&q=%s&aqi=no", c.BaseURL, c.APIKey, url.QueryEscape(city))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather: status %d", resp.StatusCode)
	}

	var current Current
	if err := json.NewDecoder(resp.Body).Decode(&current); err != nil {
		return nil, err
	}
	if buf, err := json.Marshal(current); err == nil {
		_ = rdx.RdxSetTTL(cacheKey, string(buf), cacheTTL)
	}
	return &current, nil
}

var defaultClient = NewClient()

// GET /api/weather?city=..
func GetWeather(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	city := r.URL.Query().Get("city")
	if city == "" {
		utils.Error(w, http.StatusBadRequest, "city is required")
		return
	}
	current, err := defaultClient.CurrentByCity(r.Context(), city)
	if err != nil {
		utils.Error(w, http.StatusBadGateway, "Weather lookup failed")
		return
	}
	utils.JSON(w, http.StatusOK, current)
}

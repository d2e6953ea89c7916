// Package geocode provides forward geocoding for map pins via Nominatim,
// with Redis-backed caching of resolved addresses.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mmcloughlin/geohash"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"housing-match-engine/internal/utils"
)

const (
	cacheKeyPrefix = "geocode:"
	cacheTTL       = 7 * 24 * time.Hour
	geohashChars   = 7 // ~150m cells, enough for map pin clustering
)

// Result is a resolved address with its geohash cell.
type Result struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DisplayName string  `json:"display_name"`
	Geohash     string  `json:"geohash"`
}

// nominatimPlace is one entry of the Nominatim search response.
type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Service is a thin proxy to the Nominatim search endpoint.
type Service struct {
	baseURL string
	client  *http.Client
	cache   *redis.Client
}

// NewService creates a new geocoding service. The redis client may be nil,
// in which case every lookup goes to Nominatim.
func NewService(baseURL string, cache *redis.Client) *Service {
	return &Service{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		cache:   cache,
	}
}

// Forward resolves a free-text address to coordinates, serving repeated
// lookups from cache.
func (s *Service) Forward(ctx context.Context, address string) (*Result, error) {
	if address == "" {
		return nil, fmt.Errorf("address is required")
	}

	key := cacheKeyPrefix + address
	if s.cache != nil {
		data, err := s.cache.Get(ctx, key).Bytes()
		if err == nil {
			var cached Result
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		} else if err != redis.Nil {
			utils.GetLogger().Warn("geocode cache read failed", zap.Error(err))
		}
	}

	result, err := s.lookup(ctx, address)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			if err := s.cache.Set(ctx, key, data, cacheTTL).Err(); err != nil {
				utils.GetLogger().Warn("geocode cache write failed", zap.Error(err))
			}
		}
	}

	return result, nil
}

func (s *Service) lookup(ctx context.Context, address string) (*Result, error) {
	endpoint := fmt.Sprintf("%s/search?q=%s&format=json&limit=1",
		s.baseURL, url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	// Nominatim usage policy requires an identifying user agent.
	req.Header.Set("User-Agent", "housing-match-engine")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding API returned status %d", resp.StatusCode)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("failed to decode geocoding response: %w", err)
	}

	if len(places) == 0 {
		return nil, fmt.Errorf("no results for address %q", address)
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude in response: %w", err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude in response: %w", err)
	}

	return &Result{
		Latitude:    lat,
		Longitude:   lon,
		DisplayName: places[0].DisplayName,
		Geohash:     geohash.EncodeWithPrecision(lat, lon, geohashChars),
	}, nil
}

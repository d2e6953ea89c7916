// Package rentals provides a client for the external rental-listings API
// used to import third-party listings into the local store.
package rentals

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"housing-match-engine/internal/models"
	"housing-match-engine/internal/utils"
)

// Client calls the rental-listings API.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// apiListing is one listing in the rental API response.
type apiListing struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Price         float64  `json:"price"`
	PropertyType  string   `json:"property_type"`
	AvailableFrom string   `json:"available_from"`
	Amenities     []string `json:"amenities"`
	Address       string   `json:"address"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	URL           string   `json:"url"`
}

// searchResponse is a page of rental API results.
type searchResponse struct {
	Listings []apiListing `json:"listings"`
	Page     int          `json:"page"`
	Pages    int          `json:"pages"`
}

// ImportResult summarizes one sync run.
type ImportResult struct {
	BatchID string `json:"batch_id"`
	Fetched int    `json:"fetched"`
	Pages   int    `json:"pages"`
}

// NewClient creates a new rental-listings API client.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured reports whether the client has an API endpoint to call.
func (c *Client) Configured() bool {
	return c.baseURL != ""
}

// FetchCity pulls every listing page for a city and converts the results
// into ListingCreate records tagged with a fresh import batch ID.
func (c *Client) FetchCity(ctx context.Context, city string, maxPages int) ([]*models.ListingCreate, *ImportResult, error) {
	if !c.Configured() {
		return nil, nil, fmt.Errorf("rentals API is not configured")
	}
	if maxPages <= 0 {
		maxPages = 5
	}

	batchID := uuid.New().String()
	result := &ImportResult{BatchID: batchID}
	var out []*models.ListingCreate

	for page := 1; page <= maxPages; page++ {
		resp, err := c.searchPage(ctx, city, page)
		if err != nil {
			return nil, nil, err
		}

		for _, l := range resp.Listings {
			out = append(out, toListingCreate(l, batchID))
		}
		result.Fetched += len(resp.Listings)
		result.Pages = page

		if page >= resp.Pages {
			break
		}
	}

	utils.GetLogger().Info("Fetched rental listings",
		zap.String("city", city),
		zap.String("batch_id", batchID),
		zap.Int("fetched", result.Fetched),
		zap.Int("pages", result.Pages),
	)

	return out, result, nil
}

func (c *Client) searchPage(ctx context.Context, city string, page int) (*searchResponse, error) {
	endpoint := fmt.Sprintf("%s/v1/listings?city=%s&page=%s",
		c.baseURL, url.QueryEscape(city), strconv.Itoa(page))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rentals API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rentals API returned status %d", resp.StatusCode)
	}

	var search searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return nil, fmt.Errorf("failed to decode rentals response: %w", err)
	}

	return &search, nil
}

func toListingCreate(l apiListing, batchID string) *models.ListingCreate {
	listingType := models.ListingTypeWholeUnit
	if l.PropertyType == "room" || l.PropertyType == "shared" {
		listingType = models.ListingTypeRoom
	}

	return &models.ListingCreate{
		Title:         l.Title,
		Rent:          l.Price,
		Type:          listingType,
		MoveInDate:    l.AvailableFrom,
		Features:      l.Amenities,
		Address:       l.Address,
		Latitude:      l.Latitude,
		Longitude:     l.Longitude,
		SourceURL:     l.URL,
		ImportBatchID: batchID,
	}
}

package rentals

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchCity_PaginatesAndConverts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "Minneapolis", r.URL.Query().Get("city"))

		page := r.URL.Query().Get("page")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{
			"listings": [
				{"id": "a-%s", "title": "Room near campus %s", "price": 750,
				 "property_type": "room", "available_from": "2025-09-01",
				 "amenities": ["pet-free"], "address": "123 College Ave",
				 "url": "https://rentals.example/a-%s"}
			],
			"page": %s,
			"pages": 2
		}`, page, page, page, page)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key")
	listings, result, err := client.FetchCity(context.Background(), "Minneapolis", 5)

	require.NoError(t, err)
	assert.Len(t, listings, 2)
	assert.Equal(t, 2, result.Fetched)
	assert.Equal(t, 2, result.Pages)
	assert.NotEmpty(t, result.BatchID)

	first := listings[0]
	assert.Equal(t, "Room near campus 1", first.Title)
	assert.Equal(t, 750.0, first.Rent)
	assert.Equal(t, "room", string(first.Type))
	assert.Equal(t, "2025-09-01", first.MoveInDate)
	assert.Equal(t, result.BatchID, first.ImportBatchID)
	assert.Equal(t, "https://rentals.example/a-1", first.SourceURL)
}

func TestFetchCity_MaxPagesCapsFetch(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"listings": [{"title": "x", "price": 500, "property_type": "apartment"}], "page": %d, "pages": 100}`, calls)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	listings, result, err := client.FetchCity(context.Background(), "Austin", 3)

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Len(t, listings, 3)
	assert.Equal(t, 3, result.Pages)
	assert.Equal(t, "whole-unit", string(listings[0].Type))
}

func TestFetchCity_NotConfigured(t *testing.T) {
	client := NewClient("", "")
	_, _, err := client.FetchCity(context.Background(), "Denver", 1)
	assert.Error(t, err)
}

func TestFetchCity_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key")
	_, _, err := client.FetchCity(context.Background(), "Denver", 1)
	assert.ErrorContains(t, err, "502")
}

package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForward_ParsesNominatimResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "123 College Ave", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"44.9778","lon":"-93.2650","display_name":"123 College Ave, Minneapolis"}]`))
	}))
	defer srv.Close()

	svc := NewService(srv.URL, nil)
	result, err := svc.Forward(context.Background(), "123 College Ave")

	require.NoError(t, err)
	assert.InDelta(t, 44.9778, result.Latitude, 0.0001)
	assert.InDelta(t, -93.2650, result.Longitude, 0.0001)
	assert.Equal(t, "123 College Ave, Minneapolis", result.DisplayName)
	assert.Len(t, result.Geohash, geohashChars)
}

func TestForward_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	svc := NewService(srv.URL, nil)
	_, err := svc.Forward(context.Background(), "nowhere at all")

	assert.Error(t, err)
}

func TestForward_EmptyAddress(t *testing.T) {
	svc := NewService("http://unused", nil)
	_, err := svc.Forward(context.Background(), "")
	assert.Error(t, err)
}

func TestForward_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	svc := NewService(srv.URL, nil)
	_, err := svc.Forward(context.Background(), "somewhere")

	assert.ErrorContains(t, err, "429")
}

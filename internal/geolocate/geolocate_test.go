package geolocate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReverseGeocode_FormatsCityRegionCountry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/reverse", r.URL.Path)
		require.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		_, _ = w.Write([]byte(`{"address":{"city":"London","state":"England","country":"United Kingdom"}}`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURLs(srv.URL, srv.URL)
	label, err := c.ReverseGeocode(context.Background(), 51.5074, -0.1278)
	require.NoError(t, err)
	assert.Equal(t, "London, England, United Kingdom", label)
}

func TestReverseGeocode_Fallbacks(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "town and county when city/state missing",
			body: `{"address":{"town":"Windsor","county":"Berkshire","country":"United Kingdom"}}`,
			want: "Windsor, Berkshire, United Kingdom",
		},
		{
			name: "village fallback",
			body: `{"address":{"village":"Bibury","state":"England","country":"United Kingdom"}}`,
			want: "Bibury, England, United Kingdom",
		},
		{
			name: "unknown placeholders",
			body: `{"address":{"country":"France"}}`,
			want: "Unknown, Unknown, France",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClientWithBaseURLs(srv.URL, srv.URL)
			label, err := c.ReverseGeocode(context.Background(), 0, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, label)
		})
	}
}

func TestLookupIP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/json/", r.URL.Path)
		_, _ = w.Write([]byte(`{"city":"Berlin","region":"Berlin","country_name":"Germany","latitude":52.52,"longitude":13.405}`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURLs(srv.URL, srv.URL)
	loc, err := c.LookupIP(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Berlin, Berlin, Germany", loc.Label)
	require.NotNil(t, loc.Latitude)
	assert.Equal(t, 52.52, *loc.Latitude)
}

func TestLookupIP_MissingCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"city":"Berlin","region":"Berlin","country_name":"Germany"}`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURLs(srv.URL, srv.URL)
	loc, err := c.LookupIP(context.Background())
	require.NoError(t, err)
	assert.Nil(t, loc.Latitude)
	assert.Nil(t, loc.Longitude)
}

func TestLookupHandler_ReverseGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"address":{"city":"Paris","state":"Île-de-France","country":"France"}}`))
	}))
	defer srv.Close()

	handler := SetupRoutes(NewClientWithBaseURLs(srv.URL, srv.URL))
	req := httptest.NewRequest(http.MethodGet, "/?latitude=48.8566&longitude=2.3522", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"location":"Paris, Île-de-France, France","latitude":48.8566,"longitude":2.3522}`,
		rec.Body.String())
}

func TestLookupHandler_BadCoordinates(t *testing.T) {
	handler := SetupRoutes(NewClient())
	req := httptest.NewRequest(http.MethodGet, "/?latitude=abc&longitude=2.3", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLookupHandler_UpstreamFailureDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	handler := SetupRoutes(NewClientWithBaseURLs(srv.URL, srv.URL))
	req := httptest.NewRequest(http.MethodGet, "/?latitude=1&longitude=2", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), LocationUnavailable)
}

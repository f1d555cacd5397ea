package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", 20, 0},
		{"explicit", "limit=5&offset=10", 5, 10},
		{"limit clamped to max", "limit=500", 100, 0},
		{"garbage ignored", "limit=abc&offset=-3", 20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/products?"+tt.query, nil)
			page := parsePage(r)
			assert.Equal(t, tt.wantLimit, page.Limit)
			assert.Equal(t, tt.wantOffset, page.Offset)
		})
	}
}

func TestGetPathID(t *testing.T) {
	newReq := func(raw string) *http.Request {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", raw)
		r := httptest.NewRequest(http.MethodGet, "/api/products/"+raw, nil)
		return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}

	id, err := getPathID(newReq("42"), "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = getPathID(newReq("abc"), "id")
	require.Error(t, err)

	_, err = getPathID(newReq("0"), "id")
	require.Error(t, err)
}

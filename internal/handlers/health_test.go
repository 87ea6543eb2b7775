package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/jwebster45206/zoinkies/pkg/catalog"
	"github.com/jwebster45206/zoinkies/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError, // Reduce noise in tests
	}))
}

func TestHealthHandler_ServeHTTP(t *testing.T) {
	okCatalog := catalog.Static(mustCatalog(t))
	brokenCatalog := catalog.NewSource(func() (*catalog.Catalog, error) {
		return nil, errors.New("missing file")
	}, testLogger())

	tests := []struct {
		name            string
		pingErr         error
		refs            CatalogProvider
		expectedStatus  int
		expectedHealth  string
		expectedStorage string
		expectedCatalog string
	}{
		{
			name:            "all healthy",
			refs:            okCatalog,
			expectedStatus:  http.StatusOK,
			expectedHealth:  "healthy",
			expectedStorage: "healthy",
			expectedCatalog: "healthy",
		},
		{
			name:            "unhealthy storage",
			pingErr:         errors.New("connection failed"),
			refs:            okCatalog,
			expectedStatus:  http.StatusServiceUnavailable,
			expectedHealth:  "degraded",
			expectedStorage: "unhealthy",
			expectedCatalog: "healthy",
		},
		{
			name:            "unavailable catalog",
			refs:            brokenCatalog,
			expectedStatus:  http.StatusServiceUnavailable,
			expectedHealth:  "degraded",
			expectedStorage: "healthy",
			expectedCatalog: "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMockStorage()
			store.SetPingError(tt.pingErr)
			handler := NewHealthHandler(store, tt.refs, testLogger())

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var resp HealthResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.expectedHealth, resp.Status)
			assert.Equal(t, "zoinkies", resp.Service)
			assert.Equal(t, tt.expectedStorage, resp.Components["storage"])
			assert.Equal(t, tt.expectedCatalog, resp.Components["catalog"])
			assert.False(t, resp.Timestamp.IsZero())
		})
	}
}

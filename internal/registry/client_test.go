package registry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aleister1102/companywatch/internal/common/errorwrapper"
	"github.com/aleister1102/companywatch/internal/config"
	"github.com/aleister1102/companywatch/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, mutate func(*config.RegistryConfig)) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.NewDefaultRegistryConfig()
	cfg.BaseURL = server.URL + "/"
	cfg.APIKey = "test-key"
	cfg.Retry.MaxRetries = 0
	if mutate != nil {
		mutate(&cfg)
	}

	client, err := NewClient(cfg, zerolog.Nop())
	require.NoError(t, err)
	return client
}

func TestFetchOfficers(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/company/01234567/officers", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "test-key", user)
		assert.Empty(t, pass)
		assert.Empty(t, r.URL.Query().Get("items_per_page"))

		_, _ = w.Write([]byte(`{
			"items_per_page": 35,
			"items": [
				{"name": "Alice", "appointed_on": "2020-01-01", "links": {"self": "/o/1"}},
				{"name": "Bob", "appointed_on": "2021-05-05", "links": {"self": "/o/2"}}
			]
		}`))
	}, nil)

	officers, err := client.FetchOfficers(context.Background(), "01234567")
	require.NoError(t, err)
	require.Len(t, officers, 2)
	assert.Equal(t, "Alice", officers[0].String("name"))
	assert.Equal(t, "/o/2", officers[1].String("links.self"))
}

func TestFetchFilingHistory_ItemsPerPage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/company/SC123456/filing-history", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("items_per_page"))
		_, _ = w.Write([]byte(`{"items": [{"transaction_id": "T1", "type": "AR01", "date": "2022-03-01"}]}`))
	}, func(cfg *config.RegistryConfig) { cfg.ItemsPerPage = 100 })

	filings, err := client.FetchFilingHistory(context.Background(), "SC123456")
	require.NoError(t, err)
	require.Len(t, filings, 1)
	assert.Equal(t, "T1", filings[0].String("transaction_id"))
}

func TestFetch_MissingItemsIsEmptyList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"total_results": 0}`))
	}, nil)

	filings, err := client.FetchFilingHistory(context.Background(), "01234567")
	require.NoError(t, err)
	assert.NotNil(t, filings)
	assert.Empty(t, filings)
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid authorization"}`, http.StatusUnauthorized)
	}, nil)

	officers, err := client.FetchOfficers(context.Background(), "01234567")
	assert.Nil(t, officers)

	var fetchErr *models.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, models.FieldOfficers, fetchErr.Field)
	assert.Contains(t, fetchErr.Endpoint, "/company/01234567/officers")

	var httpErr *errorwrapper.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
	assert.Equal(t, models.ErrorKindFetch, models.ErrorKind(err))
}

func TestFetch_RetriesRateLimit(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"items": []}`))
	}, func(cfg *config.RegistryConfig) {
		cfg.Retry.MaxRetries = 1
		cfg.Retry.BaseDelayMs = 1
		cfg.Retry.MaxDelayMs = 1
	})

	_, err := client.FetchOfficers(context.Background(), "01234567")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestFetch_CanceledContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items": []}`))
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchOfficers(ctx, "01234567")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

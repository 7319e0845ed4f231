package registry

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/aleister1102/companywatch/internal/config"
	"github.com/aleister1102/companywatch/internal/httpclient"
	"github.com/aleister1102/companywatch/internal/models"
	"github.com/rs/zerolog"
)

// itemsEnvelope is the list wrapper the registry uses for both endpoints.
// Anything besides items is ignored.
type itemsEnvelope struct {
	Items []models.Record `json:"items"`
}

// Client reads the public record of a company from the Companies House API
type Client struct {
	http         *httpclient.HTTPClient
	baseURL      string
	itemsPerPage int
	logger       zerolog.Logger
}

// NewClient creates a registry client authenticated with cfg.APIKey
func NewClient(cfg config.RegistryConfig, logger zerolog.Logger) (*Client, error) {
	moduleLogger := logger.With().Str("component", "RegistryClient").Logger()

	httpClient, err := httpclient.NewHTTPClientBuilder(moduleLogger).
		WithTimeout(cfg.Timeout()).
		WithUserAgent(cfg.UserAgent).
		WithBasicAuth(cfg.APIKey).
		WithHTTP2(cfg.EnableHTTP2).
		WithRetry(httpclient.RetryHandlerConfigFrom(cfg.Retry)).
		Build()
	if err != nil {
		return nil, err
	}

	return &Client{
		http:         httpClient,
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		itemsPerPage: cfg.ItemsPerPage,
		logger:       moduleLogger,
	}, nil
}

// FetchOfficers returns the current officer list of the company
func (c *Client) FetchOfficers(ctx context.Context, companyNumber string) ([]models.Record, error) {
	return c.fetchItems(ctx, models.FieldOfficers, companyNumber, "officers")
}

// FetchFilingHistory returns the current filing history of the company
func (c *Client) FetchFilingHistory(ctx context.Context, companyNumber string) ([]models.Record, error) {
	return c.fetchItems(ctx, models.FieldFilingHistory, companyNumber, "filing-history")
}

func (c *Client) fetchItems(ctx context.Context, field, companyNumber, resource string) ([]models.Record, error) {
	endpoint := c.baseURL + "/company/" + url.PathEscape(companyNumber) + "/" + resource

	var query url.Values
	if c.itemsPerPage > 0 {
		query = url.Values{"items_per_page": {strconv.Itoa(c.itemsPerPage)}}
	}

	var envelope itemsEnvelope
	if err := c.http.GetJSON(ctx, endpoint, query, &envelope); err != nil {
		return nil, &models.FetchError{Field: field, Endpoint: endpoint, Err: err}
	}

	items := envelope.Items
	if items == nil {
		items = []models.Record{}
	}

	c.logger.Debug().
		Str("field", field).
		Str("company_number", companyNumber).
		Int("items", len(items)).
		Msg("Fetched registry list")
	return items, nil
}

package fantasycalc

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wonny/readytrade/internal/contracts"
	"github.com/wonny/readytrade/pkg/httputil"
	"github.com/wonny/readytrade/pkg/logger"
)

// SourceName identifies this upstream in errors and logs
const SourceName = "FantasyCalc"

// DefaultBaseURL is the public FantasyCalc API
const DefaultBaseURL = "https://api.fantasycalc.com"

// Client fetches current trade values from FantasyCalc
// ⭐ SSOT: FantasyCalc calls only happen in this client
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new FantasyCalc client. An empty baseURL uses DefaultBaseURL.
func NewClient(httpClient *httputil.Client, log *logger.Logger, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// ValuesURL builds the request URL for settings
func (c *Client) ValuesURL(settings contracts.LeagueSettings) string {
	return fmt.Sprintf("%s/values/current?%s", c.baseURL, settings.Query().Encode())
}

// FetchPlayers performs a single GET for settings and flattens the response.
// Any transport error or non-2xx status becomes a FetchFailed error; nothing is retried.
func (c *Client) FetchPlayers(ctx context.Context, settings contracts.LeagueSettings) ([]contracts.Player, error) {
	fullURL := c.ValuesURL(settings)

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return nil, contracts.NewFetchError(SourceName, 0, err)
	}
	defer resp.Body.Close()

	if !httputil.IsSuccess(resp.StatusCode) {
		c.logger.WithFields(map[string]interface{}{
			"status_code": resp.StatusCode,
			"settings":    settings.Key(),
		}).Warn("FantasyCalc returned non-success status")
		return nil, contracts.NewFetchError(SourceName, resp.StatusCode, nil)
	}

	var items []ValueResponse
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, contracts.NewFetchError(SourceName, 0, fmt.Errorf("decode response: %w", err))
	}

	players := make([]contracts.Player, 0, len(items))
	for _, item := range items {
		players = append(players, item.toPlayer())
	}

	c.logger.WithFields(map[string]interface{}{
		"settings": settings.Key(),
		"count":    len(players),
	}).Debug("Fetched player values")

	return players, nil
}

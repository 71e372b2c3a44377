package ffcalc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/wonny/readytrade/internal/contracts"
	"github.com/wonny/readytrade/pkg/httputil"
	"github.com/wonny/readytrade/pkg/logger"
)

// SourceName identifies this upstream in errors and logs
const SourceName = "ADP"

// DefaultBaseURL is the Fantasy Football Calculator v1 API
const DefaultBaseURL = "https://fantasyfootballcalculator.com/api/v1"

// Client fetches average draft position boards
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new ADP client. An empty baseURL uses DefaultBaseURL.
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

// ADPURL builds {base}/adp/{type}?teams=&year=&type=
func (c *Client) ADPURL(query contracts.ADPQuery) string {
	adpType := query.Type
	if adpType == "" {
		adpType = contracts.ADPStandard
	}

	q := url.Values{}
	if query.Teams > 0 {
		q.Set("teams", strconv.Itoa(query.Teams))
	}
	if query.Year > 0 {
		q.Set("year", strconv.Itoa(query.Year))
	}
	if query.Type != "" {
		q.Set("type", string(query.Type))
	}

	u := fmt.Sprintf("%s/adp/%s", c.baseURL, adpType)
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

// FetchADP performs a single GET for the board described by query
func (c *Client) FetchADP(ctx context.Context, query contracts.ADPQuery) (*contracts.ADPResponse, error) {
	resp, err := c.httpClient.Get(ctx, c.ADPURL(query))
	if err != nil {
		return nil, contracts.NewFetchError(SourceName, 0, err)
	}
	defer resp.Body.Close()

	if !httputil.IsSuccess(resp.StatusCode) {
		c.logger.WithField("status_code", resp.StatusCode).Warn("ADP source returned non-success status")
		return nil, contracts.NewFetchError(SourceName, resp.StatusCode, nil)
	}

	var board contracts.ADPResponse
	if err := json.NewDecoder(resp.Body).Decode(&board); err != nil {
		return nil, contracts.NewFetchError(SourceName, 0, fmt.Errorf("decode response: %w", err))
	}

	c.logger.WithFields(map[string]interface{}{
		"type":    query.Type,
		"players": len(board.Players),
	}).Debug("Fetched ADP board")

	return &board, nil
}

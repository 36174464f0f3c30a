package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Client talks to the RateEdge API. Every endpoint wraps its payload in
// a {success, data} envelope; a success=false body is surfaced as an
// error just like a transport failure.
type Client struct {
	http    *http.Client
	baseURL string
}

func NewClient(httpClient *http.Client, baseURL string) *Client {
	return &Client{http: httpClient, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// StatisticsData mirrors the /api/statistics payload. Fields are
// pointers so the loaders can tell "absent" from zero.
type StatisticsData struct {
	TotalRecords *int64  `json:"total_records"`
	Currencies   *int64  `json:"currencies"`
	LatestDate   *string `json:"latest_date"`
}

// RateObservation is one element of the /api/rates payload.
type RateObservation struct {
	Date     string  `json:"date"`
	Currency string  `json:"currency"`
	Tenor    string  `json:"tenor"`
	Rate     float64 `json:"rate"`
}

// TriggeredAlertData is one element of the /api/alerts/triggered payload.
type TriggeredAlertData struct {
	Name        string  `json:"name"`
	Message     string  `json:"message"`
	RatePercent float64 `json:"rate_percent"`
	TriggeredAt string  `json:"triggered_at"`
}

func (c *Client) GetStatistics(ctx context.Context) (StatisticsData, error) {
	var body struct {
		Success bool           `json:"success"`
		Error   string         `json:"error"`
		Data    StatisticsData `json:"data"`
	}
	if err := c.getJSON(ctx, "/api/statistics", nil, &body); err != nil {
		return StatisticsData{}, err
	}
	if !body.Success {
		return StatisticsData{}, fmt.Errorf("api returned non-success result for statistics: %s", body.Error)
	}
	return body.Data, nil
}

// GetLatestRate fetches the single most recent observation for a
// currency/tenor pair. A successful response with no observations
// returns (nil, nil).
func (c *Client) GetLatestRate(ctx context.Context, currency, tenor string) (*RateObservation, error) {
	params := url.Values{}
	params.Set("currency", currency)
	params.Set("tenor", tenor)
	params.Set("limit", "1")

	var body struct {
		Success bool              `json:"success"`
		Error   string            `json:"error"`
		Data    []RateObservation `json:"data"`
	}
	if err := c.getJSON(ctx, "/api/rates", params, &body); err != nil {
		return nil, err
	}
	if !body.Success {
		return nil, fmt.Errorf("api returned non-success result for %s/%s: %s", currency, tenor, body.Error)
	}
	if len(body.Data) == 0 {
		return nil, nil
	}
	return &body.Data[0], nil
}

func (c *Client) GetTriggeredAlerts(ctx context.Context) ([]TriggeredAlertData, error) {
	var body struct {
		Success bool                 `json:"success"`
		Error   string               `json:"error"`
		Data    []TriggeredAlertData `json:"data"`
	}
	if err := c.getJSON(ctx, "/api/alerts/triggered", nil, &body); err != nil {
		return nil, err
	}
	if !body.Success {
		return nil, fmt.Errorf("api returned non-success result for triggered alerts: %s", body.Error)
	}
	return body.Data, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request for %q: %w", path, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request for %q: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status code %d for %q: %s", resp.StatusCode, path, resp.Status)
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response for %q: %w", path, err)
	}
	return nil
}

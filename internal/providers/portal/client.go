package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/preston-bernstein/season-dashboard-service/internal/domain/activity"
	"github.com/preston-bernstein/season-dashboard-service/internal/domain/records"
	"github.com/preston-bernstein/season-dashboard-service/internal/providers"
)

// Config controls how the portal client reaches the live endpoint.
type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client fetches activity records from the live endpoint at {BaseURL}/{activity}.
type Client struct {
	client *resty.Client
	now    func() time.Time
}

// NewClient constructs a portal client with the provided configuration.
func NewClient(cfg Config) *Client {
	var rc *resty.Client
	if cfg.HTTPClient != nil {
		rc = resty.NewWithClient(cfg.HTTPClient)
	} else {
		rc = resty.New()
	}
	rc.SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetTimeout(resolveTimeout(cfg.Timeout)).
		SetHeader("Accept", "application/json")
	if cfg.APIKey != "" {
		rc.SetAuthToken(cfg.APIKey)
	}
	return &Client{client: rc, now: time.Now}
}

// FetchRecord retrieves the live record for a. The payload is validated and normalized before
// it is returned.
func (c *Client) FetchRecord(ctx context.Context, a activity.Activity) (records.Record, error) {
	if !a.Valid() {
		return records.Record{}, fmt.Errorf("%s: %w", providerName, activity.ErrUnknownActivity)
	}

	res, err := c.client.R().
		SetContext(ctx).
		SetPathParam("activity", a.String()).
		Get("/{activity}")
	if err != nil {
		return records.Record{}, fmt.Errorf("%s: %w", providerName, err)
	}

	if res.StatusCode() == http.StatusTooManyRequests {
		return records.Record{}, &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: res.StatusCode(),
			RetryAfter: parseRetryAfter(res.Header().Get("Retry-After"), c.now()),
			Remaining:  res.Header().Get("X-RateLimit-Remaining"),
			Message:    "portal rate limited",
		}
	}
	if res.IsError() || res.StatusCode() != http.StatusOK {
		return records.Record{}, fmt.Errorf("%s: unexpected status %d: %s", providerName, res.StatusCode(), truncate(res.Body()))
	}

	var payload records.Record
	if err := json.Unmarshal(res.Body(), &payload); err != nil {
		return records.Record{}, fmt.Errorf("%s: decode: %w", providerName, err)
	}
	return mapRecord(a, payload, c.now()), nil
}

func truncate(body []byte) string {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return strings.TrimSpace(string(body))
}

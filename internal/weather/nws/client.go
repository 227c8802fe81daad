package nws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/mcphersonwx/station-weather/internal/weather"
)

// DefaultPageLimit is the page size used for range queries; 1000 stays within
// the upper bound the NWS API accepts.
const DefaultPageLimit = 1000

// UpstreamError reports a non-success HTTP status from the observations API.
type UpstreamError struct {
	StatusCode int
	URL        string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d for %s", e.StatusCode, e.URL)
}

// BackoffConfig controls exponential backoff behaviour.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

var errCircuitOpen = errors.New("circuit breaker open")

// Client fetches observations for a single station from the NWS API.
// Every request carries the configured User-Agent (the NWS usage policy
// requires contact info) and asks for GeoJSON.
type Client struct {
	station    string
	userAgent  string
	baseURL    string
	httpClient *http.Client
	backoff    BackoffConfig
	circuit    *gobreaker.CircuitBreaker
}

// NewClient creates a Client for one station.
func NewClient(httpClient *http.Client, baseURL, station, userAgent string) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "nws",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		station:    station,
		userAgent:  userAgent,
		baseURL:    baseURL,
		httpClient: httpClient,
		backoff: BackoffConfig{
			MaxRetries:      3,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		},
		circuit: cb,
	}
}

// FetchRange retrieves every observation between start and end, following the
// collection's next-relation links until exhausted. A next link already
// carries its own query parameters, so the original ones are not re-attached.
// The result is sorted ascending by timestamp string (empty timestamps first).
// Any non-success page response surfaces as an *UpstreamError.
func (c *Client) FetchRange(ctx context.Context, start, end time.Time, limit int) ([]weather.Sample, error) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}

	values := url.Values{}
	values.Set("start", start.UTC().Truncate(time.Second).Format(time.RFC3339))
	values.Set("end", end.UTC().Truncate(time.Second).Format(time.RFC3339))
	values.Set("limit", strconv.Itoa(limit))

	next := fmt.Sprintf("%s/stations/%s/observations?%s", c.baseURL, url.PathEscape(c.station), values.Encode())

	var samples []weather.Sample
	for next != "" {
		var page observationCollection
		if err := c.getJSON(ctx, next, &page, true); err != nil {
			return nil, err
		}
		for _, f := range page.Features {
			samples = append(samples, Normalize(f))
		}

		next = ""
		for _, l := range page.Links {
			if l.Rel == "next" && l.Href != "" {
				next = l.Href
				break
			}
		}
	}

	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].Timestamp < samples[j].Timestamp
	})
	return samples, nil
}

// FetchLatest retrieves the most recent observation for the station. A
// non-success status yields (nil, nil): polling is best effort and the cycle
// is simply skipped rather than retried.
func (c *Client) FetchLatest(ctx context.Context) (*weather.Sample, error) {
	u := fmt.Sprintf("%s/stations/%s/observations/latest", c.baseURL, url.PathEscape(c.station))

	var f Feature
	err := c.getJSON(ctx, u, &f, false)
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	sample := Normalize(f)
	return &sample, nil
}

// getJSON executes a GET with the required headers and decodes the body into
// out. When retry is set, failures are retried with exponential backoff up to
// the configured maximum; an open circuit propagates immediately.
func (c *Client) getJSON(ctx context.Context, rawURL string, out any, retry bool) error {
	var attempt int

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/geo+json")

		result, err := c.circuit.Execute(func() (interface{}, error) {
			resp, execErr := c.httpClient.Do(req)
			if execErr != nil {
				return nil, execErr
			}
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				resp.Body.Close()
				return nil, &UpstreamError{StatusCode: resp.StatusCode, URL: rawURL}
			}
			return resp, nil
		})

		if err == nil {
			resp, ok := result.(*http.Response)
			if !ok {
				return fmt.Errorf("unexpected result type from circuit breaker")
			}
			decodeErr := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			if decodeErr != nil {
				return fmt.Errorf("decode observations: %w", decodeErr)
			}
			return nil
		}

		// If the circuit is open, propagate immediately.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %v", errCircuitOpen, err)
		}

		if !retry || attempt >= c.backoff.MaxRetries {
			return err
		}

		delay := c.backoff.InitialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if c.backoff.MaxInterval > 0 && delay > c.backoff.MaxInterval {
			delay = c.backoff.MaxInterval
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		attempt++
	}
}

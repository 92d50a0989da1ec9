package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"
	DefaultLang    = "pt"
	units          = "metric"
)

// Client handles OpenWeatherMap API interactions
type Client struct {
	APIKey     string
	BaseURL    string
	Lang       string
	UserAgent  string
	HTTPClient *http.Client
	// Limiter throttles outgoing requests; nil disables throttling.
	Limiter *rate.Limiter
}

// NewClient creates a new OpenWeatherMap API client
func NewClient(apiKey string) *Client {
	userAgent := os.Getenv("WTHR_USER_AGENT")
	if userAgent == "" {
		userAgent = "wthr.lol/1.0 (contact@wthr.lol)"
	}

	return &Client{
		APIKey:    apiKey,
		BaseURL:   DefaultBaseURL,
		Lang:      DefaultLang,
		UserAgent: userAgent,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		Limiter: rate.NewLimiter(rate.Limit(1), 5),
	}
}

// statusError reports a non-200 response.
type statusError struct {
	Code   int
	Status string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("OpenWeatherMap API error: %s", e.Status)
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait canceled: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{Code: resp.StatusCode, Status: resp.Status}
	}

	return io.ReadAll(resp.Body)
}

// responseCode is the API's "cod" field, a number on success and a string
// on errors.
type responseCode string

func (r *responseCode) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*r = ""
		return nil
	}
	*r = responseCode(strings.Trim(string(b), `"`))
	return nil
}

// ok reports whether the code is 200. A missing code is not a success.
func (r responseCode) ok() bool {
	n, err := strconv.Atoi(string(r))
	return err == nil && n == http.StatusOK
}

// CurrentResponse represents the /weather response
type CurrentResponse struct {
	Cod  responseCode `json:"cod"`
	Name string       `json:"name"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Message string `json:"message"`
}

// GetCurrent fetches current conditions for a city name. The name is sent
// as typed; only query escaping is applied.
func (c *Client) GetCurrent(ctx context.Context, city string) (*CurrentResponse, error) {
	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", c.APIKey)
	params.Set("units", units)
	params.Set("lang", c.Lang)
	requestURL := strings.TrimRight(c.BaseURL, "/") + "/weather?" + params.Encode()

	data, err := c.get(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	var cur CurrentResponse
	if err := json.Unmarshal(data, &cur); err != nil {
		return nil, err
	}
	return &cur, nil
}

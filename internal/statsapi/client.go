package statsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://stats-api.36technology.com"
	DefaultTimeout = 15 * time.Second

	// bodyPreview caps how much of a response ends up in errors and logs
	bodyPreview = 200
)

// ErrNotFound is returned (wrapped in an *APIError) when the service answers 404
var ErrNotFound = errors.New("not found")

// APIError is a non-2xx response from the stats service
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API request failed: %s - %s", e.Status, e.Body)
}

// Unwrap lets errors.Is(err, ErrNotFound) match 404 responses
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// Cache stores raw response bodies for a short time.
// Get must return an error on a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, body []byte) error
}

// Archive keeps the last good response body per key so the client can keep
// serving when the service is down.
type Archive interface {
	Save(ctx context.Context, key string, body []byte) error
	Latest(ctx context.Context, key string) ([]byte, error)
}

// Client handles stats service requests
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      Cache
	archive    Archive
	logger     *log.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default http.Client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithCache enables response caching
func WithCache(cache Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithArchive enables last-known-good fallback
func WithArchive(archive Archive) Option {
	return func(c *Client) { c.archive = archive }
}

// WithLogger replaces the default logger
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a stats service client. An empty baseURL uses DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     log.New(log.Writer(), "[statsapi] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetTeams fetches every team visible to the caller
func (c *Client) GetTeams(ctx context.Context) ([]Team, error) {
	var teams []Team
	if err := c.get(ctx, "/api/Teams", &teams); err != nil {
		return nil, fmt.Errorf("fetching teams: %w", err)
	}
	return teams, nil
}

// GetTeam fetches a single team
func (c *Client) GetTeam(ctx context.Context, teamID string) (*Team, error) {
	var team Team
	if err := c.get(ctx, TeamPath(teamID, ""), &team); err != nil {
		return nil, fmt.Errorf("fetching team %s: %w", teamID, err)
	}
	return &team, nil
}

// GetSchedule fetches a team's schedule entries
func (c *Client) GetSchedule(ctx context.Context, teamID string) ([]Schedule, error) {
	var schedule []Schedule
	if err := c.get(ctx, TeamPath(teamID, "schedule"), &schedule); err != nil {
		return nil, fmt.Errorf("fetching schedule for %s: %w", teamID, err)
	}
	return schedule, nil
}

// GetGameSummaries fetches a team's game results
func (c *Client) GetGameSummaries(ctx context.Context, teamID string) ([]GameSummary, error) {
	var summaries []GameSummary
	if err := c.get(ctx, TeamPath(teamID, "game-summaries"), &summaries); err != nil {
		return nil, fmt.Errorf("fetching game summaries for %s: %w", teamID, err)
	}
	return summaries, nil
}

// GetPlayers fetches a team's roster
func (c *Client) GetPlayers(ctx context.Context, teamID string) ([]TeamPlayer, error) {
	var players []TeamPlayer
	if err := c.get(ctx, TeamPath(teamID, "players"), &players); err != nil {
		return nil, fmt.Errorf("fetching players for %s: %w", teamID, err)
	}
	return players, nil
}

// GetSeasonStats fetches the season-stats envelope of a team
func (c *Client) GetSeasonStats(ctx context.Context, teamID string) (*SeasonStatsResponse, error) {
	var resp SeasonStatsResponse
	if err := c.get(ctx, TeamPath(teamID, "season-stats"), &resp); err != nil {
		return nil, fmt.Errorf("fetching season stats for %s: %w", teamID, err)
	}
	return &resp, nil
}

// SearchTeams queries /api/Search with the non-empty params
func (c *Client) SearchTeams(ctx context.Context, params SearchParams) ([]Team, error) {
	path := "/api/Search"
	if q := params.Query().Encode(); q != "" {
		path += "?" + q
	}

	var teams []Team
	if err := c.get(ctx, path, &teams); err != nil {
		return nil, fmt.Errorf("searching teams: %w", err)
	}
	return teams, nil
}

// AvatarURL is the image URL of a team's avatar. Nothing is fetched.
func (c *Client) AvatarURL(teamID string) string {
	return fmt.Sprintf("%s/api/teams/%s/avatar", c.baseURL, url.PathEscape(teamID))
}

// Query encodes the set fields as URL query values
func (p SearchParams) Query() url.Values {
	q := url.Values{}
	if p.Sport != "" {
		q.Set("sport", p.Sport)
	}
	if p.City != "" {
		q.Set("city", p.City)
	}
	if p.State != "" {
		q.Set("state", p.State)
	}
	if p.Season != "" {
		q.Set("season", p.Season)
	}
	if p.Year != 0 {
		q.Set("year", strconv.Itoa(p.Year))
	}
	return q
}

// TeamPath is the request path of a team resource, also used as its cache key
func TeamPath(teamID, resource string) string {
	path := "/api/Teams/" + url.PathEscape(teamID)
	if resource != "" {
		path += "/" + resource
	}
	return path
}

// get resolves path through cache, service and archive (in that order) and
// decodes the body into out.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	if c.cache != nil {
		if body, err := c.cache.Get(ctx, path); err == nil {
			if err := json.Unmarshal(body, out); err == nil {
				return nil
			}
			c.logger.Printf("⚠️  discarding undecodable cache entry for %s", path)
		}
	}

	body, err := c.fetch(ctx, path)
	if err != nil {
		fallback, ok := c.fromArchive(ctx, path, err)
		if !ok {
			return err
		}
		if err := json.Unmarshal(fallback, out); err != nil {
			return fmt.Errorf("decoding archived response: %w (body: %s)", err, preview(fallback))
		}
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding response: %w (body: %s)", err, preview(body))
	}
	// only bodies that decode replace the cached and archived copies
	c.remember(ctx, path, body)
	return nil
}

func (c *Client) fetch(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       preview(body),
		}
	}

	// Some gateways answer 200 with an HTML error page
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && trimmed[0] == '<' {
		return nil, fmt.Errorf("stats service returned HTML instead of JSON: %s", preview(body))
	}

	return body, nil
}

func (c *Client) remember(ctx context.Context, path string, body []byte) {
	if c.cache != nil {
		if err := c.cache.Set(ctx, path, body); err != nil {
			c.logger.Printf("⚠️  cache write failed for %s: %v", path, err)
		}
	}
	if c.archive != nil {
		if err := c.archive.Save(ctx, path, body); err != nil {
			c.logger.Printf("⚠️  archive write failed for %s: %v", path, err)
		}
	}
}

// fromArchive returns the last archived body for path when the failure is
// worth hiding from the caller. Client errors (4xx) are always surfaced.
func (c *Client) fromArchive(ctx context.Context, path string, cause error) ([]byte, bool) {
	if c.archive == nil {
		return nil, false
	}
	var apiErr *APIError
	if errors.As(cause, &apiErr) && apiErr.StatusCode < 500 {
		return nil, false
	}
	body, err := c.archive.Latest(ctx, path)
	if err != nil || len(body) == 0 {
		return nil, false
	}
	c.logger.Printf("serving archived %s after upstream failure: %v", path, cause)
	return body, true
}

func preview(body []byte) string {
	if len(body) > bodyPreview {
		return string(body[:bodyPreview])
	}
	return string(body)
}

package mlbstats

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/preston-bernstein/mlb-props-service/internal/domain/players"
	"github.com/preston-bernstein/mlb-props-service/internal/logging"
	"github.com/preston-bernstein/mlb-props-service/internal/providers"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Config controls how the client reaches the stats API.
type Config struct {
	BaseURL    string
	HTTPClient providers.Doer
	Timeout    time.Duration
	Logger     *slog.Logger
}

// Client looks up players and their game logs.
type Client struct {
	baseURL    string
	httpClient providers.Doer
	logger     *slog.Logger
}

// NewClient constructs a stats client. A nil HTTPClient gets a plain
// http.Client bounded by Timeout.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	doer := cfg.HTTPClient
	if doer == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		doer = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: doer,
		logger:     cfg.Logger,
	}
}

var _ providers.StatsProvider = (*Client)(nil)

// SearchPlayer returns the first person matching name.
func (c *Client) SearchPlayer(ctx context.Context, name string) (players.Identity, error) {
	q := url.Values{}
	q.Set("names", name)

	var payload searchResponse
	if err := c.getJSON(ctx, "/people/search", q, &payload); err != nil {
		return players.Identity{}, err
	}
	if len(payload.People) == 0 || payload.People[0].ID == 0 {
		return players.Identity{}, fmt.Errorf("%w: player %q", providers.ErrNotFound, name)
	}
	first := payload.People[0]
	return players.Identity{Name: name, ID: strconv.Itoa(first.ID)}, nil
}

// GameLog returns the player's season game log, most recent game first.
func (c *Client) GameLog(ctx context.Context, playerID string, group players.Group, season int) ([]players.GameLogEntry, error) {
	if group == "" {
		group = players.GroupHitting
	}
	q := url.Values{}
	q.Set("stats", statsGameLog)
	q.Set("group", string(group))
	q.Set("season", strconv.Itoa(season))

	var payload statsResponse
	if err := c.getJSON(ctx, "/people/"+url.PathEscape(playerID)+"/stats", q, &payload); err != nil {
		return nil, err
	}
	entries := mapGameLog(payload)
	logging.Debug(logging.FromContext(ctx, c.logger), "fetched game log",
		logging.FieldProvider, providerName,
		"player_id", playerID,
		"group", string(group),
		logging.FieldCount, len(entries),
	)
	return entries, nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", providers.ErrProviderUnavailable, providerName, err)
	}
	if err := providers.CheckResponse(providerName, resp); err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: %s: %v", providers.ErrUnexpectedPayload, providerName, err)
	}
	return nil
}

package oddsapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/preston-bernstein/mlb-props-service/internal/config"
	"github.com/preston-bernstein/mlb-props-service/internal/domain/props"
	"github.com/preston-bernstein/mlb-props-service/internal/logging"
	"github.com/preston-bernstein/mlb-props-service/internal/providers"
	"github.com/preston-bernstein/mlb-props-service/internal/timeutil"
)

// Config controls how the client reaches the odds provider.
type Config struct {
	BaseURL        string
	APIKey         string
	Sport          string
	Regions        string
	Lookahead      time.Duration
	BatchDelay     time.Duration
	BookTitles     []string
	PreferredBooks []string
	MarketBatches  [][]string
	HTTPClient     providers.Doer
	Logger         *slog.Logger
}

// Client fetches moneylines and player props from the odds provider.
type Client struct {
	baseURL        string
	apiKey         string
	sport          string
	regions        string
	lookahead      time.Duration
	batchDelay     time.Duration
	allowedBooks   map[string]struct{}
	preferredBooks []string
	batches        [][]string
	httpClient     providers.Doer
	logger         *slog.Logger
	now            func() time.Time
	sleep          func(ctx context.Context, d time.Duration) error
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:        normalizeBaseURL(cfg.BaseURL),
		apiKey:         cfg.APIKey,
		sport:          orDefault(cfg.Sport, defaultSport),
		regions:        orDefault(cfg.Regions, defaultRegions),
		lookahead:      durationOrDefault(cfg.Lookahead, defaultLookahead),
		batchDelay:     durationOrDefault(cfg.BatchDelay, defaultBatchDelay),
		allowedBooks:   titleSet(listOrDefault(cfg.BookTitles, config.DefaultBookTitles())),
		preferredBooks: listOrDefault(cfg.PreferredBooks, config.DefaultPreferredBooks()),
		batches:        batchesOrDefault(cfg.MarketBatches),
		httpClient:     resolveHTTPClient(cfg.HTTPClient),
		logger:         cfg.Logger,
		now:            time.Now,
		sleep:          sleepContext,
	}
}

var _ providers.OddsProvider = (*Client)(nil)

// FetchMoneylines returns head-to-head prices for games starting inside the
// lookahead window. The preferred books are asked first; an empty or failed
// answer falls back to every book.
func (c *Client) FetchMoneylines(ctx context.Context) ([]props.Game, error) {
	if c.apiKey == "" {
		return nil, providers.ErrMissingCredential
	}
	logger := logging.FromContext(ctx, c.logger)
	from, to := timeutil.Window(c.now(), c.lookahead)

	events, err := c.fetchLeagueOdds(ctx, from, to, c.preferredBooks)
	switch {
	case err != nil:
		logging.Warn(logger, "preferred book moneylines failed, retrying with all books",
			logging.FieldProvider, providerName, "err", err)
	case len(events) == 0:
		logging.Warn(logger, "no moneylines from preferred books, retrying with all books",
			logging.FieldProvider, providerName)
	}
	if err != nil || len(events) == 0 {
		events, err = c.fetchLeagueOdds(ctx, from, to, nil)
		if err != nil {
			return nil, err
		}
	}

	games := make([]props.Game, 0, len(events))
	for _, e := range events {
		games = append(games, mapGame(e))
	}
	logging.Info(logger, "fetched moneylines", logging.FieldProvider, providerName, logging.FieldCount, len(games))
	return games, nil
}

// FetchPlayerProps lists events in the lookahead window, then asks for each
// market batch per event with a fixed pause between batches. A failed event
// or batch is logged and skipped.
func (c *Client) FetchPlayerProps(ctx context.Context) ([]props.Prop, error) {
	if c.apiKey == "" {
		return nil, providers.ErrMissingCredential
	}
	logger := logging.FromContext(ctx, c.logger)
	from, to := timeutil.Window(c.now(), c.lookahead)

	events, err := c.fetchEvents(ctx, from, to)
	if err != nil {
		return nil, err
	}
	logging.Info(logger, "fetched events", logging.FieldProvider, providerName, logging.FieldCount, len(events))

	var out []props.Prop
	for _, event := range events {
		if event.ID == "" {
			continue
		}
		for idx, markets := range c.batches {
			if idx > 0 {
				if err := c.sleep(ctx, c.batchDelay); err != nil {
					return nil, err
				}
			}
			data, err := c.fetchEventOdds(ctx, event.ID, markets)
			if err != nil {
				logging.Warn(logger, "event props fetch failed",
					logging.FieldProvider, providerName,
					logging.FieldEvent, event.ID,
					logging.FieldBatch, idx,
					"err", err,
				)
				continue
			}
			out = append(out, mapProps(data, c.allowedBooks)...)
		}
	}
	logging.Info(logger, "fetched player props", logging.FieldProvider, providerName, logging.FieldCount, len(out))
	return out, nil
}

func (c *Client) fetchLeagueOdds(ctx context.Context, from, to string, books []string) ([]eventResponse, error) {
	q := url.Values{}
	q.Set("regions", c.regions)
	q.Set("markets", marketH2H)
	q.Set("oddsFormat", oddsFormat)
	q.Set("commenceTimeFrom", from)
	q.Set("commenceTimeTo", to)
	if len(books) > 0 {
		q.Set("bookmakers", strings.Join(books, ","))
	}

	var out []eventResponse
	if err := c.getJSON(ctx, "/sports/"+url.PathEscape(c.sport)+"/odds", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) fetchEvents(ctx context.Context, from, to string) ([]eventResponse, error) {
	q := url.Values{}
	q.Set("commenceTimeFrom", from)
	q.Set("commenceTimeTo", to)

	var out []eventResponse
	if err := c.getJSON(ctx, "/sports/"+url.PathEscape(c.sport)+"/events", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) fetchEventOdds(ctx context.Context, eventID string, markets []string) (eventResponse, error) {
	q := url.Values{}
	q.Set("regions", c.regions)
	q.Set("markets", strings.Join(markets, ","))
	q.Set("oddsFormat", oddsFormat)
	if len(c.preferredBooks) > 0 {
		q.Set("bookmakers", strings.Join(c.preferredBooks, ","))
	}

	var out eventResponse
	path := "/sports/" + url.PathEscape(c.sport) + "/events/" + url.PathEscape(eventID) + "/odds"
	if err := c.getJSON(ctx, path, q, &out); err != nil {
		return eventResponse{}, err
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	q.Set("apiKey", c.apiKey)
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

	if err := jsoniter.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: %s: %v", providers.ErrUnexpectedPayload, providerName, err)
	}
	return nil
}

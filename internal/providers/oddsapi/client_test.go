package oddsapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/mlb-props-service/internal/config"
	"github.com/preston-bernstein/mlb-props-service/internal/providers"
)

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func newTestClient(rt roundTripperFunc) *Client {
	c := NewClient(Config{
		BaseURL:    "http://odds.test/v4/",
		APIKey:     "key",
		HTTPClient: &http.Client{Transport: rt},
	})
	c.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	c.sleep = func(ctx context.Context, d time.Duration) error { return nil }
	return c
}

const moneylineBody = `[
	{
		"id": "evt-1",
		"commence_time": "2025-06-01T23:05:00Z",
		"home_team": "New York Yankees",
		"away_team": "Boston Red Sox",
		"bookmakers": [
			{
				"key": "draftkings",
				"title": "DraftKings",
				"last_update": "2025-06-01T11:59:00Z",
				"markets": [
					{"key": "h2h", "outcomes": [
						{"name": "New York Yankees", "price": -135},
						{"name": "Boston Red Sox", "price": 115}
					]}
				]
			}
		]
	}
]`

func TestFetchMoneylinesUsesPreferredBooksAndWindow(t *testing.T) {
	var captured []*http.Request
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		captured = append(captured, req)
		return jsonResponse(http.StatusOK, moneylineBody), nil
	})

	games, err := c.FetchMoneylines(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(captured) != 1 {
		t.Fatalf("expected a single request, got %d", len(captured))
	}
	req := captured[0]
	if req.URL.Path != "/v4/sports/baseball_mlb/odds" {
		t.Fatalf("unexpected path %s", req.URL.Path)
	}
	q := req.URL.Query()
	checks := map[string]string{
		"apiKey":           "key",
		"regions":          "us",
		"markets":          "h2h",
		"oddsFormat":       "american",
		"commenceTimeFrom": "2025-06-01T12:00:00Z",
		"commenceTimeTo":   "2025-06-03T12:00:00Z",
		"bookmakers":       "draftkings,fanduel,betmgm",
	}
	for k, want := range checks {
		if got := q.Get(k); got != want {
			t.Fatalf("query %s = %q, want %q", k, got, want)
		}
	}

	if len(games) != 1 || len(games[0].Books) != 1 {
		t.Fatalf("unexpected games %+v", games)
	}
	book := games[0].Books[0]
	if book.Bookmaker != "DraftKings" || book.HomePrice != -135 || book.AwayPrice != 115 {
		t.Fatalf("unexpected book price %+v", book)
	}
}

func TestFetchMoneylinesFallsBackToAllBooks(t *testing.T) {
	cases := []struct {
		name  string
		first *http.Response
	}{
		{"empty", jsonResponse(http.StatusOK, `[]`)},
		{"failed", jsonResponse(http.StatusBadGateway, `oops`)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var queries []string
			c := newTestClient(func(req *http.Request) (*http.Response, error) {
				queries = append(queries, req.URL.Query().Get("bookmakers"))
				if len(queries) == 1 {
					return tc.first, nil
				}
				return jsonResponse(http.StatusOK, moneylineBody), nil
			})

			games, err := c.FetchMoneylines(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(queries) != 2 || queries[0] == "" || queries[1] != "" {
				t.Fatalf("expected preferred then unfiltered request, got %q", queries)
			}
			if len(games) != 1 {
				t.Fatalf("expected fallback games, got %d", len(games))
			}
		})
	}
}

func TestFetchMoneylinesFallbackErrorSurfaces(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusInternalServerError, "down"), nil
	})
	if _, err := c.FetchMoneylines(context.Background()); !errors.Is(err, providers.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestMissingAPIKeyShortCircuits(t *testing.T) {
	called := false
	c := NewClient(Config{HTTPClient: &http.Client{Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		called = true
		return jsonResponse(http.StatusOK, "[]"), nil
	})}})

	if _, err := c.FetchMoneylines(context.Background()); !errors.Is(err, providers.ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
	if _, err := c.FetchPlayerProps(context.Background()); !errors.Is(err, providers.ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
	if called {
		t.Fatalf("expected no upstream calls without a key")
	}
}

const eventOddsBody = `{
	"id": "%s",
	"bookmakers": [
		{
			"key": "fanduel",
			"title": "FanDuel",
			"markets": [
				{"key": "batter_hits", "outcomes": [
					{"name": "Over", "description": "Aaron Judge", "price": 120, "point": 1.5},
					{"name": "Under", "description": "Aaron Judge", "price": -150, "point": 1.5}
				]}
			]
		},
		{
			"key": "bovada",
			"title": "Bovada",
			"markets": [
				{"key": "batter_hits", "outcomes": [
					{"name": "Over", "description": "Aaron Judge", "price": 200, "point": 1.5}
				]}
			]
		}
	]
}`

func TestFetchPlayerPropsBatchesPerEvent(t *testing.T) {
	var mu sync.Mutex
	var oddsCalls []string
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		mu.Lock()
		defer mu.Unlock()
		switch {
		case strings.HasSuffix(req.URL.Path, "/events"):
			return jsonResponse(http.StatusOK, `[{"id":"evt-1"},{"id":""},{"id":"evt-2"}]`), nil
		case strings.HasSuffix(req.URL.Path, "/odds"):
			oddsCalls = append(oddsCalls, req.URL.Path+"?"+req.URL.Query().Get("markets"))
			if req.URL.Query().Get("bookmakers") != "draftkings,fanduel,betmgm" {
				t.Errorf("expected preferred books on event odds request")
			}
			id := strings.Split(req.URL.Path, "/")[5]
			return jsonResponse(http.StatusOK, strings.Replace(eventOddsBody, "%s", id, 1)), nil
		}
		t.Fatalf("unexpected path %s", req.URL.Path)
		return nil, nil
	})
	var delays int
	c.sleep = func(ctx context.Context, d time.Duration) error {
		if d != time.Second {
			t.Errorf("expected 1s batch delay, got %s", d)
		}
		delays++
		return nil
	}

	got, err := c.FetchPlayerProps(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantCalls := []string{
		"/v4/sports/baseball_mlb/events/evt-1/odds?batter_hits,batter_home_runs,batter_total_bases",
		"/v4/sports/baseball_mlb/events/evt-1/odds?pitcher_strikeouts,pitcher_earned_runs,pitcher_outs,pitcher_hits_allowed",
		"/v4/sports/baseball_mlb/events/evt-2/odds?batter_hits,batter_home_runs,batter_total_bases",
		"/v4/sports/baseball_mlb/events/evt-2/odds?pitcher_strikeouts,pitcher_earned_runs,pitcher_outs,pitcher_hits_allowed",
	}
	if strings.Join(oddsCalls, "|") != strings.Join(wantCalls, "|") {
		t.Fatalf("unexpected odds calls:\n%v", oddsCalls)
	}
	if delays != 2 {
		t.Fatalf("expected one delay per event between batches, got %d", delays)
	}
	// 2 events x 2 batches x 2 FanDuel outcomes; Bovada discarded.
	if len(got) != 8 {
		t.Fatalf("expected 8 props, got %d", len(got))
	}
	for _, p := range got {
		if p.Bookmaker != "FanDuel" {
			t.Fatalf("expected only allow-listed books, got %s", p.Bookmaker)
		}
	}
	if got[0].EventID != "evt-1" || got[0].Player != "Aaron Judge" || got[0].Odds != 120 || got[0].Line != 1.5 {
		t.Fatalf("unexpected first prop %+v", got[0])
	}
}

func TestFetchPlayerPropsSkipsFailedBatches(t *testing.T) {
	calls := 0
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		if strings.HasSuffix(req.URL.Path, "/events") {
			return jsonResponse(http.StatusOK, `[{"id":"evt-1"}]`), nil
		}
		calls++
		if calls == 1 {
			return jsonResponse(http.StatusOK, `{not json`), nil
		}
		return jsonResponse(http.StatusOK, strings.Replace(eventOddsBody, "%s", "evt-1", 1)), nil
	})

	got, err := c.FetchPlayerProps(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 || len(got) != 2 {
		t.Fatalf("expected second batch to survive first failure, calls=%d props=%d", calls, len(got))
	}
}

func TestFetchPlayerPropsEventListFailure(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		resp := jsonResponse(http.StatusTooManyRequests, "quota")
		resp.Header.Set("Retry-After", "5")
		return resp, nil
	})
	_, err := c.FetchPlayerProps(context.Background())
	rlErr, ok := providers.AsRateLimitError(err)
	if !ok || rlErr.RetryAfter != 5*time.Second {
		t.Fatalf("expected rate limit error, got %v", err)
	}
}

func TestFetchPlayerPropsStopsWhenContextEnds(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		if strings.HasSuffix(req.URL.Path, "/events") {
			return jsonResponse(http.StatusOK, `[{"id":"evt-1"}]`), nil
		}
		return jsonResponse(http.StatusOK, strings.Replace(eventOddsBody, "%s", "evt-1", 1)), nil
	})
	c.sleep = func(ctx context.Context, d time.Duration) error { return context.Canceled }

	if _, err := c.FetchPlayerProps(context.Background()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
}

func TestGetJSONTransportAndDecodeErrors(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("dial tcp: refused")
	})
	if _, err := c.fetchEvents(context.Background(), "a", "b"); !errors.Is(err, providers.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}

	c = newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"unexpected": true}`), nil
	})
	if _, err := c.fetchEvents(context.Background(), "a", "b"); !errors.Is(err, providers.ErrUnexpectedPayload) {
		t.Fatalf("expected ErrUnexpectedPayload, got %v", err)
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(Config{})
	if c.baseURL != defaultBaseURL || c.sport != defaultSport || c.regions != defaultRegions {
		t.Fatalf("unexpected defaults %+v", c)
	}
	if c.lookahead != defaultLookahead || c.batchDelay != defaultBatchDelay {
		t.Fatalf("unexpected durations %s %s", c.lookahead, c.batchDelay)
	}
	if !reflect.DeepEqual(c.batches, config.DefaultMarketBatches()) {
		t.Fatalf("expected configured default batches, got %v", c.batches)
	}
	if !reflect.DeepEqual(c.preferredBooks, config.DefaultPreferredBooks()) {
		t.Fatalf("expected configured preferred books, got %v", c.preferredBooks)
	}
	if len(c.allowedBooks) != len(config.DefaultBookTitles()) {
		t.Fatalf("unexpected allowed books %v", c.allowedBooks)
	}
	for _, title := range config.DefaultBookTitles() {
		if _, ok := c.allowedBooks[title]; !ok {
			t.Fatalf("expected %s in allow-list %v", title, c.allowedBooks)
		}
	}
	if _, ok := c.httpClient.(*http.Client); !ok {
		t.Fatalf("expected default http client, got %T", c.httpClient)
	}
}

func TestSleepContext(t *testing.T) {
	if err := sleepContext(context.Background(), time.Millisecond); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sleepContext(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled, got %v", err)
	}
}

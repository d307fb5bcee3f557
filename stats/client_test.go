package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hoopreel/hoopreel/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

var cacheDirs atomic.Int32

func freshCacheDir() string {
	return fmt.Sprintf("/cache/%d", cacheDirs.Add(1))
}

type fakeAPI struct {
	playerSearches atomic.Int32
	seasons        map[string][]map[string]any
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") != "secret" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	write := func(v any) { _ = json.NewEncoder(w).Encode(v) }

	switch r.URL.Path {
	case "/players":
		f.playerSearches.Add(1)
		var data []map[string]any
		if r.URL.Query().Get("search") == "lebron" {
			data = []map[string]any{
				{"id": 999, "first_name": "Lebron", "last_name": "Smith"},
				{"id": 237, "first_name": "LeBron", "last_name": "James", "team": map[string]any{"id": 14, "abbreviation": "LAL"}},
			}
		}
		write(map[string]any{"data": data, "meta": map[string]any{}})
	case "/teams":
		write(map[string]any{"data": []map[string]any{
			{"id": 2, "abbreviation": "BOS"},
			{"id": 10, "abbreviation": "GSW"},
			{"id": 14, "abbreviation": "LAL"},
		}})
	case "/stats":
		season := r.URL.Query().Get("seasons[]")
		pages := f.seasons[season]
		if len(pages) == 0 {
			write(map[string]any{"data": []any{}, "meta": map[string]any{}})
			return
		}

		if r.URL.Query().Get("cursor") == "5" {
			write(pages[1])
			return
		}
		write(pages[0])
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func statLine(date string, home, visitor, pts int, minutes string) map[string]any {
	return map[string]any{
		"min": minutes, "pts": pts, "reb": 8, "ast": 9,
		"team": map[string]any{"id": 14, "abbreviation": "LAL"},
		"game": map[string]any{"date": date, "home_team_id": home, "visitor_team_id": visitor},
	}
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{seasons: map[string][]map[string]any{
		"2024": {
			{
				"data": []any{
					statLine("2024-01-15", 14, 2, 31, "36"),
					statLine("2024-01-17", 14, 10, 0, "00"),
				},
				"meta": map[string]any{"next_cursor": 5},
			},
			{
				"data": []any{statLine("2024-01-20T00:00:00.000Z", 10, 14, 25, "34")},
				"meta": map[string]any{},
			},
		},
	}}
}

func TestNew(t *testing.T) {
	Convey("A client without an API key is unavailable", t, func() {
		_, err := New(Options{BaseURL: "http://localhost"})
		So(errors.Is(err, ErrProviderUnavailable), ShouldBeTrue)
	})
}

func TestSeason(t *testing.T) {
	Convey("Seasons start in October", t, func() {
		So(Season(time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC)), ShouldEqual, 2024)
		So(Season(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)), ShouldEqual, 2024)
		So(Season(time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)), ShouldEqual, 2025)
	})
}

func TestRecentGames(t *testing.T) {
	Convey("Given a statistics API", t, func() {
		api := newFakeAPI()
		server := httptest.NewServer(api)
		defer server.Close()

		client, err := New(Options{
			BaseURL:    server.URL,
			APIKey:     "secret",
			Season:     2024,
			CacheDir:   freshCacheDir(),
			HTTPClient: server.Client(),
		})
		So(err, ShouldBeNil)

		ctx := context.Background()

		Convey("Games are returned most recent first, skipping games not played", func() {
			games, err := client.RecentGames(ctx, "LeBron James", 5)
			So(err, ShouldBeNil)
			So(games, ShouldHaveLength, 2)

			So(games[0].Matchup, ShouldEqual, "LAL @ GSW")
			So(games[0].Points, ShouldEqual, 25)
			So(games[1].Matchup, ShouldEqual, "LAL vs. BOS")
			So(games[1].Date.Day(), ShouldEqual, 15)
		})

		Convey("The limit caps the result", func() {
			games, err := client.RecentGames(ctx, "LeBron James", 1)
			So(err, ShouldBeNil)
			So(games, ShouldHaveLength, 1)
		})

		Convey("Player searches are cached", func() {
			_, err := client.RecentGames(ctx, "LeBron James", 5)
			So(err, ShouldBeNil)
			searches := api.playerSearches.Load()

			_, err = client.RecentGames(ctx, "LeBron James", 5)
			So(err, ShouldBeNil)
			So(api.playerSearches.Load(), ShouldEqual, searches)
		})

		Convey("An empty season falls back to the previous one", func() {
			client.season = 2025
			games, err := client.RecentGames(ctx, "LeBron James", 5)
			So(err, ShouldBeNil)
			So(games, ShouldHaveLength, 2)
		})

		Convey("Unknown players are reported", func() {
			_, err := client.RecentGames(ctx, "Nobody Atall", 5)
			So(errors.Is(err, ErrPlayerNotFound), ShouldBeTrue)
		})

		Convey("A rejected key makes the provider unavailable", func() {
			client.apiKey = "wrong"
			_, err := client.RecentGames(ctx, "Someone Else", 5)
			So(errors.Is(err, ErrProviderUnavailable), ShouldBeTrue)
		})
	})
}

func TestFindClosest(t *testing.T) {
	Convey("Given players sharing a first name", t, func() {
		server := httptest.NewServer(newFakeAPI())
		defer server.Close()

		client := mustClient(New(Options{
			BaseURL:    server.URL,
			APIKey:     "secret",
			CacheDir:   freshCacheDir(),
			HTTPClient: server.Client(),
		}))

		Convey("The closest full name wins", func() {
			player, err := client.FindClosest(context.Background(), "lebron james")
			So(err, ShouldBeNil)
			So(player.ID, ShouldEqual, 237)
			So(player.Name(), ShouldEqual, "LeBron James")
		})
	})
}

func mustClient(c *Client, err error) *Client {
	if err != nil {
		panic(err)
	}
	return c
}

func TestSearchFailures(t *testing.T) {
	Convey("Given a flaky statistics API", t, func() {
		var (
			hits   atomic.Int32
			status atomic.Int32
		)
		status.Store(http.StatusOK)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.WriteHeader(int(status.Load()))
			_, _ = w.Write([]byte("<html>maintenance</html>"))
		}))
		defer server.Close()

		client := mustClient(New(Options{
			BaseURL:    server.URL,
			APIKey:     "secret",
			CacheDir:   freshCacheDir(),
			HTTPClient: server.Client(),
		}))

		Convey("Undecodable answers are not remembered", func() {
			_, err := client.SearchPlayers(context.Background(), "curry")
			So(err, ShouldNotBeNil)
			So(errors.Is(err, ErrProviderUnavailable), ShouldBeFalse)

			_, _ = client.SearchPlayers(context.Background(), "curry")
			So(hits.Load(), ShouldEqual, int32(2))
		})

		Convey("Cancelled searches are not remembered", func() {
			cancelled, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := client.SearchPlayers(cancelled, "curry")
			So(errors.Is(err, context.Canceled), ShouldBeTrue)

			_, _ = client.SearchPlayers(context.Background(), "curry")
			So(hits.Load(), ShouldEqual, int32(1))
		})

		Convey("An unavailable provider is not asked again right away", func() {
			status.Store(http.StatusServiceUnavailable)

			_, err := client.SearchPlayers(context.Background(), "curry")
			So(errors.Is(err, ErrProviderUnavailable), ShouldBeTrue)

			_, err = client.SearchPlayers(context.Background(), "curry")
			So(errors.Is(err, ErrProviderUnavailable), ShouldBeTrue)
			So(hits.Load(), ShouldEqual, int32(1))
		})
	})
}

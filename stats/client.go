package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hoopreel/hoopreel/log"
	"github.com/hoopreel/hoopreel/network"
	"github.com/hoopreel/hoopreel/source"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// maxPages bounds the cursor walk over a season of box scores.
const maxPages = 10

// Options configure a Client.
type Options struct {
	BaseURL  string
	APIKey   string
	Season   int
	CacheDir string

	HTTPClient *http.Client
	Now        func() time.Time
}

// Client is a Provider backed by the balldontlie HTTP API.
type Client struct {
	baseURL string
	apiKey  string
	season  int
	http    *http.Client
	now     func() time.Time

	players *cacher[string, []*Player]
	teams   *cacher[string, map[int]Team]
	games   *cacher[string, []*source.Game]
	fails   *cacher[string, bool]
}

// New creates a Client. A missing API key yields ErrProviderUnavailable.
func New(options Options) (*Client, error) {
	if options.APIKey == "" {
		return nil, fmt.Errorf("%w: missing API key", ErrProviderUnavailable)
	}

	if options.BaseURL == "" {
		return nil, fmt.Errorf("%w: missing base URL", ErrProviderUnavailable)
	}

	c := &Client{
		baseURL: strings.TrimSuffix(options.BaseURL, "/"),
		apiKey:  options.APIKey,
		season:  options.Season,
		http:    options.HTTPClient,
		now:     options.Now,

		players: newCacher[string, []*Player](options.CacheDir, "stats_players.json", 10*24*time.Hour, normalizedName),
		teams:   newCacher[string, map[int]Team](options.CacheDir, "stats_teams.json", 30*24*time.Hour, identity[string]),
		games:   newCacher[string, []*source.Game](options.CacheDir, "stats_games.json", 6*time.Hour, identity[string]),
		fails:   newCacher[string, bool](options.CacheDir, "stats_fail.json", time.Minute, normalizedName),
	}

	if c.http == nil {
		c.http = network.Client
	}

	if c.now == nil {
		c.now = time.Now
	}

	return c, nil
}

// RecentGames returns up to limit games the subject played in, most recent first.
// When the configured season has no games yet the previous season is used.
func (c *Client) RecentGames(ctx context.Context, subject string, limit int) ([]*source.Game, error) {
	player, err := c.FindClosest(ctx, subject)
	if err != nil {
		return nil, err
	}

	season := c.season
	if season <= 0 {
		season = Season(c.now())
	}

	games, err := c.gameLog(ctx, player.ID, season)
	if err != nil {
		return nil, err
	}

	if len(games) == 0 {
		log.Infof("no games for %s in season %d, trying %d", player.Name(), season, season-1)
		if games, err = c.gameLog(ctx, player.ID, season-1); err != nil {
			return nil, err
		}
	}

	if limit > 0 && len(games) > limit {
		games = games[:limit]
	}

	return games, nil
}

// Season returns the season a date belongs to. Seasons start in October and are
// named after the year they start in.
func Season(t time.Time) int {
	if t.Month() >= time.October {
		return t.Year()
	}
	return t.Year() - 1
}

// SearchPlayers queries players whose first or last name matches term.
func (c *Client) SearchPlayers(ctx context.Context, term string) ([]*Player, error) {
	term = normalizedName(term)

	if cached, ok := c.players.Get(term).Get(); ok {
		return cached, nil
	}

	if _, failed := c.fails.Get(term).Get(); failed {
		return nil, fmt.Errorf("%w: recent failure searching %q", ErrProviderUnavailable, term)
	}

	log.Infof("Searching players for %q", term)
	var response playersResponse
	if err := c.get(ctx, "/players", url.Values{"search": {term}, "per_page": {"100"}}, &response); err != nil {
		if errors.Is(err, ErrProviderUnavailable) && ctx.Err() == nil {
			_ = c.fails.Set(term, true)
		}
		return nil, err
	}

	log.Infof("Found %d players for %q", len(response.Data), term)
	_ = c.players.Set(term, response.Data)
	return response.Data, nil
}

// Teams returns every team keyed by id.
func (c *Client) Teams(ctx context.Context) (map[int]Team, error) {
	if cached, ok := c.teams.Get("all").Get(); ok {
		return cached, nil
	}

	var response teamsResponse
	if err := c.get(ctx, "/teams", nil, &response); err != nil {
		return nil, err
	}

	teams := lo.SliceToMap(response.Data, func(t Team) (int, Team) {
		return t.ID, t
	})

	_ = c.teams.Set("all", teams)
	return teams, nil
}

func (c *Client) gameLog(ctx context.Context, playerID, season int) ([]*source.Game, error) {
	cacheKey := fmt.Sprintf("%d:%d", playerID, season)
	if cached, ok := c.games.Get(cacheKey).Get(); ok {
		return cached, nil
	}

	teams, err := c.Teams(ctx)
	if err != nil {
		return nil, err
	}

	var lines []*line
	params := url.Values{
		"player_ids[]": {strconv.Itoa(playerID)},
		"seasons[]":    {strconv.Itoa(season)},
		"per_page":     {"100"},
	}

	for page := 0; page < maxPages; page++ {
		var response statsResponse
		if err := c.get(ctx, "/stats", params, &response); err != nil {
			return nil, err
		}

		lines = append(lines, response.Data...)

		if response.Meta.NextCursor == nil {
			break
		}
		params.Set("cursor", strconv.Itoa(*response.Meta.NextCursor))
	}

	games := make([]*source.Game, 0, len(lines))
	for _, l := range lines {
		if !l.played() {
			continue
		}

		date, err := l.date()
		if err != nil {
			log.Warn(err)
			continue
		}

		games = append(games, &source.Game{
			Date:     date,
			Matchup:  l.matchup(teams),
			Points:   l.Points,
			Rebounds: l.Reb,
			Assists:  l.Ast,
		})
	}

	slices.SortStableFunc(games, func(a, b *source.Game) int {
		return b.Date.Compare(a.Date)
	})

	_ = c.games.Set(cacheKey, games)
	return games, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, target any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Error(err)
		return fmt.Errorf("%w: %s", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: API key rejected (status %d)", ErrProviderUnavailable, resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests, resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		log.Error("statistics API returned status code " + strconv.Itoa(resp.StatusCode))
		return fmt.Errorf("invalid response code %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		log.Error(err)
		return fmt.Errorf("decode %s: %w", path, err)
	}

	return nil
}

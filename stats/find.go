package stats

import (
	"context"
	"fmt"
	"strings"

	"github.com/hoopreel/hoopreel/log"
	"github.com/hoopreel/hoopreel/util"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

const findRetries = 3

func normalizedName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// FindClosest returns the player whose full name is closest to name.
// The API matches single names only, so when a search comes back empty the
// trailing word is dropped and the search repeated.
func (c *Client) FindClosest(ctx context.Context, name string) (*Player, error) {
	name = normalizedName(name)
	return c.findClosest(ctx, name, name, 0)
}

func (c *Client) findClosest(ctx context.Context, term, original string, try int) (*Player, error) {
	if try >= findRetries {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, original)
	}

	players, err := c.SearchPlayers(ctx, term)
	if err != nil {
		return nil, err
	}

	if len(players) == 0 {
		words := strings.Fields(term)
		if len(words) <= 1 {
			return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, original)
		}

		alternate := strings.Join(words[:util.Max(len(words)-1, 1)], " ")
		log.Infof(`No players found for "%s", trying "%s"`, term, alternate)
		return c.findClosest(ctx, alternate, original, try+1)
	}

	// Prefer players whose full name contains every letter of the query in order.
	candidates := lo.Filter(players, func(p *Player, _ int) bool {
		return fuzzy.MatchNormalizedFold(original, p.Name())
	})

	if len(candidates) == 0 {
		candidates = players
	}

	closest := lo.MinBy(candidates, func(a, b *Player) bool {
		return levenshtein.Distance(original, normalizedName(a.Name())) <
			levenshtein.Distance(original, normalizedName(b.Name()))
	})

	log.Info("Found closest player: " + closest.Name())
	return closest, nil
}

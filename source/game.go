package source

import (
	"fmt"
	"time"
)

// GameDateLayout is the layout used when a game date becomes part of a search term.
const GameDateLayout = "Jan 02, 2006"

// Game is a single game log entry for an athlete.
type Game struct {
	Date     time.Time `json:"date"`
	Matchup  string    `json:"matchup"`
	Points   int       `json:"points"`
	Rebounds int       `json:"rebounds"`
	Assists  int       `json:"assists"`
}

// String returns a short summary line such as "Jan 15, 2024 LAL vs. BOS 31/8/9".
func (g *Game) String() string {
	return fmt.Sprintf("%s %s %d/%d/%d", g.Date.Format(GameDateLayout), g.Matchup, g.Points, g.Rebounds, g.Assists)
}

// Terms returns the search terms derived from this game for the given subject, in query order.
func (g *Game) Terms(subject string) []string {
	return []string{
		fmt.Sprintf("%s %s", subject, g.Matchup),
		fmt.Sprintf("%s %s", subject, g.Date.Format(GameDateLayout)),
		fmt.Sprintf("%s %d points", subject, g.Points),
	}
}

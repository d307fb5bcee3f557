package stats

import (
	"fmt"
	"strings"
	"time"
)

// Player is an athlete known to the statistics API.
type Player struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
	Team      Team   `json:"team"`
}

// Name returns the full name of the player.
func (p *Player) Name() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Team is an NBA franchise.
type Team struct {
	ID           int    `json:"id"`
	Abbreviation string `json:"abbreviation"`
	FullName     string `json:"full_name"`
}

type game struct {
	ID            int    `json:"id"`
	Date          string `json:"date"`
	Season        int    `json:"season"`
	HomeTeamID    int    `json:"home_team_id"`
	VisitorTeamID int    `json:"visitor_team_id"`
}

// line is one row of a player's box score.
type line struct {
	ID      int    `json:"id"`
	Minutes string `json:"min"`
	Points  int    `json:"pts"`
	Reb     int    `json:"reb"`
	Ast     int    `json:"ast"`
	Team    Team   `json:"team"`
	Game    game   `json:"game"`
}

func (l *line) played() bool {
	switch strings.TrimSpace(l.Minutes) {
	case "", "0", "00", "0:00", "00:00":
		return false
	default:
		return true
	}
}

func (l *line) date() (time.Time, error) {
	for _, layout := range []string{time.DateOnly, time.RFC3339, "2006-01-02T15:04:05.000Z"} {
		if t, err := time.Parse(layout, l.Game.Date); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized game date %q", l.Game.Date)
}

// matchup renders the nba.com style label, e.g. "LAL vs. BOS" at home and "LAL @ BOS" away.
func (l *line) matchup(teams map[int]Team) string {
	own := l.Team.Abbreviation
	if own == "" {
		own = teams[l.Team.ID].Abbreviation
	}

	if l.Team.ID == l.Game.HomeTeamID {
		return fmt.Sprintf("%s vs. %s", own, teams[l.Game.VisitorTeamID].Abbreviation)
	}

	return fmt.Sprintf("%s @ %s", own, teams[l.Game.HomeTeamID].Abbreviation)
}

type meta struct {
	NextCursor *int `json:"next_cursor"`
}

type playersResponse struct {
	Data []*Player `json:"data"`
	Meta meta      `json:"meta"`
}

type teamsResponse struct {
	Data []Team `json:"data"`
}

type statsResponse struct {
	Data []*line `json:"data"`
	Meta meta    `json:"meta"`
}

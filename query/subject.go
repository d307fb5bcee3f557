package query

import "strings"

// teams maps NBA team abbreviations to the names subjects are remembered under.
var teams = map[string]string{
	"atl": "atlanta hawks",
	"bos": "boston celtics",
	"bkn": "brooklyn nets",
	"cha": "charlotte hornets",
	"chi": "chicago bulls",
	"cle": "cleveland cavaliers",
	"dal": "dallas mavericks",
	"den": "denver nuggets",
	"det": "detroit pistons",
	"gsw": "golden state warriors",
	"hou": "houston rockets",
	"ind": "indiana pacers",
	"lac": "la clippers",
	"lal": "los angeles lakers",
	"mem": "memphis grizzlies",
	"mia": "miami heat",
	"mil": "milwaukee bucks",
	"min": "minnesota timberwolves",
	"nop": "new orleans pelicans",
	"nyk": "new york knicks",
	"okc": "oklahoma city thunder",
	"orl": "orlando magic",
	"phi": "philadelphia 76ers",
	"phx": "phoenix suns",
	"por": "portland trail blazers",
	"sac": "sacramento kings",
	"sas": "san antonio spurs",
	"tor": "toronto raptors",
	"uta": "utah jazz",
	"was": "washington wizards",
}

// Normalize folds the spellings of one subject together: case, periods in
// initials, repeated whitespace, and team abbreviations.
//
//	"  P.J.   Tucker " -> "pj tucker"
//	"GSW"              -> "golden state warriors"
func Normalize(subject string) string {
	subject = strings.ReplaceAll(strings.ToLower(subject), ".", "")
	subject = strings.Join(strings.Fields(subject), " ")

	if team, ok := teams[subject]; ok {
		return team
	}

	return subject
}

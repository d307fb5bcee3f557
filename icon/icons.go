package icon

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota + 1
	Fail
	Warn
	Progress
	Search
	Download
	Film
	Link
	Basketball
)

var icons = map[Icon]*iconDef{
	Success: {
		emoji:   "🎉",
		nerd:    "",
		plain:   "Success",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Fail: {
		emoji:   "💀",
		nerd:    "",
		plain:   "Fail",
		kaomoji: "(╥﹏╥)",
		squares: "🟥",
	},
	Warn: {
		emoji:   "⚠️",
		nerd:    "",
		plain:   "Warning",
		kaomoji: "(・_・ヾ",
		squares: "🟨",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "...",
		kaomoji: "(・ω・)ノ",
		squares: "⬜",
	},
	Search: {
		emoji:   "🔍",
		nerd:    "",
		plain:   "Search",
		kaomoji: "(¬‿¬ )",
		squares: "🟪",
	},
	Download: {
		emoji:   "📥",
		nerd:    "",
		plain:   "Download",
		kaomoji: "(っ˘ω˘ς )",
		squares: "🟫",
	},
	Film: {
		emoji:   "🎬",
		nerd:    "",
		plain:   "Reel",
		kaomoji: "ヽ(•‿•)ノ",
		squares: "🟧",
	},
	Link: {
		emoji:   "🔗",
		nerd:    "",
		plain:   "Link",
		kaomoji: "(・∀・)",
		squares: "⬛",
	},
	Basketball: {
		emoji:   "🏀",
		nerd:    "",
		plain:   "NBA",
		kaomoji: "(ﾉ◕ヮ◕)ﾉ",
		squares: "🟧",
	},
}

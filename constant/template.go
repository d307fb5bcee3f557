// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

// Scraper Function Identifiers - these constants define the global function signatures for Lua link sources.
const (
	SearchHighlightsFn = "SearchHighlights"
	ResolveMediaFn     = "ResolveMedia"
	IsPageFn           = "IsPage"
)

// SourceTemplate is a Go text/template for scaffolding new Lua link sources.
const SourceTemplate = `{{ $divider := repeat "-" (plus (max (len .URL) (len .Name) (len .Author) 3) 12) }}{{ $divider }}
-- @name    {{ .Name }}
-- @url     {{ .URL }}
-- @author  {{ .Author }}
-- @license MIT
{{ $divider }}


---@alias link { url: string, title: string|nil, description: string|nil }


----- IMPORTS -----
--- END IMPORTS ---



----- VARIABLES -----
--- END VARIABLES ---



----- MAIN -----

--- Searches for highlight links matching the given term.
-- @param term string Search term, e.g. "Jayson Tatum BOS vs. NYK"
-- @param subject string Athlete or team the reel is about, e.g. "Jayson Tatum"
-- @return link[] Table of links
function {{ .SearchHighlightsFn }}(term, subject)
	return {}
end


--- Extracts direct media references from a highlight page.
-- @param url string URL of the page
-- @return string[] Table of media URLs
function {{ .ResolveMediaFn }}(url)
	return {}
end


--- END MAIN ---




----- HELPERS -----
--- END HELPERS ---

-- ex: ts=4 sw=4 et filetype=lua
`

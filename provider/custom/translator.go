package custom

import (
	"fmt"
	"strings"

	"github.com/hoopreel/hoopreel/source"
	lua "github.com/yuin/gopher-lua"
)

func getString(table *lua.LTable, key string) string {
	val := table.RawGetString(key)
	if val.Type() == lua.LTString {
		return strings.TrimSpace(val.String())
	}
	return ""
}

func linkFromTable(table *lua.LTable) (*source.Link, error) {
	url := getString(table, "url")
	if url == "" {
		return nil, fmt.Errorf("link must have url")
	}

	return &source.Link{
		URL:         url,
		Title:       getString(table, "title"),
		Description: getString(table, "description"),
	}, nil
}

// linksFromTable converts the array part of table, preserving script order.
func linksFromTable(table *lua.LTable) (links []*source.Link, errs []error) {
	for i := 1; i <= table.Len(); i++ {
		v := table.RawGetInt(i)
		if v.Type() != lua.LTTable {
			errs = append(errs, fmt.Errorf("entry %d is %s, expected table", i, v.Type()))
			continue
		}

		link, err := linkFromTable(v.(*lua.LTable))
		if err != nil {
			errs = append(errs, fmt.Errorf("entry %d: %w", i, err))
			continue
		}

		links = append(links, link)
	}

	return
}

// stringsFromTable collects the non-empty strings of the array part of table.
func stringsFromTable(table *lua.LTable) []string {
	var out []string
	for i := 1; i <= table.Len(); i++ {
		if v := table.RawGetInt(i); v.Type() == lua.LTString && v.String() != "" {
			out = append(out, v.String())
		}
	}
	return out
}

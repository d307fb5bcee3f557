package custom

import (
	"context"

	"github.com/hoopreel/hoopreel/constant"
	"github.com/hoopreel/hoopreel/internal/cache"
	"github.com/hoopreel/hoopreel/log"
	"github.com/hoopreel/hoopreel/source"
	lua "github.com/yuin/gopher-lua"
)

// Search calls the script's SearchHighlights(term, subject). Non-empty results are cached.
func (s *luaSource) Search(ctx context.Context, q source.Query) ([]*source.Link, error) {
	cacheKey := cache.GenerateKey(q.Term, s.ID())
	var cached []*source.Link
	if cache.Read(cacheKey, &cached) {
		return cached, nil
	}

	val, err := s.call(ctx, constant.SearchHighlightsFn, lua.LTTable, lua.LString(q.Term), lua.LString(q.Subject))
	if err != nil {
		return nil, err
	}

	links, errs := linksFromTable(val.(*lua.LTable))
	if len(links) == 0 && len(errs) > 0 {
		return nil, errs[0]
	}

	for _, err := range errs {
		log.Warnf("%s: skipping link: %s", s.name, err)
	}

	if len(links) > 0 {
		_ = cache.Write(cacheKey, links)
	}

	return links, nil
}

// ResolveMedia calls the script's ResolveMedia function. Media URLs expire, so nothing is cached.
func (s *luaSource) ResolveMedia(ctx context.Context, page string) ([]string, error) {
	val, err := s.call(ctx, constant.ResolveMediaFn, lua.LTTable, lua.LString(page))
	if err != nil {
		return nil, err
	}

	return stringsFromTable(val.(*lua.LTable)), nil
}

// IsPage defers to the script's IsPage function when it defines one.
func (s *luaSource) IsPage(url string) bool {
	if !s.defines(constant.IsPageFn) {
		return !source.IsDirectMedia(url)
	}

	val, err := s.call(context.Background(), constant.IsPageFn, lua.LTBool, lua.LString(url))
	if err != nil {
		log.Warnf("%s: %s", s.name, err)
		return !source.IsDirectMedia(url)
	}

	return lua.LVAsBool(val)
}

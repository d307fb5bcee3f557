// Package provider manages the built-in and custom link sources.
package provider

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hoopreel/hoopreel/filesystem"
	"github.com/hoopreel/hoopreel/provider/custom"
	"github.com/hoopreel/hoopreel/provider/nba"
	"github.com/hoopreel/hoopreel/source"
	"github.com/hoopreel/hoopreel/util"
	"github.com/hoopreel/hoopreel/where"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
)

// Provider describes a link source that can be instantiated.
type Provider struct {
	ID           string
	Name         string
	IsCustom     bool
	Path         string
	CreateSource func() (source.Source, error)
}

func (p *Provider) String() string {
	return p.Name
}

// Builtins returns the providers compiled into the binary.
func Builtins() []*Provider {
	return []*Provider{
		{
			ID:   nba.ID,
			Name: nba.ID,
			CreateSource: func() (source.Source, error) {
				return nba.New(nba.BaseURL, nil)
			},
		},
	}
}

// Customs returns the Lua providers found in the sources directory.
func Customs() []*Provider {
	providers, _ := CustomProviders()
	return providers
}

// All returns builtin providers followed by custom ones.
func All() []*Provider {
	return append(Builtins(), Customs()...)
}

// Get finds a provider by name or id, ignoring case.
func Get(name string) (*Provider, bool) {
	return lo.Find(All(), func(p *Provider) bool {
		return strings.EqualFold(p.Name, name) || strings.EqualFold(p.ID, name)
	})
}

// CustomProviders scans the sources directory for Lua scripts.
func CustomProviders() ([]*Provider, error) {
	files, err := filesystem.API().ReadDir(where.Sources())
	if err != nil {
		return nil, err
	}

	var providers []*Provider
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".lua" {
			continue
		}

		path := filepath.Join(where.Sources(), f.Name())
		name := util.FileStem(f.Name())

		providers = append(providers, &Provider{
			ID:       custom.IDfromName(name),
			Name:     name,
			IsCustom: true,
			Path:     path,
			CreateSource: func() (source.Source, error) {
				return custom.LoadSource(path)
			},
		})
	}

	return providers, nil
}

// Load instantiates the named providers. More than one name yields a Chain
// that queries them in the given order.
func Load(names []string) (source.Source, error) {
	names = lo.Uniq(lo.Compact(lo.Map(names, func(n string, _ int) string {
		return strings.TrimSpace(n)
	})))

	if len(names) == 0 {
		return nil, fmt.Errorf("no source selected")
	}

	sources := make([]source.Source, 0, len(names))
	for _, name := range names {
		p, ok := Get(name)
		if !ok {
			return nil, unknownProviderError(name)
		}

		src, err := p.CreateSource()
		if err != nil {
			return nil, fmt.Errorf("load source %s: %w", name, err)
		}

		sources = append(sources, src)
	}

	if len(sources) == 1 {
		return sources[0], nil
	}

	return NewChain(sources...), nil
}

func unknownProviderError(name string) error {
	msg := fmt.Sprintf("unknown source %q", name)

	all := All()
	if len(all) > 0 {
		closest := lo.MinBy(all, func(a, b *Provider) bool {
			return levenshtein.Distance(name, a.Name) < levenshtein.Distance(name, b.Name)
		})

		if levenshtein.Distance(name, closest.Name) <= 3 {
			msg += fmt.Sprintf(", did you mean %q?", closest.Name)
		}
	}

	return fmt.Errorf("%s", msg)
}

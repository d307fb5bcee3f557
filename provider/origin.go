package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/hoopreel/hoopreel/filesystem"
	"github.com/hoopreel/hoopreel/internal/scraper"
	"github.com/hoopreel/hoopreel/where"
	"github.com/samber/lo"
)

var origins = filesystem.Cache[map[string]string](where.SourceOrigins(), 0)

func loadOrigins() map[string]string {
	data, expired, err := origins.Get()
	if err != nil || expired || data == nil {
		return make(map[string]string)
	}
	return data
}

// Install downloads the Lua source at rawURL into the sources directory and
// remembers where it came from so that Update can refresh it.
func Install(ctx context.Context, client *http.Client, rawURL string) (*Provider, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	file := path.Base(u.Path)
	if filepath.Ext(file) != ".lua" {
		return nil, fmt.Errorf("%s does not point to a .lua file", rawURL)
	}

	name := strings.TrimSuffix(file, ".lua")
	if _, ok := lo.Find(Builtins(), func(p *Provider) bool { return p.Name == name }); ok {
		return nil, fmt.Errorf("%s conflicts with a builtin source", name)
	}

	local := filepath.Join(where.Sources(), file)
	if _, err := scraper.Update(ctx, client, rawURL, local); err != nil {
		return nil, err
	}

	registry := loadOrigins()
	registry[name] = rawURL
	if err := origins.Set(registry); err != nil {
		return nil, err
	}

	p, ok := Get(name)
	if !ok {
		return nil, fmt.Errorf("installed %s but it was not found in %s", name, where.Sources())
	}

	return p, nil
}

// Update refreshes every installed source that still exists locally and
// returns the names of those that changed.
func Update(ctx context.Context, client *http.Client) (updated []string, err error) {
	for name, rawURL := range loadOrigins() {
		p, ok := Get(name)
		if !ok || !p.IsCustom {
			continue
		}

		changed, err := scraper.Update(ctx, client, rawURL, p.Path)
		if err != nil {
			return updated, fmt.Errorf("update %s: %w", name, err)
		}

		if changed {
			updated = append(updated, name)
		}
	}

	return updated, nil
}

// Remove deletes a custom source and forgets its origin.
func Remove(name string) error {
	p, ok := Get(name)
	if !ok || !p.IsCustom {
		return fmt.Errorf("custom source %q not found", name)
	}

	if err := filesystem.API().Remove(p.Path); err != nil {
		return err
	}

	registry := loadOrigins()
	if _, ok := registry[p.Name]; ok {
		delete(registry, p.Name)
		return origins.Set(registry)
	}

	return nil
}

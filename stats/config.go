package stats

import (
	"github.com/hoopreel/hoopreel/auth"
	"github.com/hoopreel/hoopreel/key"
	"github.com/hoopreel/hoopreel/log"
	"github.com/hoopreel/hoopreel/where"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// FromConfig builds the configured provider. The result is absent when
// statistics are disabled or no API key is available.
func FromConfig() mo.Option[Provider] {
	if !viper.GetBool(key.StatsEnable) {
		return mo.None[Provider]()
	}

	apiKey, err := auth.ResolveKey()
	if err != nil {
		log.Warnf("statistics disabled: %s", err)
		return mo.None[Provider]()
	}

	client, err := New(Options{
		BaseURL:  viper.GetString(key.StatsBaseURL),
		APIKey:   apiKey,
		Season:   viper.GetInt(key.StatsSeason),
		CacheDir: where.Cache(),
	})
	if err != nil {
		log.Warn(err)
		return mo.None[Provider]()
	}

	return mo.Some[Provider](client)
}

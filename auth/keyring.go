// Package auth persists and resolves the statistics provider API key.
package auth

import (
	"errors"

	"github.com/hoopreel/hoopreel/constant"
	"github.com/hoopreel/hoopreel/key"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

const user = "stats-api-key"

// ErrNoKey is returned by ResolveKey when no API key is configured anywhere.
var ErrNoKey = errors.New("no statistics API key configured")

// SetKey persists the API key to the system keyring.
func SetKey(apiKey string) error {
	return keyring.Set(constant.App, user, apiKey)
}

// GetKey retrieves the API key from the system keyring.
func GetKey() (string, error) {
	return keyring.Get(constant.App, user)
}

// DeleteKey removes the API key from the system keyring.
func DeleteKey() error {
	return keyring.Delete(constant.App, user)
}

// ResolveKey returns the configured API key.
// The stats.api_key setting takes precedence over the keyring.
func ResolveKey() (string, error) {
	if k := viper.GetString(key.StatsAPIKey); k != "" {
		return k, nil
	}

	k, err := GetKey()
	if errors.Is(err, keyring.ErrNotFound) || (err == nil && k == "") {
		return "", ErrNoKey
	}

	return k, err
}

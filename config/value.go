package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/hoopreel/hoopreel/constant"
	"github.com/hoopreel/hoopreel/icon"
	"github.com/hoopreel/hoopreel/key"
	"github.com/hoopreel/hoopreel/where"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

var (
	ErrUnknownKey   = errors.New("unknown key")
	ErrInvalidValue = errors.New("invalid value")
)

type check func(v any) error

func atLeast(min int) check {
	return func(v any) error {
		if n := v.(int); n < min {
			return fmt.Errorf("%d is below %d", n, min)
		}
		return nil
	}
}

func between(min, max int) check {
	return func(v any) error {
		if n := v.(int); n < min || n > max {
			return fmt.Errorf("%d is outside %d..%d", n, min, max)
		}
		return nil
	}
}

func oneOf(options ...string) check {
	return func(v any) error {
		if !lo.Contains(options, v.(string)) {
			return fmt.Errorf("%q is not one of %s", v, strings.Join(options, ", "))
		}
		return nil
	}
}

func nonEmpty(v any) error {
	switch value := v.(type) {
	case string:
		if strings.TrimSpace(value) == "" {
			return errors.New("must not be empty")
		}
	case []string:
		if len(lo.Compact(value)) == 0 {
			return errors.New("must not be empty")
		}
	}
	return nil
}

var bitrate = regexp.MustCompile(`^[1-9][0-9]*[kKmM]?$`)

func matches(re *regexp.Regexp, hint string) check {
	return func(v any) error {
		if !re.MatchString(v.(string)) {
			return fmt.Errorf("%q is not %s", v, hint)
		}
		return nil
	}
}

func logLevel(v any) error {
	_, err := logrus.ParseLevel(v.(string))
	return err
}

// checks constrain values beyond their type. Keys missing here accept any value of the right type.
var checks = map[string]check{
	key.DefaultSources:       nonEmpty,
	key.StatsSeason:          atLeast(0),
	key.DiscoveryMaxResults:  atLeast(1),
	key.DiscoveryRecentGames: atLeast(0),
	key.DiscoveryConcurrency: atLeast(1),
	key.RetrievalExecutable:  nonEmpty,
	key.RetrievalFormat:      nonEmpty,
	key.RetrievalTimeout:     atLeast(1),
	key.RetrievalWorkers:     atLeast(1),
	key.StitchExecutable:     nonEmpty,
	key.StitchTimeout:        atLeast(1),
	key.StitchVideoCodec:     nonEmpty,
	key.StitchAudioCodec:     nonEmpty,
	key.StitchPreset:         oneOf("ultrafast", "superfast", "veryfast", "faster", "fast", "medium", "slow", "slower", "veryslow", "placebo"),
	key.StitchCRF:            between(0, 51),
	key.StitchAudioBitrate:   matches(bitrate, "a bitrate such as 192k"),
	key.PathsDownloads:       nonEmpty,
	key.PathsOutput:          nonEmpty,
	key.IconsVariant:         oneOf(icon.Variants()...),
	key.LogsLevel:            logLevel,
}

// Parse converts raw command line values into the type of k's default and checks the result.
func Parse(k string, raw []string) (any, error) {
	field, ok := Default[k]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, k)
	}

	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: %s: no value given", ErrInvalidValue, k)
	}

	var (
		v   any
		err error
	)

	switch field.Value.(type) {
	case string:
		v = raw[0]
	case int:
		v, err = strconv.Atoi(raw[0])
	case bool:
		v, err = strconv.ParseBool(raw[0])
	case []string:
		v = lo.FlatMap(raw, func(r string, _ int) []string {
			return lo.Map(strings.Split(r, ","), func(s string, _ int) string { return strings.TrimSpace(s) })
		})
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %s wants %s: %q", ErrInvalidValue, k, field.typeName(), raw[0])
	}

	if err := Validate(k, v); err != nil {
		return nil, err
	}

	return v, nil
}

// Validate runs the constraint of k against v, which must already have the default's type.
func Validate(k string, v any) error {
	c, ok := checks[k]
	if !ok {
		return nil
	}

	if err := c(v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidValue, k, err)
	}
	return nil
}

// Check validates the effective value of every key, wherever it came from.
func Check() []error {
	keys := lo.Keys(checks)
	slices.Sort(keys)

	var errs []error
	for _, k := range keys {
		var v any
		switch Default[k].Value.(type) {
		case string:
			v = viper.GetString(k)
		case int:
			v = viper.GetInt(k)
		case []string:
			v = viper.GetStringSlice(k)
		default:
			continue
		}

		if err := Validate(k, v); err != nil {
			errs = append(errs, err)
		}
	}

	return errs
}

// Set parses raw, applies it and writes the config file.
func Set(k string, raw []string) (any, error) {
	v, err := Parse(k, raw)
	if err != nil {
		return nil, err
	}

	viper.Set(k, v)
	return v, Write()
}

// Reset restores keys to their defaults and writes the config file. No keys resets everything.
func Reset(keys ...string) error {
	if len(keys) == 0 {
		keys = lo.Keys(Default)
	}

	for _, k := range keys {
		field, ok := Default[k]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownKey, k)
		}
		viper.Set(k, field.Value)
	}

	return Write()
}

// File is the path of the config file.
func File() string {
	return filepath.Join(where.Config(), constant.App+".toml")
}

// Write persists the current settings, creating the file when it does not exist yet.
func Write() error {
	err := viper.WriteConfig()

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return viper.SafeWriteConfig()
	}
	return err
}

package config

import (
	"errors"
	"testing"

	"github.com/hoopreel/hoopreel/filesystem"
	"github.com/hoopreel/hoopreel/key"
	"github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	convey.Convey("Config Setup", t, func() {
		convey.Convey("Should initialize without error", func() {
			convey.So(Setup(), convey.ShouldBeNil)
		})

		convey.Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				convey.So(viper.IsSet(name), convey.ShouldBeTrue)
			}
			convey.So(viper.GetInt(key.DiscoveryMaxResults), convey.ShouldEqual, 10)
			convey.So(viper.GetStringSlice(key.DefaultSources), convey.ShouldResemble, []string{"nba"})
			convey.So(viper.GetString(key.StitchExecutable), convey.ShouldEqual, "ffmpeg")
		})

		convey.Convey("EnvKeyReplacer should convert dots to underscores", func() {
			convey.So(EnvKeyReplacer.Replace("stitch.video_codec"), convey.ShouldEqual, "stitch_video_codec")
		})
	})
}

func TestField(t *testing.T) {
	convey.Convey("Given a registered field", t, func() {
		field := Default[key.RetrievalTimeout]

		convey.Convey("Env should be prefixed with the app name", func() {
			convey.So(field.Env(), convey.ShouldEqual, "HOOPREEL_RETRIEVAL_TIMEOUT")
		})

		convey.Convey("typeName should match the default value", func() {
			convey.So(field.typeName(), convey.ShouldEqual, "int")
			sources := Default[key.DefaultSources]
			convey.So(sources.typeName(), convey.ShouldEqual, "[]string")
		})

		convey.Convey("MarshalJSON should include the default", func() {
			data, err := field.MarshalJSON()
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(data), convey.ShouldContainSubstring, `"default":300`)
		})
	})
}

func TestParse(t *testing.T) {
	convey.Convey("Given raw command line values", t, func() {
		convey.Convey("Numbers are parsed and bounded", func() {
			v, err := Parse(key.StitchCRF, []string{"18"})
			convey.So(err, convey.ShouldBeNil)
			convey.So(v, convey.ShouldEqual, 18)

			_, err = Parse(key.StitchCRF, []string{"52"})
			convey.So(errors.Is(err, ErrInvalidValue), convey.ShouldBeTrue)

			_, err = Parse(key.RetrievalWorkers, []string{"0"})
			convey.So(errors.Is(err, ErrInvalidValue), convey.ShouldBeTrue)

			_, err = Parse(key.StitchTimeout, []string{"soon"})
			convey.So(errors.Is(err, ErrInvalidValue), convey.ShouldBeTrue)
		})

		convey.Convey("Lists accept several or comma separated values", func() {
			v, err := Parse(key.DefaultSources, []string{"nba, mine", "other"})
			convey.So(err, convey.ShouldBeNil)
			convey.So(v, convey.ShouldResemble, []string{"nba", "mine", "other"})

			_, err = Parse(key.DefaultSources, []string{" , "})
			convey.So(errors.Is(err, ErrInvalidValue), convey.ShouldBeTrue)
		})

		convey.Convey("Enumerations only accept their options", func() {
			_, err := Parse(key.StitchPreset, []string{"fastest"})
			convey.So(errors.Is(err, ErrInvalidValue), convey.ShouldBeTrue)

			_, err = Parse(key.IconsVariant, []string{"emoji"})
			convey.So(err, convey.ShouldBeNil)

			_, err = Parse(key.LogsLevel, []string{"loud"})
			convey.So(errors.Is(err, ErrInvalidValue), convey.ShouldBeTrue)

			_, err = Parse(key.StitchAudioBitrate, []string{"lots"})
			convey.So(errors.Is(err, ErrInvalidValue), convey.ShouldBeTrue)
		})

		convey.Convey("Unknown keys and missing values are rejected", func() {
			_, err := Parse("stitch.speed", []string{"1"})
			convey.So(errors.Is(err, ErrUnknownKey), convey.ShouldBeTrue)

			_, err = Parse(key.StitchCRF, nil)
			convey.So(errors.Is(err, ErrInvalidValue), convey.ShouldBeTrue)
		})
	})
}

func TestSetAndCheck(t *testing.T) {
	convey.Convey("Given a fresh configuration", t, func() {
		convey.So(Setup(), convey.ShouldBeNil)
		defer func() { convey.So(Reset(), convey.ShouldBeNil) }()

		convey.Convey("Set applies and writes the value", func() {
			v, err := Set(key.RetrievalWorkers, []string{"4"})
			convey.So(err, convey.ShouldBeNil)
			convey.So(v, convey.ShouldEqual, 4)
			convey.So(viper.GetInt(key.RetrievalWorkers), convey.ShouldEqual, 4)

			exists, err := filesystem.API().Exists(File())
			convey.So(err, convey.ShouldBeNil)
			convey.So(exists, convey.ShouldBeTrue)
		})

		convey.Convey("Check reports values that bypassed Set", func() {
			convey.So(Check(), convey.ShouldBeEmpty)

			viper.Set(key.StitchCRF, 99)
			errs := Check()
			convey.So(errs, convey.ShouldHaveLength, 1)
			convey.So(errs[0].Error(), convey.ShouldContainSubstring, key.StitchCRF)
		})
	})
}

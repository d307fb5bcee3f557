package cmd

import (
	"reflect"
	"testing"

	"github.com/hoopreel/hoopreel/ffmpeg"
	"github.com/hoopreel/hoopreel/key"
	"github.com/hoopreel/hoopreel/pipeline"
	"github.com/hoopreel/hoopreel/where"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestParseCount(t *testing.T) {
	Convey("Given the configured default", t, func() {
		viper.Set(key.DiscoveryMaxResults, 7)

		Convey("A missing count uses it", func() {
			count, err := parseCount([]string{"Stephen Curry"})
			So(err, ShouldBeNil)
			So(count, ShouldEqual, 7)
		})

		Convey("An explicit count wins", func() {
			count, err := parseCount([]string{"Stephen Curry", "3"})
			So(err, ShouldBeNil)
			So(count, ShouldEqual, 3)
		})

		Convey("Non-positive counts are rejected", func() {
			_, err := parseCount([]string{"Stephen Curry", "0"})
			So(err, ShouldNotBeNil)

			_, err = parseCount([]string{"Stephen Curry", "many"})
			So(err, ShouldNotBeNil)
		})
	})
}

func TestTextTypes(t *testing.T) {
	Convey("Text marshalled enums are described as strings", t, func() {
		state := textTypes(reflect.TypeOf(pipeline.Done))
		So(state.Type, ShouldEqual, "string")
		So(state.Enum, ShouldContain, "stitching")

		phase := textTypes(reflect.TypeOf(ffmpeg.FastPath))
		So(phase.Enum, ShouldResemble, []any{"fast_path", "fallback"})

		So(textTypes(reflect.TypeOf("")), ShouldBeNil)
	})
}

func TestEnvVars(t *testing.T) {
	Convey("Given the overridable settings", t, func() {
		vars := envVars()

		Convey("Names are sorted and prefixed", func() {
			So(lo.IsSortedByKey(vars, func(v envVar) string { return v.Name }), ShouldBeTrue)
			_, ok := lo.Find(vars, func(v envVar) bool {
				return v.Name == "HOOPREEL_STITCH_CRF" && v.Key == key.StitchCRF
			})
			So(ok, ShouldBeTrue)
		})

		Convey("The config directory override is listed", func() {
			So(lo.ContainsBy(vars, func(v envVar) bool { return v.Name == where.EnvConfigPath }), ShouldBeTrue)
		})
	})
}

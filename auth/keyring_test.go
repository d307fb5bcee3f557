package auth

import (
	"testing"

	"github.com/hoopreel/hoopreel/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

func init() {
	keyring.MockInit()
}

func TestResolveKey(t *testing.T) {
	Convey("Given an empty keyring", t, func() {
		viper.Set(key.StatsAPIKey, "")
		_ = DeleteKey()

		Convey("ResolveKey reports a missing key", func() {
			_, err := ResolveKey()
			So(err, ShouldEqual, ErrNoKey)
		})

		Convey("A stored key is resolved", func() {
			So(SetKey("from-keyring"), ShouldBeNil)
			k, err := ResolveKey()
			So(err, ShouldBeNil)
			So(k, ShouldEqual, "from-keyring")

			Convey("The config value takes precedence", func() {
				viper.Set(key.StatsAPIKey, "from-config")
				defer viper.Set(key.StatsAPIKey, "")

				k, err := ResolveKey()
				So(err, ShouldBeNil)
				So(k, ShouldEqual, "from-config")
			})
		})
	})
}

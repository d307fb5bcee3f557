package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/hoopreel/hoopreel/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestCache(t *testing.T) {
	Convey("Given an empty cache", t, func() {
		So(Clear(), ShouldBeNil)

		type entry struct {
			Body string `json:"body"`
		}

		k := GenerateKey("LeBron James highlights", "nba")

		Convey("A miss reports false", func() {
			var e entry
			So(Read(k, &e), ShouldBeFalse)
		})

		Convey("A written entry can be read back", func() {
			So(Write(k, entry{Body: "ok"}), ShouldBeNil)

			var e entry
			So(Read(k, &e), ShouldBeTrue)
			So(e.Body, ShouldEqual, "ok")
		})

		Convey("Expired entries are ignored and collected", func() {
			So(Write(k, entry{Body: "old"}), ShouldBeNil)
			old := time.Now().Add(-2 * TTL)
			So(filesystem.API().Chtimes(filepath.Join(dir(), k), old, old), ShouldBeNil)

			var e entry
			So(Read(k, &e), ShouldBeFalse)
			So(CollectGarbage(), ShouldEqual, 1)
		})
	})
}

func TestGenerateKey(t *testing.T) {
	Convey("Keys ignore case and spacing but not the source", t, func() {
		So(GenerateKey("Luka Doncic", "nba"), ShouldEqual, GenerateKey("luka doncic", "nba"))
		So(GenerateKey("Luka Doncic", "nba"), ShouldNotEqual, GenerateKey("Luka Doncic", "other"))
	})
}

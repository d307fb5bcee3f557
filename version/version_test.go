package version

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/hoopreel/hoopreel/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestCompare(t *testing.T) {
	Convey("Versions compare by major, minor and patch", t, func() {
		for _, tc := range []struct {
			a, b string
			want int
		}{
			{"1.0.0", "1.0.0", 0},
			{"v1.2.0", "1.1.9", 1},
			{"0.3.0", "0.10.0", -1},
			{"2.0.0-rc1", "1.9.9", 1},
		} {
			got, err := Compare(tc.a, tc.b)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, tc.want)
		}
	})

	Convey("Malformed versions are rejected", t, func() {
		_, err := Compare("latest", "1.0.0")
		So(err, ShouldNotBeNil)
	})
}

func TestLatest(t *testing.T) {
	Convey("Given a release API", t, func() {
		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			_, _ = w.Write([]byte(`{"tag_name":"v1.4.2"}`))
		}))
		defer server.Close()

		So(versionCacher.Set(""), ShouldBeNil)

		Convey("The tag is returned without its prefix and cached", func() {
			latest, err := Latest(context.Background(), server.Client(), server.URL)
			So(err, ShouldBeNil)
			So(latest, ShouldEqual, "1.4.2")

			latest, err = Latest(context.Background(), server.Client(), server.URL)
			So(err, ShouldBeNil)
			So(latest, ShouldEqual, "1.4.2")
			So(hits.Load(), ShouldEqual, int32(1))
		})
	})
}

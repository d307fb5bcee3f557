package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hoopreel/hoopreel/filesystem"
	. "github.com/smartystreets/goconvey/convey"
	lua "github.com/yuin/gopher-lua"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPreCompileAndLoad(t *testing.T) {
	Convey("Given a script on disk", t, func() {
		path := "/sources/answer.lua"
		So(filesystem.API().WriteFile(path, []byte(`answer = 42`), 0o644), ShouldBeNil)

		Convey("It is executed in the state", func() {
			L := lua.NewState()
			defer L.Close()

			So(PreCompileAndLoad(L, path), ShouldBeNil)
			So(L.GetGlobal("answer").String(), ShouldEqual, "42")
		})

		Convey("A changed script is recompiled", func() {
			L := lua.NewState()
			defer L.Close()
			So(PreCompileAndLoad(L, path), ShouldBeNil)

			So(filesystem.API().WriteFile(path, []byte(`answer = 7`), 0o644), ShouldBeNil)
			later := time.Now().Add(time.Minute)
			So(filesystem.API().Chtimes(path, later, later), ShouldBeNil)

			So(PreCompileAndLoad(L, path), ShouldBeNil)
			So(L.GetGlobal("answer").String(), ShouldEqual, "7")
		})

		Convey("Syntax errors are reported", func() {
			So(filesystem.API().WriteFile("/sources/broken.lua", []byte(`function (`), 0o644), ShouldBeNil)

			L := lua.NewState()
			defer L.Close()
			So(PreCompileAndLoad(L, "/sources/broken.lua"), ShouldNotBeNil)
		})
	})
}

func TestUpdate(t *testing.T) {
	Convey("Given a remote script", t, func() {
		body := "function SearchHighlights(term) return {} end"
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/remote.lua" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_, _ = w.Write([]byte(body))
		}))
		defer server.Close()

		local := "/sources/remote.lua"
		_ = filesystem.API().Remove(local)
		ctx := context.Background()

		Convey("A missing local copy is written", func() {
			changed, err := Update(ctx, server.Client(), server.URL+"/remote.lua", local)
			So(err, ShouldBeNil)
			So(changed, ShouldBeTrue)

			data, err := filesystem.API().ReadFile(local)
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, body)

			Convey("An identical copy is left alone", func() {
				changed, err := Update(ctx, server.Client(), server.URL+"/remote.lua", local)
				So(err, ShouldBeNil)
				So(changed, ShouldBeFalse)
			})
		})

		Convey("A failing remote is an error", func() {
			_, err := Update(ctx, server.Client(), server.URL+"/missing.lua", local)
			So(err, ShouldNotBeNil)
		})
	})
}

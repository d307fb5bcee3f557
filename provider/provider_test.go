package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/hoopreel/hoopreel/filesystem"
	"github.com/hoopreel/hoopreel/provider/nba"
	"github.com/hoopreel/hoopreel/source"
	"github.com/hoopreel/hoopreel/where"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

const luaSource = `
function SearchHighlights(term) return { { url = "https://example.com/" .. term } } end
function ResolveMedia(url) return {} end
`

func TestGet(t *testing.T) {
	Convey("When trying to get an invalid provider", t, func() {
		_, ok := Get("kek")
		So(ok, ShouldBeFalse)
	})

	Convey("Builtin providers are found ignoring case", t, func() {
		p, ok := Get("NBA")
		So(ok, ShouldBeTrue)
		So(p.IsCustom, ShouldBeFalse)
	})

	Convey("Lua scripts in the sources directory are providers", t, func() {
		So(filesystem.API().WriteFile(filepath.Join(where.Sources(), "mine.lua"), []byte(luaSource), 0o644), ShouldBeNil)

		p, ok := Get("mine")
		So(ok, ShouldBeTrue)
		So(p.IsCustom, ShouldBeTrue)
		So(p.ID, ShouldEqual, "mine custom")
	})
}

func TestLoad(t *testing.T) {
	Convey("Given the builtin and a custom provider", t, func() {
		So(filesystem.API().WriteFile(filepath.Join(where.Sources(), "mine.lua"), []byte(luaSource), 0o644), ShouldBeNil)

		Convey("A single name yields the source itself", func() {
			src, err := Load([]string{"nba"})
			So(err, ShouldBeNil)
			_, ok := src.(*nba.Source)
			So(ok, ShouldBeTrue)
		})

		Convey("Several names yield a chain", func() {
			src, err := Load([]string{"nba", "mine", "nba"})
			So(err, ShouldBeNil)
			So(src.ID(), ShouldEqual, "nba+mine custom")
		})

		Convey("Typos get a suggestion", func() {
			_, err := Load([]string{"nab"})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, `did you mean "nba"`)
		})

		Convey("No names is an error", func() {
			_, err := Load([]string{" "})
			So(err, ShouldNotBeNil)
		})
	})
}

type stubSource struct {
	id    string
	links []*source.Link
	refs  []string
	err   error
	pages bool
}

func (s *stubSource) Name() string { return s.id }
func (s *stubSource) ID() string   { return s.id }
func (s *stubSource) Search(context.Context, source.Query) ([]*source.Link, error) {
	return s.links, s.err
}
func (s *stubSource) ResolveMedia(context.Context, string) ([]string, error) {
	return s.refs, s.err
}
func (s *stubSource) IsPage(string) bool { return s.pages }

func TestChain(t *testing.T) {
	Convey("Given a chain of sources", t, func() {
		ctx := context.Background()
		a := &stubSource{id: "a", links: []*source.Link{{URL: "1"}, {URL: "2"}}}
		b := &stubSource{id: "b", links: []*source.Link{{URL: "2"}, {URL: "3"}}, pages: true, refs: []string{"media"}}
		broken := &stubSource{id: "broken", err: errors.New("down"), pages: true}

		Convey("Search concatenates in source order", func() {
			links, err := NewChain(a, broken, b).Search(ctx, source.SubjectQuery("x"))
			So(err, ShouldBeNil)
			So(links, ShouldHaveLength, 4)
			So(links[2].URL, ShouldEqual, "2")
		})

		Convey("Search fails only when every source fails", func() {
			_, err := NewChain(broken, broken).Search(ctx, source.SubjectQuery("x"))
			So(err, ShouldNotBeNil)
		})

		Convey("ResolveMedia asks sources that see a page", func() {
			refs, err := NewChain(a, broken, b).ResolveMedia(ctx, "page")
			So(err, ShouldBeNil)
			So(refs, ShouldResemble, []string{"media"})
		})

		Convey("IsPage is true when any source says so", func() {
			So(NewChain(a, b).IsPage("x"), ShouldBeTrue)
			So(NewChain(a).IsPage("x"), ShouldBeFalse)
		})

		Convey("Name and ID join the members", func() {
			So(NewChain(a, b).Name(), ShouldEqual, "a + b")
			So(NewChain(a, b).ID(), ShouldEqual, "a+b")
		})
	})
}

func TestInstall(t *testing.T) {
	Convey("Given a remote Lua source", t, func() {
		body := luaSource
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))
		defer server.Close()

		ctx := context.Background()

		Convey("Install writes it and records the origin", func() {
			p, err := Install(ctx, server.Client(), server.URL+"/remote.lua")
			So(err, ShouldBeNil)
			So(p.Name, ShouldEqual, "remote")
			So(loadOrigins()["remote"], ShouldEqual, server.URL+"/remote.lua")

			Convey("Update refreshes changed sources", func() {
				body = luaSource + "\n-- v2\n"
				updated, err := Update(ctx, server.Client())
				So(err, ShouldBeNil)
				So(updated, ShouldContain, "remote")
			})

			Convey("Remove deletes the file and the origin", func() {
				So(Remove("remote"), ShouldBeNil)
				_, ok := Get("remote")
				So(ok, ShouldBeFalse)
				_, known := loadOrigins()["remote"]
				So(known, ShouldBeFalse)
			})
		})

		Convey("Non Lua URLs are rejected", func() {
			_, err := Install(ctx, server.Client(), server.URL+"/remote.txt")
			So(err, ShouldNotBeNil)
		})

		Convey("Builtins cannot be removed", func() {
			So(Remove("nba"), ShouldNotBeNil)
		})
	})
}

package nba

import (
	"context"
	"errors"
	"testing"

	"github.com/hoopreel/hoopreel/source"
	. "github.com/smartystreets/goconvey/convey"
)

const searchPage = `<html><body>
<a href="/watch/video/lebron-dunk">LeBron James monster dunk</a>
<a href="/news/lebron-contract">LeBron James contract news</a>
<a href="/watch/video/random">Top plays of the night</a>
<a href="/watch/video/schedule">January schedule: LAL vs BOS</a>
<a href="/watch/video/james-harden">James Harden step back</a>
<a href="https://www.nba.com/watch/video/recap">Game Highlights: LAL vs BOS</a>
<a href="javascript:void(0)">watch LeBron</a>
<iframe src="https://www.youtube.com/embed/abc"></iframe>
<iframe src="https://ads.example.com/frame"></iframe>
<video data-src="https://cdn.nba.com/video/embedded.mp4"></video>
<video data-src="/video/relative.mp4"></video>
</body></html>`

const videoPage = `<html><body>
<div data-video-url="https://cdn.nba.com/data.m3u8"></div>
<iframe src="https://players.example.com/embed/1"></iframe>
<video><source src="/media/clip.mp4"><source src="https://cdn.nba.com/clip.webm"></video>
</body></html>`

func fakeFetcher(pages map[string]string, requested *[]string) Fetcher {
	return func(_ context.Context, u string) (string, error) {
		*requested = append(*requested, u)
		if body, ok := pages[u]; ok {
			return body, nil
		}
		return "", errors.New("not found")
	}
}

func TestSearch(t *testing.T) {
	Convey("Given an NBA.com search page", t, func() {
		var requested []string
		src, err := New(BaseURL, fakeFetcher(map[string]string{
			"https://www.nba.com/search?q=LeBron+James+LAL+vs.+BOS": searchPage,
		}, &requested))
		So(err, ShouldBeNil)

		links, err := src.Search(context.Background(), source.Query{Subject: "LeBron James", Term: "LeBron James LAL vs. BOS"})
		So(err, ShouldBeNil)

		var urls []string
		for _, l := range links {
			urls = append(urls, l.URL)
		}

		Convey("Relevant video anchors come first, in page order", func() {
			So(urls, ShouldResemble, []string{
				"https://www.nba.com/watch/video/lebron-dunk",
				"https://www.nba.com/watch/video/recap",
				"https://www.youtube.com/embed/abc",
				"https://cdn.nba.com/video/embedded.mp4",
			})
			So(links[0].Title, ShouldEqual, "LeBron James monster dunk")
			So(links[2].Title, ShouldEqual, "LeBron James LAL vs. BOS highlight")
		})

		Convey("Anchors naming only the teams or part of the subject are skipped", func() {
			So(urls, ShouldNotContain, "https://www.nba.com/watch/video/schedule")
			So(urls, ShouldNotContain, "https://www.nba.com/watch/video/james-harden")
		})

		Convey("The search term is query encoded", func() {
			So(requested, ShouldResemble, []string{"https://www.nba.com/search?q=LeBron+James+LAL+vs.+BOS"})
		})
	})

	Convey("A failing fetch is returned as an error", t, func() {
		var requested []string
		src, _ := New(BaseURL, fakeFetcher(nil, &requested))
		_, err := src.Search(context.Background(), source.SubjectQuery("anything"))
		So(err, ShouldNotBeNil)
	})
}

func TestResolveMedia(t *testing.T) {
	Convey("Given a video page", t, func() {
		var requested []string
		page := "https://www.nba.com/watch/video/lebron-dunk"
		src, _ := New(BaseURL, fakeFetcher(map[string]string{page: videoPage}, &requested))

		refs, err := src.ResolveMedia(context.Background(), page)
		So(err, ShouldBeNil)
		So(refs, ShouldResemble, []string{
			"https://www.nba.com/media/clip.mp4",
			"https://cdn.nba.com/clip.webm",
			"https://players.example.com/embed/1",
			"https://cdn.nba.com/data.m3u8",
		})
	})
}

func TestIsPage(t *testing.T) {
	Convey("IsPage", t, func() {
		src, _ := New(BaseURL, nil)
		So(src.IsPage("https://www.nba.com/watch/video/lebron-dunk"), ShouldBeTrue)
		So(src.IsPage("https://nba.com/watch/video/x"), ShouldBeTrue)
		So(src.IsPage("https://cdn.nba.com/clip.mp4"), ShouldBeFalse)
		So(src.IsPage("https://www.youtube.com/watch?v=abc"), ShouldBeFalse)
	})
}

func TestRelevant(t *testing.T) {
	Convey("Anchor text must name the whole subject or a highlight", t, func() {
		subject := normalizeName("P.J. Tucker")

		So(relevant("PJ Tucker corner three", subject), ShouldBeTrue)
		So(relevant("p.j.  tucker block", subject), ShouldBeTrue)
		So(relevant("Extended Highlights", subject), ShouldBeTrue)
		So(relevant("Tucker interview", subject), ShouldBeFalse)
		So(relevant("Jan 15 schedule", subject), ShouldBeFalse)
		So(relevant("Jan 15 schedule", ""), ShouldBeFalse)
	})
}

package source

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLinkSet(t *testing.T) {
	Convey("Given an empty link set", t, func() {
		set := NewLinkSet()

		Convey("The first occurrence of a url wins", func() {
			So(set.Add(&Link{URL: "a", Title: "first"}), ShouldBeTrue)
			So(set.Add(&Link{URL: "a", Title: "second"}), ShouldBeFalse)
			So(set.Len(), ShouldEqual, 1)
			So(set.Links(0)[0].Title, ShouldEqual, "first")
		})

		Convey("Empty urls and nil links are rejected", func() {
			So(set.Add(&Link{Title: "no url"}), ShouldBeFalse)
			So(set.Add(nil), ShouldBeFalse)
			So(set.Len(), ShouldEqual, 0)
		})

		Convey("Insertion order is preserved", func() {
			accepted := set.AddAll([]*Link{{URL: "c"}, {URL: "a"}, {URL: "c"}, {URL: "b"}})
			So(accepted, ShouldEqual, 3)

			var urls []string
			for _, l := range set.Links(0) {
				urls = append(urls, l.URL)
			}
			So(urls, ShouldResemble, []string{"c", "a", "b"})
			So(set.Has("b"), ShouldBeTrue)
			So(set.Has("d"), ShouldBeFalse)
		})

		Convey("Links truncates to the limit", func() {
			set.AddAll([]*Link{{URL: "1"}, {URL: "2"}, {URL: "3"}})
			So(set.Links(2), ShouldHaveLength, 2)
			So(set.Links(10), ShouldHaveLength, 3)
			So(set.Links(2)[1].URL, ShouldEqual, "2")
		})
	})
}

func TestLink(t *testing.T) {
	Convey("Link", t, func() {
		l := &Link{URL: "https://nba.com/watch/1", Title: "Dunk"}
		So(l.String(), ShouldEqual, "Dunk")
		l.Title = ""
		So(l.String(), ShouldEqual, "https://nba.com/watch/1")
	})
}

package open

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCommand(t *testing.T) {
	Convey("The default handler depends on the platform", t, func() {
		cmd, err := Command("linux", "/out/reel.mp4", "")
		So(err, ShouldBeNil)
		So(cmd.Args, ShouldResemble, []string{"xdg-open", "/out/reel.mp4"})

		cmd, err = Command("darwin", "/out/reel.mp4", "")
		So(err, ShouldBeNil)
		So(cmd.Args, ShouldResemble, []string{"open", "/out/reel.mp4"})
	})

	Convey("A configured player is used directly", t, func() {
		cmd, err := Command("linux", "/out/reel.mp4", "mpv")
		So(err, ShouldBeNil)
		So(cmd.Args, ShouldResemble, []string{"mpv", "/out/reel.mp4"})

		cmd, err = Command("darwin", "/out/reel.mp4", "IINA")
		So(err, ShouldBeNil)
		So(cmd.Args, ShouldResemble, []string{"open", "-a", "IINA", "/out/reel.mp4"})
	})

	Convey("Unknown platforms are rejected", t, func() {
		_, err := Command("plan9", "/out/reel.mp4", "")
		So(err, ShouldNotBeNil)
	})
}

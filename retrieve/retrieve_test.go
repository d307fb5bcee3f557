package retrieve

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hoopreel/hoopreel/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

// fakeFetcher writes the given files next to the output template.
type fakeFetcher struct {
	extensions []string
	err        error
	block      bool
	outputs    []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, _ string, output string) error {
	f.outputs = append(f.outputs, output)

	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}

	if f.err != nil {
		return f.err
	}

	for _, ext := range f.extensions {
		path := strings.Replace(output, "%(ext)s", ext, 1)
		if err := filesystem.API().WriteFile(path, []byte("video"), 0o644); err != nil {
			return err
		}
	}

	return nil
}

func exists(path string) bool {
	return lo.Must(filesystem.API().Exists(path))
}

func TestRetrieve(t *testing.T) {
	Convey("Given a retriever", t, func() {
		dir := "/downloads/x"
		So(filesystem.API().RemoveAll(dir), ShouldBeNil)
		ctx := context.Background()

		Convey("The produced file is returned", func() {
			fetcher := &fakeFetcher{extensions: []string{"mp4"}}
			path, err := New(dir, fetcher, 0).Retrieve(ctx, "https://cdn/1.mp4", "highlight_000")

			So(err, ShouldBeNil)
			So(path, ShouldEqual, filepath.Join(dir, "highlight_000.mp4"))
			So(fetcher.outputs, ShouldResemble, []string{filepath.Join(dir, "highlight_000.%(ext)s")})
		})

		Convey("Stale files for the stem are removed first", func() {
			So(filesystem.API().MkdirAll(dir, 0o755), ShouldBeNil)
			for _, name := range []string{"highlight_001.webm", "highlight_001.mp4.part", "highlight_0010.mp4"} {
				So(filesystem.API().WriteFile(filepath.Join(dir, name), []byte("old"), 0o644), ShouldBeNil)
			}

			path, err := New(dir, &fakeFetcher{extensions: []string{"mkv"}}, 0).Retrieve(ctx, "u", "highlight_001")
			So(err, ShouldBeNil)
			So(path, ShouldEqual, filepath.Join(dir, "highlight_001.mkv"))

			So(exists(filepath.Join(dir, "highlight_001.webm")), ShouldBeFalse)
			So(exists(filepath.Join(dir, "highlight_001.mp4.part")), ShouldBeFalse)
			So(exists(filepath.Join(dir, "highlight_0010.mp4")), ShouldBeTrue)
		})

		Convey("A stale file is never mistaken for new output", func() {
			So(filesystem.API().MkdirAll(dir, 0o755), ShouldBeNil)
			So(filesystem.API().WriteFile(filepath.Join(dir, "highlight_002.mp4"), []byte("old"), 0o644), ShouldBeNil)

			_, err := New(dir, &fakeFetcher{}, 0).Retrieve(ctx, "u", "highlight_002")
			So(errors.Is(err, ErrItemRetrievalFailed), ShouldBeTrue)
		})

		Convey("Partial downloads do not count", func() {
			_, err := New(dir, &fakeFetcher{extensions: []string{"mp4.part"}}, 0).Retrieve(ctx, "u", "highlight_003")
			So(errors.Is(err, ErrItemRetrievalFailed), ShouldBeTrue)
		})

		Convey("Tool failures are retrieval failures", func() {
			cause := errors.New("HTTP Error 404")
			_, err := New(dir, &fakeFetcher{err: cause}, 0).Retrieve(ctx, "u", "highlight_004")
			So(errors.Is(err, ErrItemRetrievalFailed), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
		})

		Convey("The timeout bounds the tool", func() {
			start := time.Now()
			_, err := New(dir, &fakeFetcher{block: true}, 20*time.Millisecond).Retrieve(ctx, "u", "highlight_005")
			So(errors.Is(err, ErrItemRetrievalFailed), ShouldBeTrue)
			So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
			So(time.Since(start), ShouldBeLessThan, 5*time.Second)
		})

		Convey("An mp4 is preferred when several files are produced", func() {
			path, err := New(dir, &fakeFetcher{extensions: []string{"webm", "mp4"}}, 0).Retrieve(ctx, "u", "highlight_006")
			So(err, ShouldBeNil)
			So(filepath.Ext(path), ShouldEqual, ".mp4")
		})
	})
}

func TestLastLine(t *testing.T) {
	Convey("lastLine keeps the final diagnostic", t, func() {
		So(lastLine("WARNING: x\nERROR: Unsupported URL\n"), ShouldEqual, "ERROR: Unsupported URL")
	})
}

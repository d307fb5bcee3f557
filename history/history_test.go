package history

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hoopreel/hoopreel/filesystem"
	"github.com/hoopreel/hoopreel/pipeline"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func run(subject string, started time.Time) *pipeline.Result {
	return &pipeline.Result{
		RunID:      uuid.New(),
		Subject:    subject,
		State:      pipeline.Done,
		Output:     "/out/" + subject + ".mp4",
		Retrieved:  2,
		StartedAt:  started,
		FinishedAt: started.Add(time.Minute),
	}
}

func TestHistory(t *testing.T) {
	Convey("Given an empty history", t, func() {
		So(Clear(), ShouldBeNil)
		now := time.Now()

		Convey("When saving two runs", func() {
			older := run("Stephen Curry", now.Add(-time.Hour))
			newer := run("LeBron James", now)
			So(Save(older), ShouldBeNil)
			So(Save(newer), ShouldBeNil)

			Convey("Then they are returned newest first", func() {
				runs, err := Get()
				So(err, ShouldBeNil)
				So(runs, ShouldHaveLength, 2)
				So(runs[0].Subject, ShouldEqual, "LeBron James")
				So(runs[0].State, ShouldEqual, pipeline.Done)
				So(runs[1].RunID, ShouldEqual, older.RunID)
			})

			Convey("Then a run can be removed", func() {
				So(Remove(older.RunID.String()), ShouldBeNil)
				runs, err := Get()
				So(err, ShouldBeNil)
				So(runs, ShouldHaveLength, 1)
				So(runs[0].RunID, ShouldEqual, newer.RunID)
			})
		})

		Convey("When saving more than the limit", func() {
			for i := 0; i < Limit+5; i++ {
				So(Save(run("X", now.Add(time.Duration(i)*time.Second))), ShouldBeNil)
			}

			Convey("Then the oldest are dropped", func() {
				runs, err := Get()
				So(err, ShouldBeNil)
				So(runs, ShouldHaveLength, Limit)
				So(runs[len(runs)-1].StartedAt.Equal(now.Add(5*time.Second)), ShouldBeTrue)
			})
		})
	})
}

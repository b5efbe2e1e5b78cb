package dedupe_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/okian/mentorpath/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSeenAndRecord(t *testing.T) {
	Convey("Given an unbounded deduper", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))
		ctx := context.Background()

		Convey("When recording a new identity", func() {
			seen := d.SeenAndRecord(ctx, "profile-a")

			Convey("Then it reports not previously seen", func() {
				So(seen, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
			})

			Convey("And recording it again reports seen", func() {
				So(d.SeenAndRecord(ctx, "profile-a"), ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When recording distinct identities", func() {
			So(d.SeenAndRecord(ctx, "a"), ShouldBeFalse)
			So(d.SeenAndRecord(ctx, "b"), ShouldBeFalse)
			So(d.SeenAndRecord(ctx, "c"), ShouldBeFalse)

			Convey("Then all are retained", func() {
				So(d.Size(), ShouldEqual, 3)
			})
		})
	})

	Convey("Given a bounded deduper", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))
		ctx := context.Background()

		Convey("When the bound is exceeded", func() {
			for i := 0; i < 5; i++ {
				So(d.SeenAndRecord(ctx, "id-"+strconv.Itoa(i)), ShouldBeFalse)
			}

			Convey("Then the size stays at the bound", func() {
				So(d.Size(), ShouldEqual, 3)
			})

			Convey("And the oldest identities were evicted", func() {
				So(d.SeenAndRecord(ctx, "id-0"), ShouldBeFalse)
				So(d.SeenAndRecord(ctx, "id-4"), ShouldBeTrue)
			})
		})
	})
}

func TestConcurrentRecording(t *testing.T) {
	Convey("Given many goroutines racing on the same identity set", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))
		ctx := context.Background()

		const goroutines = 16
		const ids = 100

		done := make(chan struct{})
		for g := 0; g < goroutines; g++ {
			go func() {
				defer func() { done <- struct{}{} }()
				for i := 0; i < ids; i++ {
					d.SeenAndRecord(ctx, "id-"+strconv.Itoa(i))
				}
			}()
		}
		for g := 0; g < goroutines; g++ {
			<-done
		}

		Convey("Then each identity is recorded exactly once", func() {
			So(d.Size(), ShouldEqual, ids)
		})
	})
}

package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/mentorpath/internal/adapters/repository"
	"github.com/okian/mentorpath/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func plan(id string, steps int) model.TransferPlan {
	phases := make([]model.LearningPhase, steps)
	for i := range phases {
		phases[i] = model.LearningPhase{Step: i + 1}
	}
	return model.TransferPlan{PlanID: id, Phases: phases}
}

func TestMemStorePlans(t *testing.T) {
	Convey("Given an empty store", t, func() {
		store := repository.NewMemStore()
		ctx := context.Background()

		Convey("When registering a plan", func() {
			So(store.RegisterPlan(ctx, plan("p-1", 3)), ShouldBeNil)

			Convey("Then its step count is retrievable", func() {
				steps, err := store.PlanSteps(ctx, "p-1")
				So(err, ShouldBeNil)
				So(steps, ShouldEqual, 3)
				So(store.PlanCount(ctx), ShouldEqual, 1)
			})

			Convey("And re-registering the same id is idempotent", func() {
				So(store.RegisterPlan(ctx, plan("p-1", 3)), ShouldBeNil)
				So(store.PlanCount(ctx), ShouldEqual, 1)
			})
		})

		Convey("When looking up an unknown plan", func() {
			_, err := store.PlanSteps(ctx, "nope")

			Convey("Then the not-found sentinel surfaces", func() {
				So(errors.Is(err, repository.ErrPlanNotFound), ShouldBeTrue)
			})
		})

		Convey("When registering an invalid plan", func() {
			So(errors.Is(store.RegisterPlan(ctx, model.TransferPlan{}), repository.ErrInvalidPlan), ShouldBeTrue)
			So(errors.Is(store.RegisterPlan(ctx, model.TransferPlan{PlanID: "x"}), repository.ErrInvalidPlan), ShouldBeTrue)
		})
	})

	Convey("Given a store bounded to two plans", t, func() {
		store := repository.NewMemStore(repository.WithMaxPlans(2))
		ctx := context.Background()

		Convey("When a third plan arrives", func() {
			So(store.RegisterPlan(ctx, plan("p-1", 1)), ShouldBeNil)
			So(store.RegisterPlan(ctx, plan("p-2", 1)), ShouldBeNil)
			So(store.RegisterPlan(ctx, plan("p-3", 1)), ShouldBeNil)

			Convey("Then the oldest is evicted", func() {
				So(store.PlanCount(ctx), ShouldEqual, 2)
				_, err := store.PlanSteps(ctx, "p-1")
				So(errors.Is(err, repository.ErrPlanNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestMemStoreProgressCAS(t *testing.T) {
	Convey("Given a store with one plan", t, func() {
		store := repository.NewMemStore()
		ctx := context.Background()
		So(store.RegisterPlan(ctx, plan("p-1", 4)), ShouldBeNil)

		rec := model.TransferProgressRecord{
			LearnerID:  "learner-1",
			PathID:     "p-1",
			Completed:  []int{0},
			TotalSteps: 4,
			CompletionPct: 25,
			Version:    1,
		}

		Convey("When saving a first record with expected version 0", func() {
			So(store.SaveProgress(ctx, rec, 0), ShouldBeNil)

			Convey("Then the record reads back", func() {
				got, err := store.Progress(ctx, "learner-1", "p-1")
				So(err, ShouldBeNil)
				So(got.Completed, ShouldResemble, []int{0})
				So(got.Version, ShouldEqual, 1)
			})

			Convey("And a second write must carry the stored version", func() {
				next := rec
				next.Completed = []int{0, 1}
				next.CompletionPct = 50
				next.Version = 2

				So(store.SaveProgress(ctx, next, 1), ShouldBeNil)

				stale := rec
				stale.Version = 2
				err := store.SaveProgress(ctx, stale, 1)
				So(errors.Is(err, repository.ErrVersionConflict), ShouldBeTrue)
			})
		})

		Convey("When the first write claims a nonzero expected version", func() {
			err := store.SaveProgress(ctx, rec, 3)

			Convey("Then the conflict sentinel surfaces", func() {
				So(errors.Is(err, repository.ErrVersionConflict), ShouldBeTrue)
			})
		})

		Convey("When no update has happened yet", func() {
			_, err := store.Progress(ctx, "learner-1", "p-1")

			Convey("Then the progress not-found sentinel surfaces", func() {
				So(errors.Is(err, repository.ErrProgressNotFound), ShouldBeTrue)
			})
		})

		Convey("When a caller mutates a returned record", func() {
			So(store.SaveProgress(ctx, rec, 0), ShouldBeNil)
			got, err := store.Progress(ctx, "learner-1", "p-1")
			So(err, ShouldBeNil)
			got.Completed[0] = 99

			Convey("Then the stored copy is unaffected", func() {
				again, err := store.Progress(ctx, "learner-1", "p-1")
				So(err, ShouldBeNil)
				So(again.Completed, ShouldResemble, []int{0})
			})
		})
	})
}

package similarity_test

import (
	"testing"

	"github.com/okian/mentorpath/internal/domain/model"
	"github.com/okian/mentorpath/internal/domain/similarity"
	. "github.com/smartystreets/goconvey/convey"
)

func TestScorer_Score(t *testing.T) {
	Convey("Given a scorer with default weights", t, func() {
		scorer := similarity.New()

		Convey("When comparing a learner against a richer reference", func() {
			learner := model.MetricVector{"posture": 0.75, "eye_contact": 0.60}
			reference := model.MetricVector{"posture": 0.85, "eye_contact": 0.85, "clarity": 0.90}

			res := scorer.Score(learner, reference, nil)

			Convey("Then only shared metrics participate in the score", func() {
				So(res.Compared, ShouldEqual, 2)
				So(res.Similarity, ShouldAlmostEqual, 0.825, 1e-9)
			})

			Convey("And the one-sided metric is surfaced as non-comparable", func() {
				So(res.Gaps, ShouldHaveLength, 3)
				// Gap list is sorted by metric name.
				So(res.Gaps[0].Metric, ShouldEqual, "clarity")
				So(res.Gaps[0].Comparable, ShouldBeFalse)
			})

			Convey("And gap priorities follow the magnitude thresholds", func() {
				So(res.Gaps[1].Metric, ShouldEqual, "eye_contact")
				So(res.Gaps[1].Gap, ShouldAlmostEqual, 0.25, 1e-9)
				So(res.Gaps[1].Priority, ShouldEqual, model.PriorityMedium)
				So(res.Gaps[2].Metric, ShouldEqual, "posture")
				So(res.Gaps[2].Gap, ShouldAlmostEqual, 0.10, 1e-9)
				So(res.Gaps[2].Priority, ShouldEqual, model.PriorityLow)
			})
		})

		Convey("When both vectors match exactly", func() {
			v := model.MetricVector{"pace": 0.5, "clarity": 0.9}

			res := scorer.Score(v, v, nil)

			Convey("Then similarity is exactly 1", func() {
				So(res.Similarity, ShouldEqual, 1.0)
			})
		})

		Convey("When the vectors share no metrics", func() {
			res := scorer.Score(
				model.MetricVector{"pace": 0.5},
				model.MetricVector{"clarity": 0.9},
				nil,
			)

			Convey("Then similarity is 0 and nothing was compared", func() {
				So(res.Compared, ShouldEqual, 0)
				So(res.Similarity, ShouldEqual, 0.0)
				So(res.Gaps, ShouldHaveLength, 2)
				So(res.Gaps[0].Comparable, ShouldBeFalse)
				So(res.Gaps[1].Comparable, ShouldBeFalse)
			})
		})

		Convey("When the learner exceeds the reference", func() {
			res := scorer.Score(
				model.MetricVector{"pace": 0.9},
				model.MetricVector{"pace": 0.4},
				nil,
			)

			Convey("Then the gap is negative and forced to low priority", func() {
				So(res.Gaps[0].Gap, ShouldAlmostEqual, -0.5, 1e-9)
				So(res.Gaps[0].Priority, ShouldEqual, model.PriorityLow)
			})
		})

		Convey("When inputs drift outside the unit interval", func() {
			res := scorer.Score(
				model.MetricVector{"pace": 1.4},
				model.MetricVector{"pace": -0.2},
				nil,
			)

			Convey("Then values are clamped and corrections counted", func() {
				So(res.Clamped, ShouldEqual, 2)
				So(res.Gaps[0].LearnerValue, ShouldEqual, 1.0)
				So(res.Gaps[0].ReferenceValue, ShouldEqual, 0.0)
				So(res.Similarity, ShouldBeBetweenOrEqual, 0, 1)
			})
		})

		Convey("When scoring is repeated with swapped arguments", func() {
			a := model.MetricVector{"pace": 0.2, "clarity": 0.8}
			b := model.MetricVector{"pace": 0.7, "clarity": 0.4}

			Convey("Then the similarity value is symmetric", func() {
				So(scorer.Score(a, b, nil).Similarity, ShouldEqual, scorer.Score(b, a, nil).Similarity)
			})
		})
	})

	Convey("Given a scorer with caller-supplied weights", t, func() {
		scorer := similarity.New()

		Convey("When one metric carries triple weight", func() {
			learner := model.MetricVector{"pace": 0.5, "clarity": 0.5}
			reference := model.MetricVector{"pace": 0.9, "clarity": 0.5}
			weights := map[string]float64{"pace": 3.0}

			res := scorer.Score(learner, reference, weights)

			Convey("Then the average is normalized by the weights used", func() {
				// (0.6*3 + 1.0*1) / 4 = 0.7
				So(res.Similarity, ShouldAlmostEqual, 0.7, 1e-9)
			})
		})

		Convey("When a weighted metric is absent from one side", func() {
			learner := model.MetricVector{"clarity": 0.5}
			reference := model.MetricVector{"clarity": 0.5}
			weights := map[string]float64{"pace": 5.0}

			res := scorer.Score(learner, reference, weights)

			Convey("Then the unused weight does not bias the result", func() {
				So(res.Similarity, ShouldEqual, 1.0)
			})
		})
	})
}

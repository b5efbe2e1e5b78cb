package transfer_test

import (
	"testing"

	"github.com/okian/mentorpath/internal/domain/model"
	"github.com/okian/mentorpath/internal/domain/transfer"
	. "github.com/smartystreets/goconvey/convey"
)

func boxingToSpeaking() model.TransferMapping {
	return model.TransferMapping{
		SourceSkill: "boxing",
		TargetSkill: "public_speaking",
		Components: []model.ComponentMapping{
			{
				SourceComponent: "Footwork",
				TargetComponent: "Stage Presence",
				Strength:        0.85,
				Principle:       "Boxing footwork translates to confident stage movement and positioning.",
			},
			{
				SourceComponent: "Timing and Rhythm",
				TargetComponent: "Speech Rhythm",
				Strength:        0.9,
				Principle:       "Boxing timing sense transfers to speech pacing and dramatic pauses.",
			},
			{
				SourceComponent: "Mental Focus",
				TargetComponent: "Audience Engagement",
				Strength:        0.8,
				Principle:       "Boxing mental discipline enhances sustained audience connection.",
			},
		},
	}
}

func TestMapper_MapTransfer(t *testing.T) {
	Convey("Given a mapper and a curated catalog", t, func() {
		m := transfer.New()
		catalog := []model.TransferMapping{boxingToSpeaking()}

		Convey("When the pair has a curated mapping", func() {
			plan := m.MapTransfer("boxing", "public_speaking", catalog)

			Convey("Then the plan is not generic", func() {
				So(plan.Generic, ShouldBeFalse)
				So(plan.SourceSkill, ShouldEqual, "boxing")
				So(plan.TargetSkill, ShouldEqual, "public_speaking")
			})

			Convey("And effectiveness averages the component strengths", func() {
				So(plan.Effectiveness, ShouldAlmostEqual, (0.85+0.9+0.8)/3, 1e-9)
			})

			Convey("And each component becomes one ordered phase", func() {
				So(plan.Phases, ShouldHaveLength, 3)
				So(plan.Phases[0].Step, ShouldEqual, 1)
				So(plan.Phases[0].FocusArea, ShouldEqual, "Footwork → Stage Presence")
				// ceil((1-0.85)*10) = 2
				So(plan.Phases[0].EstimatedWeeks, ShouldEqual, 2)
				// ceil((1-0.9)*10) = 1
				So(plan.Phases[1].EstimatedWeeks, ShouldEqual, 1)
				// ceil((1-0.8)*10) = 2
				So(plan.Phases[2].EstimatedWeeks, ShouldEqual, 2)
			})

			Convey("And total weeks is the sum of phase estimates", func() {
				So(plan.TotalWeeks, ShouldEqual, 5)
			})

			Convey("And principles are copied verbatim", func() {
				So(plan.Principles, ShouldHaveLength, 3)
				So(plan.Principles[1], ShouldEqual, "Boxing timing sense transfers to speech pacing and dramatic pauses.")
			})
		})

		Convey("When the pair is unknown", func() {
			plan := m.MapTransfer("juggling", "accounting", catalog)

			Convey("Then the generic template is used, never an error", func() {
				So(plan.Generic, ShouldBeTrue)
				So(plan.Phases, ShouldNotBeEmpty)
				So(plan.Effectiveness, ShouldAlmostEqual, 0.5, 1e-9)
				So(plan.SourceSkill, ShouldEqual, "juggling")
				So(plan.TargetSkill, ShouldEqual, "accounting")
			})
		})

		Convey("When skill names differ only in case", func() {
			plan := m.MapTransfer("Boxing", "PUBLIC_SPEAKING", catalog)

			Convey("Then matching is case-insensitive", func() {
				So(plan.Generic, ShouldBeFalse)
			})
		})

		Convey("When the catalog specifies component weights", func() {
			weighted := boxingToSpeaking()
			weighted.Components[0].Weight = 3.0

			plan := m.MapTransfer("boxing", "public_speaking", []model.TransferMapping{weighted})

			Convey("Then effectiveness is a weighted average", func() {
				So(plan.Effectiveness, ShouldAlmostEqual, (0.85*3+0.9+0.8)/5, 1e-9)
			})
		})
	})

	Convey("Given a mapper with a tuned duration constant", t, func() {
		m := transfer.New(transfer.WithDurationConstant(20))

		Convey("When mapping a curated pair", func() {
			plan := m.MapTransfer("boxing", "public_speaking", []model.TransferMapping{boxingToSpeaking()})

			Convey("Then the constant stretches every estimate", func() {
				// ceil((1-0.85)*20)=3, ceil((1-0.9)*20)=2, ceil((1-0.8)*20)=4
				So(plan.TotalWeeks, ShouldEqual, 9)
			})
		})
	})
}

package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/mentorpath/internal/adapters/http/api"
	"github.com/okian/mentorpath/internal/adapters/repository"
	service "github.com/okian/mentorpath/internal/app"
	"github.com/okian/mentorpath/internal/domain/model"
	"github.com/okian/mentorpath/internal/domain/progress"
	. "github.com/smartystreets/goconvey/convey"
)

// Mock implementations for testing
type mockEngine struct {
	recs        []model.Recommendation
	recErr      error
	plan        model.TransferPlan
	planErr     error
	record      model.TransferProgressRecord
	recordErr   error
	lastTopN    int
	lastLearner model.LearnerContext
}

func (m *mockEngine) Recommend(ctx context.Context, learner model.LearnerContext, skillDomain string, topN int) ([]model.Recommendation, error) {
	m.lastLearner = learner
	m.lastTopN = topN
	if m.recErr != nil {
		return nil, m.recErr
	}
	return m.recs, nil
}

func (m *mockEngine) TransferPlan(ctx context.Context, sourceSkill, targetSkill string) (model.TransferPlan, error) {
	if m.planErr != nil {
		return model.TransferPlan{}, m.planErr
	}
	return m.plan, nil
}

func (m *mockEngine) RecordProgress(ctx context.Context, learnerID, pathID string, stepIndex int) (model.TransferProgressRecord, error) {
	if m.recordErr != nil {
		return model.TransferProgressRecord{}, m.recordErr
	}
	return m.record, nil
}

type mockStats struct{}

func (m *mockStats) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true, "profiles": 6}
}

func newTestMux(deps api.Dependencies) *http.ServeMux {
	srv := api.NewServer(deps, &mockStats{}, 25)
	mux := http.NewServeMux()
	srv.Register(context.Background(), mux)
	return mux
}

func TestRecommendationsEndpoint(t *testing.T) {
	Convey("Given a server with a stubbed engine", t, func() {
		engine := &mockEngine{
			recs: []model.Recommendation{
				{ProfileID: "p1", ProfileName: "First", Similarity: 0.9},
				{ProfileID: "p2", ProfileName: "Second", Similarity: 0.7},
			},
		}
		mux := newTestMux(engine)

		Convey("When posting a valid request", func() {
			body := `{"learner_id":"l1","skill_domain":"public_speaking","metrics":{"clarity":0.5},"top_n":2}`
			req := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(body))
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			Convey("Then it returns 200 with the ranked list", func() {
				So(rr.Code, ShouldEqual, http.StatusOK)
				var resp struct {
					LearnerID       string                 `json:"learner_id"`
					Recommendations []model.Recommendation `json:"recommendations"`
				}
				So(json.Unmarshal(rr.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.LearnerID, ShouldEqual, "l1")
				So(resp.Recommendations, ShouldHaveLength, 2)
				So(resp.Recommendations[0].ProfileID, ShouldEqual, "p1")
			})

			Convey("And the engine received the request values", func() {
				So(engine.lastTopN, ShouldEqual, 2)
				So(engine.lastLearner.LearnerID, ShouldEqual, "l1")
			})
		})

		Convey("When the body is not valid JSON", func() {
			req := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader("{nope"))
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			So(rr.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When required fields are missing", func() {
			body := `{"learner_id":"l1","metrics":{"clarity":0.5}}`
			req := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(body))
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			So(rr.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When top_n exceeds the configured maximum", func() {
			body := `{"learner_id":"l1","skill_domain":"d","metrics":{"m":0.5},"top_n":100}`
			req := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(body))
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			So(rr.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the skill domain has no profiles", func() {
			engine.recErr = service.ErrEmptyCatalog
			body := `{"learner_id":"l1","skill_domain":"empty","metrics":{"m":0.5}}`
			req := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(body))
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			So(rr.Code, ShouldEqual, http.StatusUnprocessableEntity)
		})

		Convey("When an unexpected engine error occurs", func() {
			engine.recErr = fmt.Errorf("boom")
			body := `{"learner_id":"l1","skill_domain":"d","metrics":{"m":0.5}}`
			req := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(body))
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			So(rr.Code, ShouldEqual, http.StatusInternalServerError)
		})

		Convey("When using the wrong method", func() {
			req := httptest.NewRequest(http.MethodGet, "/recommendations", nil)
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			So(rr.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestTransferPlanEndpoint(t *testing.T) {
	Convey("Given a server with a stubbed engine", t, func() {
		engine := &mockEngine{
			plan: model.TransferPlan{
				PlanID:      "plan-1",
				SourceSkill: "boxing",
				TargetSkill: "public_speaking",
				Phases:      []model.LearningPhase{{Step: 1, FocusArea: "Footwork → Stage Presence"}},
			},
		}
		mux := newTestMux(engine)

		Convey("When requesting a plan for a valid pair", func() {
			req := httptest.NewRequest(http.MethodGet, "/transfer-plan?source=boxing&target=public_speaking", nil)
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			Convey("Then it returns 200 with the plan", func() {
				So(rr.Code, ShouldEqual, http.StatusOK)
				var plan model.TransferPlan
				So(json.Unmarshal(rr.Body.Bytes(), &plan), ShouldBeNil)
				So(plan.PlanID, ShouldEqual, "plan-1")
				So(plan.Phases, ShouldHaveLength, 1)
			})
		})

		Convey("When source or target is missing", func() {
			req := httptest.NewRequest(http.MethodGet, "/transfer-plan?source=boxing", nil)
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			So(rr.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the engine fails", func() {
			engine.planErr = fmt.Errorf("store full")
			req := httptest.NewRequest(http.MethodGet, "/transfer-plan?source=a&target=b", nil)
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			So(rr.Code, ShouldEqual, http.StatusInternalServerError)
		})
	})
}

func TestProgressEndpoint(t *testing.T) {
	Convey("Given a server with a stubbed engine", t, func() {
		engine := &mockEngine{
			record: model.TransferProgressRecord{
				LearnerID:     "l1",
				PathID:        "plan-1",
				Completed:     []int{0},
				TotalSteps:    4,
				CompletionPct: 25,
				Version:       1,
			},
		}
		mux := newTestMux(engine)

		post := func(body string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodPost, "/progress", strings.NewReader(body))
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)
			return rr
		}

		Convey("When posting a valid update", func() {
			rr := post(`{"learner_id":"l1","path_id":"plan-1","step_index":0}`)

			Convey("Then it returns 200 with the new record", func() {
				So(rr.Code, ShouldEqual, http.StatusOK)
				var resp struct {
					Record model.TransferProgressRecord `json:"record"`
				}
				So(json.Unmarshal(rr.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.Record.CompletionPct, ShouldEqual, 25)
				So(resp.Record.Version, ShouldEqual, 1)
			})
		})

		Convey("When step_index is absent", func() {
			rr := post(`{"learner_id":"l1","path_id":"plan-1"}`)
			So(rr.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When step_index is zero it still counts as present", func() {
			rr := post(`{"learner_id":"l1","path_id":"plan-1","step_index":0}`)
			So(rr.Code, ShouldEqual, http.StatusOK)
		})

		Convey("When the plan does not exist", func() {
			engine.recordErr = fmt.Errorf("%w: plan-x", repository.ErrPlanNotFound)
			rr := post(`{"learner_id":"l1","path_id":"plan-x","step_index":0}`)
			So(rr.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When the step index is out of range", func() {
			engine.recordErr = fmt.Errorf("%w: 9", progress.ErrOutOfRange)
			rr := post(`{"learner_id":"l1","path_id":"plan-1","step_index":9}`)
			So(rr.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When a concurrent update wins", func() {
			engine.recordErr = fmt.Errorf("%w: expected 1, have 2", repository.ErrVersionConflict)
			rr := post(`{"learner_id":"l1","path_id":"plan-1","step_index":0}`)
			So(rr.Code, ShouldEqual, http.StatusConflict)
		})
	})
}

func TestStatsEndpoint(t *testing.T) {
	Convey("Given a registered stats handler", t, func() {
		mux := newTestMux(&mockEngine{})

		Convey("When requesting stats", func() {
			req := httptest.NewRequest(http.MethodGet, "/stats", nil)
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			Convey("Then it returns the provider's map as JSON", func() {
				So(rr.Code, ShouldEqual, http.StatusOK)
				var stats map[string]interface{}
				So(json.Unmarshal(rr.Body.Bytes(), &stats), ShouldBeNil)
				So(stats["started"], ShouldEqual, true)
			})
		})

		Convey("When using the wrong method", func() {
			req := httptest.NewRequest(http.MethodPost, "/stats", nil)
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			So(rr.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestHealthEndpoint(t *testing.T) {
	Convey("Given a registered health handler", t, func() {
		mux := newTestMux(&mockEngine{})

		Convey("When requesting /healthz", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			Convey("Then it serves the metrics registry", func() {
				So(rr.Code, ShouldEqual, http.StatusOK)
				So(rr.Body.String(), ShouldContainSubstring, "mentorpath")
			})
		})
	})
}

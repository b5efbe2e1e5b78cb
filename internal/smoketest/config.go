package smoketest

import "time"

// Config holds configuration for the end-to-end check.
type Config struct {
	BaseURL     string        // Base URL of the service
	NumLearners int           // Number of synthetic learners to generate
	SkillDomain string        // Skill domain to request recommendations in
	TopN        int           // Recommendations per learner
	Workers     int           // Number of concurrent workers
	Timeout     time.Duration // HTTP request timeout
	LogFile     string        // Log file for output
	Verbose     bool          // Enable verbose logging
}

// Learner is one synthetic recommendation request.
type Learner struct {
	LearnerID         string             `json:"learner_id"`
	SkillDomain       string             `json:"skill_domain"`
	Metrics           map[string]float64 `json:"metrics"`
	PracticeFrequency int                `json:"practice_frequency"`
	Trend             string             `json:"trend"`
	TopN              int                `json:"top_n"`
}

// Recommendation is the subset of the response shape the check inspects.
type Recommendation struct {
	ProfileID  string  `json:"profile_id"`
	Similarity float64 `json:"similarity"`
	Strategy   string  `json:"strategy"`
}

// RecommendationResponse is the body of POST /recommendations.
type RecommendationResponse struct {
	LearnerID       string           `json:"learner_id"`
	Recommendations []Recommendation `json:"recommendations"`
}

// TransferPlanResponse is the body of GET /transfer-plan.
type TransferPlanResponse struct {
	PlanID  string `json:"plan_id"`
	Generic bool   `json:"generic"`
	Phases  []struct {
		Step int `json:"step"`
	} `json:"phases"`
}

// ProgressResponse is the body of POST /progress.
type ProgressResponse struct {
	Record struct {
		CompletionPct int   `json:"completion_pct"`
		Version       int64 `json:"version"`
	} `json:"record"`
}

// Stats holds check statistics.
type Stats struct {
	LearnersGenerated  int
	RequestsSubmitted  int
	RequestsSuccessful int
	RequestsFailed     int
	PlansGenerated     int
	ProgressUpdates    int
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}

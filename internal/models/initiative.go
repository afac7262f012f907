package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Intake status values (admin-managed review pipeline).
const (
	StatusPending     = "pending"
	StatusUnderReview = "under-review"
	StatusApproved    = "approved"
	StatusRejected    = "rejected"
)

// Roadmap status values (deployment lifecycle, independent of intake status).
const (
	RoadmapUnderReview = "under-review"
	RoadmapResearch    = "research"
	RoadmapDevelopment = "development"
	RoadmapPilot       = "pilot"
	RoadmapDeployed    = "deployed"
	RoadmapOnHold      = "on-hold"
	RoadmapRejected    = "rejected"
)

// RoadmapStatuses lists every valid roadmap state.
var RoadmapStatuses = []string{
	RoadmapUnderReview, RoadmapResearch, RoadmapDevelopment,
	RoadmapPilot, RoadmapDeployed, RoadmapOnHold, RoadmapRejected,
}

// IntakeStatuses lists every valid intake status.
var IntakeStatuses = []string{
	StatusPending, StatusUnderReview, StatusApproved, StatusRejected,
}

// StringList stores an ordered sequence of strings as a JSON column.
// The encoding is a persistence detail; callers only ever see []string.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for StringList")
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(data, (*[]string)(l))
}

// Initiative represents one submitted AI-initiative proposal
type Initiative struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	OwnerID uint  `gorm:"index;not null" json:"owner_id"`
	Owner   *User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`

	// Content fields, mutated only by the owner through the intake steps
	Title            string `gorm:"size:300;not null" json:"title"`
	ProblemStatement string `gorm:"type:text" json:"problem_statement"`
	Approach         string `gorm:"type:text" json:"approach"`
	ExpectedOutcome  string `gorm:"type:text" json:"expected_outcome"`
	Stakeholders     string `gorm:"type:text" json:"stakeholders"`
	IntakeStep       int    `gorm:"default:1" json:"intake_step"` // 1..4
	Submitted        bool   `gorm:"default:false" json:"submitted"`

	// Governance fields, stamped once by the analysis step
	RiskLevel        string     `gorm:"size:20" json:"risk_level"`        // low, medium, high
	MissionAlignment string     `gorm:"size:20" json:"mission_alignment"` // high, medium, low
	AnalysisSummary  string     `gorm:"type:text" json:"analysis_summary"`
	MissionSupports  StringList `gorm:"type:text" json:"mission_supports"`
	Risks            StringList `gorm:"type:text" json:"risks"`
	Assumptions      StringList `gorm:"type:text" json:"assumptions"`
	Issues           StringList `gorm:"type:text" json:"issues"`
	Dependencies     StringList `gorm:"type:text" json:"dependencies"`
	AnalyzedAt       *time.Time `json:"analyzed_at"`

	// Evaluation fields, admin-owned, written only by the evaluation service
	Impact          string     `gorm:"size:20" json:"impact"` // high, medium, low
	Effort          string     `gorm:"size:20" json:"effort"` // high, medium, low
	EvaluationNotes *string    `gorm:"type:text" json:"evaluation_notes,omitempty"`
	Tags            StringList `gorm:"type:text" json:"tags"`
	EvaluatedBy     string     `gorm:"size:255" json:"evaluated_by"`
	EvaluatedAt     *time.Time `json:"evaluated_at"`

	// Derived fields, always recomputed together from (impact, effort)
	PriorityScore    *int   `json:"priority_score"`
	PriorityQuadrant string `gorm:"size:30" json:"priority_quadrant"`

	// Two independent lifecycles
	Status        string `gorm:"size:30;default:pending;index" json:"status"`
	RoadmapStatus string `gorm:"size:30;default:under-review;index" json:"roadmap_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Annotated on list queries, never a stored column
	VoteCount int64 `gorm:"->;-:migration" json:"vote_count"`
}

func (Initiative) TableName() string { return "initiatives" }

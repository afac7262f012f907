package services

import (
	"errors"
	"testing"

	"github.com/IrvinCruzAI/ai-governance-assistant/internal/models"
)

func TestEvaluate_SetsScoreAndQuadrant(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEvaluationService(db)

	admin := makeUser(t, db, "admin", "admin")
	owner := makeUser(t, db, "alice", "user")
	initiative := makeInitiative(t, db, owner.ID, "Document search")

	notes := "strong demand from legal team"
	result, err := svc.Evaluate(initiative.ID, &EvaluateRequest{
		Impact:          "high",
		Effort:          "low",
		EvaluationNotes: &notes,
		Tags:            []string{"legal", "quarter-goal"},
	}, actorFor(admin))
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	if result.PriorityScore == nil || *result.PriorityScore != 170 {
		t.Errorf("PriorityScore = %v, expected 170", result.PriorityScore)
	}
	if result.PriorityQuadrant != "quick-win" {
		t.Errorf("PriorityQuadrant = %q, expected quick-win", result.PriorityQuadrant)
	}
	if result.Impact != "high" || result.Effort != "low" {
		t.Errorf("persisted (impact, effort) = (%q, %q)", result.Impact, result.Effort)
	}
	if result.EvaluationNotes == nil || *result.EvaluationNotes != notes {
		t.Errorf("EvaluationNotes = %v, expected %q", result.EvaluationNotes, notes)
	}
	if len(result.Tags) != 2 || result.Tags[0] != "legal" {
		t.Errorf("Tags = %v", result.Tags)
	}
	if result.EvaluatedBy != admin.Email {
		t.Errorf("EvaluatedBy = %q, expected admin email fallback %q", result.EvaluatedBy, admin.Email)
	}
	if result.EvaluatedAt == nil {
		t.Error("EvaluatedAt should be stamped")
	}
}

func TestEvaluate_NotesAndTagsOptional(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEvaluationService(db)

	admin := makeUser(t, db, "admin", "admin")
	initiative := makeInitiative(t, db, admin.ID, "Forecast model")

	result, err := svc.Evaluate(initiative.ID, &EvaluateRequest{
		Impact: "medium",
		Effort: "medium",
	}, actorFor(admin))
	if err != nil {
		t.Fatalf("Evaluate() without notes/tags error = %v", err)
	}

	if result.EvaluationNotes != nil {
		t.Errorf("EvaluationNotes = %v, expected nil", result.EvaluationNotes)
	}
	if result.Tags != nil {
		t.Errorf("Tags = %v, expected nil", result.Tags)
	}
	if result.PriorityScore == nil || *result.PriorityScore != 100 {
		t.Errorf("PriorityScore = %v, expected 100", result.PriorityScore)
	}
	if result.PriorityQuadrant != "reconsider" {
		t.Errorf("PriorityQuadrant = %q, expected reconsider", result.PriorityQuadrant)
	}
}

func TestEvaluate_OverwritesFully(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEvaluationService(db)

	admin := makeUser(t, db, "admin", "admin")
	initiative := makeInitiative(t, db, admin.ID, "Churn predictor")

	notes := "first pass"
	if _, err := svc.Evaluate(initiative.ID, &EvaluateRequest{
		Impact:          "high",
		Effort:          "high",
		EvaluationNotes: &notes,
		Tags:            []string{"ml"},
	}, actorFor(admin)); err != nil {
		t.Fatalf("first Evaluate() error = %v", err)
	}

	result, err := svc.Evaluate(initiative.ID, &EvaluateRequest{
		Impact: "low",
		Effort: "low",
	}, actorFor(admin))
	if err != nil {
		t.Fatalf("second Evaluate() error = %v", err)
	}

	// No residue of the first evaluation
	if result.PriorityScore == nil || *result.PriorityScore != 100 {
		t.Errorf("PriorityScore = %v, expected 100", result.PriorityScore)
	}
	if result.PriorityQuadrant != "nice-to-have" {
		t.Errorf("PriorityQuadrant = %q, expected nice-to-have", result.PriorityQuadrant)
	}
	if result.Impact != "low" || result.Effort != "low" {
		t.Errorf("persisted (impact, effort) = (%q, %q), expected (low, low)", result.Impact, result.Effort)
	}
	if result.EvaluationNotes != nil {
		t.Errorf("EvaluationNotes = %v, expected nil after overwrite", result.EvaluationNotes)
	}
	if result.Tags != nil {
		t.Errorf("Tags = %v, expected nil after overwrite", result.Tags)
	}
}

func TestEvaluate_NonAdminForbidden(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEvaluationService(db)

	user := makeUser(t, db, "alice", "user")
	initiative := makeInitiative(t, db, user.ID, "Ops copilot")

	_, err := svc.Evaluate(initiative.ID, &EvaluateRequest{Impact: "high", Effort: "low"}, actorFor(user))
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("Evaluate() by non-admin error = %v, expected ErrForbidden", err)
	}

	// Evaluation fields untouched
	var stored models.Initiative
	if err := db.First(&stored, initiative.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Impact != "" || stored.PriorityScore != nil || stored.PriorityQuadrant != "" {
		t.Errorf("evaluation fields changed: impact=%q score=%v quadrant=%q",
			stored.Impact, stored.PriorityScore, stored.PriorityQuadrant)
	}
}

func TestEvaluate_InvalidLevels(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEvaluationService(db)

	admin := makeUser(t, db, "admin", "admin")
	initiative := makeInitiative(t, db, admin.ID, "Data catalog")

	cases := []EvaluateRequest{
		{Impact: "huge", Effort: "low"},
		{Impact: "high", Effort: ""},
		{Impact: "High", Effort: "low"},
	}
	for _, req := range cases {
		if _, err := svc.Evaluate(initiative.ID, &req, actorFor(admin)); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Evaluate(%q, %q) error = %v, expected ErrInvalidInput", req.Impact, req.Effort, err)
		}
	}
}

func TestEvaluate_NotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEvaluationService(db)
	admin := makeUser(t, db, "admin", "admin")

	_, err := svc.Evaluate(9999, &EvaluateRequest{Impact: "high", Effort: "low"}, actorFor(admin))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Evaluate() on missing initiative error = %v, expected ErrNotFound", err)
	}
}

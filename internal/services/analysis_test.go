package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/IrvinCruzAI/ai-governance-assistant/internal/config"
	"github.com/IrvinCruzAI/ai-governance-assistant/internal/models"
)

func TestParseAnalysisResponse(t *testing.T) {
	content := `Here is my assessment:
{
  "mission_alignment": "High",
  "risk_level": "medium",
  "summary": "Aligned with the data strategy.",
  "mission_supports": ["reduces manual review"],
  "risks": ["PII exposure"],
  "assumptions": ["contracts are in English"],
  "issues": [],
  "dependencies": ["document store access"]
}
Let me know if you need more detail.`

	result, err := parseAnalysisResponse(content)
	if err != nil {
		t.Fatalf("parseAnalysisResponse() error = %v", err)
	}
	if result.MissionAlignment != "high" {
		t.Errorf("MissionAlignment = %q, expected normalized high", result.MissionAlignment)
	}
	if result.RiskLevel != "medium" {
		t.Errorf("RiskLevel = %q", result.RiskLevel)
	}
	if len(result.Risks) != 1 || result.Risks[0] != "PII exposure" {
		t.Errorf("Risks = %v", result.Risks)
	}
	if len(result.Issues) != 0 {
		t.Errorf("Issues = %v, expected empty", result.Issues)
	}
}

func TestParseAnalysisResponse_Rejects(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"no json", "the proposal looks fine to me"},
		{"truncated", `{"mission_alignment": "high", "risk_level":`},
		{"bad alignment", `{"mission_alignment": "great", "risk_level": "low"}`},
		{"bad risk", `{"mission_alignment": "high", "risk_level": "severe"}`},
		{"missing ratings", `{"summary": "fine"}`},
	}
	for _, tc := range cases {
		if _, err := parseAnalysisResponse(tc.content); err == nil {
			t.Errorf("%s: parseAnalysisResponse() accepted invalid content", tc.name)
		}
	}
}

func TestBuildAnalysisPrompt(t *testing.T) {
	svc := NewAnalysisService(nil, &config.AIConfig{})
	initiative := &models.Initiative{
		Title:            "Contract summarizer",
		ProblemStatement: "Reviews take two days",
		Approach:         "RAG pipeline",
		ExpectedOutcome:  "Same-day turnaround",
		Stakeholders:     "Legal, Procurement",
	}

	prompt := svc.buildAnalysisPrompt(initiative)
	for _, want := range []string{
		"Contract summarizer",
		"Reviews take two days",
		"RAG pipeline",
		"Same-day turnaround",
		"Legal, Procurement",
		"mission_alignment",
		"dependencies",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestProcessAnalysisTask_SkipsAnalyzed(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAnalysisService(db, &config.AIConfig{Provider: "openai"})
	user := makeUser(t, db, "alice", "user")
	initiative := makeInitiative(t, db, user.ID, "Contract summarizer")

	analyzed := time.Now()
	if err := db.Model(initiative).Updates(map[string]interface{}{
		"analyzed_at":       analyzed,
		"mission_alignment": "high",
		"risk_level":        "low",
	}).Error; err != nil {
		t.Fatalf("seed analysis: %v", err)
	}

	// Redelivered task for an analyzed initiative returns without calling
	// the provider and without touching the stored result.
	task := &AnalysisTask{TaskID: "t1", InitiativeID: initiative.ID}
	if err := svc.ProcessAnalysisTask(context.Background(), task); err != nil {
		t.Fatalf("ProcessAnalysisTask() error = %v", err)
	}

	var stored models.Initiative
	if err := db.First(&stored, initiative.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.MissionAlignment != "high" || stored.RiskLevel != "low" {
		t.Errorf("analysis fields changed: alignment=%q risk=%q", stored.MissionAlignment, stored.RiskLevel)
	}
}

func TestProcessAnalysisTask_MissingInitiative(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAnalysisService(db, &config.AIConfig{Provider: "openai"})

	task := &AnalysisTask{TaskID: "t2", InitiativeID: 9999}
	if err := svc.ProcessAnalysisTask(context.Background(), task); err != nil {
		t.Errorf("ProcessAnalysisTask() for deleted initiative error = %v, expected nil", err)
	}
}

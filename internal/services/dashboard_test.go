package services

import (
	"testing"

	"github.com/IrvinCruzAI/ai-governance-assistant/internal/models"
)

func TestDashboardGetStats(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDashboardService(db)
	votes := NewVoteService(db)
	comments := NewCommentService(db)
	evals := NewEvaluationService(db)

	admin := makeUser(t, db, "admin", "admin")
	alice := makeUser(t, db, "alice", "user")
	bob := makeUser(t, db, "bob", "user")

	a := makeInitiative(t, db, alice.ID, "A")
	b := makeInitiative(t, db, alice.ID, "B")
	makeInitiative(t, db, bob.ID, "C")

	for _, u := range []*models.User{admin, alice, bob} {
		if err := votes.Vote(a.ID, actorFor(u)); err != nil {
			t.Fatalf("Vote: %v", err)
		}
	}
	if err := votes.Vote(b.ID, actorFor(alice)); err != nil {
		t.Fatalf("Vote: %v", err)
	}
	if _, err := comments.Create(a.ID, "promising", actorFor(bob)); err != nil {
		t.Fatalf("Create comment: %v", err)
	}
	if _, err := evals.Evaluate(a.ID, &EvaluateRequest{Impact: "high", Effort: "low"}, actorFor(admin)); err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	stats, err := svc.GetStats()
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}

	if stats.TotalInitiatives != 3 {
		t.Errorf("TotalInitiatives = %d, expected 3", stats.TotalInitiatives)
	}
	if stats.TotalVotes != 4 {
		t.Errorf("TotalVotes = %d, expected 4", stats.TotalVotes)
	}
	if stats.TotalComments != 1 {
		t.Errorf("TotalComments = %d, expected 1", stats.TotalComments)
	}

	if len(stats.ByStatus) == 0 {
		t.Error("ByStatus empty")
	}
	if len(stats.ByRoadmapStatus) == 0 {
		t.Error("ByRoadmapStatus empty")
	}

	// Only the evaluated initiative contributes a quadrant.
	if len(stats.ByQuadrant) != 1 || stats.ByQuadrant[0].Quadrant != "quick-win" || stats.ByQuadrant[0].Count != 1 {
		t.Errorf("ByQuadrant = %+v", stats.ByQuadrant)
	}

	if len(stats.TopVoted) != 3 {
		t.Fatalf("TopVoted has %d entries, expected 3", len(stats.TopVoted))
	}
	if stats.TopVoted[0].ID != a.ID || stats.TopVoted[0].VoteCount != 3 {
		t.Errorf("TopVoted[0] = id %d votes %d, expected id %d votes 3",
			stats.TopVoted[0].ID, stats.TopVoted[0].VoteCount, a.ID)
	}
	if stats.TopVoted[1].ID != b.ID || stats.TopVoted[1].VoteCount != 1 {
		t.Errorf("TopVoted[1] = id %d votes %d, expected id %d votes 1",
			stats.TopVoted[1].ID, stats.TopVoted[1].VoteCount, b.ID)
	}
}

func TestDashboardGetStats_Empty(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDashboardService(db)

	stats, err := svc.GetStats()
	if err != nil {
		t.Fatalf("GetStats() on empty database error = %v", err)
	}
	if stats.TotalInitiatives != 0 || stats.TotalVotes != 0 || stats.TotalComments != 0 {
		t.Errorf("totals = %d/%d/%d, expected zeros",
			stats.TotalInitiatives, stats.TotalVotes, stats.TotalComments)
	}
	if len(stats.TopVoted) != 0 {
		t.Errorf("TopVoted = %d entries, expected none", len(stats.TopVoted))
	}
}

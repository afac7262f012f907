package services

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/IrvinCruzAI/ai-governance-assistant/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

func makeUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()

	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
		AuthType: "local",
		IsActive: true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return &user
}

func actorFor(user *models.User) Actor {
	return Actor{
		ID:          user.ID,
		Username:    user.Username,
		Role:        user.Role,
		DisplayName: user.Nickname,
		Email:       user.Email,
	}
}

func makeInitiative(t *testing.T, db *gorm.DB, ownerID uint, title string) *models.Initiative {
	t.Helper()

	initiative := models.Initiative{
		OwnerID:       ownerID,
		Title:         title,
		IntakeStep:    1,
		Status:        models.StatusPending,
		RoadmapStatus: models.RoadmapUnderReview,
	}
	if err := db.Create(&initiative).Error; err != nil {
		t.Fatalf("create initiative %q: %v", title, err)
	}
	return &initiative
}

// fakeQueue records enqueued tasks without processing them.
type fakeQueue struct {
	tasks []*AnalysisTask
}

func (q *fakeQueue) Enqueue(task *AnalysisTask) error {
	q.tasks = append(q.tasks, task)
	return nil
}

func (q *fakeQueue) IsAsync() bool { return false }
func (q *fakeQueue) Close() error  { return nil }

var _ TaskQueue = (*fakeQueue)(nil)

// errQueue always fails to enqueue.
type errQueue struct{}

func (errQueue) Enqueue(*AnalysisTask) error { return fmt.Errorf("queue unavailable") }
func (errQueue) IsAsync() bool               { return false }
func (errQueue) Close() error                { return nil }

package service

import (
	"errors"
	"testing"
	"time"

	"github.com/rohiniwari/timeflow-ai-time-tracking-app/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupActivityTestDB(t *testing.T) func() {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.Activity{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.DB = gdb

	return func() {
		sqlDB, err := db.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func TestActivityServiceCreateAndList(t *testing.T) {
	cleanup := setupActivityTestDB(t)
	defer cleanup()

	svc := NewActivityService(db.DB)

	created, err := svc.Create("u1", CreateActivityInput{
		Name:            "晨跑",
		Category:        "Exercise",
		DurationMinutes: 30,
		Date:            "2024-05-01",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if created.ID == 0 {
		t.Fatal("expected activity to have ID")
	}
	if created.OwnerID != "u1" {
		t.Fatalf("unexpected owner: %s", created.OwnerID)
	}
	if created.DurationMinutes < 1 {
		t.Fatalf("unexpected duration: %d", created.DurationMinutes)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be stamped")
	}

	activities, err := svc.ListByDate("u1", "2024-05-01")
	if err != nil {
		t.Fatalf("ListByDate returned error: %v", err)
	}
	if len(activities) != 1 {
		t.Fatalf("expected 1 activity, got %d", len(activities))
	}
}

func TestActivityServiceCreateValidation(t *testing.T) {
	cleanup := setupActivityTestDB(t)
	defer cleanup()

	svc := NewActivityService(db.DB)

	_, err := svc.Create("u1", CreateActivityInput{
		Name:            "",
		Category:        "Gaming",
		DurationMinutes: 0,
		Date:            "2024-13-99",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}

	codes := make(map[string]string, len(vErr.Fields))
	for _, f := range vErr.Fields {
		codes[f.Field] = f.Code
	}

	expected := map[string]string{
		"name":             CodeRequiredFieldMissing,
		"category":         CodeInvalidEnumValue,
		"duration_minutes": CodeOutOfRange,
		"date":             CodeInvalidFormat,
	}
	for field, code := range expected {
		if codes[field] != code {
			t.Fatalf("expected %s for field %s, got %s", code, field, codes[field])
		}
	}

	// 校验失败不应落库
	activities, err := svc.ListByDate("u1", "2024-13-99")
	if err != nil {
		t.Fatalf("ListByDate returned error: %v", err)
	}
	if len(activities) != 0 {
		t.Fatalf("expected nothing persisted, got %d records", len(activities))
	}
}

func TestActivityServiceListOrderAndEmpty(t *testing.T) {
	cleanup := setupActivityTestDB(t)
	defer cleanup()

	svc := NewActivityService(db.DB)

	names := []string{"阅读", "写代码", "散步"}
	for _, name := range names {
		if _, err := svc.Create("u1", CreateActivityInput{
			Name:            name,
			Category:        "Study",
			DurationMinutes: 20,
			Date:            "2024-05-02",
		}); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}

	activities, err := svc.ListByDate("u1", "2024-05-02")
	if err != nil {
		t.Fatalf("ListByDate returned error: %v", err)
	}
	if len(activities) != 3 {
		t.Fatalf("expected 3 activities, got %d", len(activities))
	}
	// 最新创建的排在最前
	if activities[0].Name != "散步" || activities[2].Name != "阅读" {
		t.Fatalf("unexpected order: %s, %s, %s", activities[0].Name, activities[1].Name, activities[2].Name)
	}

	empty, err := svc.ListByDate("u1", "2024-05-03")
	if err != nil {
		t.Fatalf("ListByDate returned error for empty day: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty slice, got %v", empty)
	}
}

func TestActivityServicePartialUpdate(t *testing.T) {
	cleanup := setupActivityTestDB(t)
	defer cleanup()

	svc := NewActivityService(db.DB)

	created, err := svc.Create("u1", CreateActivityInput{
		Name:            "午休",
		Category:        "Sleep",
		DurationMinutes: 45,
		Date:            "2024-05-01",
	})
	if err != nil {
		t.Fatalf("failed to create activity: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	category := "Entertainment"
	updated, err := svc.Update("u1", created.ID, UpdateActivityInput{Category: &category})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if updated.Category != "Entertainment" {
		t.Fatalf("expected category to update, got %s", updated.Category)
	}
	if updated.Name != "午休" || updated.DurationMinutes != 45 || updated.ActivityDate != "2024-05-01" {
		t.Fatal("expected omitted fields to stay unchanged")
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatal("expected updated_at to advance")
	}
}

func TestActivityServiceUpdateNoFieldsIsNoop(t *testing.T) {
	cleanup := setupActivityTestDB(t)
	defer cleanup()

	svc := NewActivityService(db.DB)

	created, err := svc.Create("u1", CreateActivityInput{
		Name:            "健身",
		Category:        "Exercise",
		DurationMinutes: 60,
		Date:            "2024-05-01",
	})
	if err != nil {
		t.Fatalf("failed to create activity: %v", err)
	}

	updated, err := svc.Update("u1", created.ID, UpdateActivityInput{})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if updated.Name != created.Name || !updated.UpdatedAt.Equal(created.UpdatedAt) {
		t.Fatal("expected no-op update to return the record unchanged")
	}
}

func TestActivityServiceUpdateInvalidField(t *testing.T) {
	cleanup := setupActivityTestDB(t)
	defer cleanup()

	svc := NewActivityService(db.DB)

	created, err := svc.Create("u1", CreateActivityInput{
		Name:            "学习",
		Category:        "Study",
		DurationMinutes: 30,
		Date:            "2024-05-01",
	})
	if err != nil {
		t.Fatalf("failed to create activity: %v", err)
	}

	duration := 0
	if _, err := svc.Update("u1", created.ID, UpdateActivityInput{DurationMinutes: &duration}); err == nil {
		t.Fatal("expected out_of_range error")
	}
}

func TestActivityServiceCrossOwnerIsolation(t *testing.T) {
	cleanup := setupActivityTestDB(t)
	defer cleanup()

	svc := NewActivityService(db.DB)

	created, err := svc.Create("owner-a", CreateActivityInput{
		Name:            "写日记",
		Category:        "Study",
		DurationMinutes: 15,
		Date:            "2024-05-01",
	})
	if err != nil {
		t.Fatalf("failed to create activity: %v", err)
	}

	activities, err := svc.ListByDate("owner-b", "2024-05-01")
	if err != nil {
		t.Fatalf("ListByDate returned error: %v", err)
	}
	if len(activities) != 0 {
		t.Fatal("owner B must not see owner A's records")
	}

	name := "偷改"
	if _, err := svc.Update("owner-b", created.ID, UpdateActivityInput{Name: &name}); !errors.Is(err, ErrActivityNotFound) {
		t.Fatalf("expected ErrActivityNotFound for cross-owner update, got %v", err)
	}

	deleted, err := svc.Delete("owner-b", created.ID)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if deleted {
		t.Fatal("owner B must not delete owner A's record")
	}

	// 原记录仍然存在
	if _, err := svc.Get("owner-a", created.ID); err != nil {
		t.Fatalf("owner A's record should survive: %v", err)
	}
}

func TestActivityServiceDelete(t *testing.T) {
	cleanup := setupActivityTestDB(t)
	defer cleanup()

	svc := NewActivityService(db.DB)

	created, err := svc.Create("u1", CreateActivityInput{
		Name:            "看电影",
		Category:        "Entertainment",
		DurationMinutes: 120,
		Date:            "2024-05-01",
	})
	if err != nil {
		t.Fatalf("failed to create activity: %v", err)
	}

	deleted, err := svc.Delete("u1", created.ID)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if !deleted {
		t.Fatal("expected delete to remove a row")
	}

	activities, err := svc.ListByDate("u1", "2024-05-01")
	if err != nil {
		t.Fatalf("ListByDate returned error: %v", err)
	}
	if len(activities) != 0 {
		t.Fatal("expected record to be gone after delete")
	}

	// 再删一次不报错，但报告没有删除任何行
	deleted, err = svc.Delete("u1", created.ID)
	if err != nil {
		t.Fatalf("second Delete returned error: %v", err)
	}
	if deleted {
		t.Fatal("expected second delete to affect nothing")
	}
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/fadiapc/2026-Dashboard-BKD/internal/dto"
	"github.com/fadiapc/2026-Dashboard-BKD/internal/model"
)

// ── 测试辅助 ──

func setupTestSemesterService() (SemesterService, *testRepos) {
	tr := newTestRepos()
	svc := NewSemesterService(tr.repo, zap.NewNop())
	return svc, tr
}

func addTestSemester(tr *testRepos, id string, isActive bool) *model.Semester {
	sem := &model.Semester{
		SemesterID: id,
		Date:       time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		IsActive:   isActive,
	}
	tr.semester.semesters[id] = sem
	return sem
}

// ── Create 测试 ──

func TestSemesterService_Create_Success(t *testing.T) {
	svc, _ := setupTestSemesterService()

	result, err := svc.Create(context.Background(), &dto.CreateSemesterRequest{
		Date: "2026-09-01",
	}, "admin-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Date != "2026-09-01" {
		t.Errorf("期望 Date=2026-09-01，实际=%s", result.Date)
	}
	if result.IsActive {
		t.Error("新创建学期不应默认激活")
	}
}

func TestSemesterService_Create_BadDateFormat(t *testing.T) {
	svc, _ := setupTestSemesterService()

	_, err := svc.Create(context.Background(), &dto.CreateSemesterRequest{
		Date: "invalid-date",
	}, "admin-001")
	if !errors.Is(err, ErrSemesterDateInvalid) {
		t.Errorf("期望 ErrSemesterDateInvalid，实际: %v", err)
	}
}

// ── GetByID 测试 ──

func TestSemesterService_GetByID_NotFound(t *testing.T) {
	svc, _ := setupTestSemesterService()

	_, err := svc.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrSemesterNotFound) {
		t.Errorf("期望 ErrSemesterNotFound，实际: %v", err)
	}
}

func TestSemesterService_GetByID_WithCourses(t *testing.T) {
	svc, tr := setupTestSemesterService()
	addTestSemester(tr, "sem-001", true)
	tr.course.courses["course-001"] = &model.Course{
		CourseID:   "course-001",
		SemesterID: "sem-001",
		Name:       "数据结构",
		Code:       "CS101",
	}

	result, err := svc.GetByID(context.Background(), "sem-001")
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	if len(result.Courses) != 1 {
		t.Fatalf("期望 1 门课程，实际=%d", len(result.Courses))
	}
	if result.Courses[0].Code != "CS101" {
		t.Errorf("期望 Code=CS101，实际=%s", result.Courses[0].Code)
	}
}

// ── Activate 测试 ──

// 激活 B 后只有 B 处于激活状态
func TestSemesterService_Activate_SwitchesActive(t *testing.T) {
	svc, tr := setupTestSemesterService()
	semA := addTestSemester(tr, "sem-A", true)
	semB := addTestSemester(tr, "sem-B", false)

	if err := svc.Activate(context.Background(), "sem-B", "admin-001"); err != nil {
		t.Fatalf("Activate 应成功: %v", err)
	}
	if semA.IsActive {
		t.Error("学期 A 应已取消激活")
	}
	if !semB.IsActive {
		t.Error("学期 B 应已激活")
	}
}

func TestSemesterService_Activate_NotFound(t *testing.T) {
	svc, _ := setupTestSemesterService()

	err := svc.Activate(context.Background(), "missing", "admin-001")
	if !errors.Is(err, ErrSemesterNotFound) {
		t.Errorf("期望 ErrSemesterNotFound，实际: %v", err)
	}
}

// ── Delete 测试 ──

// 激活中的学期无论是否有课程都不允许删除
func TestSemesterService_Delete_ActiveRejected(t *testing.T) {
	svc, tr := setupTestSemesterService()
	addTestSemester(tr, "sem-001", true)

	err := svc.Delete(context.Background(), "sem-001")
	if !errors.Is(err, ErrSemesterActiveDelete) {
		t.Errorf("期望 ErrSemesterActiveDelete，实际: %v", err)
	}
	if _, ok := tr.semester.semesters["sem-001"]; !ok {
		t.Error("学期不应被删除")
	}
}

func TestSemesterService_Delete_CascadesCourses(t *testing.T) {
	svc, tr := setupTestSemesterService()
	addTestSemester(tr, "sem-001", false)
	tr.course.courses["course-001"] = &model.Course{
		CourseID:   "course-001",
		SemesterID: "sem-001",
	}
	tr.course.courses["course-002"] = &model.Course{
		CourseID:   "course-002",
		SemesterID: "sem-other",
	}

	if err := svc.Delete(context.Background(), "sem-001"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, ok := tr.semester.semesters["sem-001"]; ok {
		t.Error("学期应已删除")
	}
	if _, ok := tr.course.courses["course-001"]; ok {
		t.Error("该学期的课程应已级联删除")
	}
	if _, ok := tr.course.courses["course-002"]; !ok {
		t.Error("其它学期的课程不应被删除")
	}
}

func TestSemesterService_Delete_NotFound(t *testing.T) {
	svc, _ := setupTestSemesterService()

	err := svc.Delete(context.Background(), "missing")
	if !errors.Is(err, ErrSemesterNotFound) {
		t.Errorf("期望 ErrSemesterNotFound，实际: %v", err)
	}
}

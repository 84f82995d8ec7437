package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/fadiapc/2026-Dashboard-BKD/internal/model"
)

func setupTestSeedService() (SeedService, *testRepos) {
	tr := newTestRepos()
	svc := NewSeedService(tr.repo, zap.NewNop())
	return svc, tr
}

func TestSeedService_Seed_CreatesDemoData(t *testing.T) {
	svc, tr := setupTestSeedService()

	result, err := svc.Seed(context.Background(), "admin-001")
	if err != nil {
		t.Fatalf("Seed 应成功: %v", err)
	}
	if result.Semesters != 2 {
		t.Errorf("期望创建 2 个学期，实际=%d", result.Semesters)
	}
	if result.Users != seedUserCount {
		t.Errorf("期望创建 %d 个用户，实际=%d", seedUserCount, result.Users)
	}
	if result.Courses != 2*seedCoursesPerTerm {
		t.Errorf("期望创建 %d 门课程，实际=%d", 2*seedCoursesPerTerm, result.Courses)
	}

	// 恰好一个激活学期
	activeCount := 0
	for _, sem := range tr.semester.semesters {
		if sem.IsActive {
			activeCount++
		}
	}
	if activeCount != 1 {
		t.Errorf("期望恰好 1 个激活学期，实际=%d", activeCount)
	}

	// 每个班级固定 14 个排课位
	for _, course := range tr.course.courses {
		if len(course.CourseTypes) == 0 {
			t.Error("课程应至少有一个类型")
		}
		for _, ct := range course.CourseTypes {
			for _, cc := range ct.CourseClasses {
				if len(cc.Schedules) != model.MeetingsPerTerm {
					t.Errorf("期望每班 %d 个排课位，实际=%d", model.MeetingsPerTerm, len(cc.Schedules))
				}
			}
		}
	}
}

// 重复执行时已存在的缩写被复用而非重复创建
func TestSeedService_Seed_ReusesExistingUsers(t *testing.T) {
	svc, tr := setupTestSeedService()

	first, err := svc.Seed(context.Background(), "admin-001")
	if err != nil {
		t.Fatalf("第一次 Seed 应成功: %v", err)
	}
	if first.Users != seedUserCount {
		t.Fatalf("期望创建 %d 个用户，实际=%d", seedUserCount, first.Users)
	}

	second, err := svc.Seed(context.Background(), "admin-001")
	if err != nil {
		t.Fatalf("第二次 Seed 应成功: %v", err)
	}
	if second.Users != 0 {
		t.Errorf("重复执行不应再创建用户，实际=%d", second.Users)
	}
	if len(tr.user.users) != seedUserCount {
		t.Errorf("用户总数应保持 %d，实际=%d", seedUserCount, len(tr.user.users))
	}
}

func TestSeedInitial_SlidingWindow(t *testing.T) {
	cases := map[int]string{
		0:  "ABC",
		1:  "BCD",
		23: "XYZ",
		24: "YZA",
		25: "ZAB",
	}
	for i, want := range cases {
		if got := seedInitial(i); got != want {
			t.Errorf("seedInitial(%d): 期望 %s，实际=%s", i, want, got)
		}
	}
}

func TestExportService_ExportWorkloads(t *testing.T) {
	tr := newTestRepos()
	svc := NewExportService(tr.repo, zap.NewNop())

	addTestSemester(tr, "sem-001", true)
	addTestUser(t, tr, "ABC", "password", false, true)
	addTaughtCourse(tr, "course-001", "sem-001", 2, 5, "user-ABC")

	buf, filename, err := svc.ExportWorkloads(context.Background(), "sem-001")
	if err != nil {
		t.Fatalf("ExportWorkloads 应成功: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("导出内容不应为空")
	}
	if filename != "bkd_2026-02-01.xlsx" {
		t.Errorf("期望文件名 bkd_2026-02-01.xlsx，实际=%s", filename)
	}
}

func TestExportService_ExportWorkloads_SemesterNotFound(t *testing.T) {
	tr := newTestRepos()
	svc := NewExportService(tr.repo, zap.NewNop())

	_, _, err := svc.ExportWorkloads(context.Background(), "missing")
	if !errors.Is(err, ErrSemesterNotFound) {
		t.Errorf("期望 ErrSemesterNotFound，实际: %v", err)
	}
}

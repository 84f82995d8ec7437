package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/fadiapc/2026-Dashboard-BKD/internal/dto"
	"github.com/fadiapc/2026-Dashboard-BKD/internal/model"
)

// ── 测试辅助 ──

func setupTestCourseService() (CourseService, *testRepos) {
	tr := newTestRepos()
	svc := NewCourseService(tr.repo, zap.NewNop())
	return svc, tr
}

// ── Create 测试 ──

// 每个类型按 class_count 生成班级，每个班级固定 14 个排课位
func TestCourseService_Create_BuildsFullHierarchy(t *testing.T) {
	svc, tr := setupTestCourseService()
	addTestSemester(tr, "sem-001", true)

	result, err := svc.Create(context.Background(), &dto.CreateCourseRequest{
		SemesterID:     "sem-001",
		Name:           "数据结构",
		Code:           "CS101",
		SemesterNumber: 3,
		CourseTypes: []dto.CreateCourseTypeRequest{
			{Kind: model.CourseKindLecture, Credit: 2, ClassCount: 3},
			{Kind: model.CourseKindPracticum, Credit: 1, ClassCount: 1},
		},
	}, "admin-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if len(result.CourseTypes) != 2 {
		t.Fatalf("期望 2 个课程类型，实际=%d", len(result.CourseTypes))
	}
	if len(result.CourseTypes[0].CourseClasses) != 3 {
		t.Errorf("期望理论课 3 个班级，实际=%d", len(result.CourseTypes[0].CourseClasses))
	}
	if len(result.CourseTypes[1].CourseClasses) != 1 {
		t.Errorf("期望实践课 1 个班级，实际=%d", len(result.CourseTypes[1].CourseClasses))
	}

	stored := tr.course.courses[result.CourseID]
	for _, ct := range stored.CourseTypes {
		for _, cc := range ct.CourseClasses {
			if len(cc.Schedules) != model.MeetingsPerTerm {
				t.Errorf("期望每班 %d 个排课位，实际=%d", model.MeetingsPerTerm, len(cc.Schedules))
			}
			for i, sched := range cc.Schedules {
				if sched.MeetNumber != i+1 {
					t.Errorf("期望 MeetNumber=%d，实际=%d", i+1, sched.MeetNumber)
				}
				if sched.UserID != nil {
					t.Error("新建排课位不应有认领人")
				}
			}
		}
	}
	// 班级序号从 1 开始连续编号
	for _, ct := range stored.CourseTypes {
		for i, cc := range ct.CourseClasses {
			if cc.Number != i+1 {
				t.Errorf("期望班级序号=%d，实际=%d", i+1, cc.Number)
			}
		}
	}
}

func TestCourseService_Create_SemesterNotFound(t *testing.T) {
	svc, _ := setupTestCourseService()

	_, err := svc.Create(context.Background(), &dto.CreateCourseRequest{
		SemesterID:     "missing",
		Name:           "数据结构",
		Code:           "CS101",
		SemesterNumber: 3,
		CourseTypes:    []dto.CreateCourseTypeRequest{{Kind: 1, Credit: 2, ClassCount: 1}},
	}, "admin-001")
	if !errors.Is(err, ErrSemesterNotFound) {
		t.Errorf("期望 ErrSemesterNotFound，实际: %v", err)
	}
}

// 冲突判定是字面上的合取：代码在任意学期已存在 且 目标学期已有课程
func TestCourseService_Create_ConflictRequiresBothConditions(t *testing.T) {
	svc, tr := setupTestCourseService()
	addTestSemester(tr, "sem-001", false)
	addTestSemester(tr, "sem-002", true)

	// 课程代码已存在于 sem-001
	tr.course.courses["course-001"] = &model.Course{
		CourseID:   "course-001",
		SemesterID: "sem-001",
		Code:       "CS101",
	}

	// 代码重复但目标学期 sem-002 没有任何课程：不判冲突
	first, err := svc.Create(context.Background(), &dto.CreateCourseRequest{
		SemesterID:     "sem-002",
		Name:           "数据结构",
		Code:           "CS101",
		SemesterNumber: 3,
		CourseTypes:    []dto.CreateCourseTypeRequest{{Kind: 1, Credit: 2, ClassCount: 1}},
	}, "admin-001")
	if err != nil {
		t.Fatalf("目标学期无课程时不应判冲突: %v", err)
	}
	if first == nil {
		t.Fatal("应返回创建结果")
	}

	// 现在 sem-002 已有课程，重复代码再次创建即判冲突
	_, err = svc.Create(context.Background(), &dto.CreateCourseRequest{
		SemesterID:     "sem-002",
		Name:           "数据结构2",
		Code:           "CS101",
		SemesterNumber: 3,
		CourseTypes:    []dto.CreateCourseTypeRequest{{Kind: 1, Credit: 2, ClassCount: 1}},
	}, "admin-001")
	if !errors.Is(err, ErrCourseConflict) {
		t.Errorf("期望 ErrCourseConflict，实际: %v", err)
	}

	// 全新代码在已有课程的学期中创建：不判冲突
	_, err = svc.Create(context.Background(), &dto.CreateCourseRequest{
		SemesterID:     "sem-002",
		Name:           "算法设计",
		Code:           "CS201",
		SemesterNumber: 4,
		CourseTypes:    []dto.CreateCourseTypeRequest{{Kind: 1, Credit: 3, ClassCount: 1}},
	}, "admin-001")
	if err != nil {
		t.Fatalf("新代码不应判冲突: %v", err)
	}
}

// ── Delete 测试 ──

func TestCourseService_Delete_Success(t *testing.T) {
	svc, tr := setupTestCourseService()
	tr.course.courses["course-001"] = &model.Course{
		CourseID:   "course-001",
		SemesterID: "sem-001",
	}

	if err := svc.Delete(context.Background(), "course-001"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, ok := tr.course.courses["course-001"]; ok {
		t.Error("课程应已删除")
	}
}

func TestCourseService_Delete_NotFound(t *testing.T) {
	svc, _ := setupTestCourseService()

	err := svc.Delete(context.Background(), "missing")
	if !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound，实际: %v", err)
	}
}

// ── GetClass 测试 ──

func TestCourseService_GetClass_Success(t *testing.T) {
	svc, tr := setupTestCourseService()
	uid := "user-ABC"
	tr.course.courses["course-001"] = &model.Course{
		CourseID:       "course-001",
		SemesterID:     "sem-001",
		Name:           "数据结构",
		Code:           "CS101",
		SemesterNumber: 3,
		CourseTypes: []model.CourseType{
			{
				CourseTypeID: "ct-001",
				Kind:         model.CourseKindLecture,
				Credit:       2,
				CourseClasses: []model.CourseClass{
					{
						CourseClassID: "cc-001",
						Number:        1,
						Schedules: []model.Schedule{
							{ScheduleID: "sch-001", MeetNumber: 1, UserID: &uid, User: &model.User{UserID: uid, Initial: "ABC"}},
							{ScheduleID: "sch-002", MeetNumber: 2},
						},
					},
				},
			},
		},
	}

	result, err := svc.GetClass(context.Background(), "cc-001")
	if err != nil {
		t.Fatalf("GetClass 应成功: %v", err)
	}
	if result.Course.Code != "CS101" {
		t.Errorf("期望课程代码=CS101，实际=%s", result.Course.Code)
	}
	if result.Credit != 2 {
		t.Errorf("期望 Credit=2，实际=%d", result.Credit)
	}
	if len(result.Schedules) != 2 {
		t.Fatalf("期望 2 个排课位，实际=%d", len(result.Schedules))
	}
	if result.Schedules[0].UserInitial == nil || *result.Schedules[0].UserInitial != "ABC" {
		t.Error("已认领排课位应带认领人缩写")
	}
	if result.Schedules[1].UserID != nil {
		t.Error("未认领排课位不应带认领人")
	}
}

func TestCourseService_GetClass_NotFound(t *testing.T) {
	svc, _ := setupTestCourseService()

	_, err := svc.GetClass(context.Background(), "missing")
	if !errors.Is(err, ErrClassNotFound) {
		t.Errorf("期望 ErrClassNotFound，实际: %v", err)
	}
}

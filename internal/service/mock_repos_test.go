package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/fadiapc/2026-Dashboard-BKD/internal/model"
	"github.com/fadiapc/2026-Dashboard-BKD/internal/repository"
	pkgerrors "github.com/fadiapc/2026-Dashboard-BKD/pkg/errors"
)

// ── 测试辅助 ──

type testRepos struct {
	user     *mockUserRepo
	semester *mockSemesterRepo
	course   *mockCourseRepo
	schedule *mockScheduleRepo
	repo     *repository.Repository
}

func newTestRepos() *testRepos {
	tr := &testRepos{
		user:     newMockUserRepo(),
		semester: newMockSemesterRepo(),
		course:   newMockCourseRepo(),
		schedule: newMockScheduleRepo(),
	}
	tr.repo = &repository.Repository{
		User:     tr.user,
		Semester: tr.semester,
		Course:   tr.course,
		Schedule: tr.schedule,
	}
	return tr
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Initial
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByInitial(_ context.Context, initial string) (*model.User, error) {
	for _, u := range m.users {
		if u.Initial == initial {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ExistsByInitial(_ context.Context, initial string) (bool, error) {
	for _, u := range m.users {
		if u.Initial == initial {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) CountActiveAdmins(_ context.Context) (int64, error) {
	var count int64
	for _, u := range m.users {
		if u.IsAdmin && u.IsActive {
			count++
		}
	}
	return count, nil
}

// ── Mock SemesterRepository ──

type mockSemesterRepo struct {
	semesters map[string]*model.Semester
	// taughtByUser: userID → 该用户任课的学期ID列表（ListTaughtByUser 用）
	taughtByUser map[string][]string
}

func newMockSemesterRepo() *mockSemesterRepo {
	return &mockSemesterRepo{
		semesters:    make(map[string]*model.Semester),
		taughtByUser: make(map[string][]string),
	}
}

func (m *mockSemesterRepo) Create(_ context.Context, semester *model.Semester) error {
	if semester.SemesterID == "" {
		semester.SemesterID = fmt.Sprintf("sem-%03d", len(m.semesters)+1)
	}
	m.semesters[semester.SemesterID] = semester
	return nil
}

func (m *mockSemesterRepo) GetByID(_ context.Context, id string) (*model.Semester, error) {
	if s, ok := m.semesters[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSemesterRepo) GetActive(_ context.Context) (*model.Semester, error) {
	for _, s := range m.semesters {
		if s.IsActive {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSemesterRepo) List(_ context.Context) ([]model.Semester, error) {
	var result []model.Semester
	for _, s := range m.semesters {
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockSemesterRepo) Update(_ context.Context, semester *model.Semester) error {
	m.semesters[semester.SemesterID] = semester
	return nil
}

func (m *mockSemesterRepo) Delete(_ context.Context, id string) error {
	delete(m.semesters, id)
	return nil
}

func (m *mockSemesterRepo) ClearActive(_ context.Context) error {
	for _, s := range m.semesters {
		s.IsActive = false
	}
	return nil
}

func (m *mockSemesterRepo) ListTaughtByUser(_ context.Context, userID string) ([]model.Semester, error) {
	var result []model.Semester
	for _, id := range m.taughtByUser[userID] {
		if s, ok := m.semesters[id]; ok {
			result = append(result, *s)
		}
	}
	return result, nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses map[string]*model.Course
	seq     int
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[string]*model.Course)}
}

func (m *mockCourseRepo) CreateGraph(_ context.Context, course *model.Course) error {
	m.seq++
	if course.CourseID == "" {
		course.CourseID = fmt.Sprintf("course-%03d", m.seq)
	}
	for ti := range course.CourseTypes {
		ct := &course.CourseTypes[ti]
		ct.CourseTypeID = fmt.Sprintf("%s-ct-%d", course.CourseID, ti+1)
		ct.CourseID = course.CourseID
		for cci := range ct.CourseClasses {
			cc := &ct.CourseClasses[cci]
			cc.CourseClassID = fmt.Sprintf("%s-cc-%d", ct.CourseTypeID, cci+1)
			cc.CourseTypeID = ct.CourseTypeID
			for si := range cc.Schedules {
				sched := &cc.Schedules[si]
				sched.ScheduleID = fmt.Sprintf("%s-sch-%d", cc.CourseClassID, si+1)
				sched.CourseClassID = cc.CourseClassID
			}
		}
	}
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) ListBySemester(_ context.Context, semesterID string) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		if c.SemesterID == semesterID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCourseRepo) ListByActiveSemester(_ context.Context) ([]model.Course, error) {
	// 测试中由 mockSemesterRepo 决定激活学期，这里直接返回全部课程
	var result []model.Course
	for _, c := range m.courses {
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockCourseRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	for _, c := range m.courses {
		if c.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockCourseRepo) SemesterHasCourses(_ context.Context, semesterID string) (bool, error) {
	for _, c := range m.courses {
		if c.SemesterID == semesterID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockCourseRepo) DeleteCascade(_ context.Context, courseID string) error {
	delete(m.courses, courseID)
	return nil
}

func (m *mockCourseRepo) DeleteBySemesterCascade(_ context.Context, semesterID string) error {
	for id, c := range m.courses {
		if c.SemesterID == semesterID {
			delete(m.courses, id)
		}
	}
	return nil
}

func (m *mockCourseRepo) GetClassByID(_ context.Context, classID string) (*model.CourseClass, error) {
	for _, c := range m.courses {
		for ti := range c.CourseTypes {
			ct := &c.CourseTypes[ti]
			for cci := range ct.CourseClasses {
				cc := &ct.CourseClasses[cci]
				if cc.CourseClassID == classID {
					// 回填归属关系，与 GORM Preload 行为一致
					result := *cc
					ctCopy := *ct
					ctCopy.Course = c
					result.CourseType = &ctCopy
					return &result, nil
				}
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) ListTaughtByUser(_ context.Context, userID, semesterID string) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		if c.SemesterID != semesterID {
			continue
		}
		taught := false
		for ti := range c.CourseTypes {
			for cci := range c.CourseTypes[ti].CourseClasses {
				for _, sched := range c.CourseTypes[ti].CourseClasses[cci].Schedules {
					if sched.UserID != nil && *sched.UserID == userID {
						taught = true
					}
				}
			}
		}
		if taught {
			result = append(result, *c)
		}
	}
	return result, nil
}

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct {
	schedules map[string]*model.Schedule
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{schedules: make(map[string]*model.Schedule)}
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id string) (*model.Schedule, error) {
	if s, ok := m.schedules[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) Claim(_ context.Context, scheduleID, userID string) error {
	s, ok := m.schedules[scheduleID]
	if !ok {
		return pkgerrors.ErrScheduleFilled
	}
	if s.UserID != nil {
		return pkgerrors.ErrScheduleFilled
	}
	s.UserID = &userID
	return nil
}

func (m *mockScheduleRepo) Release(_ context.Context, scheduleID string) error {
	if s, ok := m.schedules[scheduleID]; ok {
		s.UserID = nil
	}
	return nil
}

func (m *mockScheduleRepo) ReleaseByUser(_ context.Context, userID string) error {
	for _, s := range m.schedules {
		if s.UserID != nil && *s.UserID == userID {
			s.UserID = nil
		}
	}
	return nil
}

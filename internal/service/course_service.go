package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fadiapc/2026-Dashboard-BKD/internal/dto"
	"github.com/fadiapc/2026-Dashboard-BKD/internal/model"
	"github.com/fadiapc/2026-Dashboard-BKD/internal/repository"
)

// ── 课程模块业务错误 ──

var (
	ErrCourseNotFound = errors.New("课程不存在")
	ErrCourseConflict = errors.New("课程代码已存在且该学期已有课程")
	ErrClassNotFound  = errors.New("班级不存在")
)

// CourseService 课程业务接口
type CourseService interface {
	Create(ctx context.Context, req *dto.CreateCourseRequest, callerID string) (*dto.CourseResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CourseResponse, error)
	ListActive(ctx context.Context) ([]dto.CourseResponse, error)
	Delete(ctx context.Context, id string) error
	GetClass(ctx context.Context, classID string) (*dto.ClassDetailResponse, error)
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *courseService) Create(ctx context.Context, req *dto.CreateCourseRequest, callerID string) (*dto.CourseResponse, error) {
	// 1. 目标学期必须存在
	if _, err := s.repo.Semester.GetByID(ctx, req.SemesterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSemesterNotFound
		}
		s.logger.Error("查询学期失败", zap.Error(err))
		return nil, err
	}

	// 2. 冲突检查：课程代码在任意学期已存在，且目标学期已有课程
	codeExists, err := s.repo.Course.ExistsByCode(ctx, req.Code)
	if err != nil {
		s.logger.Error("查询课程代码失败", zap.Error(err))
		return nil, err
	}
	hasCourses, err := s.repo.Course.SemesterHasCourses(ctx, req.SemesterID)
	if err != nil {
		s.logger.Error("查询学期课程失败", zap.Error(err))
		return nil, err
	}
	if codeExists && hasCourses {
		return nil, ErrCourseConflict
	}

	// 3. 构建完整层级：类型 → class_count 个班级（序号 1..n）→ 每班 14 个排课位
	course := &model.Course{
		SemesterID:     req.SemesterID,
		Name:           req.Name,
		Code:           req.Code,
		SemesterNumber: req.SemesterNumber,
	}
	course.CreatedBy = &callerID
	course.UpdatedBy = &callerID

	for _, ctReq := range req.CourseTypes {
		ct := model.CourseType{
			Kind:   ctReq.Kind,
			Credit: ctReq.Credit,
		}
		for n := 1; n <= ctReq.ClassCount; n++ {
			cc := model.CourseClass{Number: n}
			for m := 1; m <= model.MeetingsPerTerm; m++ {
				cc.Schedules = append(cc.Schedules, model.Schedule{MeetNumber: m})
			}
			ct.CourseClasses = append(ct.CourseClasses, cc)
		}
		course.CourseTypes = append(course.CourseTypes, ct)
	}

	// 4. 嵌套创建，GORM 内部以单个事务写入整棵层级
	if err := s.repo.Course.CreateGraph(ctx, course); err != nil {
		s.logger.Error("创建课程失败", zap.Error(err))
		return nil, err
	}

	return toCourseResponse(course), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *courseService) GetByID(ctx context.Context, id string) (*dto.CourseResponse, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toCourseResponse(course), nil
}

// ────────────────────── ListActive ──────────────────────

// ListActive 返回当前激活学期下的全部课程，无激活学期时返回空列表
func (s *courseService) ListActive(ctx context.Context) ([]dto.CourseResponse, error) {
	courses, err := s.repo.Course.ListByActiveSemester(ctx)
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		result = append(result, *toCourseResponse(&courses[i]))
	}

	return result, nil
}

// ────────────────────── Delete ──────────────────────

func (s *courseService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Course.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", id), zap.Error(err))
		return err
	}

	// 事务内自底向上级联删除
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	if err := txRepo.Course.DeleteCascade(ctx, id); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("级联删除课程失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return err
		}
	}

	return nil
}

// ────────────────────── GetClass ──────────────────────

func (s *courseService) GetClass(ctx context.Context, classID string) (*dto.ClassDetailResponse, error) {
	class, err := s.repo.Course.GetClassByID(ctx, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		s.logger.Error("查询班级失败", zap.String("id", classID), zap.Error(err))
		return nil, err
	}

	detail := &dto.ClassDetailResponse{
		CourseClassID: class.CourseClassID,
		Number:        class.Number,
		Schedules:     make([]dto.ScheduleResponse, 0, len(class.Schedules)),
	}
	if class.CourseType != nil {
		detail.Kind = class.CourseType.Kind
		detail.Credit = class.CourseType.Credit
		if class.CourseType.Course != nil {
			c := class.CourseType.Course
			detail.Course = dto.CourseBrief{
				CourseID:       c.CourseID,
				Name:           c.Name,
				Code:           c.Code,
				SemesterNumber: c.SemesterNumber,
			}
		}
	}
	for i := range class.Schedules {
		sched := &class.Schedules[i]
		resp := dto.ScheduleResponse{
			ScheduleID: sched.ScheduleID,
			MeetNumber: sched.MeetNumber,
			UserID:     sched.UserID,
		}
		if sched.User != nil {
			initial := sched.User.Initial
			resp.UserInitial = &initial
		}
		detail.Schedules = append(detail.Schedules, resp)
	}

	return detail, nil
}

// ── 内部辅助方法 ──

func toCourseResponse(course *model.Course) *dto.CourseResponse {
	resp := &dto.CourseResponse{
		CourseID:       course.CourseID,
		SemesterID:     course.SemesterID,
		Name:           course.Name,
		Code:           course.Code,
		SemesterNumber: course.SemesterNumber,
	}
	for ti := range course.CourseTypes {
		ct := &course.CourseTypes[ti]
		ctResp := dto.CourseTypeResponse{
			CourseTypeID: ct.CourseTypeID,
			Kind:         ct.Kind,
			Credit:       ct.Credit,
		}
		for cci := range ct.CourseClasses {
			cc := &ct.CourseClasses[cci]
			ctResp.CourseClasses = append(ctResp.CourseClasses, dto.CourseClassResponse{
				CourseClassID: cc.CourseClassID,
				Number:        cc.Number,
			})
		}
		resp.CourseTypes = append(resp.CourseTypes, ctResp)
	}
	return resp
}

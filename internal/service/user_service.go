package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fadiapc/2026-Dashboard-BKD/internal/dto"
	"github.com/fadiapc/2026-Dashboard-BKD/internal/model"
	"github.com/fadiapc/2026-Dashboard-BKD/internal/repository"
)

// ── 用户模块业务错误 ──

var (
	ErrUserNotFound        = errors.New("用户不存在")
	ErrInitialTaken        = errors.New("缩写已被占用")
	ErrSuperAdminProtected = errors.New("超级管理员不允许修改或删除")
)

// UserService 用户业务接口
// 工作量指数（BKD）每次请求即时计算，不做缓存
type UserService interface {
	List(ctx context.Context) ([]dto.UserResponse, error)
	ListBySemester(ctx context.Context, semesterID string) ([]dto.UserResponse, error)
	GetDetail(ctx context.Context, userID string) (*dto.UserDetailResponse, error)
	GetSemesters(ctx context.Context, userID string) ([]dto.UserSemesterResponse, error)
	Create(ctx context.Context, req *dto.CreateUserRequest, callerID string) (*dto.UserResponse, error)
	Update(ctx context.Context, userID string, req *dto.UpdateUserRequest, callerID string) (*dto.UserResponse, error)
	Delete(ctx context.Context, userID string) error
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

// List 返回全部用户，附带各自在激活学期的工作量指数
func (s *userService) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.User.List(ctx)
	if err != nil {
		s.logger.Error("列出用户失败", zap.Error(err))
		return nil, err
	}

	active, err := s.activeSemesterID(ctx)
	if err != nil {
		return nil, err
	}

	return s.usersWithWorkload(ctx, users, active)
}

// ────────────────────── ListBySemester ──────────────────────

func (s *userService) ListBySemester(ctx context.Context, semesterID string) ([]dto.UserResponse, error) {
	if _, err := s.repo.Semester.GetByID(ctx, semesterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSemesterNotFound
		}
		s.logger.Error("查询学期失败", zap.Error(err))
		return nil, err
	}

	users, err := s.repo.User.List(ctx)
	if err != nil {
		s.logger.Error("列出用户失败", zap.Error(err))
		return nil, err
	}

	return s.usersWithWorkload(ctx, users, semesterID)
}

// ────────────────────── GetDetail ──────────────────────

// GetDetail 返回用户信息 + 激活学期工作量 + 任课明细（仅含该用户认领的排课位）
func (s *userService) GetDetail(ctx context.Context, userID string) (*dto.UserDetailResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", userID), zap.Error(err))
		return nil, err
	}

	detail := &dto.UserDetailResponse{
		UserResponse: *toUserResponse(user, 0),
		Courses:      []dto.TaughtCourseResponse{},
	}

	active, err := s.activeSemesterID(ctx)
	if err != nil {
		return nil, err
	}
	if active == "" {
		return detail, nil
	}

	courses, err := s.repo.Course.ListTaughtByUser(ctx, userID, active)
	if err != nil {
		s.logger.Error("查询任课课程失败", zap.String("id", userID), zap.Error(err))
		return nil, err
	}

	detail.BKD = computeWorkload(courses, userID)
	detail.Courses = buildTaughtCourses(courses, userID, user.Initial)

	return detail, nil
}

// ────────────────────── GetSemesters ──────────────────────

// GetSemesters 返回用户任课过的学期列表，每项附带该学期的工作量与课程明细
func (s *userService) GetSemesters(ctx context.Context, userID string) ([]dto.UserSemesterResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", userID), zap.Error(err))
		return nil, err
	}

	semesters, err := s.repo.Semester.ListTaughtByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询任课学期失败", zap.String("id", userID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.UserSemesterResponse, 0, len(semesters))
	for i := range semesters {
		sem := &semesters[i]
		courses, err := s.repo.Course.ListTaughtByUser(ctx, userID, sem.SemesterID)
		if err != nil {
			s.logger.Error("查询任课课程失败", zap.String("semester_id", sem.SemesterID), zap.Error(err))
			return nil, err
		}
		result = append(result, dto.UserSemesterResponse{
			SemesterID: sem.SemesterID,
			Date:       sem.Date.Format("2006-01-02"),
			IsActive:   sem.IsActive,
			BKD:        computeWorkload(courses, userID),
			Courses:    buildTaughtCourses(courses, userID, user.Initial),
		})
	}

	return result, nil
}

// ────────────────────── Create ──────────────────────

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest, callerID string) (*dto.UserResponse, error) {
	taken, err := s.repo.User.ExistsByInitial(ctx, req.Initial)
	if err != nil {
		s.logger.Error("查询缩写失败", zap.Error(err))
		return nil, err
	}
	if taken {
		return nil, ErrInitialTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码加密失败", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Name:         req.Name,
		Initial:      req.Initial,
		PasswordHash: string(hash),
		IsAdmin:      req.IsAdmin,
		IsActive:     true,
		Email:        req.Email,
	}
	user.CreatedBy = &callerID
	user.UpdatedBy = &callerID

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	return toUserResponse(user, 0), nil
}

// ────────────────────── Update ──────────────────────

func (s *userService) Update(ctx context.Context, userID string, req *dto.UpdateUserRequest, callerID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", userID), zap.Error(err))
		return nil, err
	}

	if user.Initial == model.SuperAdminInitial {
		return nil, ErrSuperAdminProtected
	}

	if req.Initial != nil && *req.Initial != user.Initial {
		taken, err := s.repo.User.ExistsByInitial(ctx, *req.Initial)
		if err != nil {
			s.logger.Error("查询缩写失败", zap.Error(err))
			return nil, err
		}
		if taken {
			return nil, ErrInitialTaken
		}
		user.Initial = *req.Initial
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error("密码加密失败", zap.Error(err))
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Email != nil {
		user.Email = req.Email
	}
	user.UpdatedBy = &callerID

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新用户失败", zap.String("id", userID), zap.Error(err))
		return nil, err
	}

	return toUserResponse(user, 0), nil
}

// ────────────────────── Delete ──────────────────────

// Delete 删除用户，事务内先释放其认领的全部排课位再删除记录
func (s *userService) Delete(ctx context.Context, userID string) error {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", userID), zap.Error(err))
		return err
	}

	if user.Initial == model.SuperAdminInitial {
		return ErrSuperAdminProtected
	}

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

	if err := txRepo.Schedule.ReleaseByUser(ctx, userID); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("释放用户排课位失败", zap.String("id", userID), zap.Error(err))
		return err
	}
	if err := txRepo.User.Delete(ctx, userID); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("删除用户失败", zap.String("id", userID), zap.Error(err))
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

// ── 内部辅助方法 ──

// activeSemesterID 返回激活学期 ID，不存在时返回空串
func (s *userService) activeSemesterID(ctx context.Context) (string, error) {
	active, err := s.repo.Semester.GetActive(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		s.logger.Error("查询激活学期失败", zap.Error(err))
		return "", err
	}
	return active.SemesterID, nil
}

// usersWithWorkload 为用户列表逐个计算指定学期的工作量，学期为空时全部记 0
func (s *userService) usersWithWorkload(ctx context.Context, users []model.User, semesterID string) ([]dto.UserResponse, error) {
	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		user := &users[i]
		bkd := 0.0
		if semesterID != "" {
			courses, err := s.repo.Course.ListTaughtByUser(ctx, user.UserID, semesterID)
			if err != nil {
				s.logger.Error("查询任课课程失败", zap.String("user_id", user.UserID), zap.Error(err))
				return nil, err
			}
			bkd = computeWorkload(courses, user.UserID)
		}
		result = append(result, *toUserResponse(user, bkd))
	}
	return result, nil
}

func toUserResponse(user *model.User, bkd float64) *dto.UserResponse {
	return &dto.UserResponse{
		UserID:   user.UserID,
		Name:     user.Name,
		Initial:  user.Initial,
		Role:     user.Role(),
		IsActive: user.IsActive,
		Email:    user.Email,
		BKD:      bkd,
	}
}

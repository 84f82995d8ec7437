package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/fadiapc/2026-Dashboard-BKD/internal/model"
)

// SemesterRepository 学期数据访问接口
type SemesterRepository interface {
	Create(ctx context.Context, semester *model.Semester) error
	GetByID(ctx context.Context, id string) (*model.Semester, error)
	GetActive(ctx context.Context) (*model.Semester, error)
	List(ctx context.Context) ([]model.Semester, error)
	Update(ctx context.Context, semester *model.Semester) error
	Delete(ctx context.Context, id string) error
	ClearActive(ctx context.Context) error
	ListTaughtByUser(ctx context.Context, userID string) ([]model.Semester, error)
}

// semesterRepo SemesterRepository 的 GORM 实现
type semesterRepo struct {
	db *gorm.DB
}

// NewSemesterRepo 创建 SemesterRepository 实例
func NewSemesterRepo(db *gorm.DB) SemesterRepository {
	return &semesterRepo{db: db}
}

func (r *semesterRepo) Create(ctx context.Context, semester *model.Semester) error {
	return r.db.WithContext(ctx).Create(semester).Error
}

func (r *semesterRepo) GetByID(ctx context.Context, id string) (*model.Semester, error) {
	var semester model.Semester
	err := r.db.WithContext(ctx).
		Where("semester_id = ?", id).
		First(&semester).Error
	if err != nil {
		return nil, err
	}
	return &semester, nil
}

// GetActive 查询当前激活学期，不存在时返回 gorm.ErrRecordNotFound
func (r *semesterRepo) GetActive(ctx context.Context) (*model.Semester, error) {
	var semester model.Semester
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		First(&semester).Error
	if err != nil {
		return nil, err
	}
	return &semester, nil
}

func (r *semesterRepo) List(ctx context.Context) ([]model.Semester, error) {
	var semesters []model.Semester
	err := r.db.WithContext(ctx).
		Order("date DESC").
		Find(&semesters).Error
	return semesters, err
}

func (r *semesterRepo) Update(ctx context.Context, semester *model.Semester) error {
	return r.db.WithContext(ctx).Save(semester).Error
}

func (r *semesterRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("semester_id = ?", id).
		Delete(&model.Semester{}).Error
}

// ClearActive 取消所有学期的激活标记（切换激活学期的第一步）
func (r *semesterRepo) ClearActive(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&model.Semester{}).
		Where("is_active = ?", true).
		Update("is_active", false).Error
}

// ListTaughtByUser 查询用户至少认领了一个排课位的学期，按日期倒序
func (r *semesterRepo) ListTaughtByUser(ctx context.Context, userID string) ([]model.Semester, error) {
	var semesters []model.Semester
	err := r.db.WithContext(ctx).
		Where(`EXISTS (
			SELECT 1 FROM schedules s
			JOIN course_classes cc ON s.course_class_id = cc.course_class_id
			JOIN course_types ct ON cc.course_type_id = ct.course_type_id
			JOIN courses c ON ct.course_id = c.course_id
			WHERE c.semester_id = semesters.semester_id AND s.user_id = ?
		)`, userID).
		Order("date DESC").
		Find(&semesters).Error
	return semesters, err
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/fadiapc/2026-Dashboard-BKD/internal/model"
	pkgerrors "github.com/fadiapc/2026-Dashboard-BKD/pkg/errors"
)

// ScheduleRepository 排课位数据访问接口
type ScheduleRepository interface {
	GetByID(ctx context.Context, id string) (*model.Schedule, error)
	Claim(ctx context.Context, scheduleID, userID string) error
	Release(ctx context.Context, scheduleID string) error
	ReleaseByUser(ctx context.Context, userID string) error
}

// scheduleRepo ScheduleRepository 的 GORM 实现
type scheduleRepo struct {
	db *gorm.DB
}

// NewScheduleRepo 创建 ScheduleRepository 实例
func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) GetByID(ctx context.Context, id string) (*model.Schedule, error) {
	var schedule model.Schedule
	err := r.db.WithContext(ctx).
		Where("schedule_id = ?", id).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

// Claim 认领排课位，使用条件更新保证并发下同一位置只会被一人认领成功
// 位置已被占用时返回 ErrScheduleFilled
func (r *scheduleRepo) Claim(ctx context.Context, scheduleID, userID string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Schedule{}).
		Where("schedule_id = ? AND user_id IS NULL", scheduleID).
		Update("user_id", userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrScheduleFilled
	}
	return nil
}

// Release 释放排课位，幂等：位置本就为空也算成功
func (r *scheduleRepo) Release(ctx context.Context, scheduleID string) error {
	return r.db.WithContext(ctx).
		Model(&model.Schedule{}).
		Where("schedule_id = ?", scheduleID).
		Update("user_id", nil).Error
}

// ReleaseByUser 释放该用户认领的全部排课位（删除用户前调用）
func (r *scheduleRepo) ReleaseByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Model(&model.Schedule{}).
		Where("user_id = ?", userID).
		Update("user_id", nil).Error
}

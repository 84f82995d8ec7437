package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fadiapc/2026-Dashboard-BKD/internal/repository"
	pkgerrors "github.com/fadiapc/2026-Dashboard-BKD/pkg/errors"
)

// ── 排课位模块业务错误 ──

var (
	ErrScheduleNotFound = errors.New("排课位不存在")
	ErrScheduleTaken    = errors.New("排课位已被认领")
	ErrScheduleNotOwner = errors.New("只能释放自己认领的排课位")
)

// ScheduleService 排课位业务接口
type ScheduleService interface {
	Fill(ctx context.Context, scheduleID, callerID string) error
	Clear(ctx context.Context, scheduleID, callerID, callerRole string) error
}

type scheduleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, logger: logger}
}

// Fill 认领排课位
// 认领本身是条件更新，并发下对同一位置最多一人成功，其余收到冲突
func (s *scheduleService) Fill(ctx context.Context, scheduleID, callerID string) error {
	if _, err := s.repo.Schedule.GetByID(ctx, scheduleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScheduleNotFound
		}
		s.logger.Error("查询排课位失败", zap.String("id", scheduleID), zap.Error(err))
		return err
	}

	if err := s.repo.Schedule.Claim(ctx, scheduleID, callerID); err != nil {
		if errors.Is(err, pkgerrors.ErrScheduleFilled) {
			return ErrScheduleTaken
		}
		s.logger.Error("认领排课位失败", zap.String("id", scheduleID), zap.Error(err))
		return err
	}

	return nil
}

// Clear 释放排课位
// 非管理员只能释放自己认领的位置；位置本就为空时视为成功
func (s *scheduleService) Clear(ctx context.Context, scheduleID, callerID, callerRole string) error {
	schedule, err := s.repo.Schedule.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScheduleNotFound
		}
		s.logger.Error("查询排课位失败", zap.String("id", scheduleID), zap.Error(err))
		return err
	}

	if schedule.UserID != nil && *schedule.UserID != callerID && callerRole != "admin" {
		return ErrScheduleNotOwner
	}

	if err := s.repo.Schedule.Release(ctx, scheduleID); err != nil {
		s.logger.Error("释放排课位失败", zap.String("id", scheduleID), zap.Error(err))
		return err
	}

	return nil
}

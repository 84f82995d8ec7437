package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fadiapc/2026-Dashboard-BKD/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 工作量表导出为 Excel (.xlsx)，以 bytes.Buffer 返回，
// 由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportWorkloads 导出指定学期全体用户的工作量指数表
	ExportWorkloads(ctx context.Context, semesterID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) ExportWorkloads(ctx context.Context, semesterID string) (*bytes.Buffer, string, error) {
	// 1. 学期必须存在
	semester, err := s.repo.Semester.GetByID(ctx, semesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrSemesterNotFound
		}
		s.logger.Error("查询学期失败", zap.Error(err))
		return nil, "", err
	}

	// 2. 全体用户逐个计算该学期的工作量
	users, err := s.repo.User.List(ctx)
	if err != nil {
		s.logger.Error("列出用户失败", zap.Error(err))
		return nil, "", err
	}

	// 3. 写入 Excel
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "BKD"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"缩写", "姓名", "角色", "BKD"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			s.logger.Error("写入表头失败", zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}
	}

	for row := range users {
		user := &users[row]
		courses, err := s.repo.Course.ListTaughtByUser(ctx, user.UserID, semesterID)
		if err != nil {
			s.logger.Error("查询任课课程失败", zap.String("user_id", user.UserID), zap.Error(err))
			return nil, "", err
		}
		bkd := computeWorkload(courses, user.UserID)

		values := []interface{}{user.Initial, user.Name, user.Role(), bkd}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				s.logger.Error("写入单元格失败", zap.Error(err))
				return nil, "", ErrExportGenerateFail
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("序列化 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("bkd_%s.xlsx", semester.Date.Format("2006-01-02"))
	return buf, filename, nil
}

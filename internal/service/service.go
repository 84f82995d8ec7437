package service

import (
	"go.uber.org/zap"

	"github.com/fadiapc/2026-Dashboard-BKD/config"
	"github.com/fadiapc/2026-Dashboard-BKD/internal/repository"
	"github.com/fadiapc/2026-Dashboard-BKD/pkg/jwt"
	"github.com/fadiapc/2026-Dashboard-BKD/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth     AuthService
	User     UserService
	Semester SemesterService
	Course   CourseService
	Schedule ScheduleService
	Export   ExportService
	Seed     SeedService
}

// NewService 创建 Service 聚合
// rdb 允许为 nil，此时登出接口退化为无操作
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:     NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:     NewUserService(repo, logger),
		Semester: NewSemesterService(repo, logger),
		Course:   NewCourseService(repo, logger),
		Schedule: NewScheduleService(repo, logger),
		Export:   NewExportService(repo, logger),
		Seed:     NewSeedService(repo, logger),
	}
}

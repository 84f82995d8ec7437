package handler

import "github.com/fadiapc/2026-Dashboard-BKD/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Semester *SemesterHandler
	Course   *CourseHandler
	Schedule *ScheduleHandler
	Export   *ExportHandler
	Home     *HomeHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(svc.Auth),
		User:     NewUserHandler(svc.User),
		Semester: NewSemesterHandler(svc.Semester),
		Course:   NewCourseHandler(svc.Course),
		Schedule: NewScheduleHandler(svc.Schedule),
		Export:   NewExportHandler(svc.Export),
		Home:     NewHomeHandler(svc.Seed),
	}
}

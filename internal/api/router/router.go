package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fadiapc/2026-Dashboard-BKD/config"
	"github.com/fadiapc/2026-Dashboard-BKD/internal/api/handler"
	"github.com/fadiapc/2026-Dashboard-BKD/internal/api/middleware"
	"github.com/fadiapc/2026-Dashboard-BKD/pkg/jwt"
	"github.com/fadiapc/2026-Dashboard-BKD/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(1 << 20))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/ping", h.Home.Ping)

	// ── 认证模块（无需认证）──
	// 登录接口限流，防止暴力破解
	r.POST("/auth/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)

	// ── 需要认证的路由 ──
	authorized := r.Group("")
	authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
	{
		admin := middleware.Require(middleware.AuthRequired(), middleware.AdminRequired())
		owner := middleware.Require(middleware.AuthRequired(), middleware.ResourceOwnerRequired("id"))
		authed := middleware.Require(middleware.AuthRequired())

		// 认证模块（需要认证）
		authorized.PUT("/auth/password", authed, h.Auth.ChangePassword)
		authorized.POST("/auth/logout", authed, h.Auth.Logout)

		// 学期模块
		semesters := authorized.Group("/semesters")
		{
			semesters.GET("", authed, h.Semester.ListSemesters)
			semesters.GET("/:id", authed, h.Semester.GetSemester)
			semesters.POST("", admin, h.Semester.CreateSemester)
			semesters.PUT("/:id/activate", admin, h.Semester.ActivateSemester)
			semesters.DELETE("/:id", admin, h.Semester.DeleteSemester)
		}

		// 课程模块
		courses := authorized.Group("/courses")
		{
			courses.GET("", authed, h.Course.ListCourses)
			courses.GET("/class/:id", authed, h.Course.GetClass)
			courses.GET("/:id", authed, h.Course.GetCourse)
			courses.POST("", admin, h.Course.CreateCourse)
			courses.DELETE("/:id", admin, h.Course.DeleteCourse)
		}

		// 排课位模块
		schedules := authorized.Group("/schedules")
		{
			schedules.PUT("/:id/fill", authed, h.Schedule.FillSchedule)
			schedules.PUT("/:id/clear", authed, h.Schedule.ClearSchedule)
		}

		// 用户模块
		users := authorized.Group("/users")
		{
			users.GET("", admin, h.User.ListUsers)
			users.GET("/me", authed, h.User.GetMe)
			users.GET("/semesters/:id", authed, h.User.ListUsersBySemester)
			users.GET("/:id", owner, h.User.GetUser)
			users.GET("/:id/semesters", owner, h.User.GetUserSemesters)
			users.POST("", admin, h.User.CreateUser)
			users.PUT("/:id", admin, h.User.UpdateUser)
			users.DELETE("/:id", admin, h.User.DeleteUser)
		}

		// 导出模块
		authorized.GET("/export/workloads", admin, h.Export.ExportWorkloads)

		// 演示数据
		authorized.POST("/seed", admin, h.Home.Seed)
	}

	return r
}

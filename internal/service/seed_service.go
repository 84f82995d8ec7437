package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/fadiapc/2026-Dashboard-BKD/internal/dto"
	"github.com/fadiapc/2026-Dashboard-BKD/internal/model"
	"github.com/fadiapc/2026-Dashboard-BKD/internal/repository"
)

// 演示数据参数
const (
	seedUserCount      = 26
	seedCoursesPerTerm = 15
	seedPassword       = "password"
	seedFillRate       = 0.8 // 随机认领的排课位占比
)

// SeedService 演示数据生成接口
type SeedService interface {
	Seed(ctx context.Context, callerID string) (*dto.SeedResponse, error)
}

type seedService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSeedService 创建 SeedService 实例
func NewSeedService(repo *repository.Repository, logger *zap.Logger) SeedService {
	return &seedService{repo: repo, logger: logger}
}

// Seed 生成演示数据：两个学期（后者激活）、26 个演示用户、
// 每学期 15 门随机课程，约 80% 的排课位被随机认领。
// 整个过程在一个事务内完成。已存在的缩写会被复用而不是重复创建。
func (s *seedService) Seed(ctx context.Context, callerID string) (*dto.SeedResponse, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
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
	resp := &dto.SeedResponse{}

	fail := func(msg string, err error) (*dto.SeedResponse, error) {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error(msg, zap.Error(err))
		return nil, err
	}

	// 1. 两个学期，后一个激活
	year := time.Now().Year()
	semesters := []*model.Semester{
		{Date: time.Date(year, time.February, 1, 0, 0, 0, 0, time.UTC), IsActive: false},
		{Date: time.Date(year, time.September, 1, 0, 0, 0, 0, time.UTC), IsActive: true},
	}
	if err := txRepo.Semester.ClearActive(ctx); err != nil {
		return fail("清除激活学期失败", err)
	}
	for _, sem := range semesters {
		sem.CreatedBy = &callerID
		sem.UpdatedBy = &callerID
		if err := txRepo.Semester.Create(ctx, sem); err != nil {
			return fail("创建学期失败", err)
		}
		resp.Semesters++
	}

	// 2. 26 个演示用户，缩写为字母表滑动窗口 ABC, BCD, …, ZAB
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fail("密码加密失败", err)
	}

	userIDs := make([]string, 0, seedUserCount)
	for i := 0; i < seedUserCount; i++ {
		initial := seedInitial(i)
		exists, err := txRepo.User.ExistsByInitial(ctx, initial)
		if err != nil {
			return fail("查询缩写失败", err)
		}
		if exists {
			existing, err := txRepo.User.GetByInitial(ctx, initial)
			if err != nil {
				return fail("查询用户失败", err)
			}
			userIDs = append(userIDs, existing.UserID)
			continue
		}

		user := &model.User{
			Name:         "演示教师 " + initial,
			Initial:      initial,
			PasswordHash: string(hash),
			IsAdmin:      false,
			IsActive:     true,
		}
		user.CreatedBy = &callerID
		user.UpdatedBy = &callerID
		if err := txRepo.User.Create(ctx, user); err != nil {
			return fail("创建用户失败", err)
		}
		userIDs = append(userIDs, user.UserID)
		resp.Users++
	}

	// 3. 每学期 15 门课程，类型、班级数随机，约 80% 排课位随机认领
	for si, sem := range semesters {
		for ci := 1; ci <= seedCoursesPerTerm; ci++ {
			course := s.randomCourse(si, ci, sem.SemesterID, userIDs)
			course.CreatedBy = &callerID
			course.UpdatedBy = &callerID
			if err := txRepo.Course.CreateGraph(ctx, course); err != nil {
				return fail("创建课程失败", err)
			}
			resp.Courses++
		}
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("演示数据生成完成",
		zap.Int("semesters", resp.Semesters),
		zap.Int("users", resp.Users),
		zap.Int("courses", resp.Courses))

	return resp, nil
}

// seedInitial 第 i 个演示缩写：字母表上长度 3 的滑动窗口（环绕）
func seedInitial(i int) string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	return string([]byte{
		letters[i%26],
		letters[(i+1)%26],
		letters[(i+2)%26],
	})
}

// randomCourse 生成一门随机课程的完整层级，部分排课位已随机认领
func (s *seedService) randomCourse(semIdx, courseIdx int, semesterID string, userIDs []string) *model.Course {
	course := &model.Course{
		SemesterID:     semesterID,
		Name:           fmt.Sprintf("示范课程 %d-%02d", semIdx+1, courseIdx),
		Code:           fmt.Sprintf("MK%d%03d", semIdx+1, courseIdx),
		SemesterNumber: 1 + rand.Intn(model.MeetingsPerTerm),
	}

	kinds := []int{model.CourseKindLecture, model.CourseKindPracticum, model.CourseKindTutorial}
	rand.Shuffle(len(kinds), func(i, j int) { kinds[i], kinds[j] = kinds[j], kinds[i] })
	typeCount := 1 + rand.Intn(3)

	for t := 0; t < typeCount; t++ {
		ct := model.CourseType{
			Kind:   kinds[t],
			Credit: 1 + rand.Intn(3),
		}
		classCount := 1 + rand.Intn(3)
		for n := 1; n <= classCount; n++ {
			cc := model.CourseClass{Number: n}
			for m := 1; m <= model.MeetingsPerTerm; m++ {
				sched := model.Schedule{MeetNumber: m}
				if len(userIDs) > 0 && rand.Float64() < seedFillRate {
					uid := userIDs[rand.Intn(len(userIDs))]
					sched.UserID = &uid
				}
				cc.Schedules = append(cc.Schedules, sched)
			}
			ct.CourseClasses = append(ct.CourseClasses, cc)
		}
		course.CourseTypes = append(course.CourseTypes, ct)
	}

	return course
}

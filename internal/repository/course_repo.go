package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/fadiapc/2026-Dashboard-BKD/internal/model"
)

// CourseRepository 课程数据访问接口
// 课程的读取都走显式 Preload，避免隐式的懒加载查询
type CourseRepository interface {
	CreateGraph(ctx context.Context, course *model.Course) error
	GetByID(ctx context.Context, id string) (*model.Course, error)
	ListBySemester(ctx context.Context, semesterID string) ([]model.Course, error)
	ListByActiveSemester(ctx context.Context) ([]model.Course, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	SemesterHasCourses(ctx context.Context, semesterID string) (bool, error)
	DeleteCascade(ctx context.Context, courseID string) error
	DeleteBySemesterCascade(ctx context.Context, semesterID string) error
	GetClassByID(ctx context.Context, classID string) (*model.CourseClass, error)
	ListTaughtByUser(ctx context.Context, userID, semesterID string) ([]model.Course, error)
}

// courseRepo CourseRepository 的 GORM 实现
type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

// CreateGraph 一次性创建课程及其类型、班级、排课位的完整层级
func (r *courseRepo) CreateGraph(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepo) GetByID(ctx context.Context, id string) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Preload("CourseTypes.CourseClasses").
		Where("course_id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) ListBySemester(ctx context.Context, semesterID string) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Preload("CourseTypes.CourseClasses").
		Where("semester_id = ?", semesterID).
		Order("code ASC").
		Find(&courses).Error
	return courses, err
}

// ListByActiveSemester 查询当前激活学期下的全部课程
func (r *courseRepo) ListByActiveSemester(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Preload("CourseTypes.CourseClasses").
		Joins("JOIN semesters ON semesters.semester_id = courses.semester_id").
		Where("semesters.is_active = ?", true).
		Order("courses.code ASC").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Course{}).
		Where("code = ?", code).
		Count(&count).Error
	return count > 0, err
}

func (r *courseRepo) SemesterHasCourses(ctx context.Context, semesterID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Course{}).
		Where("semester_id = ?", semesterID).
		Count(&count).Error
	return count > 0, err
}

// DeleteCascade 自底向上删除课程层级：排课位 → 班级 → 类型 → 课程
// 调用方需保证处于事务中
func (r *courseRepo) DeleteCascade(ctx context.Context, courseID string) error {
	db := r.db.WithContext(ctx)

	typeIDs := db.Model(&model.CourseType{}).
		Select("course_type_id").
		Where("course_id = ?", courseID)
	classIDs := db.Model(&model.CourseClass{}).
		Select("course_class_id").
		Where("course_type_id IN (?)", typeIDs)

	if err := db.Where("course_class_id IN (?)", classIDs).
		Delete(&model.Schedule{}).Error; err != nil {
		return err
	}
	if err := db.Where("course_type_id IN (?)", typeIDs).
		Delete(&model.CourseClass{}).Error; err != nil {
		return err
	}
	if err := db.Where("course_id = ?", courseID).
		Delete(&model.CourseType{}).Error; err != nil {
		return err
	}
	return db.Where("course_id = ?", courseID).
		Delete(&model.Course{}).Error
}

// DeleteBySemesterCascade 自底向上删除学期下的全部课程层级（删除学期用）
func (r *courseRepo) DeleteBySemesterCascade(ctx context.Context, semesterID string) error {
	db := r.db.WithContext(ctx)

	courseIDs := db.Model(&model.Course{}).
		Select("course_id").
		Where("semester_id = ?", semesterID)
	typeIDs := db.Model(&model.CourseType{}).
		Select("course_type_id").
		Where("course_id IN (?)", courseIDs)
	classIDs := db.Model(&model.CourseClass{}).
		Select("course_class_id").
		Where("course_type_id IN (?)", typeIDs)

	if err := db.Where("course_class_id IN (?)", classIDs).
		Delete(&model.Schedule{}).Error; err != nil {
		return err
	}
	if err := db.Where("course_type_id IN (?)", typeIDs).
		Delete(&model.CourseClass{}).Error; err != nil {
		return err
	}
	if err := db.Where("course_id IN (?)", courseIDs).
		Delete(&model.CourseType{}).Error; err != nil {
		return err
	}
	return db.Where("semester_id = ?", semesterID).
		Delete(&model.Course{}).Error
}

// GetClassByID 查询单个班级，带所属课程类型、课程以及全部排课位和认领人
func (r *courseRepo) GetClassByID(ctx context.Context, classID string) (*model.CourseClass, error) {
	var class model.CourseClass
	err := r.db.WithContext(ctx).
		Preload("CourseType.Course").
		Preload("Schedules", func(db *gorm.DB) *gorm.DB {
			return db.Order("meet_number ASC")
		}).
		Preload("Schedules.User").
		Where("course_class_id = ?", classID).
		First(&class).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

// ListTaughtByUser 查询指定学期内该用户至少认领了一个排课位的课程，
// 预加载完整层级供工作量计算使用
func (r *courseRepo) ListTaughtByUser(ctx context.Context, userID, semesterID string) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Preload("CourseTypes.CourseClasses.Schedules").
		Where("semester_id = ?", semesterID).
		Where(`EXISTS (
			SELECT 1 FROM schedules s
			JOIN course_classes cc ON s.course_class_id = cc.course_class_id
			JOIN course_types ct ON cc.course_type_id = ct.course_type_id
			WHERE ct.course_id = courses.course_id AND s.user_id = ?
		)`, userID).
		Order("code ASC").
		Find(&courses).Error
	return courses, err
}

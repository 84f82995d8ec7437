package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	User     UserRepository
	Semester SemesterRepository
	Course   CourseRepository
	Schedule ScheduleRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:       db,
		User:     NewUserRepo(db),
		Semester: NewSemesterRepo(db),
		Course:   NewCourseRepo(db),
		Schedule: NewScheduleRepo(db),
	}
}

// BeginTx 开启数据库事务
// 无底层连接时（如测试中直接以 mock 字段构造聚合）返回 nil 事务，
// 调用方按非事务路径执行
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// WithTx 返回绑定到指定事务连接的 Repository 聚合
// 事务的提交与回滚由调用方负责
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

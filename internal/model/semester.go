package model

import "time"

// Semester 学期表 — 对应 semesters
// 全系统同一时刻至多一个学期处于激活状态
type Semester struct {
	SemesterID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"semester_id"`
	Date       time.Time `gorm:"type:date;not null"                             json:"date"`
	IsActive   bool      `gorm:"not null;default:false"                         json:"is_active"`
	BaseModel

	// 关联
	Courses []Course `gorm:"foreignKey:SemesterID" json:"courses,omitempty"`
}

// TableName 指定表名
func (Semester) TableName() string { return "semesters" }

package model

// SuperAdminInitial 受保护的超级管理员缩写，不可修改、不可删除
const SuperAdminInitial = "ADM"

// 角色常量，由 is_admin 标志推导
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User 用户表 — 对应 users
type User struct {
	UserID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name         string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Initial      string  `gorm:"type:char(3);not null"                          json:"initial"`
	PasswordHash string  `gorm:"type:varchar(255);not null"                     json:"-"`
	IsAdmin      bool    `gorm:"not null;default:false"                         json:"is_admin"`
	IsActive     bool    `gorm:"not null;default:true"                          json:"is_active"`
	Email        *string `gorm:"type:varchar(100)"                              json:"email,omitempty"`
	BaseModel

	// 关联：该用户认领的排课位（非拥有关系，删除用户时置空）
	Schedules []Schedule `gorm:"foreignKey:UserID" json:"schedules,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// Role 由 is_admin 标志推导出的角色声明
func (u *User) Role() string {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}

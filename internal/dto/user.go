package dto

// ── 用户模块 DTO ──

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	Name     string  `json:"name"     binding:"required,min=2,max=100"`
	Initial  string  `json:"initial"  binding:"required,len=3"`
	Password string  `json:"password" binding:"required,min=6,max=72"`
	IsAdmin  bool    `json:"is_admin"`
	Email    *string `json:"email"    binding:"omitempty,email"`
}

// UpdateUserRequest 更新用户请求
type UpdateUserRequest struct {
	Name     *string `json:"name"     binding:"omitempty,min=2,max=100"`
	Initial  *string `json:"initial"  binding:"omitempty,len=3"`
	Password *string `json:"password" binding:"omitempty,min=6,max=72"`
	IsAdmin  *bool   `json:"is_admin"`
	IsActive *bool   `json:"is_active"`
	Email    *string `json:"email"    binding:"omitempty,email"`
}

// UserResponse 用户信息响应（脱敏）
// BKD 为该用户在对应学期的教学工作量指数
type UserResponse struct {
	UserID   string  `json:"user_id"`
	Name     string  `json:"name"`
	Initial  string  `json:"initial"`
	Role     string  `json:"role"`
	IsActive bool    `json:"is_active"`
	Email    *string `json:"email,omitempty"`
	BKD      float64 `json:"bkd"`
}

// UserDetailResponse 用户详细信息，含任课明细
type UserDetailResponse struct {
	UserResponse
	Courses []TaughtCourseResponse `json:"courses"`
}

// TaughtCourseResponse 任课课程，只嵌入该用户认领的排课位
type TaughtCourseResponse struct {
	CourseID       string               `json:"course_id"`
	Name           string               `json:"name"`
	Code           string               `json:"code"`
	SemesterNumber int                  `json:"semester_number"`
	CourseTypes    []TaughtTypeResponse `json:"course_types"`
}

// TaughtTypeResponse 任课课程类型
type TaughtTypeResponse struct {
	CourseTypeID  string                `json:"course_type_id"`
	Kind          int                   `json:"kind"`
	Credit        int                   `json:"credit"`
	CourseClasses []TaughtClassResponse `json:"course_classes"`
}

// TaughtClassResponse 任课班级
type TaughtClassResponse struct {
	CourseClassID string             `json:"course_class_id"`
	Number        int                `json:"number"`
	Schedules     []ScheduleResponse `json:"schedules"`
}

// UserSemesterResponse 用户任课学期及该学期的工作量
type UserSemesterResponse struct {
	SemesterID string                 `json:"semester_id"`
	Date       string                 `json:"date"`
	IsActive   bool                   `json:"is_active"`
	BKD        float64                `json:"bkd"`
	Courses    []TaughtCourseResponse `json:"courses"`
}

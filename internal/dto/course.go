package dto

// ── 课程模块 DTO ──

// CreateCourseRequest 创建课程请求
// 每个课程类型按 class_count 生成班级，每个班级生成 14 个排课位
type CreateCourseRequest struct {
	SemesterID     string                    `json:"semester_id"     binding:"required,uuid"`
	Name           string                    `json:"name"            binding:"required,min=2,max=50"`
	Code           string                    `json:"code"            binding:"required,min=2,max=7"`
	SemesterNumber int                       `json:"semester_number" binding:"required,min=1,max=14"`
	CourseTypes    []CreateCourseTypeRequest `json:"course_types"    binding:"required,min=1,dive"`
}

// CreateCourseTypeRequest 创建课程类型请求
type CreateCourseTypeRequest struct {
	Kind       int `json:"kind"        binding:"required,min=1,max=3"`
	Credit     int `json:"credit"      binding:"required,min=1"`
	ClassCount int `json:"class_count" binding:"required,min=1,max=14"`
}

// CourseResponse 课程信息响应
type CourseResponse struct {
	CourseID       string               `json:"course_id"`
	SemesterID     string               `json:"semester_id"`
	Name           string               `json:"name"`
	Code           string               `json:"code"`
	SemesterNumber int                  `json:"semester_number"`
	CourseTypes    []CourseTypeResponse `json:"course_types,omitempty"`
}

// CourseTypeResponse 课程类型响应
type CourseTypeResponse struct {
	CourseTypeID  string                `json:"course_type_id"`
	Kind          int                   `json:"kind"`
	Credit        int                   `json:"credit"`
	CourseClasses []CourseClassResponse `json:"course_classes,omitempty"`
}

// CourseClassResponse 班级响应
type CourseClassResponse struct {
	CourseClassID string `json:"course_class_id"`
	Number        int    `json:"number"`
}

// ClassDetailResponse 班级详细信息，含课程归属与 14 个排课位
type ClassDetailResponse struct {
	CourseClassID string             `json:"course_class_id"`
	Number        int                `json:"number"`
	Kind          int                `json:"kind"`
	Credit        int                `json:"credit"`
	Course        CourseBrief        `json:"course"`
	Schedules     []ScheduleResponse `json:"schedules"`
}

// CourseBrief 课程简要信息
type CourseBrief struct {
	CourseID       string `json:"course_id"`
	Name           string `json:"name"`
	Code           string `json:"code"`
	SemesterNumber int    `json:"semester_number"`
}

package dto

// ── 学期模块 DTO ──

// CreateSemesterRequest 创建学期请求，日期格式 YYYY-MM-DD
type CreateSemesterRequest struct {
	Date string `json:"date" binding:"required,datetime=2006-01-02"`
}

// SemesterResponse 学期信息响应
type SemesterResponse struct {
	SemesterID string `json:"semester_id"`
	Date       string `json:"date"`
	IsActive   bool   `json:"is_active"`
	CreatedAt  string `json:"created_at"`
}

// SemesterDetailResponse 学期详细信息，含课程列表
type SemesterDetailResponse struct {
	SemesterResponse
	Courses []CourseResponse `json:"courses"`
}

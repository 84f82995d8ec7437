package dto

// ── 演示数据 DTO ──

// SeedResponse 演示数据生成结果
type SeedResponse struct {
	Semesters int `json:"semesters"`
	Users     int `json:"users"`
	Courses   int `json:"courses"`
}

package dto

// ── 排课位模块 DTO ──

// ScheduleResponse 排课位响应，user 字段为空表示未认领
type ScheduleResponse struct {
	ScheduleID  string  `json:"schedule_id"`
	MeetNumber  int     `json:"meet_number"`
	UserID      *string `json:"user_id,omitempty"`
	UserInitial *string `json:"user_initial,omitempty"`
}

package service

import (
	"github.com/fadiapc/2026-Dashboard-BKD/internal/dto"
	"github.com/fadiapc/2026-Dashboard-BKD/internal/model"
)

// computeWorkload 计算用户在给定课程列表上的教学工作量指数（BKD）
//
// 每门课程按类型累加 学分 × 该用户在该类型全部班级中认领的排课位数，
// 合计后除以每学期固定的授课次数 14。结果为未舍入的浮点数。
// 前提：courses 已预加载 CourseTypes.CourseClasses.Schedules 的完整层级。
func computeWorkload(courses []model.Course, userID string) float64 {
	creditMeetings := 0
	for ci := range courses {
		for ti := range courses[ci].CourseTypes {
			ct := &courses[ci].CourseTypes[ti]
			count := 0
			for cci := range ct.CourseClasses {
				for si := range ct.CourseClasses[cci].Schedules {
					s := &ct.CourseClasses[cci].Schedules[si]
					if s.UserID != nil && *s.UserID == userID {
						count++
					}
				}
			}
			creditMeetings += ct.Credit * count
		}
	}
	return float64(creditMeetings) / model.MeetingsPerTerm
}

// buildTaughtCourses 将预加载的课程层级裁剪为只含该用户认领排课位的视图
// 未被该用户认领任何位置的班级与类型会被剔除
func buildTaughtCourses(courses []model.Course, userID, userInitial string) []dto.TaughtCourseResponse {
	result := make([]dto.TaughtCourseResponse, 0, len(courses))
	for ci := range courses {
		course := &courses[ci]
		types := make([]dto.TaughtTypeResponse, 0, len(course.CourseTypes))
		for ti := range course.CourseTypes {
			ct := &course.CourseTypes[ti]
			classes := make([]dto.TaughtClassResponse, 0, len(ct.CourseClasses))
			for cci := range ct.CourseClasses {
				cc := &ct.CourseClasses[cci]
				schedules := make([]dto.ScheduleResponse, 0)
				for si := range cc.Schedules {
					s := &cc.Schedules[si]
					if s.UserID == nil || *s.UserID != userID {
						continue
					}
					uid := userID
					initial := userInitial
					schedules = append(schedules, dto.ScheduleResponse{
						ScheduleID:  s.ScheduleID,
						MeetNumber:  s.MeetNumber,
						UserID:      &uid,
						UserInitial: &initial,
					})
				}
				if len(schedules) > 0 {
					classes = append(classes, dto.TaughtClassResponse{
						CourseClassID: cc.CourseClassID,
						Number:        cc.Number,
						Schedules:     schedules,
					})
				}
			}
			if len(classes) > 0 {
				types = append(types, dto.TaughtTypeResponse{
					CourseTypeID:  ct.CourseTypeID,
					Kind:          ct.Kind,
					Credit:        ct.Credit,
					CourseClasses: classes,
				})
			}
		}
		result = append(result, dto.TaughtCourseResponse{
			CourseID:       course.CourseID,
			Name:           course.Name,
			Code:           course.Code,
			SemesterNumber: course.SemesterNumber,
			CourseTypes:    types,
		})
	}
	return result
}

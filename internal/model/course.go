package model

// 课程类型枚举（kind）
const (
	CourseKindLecture   = 1 // 理论课
	CourseKindPracticum = 2 // 实践课
	CourseKindTutorial  = 3 // 辅导课
)

// MeetingsPerTerm 每学期固定的授课次数，也是工作量指数的归一化常数
const MeetingsPerTerm = 14

// Course 课程表 — 对应 courses
type Course struct {
	CourseID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	SemesterID     string `gorm:"type:uuid;not null"                             json:"semester_id"`
	Name           string `gorm:"type:varchar(50);not null"                      json:"name"`
	Code           string `gorm:"type:varchar(7);not null"                       json:"code"`
	SemesterNumber int    `gorm:"type:smallint;not null"                         json:"semester_number"` // 1..14
	BaseModel

	// 关联
	Semester    *Semester    `gorm:"foreignKey:SemesterID;references:SemesterID" json:"semester,omitempty"`
	CourseTypes []CourseType `gorm:"foreignKey:CourseID"                         json:"course_types,omitempty"`
}

func (Course) TableName() string { return "courses" }

// CourseType 课程类型表 — 对应 course_types
type CourseType struct {
	CourseTypeID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_type_id"`
	CourseID     string `gorm:"type:uuid;not null"                             json:"course_id"`
	Kind         int    `gorm:"type:smallint;not null"                         json:"kind"` // 1=理论 2=实践 3=辅导
	Credit       int    `gorm:"not null"                                       json:"credit"`
	BaseModel

	// 关联
	Course        *Course       `gorm:"foreignKey:CourseID;references:CourseID" json:"course,omitempty"`
	CourseClasses []CourseClass `gorm:"foreignKey:CourseTypeID"                 json:"course_classes,omitempty"`
}

func (CourseType) TableName() string { return "course_types" }

// CourseClass 班级表 — 对应 course_classes
// 课程创建时按 class_count 生成，序号 1..N
type CourseClass struct {
	CourseClassID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_class_id"`
	CourseTypeID  string `gorm:"type:uuid;not null"                             json:"course_type_id"`
	Number        int    `gorm:"type:smallint;not null"                         json:"number"` // 1..14
	BaseModel

	// 关联
	CourseType *CourseType `gorm:"foreignKey:CourseTypeID;references:CourseTypeID" json:"course_type,omitempty"`
	Schedules  []Schedule  `gorm:"foreignKey:CourseClassID"                        json:"schedules,omitempty"`
}

func (CourseClass) TableName() string { return "course_classes" }

// Schedule 排课位表 — 对应 schedules
// 每个班级固定生成 14 条（meet_number 1..14），user_id 为空表示未认领
type Schedule struct {
	ScheduleID    string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_id"`
	CourseClassID string  `gorm:"type:uuid;not null"                             json:"course_class_id"`
	MeetNumber    int     `gorm:"type:smallint;not null"                         json:"meet_number"` // 1..14
	UserID        *string `gorm:"type:uuid"                                      json:"user_id,omitempty"`
	BaseModel

	// 关联
	CourseClass *CourseClass `gorm:"foreignKey:CourseClassID;references:CourseClassID" json:"course_class,omitempty"`
	User        *User        `gorm:"foreignKey:UserID;references:UserID"               json:"user,omitempty"`
}

func (Schedule) TableName() string { return "schedules" }

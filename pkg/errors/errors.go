package errors

import "errors"

// ErrScheduleFilled 条件更新冲突：排课位已被其他教师占用
// 由 Repository 层的原子认领更新（WHERE user_id IS NULL）返回
var ErrScheduleFilled = errors.New("排课位已被占用")
